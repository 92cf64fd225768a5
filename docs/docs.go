// Package docs holds the OpenAPI document of the HTTP surface.
// Handler annotations and swagger.yaml are kept in sync by hand.
package docs

import (
	_ "embed"
)

// SwaggerYAML is the OpenAPI 2.0 document served at /swagger/swagger.yaml.
//
//go:embed swagger.yaml
var SwaggerYAML []byte
