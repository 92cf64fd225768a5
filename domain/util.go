package domain

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// ParseSymbols parses a comma-separated list of token symbols.
func ParseSymbols(symbolsParam string) []string {
	return splitAndTrim(symbolsParam, ",")
}

// ParseBooleanQueryParam parses a boolean query parameter.
// Returns false if the parameter is not present.
// Errors if the value is not a valid boolean.
func ParseBooleanQueryParam(c echo.Context, paramName string) (paramValue bool, err error) {
	paramValueStr := c.QueryParam(paramName)
	if paramValueStr != "" {
		paramValue, err = strconv.ParseBool(paramValueStr)
		if err != nil {
			return false, err
		}
	}

	return paramValue, nil
}

// ValidateInputSymbols returns nil if the two symbols are valid, otherwise an error.
// Token in must not equal token out for quotes.
func ValidateInputSymbols(symbolIn, symbolOut string) error {
	if symbolIn == "" || symbolOut == "" {
		return ErrBadParamInput
	}

	if symbolIn == symbolOut {
		return SameSymbolError{Symbol: symbolIn}
	}

	return nil
}

// splitAndTrim splits a string by a separator and trims the resulting strings.
func splitAndTrim(s, sep string) []string {
	var result []string
	for _, val := range strings.Split(s, sep) {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
