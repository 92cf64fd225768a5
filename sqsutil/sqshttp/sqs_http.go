package sqshttp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Get makes a GET request to the given URL and endpoint and unmarshals the response body into the given type.
// Non-2xx responses are returned as errors.
func Get[k any](ctx context.Context, client *http.Client, url, endpoint string) (*k, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url+endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Read the response body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("unexpected status code %d from %s: %s", resp.StatusCode, url+endpoint, string(body))
	}

	// Unmarshal the response body
	var unmarshalledData k
	if err := json.Unmarshal(body, &unmarshalledData); err != nil {
		return nil, fmt.Errorf("failed to unmarshal: %w", err)
	}

	return &unmarshalledData, nil
}
