package sonar

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

const measuresPath = "/api/measures/component"

// Measures fetches the given metric keys for projectKey in one request.
// A response without the component wrapper yields ErrProjectNotFound.
func (c *Client) Measures(ctx context.Context, projectKey string, metricKeys []string) (*Component, error) {
	params := url.Values{}
	params.Set("component", projectKey)
	params.Set("metricKeys", strings.Join(metricKeys, ","))

	var resp measuresResponse
	if err := c.get(ctx, measuresPath, params, &resp); err != nil {
		return nil, fmt.Errorf("fetching measures: %w", err)
	}
	if resp.Component == nil {
		return nil, fmt.Errorf("fetching measures for %q: %w", projectKey, ErrProjectNotFound)
	}
	return resp.Component, nil
}
