package sonar

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

const (
	issuesSearchPath = "/api/issues/search"

	// IssuesPageSize is the page size requested from the issue search.
	IssuesPageSize = 500

	issueFacets = "severities,types,rules,statuses"
)

// IssueSearchResult is the accumulated outcome of a paginated issue search.
type IssueSearchResult struct {
	Issues []Issue
	// Facets come from the last page fetched, not a sum over pages.
	Facets []Facet
	Total  int
	Pages  int
}

// SearchIssues fetches every issue of projectKey page by page. It stops on
// an empty page or once the accumulated count reaches the server-reported
// total. Any failed page aborts the search and no partial result is
// returned.
func (c *Client) SearchIssues(ctx context.Context, projectKey string) (*IssueSearchResult, error) {
	result := &IssueSearchResult{}

	for page := 1; ; page++ {
		params := url.Values{}
		params.Set("componentKeys", projectKey)
		params.Set("p", strconv.Itoa(page))
		params.Set("ps", strconv.Itoa(IssuesPageSize))
		params.Set("facets", issueFacets)

		var resp IssuesPage
		if err := c.get(ctx, issuesSearchPath, params, &resp); err != nil {
			return nil, fmt.Errorf("fetching issues page %d: %w", page, err)
		}
		result.Pages = page
		result.Facets = resp.Facets
		result.Total = resp.reportedTotal()

		if len(resp.Issues) == 0 {
			break
		}
		result.Issues = append(result.Issues, resp.Issues...)

		if len(result.Issues) >= result.Total {
			break
		}
	}

	return result, nil
}
