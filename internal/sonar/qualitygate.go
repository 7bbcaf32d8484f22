package sonar

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

const (
	projectStatusPath   = "/api/qualitygates/project_status"
	gateByProjectPath   = "/api/qualitygates/get_by_project"
	gateShowPath        = "/api/qualitygates/show"
	projectAnalysesPath = "/api/project_analyses/search"

	// HistorySize is how many recent analyses the quality gate export keeps.
	HistorySize = 50
)

// ProjectStatus fetches the live quality gate evaluation of projectKey.
// A response without the projectStatus wrapper yields ErrProjectNotFound.
func (c *Client) ProjectStatus(ctx context.Context, projectKey string) (*ProjectStatus, error) {
	params := url.Values{}
	params.Set("projectKey", projectKey)

	var resp projectStatusResponse
	if err := c.get(ctx, projectStatusPath, params, &resp); err != nil {
		return nil, fmt.Errorf("fetching quality gate status: %w", err)
	}
	if resp.ProjectStatus == nil {
		return nil, fmt.Errorf("fetching quality gate status for %q: %w", projectKey, ErrProjectNotFound)
	}
	return resp.ProjectStatus, nil
}

// GateForProject resolves which quality gate applies to projectKey. It
// returns nil without error when the server names no gate.
func (c *Client) GateForProject(ctx context.Context, projectKey string) (*GateRef, error) {
	params := url.Values{}
	params.Set("project", projectKey)

	var resp gateForProjectResponse
	if err := c.get(ctx, gateByProjectPath, params, &resp); err != nil {
		return nil, fmt.Errorf("resolving quality gate: %w", err)
	}
	if resp.QualityGate == nil || resp.QualityGate.ID == "" {
		return nil, nil
	}
	return resp.QualityGate, nil
}

// ShowGate fetches the full definition of the gate with the given id.
func (c *Client) ShowGate(ctx context.Context, id GateID) (*GateDefinition, error) {
	params := url.Values{}
	params.Set("id", string(id))

	var def GateDefinition
	if err := c.get(ctx, gateShowPath, params, &def); err != nil {
		return nil, fmt.Errorf("fetching quality gate %s: %w", id, err)
	}
	return &def, nil
}

// Analyses fetches up to pageSize most recent analyses of projectKey.
func (c *Client) Analyses(ctx context.Context, projectKey string, pageSize int) ([]Analysis, error) {
	params := url.Values{}
	params.Set("project", projectKey)
	params.Set("ps", strconv.Itoa(pageSize))

	var resp analysesResponse
	if err := c.get(ctx, projectAnalysesPath, params, &resp); err != nil {
		return nil, fmt.Errorf("fetching analysis history: %w", err)
	}
	return resp.Analyses, nil
}
