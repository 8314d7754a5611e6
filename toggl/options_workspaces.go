package toggl

import "net/http"

// ListWorkspacesOptions lists the workspaces visible to the token.
type ListWorkspacesOptions struct{}

// Request implements Options
func (o ListWorkspacesOptions) Request(api Version) (Request, error) {
	path, err := route(api, "list workspaces", api.Workspaces.List, 0, "")
	if err != nil {
		return Request{}, err
	}
	return get(path), nil
}

// GetWorkspaceOptions fetches one workspace.
type GetWorkspaceOptions struct {
	WorkspaceID int64
}

// Request implements Options
func (o GetWorkspaceOptions) Request(api Version) (Request, error) {
	path, err := route(api, "get workspace", api.Workspaces.Item, o.WorkspaceID, "")
	if err != nil {
		return Request{}, err
	}
	return get(path), nil
}

// UpdateWorkspaceOptions changes workspace settings. Only admins may do this.
type UpdateWorkspaceOptions struct {
	WorkspaceID       int64
	Name              string
	DefaultCurrency   string
	DefaultHourlyRate *float64
}

// Request implements Options
func (o UpdateWorkspaceOptions) Request(api Version) (Request, error) {
	const op = "update workspace"
	path, err := route(api, op, api.Workspaces.Item, o.WorkspaceID, "")
	if err != nil {
		return Request{}, err
	}
	b := newBody().
		setString("name", o.Name).
		setString("default_currency", o.DefaultCurrency).
		setIf(o.DefaultHourlyRate != nil, "default_hourly_rate", o.DefaultHourlyRate)
	if b.Len() == 0 {
		return Request{}, invalid(op, "fields", "has nothing to update")
	}
	return withBody(http.MethodPut, path, api.Workspaces.Envelope, b)
}
