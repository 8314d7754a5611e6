package toggl

import (
	"net/http"
)

// ListProjectsOptions lists the projects of a workspace.
type ListProjectsOptions struct {
	WorkspaceID int64
	// Active nil lists every project.
	Active *bool
}

// Request implements Options
func (o ListProjectsOptions) Request(api Version) (Request, error) {
	const op = "list projects"
	if err := requireID(op, "workspace_id", o.WorkspaceID); err != nil {
		return Request{}, err
	}
	path, err := route(api, op, api.Projects.List, o.WorkspaceID, "project_id")
	if err != nil {
		return Request{}, err
	}
	all := ""
	if api.LegacyFields {
		all = "both"
	}
	req := get(path)
	req.Query = activeQuery(o.Active, all)
	return req, nil
}

// GetProjectOptions fetches one project.
type GetProjectOptions struct {
	WorkspaceID int64
	ProjectID   int64
}

// Request implements Options
func (o GetProjectOptions) Request(api Version) (Request, error) {
	path, err := route(api, "get project", api.Projects.Item, o.WorkspaceID, "project_id", o.ProjectID)
	if err != nil {
		return Request{}, err
	}
	return get(path), nil
}

// ProjectFields are the writable project attributes. Nil pointers and empty
// strings are left out of the request body.
type ProjectFields struct {
	ClientID       *int64
	Billable       *bool
	Private        *bool
	Active         *bool
	Template       *bool
	Color          string
	AutoEstimates  *bool
	EstimatedHours *int64
}

func (f ProjectFields) apply(api Version, b *body) {
	b.setInt(api.field("client_id", "cid"), f.ClientID).
		setBool("billable", f.Billable).
		setBool("is_private", f.Private).
		setBool("active", f.Active).
		setBool("template", f.Template).
		setString("color", f.Color).
		setBool("auto_estimates", f.AutoEstimates).
		setInt("estimated_hours", f.EstimatedHours)
}

// CreateProjectOptions creates a project in a workspace.
type CreateProjectOptions struct {
	WorkspaceID int64
	Name        string
	ProjectFields
}

// Request implements Options
func (o CreateProjectOptions) Request(api Version) (Request, error) {
	const op = "create project"
	if err := requireRoute(op, api.Projects.Create); err != nil {
		return Request{}, err
	}
	if err := requireID(op, "workspace_id", o.WorkspaceID); err != nil {
		return Request{}, err
	}
	if err := requireName(op, o.Name); err != nil {
		return Request{}, err
	}
	b := newBody().
		set("name", o.Name).
		set(api.field("workspace_id", "wid"), o.WorkspaceID)
	o.ProjectFields.apply(api, b)
	return withBody(http.MethodPost, api.path(api.Projects.Create, o.WorkspaceID), api.Projects.Envelope, b)
}

// UpdateProjectOptions changes an existing project. Name is optional here.
type UpdateProjectOptions struct {
	WorkspaceID int64
	ProjectID   int64
	Name        string
	ProjectFields
}

// Request implements Options
func (o UpdateProjectOptions) Request(api Version) (Request, error) {
	const op = "update project"
	path, err := route(api, op, api.Projects.Item, o.WorkspaceID, "project_id", o.ProjectID)
	if err != nil {
		return Request{}, err
	}
	b := newBody().setString("name", o.Name)
	o.ProjectFields.apply(api, b)
	if b.Len() == 0 {
		return Request{}, invalid(op, "fields", "has nothing to update")
	}
	return withBody(http.MethodPut, path, api.Projects.Envelope, b)
}

// DeleteProjectsOptions deletes one or more projects in a single request.
type DeleteProjectsOptions struct {
	WorkspaceID int64
	ProjectIDs  []int64
}

// DeleteProjectsByID builds DeleteProjectsOptions from ids.
func DeleteProjectsByID(workspaceID int64, ids ...int64) DeleteProjectsOptions {
	return DeleteProjectsOptions{WorkspaceID: workspaceID, ProjectIDs: ids}
}

// DeleteProjectsOf builds DeleteProjectsOptions from project models.
func DeleteProjectsOf(workspaceID int64, projects ...*Project) (DeleteProjectsOptions, error) {
	ids, err := ProjectIDs(projects...)
	if err != nil {
		return DeleteProjectsOptions{}, err
	}
	return DeleteProjectsOptions{WorkspaceID: workspaceID, ProjectIDs: ids}, nil
}

// Request implements Options
func (o DeleteProjectsOptions) Request(api Version) (Request, error) {
	tpl := api.Projects.Item
	if len(o.ProjectIDs) > 1 {
		tpl = api.Projects.Items
	}
	path, err := route(api, "delete projects", tpl, o.WorkspaceID, "project_ids", o.ProjectIDs...)
	if err != nil {
		return Request{}, err
	}
	return del(path), nil
}
