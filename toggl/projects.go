package toggl

import "context"

// ProjectsEndpoint manages projects
type ProjectsEndpoint struct {
	res resource[Project]
}

// List returns every project of a workspace
func (e *ProjectsEndpoint) List(ctx context.Context, workspaceID int64) (*ListResponse[Project], error) {
	return e.ListWith(ctx, ListProjectsOptions{WorkspaceID: workspaceID})
}

// ListWith returns the projects matching opts
func (e *ProjectsEndpoint) ListWith(ctx context.Context, opts ListProjectsOptions) (*ListResponse[Project], error) {
	return e.res.many(ctx, opts)
}

// ListAsync is the asynchronous form of ListWith
func (e *ProjectsEndpoint) ListAsync(ctx context.Context, opts ListProjectsOptions) *Future[*ListResponse[Project]] {
	return async(ctx, opts, e.ListWith)
}

// Get returns one project
func (e *ProjectsEndpoint) Get(ctx context.Context, workspaceID, projectID int64) (*Response[Project], error) {
	return e.GetWith(ctx, GetProjectOptions{WorkspaceID: workspaceID, ProjectID: projectID})
}

// GetWith returns the project described by opts
func (e *ProjectsEndpoint) GetWith(ctx context.Context, opts GetProjectOptions) (*Response[Project], error) {
	return e.res.one(ctx, opts)
}

// GetAsync is the asynchronous form of GetWith
func (e *ProjectsEndpoint) GetAsync(ctx context.Context, opts GetProjectOptions) *Future[*Response[Project]] {
	return async(ctx, opts, e.GetWith)
}

// Create creates a project named name in a workspace
func (e *ProjectsEndpoint) Create(ctx context.Context, workspaceID int64, name string) (*Response[Project], error) {
	return e.CreateWith(ctx, CreateProjectOptions{WorkspaceID: workspaceID, Name: name})
}

// CreateWith creates the project described by opts
func (e *ProjectsEndpoint) CreateWith(ctx context.Context, opts CreateProjectOptions) (*Response[Project], error) {
	return e.res.one(ctx, opts)
}

// CreateAsync is the asynchronous form of CreateWith
func (e *ProjectsEndpoint) CreateAsync(ctx context.Context, opts CreateProjectOptions) *Future[*Response[Project]] {
	return async(ctx, opts, e.CreateWith)
}

// UpdateWith applies opts to a project
func (e *ProjectsEndpoint) UpdateWith(ctx context.Context, opts UpdateProjectOptions) (*Response[Project], error) {
	return e.res.one(ctx, opts)
}

// UpdateAsync is the asynchronous form of UpdateWith
func (e *ProjectsEndpoint) UpdateAsync(ctx context.Context, opts UpdateProjectOptions) *Future[*Response[Project]] {
	return async(ctx, opts, e.UpdateWith)
}

// Delete deletes one or more projects with a single request
func (e *ProjectsEndpoint) Delete(ctx context.Context, workspaceID int64, projectIDs ...int64) (*Response[NoContent], error) {
	return e.DeleteWith(ctx, DeleteProjectsByID(workspaceID, projectIDs...))
}

// DeleteProjects deletes the given project models with a single request
func (e *ProjectsEndpoint) DeleteProjects(ctx context.Context, workspaceID int64, projects ...*Project) (*Response[NoContent], error) {
	opts, err := DeleteProjectsOf(workspaceID, projects...)
	if err != nil {
		return nil, err
	}
	return e.DeleteWith(ctx, opts)
}

// DeleteWith deletes the projects described by opts
func (e *ProjectsEndpoint) DeleteWith(ctx context.Context, opts DeleteProjectsOptions) (*Response[NoContent], error) {
	return noContent(e.res).one(ctx, opts)
}

// DeleteAsync is the asynchronous form of DeleteWith
func (e *ProjectsEndpoint) DeleteAsync(ctx context.Context, opts DeleteProjectsOptions) *Future[*Response[NoContent]] {
	return async(ctx, opts, e.DeleteWith)
}
