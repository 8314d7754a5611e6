package toggl

import "context"

// WorkspacesEndpoint reads and updates workspaces
type WorkspacesEndpoint struct {
	res resource[Workspace]
}

// List returns the workspaces the token can access
func (e *WorkspacesEndpoint) List(ctx context.Context) (*ListResponse[Workspace], error) {
	return e.ListWith(ctx, ListWorkspacesOptions{})
}

// ListWith returns the workspaces matching opts
func (e *WorkspacesEndpoint) ListWith(ctx context.Context, opts ListWorkspacesOptions) (*ListResponse[Workspace], error) {
	return e.res.many(ctx, opts)
}

// ListAsync is the asynchronous form of ListWith
func (e *WorkspacesEndpoint) ListAsync(ctx context.Context, opts ListWorkspacesOptions) *Future[*ListResponse[Workspace]] {
	return async(ctx, opts, e.ListWith)
}

// Get returns one workspace
func (e *WorkspacesEndpoint) Get(ctx context.Context, workspaceID int64) (*Response[Workspace], error) {
	return e.GetWith(ctx, GetWorkspaceOptions{WorkspaceID: workspaceID})
}

// GetWith returns the workspace described by opts
func (e *WorkspacesEndpoint) GetWith(ctx context.Context, opts GetWorkspaceOptions) (*Response[Workspace], error) {
	return e.res.one(ctx, opts)
}

// GetAsync is the asynchronous form of GetWith
func (e *WorkspacesEndpoint) GetAsync(ctx context.Context, opts GetWorkspaceOptions) *Future[*Response[Workspace]] {
	return async(ctx, opts, e.GetWith)
}

// UpdateWith applies opts to a workspace
func (e *WorkspacesEndpoint) UpdateWith(ctx context.Context, opts UpdateWorkspaceOptions) (*Response[Workspace], error) {
	return e.res.one(ctx, opts)
}

// UpdateAsync is the asynchronous form of UpdateWith
func (e *WorkspacesEndpoint) UpdateAsync(ctx context.Context, opts UpdateWorkspaceOptions) *Future[*Response[Workspace]] {
	return async(ctx, opts, e.UpdateWith)
}
