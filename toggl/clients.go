package toggl

import "context"

// ClientsEndpoint manages clients
type ClientsEndpoint struct {
	res      resource[Client]
	projects resource[Project]
}

// List returns the clients of a workspace
func (e *ClientsEndpoint) List(ctx context.Context, workspaceID int64) (*ListResponse[Client], error) {
	return e.ListWith(ctx, ListClientsOptions{WorkspaceID: workspaceID})
}

// ListWith returns the clients matching opts
func (e *ClientsEndpoint) ListWith(ctx context.Context, opts ListClientsOptions) (*ListResponse[Client], error) {
	return e.res.many(ctx, opts)
}

// ListAsync is the asynchronous form of ListWith
func (e *ClientsEndpoint) ListAsync(ctx context.Context, opts ListClientsOptions) *Future[*ListResponse[Client]] {
	return async(ctx, opts, e.ListWith)
}

// Get returns one client
func (e *ClientsEndpoint) Get(ctx context.Context, workspaceID, clientID int64) (*Response[Client], error) {
	return e.GetWith(ctx, GetClientOptions{WorkspaceID: workspaceID, ClientID: clientID})
}

// GetWith returns the client described by opts
func (e *ClientsEndpoint) GetWith(ctx context.Context, opts GetClientOptions) (*Response[Client], error) {
	return e.res.one(ctx, opts)
}

// GetAsync is the asynchronous form of GetWith
func (e *ClientsEndpoint) GetAsync(ctx context.Context, opts GetClientOptions) *Future[*Response[Client]] {
	return async(ctx, opts, e.GetWith)
}

// Create creates a client named name in a workspace
func (e *ClientsEndpoint) Create(ctx context.Context, workspaceID int64, name string) (*Response[Client], error) {
	return e.CreateWith(ctx, CreateClientOptions{WorkspaceID: workspaceID, Name: name})
}

// CreateWith creates the client described by opts
func (e *ClientsEndpoint) CreateWith(ctx context.Context, opts CreateClientOptions) (*Response[Client], error) {
	return e.res.one(ctx, opts)
}

// CreateAsync is the asynchronous form of CreateWith
func (e *ClientsEndpoint) CreateAsync(ctx context.Context, opts CreateClientOptions) *Future[*Response[Client]] {
	return async(ctx, opts, e.CreateWith)
}

// Update renames a client
func (e *ClientsEndpoint) Update(ctx context.Context, workspaceID, clientID int64, name string) (*Response[Client], error) {
	return e.UpdateWith(ctx, UpdateClientOptions{WorkspaceID: workspaceID, ClientID: clientID, Name: name})
}

// UpdateWith applies opts to a client
func (e *ClientsEndpoint) UpdateWith(ctx context.Context, opts UpdateClientOptions) (*Response[Client], error) {
	return e.res.one(ctx, opts)
}

// UpdateAsync is the asynchronous form of UpdateWith
func (e *ClientsEndpoint) UpdateAsync(ctx context.Context, opts UpdateClientOptions) *Future[*Response[Client]] {
	return async(ctx, opts, e.UpdateWith)
}

// Delete deletes a client
func (e *ClientsEndpoint) Delete(ctx context.Context, workspaceID, clientID int64) (*Response[NoContent], error) {
	return e.DeleteWith(ctx, DeleteClientOptions{WorkspaceID: workspaceID, ClientID: clientID})
}

// DeleteWith deletes the client described by opts
func (e *ClientsEndpoint) DeleteWith(ctx context.Context, opts DeleteClientOptions) (*Response[NoContent], error) {
	return noContent(e.res).one(ctx, opts)
}

// DeleteAsync is the asynchronous form of DeleteWith
func (e *ClientsEndpoint) DeleteAsync(ctx context.Context, opts DeleteClientOptions) *Future[*Response[NoContent]] {
	return async(ctx, opts, e.DeleteWith)
}

// Archive archives a client. Only the v9 API offers this.
func (e *ClientsEndpoint) Archive(ctx context.Context, workspaceID, clientID int64) (*Response[NoContent], error) {
	return e.ArchiveWith(ctx, ArchiveClientOptions{WorkspaceID: workspaceID, ClientID: clientID})
}

// Restore restores an archived client. Only the v9 API offers this.
func (e *ClientsEndpoint) Restore(ctx context.Context, workspaceID, clientID int64) (*Response[NoContent], error) {
	return e.ArchiveWith(ctx, ArchiveClientOptions{WorkspaceID: workspaceID, ClientID: clientID, Restore: true})
}

// ArchiveWith archives or restores the client described by opts
func (e *ClientsEndpoint) ArchiveWith(ctx context.Context, opts ArchiveClientOptions) (*Response[NoContent], error) {
	return noContent(e.res).one(ctx, opts)
}

// ArchiveAsync is the asynchronous form of ArchiveWith
func (e *ClientsEndpoint) ArchiveAsync(ctx context.Context, opts ArchiveClientOptions) *Future[*Response[NoContent]] {
	return async(ctx, opts, e.ArchiveWith)
}

// Projects returns the projects of a client. Only the v8 API offers this.
func (e *ClientsEndpoint) Projects(ctx context.Context, clientID int64) (*ListResponse[Project], error) {
	return e.ProjectsWith(ctx, ClientProjectsOptions{ClientID: clientID})
}

// ProjectsWith returns the client projects matching opts
func (e *ClientsEndpoint) ProjectsWith(ctx context.Context, opts ClientProjectsOptions) (*ListResponse[Project], error) {
	return e.projects.many(ctx, opts)
}

// ProjectsAsync is the asynchronous form of ProjectsWith
func (e *ClientsEndpoint) ProjectsAsync(ctx context.Context, opts ClientProjectsOptions) *Future[*ListResponse[Project]] {
	return async(ctx, opts, e.ProjectsWith)
}

func noContent[T any](r resource[T]) resource[NoContent] {
	return newResource(r.transport, r.api, r.logger, parseNoContent)
}
