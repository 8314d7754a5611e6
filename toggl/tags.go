package toggl

import "context"

// TagsEndpoint manages tags
type TagsEndpoint struct {
	res resource[Tag]
}

// List returns the tags of a workspace
func (e *TagsEndpoint) List(ctx context.Context, workspaceID int64) (*ListResponse[Tag], error) {
	return e.ListWith(ctx, ListTagsOptions{WorkspaceID: workspaceID})
}

// ListWith returns the tags matching opts
func (e *TagsEndpoint) ListWith(ctx context.Context, opts ListTagsOptions) (*ListResponse[Tag], error) {
	return e.res.many(ctx, opts)
}

// ListAsync is the asynchronous form of ListWith
func (e *TagsEndpoint) ListAsync(ctx context.Context, opts ListTagsOptions) *Future[*ListResponse[Tag]] {
	return async(ctx, opts, e.ListWith)
}

// Create creates a tag named name in a workspace
func (e *TagsEndpoint) Create(ctx context.Context, workspaceID int64, name string) (*Response[Tag], error) {
	return e.CreateWith(ctx, CreateTagOptions{WorkspaceID: workspaceID, Name: name})
}

// CreateWith creates the tag described by opts
func (e *TagsEndpoint) CreateWith(ctx context.Context, opts CreateTagOptions) (*Response[Tag], error) {
	return e.res.one(ctx, opts)
}

// CreateAsync is the asynchronous form of CreateWith
func (e *TagsEndpoint) CreateAsync(ctx context.Context, opts CreateTagOptions) *Future[*Response[Tag]] {
	return async(ctx, opts, e.CreateWith)
}

// Update renames a tag
func (e *TagsEndpoint) Update(ctx context.Context, workspaceID, tagID int64, name string) (*Response[Tag], error) {
	return e.UpdateWith(ctx, UpdateTagOptions{WorkspaceID: workspaceID, TagID: tagID, Name: name})
}

// UpdateWith applies opts to a tag
func (e *TagsEndpoint) UpdateWith(ctx context.Context, opts UpdateTagOptions) (*Response[Tag], error) {
	return e.res.one(ctx, opts)
}

// UpdateAsync is the asynchronous form of UpdateWith
func (e *TagsEndpoint) UpdateAsync(ctx context.Context, opts UpdateTagOptions) *Future[*Response[Tag]] {
	return async(ctx, opts, e.UpdateWith)
}

// Delete deletes a tag
func (e *TagsEndpoint) Delete(ctx context.Context, workspaceID, tagID int64) (*Response[NoContent], error) {
	return e.DeleteWith(ctx, DeleteTagOptions{WorkspaceID: workspaceID, TagID: tagID})
}

// DeleteWith deletes the tag described by opts
func (e *TagsEndpoint) DeleteWith(ctx context.Context, opts DeleteTagOptions) (*Response[NoContent], error) {
	return noContent(e.res).one(ctx, opts)
}

// DeleteAsync is the asynchronous form of DeleteWith
func (e *TagsEndpoint) DeleteAsync(ctx context.Context, opts DeleteTagOptions) *Future[*Response[NoContent]] {
	return async(ctx, opts, e.DeleteWith)
}
