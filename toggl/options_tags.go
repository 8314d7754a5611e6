package toggl

import "net/http"

// ListTagsOptions lists the tags of a workspace.
type ListTagsOptions struct {
	WorkspaceID int64
}

// Request implements Options
func (o ListTagsOptions) Request(api Version) (Request, error) {
	const op = "list tags"
	if err := requireID(op, "workspace_id", o.WorkspaceID); err != nil {
		return Request{}, err
	}
	path, err := route(api, op, api.Tags.List, o.WorkspaceID, "tag_id")
	if err != nil {
		return Request{}, err
	}
	return get(path), nil
}

// CreateTagOptions creates a tag in a workspace.
type CreateTagOptions struct {
	WorkspaceID int64
	Name        string
}

// Request implements Options
func (o CreateTagOptions) Request(api Version) (Request, error) {
	const op = "create tag"
	if err := requireRoute(op, api.Tags.Create); err != nil {
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
	return withBody(http.MethodPost, api.path(api.Tags.Create, o.WorkspaceID), api.Tags.Envelope, b)
}

// UpdateTagOptions renames a tag.
type UpdateTagOptions struct {
	WorkspaceID int64
	TagID       int64
	Name        string
}

// Request implements Options
func (o UpdateTagOptions) Request(api Version) (Request, error) {
	const op = "update tag"
	path, err := route(api, op, api.Tags.Item, o.WorkspaceID, "tag_id", o.TagID)
	if err != nil {
		return Request{}, err
	}
	if err := requireName(op, o.Name); err != nil {
		return Request{}, err
	}
	return withBody(http.MethodPut, path, api.Tags.Envelope, newBody().set("name", o.Name))
}

// DeleteTagOptions deletes one tag.
type DeleteTagOptions struct {
	WorkspaceID int64
	TagID       int64
}

// Request implements Options
func (o DeleteTagOptions) Request(api Version) (Request, error) {
	path, err := route(api, "delete tag", api.Tags.Item, o.WorkspaceID, "tag_id", o.TagID)
	if err != nil {
		return Request{}, err
	}
	return del(path), nil
}
