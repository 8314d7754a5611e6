package toggl

import (
	"net/http"
	"net/url"
)

// ClientStatus filters client listings
type ClientStatus string

const (
	// ClientStatusActive lists clients that are not archived
	ClientStatusActive ClientStatus = "active"
	// ClientStatusArchived lists archived clients only
	ClientStatusArchived ClientStatus = "archived"
	// ClientStatusBoth lists every client
	ClientStatusBoth ClientStatus = "both"
)

// ListClientsOptions lists the clients of a workspace.
type ListClientsOptions struct {
	WorkspaceID int64
	Status      ClientStatus
	Name        string
}

// Request implements Options
func (o ListClientsOptions) Request(api Version) (Request, error) {
	const op = "list clients"
	if err := requireID(op, "workspace_id", o.WorkspaceID); err != nil {
		return Request{}, err
	}
	path, err := route(api, op, api.Clients.List, o.WorkspaceID, "client_id")
	if err != nil {
		return Request{}, err
	}
	req := get(path)
	q := url.Values{}
	if o.Status != "" {
		q.Set("status", string(o.Status))
	}
	if o.Name != "" {
		q.Set("name", o.Name)
	}
	if len(q) > 0 {
		req.Query = q
	}
	return req, nil
}

// GetClientOptions fetches one client.
type GetClientOptions struct {
	WorkspaceID int64
	ClientID    int64
}

// Request implements Options
func (o GetClientOptions) Request(api Version) (Request, error) {
	path, err := route(api, "get client", api.Clients.Item, o.WorkspaceID, "client_id", o.ClientID)
	if err != nil {
		return Request{}, err
	}
	return get(path), nil
}

// CreateClientOptions creates a client in a workspace.
type CreateClientOptions struct {
	WorkspaceID int64
	Name        string
	Notes       string
}

// Request implements Options
func (o CreateClientOptions) Request(api Version) (Request, error) {
	const op = "create client"
	if err := requireRoute(op, api.Clients.Create); err != nil {
		return Request{}, err
	}
	if err := requireID(op, "workspace_id", o.WorkspaceID); err != nil {
		return Request{}, err
	}
	if err := requireName(op, o.Name); err != nil {
		return Request{}, err
	}
	b := newBody().
		set("wid", o.WorkspaceID).
		set("name", o.Name).
		setString("notes", o.Notes)
	return withBody(http.MethodPost, api.path(api.Clients.Create, o.WorkspaceID), api.Clients.Envelope, b)
}

// UpdateClientOptions renames or annotates an existing client.
type UpdateClientOptions struct {
	WorkspaceID int64
	ClientID    int64
	Name        string
	Notes       string
}

// Request implements Options
func (o UpdateClientOptions) Request(api Version) (Request, error) {
	const op = "update client"
	path, err := route(api, op, api.Clients.Item, o.WorkspaceID, "client_id", o.ClientID)
	if err != nil {
		return Request{}, err
	}
	if err := requireName(op, o.Name); err != nil {
		return Request{}, err
	}
	b := newBody().
		setIf(o.WorkspaceID > 0, "wid", o.WorkspaceID).
		set("name", o.Name).
		setString("notes", o.Notes)
	return withBody(http.MethodPut, path, api.Clients.Envelope, b)
}

// DeleteClientOptions deletes one client.
type DeleteClientOptions struct {
	WorkspaceID int64
	ClientID    int64
}

// Request implements Options
func (o DeleteClientOptions) Request(api Version) (Request, error) {
	path, err := route(api, "delete client", api.Clients.Item, o.WorkspaceID, "client_id", o.ClientID)
	if err != nil {
		return Request{}, err
	}
	return del(path), nil
}

// ArchiveClientOptions archives a client, or restores it when Restore is set.
type ArchiveClientOptions struct {
	WorkspaceID int64
	ClientID    int64
	Restore     bool
}

// Request implements Options
func (o ArchiveClientOptions) Request(api Version) (Request, error) {
	op, tpl := "archive client", api.ClientArchive
	if o.Restore {
		op, tpl = "restore client", api.ClientRestore
	}
	path, err := route(api, op, tpl, o.WorkspaceID, "client_id", o.ClientID)
	if err != nil {
		return Request{}, err
	}
	return Request{Method: http.MethodPost, Path: path}, nil
}

// ClientProjectsOptions lists the projects of one client.
type ClientProjectsOptions struct {
	ClientID int64
	// Active nil lists both active and archived projects.
	Active *bool
}

// Request implements Options
func (o ClientProjectsOptions) Request(api Version) (Request, error) {
	path, err := route(api, "list client projects", api.ClientProjects, 0, "client_id", o.ClientID)
	if err != nil {
		return Request{}, err
	}
	req := get(path)
	req.Query = activeQuery(o.Active, "both")
	return req, nil
}

func activeQuery(active *bool, all string) url.Values {
	switch {
	case active == nil && all == "":
		return nil
	case active == nil:
		return url.Values{"active": {all}}
	case *active:
		return url.Values{"active": {"true"}}
	default:
		return url.Values{"active": {"false"}}
	}
}
