package toggl

import (
	"strconv"
	"strings"
)

// Routes locates one resource family under an API version. Templates use
// {wid} for the workspace id and {id} for one or more comma-joined ids; an
// empty template means the version does not offer that operation.
type Routes struct {
	List     string
	Create   string
	Item     string
	Items    string
	Envelope string
}

// Version describes one generation of the Toggl API. The same request builders
// and endpoints serve every version; only this data differs.
type Version struct {
	Name   string
	Prefix string
	// DataEnvelope is set when single-object responses arrive as {"data": ...}.
	DataEnvelope bool
	// LegacyFields selects the short body keys (wid, pid, cid, tid).
	LegacyFields bool

	Clients     Routes
	Projects    Routes
	TimeEntries Routes
	Tags        Routes
	Workspaces  Routes

	ClientProjects string
	ClientArchive  string
	ClientRestore  string
	GetEntry       string
	CurrentEntry   string
	StartEntry     string
	StopEntry      string
	StopWithBody   bool
	Me             string
	MeEnvelope     string
	Preferences    string
}

// V9 is the current Toggl Track API.
var V9 = Version{
	Name:   "v9",
	Prefix: "/api/v9",
	Clients: Routes{
		List:   "/workspaces/{wid}/clients",
		Create: "/workspaces/{wid}/clients",
		Item:   "/workspaces/{wid}/clients/{id}",
	},
	Projects: Routes{
		List:   "/workspaces/{wid}/projects",
		Create: "/workspaces/{wid}/projects",
		Item:   "/workspaces/{wid}/projects/{id}",
		Items:  "/workspaces/{wid}/projects/{id}",
	},
	TimeEntries: Routes{
		List:   "/me/time_entries",
		Create: "/workspaces/{wid}/time_entries",
		Item:   "/workspaces/{wid}/time_entries/{id}",
		Items:  "/workspaces/{wid}/time_entries/{id}",
	},
	Tags: Routes{
		List:   "/workspaces/{wid}/tags",
		Create: "/workspaces/{wid}/tags",
		Item:   "/workspaces/{wid}/tags/{id}",
	},
	Workspaces: Routes{
		List: "/me/workspaces",
		Item: "/workspaces/{wid}",
	},
	ClientArchive: "/workspaces/{wid}/clients/{id}/archive",
	ClientRestore: "/workspaces/{wid}/clients/{id}/restore",
	GetEntry:      "/me/time_entries/{id}",
	CurrentEntry:  "/me/time_entries/current",
	StopEntry:     "/workspaces/{wid}/time_entries/{id}",
	StopWithBody:  true,
	Me:            "/me",
	Preferences:   "/me/preferences",
}

// V8 is the legacy Toggl API.
var V8 = Version{
	Name:         "v8",
	Prefix:       "/api/v8",
	DataEnvelope: true,
	LegacyFields: true,
	Clients: Routes{
		List:     "/workspaces/{wid}/clients",
		Create:   "/clients",
		Item:     "/clients/{id}",
		Envelope: "client",
	},
	Projects: Routes{
		List:     "/workspaces/{wid}/projects",
		Create:   "/projects",
		Item:     "/projects/{id}",
		Items:    "/projects/{id}",
		Envelope: "project",
	},
	TimeEntries: Routes{
		List:     "/time_entries",
		Create:   "/time_entries",
		Item:     "/time_entries/{id}",
		Items:    "/time_entries/{id}",
		Envelope: "time_entry",
	},
	Tags: Routes{
		List:     "/workspaces/{wid}/tags",
		Create:   "/tags",
		Item:     "/tags/{id}",
		Envelope: "tag",
	},
	Workspaces: Routes{
		List:     "/workspaces",
		Item:     "/workspaces/{wid}",
		Envelope: "workspace",
	},
	ClientProjects: "/clients/{id}/projects",
	GetEntry:       "/time_entries/{id}",
	CurrentEntry:   "/time_entries/current",
	StartEntry:     "/time_entries/start",
	StopEntry:      "/time_entries/{id}/stop",
	Me:             "/me",
	MeEnvelope:     "user",
}

// ParseVersion maps "v8"/"v9" (with or without the leading v) to a Version.
func ParseVersion(name string) (Version, bool) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "v") {
	case "9", "":
		return V9, true
	case "8":
		return V8, true
	}
	return Version{}, false
}

// String returns the version name
func (v Version) String() string {
	return v.Name
}

// field picks the body key for this version.
func (v Version) field(current, legacy string) string {
	if v.LegacyFields {
		return legacy
	}
	return current
}

// path expands a route template under the version prefix.
func (v Version) path(tpl string, workspaceID int64, ids ...int64) string {
	r := strings.NewReplacer(
		"{wid}", strconv.FormatInt(workspaceID, 10),
		"{id}", joinIDs(ids),
	)
	return v.Prefix + r.Replace(tpl)
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
