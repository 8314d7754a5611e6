package filter

import (
	"time"

	"github.com/s0up4200/togglr/toggl"
)

// Entry is a time entry together with the names filters refer to. The Toggl
// API only returns ids, so names are resolved by the caller.
type Entry struct {
	*toggl.TimeEntry

	Project   string
	Client    string
	Workspace string
}

// Names maps ids to display names for entry resolution.
type Names struct {
	Workspaces map[int64]string
	Projects   map[int64]*toggl.Project
	Clients    map[int64]string
}

// NewNames indexes workspaces, projects and clients by id.
func NewNames(workspaces []*toggl.Workspace, projects []*toggl.Project, clients []*toggl.Client) Names {
	n := Names{
		Workspaces: make(map[int64]string, len(workspaces)),
		Projects:   make(map[int64]*toggl.Project, len(projects)),
		Clients:    make(map[int64]string, len(clients)),
	}
	for _, w := range workspaces {
		if w != nil {
			n.Workspaces[w.ID] = w.Name
		}
	}
	for _, p := range projects {
		if p != nil {
			n.Projects[p.ID] = p
		}
	}
	for _, c := range clients {
		if c != nil {
			n.Clients[c.ID] = c.Name
		}
	}
	return n
}

// Resolve wraps time entries, filling in project, client and workspace names.
func (n Names) Resolve(entries []*toggl.TimeEntry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, te := range entries {
		if te == nil {
			continue
		}
		e := Entry{TimeEntry: te, Workspace: n.Workspaces[te.WorkspaceID]}
		if te.ProjectID != nil {
			if p, ok := n.Projects[*te.ProjectID]; ok {
				e.Project = p.Name
				if p.HasClient() {
					e.Client = n.Clients[*p.ClientID]
				}
			}
		}
		out = append(out, e)
	}
	return out
}

// Hours returns the tracked time in hours, measuring running entries against now.
func (e Entry) Hours(now time.Time) float64 {
	return e.Elapsed(now).Hours()
}
