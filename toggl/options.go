package toggl

import (
	"fmt"
	"strings"
)

// Options is implemented by every request options struct.
type Options interface {
	Request(api Version) (Request, error)
}

func requireRoute(op, tpl string) error {
	if tpl == "" {
		return fmt.Errorf("toggl: %s: %w", op, ErrUnsupported)
	}
	return nil
}

// requireWorkspace only insists on a workspace id when the route embeds one,
// since several v8 routes are addressed by object id alone.
func requireWorkspace(op, tpl string, workspaceID int64) error {
	if strings.Contains(tpl, "{wid}") && workspaceID <= 0 {
		return missing(op, "workspace_id")
	}
	return nil
}

func requireID(op, field string, id int64) error {
	if id <= 0 {
		return missing(op, field)
	}
	return nil
}

func requireIDs(op, field string, ids []int64) error {
	if len(ids) == 0 {
		return missing(op, field)
	}
	for i, id := range ids {
		if id <= 0 {
			return invalid(op, field, fmt.Sprintf("contains non-positive id at index %d", i))
		}
	}
	return nil
}

func requireName(op, name string) error {
	if strings.TrimSpace(name) == "" {
		return missing(op, "name")
	}
	return nil
}

// route validates the template, the workspace id and every id it embeds, in
// that order, then expands it.
func route(api Version, op, tpl string, workspaceID int64, idField string, ids ...int64) (string, error) {
	if err := requireRoute(op, tpl); err != nil {
		return "", err
	}
	if err := requireWorkspace(op, tpl, workspaceID); err != nil {
		return "", err
	}
	if strings.Contains(tpl, "{id}") {
		if err := requireIDs(op, idField, ids); err != nil {
			return "", err
		}
	}
	return api.path(tpl, workspaceID, ids...), nil
}
