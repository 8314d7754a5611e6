package toggl

import (
	"net/http"
	"net/url"
	"time"
)

// MeOptions fetches the authenticated user.
type MeOptions struct {
	WithRelatedData bool
}

// Request implements Options
func (o MeOptions) Request(api Version) (Request, error) {
	path, err := route(api, "get me", api.Me, 0, "")
	if err != nil {
		return Request{}, err
	}
	req := get(path)
	if o.WithRelatedData {
		req.Query = url.Values{"with_related_data": {"true"}}
	}
	return req, nil
}

// UpdateMeOptions changes account settings of the authenticated user.
type UpdateMeOptions struct {
	FullName           string
	Email              string
	Timezone           string
	DefaultWorkspaceID int64
	BeginningOfWeek    *time.Weekday
}

// Request implements Options
func (o UpdateMeOptions) Request(api Version) (Request, error) {
	const op = "update me"
	path, err := route(api, op, api.Me, 0, "")
	if err != nil {
		return Request{}, err
	}
	b := newBody().
		setString("fullname", o.FullName).
		setString("email", o.Email).
		setString("timezone", o.Timezone).
		setIf(o.DefaultWorkspaceID > 0, api.field("default_workspace_id", "default_wid"), o.DefaultWorkspaceID).
		setIf(o.BeginningOfWeek != nil, "beginning_of_week", weekday(o.BeginningOfWeek))
	if b.Len() == 0 {
		return Request{}, invalid(op, "fields", "has nothing to update")
	}
	return withBody(http.MethodPut, path, api.MeEnvelope, b)
}

func weekday(d *time.Weekday) int {
	if d == nil {
		return 0
	}
	return int(*d)
}

// PreferencesOptions fetches the user's display preferences.
type PreferencesOptions struct{}

// Request implements Options
func (o PreferencesOptions) Request(api Version) (Request, error) {
	path, err := route(api, "get preferences", api.Preferences, 0, "")
	if err != nil {
		return Request{}, err
	}
	return get(path), nil
}

// UpdatePreferencesOptions changes the user's display preferences.
type UpdatePreferencesOptions struct {
	DateFormat      string
	TimeOfDayFormat string
	DurationFormat  DurationFormat
}

// Request implements Options
func (o UpdatePreferencesOptions) Request(api Version) (Request, error) {
	const op = "update preferences"
	path, err := route(api, op, api.Preferences, 0, "")
	if err != nil {
		return Request{}, err
	}
	if o.DurationFormat != "" && !o.DurationFormat.Valid() {
		return Request{}, invalid(op, "duration_format", "must be classic, improved or decimal")
	}
	b := newBody().
		setString("date_format", o.DateFormat).
		setString("timeofday_format", o.TimeOfDayFormat).
		setString("duration_format", string(o.DurationFormat))
	if b.Len() == 0 {
		return Request{}, invalid(op, "fields", "has nothing to update")
	}
	return withBody(http.MethodPost, path, "", b)
}
