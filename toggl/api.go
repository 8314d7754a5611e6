package toggl

import (
	"time"

	"github.com/rs/zerolog"
)

// API groups the endpoint families of one Toggl API version.
type API struct {
	Version     Version
	Clients     *ClientsEndpoint
	Projects    *ProjectsEndpoint
	TimeEntries *TimeEntriesEndpoint
	Tags        *TagsEndpoint
	Workspaces  *WorkspacesEndpoint
	User        *UserEndpoint
}

// NewAPI wires every endpoint of api over transport.
func NewAPI(transport Transport, api Version, opts ...Option) (*API, error) {
	if transport == nil {
		return nil, ErrNilArgument
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newAPI(transport, api, o.logger.With().Str("api", api.Name).Logger()), nil
}

func newAPI(t Transport, api Version, logger zerolog.Logger) *API {
	return &API{
		Version: api,
		Clients: &ClientsEndpoint{
			res:      newResource(t, api, logger, ParseClient),
			projects: newResource(t, api, logger, ParseProject),
		},
		Projects: &ProjectsEndpoint{res: newResource(t, api, logger, ParseProject)},
		TimeEntries: &TimeEntriesEndpoint{
			res: newResource(t, api, logger, ParseTimeEntry),
			now: time.Now,
		},
		Tags:       &TagsEndpoint{res: newResource(t, api, logger, ParseTag)},
		Workspaces: &WorkspacesEndpoint{res: newResource(t, api, logger, ParseWorkspace)},
		User: &UserEndpoint{
			res:   newResource(t, api, logger, ParseUser),
			prefs: newResource(t, api, logger, ParsePreferences),
		},
	}
}

// Service is the single entry point: the current Track API and the legacy
// API, sharing one transport.
type Service struct {
	Track  *API
	Legacy *API
}

// NewService wires both API versions over an existing transport.
func NewService(transport Transport, opts ...Option) (*Service, error) {
	track, err := NewAPI(transport, V9, opts...)
	if err != nil {
		return nil, err
	}
	legacy, err := NewAPI(transport, V8, opts...)
	if err != nil {
		return nil, err
	}
	return &Service{Track: track, Legacy: legacy}, nil
}

// NewServiceWithToken builds the default transport for token and wires both
// API versions over it.
func NewServiceWithToken(token string, opts ...Option) (*Service, error) {
	transport, err := NewTransport(token, opts...)
	if err != nil {
		return nil, err
	}
	return NewService(transport, opts...)
}

// Version returns the API for a version, falling back to Track.
func (s *Service) Version(v Version) *API {
	if v.Name == V8.Name {
		return s.Legacy
	}
	return s.Track
}
