// Package toggl provides a typed client for the Toggl Track REST API.
//
// Both API generations are served by the same code: V9 (the current Track API)
// and V8 (the legacy API) are values of Version that carry route templates
// and wire conventions, while request builders and endpoints are shared.
//
// # Architecture
//
// The package is organized into several layers:
//
//   - Models: Client, Project, TimeEntry, Workspace, Tag, User and Preferences,
//     built from JSON by the ParseX functions
//   - Options: one struct per operation whose Request method validates input
//     and produces the method, path, query and body of the call
//   - Responses: Response and ListResponse keep the raw body and parse it lazily
//   - Endpoints: ClientsEndpoint, ProjectsEndpoint, TimeEntriesEndpoint,
//     TagsEndpoint, WorkspacesEndpoint and UserEndpoint
//   - Service: groups the endpoints of both versions over one Transport
//
// # Usage
//
//	svc, err := toggl.NewServiceWithToken(os.Getenv("TOGGL_API_TOKEN"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resp, err := svc.Track.Clients.Create(ctx, 42, "Acme")
//	if err != nil {
//		log.Fatal(err)
//	}
//	client, err := resp.Body()
//
// Every operation also has a With form taking its options struct and an Async
// form returning a Future:
//
//	f := svc.Track.TimeEntries.ListAsync(ctx, toggl.ListTimeEntriesOptions{
//		Start: start,
//		End:   end,
//	})
//	entries, err := f.Await()
//
// # Error Handling
//
// Invalid options fail before any I/O with a *ValidationError that matches
// ErrRequiredField. Operations a version does not offer fail with
// ErrUnsupported. Non-success statuses become *APIError:
//
//	var apiErr *toggl.APIError
//	if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
//		// Handle auth failure
//	}
package toggl
