package toggl

import "context"

// UserEndpoint reads and updates the authenticated account
type UserEndpoint struct {
	res   resource[User]
	prefs resource[Preferences]
}

// Me returns the authenticated user
func (e *UserEndpoint) Me(ctx context.Context) (*Response[User], error) {
	return e.MeWith(ctx, MeOptions{})
}

// MeWith returns the authenticated user as described by opts
func (e *UserEndpoint) MeWith(ctx context.Context, opts MeOptions) (*Response[User], error) {
	return e.res.one(ctx, opts)
}

// MeAsync is the asynchronous form of MeWith
func (e *UserEndpoint) MeAsync(ctx context.Context, opts MeOptions) *Future[*Response[User]] {
	return async(ctx, opts, e.MeWith)
}

// UpdateWith changes account settings
func (e *UserEndpoint) UpdateWith(ctx context.Context, opts UpdateMeOptions) (*Response[User], error) {
	return e.res.one(ctx, opts)
}

// UpdateAsync is the asynchronous form of UpdateWith
func (e *UserEndpoint) UpdateAsync(ctx context.Context, opts UpdateMeOptions) *Future[*Response[User]] {
	return async(ctx, opts, e.UpdateWith)
}

// Preferences returns display preferences. Only the v9 API offers this.
func (e *UserEndpoint) Preferences(ctx context.Context) (*Response[Preferences], error) {
	return e.prefs.one(ctx, PreferencesOptions{})
}

// PreferencesAsync is the asynchronous form of Preferences
func (e *UserEndpoint) PreferencesAsync(ctx context.Context) *Future[*Response[Preferences]] {
	return async(ctx, PreferencesOptions{}, func(ctx context.Context, _ PreferencesOptions) (*Response[Preferences], error) {
		return e.Preferences(ctx)
	})
}

// UpdatePreferencesWith changes display preferences. The API answers with an
// empty body, so the response carries no model.
func (e *UserEndpoint) UpdatePreferencesWith(ctx context.Context, opts UpdatePreferencesOptions) (*Response[NoContent], error) {
	return noContent(e.prefs).one(ctx, opts)
}

// UpdatePreferencesAsync is the asynchronous form of UpdatePreferencesWith
func (e *UserEndpoint) UpdatePreferencesAsync(ctx context.Context, opts UpdatePreferencesOptions) *Future[*Response[NoContent]] {
	return async(ctx, opts, e.UpdatePreferencesWith)
}
