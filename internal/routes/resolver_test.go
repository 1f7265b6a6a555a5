package routes

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakePatterns implements PatternMatcher from a method+uri lookup table.
type fakePatterns map[string][]string

func (f fakePatterns) PatternFilters(method, uri string) []string {
	return f[method+" "+uri]
}

// mockProvider implements MiddlewareProvider for testing.
type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) MiddlewareFor(action string) ([]MiddlewareDescriptor, error) {
	args := m.Called(action)
	descriptors, _ := args.Get(0).([]MiddlewareDescriptor)
	return descriptors, args.Error(1)
}

func TestResolve_DeduplicatesAcrossSources(t *testing.T) {
	patterns := fakePatterns{"GET /users": {"auth"}}
	r := NewResolver(patterns, nil, nil)

	got, err := r.Resolve(Route{
		Methods:    []string{"GET"},
		URI:        "/users",
		Action:     ClosureAction,
		Middleware: []string{"auth"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"auth"}, got)
}

func TestResolve_FirstSeenOrder(t *testing.T) {
	patterns := fakePatterns{
		"GET /users":  {"throttle", "web"},
		"HEAD /users": {"cache", "throttle"},
	}
	provider := &mockProvider{}
	provider.On("MiddlewareFor", "UserController@index").
		Return([]MiddlewareDescriptor{{Name: "log"}, {Name: "cache"}}, nil)

	r := NewResolver(patterns, provider, nil)

	got, err := r.Resolve(Route{
		Methods:    []string{"GET", "HEAD"},
		URI:        "/users",
		Action:     "UserController@index",
		Middleware: []string{"web", "bindings"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"web", "bindings", "throttle", "cache", "log"}, got)
	provider.AssertExpectations(t)
}

func TestResolve_ControllerOptions(t *testing.T) {
	descriptors := []MiddlewareDescriptor{
		{Name: "only-show", Only: []string{"show"}},
		{Name: "except-show", Except: []string{"show"}},
		{Name: "always"},
	}

	tests := []struct {
		action string
		want   []string
	}{
		{action: "UserController@show", want: []string{"only-show", "always"}},
		{action: "UserController@index", want: []string{"except-show", "always"}},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			provider := &mockProvider{}
			provider.On("MiddlewareFor", tt.action).Return(descriptors, nil)

			got, err := NewResolver(nil, provider, nil).Resolve(Route{Action: tt.action})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_AliasesApplyToControllerMiddleware(t *testing.T) {
	provider := &mockProvider{}
	provider.On("MiddlewareFor", "UserController@show").
		Return([]MiddlewareDescriptor{{Name: "auth"}, {Name: "raw"}}, nil)
	aliases := map[string]string{"auth": `App\Http\Middleware\Authenticate`}

	got, err := NewResolver(nil, provider, aliases).Resolve(Route{
		Action:     "UserController@show",
		Middleware: []string{"auth"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"auth", `App\Http\Middleware\Authenticate`, "raw"}, got)
}

func TestResolve_SkipsProviderForInlineHandlers(t *testing.T) {
	provider := &mockProvider{}
	r := NewResolver(nil, provider, nil)

	for _, action := range []string{"", ClosureAction, "NoMethod", "@show", "UserController@"} {
		got, err := r.Resolve(Route{Action: action, Middleware: []string{"web"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"web"}, got)
	}
	provider.AssertNotCalled(t, "MiddlewareFor", mock.Anything)
}

func TestResolve_ProviderFailure(t *testing.T) {
	lookupErr := errors.New("container: no binding for UserController")
	provider := &mockProvider{}
	provider.On("MiddlewareFor", "UserController@show").Return(nil, lookupErr)

	_, err := NewResolver(nil, provider, nil).Resolve(Route{Action: "UserController@show"})
	require.ErrorIs(t, err, lookupErr)
	assert.Contains(t, err.Error(), "UserController@show")
}

func TestMiddlewareDescriptor_AppliesTo(t *testing.T) {
	only := MiddlewareDescriptor{Name: "a", Only: []string{"show"}}
	assert.True(t, only.AppliesTo("show"))
	assert.False(t, only.AppliesTo("index"))

	except := MiddlewareDescriptor{Name: "b", Except: []string{"show"}}
	assert.False(t, except.AppliesTo("show"))
	assert.True(t, except.AppliesTo("index"))

	assert.True(t, MiddlewareDescriptor{Name: "c"}.AppliesTo("anything"))
}

func TestSplitAction(t *testing.T) {
	controller, method, ok := SplitAction("App\\Http\\UserController@show")
	require.True(t, ok)
	assert.Equal(t, "App\\Http\\UserController", controller)
	assert.Equal(t, "show", method)

	_, _, ok = SplitAction(ClosureAction)
	assert.False(t, ok)
}
