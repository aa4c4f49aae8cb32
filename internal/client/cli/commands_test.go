package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/hospctl/internal/client/api"
	"github.com/iudanet/hospctl/internal/client/iocli"
	"github.com/iudanet/hospctl/internal/client/session"
	"github.com/iudanet/hospctl/internal/client/storage"
	"github.com/iudanet/hospctl/internal/client/storage/boltdb"
	pkgapi "github.com/iudanet/hospctl/pkg/api"
)

// fakeAuthAPI implements session.AuthAPI
type fakeAuthAPI struct {
	loginFunc func(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.LoginResponse, error)
	meFunc    func(ctx context.Context) (*pkgapi.User, error)
}

func (f *fakeAuthAPI) Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.LoginResponse, error) {
	return f.loginFunc(ctx, req)
}

func (f *fakeAuthAPI) Me(ctx context.Context) (*pkgapi.User, error) {
	if f.meFunc == nil {
		return nil, &api.Error{Kind: api.KindNetwork, Message: "no server in test"}
	}
	return f.meFunc(ctx)
}

// testApp собирает App на реальном BoltDB хранилище и фейковом API.
// Вывод команд копится в builder для проверок.
func testApp(t *testing.T, authAPI *fakeAuthAPI) (*App, *strings.Builder) {
	t.Helper()

	var out strings.Builder
	io := &iocli.IOMock{
		PrintlnFunc: func(a ...any) {
			out.WriteString(fmt.Sprintln(a...))
		},
		PrintfFunc: func(format string, a ...any) {
			fmt.Fprintf(&out, format, a...)
		},
		ErrorfFunc: func(format string, a ...any) {
			fmt.Fprintf(&out, format, a...)
		},
	}

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	app := &App{
		io:      io,
		store:   store,
		session: session.NewManager(authAPI, store, nil),
	}
	return app, &out
}

func savedSession(t *testing.T, app *App) {
	t.Helper()

	err := app.store.SaveAuth(context.Background(), &storage.AuthRecord{
		User:         pkgapi.User{ID: "1", Username: "drjohnson", Name: "Dr. Johnson", Role: "surgeon"},
		AccessToken:  "A1",
		RefreshToken: "R1",
	})
	require.NoError(t, err)
}

func TestRunLogin(t *testing.T) {
	authAPI := &fakeAuthAPI{
		loginFunc: func(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.LoginResponse, error) {
			assert.Equal(t, "drjohnson", req.Username)
			assert.Equal(t, "secret", req.Password)
			return &pkgapi.LoginResponse{
				User:          pkgapi.User{ID: "1", Username: "drjohnson", Role: "surgeon"},
				TokenEnvelope: pkgapi.TokenEnvelope{Access: "A1", Refresh: "R1"},
			}, nil
		},
	}
	app, out := testApp(t, authAPI)

	mock := app.io.(*iocli.IOMock)
	mock.ReadInputFunc = func(prompt string) (string, error) { return "drjohnson", nil }
	mock.ReadPasswordFunc = func(prompt string) (string, error) { return "secret", nil }

	err := app.runLogin(context.Background())

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Login successful")
	assert.Contains(t, out.String(), "Signed in as: drjohnson")

	rec, err := app.store.GetAuth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A1", rec.AccessToken)
}

func TestRunLogin_InvalidUsername(t *testing.T) {
	app, _ := testApp(t, &fakeAuthAPI{})

	mock := app.io.(*iocli.IOMock)
	mock.ReadInputFunc = func(prompt string) (string, error) { return "dr johnson!", nil }

	err := app.runLogin(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid username")
}

func TestRunLogin_WrongCredentials(t *testing.T) {
	authAPI := &fakeAuthAPI{
		loginFunc: func(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.LoginResponse, error) {
			return nil, &api.Error{Kind: api.KindInvalidCredentials, StatusCode: 401, Message: "bad credentials"}
		},
	}
	app, _ := testApp(t, authAPI)

	mock := app.io.(*iocli.IOMock)
	mock.ReadInputFunc = func(prompt string) (string, error) { return "drjohnson", nil }
	mock.ReadPasswordFunc = func(prompt string) (string, error) { return "wrong", nil }

	err := app.runLogin(context.Background())

	require.Error(t, err)
	assert.EqualError(t, err, "Invalid username or password.")
}

func TestRunLogin_MalformedResponse(t *testing.T) {
	authAPI := &fakeAuthAPI{
		loginFunc: func(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.LoginResponse, error) {
			return &pkgapi.LoginResponse{User: pkgapi.User{Username: "drjohnson"}}, nil
		},
	}
	app, _ := testApp(t, authAPI)

	mock := app.io.(*iocli.IOMock)
	mock.ReadInputFunc = func(prompt string) (string, error) { return "drjohnson", nil }
	mock.ReadPasswordFunc = func(prompt string) (string, error) { return "secret", nil }

	err := app.runLogin(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected login response")
}

func TestRunLogout(t *testing.T) {
	app, out := testApp(t, &fakeAuthAPI{})
	savedSession(t, app)

	require.NoError(t, app.runLogout(context.Background()))

	assert.Contains(t, out.String(), "Logged out")
	_, err := app.store.GetAuth(context.Background())
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)

	// Повторный logout на пустом хранилище безопасен
	assert.NoError(t, app.runLogout(context.Background()))
}

func TestRunStatus_NotAuthenticated(t *testing.T) {
	app, out := testApp(t, &fakeAuthAPI{})

	require.NoError(t, app.runStatus(context.Background()))

	assert.Contains(t, out.String(), "Not authenticated")
}

func TestRunStatus_Authenticated(t *testing.T) {
	app, out := testApp(t, &fakeAuthAPI{})
	savedSession(t, app)

	require.NoError(t, app.runStatus(context.Background()))

	assert.Contains(t, out.String(), "Status: Authenticated")
	assert.Contains(t, out.String(), "Dr. Johnson (drjohnson)")
	assert.Contains(t, out.String(), "Role: surgeon")
}

func TestRunWhoami_NotAuthenticated(t *testing.T) {
	app, _ := testApp(t, &fakeAuthAPI{})

	err := app.runWhoami(context.Background())

	assert.ErrorIs(t, err, errNotAuthenticated)
}

// TestRunWhoami_OfflineFallback проверяет, что профиль показывается из
// сохранённой записи, когда сервер недоступен
func TestRunWhoami_OfflineFallback(t *testing.T) {
	app, out := testApp(t, &fakeAuthAPI{})
	savedSession(t, app)

	require.NoError(t, app.runWhoami(context.Background()))

	assert.Contains(t, out.String(), "Name: Dr. Johnson")
	assert.Contains(t, out.String(), "Username: drjohnson")
}

func TestRunWhoami_VerifiedProfile(t *testing.T) {
	authAPI := &fakeAuthAPI{
		meFunc: func(ctx context.Context) (*pkgapi.User, error) {
			return &pkgapi.User{
				ID: "1", Username: "drjohnson", Name: "Dr. J. Johnson",
				Department: "cardiology", Permissions: []string{"patients:read", "patients:write"},
			}, nil
		},
	}
	app, out := testApp(t, authAPI)
	savedSession(t, app)

	require.NoError(t, app.runWhoami(context.Background()))

	assert.Contains(t, out.String(), "Name: Dr. J. Johnson", "server profile wins over the persisted one")
	assert.Contains(t, out.String(), "Department: cardiology")
	assert.Contains(t, out.String(), "Permissions: patients:read, patients:write")
}
