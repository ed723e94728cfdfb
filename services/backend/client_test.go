package backendsvc

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/registrar/core"
	"github.com/trezcool/registrar/core/router"
	"github.com/trezcool/registrar/core/session"
	"github.com/trezcool/registrar/core/toast"
	testutil "github.com/trezcool/registrar/tests"
)

var ctx = context.Background()

type testEnv struct {
	srv    *httptest.Server
	client *Client
	sess   *session.Store
	router *router.Router
	toasts *toast.Center
	logger *testutil.Logger
}

func newTestEnv(t *testing.T, handler http.HandlerFunc) *testEnv {
	t.Helper()
	env := &testEnv{srv: httptest.NewServer(handler), logger: testutil.NewLogger()}
	t.Cleanup(env.srv.Close)

	var err error
	env.sess, err = session.NewStore(ctx, testutil.NewKVStore(), env.logger)
	require.NoError(t, err)
	env.router = router.NewRouter(router.DefaultTable(), env.sess, env.logger)
	env.toasts = toast.NewCenter(nil)

	conf := &core.Config{API: core.APIConfig{Endpoint: env.srv.URL + "/", Timeout: 5 * time.Second}}
	env.client, err = NewClient(conf, env.sess, env.router, env.toasts, env.logger)
	require.NoError(t, err)
	return env
}

// login stores a session granting VIEW on InquireCDStudent and opens its screen.
func (env *testEnv) login(t *testing.T) {
	t.Helper()
	env.sess.Save(ctx, session.LoginPayload{
		AccessToken: "abc",
		UserData:    session.Profile{Username: "admin"},
		UserPermissions: session.Permissions{UserApplications: []session.Application{
			{ID: session.InquireCDStudent, Rights: []session.Right{session.RightView}},
		}},
	})
	out := env.router.Push("/inquireCDStudent", nil)
	require.True(t, out.Allowed)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func asError(t *testing.T, err error) *Error {
	t.Helper()
	require.Error(t, err)
	e, ok := err.(*Error)
	require.True(t, ok, "unexpected error type %T", err)
	return e
}

func TestNewClient(t *testing.T) {
	logger := testutil.NewLogger()
	sess, err := session.NewStore(ctx, testutil.NewKVStore(), logger)
	require.NoError(t, err)
	nav := router.NewRouter(router.DefaultTable(), sess, logger)

	_, err = NewClient(&core.Config{}, sess, nav, toast.NewCenter(nil), logger)
	assert.Error(t, err, "endpoint required")
	_, err = NewClient(&core.Config{API: core.APIConfig{Endpoint: "http://localhost:8000/"}}, sess, nav, nil, logger)
	assert.Error(t, err, "notifier required")
	_, err = NewClient(&core.Config{API: core.APIConfig{Endpoint: "http://localhost:8000/"}}, sess, nav, toast.NewCenter(nil), logger)
	assert.NoError(t, err)
}

func TestClient_endpoint(t *testing.T) {
	c := &Client{baseURL: "http://api.local/base"}
	assert.Equal(t, "http://api.local/base/api/authentication/login/", c.endpoint("/api/authentication/login/", nil))
	assert.Equal(t, "http://api.local/base/api/x/?page=0", c.endpoint("api/x/", map[string][]string{"page": {"0"}}))
}

func TestClient_authorizationHeader(t *testing.T) {
	var gotAuth, gotReqID []string
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		gotReqID = append(gotReqID, r.Header.Get("X-Request-ID"))
		writeJSON(w, http.StatusOK, map[string]interface{}{"detail": "ok", "payload": map[string]interface{}{}})
	})

	_, err := env.client.GetUserPermissions(ctx)
	require.NoError(t, err)
	env.login(t)
	_, err = env.client.GetUserPermissions(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Bearer abc"}, gotAuth)
	require.Len(t, gotReqID, 2)
	assert.NotEmpty(t, gotReqID[0])
	assert.NotEqual(t, gotReqID[0], gotReqID[1])
}

func TestClient_rollingToken(t *testing.T) {
	tokens := []string{"rolled-1", "", "rolled-2"}
	var calls int
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if tok := tokens[calls]; tok != "" {
			w.Header().Set("Authorization", tok)
		}
		calls++
		writeJSON(w, http.StatusOK, map[string]interface{}{"detail": "ok"})
	})
	env.login(t)

	want := []string{"rolled-1", "rolled-1", "rolled-2"}
	for _, tok := range want {
		_, err := env.client.GetUserPermissions(ctx)
		require.NoError(t, err)
		assert.Equal(t, tok, env.sess.AccessToken())
	}
}

func TestClient_failures(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantMsg    string
		wantStatus int
	}{
		{
			name: "structured failure",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "بيانات خاطئة|Invalid data"})
			},
			wantMsg:    "بيانات خاطئة|Invalid data",
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "failure without detail",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "nope"})
			},
			wantMsg:    FallbackMessage,
			wantStatus: http.StatusNotFound,
		},
		{
			name: "non json failure",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = io.WriteString(w, "<html>bad gateway</html>")
			},
			wantMsg:    FallbackMessage,
			wantStatus: http.StatusBadGateway,
		},
		{
			name: "undecodable success",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, "not json")
			},
			wantMsg: FallbackMessage,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.handler)
			env.login(t)

			_, err := env.client.GetUserPermissions(ctx)
			e := asError(t, err)
			assert.Equal(t, tt.wantMsg, e.Error())
			assert.Equal(t, tt.wantStatus, e.Status)
			assert.True(t, env.sess.IsAuthenticated(), "only 401 logs out")
			assert.Equal(t, 0, env.toasts.Len())
			assert.Equal(t, "/inquireCDStudent", env.router.CurrentPath())
		})
	}
}

func TestClient_networkFailure(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	env.srv.Close()

	_, err := env.client.GetUserPermissions(ctx)
	e := asError(t, err)
	assert.Equal(t, FallbackMessage, e.Message)
	assert.Equal(t, 0, e.Status)
	assert.False(t, e.Structured())
	assert.Equal(t, 1, env.logger.Count("warn"))
}

func TestClient_unauthorized(t *testing.T) {
	const detail = "انتهت الجلسة|Session expired"
	unauthorized := func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": detail})
	}

	t.Run("from an application screen", func(t *testing.T) {
		env := newTestEnv(t, unauthorized)
		env.login(t)
		histBefore := len(env.router.History())

		_, err := env.client.GetUserPermissions(ctx)
		e := asError(t, err)
		assert.True(t, e.Unauthorized())
		assert.Equal(t, detail, e.Message)

		assert.False(t, env.sess.IsAuthenticated())
		assert.Equal(t, session.Session{
			UserApplications: []session.Application{},
			AppCategories:    []session.AppCategory{},
		}, env.sess.Snapshot())

		cur := env.router.Current()
		assert.Equal(t, "/login", cur.Path)
		assert.Equal(t, "/inquireCDStudent", cur.Query.Get("redirect"))
		assert.Len(t, env.router.History(), histBefore+1, "exactly one redirect")

		toasts := env.toasts.Drain("en")
		require.Len(t, toasts, 1)
		assert.Equal(t, toast.Warn, toasts[0].Kind)
		assert.Equal(t, "Session expired", toasts[0].Detail)
	})

	t.Run("from the login page", func(t *testing.T) {
		env := newTestEnv(t, unauthorized)
		env.router.Push("/login", nil)
		histBefore := len(env.router.History())

		_, err := env.client.Login(ctx, authLogin("admin", "wrong"))
		e := asError(t, err)
		assert.Equal(t, detail, e.Message)

		assert.False(t, env.sess.IsAuthenticated())
		assert.Equal(t, "/login", env.router.CurrentPath())
		assert.Len(t, env.router.History(), histBefore, "no redirect")
		assert.Equal(t, 0, env.toasts.Len(), "no toast")
	})
}

func TestClient_validationBeforeSending(t *testing.T) {
	var calls int
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeJSON(w, http.StatusOK, map[string]interface{}{})
	})

	_, err := env.client.Login(ctx, authLogin("", ""))
	require.Error(t, err)
	_, ok := err.(validator.ValidationErrors)
	assert.True(t, ok)
	assert.Equal(t, 0, calls)
}
