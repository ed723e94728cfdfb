package session

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/registrar/core"
	testutil "github.com/trezcool/registrar/tests"
)

var (
	ctx = context.Background()

	cdStudentViewer = Application{ID: InquireCDStudent, Name: "inquireCDStudent", Rights: []Right{RightView}}
	militaryEditor  = Application{ID: MilitaryEducation, Name: "militaryEducation", Rights: []Right{RightView, RightEdit}}
	students        = AppCategory{ID: 1, Name: "students"}
)

func newTestStore(t *testing.T, kv core.KVStore) (*Store, *testutil.Logger) {
	t.Helper()
	logger := testutil.NewLogger()
	store, err := NewStore(ctx, kv, logger)
	require.NoError(t, err)
	return store, logger
}

func loginPayload() LoginPayload {
	return LoginPayload{
		AccessToken: "abc",
		UserData:    Profile{Username: "admin", Fullname: "Admin User", Email: "admin@example.com"},
		UserPermissions: Permissions{
			AppCategories:    []AppCategory{students},
			UserApplications: []Application{cdStudentViewer},
		},
	}
}

func assertEmpty(t *testing.T, store *Store) {
	t.Helper()
	assert.False(t, store.IsAuthenticated())
	assert.Equal(t, "", store.AccessToken())
	assert.True(t, store.Profile().IsZero())
	assert.Equal(t, []Application{}, store.Applications())
	assert.Equal(t, []AppCategory{}, store.Categories())
}

func TestNewStore(t *testing.T) {
	t.Run("missing collaborators", func(t *testing.T) {
		_, err := NewStore(ctx, nil, testutil.NewLogger())
		assert.Error(t, err)
		_, err = NewStore(ctx, testutil.NewKVStore(), nil)
		assert.Error(t, err)
	})

	t.Run("empty storage yields defaults", func(t *testing.T) {
		store, _ := newTestStore(t, testutil.NewKVStore())
		assertEmpty(t, store)
	})

	t.Run("restores persisted session", func(t *testing.T) {
		kv := testutil.NewKVStore()
		first, _ := newTestStore(t, kv)
		first.Save(ctx, loginPayload())

		second, _ := newTestStore(t, kv)
		assert.Equal(t, first.Snapshot(), second.Snapshot())
		assert.True(t, second.IsAuthenticated())
	})

	t.Run("unreadable value falls back to default", func(t *testing.T) {
		kv := testutil.NewKVStore()
		require.NoError(t, kv.Set(ctx, KeyAccessToken, []byte(`"tok"`)))
		require.NoError(t, kv.Set(ctx, KeyUserApplications, []byte(`{not json`)))

		store, logger := newTestStore(t, kv)
		assert.Equal(t, "tok", store.AccessToken())
		assert.Equal(t, []Application{}, store.Applications())
		assert.Equal(t, 1, logger.Count("warn"))
	})
}

func TestStore_Save(t *testing.T) {
	kv := testutil.NewKVStore()
	store, _ := newTestStore(t, kv)
	payload := loginPayload()
	store.Save(ctx, payload)

	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, "abc", store.AccessToken())
	assert.Equal(t, payload.UserData, store.Profile())
	assert.Equal(t, payload.UserPermissions.UserApplications, store.Applications())
	assert.Equal(t, payload.UserPermissions.AppCategories, store.Categories())

	raw, err := kv.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	assert.JSONEq(t, `"abc"`, string(raw))

	raw, err = kv.Get(ctx, KeyUserApplications)
	require.NoError(t, err)
	var apps []Application
	require.NoError(t, json.Unmarshal(raw, &apps))
	assert.Equal(t, payload.UserPermissions.UserApplications, apps)
}

func TestStore_ApplyPermissions(t *testing.T) {
	store, _ := newTestStore(t, testutil.NewKVStore())
	store.Save(ctx, loginPayload())

	perms := Permissions{
		AppCategories:    []AppCategory{},
		UserApplications: []Application{militaryEditor},
	}
	store.ApplyPermissions(ctx, perms)

	assert.Equal(t, perms.UserApplications, store.Applications(), "grants are replaced, not merged")
	assert.Equal(t, []AppCategory{}, store.Categories())
	assert.False(t, store.HasPermission(InquireCDStudent))
	assert.True(t, store.HasPermission(MilitaryEducation, RightEdit))
	assert.Equal(t, "abc", store.AccessToken(), "token untouched")

	// callers cannot mutate the store through their slices
	perms.UserApplications[0].Rights[0] = RightDelete
	assert.True(t, store.HasPermission(MilitaryEducation, RightView))
	apps := store.Applications()
	apps[0].Rights = nil
	assert.True(t, store.HasPermission(MilitaryEducation, RightView))
}

func TestStore_Reset(t *testing.T) {
	kv := testutil.NewKVStore()
	store, _ := newTestStore(t, kv)

	store.Reset(ctx) // from empty
	assertEmpty(t, store)

	store.Save(ctx, loginPayload())
	store.Reset(ctx)
	assertEmpty(t, store)
	store.Reset(ctx)
	assertEmpty(t, store)

	reloaded, _ := newTestStore(t, kv)
	assertEmpty(t, reloaded)
}

func TestStore_SetAccessToken(t *testing.T) {
	store, _ := newTestStore(t, testutil.NewKVStore())
	store.Save(ctx, loginPayload())

	store.SetAccessToken(ctx, "rolled")
	assert.Equal(t, "rolled", store.AccessToken())
	assert.Equal(t, loginPayload().UserData, store.Profile())

	store.SetAccessToken(ctx, "")
	assert.False(t, store.IsAuthenticated())
}

func TestStore_HasPermission(t *testing.T) {
	store, _ := newTestStore(t, testutil.NewKVStore())
	store.ApplyPermissions(ctx, Permissions{UserApplications: []Application{cdStudentViewer, militaryEditor}})

	tests := []struct {
		name   string
		app    ApplicationID
		rights []Right
		want   bool
	}{
		{name: "default right is view", app: InquireCDStudent, want: true},
		{name: "explicit view", app: InquireCDStudent, rights: []Right{RightView}, want: true},
		{name: "right not granted", app: InquireCDStudent, rights: []Right{RightAdd}, want: false},
		{name: "edit granted", app: MilitaryEducation, rights: []Right{RightEdit}, want: true},
		{name: "delete not granted", app: MilitaryEducation, rights: []Right{RightDelete}, want: false},
		{name: "application not granted", app: UploadCDFile, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, store.HasPermission(tt.app, tt.rights...))
		})
	}
}

func TestStore_persistenceFailure(t *testing.T) {
	kv := testutil.NewFailingKVStore(nil)
	store, logger := newTestStore(t, kv)

	store.Save(ctx, loginPayload())
	assert.True(t, store.IsAuthenticated(), "memory state is updated anyway")
	assert.Equal(t, 4, logger.Count("error"))

	store.Reset(ctx)
	assertEmpty(t, store)
}

func TestStore_IsAuthenticatedInvariant(t *testing.T) {
	store, _ := newTestStore(t, testutil.NewKVStore())
	ops := []func(){
		func() { store.Save(ctx, loginPayload()) },
		func() { store.ApplyPermissions(ctx, Permissions{}) },
		func() { store.SetAccessToken(ctx, "x") },
		func() { store.Reset(ctx) },
		func() { store.SetAccessToken(ctx, "") },
		func() { store.Save(ctx, LoginPayload{}) },
	}
	for _, op := range ops {
		op()
		assert.Equal(t, store.AccessToken() != "", store.IsAuthenticated())
		assert.Equal(t, store.Snapshot().IsAuthenticated(), store.IsAuthenticated())
	}
}

func TestStore_concurrentAccess(t *testing.T) {
	store, _ := newTestStore(t, testutil.NewKVStore())
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				store.Save(ctx, loginPayload())
			} else {
				store.Reset(ctx)
			}
			_ = store.HasPermission(InquireCDStudent)
			_ = store.Snapshot()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, store.AccessToken() != "", store.IsAuthenticated())
}
