package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/registrar/core"
)

// Store holds the process-wide session: access token, user profile and permission grants.
// Every write is mirrored to the KVStore it was created with.
type Store struct {
	kv     core.KVStore
	logger core.Logger

	mu           sync.RWMutex
	accessToken  string
	userData     Profile
	categories   []AppCategory
	applications []Application
}

// NewStore seeds a Store from the persisted snapshot, falling back to defaults for missing
// or unreadable fields.
func NewStore(ctx context.Context, kv core.KVStore, logger core.Logger) (store *Store, err error) {
	if err = vala.BeginValidation().Validate(
		vala.IsNotNil(kv, "kv"),
		vala.IsNotNil(logger, "logger"),
	).Check(); err != nil {
		return nil, err
	}

	store = &Store{
		kv:           kv,
		logger:       logger,
		categories:   []AppCategory{},
		applications: []Application{},
	}
	fields := []struct {
		key  string
		dest interface{}
	}{
		{KeyAccessToken, &store.accessToken},
		{KeyUserData, &store.userData},
		{KeyAppCategories, &store.categories},
		{KeyUserApplications, &store.applications},
	}
	for _, fld := range fields {
		if err = store.load(ctx, fld.key, fld.dest); err != nil {
			return nil, errors.Wrapf(err, "loading %s", fld.key)
		}
	}
	if store.categories == nil {
		store.categories = []AppCategory{}
	}
	if store.applications == nil {
		store.applications = []Application{}
	}
	return store, nil
}

func (s *Store) load(ctx context.Context, key string, dest interface{}) error {
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Cause(err) == core.ErrKeyNotFound {
			return nil
		}
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if err = json.Unmarshal(data, dest); err != nil {
		s.logger.Warn(fmt.Sprintf("discarding unreadable stored %q", key), err)
	}
	return nil
}

// persist mirrors a field to durable storage. Failures are logged only: the in-memory
// state stays authoritative for the running process.
func (s *Store) persist(ctx context.Context, key string, val interface{}) {
	data, err := json.Marshal(val)
	if err == nil {
		err = s.kv.Set(ctx, key, data)
	}
	if err != nil {
		s.logger.Error(fmt.Sprintf("persisting %q", key), errors.Wrap(err, "persisting session"))
	}
}

// Save stores a successful login: token, profile and permissions.
func (s *Store) Save(ctx context.Context, payload LoginPayload) {
	s.mu.Lock()
	s.accessToken = payload.AccessToken
	s.userData = payload.UserData
	s.persist(ctx, KeyAccessToken, s.accessToken)
	s.persist(ctx, KeyUserData, s.userData)
	s.mu.Unlock()

	s.ApplyPermissions(ctx, payload.UserPermissions)
}

// ApplyPermissions replaces the granted applications and categories wholesale.
// Grants for applications absent from p are dropped.
func (s *Store) ApplyPermissions(ctx context.Context, p Permissions) {
	categories := make([]AppCategory, len(p.AppCategories))
	copy(categories, p.AppCategories)
	applications := copyApplications(p.UserApplications)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = categories
	s.applications = applications
	s.persist(ctx, KeyAppCategories, s.categories)
	s.persist(ctx, KeyUserApplications, s.applications)
}

// Reset clears the session back to its defaults (logout).
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = ""
	s.userData = Profile{}
	s.categories = []AppCategory{}
	s.applications = []Application{}
	s.persist(ctx, KeyAccessToken, s.accessToken)
	s.persist(ctx, KeyUserData, s.userData)
	s.persist(ctx, KeyAppCategories, s.categories)
	s.persist(ctx, KeyUserApplications, s.applications)
}

// SetAccessToken overwrites the token only; used for rolling token refreshes.
// Concurrent refreshes are last-write-wins.
func (s *Store) SetAccessToken(ctx context.Context, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = token
	s.persist(ctx, KeyAccessToken, s.accessToken)
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken != ""
}

func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *Store) Profile() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userData
}

func (s *Store) Applications() []Application {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyApplications(s.applications)
}

func (s *Store) Categories() []AppCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	categories := make([]AppCategory, len(s.categories))
	copy(categories, s.categories)
	return categories
}

func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	categories := make([]AppCategory, len(s.categories))
	copy(categories, s.categories)
	return Session{
		AccessToken:      s.accessToken,
		UserData:         s.userData,
		AppCategories:    categories,
		UserApplications: copyApplications(s.applications),
	}
}

// HasPermission reports whether the user was granted `right` (VIEW by default) on app.
func (s *Store) HasPermission(app ApplicationID, right ...Right) bool {
	want := RightView
	if len(right) > 0 {
		want = right[0]
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, granted := range s.applications {
		if granted.ID == app {
			return granted.HasRight(want)
		}
	}
	return false
}

func copyApplications(apps []Application) []Application {
	res := make([]Application, len(apps))
	for i, app := range apps {
		rights := make([]Right, len(app.Rights))
		copy(rights, app.Rights)
		app.Rights = rights
		res[i] = app
	}
	return res
}
