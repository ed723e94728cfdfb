package router

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testutil "github.com/trezcool/registrar/tests"
)

func TestRouter_Push(t *testing.T) {
	sess := &cdViewer
	r := NewRouter(DefaultTable(), sess, testutil.NewLogger())
	assert.Equal(t, "/", r.CurrentPath())

	out := r.Push("/inquireCDStudent", url.Values{"page": {"2"}})
	assert.True(t, out.Allowed)
	assert.Equal(t, "/inquireCDStudent", r.CurrentPath())
	assert.Equal(t, "2", r.Current().Query.Get("page"))

	out = r.Push("/militaryEducation", nil)
	assert.False(t, out.Allowed)
	assert.Equal(t, "/notAllowed", out.Redirect)
	assert.Equal(t, "/militaryEducation", out.Location.Path)
	assert.Equal(t, "/notAllowed", r.CurrentPath())
	assert.Equal(t, "notAllowed", r.Current().Name)

	hist := r.History()
	require.Len(t, hist, 2)
	assert.Equal(t, "/", hist[0].Path)
	assert.Equal(t, "/inquireCDStudent", hist[1].Path)
}

func TestRouter_RedirectToLogin(t *testing.T) {
	logger := testutil.NewLogger()

	t.Run("remembers the previous location", func(t *testing.T) {
		r := NewRouter(DefaultTable(), cdViewer, logger)
		r.Push("/inquireCDStudent", url.Values{"nid": {"123"}})

		// the session is gone by the time a 401 asks for the login page
		r.sess = anonymous
		r.RedirectToLogin()

		cur := r.Current()
		assert.Equal(t, "/login", cur.Path)
		assert.Equal(t, "/inquireCDStudent", cur.Query.Get("redirect"))
		assert.Equal(t, "123", cur.Query.Get("nid"))
	})

	t.Run("previous query wins over redirect", func(t *testing.T) {
		r := NewRouter(DefaultTable(), cdViewer, logger)
		r.Push("/inquireCDStudent", url.Values{"redirect": {"/elsewhere"}})
		r.sess = anonymous
		r.RedirectToLogin()
		assert.Equal(t, "/elsewhere", r.Current().Query.Get("redirect"))
	})

	t.Run("from the login page goes home", func(t *testing.T) {
		r := NewRouter(DefaultTable(), anonymous, logger)
		r.Push("/login", nil)
		r.RedirectToLogin()
		// home is private, so the anonymous user lands back on the login page
		assert.Equal(t, "/login", r.CurrentPath())
		assert.Empty(t, r.Current().Query)
	})
}

func TestRouter_historyIsBounded(t *testing.T) {
	r := NewRouter(DefaultTable(), anonymous, testutil.NewLogger())
	for i := 0; i < maxHistory+10; i++ {
		r.Push("/login", nil)
	}
	assert.Len(t, r.History(), maxHistory)
}
