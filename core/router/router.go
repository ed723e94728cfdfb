package router

import (
	"net/url"
	"sync"

	"github.com/trezcool/registrar/core"
)

const maxHistory = 50

// Router keeps the current location and commits navigations after the guards ruled on them.
type Router struct {
	table  *Table
	sess   SessionView
	logger core.Logger

	mu      sync.Mutex
	current Location
	history []Location
}

// NewRouter starts at the home path, before any guard ran.
func NewRouter(table *Table, sess SessionView, logger core.Logger) *Router {
	return &Router{
		table:   table,
		sess:    sess,
		logger:  logger,
		current: Location{Path: PathHome},
	}
}

func (r *Router) Table() *Table {
	return r.table
}

// Push navigates to path. When a guard redirects, the redirect target is committed instead.
func (r *Router) Push(path string, query url.Values) Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Navigate(r.sess, r.table, path, query)
	dest := out.Location
	if !out.Allowed {
		dest = r.table.Resolve(out.Redirect, nil)
		r.logger.Debug("navigation redirected", map[string]interface{}{
			"to":       out.Location.FullPath(),
			"redirect": out.Redirect,
		})
	}
	r.history = append(r.history, r.current)
	if len(r.history) > maxHistory {
		r.history = r.history[len(r.history)-maxHistory:]
	}
	r.current = dest
	return out
}

func (r *Router) Current() Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *Router) CurrentPath() string {
	return r.Current().Path
}

// History returns the previously committed locations, oldest first.
func (r *Router) History() []Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]Location, len(r.history))
	copy(res, r.history)
	return res
}

// RedirectToLogin sends the user to the login page, remembering where they were so the login
// form can bring them back. From the login page itself it goes home.
func (r *Router) RedirectToLogin() {
	prev := r.Current()
	if prev.Path == PathLogin {
		r.Push(PathHome, nil)
		return
	}

	query := url.Values{"redirect": {prev.Path}}
	for k, v := range prev.Query {
		query[k] = v
	}
	r.Push(PathLogin, query)
}
