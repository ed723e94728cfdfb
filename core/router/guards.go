package router

import (
	"net/url"

	"github.com/trezcool/registrar/core/session"
)

// SessionView is the read side of the session consulted by the guards.
type SessionView interface {
	IsAuthenticated() bool
	HasPermission(app session.ApplicationID, right ...session.Right) bool
}

var _ SessionView = (*session.Store)(nil)

// Guard inspects a navigation and returns the path to redirect to, or "" to let it through.
type Guard func(s SessionView, to Location) string

// Guards run in this order; the first redirect wins.
var Guards = []Guard{AuthenticationGuard, LoginRedirectGuard, PermissionGuard}

// AuthenticationGuard sends anonymous users to the login page when any matched record is private.
func AuthenticationGuard(s SessionView, to Location) string {
	for _, r := range to.Matched {
		if !r.Public {
			if s.IsAuthenticated() {
				return ""
			}
			return PathLogin
		}
	}
	return ""
}

// LoginRedirectGuard keeps authenticated users away from the login page.
func LoginRedirectGuard(s SessionView, to Location) string {
	if to.Name == RouteLogin && s.IsAuthenticated() {
		return PathHome
	}
	return ""
}

// PermissionGuard requires VIEW on the application of every matched record.
// Anonymous users pass: the authentication guard deals with them.
func PermissionGuard(s SessionView, to Location) string {
	if !s.IsAuthenticated() {
		return ""
	}
	for _, r := range to.Matched {
		if r.Application != 0 && !s.HasPermission(r.Application, session.RightView) {
			return PathNotAllowed
		}
	}
	return ""
}

// Outcome is the verdict on a navigation attempt.
type Outcome struct {
	Allowed  bool     `json:"allowed"`
	Redirect string   `json:"redirect,omitempty"`
	Location Location `json:"location"`
}

// Navigate resolves path and runs the guards against it. It has no side effects.
func Navigate(s SessionView, table *Table, path string, query url.Values) Outcome {
	to := table.Resolve(path, query)
	for _, guard := range Guards {
		if redirect := guard(s, to); redirect != "" {
			return Outcome{Redirect: redirect, Location: to}
		}
	}
	return Outcome{Allowed: true, Location: to}
}
