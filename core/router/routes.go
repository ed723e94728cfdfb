package router

import (
	"net/url"
	"strings"

	"github.com/trezcool/registrar/core/session"
)

// Well known route paths.
const (
	PathHome       = "/"
	PathLogin      = "/login"
	PathNotFound   = "/notFound"
	PathNotAllowed = "/notAllowed"

	RouteLogin = "login"

	catchAll = "/:pathMatch(.*)*"

	// guards against redirect loops in a misconfigured table
	maxRedirects = 5
)

// Route describes a screen. Children are absolute paths nested under the parent layout.
type Route struct {
	Path        string
	Name        string
	View        string
	Public      bool
	Application session.ApplicationID // 0 when untagged
	Redirect    string
	Children    []Route
}

func (r *Route) matches(path string) bool {
	return r.Path == catchAll || strings.EqualFold(r.Path, path)
}

// Location is the target of one navigation attempt.
type Location struct {
	Path           string     `json:"path"`
	Name           string     `json:"name,omitempty"`
	Query          url.Values `json:"query,omitempty"`
	RedirectedFrom string     `json:"redirectedFrom,omitempty"`
	Matched        []*Route   `json:"-"`
}

// FullPath is the path with its encoded query string.
func (loc Location) FullPath() string {
	if len(loc.Query) == 0 {
		return loc.Path
	}
	return loc.Path + "?" + loc.Query.Encode()
}

// DefaultRoutes builds the route table of the portal.
func DefaultRoutes() []Route {
	routes := make([]Route, 0, 10)
	routes = append(routes, baseRoutes()...)
	routes = append(routes, authenticationRoutes()...)
	routes = append(routes, applicationRoutes()...)
	return routes
}

func baseRoutes() []Route {
	return []Route{
		{Path: PathNotFound, Name: "notFound", View: "NotFound", Public: true},
		{Path: PathNotAllowed, Name: "notAllowed", View: "NotAllowed", Public: true},
		{Path: catchAll, Redirect: PathNotFound},
	}
}

func authenticationRoutes() []Route {
	return []Route{
		{Path: PathLogin, Name: RouteLogin, View: "LoginForm", Public: true},
		{Path: "/forget", Name: "forget", View: "ForgetForm", Public: true},
		{Path: "/forgotmypassword", Name: "forgetTest", View: "ForgetForm", Public: true},
		{Path: "/resetmypassword", Name: "ResetVue", View: "ResetForm", Public: true},
		{Path: "/confirmEmailMessage", Name: "EmailConfirm", View: "EmailConfirm", Public: true},
		{Path: "/invalidtoken", Name: "invalidToken", View: "InvalidToken", Public: true},
	}
}

func applicationRoutes() []Route {
	return []Route{
		{
			Path: PathHome,
			Name: "mainLayout",
			View: "MainLayout",
			Children: []Route{
				{Path: "/uploadCDFile", Name: "uploadCDFile", View: "UploadCDFile", Application: session.UploadCDFile},
				{Path: "/inquireCDStudent", Name: "inquireCDStudent", View: "InquireCDStudent", Application: session.InquireCDStudent},
				{Path: "/inquireStudentInfo", Name: "inquireStudentInfo", View: "InquireStudentInfo", Application: session.StudentInfo},
				{Path: "/militaryEducation", Name: "militaryEducation", View: "MilitaryEducation", Application: session.MilitaryEducation},
				{Path: "/reviewGraduates", Name: "reviewGraduates", View: "ReviewGraduates", Application: session.ReviewGraduates},
				{Path: "/inquireGraduateInfo", Name: "inquireGraduateInfo", View: "InquireGraduateInfo", Application: session.GraduateInfo},
				{Path: "/transferStudents", Name: "transferStudents", View: "TransferStudents", Application: session.TransferStudents},
				{Path: "/numberAcceptedStudents", Name: "numberAcceptedStudents", View: "NumberAcceptedStudents", Application: session.NumberAcceptedStudents},
				{Path: "/acceptedStudentsNames", Name: "acceptedStudentsNames", View: "AcceptedStudentsNames", Application: session.AcceptedStudentNames},
				{Path: "/reviewInitiallyAccepted", Name: "reviewInitiallyAccepted", View: "ReviewInitiallyAccepted", Application: session.ReviewInitiallyAccepted},
				{Path: "/universityStatusStatistics", Name: "universityStatusStatistics", View: "UniversityStatusStatistics", Application: session.UniversityStatusStatistics},
			},
		},
	}
}

// Table is an immutable route table.
type Table struct {
	routes []Route
}

func NewTable(routes []Route) *Table {
	return &Table{routes: routes}
}

func DefaultTable() *Table {
	return NewTable(DefaultRoutes())
}

func normalizePath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimRight(strings.TrimSpace(path), "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// match finds the chain of records (parent first) matching path. Concrete paths win over
// the catch-all, which is only tried once nothing else matched.
func match(routes []Route, path string, wildcard bool) []*Route {
	for i := range routes {
		r := &routes[i]
		if (r.Path == catchAll) != wildcard {
			continue
		}
		if len(r.Children) > 0 {
			if chain := match(r.Children, path, wildcard); chain != nil {
				return append([]*Route{r}, chain...)
			}
		}
		if r.matches(path) {
			return []*Route{r}
		}
	}
	return nil
}

// Resolve matches path against the table, following record redirects. A path matching nothing
// lands on the not found page through the catch-all record.
func (t *Table) Resolve(path string, query url.Values) Location {
	loc := Location{Path: normalizePath(path), Query: query}
	for i := 0; i < maxRedirects; i++ {
		matched := match(t.routes, loc.Path, false)
		if matched == nil {
			matched = match(t.routes, loc.Path, true)
		}
		if matched == nil {
			return loc
		}

		last := matched[len(matched)-1]
		if last.Redirect == "" {
			loc.Matched = matched
			loc.Name = last.Name
			return loc
		}
		if loc.RedirectedFrom == "" {
			loc.RedirectedFrom = loc.Path
		}
		loc.Path = normalizePath(last.Redirect)
	}
	return loc
}

// Records lists every record depth first, parents before their children.
func (t *Table) Records() []*Route {
	var res []*Route
	var walk func(routes []Route)
	walk = func(routes []Route) {
		for i := range routes {
			res = append(res, &routes[i])
			walk(routes[i].Children)
		}
	}
	walk(t.routes)
	return res
}

// Lookup returns the record named name.
func (t *Table) Lookup(name string) (*Route, bool) {
	for _, r := range t.Records() {
		if r.Name != "" && r.Name == name {
			return r, true
		}
	}
	return nil, false
}
