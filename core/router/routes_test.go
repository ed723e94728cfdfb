package router

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/registrar/core/session"
)

func matchedNames(loc Location) []string {
	names := make([]string, len(loc.Matched))
	for i, r := range loc.Matched {
		names[i] = r.Name
	}
	return names
}

func TestTable_Resolve(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		name         string
		path         string
		wantPath     string
		wantName     string
		wantMatched  []string
		wantRedirect string
	}{
		{name: "public page", path: "/login", wantPath: "/login", wantName: "login", wantMatched: []string{"login"}},
		{name: "trailing slash", path: "/login/", wantPath: "/login", wantName: "login", wantMatched: []string{"login"}},
		{name: "layout only", path: "/", wantPath: "/", wantName: "mainLayout", wantMatched: []string{"mainLayout"}},
		{
			name:        "child chain",
			path:        "/inquireCDStudent",
			wantPath:    "/inquireCDStudent",
			wantName:    "inquireCDStudent",
			wantMatched: []string{"mainLayout", "inquireCDStudent"},
		},
		{name: "case insensitive", path: "/INQUIRECDSTUDENT", wantPath: "/INQUIRECDSTUDENT", wantName: "inquireCDStudent", wantMatched: []string{"mainLayout", "inquireCDStudent"}},
		{name: "relative path", path: "forget", wantPath: "/forget", wantName: "forget", wantMatched: []string{"forget"}},
		{name: "query stripped from path", path: "/forget?x=1", wantPath: "/forget", wantName: "forget", wantMatched: []string{"forget"}},
		{name: "unknown path", path: "/nowhere/at/all", wantPath: "/notFound", wantName: "notFound", wantMatched: []string{"notFound"}, wantRedirect: "/nowhere/at/all"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := table.Resolve(tt.path, nil)
			assert.Equal(t, tt.wantPath, loc.Path)
			assert.Equal(t, tt.wantName, loc.Name)
			assert.Equal(t, tt.wantMatched, matchedNames(loc))
			assert.Equal(t, tt.wantRedirect, loc.RedirectedFrom)
		})
	}
}

func TestTable_ResolveRedirectLoop(t *testing.T) {
	table := NewTable([]Route{
		{Path: "/a", Redirect: "/b"},
		{Path: "/b", Redirect: "/a"},
	})
	loc := table.Resolve("/a", nil)
	assert.Empty(t, loc.Matched)
}

func TestLocation_FullPath(t *testing.T) {
	assert.Equal(t, "/login", Location{Path: "/login"}.FullPath())
	assert.Equal(t, "/login?redirect=%2Fx", Location{Path: "/login", Query: url.Values{"redirect": {"/x"}}}.FullPath())
}

func TestDefaultRoutes(t *testing.T) {
	table := DefaultTable()

	publicPaths := []string{"/notFound", "/notAllowed", "/login", "/forget", "/forgotmypassword",
		"/resetmypassword", "/confirmEmailMessage", "/invalidtoken"}
	for _, p := range publicPaths {
		loc := table.Resolve(p, nil)
		require.Len(t, loc.Matched, 1, p)
		assert.True(t, loc.Matched[0].Public, p)
		assert.Zero(t, loc.Matched[0].Application, p)
	}

	tagged := map[string]session.ApplicationID{
		"/uploadCDFile":               session.UploadCDFile,
		"/inquireCDStudent":           session.InquireCDStudent,
		"/inquireStudentInfo":         session.StudentInfo,
		"/militaryEducation":          session.MilitaryEducation,
		"/reviewGraduates":            session.ReviewGraduates,
		"/inquireGraduateInfo":        session.GraduateInfo,
		"/transferStudents":           session.TransferStudents,
		"/numberAcceptedStudents":     session.NumberAcceptedStudents,
		"/acceptedStudentsNames":      session.AcceptedStudentNames,
		"/reviewInitiallyAccepted":    session.ReviewInitiallyAccepted,
		"/universityStatusStatistics": session.UniversityStatusStatistics,
	}
	for p, app := range tagged {
		loc := table.Resolve(p, nil)
		require.Len(t, loc.Matched, 2, p)
		assert.False(t, loc.Matched[0].Public, p)
		assert.Zero(t, loc.Matched[0].Application, p)
		assert.Equal(t, app, loc.Matched[1].Application, p)
	}

	// every named record is reachable by name
	for _, r := range table.Records() {
		if r.Name == "" {
			continue
		}
		got, ok := table.Lookup(r.Name)
		assert.True(t, ok)
		assert.Equal(t, r.Path, got.Path)
	}

	views := map[string]string{
		"numberAcceptedStudents": "NumberAcceptedStudents",
		"acceptedStudentsNames":  "AcceptedStudentsNames",
		"forget":                 "ForgetForm",
		"forgetTest":             "ForgetForm",
	}
	for name, view := range views {
		r, ok := table.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, view, r.View, name)
	}
	_, ok := table.Lookup("nope")
	assert.False(t, ok)
}
