package backendsvc

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/trezcool/registrar/core/session"
	"github.com/trezcool/registrar/core/student"
)

// reportApps maps each report to the application guarding it.
var reportApps = map[string]session.ApplicationID{
	"numberAcceptedStudents":     session.NumberAcceptedStudents,
	"acceptedStudentsNames":      session.AcceptedStudentNames,
	"universityStatusStatistics": session.UniversityStatusStatistics,
}

var ErrUnknownReport = errors.New("unknown report")

// ReportNames lists the available reports, sorted.
func ReportNames() []string {
	names := make([]string, 0, len(reportApps))
	for name := range reportApps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type Report struct {
	c    *Client
	name string
}

func (c *Client) Report(name string) (Report, error) {
	if _, ok := reportApps[name]; !ok {
		return Report{}, errors.Wrapf(ErrUnknownReport, "%q", name)
	}
	return Report{c: c, name: name}, nil
}

func (r Report) Name() string {
	return r.name
}

func (r Report) Application() session.ApplicationID {
	return reportApps[r.name]
}

func (r Report) area() string {
	return "api/" + r.name + "/"
}

func (r Report) Filters(ctx context.Context) (student.Filters, error) {
	var resp filtersResponse
	err := r.c.get(ctx, r.area()+"filters/", nil, &resp)
	return resp.Payload, err
}

func (r Report) Data(ctx context.Context, q student.ReportQuery) (student.Report, error) {
	var resp struct {
		Payload student.Report `json:"payload"`
	}
	err := r.c.get(ctx, r.area()+"report/", q.Values(), &resp)
	return resp.Payload, err
}
