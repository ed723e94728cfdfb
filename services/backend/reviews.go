package backendsvc

import (
	"context"

	"github.com/trezcool/registrar/core/student"
)

const (
	reviewGraduatesArea         = "api/reviewGraduates/"
	reviewInitiallyAcceptedArea = "api/reviewInitiallyAccepted/"
)

type ReviewGraduates struct {
	c *Client
}

func (c *Client) ReviewGraduates() ReviewGraduates {
	return ReviewGraduates{c: c}
}

func (s ReviewGraduates) Filters(ctx context.Context) (student.Filters, error) {
	var resp filtersResponse
	err := s.c.get(ctx, reviewGraduatesArea+"filters/", nil, &resp)
	return resp.Payload, err
}

func (s ReviewGraduates) FormFilters(ctx context.Context) (student.Filters, error) {
	var resp filtersResponse
	err := s.c.get(ctx, reviewGraduatesArea+"formFilters/", nil, &resp)
	return resp.Payload, err
}

func (s ReviewGraduates) Get(ctx context.Context, id int, selectedStudentType string) (student.View, error) {
	var resp viewResponse
	query := idQuery(id)
	query.Set("selectedStudentType", selectedStudentType)
	err := s.c.get(ctx, reviewGraduatesArea+"student/", query, &resp)
	return resp.Payload, err
}

func (s ReviewGraduates) Edit(ctx context.Context, id int, universityEdu student.Record) (string, error) {
	var resp generalResponse
	payload := map[string]interface{}{"Id": id, "studentData": universityEdu}
	err := s.c.put(ctx, reviewGraduatesArea+"student/", payload, &resp)
	return resp.Detail, err
}

func (s ReviewGraduates) List(ctx context.Context, q student.Query) (student.Page, error) {
	var resp pageResponse
	q.Pagination = q.Pagination.WithDefaults()
	if err := s.c.check(q); err != nil {
		return resp.Payload, err
	}
	err := s.c.get(ctx, reviewGraduatesArea+"studentsList/", q.Values(), &resp)
	return resp.Payload, err
}

// ReviewRequest sets the status and fulfillment of several initially accepted students at once.
type ReviewRequest struct {
	StudentIDs         []int `json:"studentsIds" validate:"required,min=1"`
	StudentStatus      int   `json:"studentStatus" validate:"required"`
	StudentFulfillment int   `json:"studentFulfillment"`
}

type ReviewInitiallyAccepted struct {
	c *Client
}

func (c *Client) ReviewInitiallyAccepted() ReviewInitiallyAccepted {
	return ReviewInitiallyAccepted{c: c}
}

func (s ReviewInitiallyAccepted) Filters(ctx context.Context) (student.Filters, error) {
	var resp filtersResponse
	err := s.c.get(ctx, reviewInitiallyAcceptedArea+"filters/", nil, &resp)
	return resp.Payload, err
}

func (s ReviewInitiallyAccepted) FormFilters(ctx context.Context) (student.Filters, error) {
	var resp filtersResponse
	err := s.c.get(ctx, reviewInitiallyAcceptedArea+"formFilters/", nil, &resp)
	return resp.Payload, err
}

func (s ReviewInitiallyAccepted) Review(ctx context.Context, req ReviewRequest) (string, error) {
	var resp generalResponse
	if err := s.c.check(req); err != nil {
		return "", err
	}
	err := s.c.put(ctx, reviewInitiallyAcceptedArea+"reviewStudents/", req, &resp)
	return resp.Detail, err
}

func (s ReviewInitiallyAccepted) List(ctx context.Context, q student.Query) (student.Page, error) {
	var resp pageResponse
	q.Pagination = q.Pagination.WithDefaults()
	if err := s.c.check(q); err != nil {
		return resp.Payload, err
	}
	err := s.c.get(ctx, reviewInitiallyAcceptedArea+"studentsList/", q.Values(), &resp)
	return resp.Payload, err
}
