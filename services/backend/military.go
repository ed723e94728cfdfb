package backendsvc

import (
	"context"

	"github.com/trezcool/registrar/core/student"
)

const militaryEducationArea = "api/militaryEducation/"

// MilitaryView is a student's military education record with its signature.
type MilitaryView struct {
	MilitaryEdu student.Record    `json:"studentMilitaryEdu"`
	Signature   student.Signature `json:"signature"`
}

type MilitaryEducation struct {
	c *Client
}

func (c *Client) MilitaryEducation() MilitaryEducation {
	return MilitaryEducation{c: c}
}

func (s MilitaryEducation) Filters(ctx context.Context) (student.Filters, error) {
	var resp filtersResponse
	err := s.c.get(ctx, militaryEducationArea+"filters/", nil, &resp)
	return resp.Payload, err
}

func (s MilitaryEducation) FormFilters(ctx context.Context, id int) (student.Filters, error) {
	var resp filtersResponse
	err := s.c.get(ctx, militaryEducationArea+"formFilters/", idQuery(id), &resp)
	return resp.Payload, err
}

func (s MilitaryEducation) Get(ctx context.Context, id int) (MilitaryView, error) {
	var resp struct {
		Payload MilitaryView `json:"payload"`
	}
	err := s.c.get(ctx, militaryEducationArea+"student/", idQuery(id), &resp)
	return resp.Payload, err
}

func (s MilitaryEducation) Add(ctx context.Context, id int, edu student.Record) (string, error) {
	var resp generalResponse
	payload := map[string]interface{}{"Id": id, "studentMilitaryEdu": edu}
	err := s.c.post(ctx, militaryEducationArea+"student/", payload, &resp)
	return resp.Detail, err
}

func (s MilitaryEducation) Edit(ctx context.Context, id int, edu student.Record) (string, error) {
	var resp generalResponse
	payload := map[string]interface{}{"Id": id, "studentMilitaryEdu": edu}
	err := s.c.put(ctx, militaryEducationArea+"student/", payload, &resp)
	return resp.Detail, err
}

func (s MilitaryEducation) Delete(ctx context.Context, id int) (string, error) {
	var resp generalResponse
	err := s.c.delete(ctx, militaryEducationArea+"student/", map[string]int{"Id": id}, &resp)
	return resp.Detail, err
}

func (s MilitaryEducation) List(ctx context.Context, q student.Query) (student.Page, error) {
	var resp pageResponse
	q.Pagination = q.Pagination.WithDefaults()
	if err := s.c.check(q); err != nil {
		return resp.Payload, err
	}
	err := s.c.get(ctx, militaryEducationArea+"studentsList/", q.Values(), &resp)
	return resp.Payload, err
}
