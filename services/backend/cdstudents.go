package backendsvc

import (
	"context"
	"net/url"

	"github.com/trezcool/registrar/core/student"
)

const cdStudentArea = "api/inquireCDStudent/"

// CDStudents inquires the students of the secondary certificate (CD) files.
type CDStudents struct {
	c *Client
}

func (c *Client) CDStudents() CDStudents {
	return CDStudents{c: c}
}

func (s CDStudents) Filters(ctx context.Context) (student.Filters, error) {
	var resp filtersResponse
	err := s.c.get(ctx, cdStudentArea+"filters/", nil, &resp)
	return resp.Payload, err
}

// GSFilters returns the general secondary lookups of a certificate year.
func (s CDStudents) GSFilters(ctx context.Context, selectedYear string) (student.Filters, error) {
	var resp filtersResponse
	err := s.c.get(ctx, cdStudentArea+"gsFilters/", url.Values{"selectedYear": {selectedYear}}, &resp)
	return resp.Payload, err
}

func (s CDStudents) Get(ctx context.Context, key student.CDStudentKey) (student.Record, error) {
	var resp struct {
		Payload struct {
			Student student.Record `json:"student"`
		} `json:"payload"`
	}
	if err := s.c.check(key); err != nil {
		return nil, err
	}
	err := s.c.get(ctx, cdStudentArea+"student/", key.Values(), &resp)
	return resp.Payload.Student, err
}

func (s CDStudents) Add(ctx context.Context, selectedYear string, st student.Record) (string, error) {
	var resp generalResponse
	payload := map[string]interface{}{"selectedYear": selectedYear, "student": st}
	err := s.c.post(ctx, cdStudentArea+"student/", payload, &resp)
	return resp.Detail, err
}

func (s CDStudents) Edit(ctx context.Context, key student.CDStudentKey, st student.Record) (string, error) {
	var resp generalResponse
	if err := s.c.check(key); err != nil {
		return "", err
	}
	payload := map[string]interface{}{
		"selectedYear": key.SelectedYear,
		"nationalId":   key.NationalID,
		"seatNumber":   key.SeatNumber,
		"student":      st,
	}
	err := s.c.put(ctx, cdStudentArea+"student/", payload, &resp)
	return resp.Detail, err
}

func (s CDStudents) Delete(ctx context.Context, key student.CDStudentKey) (string, error) {
	var resp generalResponse
	if err := s.c.check(key); err != nil {
		return "", err
	}
	err := s.c.delete(ctx, cdStudentArea+"student/", key, &resp)
	return resp.Detail, err
}

func (s CDStudents) List(ctx context.Context, q student.CDStudentQuery) (student.Page, error) {
	var resp pageResponse
	q.Pagination = q.Pagination.WithDefaults()
	if err := s.c.check(q); err != nil {
		return resp.Payload, err
	}
	err := s.c.get(ctx, cdStudentArea+"list/", q.Values(), &resp)
	return resp.Payload, err
}
