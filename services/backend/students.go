package backendsvc

import (
	"context"
	"net/url"
	"strconv"

	"github.com/trezcool/registrar/core/student"
)

const (
	studentInfoArea  = "api/inquireStudentInfo/"
	graduateInfoArea = "api/inquireGraduateInfo/"
)

// Council serves the council student screens sharing one REST layout (student info, graduates).
type Council struct {
	c    *Client
	area string
}

// StudentInfo adds the enrolment only operations to Council.
type StudentInfo struct {
	Council
}

func (c *Client) StudentInfo() StudentInfo {
	return StudentInfo{Council{c: c, area: studentInfoArea}}
}

func (c *Client) GraduateInfo() Council {
	return Council{c: c, area: graduateInfoArea}
}

func idQuery(id int) url.Values {
	return url.Values{"Id": {strconv.Itoa(id)}}
}

func (s Council) Filters(ctx context.Context) (student.Filters, error) {
	var resp filtersResponse
	err := s.c.get(ctx, s.area+"filters/", nil, &resp)
	return resp.Payload, err
}

func (s Council) FormFilters(ctx context.Context) (student.Filters, error) {
	var resp filtersResponse
	err := s.c.get(ctx, s.area+"formFilters/", nil, &resp)
	return resp.Payload, err
}

func (s Council) Get(ctx context.Context, id int) (student.View, error) {
	var resp viewResponse
	err := s.c.get(ctx, s.area+"student/", idQuery(id), &resp)
	return resp.Payload, err
}

func (s Council) History(ctx context.Context, id int) (student.History, error) {
	var resp historyResponse
	err := s.c.get(ctx, s.area+"studentHistory/", idQuery(id), &resp)
	return resp.Payload, err
}

func (s Council) Edit(ctx context.Context, id int, data student.Data) (string, error) {
	var resp generalResponse
	payload := map[string]interface{}{"Id": id, "studentData": data}
	err := s.c.put(ctx, s.area+"student/", payload, &resp)
	return resp.Detail, err
}

func (s Council) Delete(ctx context.Context, id int) (string, error) {
	var resp generalResponse
	err := s.c.delete(ctx, s.area+"student/", map[string]int{"Id": id}, &resp)
	return resp.Detail, err
}

func (s Council) List(ctx context.Context, q student.Query) (student.Page, error) {
	var resp pageResponse
	q.Pagination = q.Pagination.WithDefaults()
	if err := s.c.check(q); err != nil {
		return resp.Payload, err
	}
	err := s.c.get(ctx, s.area+"studentsList/", q.Values(), &resp)
	return resp.Payload, err
}

func (s Council) UploadAttachments(ctx context.Context, uniqueID string, files []File) (student.FileActionResult, error) {
	return s.c.uploadAttachments(ctx, s.area, uniqueID, files)
}

func (s Council) DownloadAttachment(ctx context.Context, fileID string) (Download, error) {
	return s.c.downloadAttachment(ctx, s.area, fileID)
}

func (s Council) DeleteAttachments(ctx context.Context, files []student.UploadedFile) (student.FileActionResult, error) {
	return s.c.deleteAttachments(ctx, s.area, files)
}

func (s StudentInfo) PopupFilters(ctx context.Context) (student.Filters, error) {
	var resp filtersResponse
	err := s.c.get(ctx, s.area+"popupFilters/", nil, &resp)
	return resp.Payload, err
}

// SecondaryGSInfo fetches the secondary certificate data of a student by national ID.
func (s StudentInfo) SecondaryGSInfo(ctx context.Context, nid string, certificate, certYear int) (student.Data, error) {
	var resp dataResponse
	query := url.Values{
		"NID":         {nid},
		"certificate": {strconv.Itoa(certificate)},
		"certYear":    {strconv.Itoa(certYear)},
	}
	err := s.c.get(ctx, s.area+"secondaryGSInfo/", query, &resp)
	return resp.Payload, err
}

func (s StudentInfo) Add(ctx context.Context, data student.Data) (string, error) {
	var resp generalResponse
	err := s.c.post(ctx, s.area+"student/", map[string]interface{}{"studentData": data}, &resp)
	return resp.Detail, err
}

// RevertTransaction undoes a history transaction, returning the resulting university education.
func (s StudentInfo) RevertTransaction(ctx context.Context, id, transactionID int) (student.Record, error) {
	var resp struct {
		Payload struct {
			UniversityEdu student.Record `json:"studentUniversityEdu"`
		} `json:"payload"`
	}
	payload := map[string]int{"Id": id, "transactionId": transactionID}
	err := s.c.put(ctx, s.area+"revertTransaction/", payload, &resp)
	return resp.Payload.UniversityEdu, err
}
