package backendsvc

import (
	"context"
	"net/url"
	"strconv"

	"github.com/trezcool/registrar/core/student"
)

const transferStudentsArea = "api/transferStudents/"

type TransferStudents struct {
	c *Client
}

func (c *Client) TransferStudents() TransferStudents {
	return TransferStudents{c: c}
}

func (s TransferStudents) Filters(ctx context.Context) (student.Filters, error) {
	var resp filtersResponse
	err := s.c.get(ctx, transferStudentsArea+"filters/", nil, &resp)
	return resp.Payload, err
}

func (s TransferStudents) FormFilters(ctx context.Context, facultyID, universityID int) (student.Filters, error) {
	var resp filtersResponse
	query := url.Values{
		"faculty_id":    {strconv.Itoa(facultyID)},
		"university_id": {strconv.Itoa(universityID)},
	}
	err := s.c.get(ctx, transferStudentsArea+"formFilters/", query, &resp)
	return resp.Payload, err
}

func (s TransferStudents) Get(ctx context.Context, id int) (student.View, error) {
	var resp viewResponse
	err := s.c.get(ctx, transferStudentsArea+"student/", idQuery(id), &resp)
	return resp.Payload, err
}

// FacultyData reports how many more students a faculty can receive.
func (s TransferStudents) FacultyData(ctx context.Context, facultyID int) (student.FacultyTransferReport, error) {
	var resp struct {
		Payload student.FacultyTransferReport `json:"payload"`
	}
	err := s.c.get(ctx, transferStudentsArea+"facultyData/", url.Values{"faculty_id": {strconv.Itoa(facultyID)}}, &resp)
	return resp.Payload, err
}

func (s TransferStudents) Transfer(ctx context.Context, req student.TransferRequest) (string, error) {
	var resp generalResponse
	if err := s.c.check(req); err != nil {
		return "", err
	}
	err := s.c.put(ctx, transferStudentsArea+"transfer/", req, &resp)
	return resp.Detail, err
}

func (s TransferStudents) List(ctx context.Context, q student.Query) (student.Page, error) {
	var resp pageResponse
	q.Pagination = q.Pagination.WithDefaults()
	if err := s.c.check(q); err != nil {
		return resp.Payload, err
	}
	err := s.c.get(ctx, transferStudentsArea+"studentsList/", q.Values(), &resp)
	return resp.Payload, err
}

func (s TransferStudents) UploadAttachments(ctx context.Context, uniqueID string, files []File) (student.FileActionResult, error) {
	return s.c.uploadAttachments(ctx, transferStudentsArea, uniqueID, files)
}

func (s TransferStudents) DownloadAttachment(ctx context.Context, fileID string) (Download, error) {
	return s.c.downloadAttachment(ctx, transferStudentsArea, fileID)
}

func (s TransferStudents) DeleteAttachments(ctx context.Context, files []student.UploadedFile) (student.FileActionResult, error) {
	return s.c.deleteAttachments(ctx, transferStudentsArea, files)
}
