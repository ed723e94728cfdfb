package backendsvc

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/trezcool/registrar/core/student"
)

const (
	attachmentActionCreate = "CREATE"
	attachmentActionDelete = "DELETE"
)

// File is an attachment to upload.
type File struct {
	Name    string
	Content io.Reader
}

// Download is a fetched attachment.
type Download struct {
	ContentType string
	Data        []byte
}

type fileActionResponse struct {
	Detail  string                   `json:"detail"`
	Payload student.FileActionResult `json:"payload"`
}

func attachmentsPath(area string) string {
	return area + "attachments/"
}

func (c *Client) uploadAttachments(ctx context.Context, area, uniqueID string, files []File) (student.FileActionResult, error) {
	var resp fileActionResponse
	req := request{method: http.MethodPut, path: attachmentsPath(area)}

	body := new(bytes.Buffer)
	form := multipart.NewWriter(body)
	err := form.WriteField("action", attachmentActionCreate)
	if err == nil {
		err = form.WriteField("uniqueId", uniqueID)
	}
	for _, f := range files {
		if err != nil {
			break
		}
		var part io.Writer
		if part, err = form.CreateFormFile("files", f.Name); err == nil {
			_, err = io.Copy(part, f.Content)
		}
	}
	if err == nil {
		err = form.Close()
	}
	if err != nil {
		return resp.Payload, c.failure(ctx, req, "", nil, errors.Wrap(err, "encoding attachments"))
	}

	req.body = body
	req.contentType = form.FormDataContentType()
	err = c.call(ctx, req, &resp)
	return resp.Payload, err
}

func (c *Client) deleteAttachments(ctx context.Context, area string, files []student.UploadedFile) (student.FileActionResult, error) {
	var resp fileActionResponse
	payload := map[string]interface{}{"action": attachmentActionDelete, "files": files}
	err := c.put(ctx, attachmentsPath(area), payload, &resp)
	return resp.Payload, err
}

func (c *Client) downloadAttachment(ctx context.Context, area, fileID string) (Download, error) {
	resp, err := c.send(ctx, request{
		method: http.MethodGet,
		path:   attachmentsPath(area),
		query:  url.Values{"fileId": {fileID}},
	})
	if err != nil {
		return Download{}, err
	}
	return Download{ContentType: resp.header.Get("Content-Type"), Data: resp.body}, nil
}
