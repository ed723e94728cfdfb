package backendsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/registrar/core"
	"github.com/trezcool/registrar/core/router"
	"github.com/trezcool/registrar/core/toast"
)

const (
	headerAuthorization = "Authorization"
	headerRequestID     = "X-Request-ID"
	contentTypeJSON     = "application/json"
)

type (
	// Session is the token side of the session store.
	Session interface {
		AccessToken() string
		SetAccessToken(ctx context.Context, token string)
		Reset(ctx context.Context)
	}

	Navigator interface {
		CurrentPath() string
		RedirectToLogin()
	}

	Notifier interface {
		ShowError(detail string, kind toast.Kind)
	}
)

// Client talks to the registrar REST backend. It attaches the bearer token, keeps the rolling
// token up to date and logs the user out when the backend rejects the token.
type Client struct {
	baseURL  string
	http     *http.Client
	sess     Session
	nav      Navigator
	notifier Notifier
	logger   core.Logger
	validate *validator.Validate
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client (tests, custom transports).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithValidator validates queries and forms with validate instead of a bare validator.
func WithValidator(validate *validator.Validate) Option {
	return func(c *Client) { c.validate = validate }
}

func NewClient(conf *core.Config, sess Session, nav Navigator, notifier Notifier, logger core.Logger, opts ...Option) (*Client, error) {
	if err := vala.BeginValidation().Validate(
		vala.IsNotNil(conf, "conf"),
		vala.IsNotNil(sess, "sess"),
		vala.IsNotNil(nav, "nav"),
		vala.IsNotNil(notifier, "notifier"),
		vala.IsNotNil(logger, "logger"),
	).Check(); err != nil {
		return nil, err
	}
	if err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(conf.API.Endpoint, "conf.API.Endpoint"),
	).Check(); err != nil {
		return nil, err
	}
	if _, err := url.ParseRequestURI(conf.API.Endpoint); err != nil {
		return nil, errors.Wrap(err, "parsing API endpoint")
	}

	c := &Client{
		baseURL:  strings.TrimRight(conf.API.Endpoint, "/"),
		http:     &http.Client{Timeout: conf.API.Timeout},
		sess:     sess,
		nav:      nav,
		notifier: notifier,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.validate == nil {
		c.validate = validator.New()
		core.InitValidators(c.validate)
	}
	return c, nil
}

// endpoint joins path to the base URL the way browsers' HTTP libraries do: leading slashes
// of path do not escape the base path.
func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

type response struct {
	requestID string
	status    int
	header    http.Header
	body      []byte
}

func jsonRequest(method, path string, payload interface{}) (request, error) {
	req := request{method: method, path: path}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return req, errors.Wrap(err, "encoding request body")
		}
		req.body = bytes.NewReader(data)
		req.contentType = contentTypeJSON
	}
	return req, nil
}

// send performs req and classifies its outcome. Any error returned is an *Error.
func (c *Client) send(ctx context.Context, req request) (*response, error) {
	reqID := uuid.New().String()
	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.endpoint(req.path, req.query), req.body)
	if err != nil {
		return nil, c.failure(ctx, req, reqID, nil, err)
	}
	httpReq.Header.Set(headerRequestID, reqID)
	httpReq.Header.Set("Accept", contentTypeJSON)
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if token := c.sess.AccessToken(); token != "" {
		httpReq.Header.Set(headerAuthorization, "Bearer "+token)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, c.failure(ctx, req, reqID, nil, errors.Wrap(err, "sending request"))
	}
	//goland:noinspection GoUnhandledErrorResult
	defer httpResp.Body.Close()

	resp := &response{requestID: reqID, status: httpResp.StatusCode, header: httpResp.Header}
	resp.body, err = io.ReadAll(httpResp.Body)
	if err != nil {
		err = errors.Wrap(err, "reading response")
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		if err == nil {
			err = errors.Errorf("%s %s: %s", req.method, req.path, httpResp.Status)
		}
		return nil, c.failure(ctx, req, reqID, resp, err)
	}
	if err != nil {
		return nil, c.failure(ctx, req, reqID, nil, err)
	}

	if token := httpResp.Header.Get(headerAuthorization); token != "" {
		c.sess.SetAccessToken(ctx, token)
	}
	return resp, nil
}

// failure turns a failed exchange into an *Error, logging the user out on 401.
// resp is nil when no response was received.
func (c *Client) failure(ctx context.Context, req request, reqID string, resp *response, cause error) *Error {
	e := &Error{Message: FallbackMessage, RequestID: reqID}
	if resp != nil {
		e.Status = resp.status
		var env struct {
			Detail interface{} `json:"detail"`
		}
		if json.Unmarshal(resp.body, &env) == nil {
			if detail, ok := env.Detail.(string); ok && detail != "" {
				e.Message = detail
			}
		}
	}

	c.logger.Warn("backend request failed", map[string]interface{}{
		"method":    req.method,
		"path":      req.path,
		"status":    e.Status,
		"requestId": reqID,
	}, cause)

	if e.Unauthorized() {
		c.sess.Reset(ctx)
		if c.nav.CurrentPath() != router.PathLogin {
			c.notifier.ShowError(e.Message, toast.Warn)
			c.nav.RedirectToLogin()
		}
	}
	return e
}

// call sends req and decodes the JSON response into out (when not nil).
func (c *Client) call(ctx context.Context, req request, out interface{}) error {
	resp, err := c.send(ctx, req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err = json.Unmarshal(resp.body, out); err != nil {
		return c.failure(ctx, req, resp.requestID, nil, errors.Wrap(err, "decoding response"))
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.call(ctx, request{method: http.MethodGet, path: path, query: query}, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, payload, out interface{}) error {
	req, err := jsonRequest(method, path, payload)
	if err != nil {
		return c.failure(ctx, req, "", nil, err)
	}
	return c.call(ctx, req, out)
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	return c.sendJSON(ctx, http.MethodPost, path, payload, out)
}

func (c *Client) put(ctx context.Context, path string, payload, out interface{}) error {
	return c.sendJSON(ctx, http.MethodPut, path, payload, out)
}

func (c *Client) delete(ctx context.Context, path string, payload, out interface{}) error {
	return c.sendJSON(ctx, http.MethodDelete, path, payload, out)
}

// check validates a query or form before anything is sent. Validation failures are returned
// as is (validator.ValidationErrors), not as *Error.
func (c *Client) check(form interface{}) error {
	return c.validate.Struct(form)
}
