// Package rest implements the data service contract over HTTP JSON. The
// remote service wraps every response in a {data, error} envelope carrying
// exactly one of the two.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/campushub/portal/internal/app/dataservice"
	"github.com/campushub/portal/internal/app/models"
)

// ServiceError is a remote failure as reported inside the envelope.
type ServiceError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (e *ServiceError) Error() string { return e.Message }

type envelope[T any] struct {
	Data  T             `json:"data"`
	Error *ServiceError `json:"error"`
}

// Client talks to one data service deployment.
type Client struct {
	base *url.URL
	http *http.Client
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid data service URL %q", baseURL)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base: base,
		http: &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request body")
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	target := c.base.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if caller, ok := dataservice.CallerFromContext(ctx); ok {
		req.Header.Set("X-Caller-ID", caller.UserID)
		req.Header.Set("X-Caller-Role", string(caller.Role))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrapf(err, "decode %s %s response (status %d)", method, path, resp.StatusCode)
		}
	}
	return nil
}

// domainError maps a service error code onto the portal's sentinel errors,
// so callers branch with errors.Is instead of matching code strings.
func domainError(code string) error {
	switch code {
	case "not_found":
		return models.ErrNotFound
	case "conflict":
		return models.ErrConflict
	case "unauthenticated":
		return models.ErrUnauthenticated
	case "forbidden":
		return models.ErrForbidden
	case "bad_request":
		return models.ErrBadRequest
	case "validation":
		return models.ErrValidation
	}
	return nil
}

// call performs one request and unwraps the envelope.
func call[T any](ctx context.Context, c *Client, method, path string, body interface{}) (T, error) {
	var env envelope[T]
	var zero T
	if err := c.do(ctx, method, path, body, &env); err != nil {
		return zero, err
	}
	if env.Error != nil {
		if sentinel := domainError(env.Error.Code); sentinel != nil {
			return zero, errors.Wrap(sentinel, env.Error.Message)
		}
		return zero, env.Error
	}
	return env.Data, nil
}

// Collection binds the generic entity contract to one resource path.
type Collection[R any] struct {
	client *Client
	path   string
}

func NewCollection[R any](client *Client, path string) *Collection[R] {
	return &Collection[R]{client: client, path: strings.Trim(path, "/")}
}

func (col *Collection[R]) List(ctx context.Context) ([]R, error) {
	items, err := call[[]R](ctx, col.client, http.MethodGet, col.path, nil)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []R{}
	}
	return items, nil
}

func (col *Collection[R]) Create(ctx context.Context, rec R) (R, error) {
	return call[R](ctx, col.client, http.MethodPost, col.path, rec)
}

func (col *Collection[R]) Update(ctx context.Context, id uuid.UUID, rec R) (R, error) {
	return call[R](ctx, col.client, http.MethodPut, fmt.Sprintf("%s/%s", col.path, id), rec)
}

func (col *Collection[R]) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := call[struct{}](ctx, col.client, http.MethodDelete, fmt.Sprintf("%s/%s", col.path, id), nil)
	return err
}

// auth implements credential checks against the remote service.
type auth struct {
	client *Client
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *auth) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	user, err := call[models.User](ctx, a.client, http.MethodPost, "auth/login", loginRequest{Email: email, Password: password})
	if err != nil {
		var serr *ServiceError
		if errors.As(err, &serr) {
			return models.User{}, errors.Wrap(models.ErrUnauthenticated, serr.Message)
		}
		return models.User{}, err
	}
	return user, nil
}

// NewService assembles the full data service over one client.
func NewService(client *Client) *dataservice.Service {
	return &dataservice.Service{
		Students:      NewCollection[models.Student](client, "students"),
		Lecturers:     NewCollection[models.Lecturer](client, "lecturers"),
		Courses:       NewCollection[models.Course](client, "courses"),
		Registrations: NewCollection[models.Registration](client, "registrations"),
		Exams:         NewCollection[models.Exam](client, "exams"),
		Attendance:    NewCollection[models.AttendanceRecord](client, "attendance"),
		Materials:     NewCollection[models.Material](client, "materials"),
		Announcements: NewCollection[models.Announcement](client, "announcements"),
		Payments:      NewCollection[models.Payment](client, "payments"),
		Refunds:       NewCollection[models.Refund](client, "refunds"),
		Scholarships:  NewCollection[models.Scholarship](client, "scholarships"),
		Tuition:       NewCollection[models.TuitionFee](client, "tuition"),
		Auth:          &auth{client: client},
	}
}
