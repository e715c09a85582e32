// Package handlers renders the portal pages as JSON view-model payloads.
// Every list page follows the same shape: resolve the session, load the
// page's snapshot (fetching from the data service only when needed), run the
// view-model pipeline, and return rows plus dashboard cards. Mutations
// validate locally, call the data service once, and re-fetch on the next
// list render.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/campushub/portal/internal/app/dataservice"
	"github.com/campushub/portal/internal/app/fetch"
	"github.com/campushub/portal/internal/app/middleware"
	"github.com/campushub/portal/internal/app/models"
	"github.com/campushub/portal/internal/app/notify"
	"github.com/campushub/portal/internal/app/payments"
	"github.com/campushub/portal/internal/app/session"
	"github.com/campushub/portal/internal/app/validate"
	"github.com/campushub/portal/internal/app/viewmodel"
	"github.com/campushub/portal/internal/app/views"
	"github.com/campushub/portal/internal/observability/metrics"
)

// Handlers owns the portal's page and mutation endpoints.
type Handlers struct {
	Svc       *dataservice.Service
	Snapshots *fetch.Snapshots
	Sessions  session.Store
	Payments  payments.Provider
	Logger    *zap.Logger
}

func New(svc *dataservice.Service, snaps *fetch.Snapshots, sessions session.Store, provider payments.Provider, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{Svc: svc, Snapshots: snaps, Sessions: sessions, Payments: provider, Logger: logger}
}

// ListPage is the payload of every list view.
type ListPage[V any] struct {
	Title    string            `json:"title"`
	Nav      models.Navigation `json:"nav"`
	User     string            `json:"user"`
	Cards    []views.StatCard  `json:"cards,omitempty"`
	Rows     []V               `json:"rows"`
	Showing  string            `json:"showing"`
	Query    string            `json:"query"`
	Selected map[string]string `json:"selected"`
	Notices  []notify.Notice   `json:"notices"`
}

// ErrorPage is the dedicated fetch-failure state: the error message plus a
// manual retry target that re-invokes the same fetch. No automatic retry.
type ErrorPage struct {
	Title   string          `json:"title"`
	Error   PageError       `json:"error"`
	Retry   string          `json:"retry"`
	Notices []notify.Notice `json:"notices"`
}

type PageError struct {
	Message string `json:"message"`
}

// FormErrors is the 422 payload of a rejected modal submission: inline field
// messages plus the submitted values echoed back so user input is retained.
type FormErrors struct {
	Fields map[string]string `json:"fields"`
	Values interface{}       `json:"values"`
}

// mustSession returns the guard-installed session. The guard runs on every
// protected route, so absence here is a programming error, not a user state.
func (h *Handlers) mustSession(c *gin.Context) session.Session {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		h.Logger.Error("Protected handler reached without session", zap.String("path", c.FullPath()))
	}
	return sess
}

// snapshotKey scopes a page's cached collection to one user.
func snapshotKey(sess session.Session, page string) string {
	return sess.UserID + ":" + page
}

// pipelineState collects the query string and the selected value per filter
// key from the request.
func pipelineState[R, V any](c *gin.Context, desc viewmodel.Descriptor[R, V]) viewmodel.State {
	selected := make(map[string]string, len(desc.Filters))
	for key := range desc.Filters {
		if v, ok := c.GetQuery(key); ok {
			selected[key] = v
		}
	}
	return viewmodel.State{Query: c.Query("q"), Selected: selected}
}

// wantsSnapshot reports whether this request is a search/filter interaction,
// which re-runs only the pipeline against the cached snapshot. A clean
// navigation (no pipeline params) re-fetches.
func wantsSnapshot[R, V any](c *gin.Context, desc viewmodel.Descriptor[R, V]) bool {
	if _, ok := c.GetQuery("q"); ok {
		return true
	}
	for key := range desc.Filters {
		if _, ok := c.GetQuery(key); ok {
			return true
		}
	}
	return false
}

// renderList is the shared list-page flow. cards may be nil for pages
// without dashboard cards; when present it aggregates over the full
// projected set, never the filtered rows.
func renderList[R, V any](h *Handlers, c *gin.Context, page, title string, col dataservice.Collection[R], desc viewmodel.Descriptor[R, V], cards func([]V) []views.StatCard) {
	sess := h.mustSession(c)
	key := snapshotKey(sess, page)
	refresh := !wantsSnapshot(c, desc)

	raw, err := fetch.Load(c.Request.Context(), h.Snapshots, key, refresh, col.List)
	if err != nil {
		h.Logger.Warn("List fetch failed",
			zap.String("page", page),
			zap.Error(err),
		)
		c.JSON(http.StatusBadGateway, ErrorPage{
			Title:   title,
			Error:   PageError{Message: rootMessage(err)},
			Retry:   page,
			Notices: notify.Pop(c),
		})
		return
	}

	state := pipelineState(c, desc)
	rs := viewmodel.Apply(desc, raw, state)

	payload := ListPage[V]{
		Title:    title,
		Nav:      models.Nav(sess.Role),
		User:     sess.Name,
		Rows:     rs.Items,
		Showing:  viewmodel.Showing(len(rs.Items), len(rs.All)),
		Query:    state.Query,
		Selected: state.Selected,
		Notices:  notify.Pop(c),
	}
	if cards != nil {
		payload.Cards = cards(rs.All)
	}
	c.JSON(http.StatusOK, payload)
}

// submitForm binds and validates a modal form. On validation failure it
// writes the 422 inline-errors payload and returns false; no service call is
// made.
func (h *Handlers) submitForm(c *gin.Context, form interface{}) bool {
	if err := c.ShouldBind(form); err != nil {
		c.JSON(http.StatusBadRequest, FormErrors{
			Fields: map[string]string{"form": err.Error()},
			Values: form,
		})
		return false
	}
	if err := validate.Struct(form); err != nil {
		c.JSON(http.StatusUnprocessableEntity, FormErrors{
			Fields: validate.Fields(err),
			Values: form,
		})
		return false
	}
	return true
}

// mutationFailed surfaces a failed service mutation: failure flash, 502, and
// the submitted values echoed back so the modal keeps the user's input.
func (h *Handlers) mutationFailed(c *gin.Context, action string, form interface{}, err error) {
	h.Logger.Warn("Mutation failed", zap.String("action", action), zap.Error(err))
	metrics.Get().MutationsTotal.Add(c.Request.Context(), 1,
		metric.WithAttributes(attribute.Bool("success", false)))
	notify.Push(c, notify.Notice{
		Variant:     notify.Error,
		Title:       action + " failed",
		Description: rootMessage(err),
	})
	c.JSON(http.StatusBadGateway, FormErrors{
		Fields: map[string]string{"form": rootMessage(err)},
		Values: form,
	})
}

// mutationSucceeded invalidates the page snapshot so the next list render
// re-fetches, pushes the success flash, and redirects back to the list.
func (h *Handlers) mutationSucceeded(c *gin.Context, page, title, description string) {
	sess := h.mustSession(c)
	h.Snapshots.Invalidate(snapshotKey(sess, page))
	metrics.Get().MutationsTotal.Add(c.Request.Context(), 1,
		metric.WithAttributes(attribute.Bool("success", true)))
	notify.Push(c, notify.Notice{Variant: notify.Success, Title: title, Description: description})
	c.Redirect(http.StatusSeeOther, page)
}

// parseID reads the :id path param. A malformed id is a client error, not a
// service round-trip.
func (h *Handlers) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, FormErrors{
			Fields: map[string]string{"id": "Invalid record id"},
		})
		return uuid.Nil, false
	}
	return id, true
}

func rootMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// NotFoundBody is the placeholder body for unmatched paths, both under the
// protected subtrees and globally. Unmatched protected paths render it
// rather than redirecting.
const NotFoundBody = "404 - Page Not Found"

func (h *Handlers) NotFound(c *gin.Context) {
	c.String(http.StatusNotFound, NotFoundBody)
}
