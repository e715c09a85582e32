package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campushub/portal/internal/app/dataservice"
	"github.com/campushub/portal/internal/app/fetch"
	"github.com/campushub/portal/internal/app/middleware"
	"github.com/campushub/portal/internal/app/models"
	"github.com/campushub/portal/internal/app/payments"
	"github.com/campushub/portal/internal/app/session"
	"github.com/campushub/portal/internal/app/views"
)

type stubSessions struct {
	sess session.Session
	ok   bool
}

func (s stubSessions) Read(*gin.Context) (session.Session, bool) { return s.sess, s.ok }
func (s stubSessions) Write(*gin.Context, session.Session) error { return nil }
func (s stubSessions) Clear(*gin.Context)                        {}

// fakeStudents is an in-memory student collection counting its calls.
type fakeStudents struct {
	items       []models.Student
	listErr     error
	listCalls   int
	createCalls int
}

func (f *fakeStudents) List(context.Context) ([]models.Student, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Student(nil), f.items...), nil
}

func (f *fakeStudents) Create(_ context.Context, rec models.Student) (models.Student, error) {
	f.createCalls++
	rec.ID = uuid.New()
	f.items = append(f.items, rec)
	return rec, nil
}

func (f *fakeStudents) Update(_ context.Context, id uuid.UUID, rec models.Student) (models.Student, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			rec.ID = id
			f.items[i] = rec
			return rec, nil
		}
	}
	return models.Student{}, models.ErrNotFound
}

func (f *fakeStudents) Delete(_ context.Context, id uuid.UUID) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

// fakePayments only needs Create for the validation scenario.
type fakePayments struct {
	createCalls int
}

func (f *fakePayments) List(context.Context) ([]models.Payment, error) {
	return []models.Payment{}, nil
}

func (f *fakePayments) Create(_ context.Context, rec models.Payment) (models.Payment, error) {
	f.createCalls++
	rec.ID = uuid.New()
	return rec, nil
}

func (f *fakePayments) Update(_ context.Context, id uuid.UUID, rec models.Payment) (models.Payment, error) {
	return rec, nil
}

func (f *fakePayments) Delete(context.Context, uuid.UUID) error { return nil }

func adminSession() session.Session {
	return session.Session{UserID: uuid.NewString(), Name: "Site Admin", Email: "admin@uni.edu", Role: models.RoleAdmin}
}

func newTestRouter(t *testing.T, svc *dataservice.Service, provider payments.Provider) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := stubSessions{sess: adminSession(), ok: true}
	h := New(svc, fetch.NewSnapshots(0), store, provider, zap.NewNop())

	r := gin.New()
	r.Use(sessions.Sessions("portal_flash", cookie.NewStore([]byte("test-secret"))))

	guard := middleware.RequireRole(store, models.RoleAdmin)
	admin := r.Group("/admin", guard)
	admin.GET("/students", h.AdminStudents)
	admin.POST("/students", h.CreateStudent)
	admin.DELETE("/students/:id", h.DeleteStudent)
	admin.POST("/payments", h.RecordPayment)
	return r
}

func seedStudents(total, cs int) []models.Student {
	items := make([]models.Student, 0, total)
	for i := 0; i < total; i++ {
		dept := "History"
		if i < cs {
			dept = "Computer Science"
		}
		items = append(items, models.Student{
			ID:         uuid.New(),
			FirstName:  "Student",
			LastName:   fmt.Sprintf("%02d", i),
			Email:      fmt.Sprintf("s%02d@uni.edu", i),
			Department: dept,
			Year:       1 + i%4,
			Status:     models.StudentActive,
		})
	}
	return items
}

type listResponse struct {
	Rows     []json.RawMessage `json:"rows"`
	Showing  string            `json:"showing"`
	Cards    []views.StatCard  `json:"cards"`
	Query    string            `json:"query"`
	Selected map[string]string `json:"selected"`
}

func getJSON(t *testing.T, r *gin.Engine, path string, out interface{}) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	if out != nil {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w
}

func postForm(t *testing.T, r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func TestStudentListFilterShowsTwelveOfFifty(t *testing.T) {
	students := &fakeStudents{items: seedStudents(50, 12)}
	svc := &dataservice.Service{Students: students, Payments: &fakePayments{}}
	r := newTestRouter(t, svc, &payments.FakeProvider{})

	var resp listResponse
	w := getJSON(t, r, "/admin/students?department="+url.QueryEscape("Computer Science"), &resp)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Rows, 12)
	assert.Equal(t, "Showing 12 of 50", resp.Showing)
	assert.Equal(t, map[string]string{"department": "Computer Science"}, resp.Selected)
}

func TestStudentListAllDepartmentsSentinelIsNoOp(t *testing.T) {
	students := &fakeStudents{items: seedStudents(50, 12)}
	svc := &dataservice.Service{Students: students, Payments: &fakePayments{}}
	r := newTestRouter(t, svc, &payments.FakeProvider{})

	var resp listResponse
	getJSON(t, r, "/admin/students?department="+url.QueryEscape(views.AllDepartments), &resp)
	assert.Len(t, resp.Rows, 50)
	assert.Equal(t, "Showing 50 of 50", resp.Showing)
}

func TestStudentListCardsIgnoreActiveFilter(t *testing.T) {
	students := &fakeStudents{items: seedStudents(50, 12)}
	svc := &dataservice.Service{Students: students, Payments: &fakePayments{}}
	r := newTestRouter(t, svc, &payments.FakeProvider{})

	var resp listResponse
	getJSON(t, r, "/admin/students?department="+url.QueryEscape("Computer Science"), &resp)

	require.NotEmpty(t, resp.Cards)
	assert.Equal(t, "Total Students", resp.Cards[0].Label)
	assert.Equal(t, "50", resp.Cards[0].Value)
}

func TestFetchErrorRendersErrorCardAndRetryRefetchesOnce(t *testing.T) {
	students := &fakeStudents{listErr: errors.New("network down")}
	svc := &dataservice.Service{Students: students, Payments: &fakePayments{}}
	r := newTestRouter(t, svc, &payments.FakeProvider{})

	var errPage ErrorPage
	w := getJSON(t, r, "/admin/students", &errPage)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "network down", errPage.Error.Message)
	assert.Equal(t, "/admin/students", errPage.Retry)
	assert.Equal(t, 1, students.listCalls)

	// Retry re-invokes the fetch exactly once more.
	getJSON(t, r, errPage.Retry, &errPage)
	assert.Equal(t, 2, students.listCalls)
}

func TestCreatePaymentZeroAmountBlockedInline(t *testing.T) {
	pay := &fakePayments{}
	svc := &dataservice.Service{Students: &fakeStudents{}, Payments: pay}
	r := newTestRouter(t, svc, &payments.FakeProvider{})

	w := postForm(t, r, "/admin/payments", url.Values{
		"student_id":   {uuid.NewString()},
		"student_name": {"Ada Lovelace"},
		"amount":       {"0"},
		"method":       {"card"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var form FormErrors
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &form))
	assert.Equal(t, "Amount must be greater than 0", form.Fields["amount"])
	assert.Equal(t, 0, pay.createCalls, "no service call on validation failure")
}

func TestMutationRoundTrip(t *testing.T) {
	students := &fakeStudents{items: seedStudents(50, 12)}
	svc := &dataservice.Service{Students: students, Payments: &fakePayments{}}
	r := newTestRouter(t, svc, &payments.FakeProvider{})

	var before listResponse
	getJSON(t, r, "/admin/students", &before)
	require.Len(t, before.Rows, 50)

	w := postForm(t, r, "/admin/students", url.Values{
		"first_name": {"Grace"},
		"last_name":  {"Hopper"},
		"email":      {"grace@uni.edu"},
		"department": {"Computer Science"},
		"year":       {"1"},
		"status":     {"active"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/students", w.Header().Get("Location"))
	assert.Equal(t, 1, students.createCalls)

	var after listResponse
	getJSON(t, r, "/admin/students", &after)
	assert.Len(t, after.Rows, 51, "re-fetch after create grows the list by exactly one")

	var created struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(after.Rows[50], &created))
	assert.Equal(t, "Grace Hopper", created.Name)

	// Delete shrinks the list by exactly one and the id disappears.
	wDel := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/admin/students/"+created.ID, nil)
	r.ServeHTTP(wDel, req)
	assert.Equal(t, http.StatusSeeOther, wDel.Code)

	var final listResponse
	getJSON(t, r, "/admin/students", &final)
	assert.Len(t, final.Rows, 50)
	for _, row := range final.Rows {
		var v struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal(row, &v))
		assert.NotEqual(t, created.ID, v.ID)
	}
}

func TestSearchAndFilterReuseSnapshotWithoutRefetch(t *testing.T) {
	students := &fakeStudents{items: seedStudents(10, 4)}
	svc := &dataservice.Service{Students: students, Payments: &fakePayments{}}
	r := newTestRouter(t, svc, &payments.FakeProvider{})

	getJSON(t, r, "/admin/students", nil)
	require.Equal(t, 1, students.listCalls)

	// Search and filter interactions re-run only the pipeline.
	getJSON(t, r, "/admin/students?q=student", nil)
	getJSON(t, r, "/admin/students?department=History", nil)
	assert.Equal(t, 1, students.listCalls)

	// A clean navigation re-fetches.
	getJSON(t, r, "/admin/students", nil)
	assert.Equal(t, 2, students.listCalls)
}
