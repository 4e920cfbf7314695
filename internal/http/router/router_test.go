package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aanand-mishra/employees-api/internal/auth"
	"github.com/aanand-mishra/employees-api/internal/http/middleware"
	"github.com/aanand-mishra/employees-api/internal/persistence"
	"github.com/aanand-mishra/employees-api/internal/report"
	"github.com/aanand-mishra/employees-api/internal/storage/memory"
	"github.com/aanand-mishra/employees-api/internal/store"
	"github.com/aanand-mishra/employees-api/internal/types"
	"github.com/aanand-mishra/employees-api/internal/utils/response"
	"github.com/aanand-mishra/employees-api/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	handler http.Handler
	store   *store.Store
	slot    *memory.Slot
}

func today() time.Time { return time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC) }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	slot := memory.New()
	adapter := persistence.New(slot, "", log)
	st := store.New(adapter.Load(), adapter, log)

	gate, err := auth.NewGate("admin", "admin123", 0)
	require.NoError(t, err)

	h := New(Deps{
		Store:  st,
		Engine: validation.New(today),
		Gate:   gate,
		Log:    log,
		Now:    today,
	})
	return &fixture{handler: h, store: st, slot: slot}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) login(t *testing.T) {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/api/login", map[string]string{"username": "admin", "password": "admin123"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func (f *fixture) stored(t *testing.T) []types.Employee {
	t.Helper()
	payload, err := f.slot.Read(persistence.DefaultKey)
	require.NoError(t, err)
	employees, err := persistence.Decode(payload)
	require.NoError(t, err)
	return employees
}

func decodeInto[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func validBody() map[string]any {
	return map[string]any{
		"fullName":     "A",
		"gender":       "Male",
		"dob":          "2000-01-01",
		"state":        "Texas",
		"profileImage": "x",
	}
}

func TestProtectedRoutesRequireLogin(t *testing.T) {
	f := newFixture(t)

	for _, path := range []string{"/api/employees", "/api/employees/1", "/api/dashboard", "/api/employees/print"} {
		rec := f.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/login", map[string]string{"username": "admin", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid username or password", decodeInto[response.Response](t, rec).Error)

	f.login(t)
	rec = f.do(t, http.MethodGet, "/api/session", nil)
	assert.JSONEq(t, `{"loggedIn":true,"user":"admin"}`, rec.Body.String())

	f.do(t, http.MethodPost, "/api/logout", nil)
	rec = f.do(t, http.MethodGet, "/api/employees", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestIDHeader(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/session", nil)

	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestListReturnsSeed(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	rec := f.do(t, http.MethodGet, "/api/employees", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, types.SeedEmployees(), decodeInto[[]types.Employee](t, rec))
}

func TestListFilters(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	rec := f.do(t, http.MethodGet, "/api/employees?status=Inactive", nil)

	got := decodeInto[[]types.Employee](t, rec)
	require.Len(t, got, 1)
	assert.Equal(t, "Michael Johnson", got[0].FullName)

	rec = f.do(t, http.MethodGet, "/api/employees?search=zzz", nil)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestCreate(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	rec := f.do(t, http.MethodPost, "/api/employees", validBody())

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeInto[types.Employee](t, rec)
	assert.Equal(t, 4, created.ID)
	assert.True(t, created.IsActive, "isActive defaults to true")
	assert.Len(t, f.stored(t), 4)
}

func TestCreate_ValidationErrors(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	body := validBody()
	body["fullName"] = "  "
	body["dob"] = "2010-01-01"
	rec := f.do(t, http.MethodPost, "/api/employees", body)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeInto[response.Response](t, rec)
	assert.Equal(t, map[string]string{
		"fullName": "Full Name is required",
		"dob":      "Employee must be at least 18 years old",
	}, resp.Fields)
	assert.Len(t, f.store.List(), 3)
}

func TestCreate_EmptyBody(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	rec := f.do(t, http.MethodPost, "/api/employees", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "request body is empty", decodeInto[response.Response](t, rec).Error)
}

func TestGetByID(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	rec := f.do(t, http.MethodGet, "/api/employees/2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Jane Smith", decodeInto[types.Employee](t, rec).FullName)

	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/employees/999", nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/employees/abc", nil).Code)
}

func TestUpdate(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	body := validBody()
	body["isActive"] = false
	rec := f.do(t, http.MethodPut, "/api/employees/1", body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decodeInto[types.Employee](t, rec)
	assert.Equal(t, 1, got.ID)
	assert.Equal(t, "A", got.FullName)
	assert.False(t, got.IsActive)
	assert.Equal(t, f.store.List(), f.stored(t))
}

func TestUpdate_UnknownIDLeavesCollection(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	before := f.store.List()

	body := validBody()
	body["fullName"] = "Z"
	rec := f.do(t, http.MethodPut, "/api/employees/999", body)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, before, f.store.List())
}

func TestPatch_MergesOnlyGivenFields(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	before, _ := f.store.Get(2)

	rec := f.do(t, http.MethodPatch, "/api/employees/2", map[string]any{"isActive": false})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	want := before
	want.IsActive = false
	assert.Equal(t, want, decodeInto[types.Employee](t, rec))
}

func TestPatch_ValidatesMergedRecord(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	rec := f.do(t, http.MethodPatch, "/api/employees/2", map[string]any{"state": "Atlantis"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeInto[response.Response](t, rec).Fields, "state")
	got, _ := f.store.Get(2)
	assert.Equal(t, "Texas", got.State)
}

func TestDelete_Idempotent(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	first := f.do(t, http.MethodDelete, "/api/employees/1", nil)
	second := f.do(t, http.MethodDelete, "/api/employees/1", nil)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Len(t, f.store.List(), 2)
	assert.Len(t, f.stored(t), 2)
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	rec := f.do(t, http.MethodGet, "/api/dashboard", nil)

	assert.Equal(t, report.Stats{Total: 3, Active: 2, Inactive: 1}, decodeInto[report.Stats](t, rec))
}

func TestPrint(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	rec := f.do(t, http.MethodGet, "/api/employees/print", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html"))
	assert.Contains(t, rec.Body.String(), "Generated on 06/15/2024")
	assert.Contains(t, rec.Body.String(), "Jane Smith")
}

func uploadRequest(t *testing.T, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "avatar.png")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/profile-image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D}

func TestUploadImage(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, uploadRequest(t, pngHeader))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decodeInto[map[string]string](t, rec)
	assert.True(t, strings.HasPrefix(got["profileImage"], "data:image/png;base64,"))
}

func TestUploadImage_TooLarge(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	big := make([]byte, validation.DefaultMaxImageBytes+1)
	copy(big, pngHeader)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, uploadRequest(t, big))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]string{"profileImage": "Image must be smaller than 2MB"},
		decodeInto[response.Response](t, rec).Fields)
}

func TestUploadImage_NotAnImage(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, uploadRequest(t, []byte("plain text, not an image")))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Profile Image must be an image file",
		decodeInto[response.Response](t, rec).Fields["profileImage"])
}
