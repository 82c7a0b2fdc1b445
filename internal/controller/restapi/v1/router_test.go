package v1

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/andreyxaxa/Image-Gallery/internal/entity"
	"github.com/andreyxaxa/Image-Gallery/pkg/session"
	"github.com/andreyxaxa/Image-Gallery/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGallery struct {
	mock.Mock
}

func (m *mockGallery) Upload(ctx context.Context, data []byte, originalFilename, contentType string, size int64) (*entity.Image, error) {
	args := m.Called(ctx, data, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Image), args.Error(1)
}

func (m *mockGallery) List(ctx context.Context) ([]*entity.Image, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Image), args.Error(1)
}

func (m *mockGallery) Rename(ctx context.Context, id uuid.UUID, newName string) error {
	args := m.Called(ctx, id, newName)
	return args.Error(0)
}

func (m *mockGallery) Delete(ctx context.Context, storeKey string) error {
	args := m.Called(ctx, storeKey)
	return args.Error(0)
}

func (m *mockGallery) Download(ctx context.Context, id uuid.UUID) (*entity.Image, io.ReadCloser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*entity.Image), args.Get(1).(io.ReadCloser), args.Error(2)
}

func (m *mockGallery) DownloadThumb(ctx context.Context, id uuid.UUID) (*entity.Image, io.ReadCloser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*entity.Image), args.Get(1).(io.ReadCloser), args.Error(2)
}

func (m *mockGallery) GetPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error) {
	return nil, nil
}

func (m *mockGallery) MarkAsProcessingBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	return nil
}

func (m *mockGallery) MarkAsProcessedBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	return nil
}

func (m *mockGallery) IncrementRetryCountBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	return nil
}

func (m *mockGallery) MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error {
	return nil
}

func (m *mockGallery) CleanupOutbox(ctx context.Context) error {
	return nil
}

type mockAuth struct {
	mock.Mock
}

func (m *mockAuth) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Debug(message interface{}, args ...interface{}) {}
func (nopLogger) Info(message string, args ...interface{})       {}
func (nopLogger) Warn(message string, args ...interface{})       {}
func (nopLogger) Error(message interface{}, args ...interface{}) {}
func (nopLogger) Fatal(message interface{}, args ...interface{}) {}

type testEnv struct {
	app      *fiber.App
	gallery  *mockGallery
	auth     *mockAuth
	sessions *session.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	views, err := ViewsEngine()
	require.NoError(t, err)

	env := &testEnv{
		gallery:  new(mockGallery),
		auth:     new(mockAuth),
		sessions: session.New("test-secret", time.Hour),
		app:      fiber.New(fiber.Config{Views: views}),
	}

	NewGalleryRoutes(env.app, env.gallery, env.auth, env.sessions, time.Hour, nopLogger{})

	return env
}

func (e *testEnv) authenticated(t *testing.T, req *http.Request) *http.Request {
	t.Helper()

	token, err := e.sessions.Issue("admin")
	require.NoError(t, err)

	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})

	return req
}

func formRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	return req
}

func TestRequireSession_NoCookie(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/gallery", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get(fiber.HeaderLocation))
	env.gallery.AssertNotCalled(t, "List", mock.Anything)
}

func TestRequireSession_TamperedCookie(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/gallery", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "garbage"})

	resp, err := env.app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get(fiber.HeaderLocation))
}

func TestShowGallery(t *testing.T) {
	env := newTestEnv(t)
	images := []*entity.Image{
		{ID: uuid.New(), OriginalName: "vacation", StoreKey: "uploads/a", URL: "https://store/a", CreatedAt: time.Now()},
	}

	env.gallery.On("List", mock.Anything).Return(images, nil)

	req := env.authenticated(t, httptest.NewRequest(http.MethodGet, "/gallery", nil))
	resp, err := env.app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "vacation")
}

func TestLogin_SetsCookie(t *testing.T) {
	env := newTestEnv(t)

	env.auth.On("Login", mock.Anything, "admin", "admin123").Return("signed-token", nil)

	resp, err := env.app.Test(formRequest("/login", url.Values{
		"username": {"admin"},
		"password": {"admin123"},
	}))
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))

	var sessionSet bool
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookie && c.Value == "signed-token" {
			sessionSet = true
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, sessionSet)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)

	env.auth.On("Login", mock.Anything, "admin", "wrong").
		Return("", fmt.Errorf("login: %w", errs.ErrInvalidCredentials))

	resp, err := env.app.Test(formRequest("/login", url.Values{
		"username": {"admin"},
		"password": {"wrong"},
	}))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Invalid credentials")
}

func TestLogout_ClearsCookie(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodPost, "/logout", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get(fiber.HeaderLocation))

	var cleared bool
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookie && c.Value == "" {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestUploadImage(t *testing.T) {
	env := newTestEnv(t)

	env.gallery.On("Upload", mock.Anything, []byte("image bytes"), "vacation.png", "image/png", int64(11)).
		Return(&entity.Image{ID: uuid.New()}, nil)

	req := env.authenticated(t, multipartUpload(t, "vacation.png", "image/png", []byte("image bytes")))
	resp, err := env.app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/gallery", resp.Header.Get(fiber.HeaderLocation))
	env.gallery.AssertExpectations(t)
}

func TestUploadImage_UnsupportedType(t *testing.T) {
	env := newTestEnv(t)

	req := env.authenticated(t, multipartUpload(t, "doc.pdf", "application/pdf", []byte("%PDF")))
	resp, err := env.app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
	env.gallery.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRenameImage_BadID(t *testing.T) {
	env := newTestEnv(t)

	req := env.authenticated(t, formRequest("/rename", url.Values{
		"id":      {"not-a-uuid"},
		"newName": {"whatever"},
	}))
	resp, err := env.app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/gallery", resp.Header.Get(fiber.HeaderLocation))
	env.gallery.AssertNotCalled(t, "Rename", mock.Anything, mock.Anything, mock.Anything)
}

func TestRenameImage(t *testing.T) {
	env := newTestEnv(t)
	id := uuid.New()

	env.gallery.On("Rename", mock.Anything, id, "Summer Trip").Return(nil)

	req := env.authenticated(t, formRequest("/rename", url.Values{
		"id":      {id.String()},
		"newName": {"Summer Trip"},
	}))
	resp, err := env.app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	env.gallery.AssertExpectations(t)
}

func TestDeleteImage_MissingKey(t *testing.T) {
	env := newTestEnv(t)

	req := env.authenticated(t, formRequest("/delete", url.Values{}))
	resp, err := env.app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	env.gallery.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDownloadImage(t *testing.T) {
	env := newTestEnv(t)
	id := uuid.New()
	image := &entity.Image{ID: id, OriginalName: "vacation", ContentType: "image/png"}

	env.gallery.On("Download", mock.Anything, id).
		Return(image, io.NopCloser(strings.NewReader("image bytes")), nil)

	req := env.authenticated(t, httptest.NewRequest(http.MethodGet, "/download/"+id.String(), nil))
	resp, err := env.app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, `attachment; filename="vacation.png"`, resp.Header.Get(fiber.HeaderContentDisposition))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(body))
}

func TestDownloadImage_NotFound(t *testing.T) {
	env := newTestEnv(t)
	id := uuid.New()

	env.gallery.On("Download", mock.Anything, id).
		Return(nil, nil, fmt.Errorf("repo: %w", errs.ErrRecordNotFound))

	req := env.authenticated(t, httptest.NewRequest(http.MethodGet, "/download/"+id.String(), nil))
	resp, err := env.app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/gallery", resp.Header.Get(fiber.HeaderLocation))
}

func TestShowThumb_NotFound(t *testing.T) {
	env := newTestEnv(t)
	id := uuid.New()

	env.gallery.On("DownloadThumb", mock.Anything, id).
		Return(nil, nil, fmt.Errorf("repo: %w", errs.ErrRecordNotFound))

	req := env.authenticated(t, httptest.NewRequest(http.MethodGet, "/thumb/"+id.String(), nil))
	resp, err := env.app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func multipartUpload(t *testing.T, filename, contentType string, data []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	require.NoError(t, err)

	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())

	return req
}
