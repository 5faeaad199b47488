package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	errors "github.com/Laisky/errors/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/apperr"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/blogs"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/comments"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/feedbacks"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/media"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/models"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/tokens"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/users"
	"github.com/nexbytes/nexfolio/backend/go-services/pkg/middleware"
)

const testKey = "test-api-key"

type deleteCall struct{ folder, publicID string }

type fakeMedia struct {
	deletes   []deleteCall
	deleteErr error
	uploaded  []byte
}

func (f *fakeMedia) Upload(_ context.Context, r io.Reader, size int64) (*media.Upload, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, apperr.Validation("No file uploaded.")
	}
	f.uploaded = b
	return &media.Upload{URL: "http://cdn.test/media/uploads/p1.jpg", Folder: "uploads", PublicID: "p1", Width: 10, Height: 5, Bytes: int64(len(b))}, nil
}

func (f *fakeMedia) Delete(_ context.Context, folder, publicID string) error {
	f.deletes = append(f.deletes, deleteCall{folder, publicID})
	return f.deleteErr
}

func (f *fakeMedia) MaxBytes() int64 { return 1 << 20 }

type harness struct {
	router  *gin.Engine
	blogs   *blogs.MemoryRepository
	users   *users.MemoryUserRepository
	media   *fakeMedia
	issuer  *tokens.Issuer
	token   string
	handled int
}

func newHarness(t *testing.T, requireToken bool) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	blogRepo := blogs.NewMemoryRepository()
	commentRepo := comments.NewMemoryRepository()
	userRepo := users.NewMemoryUserRepository()
	fm := &fakeMedia{}
	issuer := tokens.NewIssuer("handler-test-secret-32-bytes-long!", time.Hour)

	api := &API{
		Blogs:            blogs.NewService(blogRepo, blogs.WithMedia(fm), blogs.WithComments(commentRepo)),
		Comments:         comments.NewService(commentRepo, blogRepo),
		Feedbacks:        feedbacks.NewService(feedbacks.NewMemoryRepository()),
		Users:            users.NewService(userRepo),
		Tokens:           issuer,
		Media:            fm,
		RequireUserToken: requireToken,
		OpenSignup:       true,
	}

	h := &harness{blogs: blogRepo, users: userRepo, media: fm, issuer: issuer}
	r := gin.New()
	r.Use(middleware.APIKeyGate("/api", testKey, "ops@example.com"))
	r.Use(func(c *gin.Context) {
		h.handled++
		c.Next()
	})
	api.Register(r.Group("/api"))
	h.router = r

	tok, err := issuer.Issue("64b7f0c2a1b2c3d4e5f60718", "admin@example.com")
	require.NoError(t, err)
	h.token = tok
	return h
}

func (h *harness) do(method, path string, body interface{}, auth bool) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", testKey)
	if auth {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}

func blogBody() map[string]interface{} {
	return map[string]interface{}{"title": "A", "content": "B", "author": "C", "category": "D", "slug": "a-b"}
}

func TestAPIKeyGate_NeverInvokesHandlers(t *testing.T) {
	h := newHarness(t, true)
	for _, path := range []string{"/api/blogs", "/api/users", "/api/comments", "/api/login"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("x-api-key", "wrong")
		w := httptest.NewRecorder()
		h.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, "For API KEY Contact - ops@example.com", decode(t, w)["message"])
	}
	assert.Equal(t, 0, h.handled)
}

func TestBlogScenario(t *testing.T) {
	h := newHarness(t, true)

	w := h.do(http.MethodPost, "/api/blogs", blogBody(), true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.NotEmpty(t, created["id"])
	assert.NotEmpty(t, created["publishedAt"])
	assert.NotEmpty(t, created["updatedAt"])

	w = h.do(http.MethodPost, "/api/blogs", blogBody(), true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Slug must be unique, it is already in use", decode(t, w)["error"])
	assert.Equal(t, 1, h.blogs.Len())

	w = h.do(http.MethodGet, "/api/blogs/a-b", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created["id"], decode(t, w)["id"])

	w = h.do(http.MethodGet, "/api/blogs/"+created["id"].(string), nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	w = h.do(http.MethodGet, "/api/blogs", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	body := blogBody()
	body["title"] = "A2"
	w = h.do(http.MethodPut, "/api/blogs/a-b", body, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "A2", decode(t, w)["title"])

	w = h.do(http.MethodGet, "/api/blogs/missing", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Blog not found", decode(t, w)["error"])
}

func TestBlogCreate_Validation(t *testing.T) {
	h := newHarness(t, true)
	body := blogBody()
	delete(body, "author")
	w := h.do(http.MethodPost, "/api/blogs", body, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Title, content, author, category, and slug are required", decode(t, w)["error"])

	req := httptest.NewRequest(http.MethodPost, "/api/blogs", strings.NewReader("{not json"))
	req.Header.Set("x-api-key", testKey)
	req.Header.Set("Authorization", "Bearer "+h.token)
	rw := httptest.NewRecorder()
	h.router.ServeHTTP(rw, req)
	assert.Equal(t, http.StatusBadRequest, rw.Code)
}

func TestBlogDelete_ImageCleanup(t *testing.T) {
	h := newHarness(t, true)
	body := blogBody()
	body["image_Url"] = "http://cdn.test/media/uploads/abc.jpg"
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/api/blogs", body, true).Code)

	h.media.deleteErr = apperr.NotFound("File not found on image host.")
	w := h.do(http.MethodDelete, "/api/blogs/a-b", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Blog deleted successfully", decode(t, w)["message"])
	assert.Equal(t, []deleteCall{{"uploads", "abc"}}, h.media.deletes)
	assert.Equal(t, 0, h.blogs.Len())
}

func TestBlogDelete_ImageHostErrorIs500(t *testing.T) {
	h := newHarness(t, true)
	body := blogBody()
	body["image_Url"] = "http://cdn.test/media/uploads/abc.jpg"
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/api/blogs", body, true).Code)

	h.media.deleteErr = errors.New("dial tcp: connection refused")
	w := h.do(http.MethodDelete, "/api/blogs/a-b", nil, true)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to delete blog", decode(t, w)["error"])
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.Equal(t, 1, h.blogs.Len())
}

func TestAdminRoutesRequireToken(t *testing.T) {
	h := newHarness(t, true)
	w := h.do(http.MethodPost, "/api/blogs", blogBody(), false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = h.do(http.MethodGet, "/api/comments", nil, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, h.blogs.Len())

	h2 := newHarness(t, false)
	w = h2.do(http.MethodPost, "/api/blogs", blogBody(), false)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAdminRoutesRejectEmptySecretTokens(t *testing.T) {
	gin.SetMode(gin.TestMode)
	api := &API{
		Users:            users.NewService(users.NewMemoryUserRepository()),
		Tokens:           tokens.NewIssuer("", 2*time.Hour),
		RequireUserToken: true,
	}
	r := gin.New()
	api.Register(r.Group("/api"))

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": "000000000000000000000000",
		"email":  "evil@example.com",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	raw, err := forged.SignedString([]byte(""))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCommentsAndFeedbacks(t *testing.T) {
	h := newHarness(t, true)

	w := h.do(http.MethodPost, "/api/comments", map[string]string{"name": "Ann", "blogTitle": "A", "phone": "1", "email": "a@x.io", "message": "hi"}, false)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode(t, w)["id"].(string)

	w = h.do(http.MethodGet, "/api/comments/"+id, nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	w = h.do(http.MethodGet, "/api/comments/not-an-id", nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Comment not found", decode(t, w)["error"])

	w = h.do(http.MethodDelete, "/api/comments/"+id, nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Comment deleted successfully", decode(t, w)["message"])

	w = h.do(http.MethodPost, "/api/feedbacks", map[string]string{"name": "Bo", "phone": "1", "email": "b@x.io", "subject": "s"}, false)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Name, phone, email, subject, and message are required", decode(t, w)["error"])

	w = h.do(http.MethodPost, "/api/feedbacks", map[string]string{"name": "Bo", "phone": "1", "email": "b@x.io", "subject": "s", "message": "m"}, false)
	require.Equal(t, http.StatusCreated, w.Code)
	fid := decode(t, w)["id"].(string)

	w = h.do(http.MethodPut, "/api/feedbacks/"+fid, map[string]string{"name": "Bo", "phone": "1", "email": "b@x.io", "subject": "s2", "message": "m"}, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "s2", decode(t, w)["subject"])
}

func TestUsersNeverExposePassword(t *testing.T) {
	h := newHarness(t, true)
	w := h.do(http.MethodPost, "/api/users", map[string]string{"name": "Root", "email": "root@example.com", "password": "secret"}, false)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "secret")
	assert.NotContains(t, w.Body.String(), "password")
	id := decode(t, w)["id"].(string)

	w = h.do(http.MethodGet, "/api/users/"+id, nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")
	assert.NotContains(t, w.Body.String(), "$2a$")

	w = h.do(http.MethodGet, "/api/users", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "$2a$")

	w = h.do(http.MethodPost, "/api/users", map[string]string{"name": "Dup", "email": "root@example.com", "password": "x"}, false)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email is already in use", decode(t, w)["error"])
}

func TestCreateUser_PasswordTooLongIs400(t *testing.T) {
	h := newHarness(t, true)
	w := h.do(http.MethodPost, "/api/users", map[string]string{"name": "Root", "email": "root@example.com", "password": strings.Repeat("x", 73)}, false)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Password must be at most 72 bytes", decode(t, w)["error"])
	assert.Equal(t, 0, h.users.Len())
}

func TestLogin(t *testing.T) {
	h := newHarness(t, true)
	_, err := users.NewService(h.users).Create(context.Background(), models.UserInput{Name: "Root", Email: "root@example.com", Password: "secret"})
	require.NoError(t, err)

	w := h.do(http.MethodPost, "/api/login", map[string]string{"email": "root@example.com", "password": "secret"}, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Root", body["name"])
	assert.Equal(t, "root@example.com", body["email"])
	claims, err := h.issuer.Parse(body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, body["id"], claims.UserID)

	wrong := h.do(http.MethodPost, "/api/login", map[string]string{"email": "root@example.com", "password": "nope"}, false)
	unknown := h.do(http.MethodPost, "/api/login", map[string]string{"email": "ghost@example.com", "password": "secret"}, false)
	require.Equal(t, http.StatusUnauthorized, wrong.Code)
	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, "Invalid email or password", decode(t, unknown)["error"])
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())

	w = h.do(http.MethodPost, "/api/login", map[string]string{"email": "root@example.com"}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadRoutes(t *testing.T) {
	h := newHarness(t, true)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "photo.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("pretend-image-bytes"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("x-api-key", testKey)
	req.Header.Set("Authorization", "Bearer "+h.token)
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "p1", body["publicId"])
	assert.Equal(t, "uploads", body["folder"])
	assert.Equal(t, []byte("pretend-image-bytes"), h.media.uploaded)

	req = httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader(""))
	req.Header.Set("x-api-key", testKey)
	req.Header.Set("Authorization", "Bearer "+h.token)
	w = httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file uploaded.", decode(t, w)["error"])

	h.media.deleteErr = apperr.NotFound("File not found on image host.")
	w = h.do(http.MethodDelete, "/api/upload/uploads/p1", nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)

	h.media.deleteErr = nil
	w = h.do(http.MethodDelete, "/api/upload/uploads/p1", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "File deleted successfully.", decode(t, w)["message"])
}
