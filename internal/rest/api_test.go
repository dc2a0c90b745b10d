package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edushare/edushare/api"
	"github.com/edushare/edushare/edushare/application"
	"github.com/edushare/edushare/edushare/persistence/memory"
	"github.com/edushare/edushare/internal/middleware"
)

func previewURLStub(fileID string) string {
	return "http://localhost/storage/buckets/attachments/files/" + fileID + "/view?project=test"
}

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	store := memory.New()

	auth := application.NewAuthService(store, store, store, []byte("test-secret"), time.Hour)
	content := application.NewContentService(
		store, store, store, store,
		application.NewDisplayNameResolver(store),
		application.NewContentRenderer(previewURLStub),
		previewURLStub,
	)

	router := gin.New()
	router.Use(middleware.Authenticate(auth))
	NewApi(router, auth, content)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func signup(t *testing.T, router *gin.Engine, email, name string) api.SessionResponse {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/auth/v1/signup", "", api.SignupProto{
		Email:    email,
		Password: "hunter2-long-enough",
		Name:     name,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup returned %d: %s", w.Code, w.Body.String())
	}
	return decode[api.SessionResponse](t, w)
}

func TestSignupLoginMe(t *testing.T) {
	router := newTestServer(t)

	session := signup(t, router, "alice@example.com", "Alice")
	if session.Token == "" {
		t.Fatal("signup returned an empty token")
	}
	if session.User.Name != "Alice" {
		t.Errorf("signup user name = %q, want Alice", session.User.Name)
	}

	w := doJSON(t, router, http.MethodGet, "/auth/v1/me", session.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me returned %d: %s", w.Code, w.Body.String())
	}
	me := decode[api.User](t, w)
	if me.Email != "alice@example.com" {
		t.Errorf("me email = %q", me.Email)
	}

	w = doJSON(t, router, http.MethodGet, "/auth/v1/me", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous me returned %d, want 401", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/auth/v1/login", "", api.LoginProto{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad login returned %d, want 401", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/auth/v1/login", "", api.LoginProto{
		Email:    "alice@example.com",
		Password: "hunter2-long-enough",
	})
	if w.Code != http.StatusOK {
		t.Errorf("login returned %d: %s", w.Code, w.Body.String())
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	router := newTestServer(t)
	session := signup(t, router, "alice@example.com", "Alice")

	w := doJSON(t, router, http.MethodPost, "/auth/v1/logout", session.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("logout returned %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/auth/v1/me", session.Token, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("me after logout returned %d, want 401", w.Code)
	}
}

func TestPostLifecycle(t *testing.T) {
	router := newTestServer(t)
	session := signup(t, router, "alice@example.com", "Alice")

	proto := api.PostProto{
		Slug:    "my-first-post",
		Title:   "My First Post",
		Content: "Welcome to **EduShare**",
		Status:  "active",
	}

	w := doJSON(t, router, http.MethodPost, "/posts/v1/", "", proto)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous create returned %d, want 401", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/posts/v1/", session.Token, proto)
	if w.Code != http.StatusCreated {
		t.Fatalf("create returned %d: %s", w.Code, w.Body.String())
	}
	created := decode[api.Post](t, w)
	if created.AuthorName != "Alice" {
		t.Errorf("created author_name = %q, want Alice", created.AuthorName)
	}
	if !strings.Contains(created.ContentHTML, "<strong>EduShare</strong>") {
		t.Errorf("content_html not rendered: %q", created.ContentHTML)
	}

	w = doJSON(t, router, http.MethodGet, "/posts/v1/my-first-post", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get returned %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/posts/v1/", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list returned %d", w.Code)
	}
	list := decode[api.PostList](t, w)
	if list.Total != 1 || len(list.Posts) != 1 {
		t.Fatalf("list total = %d, want 1", list.Total)
	}
	if list.Posts[0].Content != "" {
		t.Error("listing should not include post bodies")
	}

	proto.Title = "Renamed"
	w = doJSON(t, router, http.MethodPut, "/posts/v1/my-first-post", session.Token, proto)
	if w.Code != http.StatusOK {
		t.Fatalf("update returned %d: %s", w.Code, w.Body.String())
	}

	other := signup(t, router, "mallory@example.com", "Mallory")
	w = doJSON(t, router, http.MethodDelete, "/posts/v1/my-first-post", other.Token, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("non-owner delete returned %d, want 400", w.Code)
	}

	w = doJSON(t, router, http.MethodDelete, "/posts/v1/my-first-post", session.Token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete returned %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/posts/v1/my-first-post", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete returned %d, want 404", w.Code)
	}
}

func TestDuplicateSlugConflicts(t *testing.T) {
	router := newTestServer(t)
	session := signup(t, router, "alice@example.com", "Alice")

	proto := api.PostProto{Slug: "taken", Title: "T", Status: "active"}
	if w := doJSON(t, router, http.MethodPost, "/posts/v1/", session.Token, proto); w.Code != http.StatusCreated {
		t.Fatalf("create returned %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodPost, "/posts/v1/", session.Token, proto); w.Code != http.StatusConflict {
		t.Errorf("duplicate create returned %d, want 409", w.Code)
	}
}

func TestLikesOverHTTP(t *testing.T) {
	router := newTestServer(t)
	session := signup(t, router, "alice@example.com", "Alice")

	if w := doJSON(t, router, http.MethodPost, "/posts/v1/", session.Token, api.PostProto{
		Slug: "liked", Title: "Liked", Status: "active",
	}); w.Code != http.StatusCreated {
		t.Fatalf("create returned %d", w.Code)
	}

	for range 2 {
		if w := doJSON(t, router, http.MethodPut, "/posts/v1/liked/like", session.Token, nil); w.Code != http.StatusOK {
			t.Fatalf("like returned %d", w.Code)
		}
	}

	w := doJSON(t, router, http.MethodGet, "/posts/v1/liked/likes", "", nil)
	likes := decode[api.LikeList](t, w)
	if likes.Total != 1 {
		t.Errorf("likes total = %d, want 1 after double like", likes.Total)
	}

	if w := doJSON(t, router, http.MethodDelete, "/posts/v1/liked/like", session.Token, nil); w.Code != http.StatusOK {
		t.Fatalf("unlike returned %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/posts/v1/liked/likes", "", nil)
	likes = decode[api.LikeList](t, w)
	if likes.Total != 0 {
		t.Errorf("likes total = %d after unlike, want 0", likes.Total)
	}
}

func TestCommentsOverHTTP(t *testing.T) {
	router := newTestServer(t)
	session := signup(t, router, "alice@example.com", "Alice")

	for i := 1; i <= 3; i++ {
		w := doJSON(t, router, http.MethodPost, "/posts/v1/discussed/comments", session.Token, api.CommentProto{
			Content: fmt.Sprintf("comment %d", i),
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("comment returned %d: %s", w.Code, w.Body.String())
		}
	}

	w := doJSON(t, router, http.MethodGet, "/posts/v1/discussed/comments", "", nil)
	comments := decode[api.CommentList](t, w)
	if comments.Total != 3 {
		t.Fatalf("comments total = %d, want 3", comments.Total)
	}
	for i, comment := range comments.Comments {
		if comment.AuthorName != "Alice" {
			t.Errorf("comments[%d] author_name = %q, want Alice", i, comment.AuthorName)
		}
	}
	if comments.Comments[0].Content != "comment 1" {
		t.Errorf("first comment = %q, want oldest first", comments.Comments[0].Content)
	}
}

func TestFileUploadDownload(t *testing.T) {
	router := newTestServer(t)
	session := signup(t, router, "alice@example.com", "Alice")

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", "notes.txt")
	if err != nil {
		t.Fatalf("failed to build multipart body: %v", err)
	}
	if _, err := part.Write([]byte("lecture notes")); err != nil {
		t.Fatalf("failed to write part: %v", err)
	}
	form.Close()

	req := httptest.NewRequest(http.MethodPost, "/files/v1/", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+session.Token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("upload returned %d: %s", w.Code, w.Body.String())
	}
	uploaded := decode[api.FileInfo](t, w)
	if uploaded.ID == "" {
		t.Fatal("upload returned no file id")
	}

	w = doJSON(t, router, http.MethodGet, "/files/v1/"+uploaded.ID, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("download returned %d", w.Code)
	}
	if w.Body.String() != "lecture notes" {
		t.Errorf("download body = %q", w.Body.String())
	}

	w = doJSON(t, router, http.MethodDelete, "/files/v1/"+uploaded.ID, session.Token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete returned %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/files/v1/"+uploaded.ID+"/info", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("info after delete returned %d, want 404", w.Code)
	}
}
