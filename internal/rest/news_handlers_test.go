package rest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/newsdesk/internal/auth"
	"github.com/daniilsolovey/newsdesk/internal/db"
	"github.com/daniilsolovey/newsdesk/internal/db/sqlite"
	"github.com/daniilsolovey/newsdesk/internal/newsportal"
	"github.com/daniilsolovey/newsdesk/internal/session"
	"github.com/daniilsolovey/newsdesk/internal/upload"
)

const testCookie = "session_id"

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

// recordingRenderer keeps the last rendered view instead of producing HTML.
type recordingRenderer struct {
	name string
	data any
}

func (r *recordingRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	r.name = name
	r.data = data
	_, err := io.WriteString(w, name)
	return err
}

var errStore = errors.New("connection refused")

// failingRepository fails every call.
type failingRepository struct{}

func (failingRepository) Ping(context.Context) error { return errStore }
func (failingRepository) Close() error               { return nil }
func (failingRepository) LatestNews(context.Context, int) ([]db.News, error) {
	return nil, errStore
}
func (failingRepository) News(context.Context) ([]db.News, error) { return nil, errStore }
func (failingRepository) NewsByID(context.Context, int) (*db.News, error) {
	return nil, errStore
}
func (failingRepository) SearchNews(context.Context, string) ([]db.News, error) {
	return nil, errStore
}
func (failingRepository) AddNews(context.Context, *db.News) error { return errStore }
func (failingRepository) UpdateNews(context.Context, int, string, string) error {
	return errStore
}
func (failingRepository) DeleteNews(context.Context, int) error { return errStore }

type testSite struct {
	e        *echo.Echo
	store    *sqlite.Store
	sessions *session.Store
	renderer *recordingRenderer
	uploads  *upload.Handler
}

func newTestSite(t *testing.T, repo newsportal.Repository) *testSite {
	t.Helper()

	uploads := upload.New(filepath.Join(t.TempDir(), "uploads"), "/uploads", 5<<20)
	sessions := session.NewStore(time.Hour)
	renderer := &recordingRenderer{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := NewNewsHandler(
		newsportal.NewNewsManager(repo),
		sessions,
		auth.NewVerifier("", ""),
		uploads,
		renderer,
		log,
		Options{AdminUsername: auth.DefaultUsername, CookieName: testCookie},
	)

	site := &testSite{
		e:        h.RegisterRoutes(),
		sessions: sessions,
		renderer: renderer,
		uploads:  uploads,
	}
	if store, ok := repo.(*sqlite.Store); ok {
		site.store = store
	}

	return site
}

func openSeededStore(t *testing.T) *sqlite.Store {
	t.Helper()

	ctx := context.Background()
	store, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "news.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	for _, n := range db.TestNews() {
		require.NoError(t, store.AddNews(ctx, &n))
	}

	return store
}

func newSeededSite(t *testing.T) *testSite {
	t.Helper()
	return newTestSite(t, openSeededStore(t))
}

func (s *testSite) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testSite) get(target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return s.do(httptest.NewRequest(http.MethodGet, target, nil), cookies...)
}

func (s *testSite) postForm(target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return s.do(req, cookies...)
}

func (s *testSite) login(t *testing.T) *http.Cookie {
	t.Helper()

	rec := s.postForm(loginPath, url.Values{"username": {"admin"}, "password": {"admin1234"}})
	require.Equal(t, http.StatusFound, rec.Code)

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	return cookie
}

// adminCookie starts an admin session without going through the login form.
func (s *testSite) adminCookie(t *testing.T) *http.Cookie {
	t.Helper()

	snap, err := s.sessions.Create(auth.DefaultUsername)
	require.NoError(t, err)
	return &http.Cookie{Name: testCookie, Value: snap.ID}
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookie {
			return c
		}
	}
	return nil
}

func newsIDs(list []News) []int {
	return Map(list, func(n News) int { return n.ID })
}

func TestNewsHandler_Home(t *testing.T) {
	site := newSeededSite(t)

	rec := site.get(homePath)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, viewIndex, site.renderer.name)

	page, ok := site.renderer.data.(IndexPage)
	require.True(t, ok)
	assert.Equal(t, []int{6, 5, 4, 3}, newsIDs(page.NewsList))
	assert.Empty(t, page.User)
}

func TestNewsHandler_HomeStoreFailure(t *testing.T) {
	site := newTestSite(t, failingRepository{})

	rec := site.get(homePath)
	require.Equal(t, http.StatusOK, rec.Code)

	page, ok := site.renderer.data.(IndexPage)
	require.True(t, ok)
	assert.Empty(t, page.NewsList)
}

func TestNewsHandler_NewsList(t *testing.T) {
	site := newSeededSite(t)

	rec := site.get(newsPath)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, viewNews, site.renderer.name)

	page, ok := site.renderer.data.(NewsPage)
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, newsIDs(page.NewsList))
}

func TestNewsHandler_NewsByID(t *testing.T) {
	site := newSeededSite(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantTitle  string
	}{
		{name: "existing", target: "/news/2", wantStatus: http.StatusOK, wantTitle: "Quantum Computing Advances"},
		{name: "missing", target: "/news/999", wantStatus: http.StatusNotFound},
		{name: "zero id", target: "/news/0", wantStatus: http.StatusNotFound},
		{name: "not a number", target: "/news/abc", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := site.get(tt.target)
			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, viewArticle, site.renderer.name)

			page, ok := site.renderer.data.(ArticlePage)
			require.True(t, ok)
			if tt.wantTitle == "" {
				assert.Nil(t, page.News)
				return
			}
			require.NotNil(t, page.News)
			assert.Equal(t, tt.wantTitle, page.News.Title)
			assert.Equal(t, "/uploads/newsImage-fixture.png", page.News.ImageURL)
		})
	}
}

func TestNewsHandler_Search(t *testing.T) {
	site := newSeededSite(t)

	tests := []struct {
		name    string
		target  string
		wantIDs []int
	}{
		{name: "empty query matches all", target: "/search?query=", wantIDs: []int{1, 2, 3, 4, 5, 6}},
		{name: "missing query matches all", target: "/search", wantIDs: []int{1, 2, 3, 4, 5, 6}},
		{name: "substring", target: "/search?query=international", wantIDs: []int{5, 6}},
		{name: "no match", target: "/search?query=nonexistent", wantIDs: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := site.get(tt.target)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, viewSearch, site.renderer.name)

			page, ok := site.renderer.data.(SearchPage)
			require.True(t, ok)
			assert.Equal(t, tt.wantIDs, newsIDs(page.SearchResults))
		})
	}
}

func TestNewsHandler_SearchEchoesQuery(t *testing.T) {
	site := newSeededSite(t)

	site.get("/search?query=World")

	page, ok := site.renderer.data.(SearchPage)
	require.True(t, ok)
	assert.Equal(t, "World", page.SearchQuery)
}

func TestNewsHandler_StoreFailureRedirects(t *testing.T) {
	site := newTestSite(t, failingRepository{})

	tests := []struct {
		name         string
		target       string
		cookie       bool
		wantLocation string
	}{
		{name: "news list", target: newsPath, wantLocation: newsPath},
		{name: "article", target: "/news/1", wantLocation: newsPath},
		{name: "search", target: "/search?query=x", wantLocation: newsPath},
		{name: "admin dashboard", target: adminPath, cookie: true, wantLocation: adminPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cookies []*http.Cookie
			if tt.cookie {
				cookies = append(cookies, site.adminCookie(t))
			}

			rec := site.get(tt.target, cookies...)
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tt.wantLocation, rec.Header().Get(echo.HeaderLocation))
		})
	}
}

func TestNewsHandler_Login(t *testing.T) {
	tests := []struct {
		name         string
		username     string
		password     string
		wantLocation string
		wantSession  bool
	}{
		{name: "admin", username: "admin", password: "admin1234", wantLocation: adminPath, wantSession: true},
		{name: "wrong password", username: "admin", password: "admin", wantLocation: newsPath},
		{name: "wrong username", username: "root", password: "admin1234", wantLocation: newsPath},
		{name: "empty", wantLocation: newsPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := newSeededSite(t)

			rec := site.postForm(loginPath, url.Values{"username": {tt.username}, "password": {tt.password}})
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tt.wantLocation, rec.Header().Get(echo.HeaderLocation))

			cookie := sessionCookie(rec)
			if !tt.wantSession {
				assert.Nil(t, cookie)
				assert.Zero(t, site.sessions.Len())
				return
			}

			require.NotNil(t, cookie)
			assert.True(t, cookie.HttpOnly)
			assert.Equal(t, "admin", site.sessions.Get(cookie.Value).AuthenticatedAs)
		})
	}
}

func TestNewsHandler_LoginRotatesSession(t *testing.T) {
	site := newSeededSite(t)

	first := site.login(t)
	rec := site.postForm(loginPath, url.Values{"username": {"admin"}, "password": {"admin1234"}}, first)
	second := sessionCookie(rec)
	require.NotNil(t, second)

	assert.NotEqual(t, first.Value, second.Value)
	assert.False(t, site.sessions.Get(first.Value).Exists())
	assert.Equal(t, 1, site.sessions.Len())
}

func TestNewsHandler_AdminRequiresLogin(t *testing.T) {
	site := newSeededSite(t)

	rec := site.get(adminPath)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, loginPath, rec.Header().Get(echo.HeaderLocation))

	rec = site.get(adminPath, &http.Cookie{Name: testCookie, Value: "forged"})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, loginPath, rec.Header().Get(echo.HeaderLocation))

	cookie := site.login(t)
	rec = site.get(adminPath, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, viewAdmin, site.renderer.name)

	page, ok := site.renderer.data.(AdminPage)
	require.True(t, ok)
	assert.Len(t, page.NewsList, 6)
	assert.Equal(t, "admin", page.User)
}

func TestNewsHandler_AdminMutationsRequireLogin(t *testing.T) {
	site := newSeededSite(t)

	rec := site.postForm(addNewsPath, url.Values{"newsTitle": {"t"}, "newsContent": {"c"}})
	assert.Equal(t, loginPath, rec.Header().Get(echo.HeaderLocation))

	rec = site.postForm("/admin/delete-news/1", nil)
	assert.Equal(t, loginPath, rec.Header().Get(echo.HeaderLocation))

	rec = site.postForm(updateNewsPath, url.Values{"newsId": {"1"}, "updatedTitle": {"x"}, "updatedContent": {"y"}})
	assert.Equal(t, loginPath, rec.Header().Get(echo.HeaderLocation))

	all, err := site.store.News(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 6)
	assert.Equal(t, "AI Breakthrough in Machine Learning", all[0].Title)
}

func TestNewsHandler_AddNewsWithoutImage(t *testing.T) {
	site := newSeededSite(t)
	cookie := site.adminCookie(t)

	rec := site.postForm(addNewsPath, url.Values{"newsTitle": {"Fresh"}, "newsContent": {"Body"}}, cookie)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, adminPath, rec.Header().Get(echo.HeaderLocation))

	n, err := site.store.NewsByID(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, "Fresh", n.Title)
	assert.Equal(t, "Body", n.Content)
	require.NotNil(t, n.ImageURL)
	assert.Equal(t, "", *n.ImageURL)
}

func multipartNews(t *testing.T, title, content, filename string, image []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("newsTitle", title))
	require.NoError(t, w.WriteField("newsContent", content))
	if filename != "" {
		part, err := w.CreateFormFile(upload.FieldName, filename)
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, addNewsPath, &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestNewsHandler_AddNewsWithImage(t *testing.T) {
	site := newSeededSite(t)
	cookie := site.adminCookie(t)

	rec := site.do(multipartNews(t, "Pictured", "With image", "photo.png", pngHeader), cookie)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, adminPath, rec.Header().Get(echo.HeaderLocation))

	n, err := site.store.NewsByID(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, n)
	require.NotNil(t, n.ImageURL)

	ref := *n.ImageURL
	assert.True(t, strings.HasPrefix(ref, "/uploads/"+upload.FilePrefix), ref)
	assert.True(t, strings.HasSuffix(ref, ".png"), ref)

	stored, err := os.ReadFile(filepath.Join(site.uploads.Dir(), filepath.Base(ref)))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)

	served := site.get(ref)
	assert.Equal(t, http.StatusOK, served.Code)
	assert.Equal(t, pngHeader, served.Body.Bytes())
}

func TestNewsHandler_AddNewsMultipartWithoutFile(t *testing.T) {
	site := newSeededSite(t)

	rec := site.do(multipartNews(t, "No file", "Plain", "", nil), site.adminCookie(t))
	assert.Equal(t, http.StatusFound, rec.Code)

	n, err := site.store.NewsByID(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, n)
	require.NotNil(t, n.ImageURL)
	assert.Equal(t, "", *n.ImageURL)
}

func TestNewsHandler_AddNewsRejected(t *testing.T) {
	tests := []struct {
		name string
		req  func(t *testing.T) *http.Request
	}{
		{
			name: "upload is not an image",
			req: func(t *testing.T) *http.Request {
				return multipartNews(t, "Bad", "Upload", "evil.png", []byte("#!/bin/sh\n"))
			},
		},
		{
			name: "empty title",
			req: func(t *testing.T) *http.Request {
				return multipartNews(t, "", "Content", "", nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := newSeededSite(t)

			rec := site.do(tt.req(t), site.adminCookie(t))
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, adminPath, rec.Header().Get(echo.HeaderLocation))

			all, err := site.store.News(context.Background())
			require.NoError(t, err)
			assert.Len(t, all, 6)
		})
	}
}

func TestNewsHandler_UpdateNews(t *testing.T) {
	site := newSeededSite(t)
	cookie := site.adminCookie(t)

	rec := site.postForm(updateNewsPath, url.Values{
		"newsId":         {"2"},
		"updatedTitle":   {"Quantum Update"},
		"updatedContent": {"New content"},
	}, cookie)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, adminPath, rec.Header().Get(echo.HeaderLocation))

	n, err := site.store.NewsByID(context.Background(), 2)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, "Quantum Update", n.Title)
	assert.Equal(t, "New content", n.Content)
	require.NotNil(t, n.ImageURL)
	assert.Equal(t, "/uploads/newsImage-fixture.png", *n.ImageURL)
}

func TestNewsHandler_UpdateNewsFailure(t *testing.T) {
	site := newTestSite(t, failingRepository{})

	rec := site.postForm(updateNewsPath, url.Values{
		"newsId":         {"1"},
		"updatedTitle":   {"t"},
		"updatedContent": {"c"},
	}, site.adminCookie(t))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, adminPath, rec.Header().Get(echo.HeaderLocation))
}

func TestNewsHandler_DeleteNews(t *testing.T) {
	site := newSeededSite(t)

	rec := site.postForm("/admin/delete-news/3", nil, site.adminCookie(t))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, adminPath, rec.Header().Get(echo.HeaderLocation))

	n, err := site.store.NewsByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestNewsHandler_DeleteNewsFailure(t *testing.T) {
	tests := []struct {
		name   string
		repo   func(t *testing.T) newsportal.Repository
		target string
	}{
		{
			name:   "store error",
			repo:   func(*testing.T) newsportal.Repository { return failingRepository{} },
			target: "/admin/delete-news/1",
		},
		{
			name: "invalid id",
			repo: func(t *testing.T) newsportal.Repository {
				return openSeededStore(t)
			},
			target: "/admin/delete-news/abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := newTestSite(t, tt.repo(t))

			rec := site.postForm(tt.target, nil, site.adminCookie(t))
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, deleteErrorText, rec.Body.String())
		})
	}
}

func TestNewsHandler_Logout(t *testing.T) {
	site := newSeededSite(t)
	cookie := site.login(t)

	rec := site.get(logoutPath, cookie)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, homePath, rec.Header().Get(echo.HeaderLocation))

	cleared := sessionCookie(rec)
	require.NotNil(t, cleared)
	assert.Negative(t, cleared.MaxAge)
	assert.Zero(t, site.sessions.Len())

	rec = site.get(adminPath, cookie)
	assert.Equal(t, loginPath, rec.Header().Get(echo.HeaderLocation))
}

func TestNewsHandler_LogoutWithoutSession(t *testing.T) {
	site := newSeededSite(t)

	rec := site.get(logoutPath)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, homePath, rec.Header().Get(echo.HeaderLocation))
}

func TestNewsHandler_PagesShowUser(t *testing.T) {
	site := newSeededSite(t)
	cookie := site.login(t)

	site.get(homePath, cookie)
	page, ok := site.renderer.data.(IndexPage)
	require.True(t, ok)
	assert.Equal(t, "admin", page.User)
}

func TestNewsHandler_Health(t *testing.T) {
	rec := newSeededSite(t).get(healthPath)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = newTestSite(t, failingRepository{}).get(healthPath)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"degraded"}`, rec.Body.String())
}

func TestNewsHandler_SecurityHeaders(t *testing.T) {
	rec := newSeededSite(t).get(homePath)

	assert.Equal(t, "nosniff", rec.Header().Get(echo.HeaderXContentTypeOptions))
	assert.Equal(t, "DENY", rec.Header().Get(echo.HeaderXFrameOptions))
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestNewsHandler_SwaggerDoc(t *testing.T) {
	rec := newSeededSite(t).get(swaggerDocPath)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"/admin/delete-news/{id}"`)
}

func uploadedFiles(t *testing.T, site *testSite) []os.DirEntry {
	t.Helper()

	entries, err := os.ReadDir(site.uploads.Dir())
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return entries
}

func TestNewsHandler_AddNewsRejectedKeepsNoImage(t *testing.T) {
	tests := []struct {
		name  string
		site  func(t *testing.T) *testSite
		title string
	}{
		{
			name:  "invalid article",
			site:  newSeededSite,
			title: "",
		},
		{
			name:  "store error",
			site:  func(t *testing.T) *testSite { return newTestSite(t, failingRepository{}) },
			title: "Valid title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := tt.site(t)

			rec := site.do(multipartNews(t, tt.title, "Content", "photo.png", pngHeader), site.adminCookie(t))
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, adminPath, rec.Header().Get(echo.HeaderLocation))

			assert.Empty(t, uploadedFiles(t, site))
		})
	}
}

func TestNewsHandler_SessionCookieSlides(t *testing.T) {
	site := newSeededSite(t)
	cookie := site.login(t)

	rec := site.get(adminPath, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	refreshed := sessionCookie(rec)
	require.NotNil(t, refreshed)
	assert.Equal(t, cookie.Value, refreshed.Value)
	assert.Equal(t, int(time.Hour.Seconds()), refreshed.MaxAge)
	assert.True(t, refreshed.HttpOnly)

	rec = site.get(homePath)
	assert.Nil(t, sessionCookie(rec))
}
