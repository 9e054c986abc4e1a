package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-pg/urlstruct"
	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/newsdesk/internal/auth"
	"github.com/daniilsolovey/newsdesk/internal/metrics"
	"github.com/daniilsolovey/newsdesk/internal/newsportal"
	"github.com/daniilsolovey/newsdesk/internal/session"
	"github.com/daniilsolovey/newsdesk/internal/upload"
)

const (
	viewIndex   = "index"
	viewNews    = "news"
	viewArticle = "news-article"
	viewSearch  = "search-results"
	viewLogin   = "login"
	viewAdmin   = "admin"

	deleteErrorText = "Error deleting news article"
)

type Options struct {
	AdminUsername string
	CookieName    string
	SecureCookie  bool
}

type NewsHandler struct {
	uc       *newsportal.Manager
	sessions *session.Store
	verifier auth.Verifier
	uploads  *upload.Handler
	renderer echo.Renderer
	log      *slog.Logger
	opts     Options
}

func NewNewsHandler(
	uc *newsportal.Manager,
	sessions *session.Store,
	verifier auth.Verifier,
	uploads *upload.Handler,
	renderer echo.Renderer,
	log *slog.Logger,
	opts Options,
) *NewsHandler {
	if opts.AdminUsername == "" {
		opts.AdminUsername = auth.DefaultUsername
	}
	if opts.CookieName == "" {
		opts.CookieName = "session_id"
	}

	return &NewsHandler{
		uc:       uc,
		sessions: sessions,
		verifier: verifier,
		uploads:  uploads,
		renderer: renderer,
		log:      log,
		opts:     opts,
	}
}

// Home handles GET /
// @Summary Landing page
// @Description Renders the four newest articles. A store failure renders an empty list.
// @Tags pages
// @Produce html
// @Success 200 {string} string
// @Router / [get]
func (h *NewsHandler) Home(c echo.Context, sess session.Snapshot) (reply, error) {
	list, err := h.uc.Latest(c.Request().Context(), newsportal.LatestCount)
	if err != nil {
		h.log.Error("failed to load latest news", "error", err)
	}

	return render(viewIndex, IndexPage{NewsList: NewNewsList(list), User: sess.AuthenticatedAs}), nil
}

// NewsList handles GET /news
// @Summary All articles
// @Tags pages
// @Produce html
// @Success 200 {string} string
// @Success 302 {string} string "store failure, redirect to /news"
// @Router /news [get]
func (h *NewsHandler) NewsList(c echo.Context, sess session.Snapshot) (reply, error) {
	list, err := h.uc.All(c.Request().Context())
	if err != nil {
		h.log.Error("failed to load news", "error", err)
		return redirectTo(newsPath), nil
	}

	return render(viewNews, NewsPage{NewsList: NewNewsList(list), User: sess.AuthenticatedAs}), nil
}

// NewsByID handles GET /news/{id}
// @Summary Single article
// @Tags pages
// @Produce html
// @Param id path int true "Article ID"
// @Success 200 {string} string
// @Failure 404 {string} string "article not found"
// @Router /news/{id} [get]
func (h *NewsHandler) NewsByID(c echo.Context, sess session.Snapshot) (reply, error) {
	notFound := render(viewArticle, ArticlePage{User: sess.AuthenticatedAs}).withStatus(http.StatusNotFound)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return notFound, nil
	}

	article, err := h.uc.ByID(c.Request().Context(), id)
	if err != nil {
		h.log.Error("failed to load article", "error", err, "id", id)
		return redirectTo(newsPath), nil
	} else if article == nil {
		return notFound, nil
	}

	view := NewNews(*article)
	return render(viewArticle, ArticlePage{News: &view, User: sess.AuthenticatedAs}), nil
}

// Search handles GET /search
// @Summary Search articles
// @Description Substring match over title and content. An empty query matches every article.
// @Tags pages
// @Produce html
// @Param query query string false "Search term"
// @Success 200 {string} string
// @Router /search [get]
func (h *NewsHandler) Search(c echo.Context, sess session.Snapshot) (reply, error) {
	ctx := c.Request().Context()

	var filter newsportal.SearchFilter
	if err := urlstruct.Unmarshal(ctx, c.QueryParams(), &filter); err != nil {
		h.log.Error("failed to decode search query", "error", err)
		return redirectTo(newsPath), nil
	}

	list, err := h.uc.Search(ctx, filter)
	if err != nil {
		h.log.Error("failed to search news", "error", err, "query", filter.Query)
		return redirectTo(newsPath), nil
	}

	return render(viewSearch, SearchPage{
		SearchQuery:   filter.Query,
		SearchResults: NewNewsList(list),
		User:          sess.AuthenticatedAs,
	}), nil
}

// LoginForm handles GET /login
// @Summary Login form
// @Tags auth
// @Produce html
// @Success 200 {string} string
// @Router /login [get]
func (h *NewsHandler) LoginForm(_ echo.Context, sess session.Snapshot) (reply, error) {
	return render(viewLogin, LoginPage{User: sess.AuthenticatedAs}), nil
}

// Login handles POST /login
// @Summary Administrator login
// @Description Starts an administrator session on success and redirects to /admin. Any other credentials redirect to /news.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 302 {string} string
// @Router /login [post]
func (h *NewsHandler) Login(c echo.Context, _ session.Snapshot) (reply, error) {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		h.log.Warn("failed to bind login form", "error", err)
		metrics.ObserveLogin(false)
		return redirectTo(newsPath), nil
	}

	ok := req.Username == h.opts.AdminUsername &&
		h.verifier.Verify(c.Request().Context(), req.Username, req.Password)
	metrics.ObserveLogin(ok)

	if !ok {
		h.log.Warn("login rejected", "username", req.Username, "remote_addr", c.RealIP())
		return redirectTo(newsPath), nil
	}

	h.log.Info("administrator logged in", "username", req.Username)
	return redirectTo(adminPath).withSession(session.Login(req.Username)), nil
}

// Logout handles GET /logout
// @Summary End the session
// @Tags auth
// @Success 302 {string} string
// @Router /logout [get]
func (h *NewsHandler) Logout(_ echo.Context, _ session.Snapshot) (reply, error) {
	return redirectTo(homePath).withSession(session.Logout()), nil
}

// Admin handles GET /admin
// @Summary Admin dashboard
// @Tags admin
// @Produce html
// @Success 200 {string} string
// @Success 302 {string} string "not logged in, redirect to /login"
// @Router /admin [get]
func (h *NewsHandler) Admin(c echo.Context, sess session.Snapshot) (reply, error) {
	list, err := h.uc.All(c.Request().Context())
	if err != nil {
		h.log.Error("failed to load admin news list", "error", err)
		return redirectTo(adminPath), nil
	}

	return render(viewAdmin, AdminPage{NewsList: NewNewsList(list), User: sess.AuthenticatedAs}), nil
}

// AddNews handles POST /admin/add-news
// @Summary Create an article
// @Tags admin
// @Accept multipart/form-data
// @Param newsTitle formData string true "Title"
// @Param newsContent formData string true "Content"
// @Param newsImage formData file false "Image"
// @Success 302 {string} string
// @Router /admin/add-news [post]
func (h *NewsHandler) AddNews(c echo.Context, _ session.Snapshot) (reply, error) {
	var req AddNewsRequest
	if err := c.Bind(&req); err != nil {
		h.log.Error("failed to bind add-news form", "error", err)
		return redirectTo(adminPath), nil
	}

	imageURL, err := h.saveImage(c)
	if err != nil {
		h.log.Error("failed to store uploaded image", "error", err)
		metrics.ObserveArticleMutation("insert", err)
		return redirectTo(adminPath), nil
	}

	article, err := h.uc.Add(c.Request().Context(), req.Title, req.Content, imageURL)
	metrics.ObserveArticleMutation("insert", err)
	if err != nil {
		h.log.Error("failed to add news", "error", err, "title", req.Title)
		h.discardImage(imageURL)
		return redirectTo(adminPath), nil
	}

	h.log.Info("news added", "id", article.ID, "image", imageURL)
	return redirectTo(adminPath), nil
}

// saveImage stores the optional image and returns its reference, or "" when
// the form carries no file.
func (h *NewsHandler) saveImage(c echo.Context) (string, error) {
	fh, err := c.FormFile(upload.FieldName)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	} else if err != nil {
		return "", err
	}

	if h.uploads == nil {
		return "", errors.New("uploads are not configured")
	}

	return h.uploads.Save(fh)
}

// discardImage removes an image stored for an article that was not created.
func (h *NewsHandler) discardImage(ref string) {
	if ref == "" || h.uploads == nil {
		return
	}

	if err := h.uploads.Remove(ref); err != nil {
		h.log.Error("failed to remove orphaned image", "error", err, "image", ref)
	}
}

// DeleteNews handles POST /admin/delete-news/{id}
// @Summary Delete an article
// @Tags admin
// @Produce plain
// @Param id path int true "Article ID"
// @Success 302 {string} string
// @Failure 500 {string} string
// @Router /admin/delete-news/{id} [post]
func (h *NewsHandler) DeleteNews(c echo.Context, _ session.Snapshot) (reply, error) {
	failed := reply{status: http.StatusInternalServerError, text: deleteErrorText}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.log.Error("invalid news id", "error", err, "id", c.Param("id"))
		return failed, nil
	}

	err = h.uc.Delete(c.Request().Context(), id)
	metrics.ObserveArticleMutation("delete", err)
	if err != nil {
		h.log.Error("failed to delete news", "error", err, "id", id)
		return failed, nil
	}

	h.log.Info("news deleted", "id", id)
	return redirectTo(adminPath), nil
}

// UpdateNews handles POST /admin/update-news
// @Summary Edit an article
// @Description Replaces title and content. The image is left unchanged.
// @Tags admin
// @Accept x-www-form-urlencoded
// @Param newsId formData int true "Article ID"
// @Param updatedTitle formData string true "Title"
// @Param updatedContent formData string true "Content"
// @Success 302 {string} string
// @Router /admin/update-news [post]
func (h *NewsHandler) UpdateNews(c echo.Context, _ session.Snapshot) (reply, error) {
	var req UpdateNewsRequest
	if err := c.Bind(&req); err != nil {
		h.log.Error("failed to bind update-news form", "error", err)
		return redirectTo(adminPath), nil
	}

	err := h.uc.Update(c.Request().Context(), req.ID, req.Title, req.Content)
	metrics.ObserveArticleMutation("update", err)
	if err != nil {
		h.log.Error("failed to update news", "error", err, "id", req.ID)
		return redirectTo(adminPath), nil
	}

	h.log.Info("news updated", "id", req.ID)
	return redirectTo(adminPath), nil
}
