package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"

	_ "github.com/daniilsolovey/newsdesk/docs"
)

const (
	homePath        = "/"
	newsPath        = "/news"
	newsByIDPath    = "/news/:id"
	searchPath      = "/search"
	loginPath       = "/login"
	logoutPath      = "/logout"
	adminPath       = "/admin"
	addNewsPath     = "/admin/add-news"
	deleteNewsPath  = "/admin/delete-news/:id"
	updateNewsPath  = "/admin/update-news"
	healthPath      = "/health"
	metricsPath     = "/metrics"
	swaggerDocPath  = "/swagger/doc.json"
	contentTypeJSON = "application/json"
)

// RegisterRoutes builds the echo engine with every route of the site.
func (h *NewsHandler) RegisterRoutes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = h.renderer

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	e.Use(h.metricsMiddleware)
	e.Use(h.loggingMiddleware)

	h.registerPublicRoutes(e)
	h.registerAdminRoutes(e)
	h.registerServiceRoutes(e)

	if h.uploads != nil {
		e.Static(h.uploads.URLPrefix(), h.uploads.Dir())
	}

	return e
}

func (h *NewsHandler) registerPublicRoutes(e *echo.Echo) {
	e.GET(homePath, h.page(h.Home))
	e.GET(newsPath, h.page(h.NewsList))
	e.GET(newsByIDPath, h.page(h.NewsByID))
	e.GET(searchPath, h.page(h.Search))
	e.GET(loginPath, h.page(h.LoginForm))
	e.POST(loginPath, h.page(h.Login))
	e.GET(logoutPath, h.page(h.Logout))
}

func (h *NewsHandler) registerAdminRoutes(e *echo.Echo) {
	e.GET(adminPath, h.page(h.Admin), h.requireAdmin)
	e.POST(addNewsPath, h.page(h.AddNews), h.requireAdmin)
	e.POST(deleteNewsPath, h.page(h.DeleteNews), h.requireAdmin)
	e.POST(updateNewsPath, h.page(h.UpdateNews), h.requireAdmin)
}

func (h *NewsHandler) registerServiceRoutes(e *echo.Echo) {
	e.GET(healthPath, h.Health)
	e.GET(metricsPath, echo.WrapHandler(promhttp.Handler()))
	e.GET(swaggerDocPath, h.SwaggerDoc)
}

// Health handles GET /health
// @Summary Health check
// @Description Reports whether the store answers a ping
// @Tags service
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *NewsHandler) Health(c echo.Context) error {
	if err := h.uc.Ping(c.Request().Context()); err != nil {
		h.log.Error("health check failed", "error", err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *NewsHandler) SwaggerDoc(c echo.Context) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		h.log.Error("failed to read swagger doc", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	return c.Blob(http.StatusOK, contentTypeJSON, []byte(doc))
}
