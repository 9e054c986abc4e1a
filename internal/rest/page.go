package rest

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/newsdesk/internal/metrics"
	"github.com/daniilsolovey/newsdesk/internal/session"
)

const snapshotKey = "session"

// reply is what a page handler wants written. Exactly one of view, redirect
// or text is set. session, when non-nil, is applied before writing.
type reply struct {
	status   int
	view     string
	data     any
	redirect string
	text     string
	session  *session.Mutation
}

func render(view string, data any) reply {
	return reply{status: http.StatusOK, view: view, data: data}
}

func redirectTo(path string) reply {
	return reply{status: http.StatusFound, redirect: path}
}

func (r reply) withStatus(status int) reply {
	r.status = status
	return r
}

func (r reply) withSession(m *session.Mutation) reply {
	r.session = m
	return r
}

// pageFunc receives the session as it was when the request arrived and never
// writes to the response itself.
type pageFunc func(c echo.Context, sess session.Snapshot) (reply, error)

func (h *NewsHandler) page(fn pageFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		current := h.snapshot(c)

		r, err := fn(c, current)
		if err != nil {
			return err
		}

		if r.session != nil {
			h.applySession(c, current, r.session)
		} else if current.Exists() {
			// Get already extended the session, so the cookie follows it.
			h.setSessionCookie(c, current.ID, h.sessions.TTL())
		}

		switch {
		case r.redirect != "":
			return c.Redirect(r.status, r.redirect)
		case r.view != "":
			return c.Render(r.status, r.view, r.data)
		default:
			return c.String(r.status, r.text)
		}
	}
}

// snapshot loads the session for the request once and caches it on the context.
func (h *NewsHandler) snapshot(c echo.Context) session.Snapshot {
	if s, ok := c.Get(snapshotKey).(session.Snapshot); ok {
		return s
	}

	var s session.Snapshot
	if cookie, err := c.Cookie(h.opts.CookieName); err == nil {
		s = h.sessions.Get(cookie.Value)
	}

	c.Set(snapshotKey, s)
	return s
}

func (h *NewsHandler) applySession(c echo.Context, current session.Snapshot, m *session.Mutation) {
	next, err := h.sessions.Apply(current, m)
	if err != nil {
		h.log.Error("failed to change session", "error", err, "logout", m.IsLogout())
	}
	metrics.ActiveSessions.Set(float64(h.sessions.Len()))

	if next.Exists() {
		h.setSessionCookie(c, next.ID, h.sessions.TTL())
	} else if current.Exists() || m.IsLogout() {
		h.setSessionCookie(c, "", -1)
	}

	c.Set(snapshotKey, next)
}

func (h *NewsHandler) setSessionCookie(c echo.Context, value string, ttl time.Duration) {
	req := c.Request()
	isHTTPS := h.opts.SecureCookie || req.TLS != nil || req.Header.Get(echo.HeaderXForwardedProto) == "https"

	maxAge := int(ttl.Seconds())
	if ttl < 0 {
		maxAge = -1
	}

	c.SetCookie(&http.Cookie{
		Name:     h.opts.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   isHTTPS,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}
