package server

import (
	"net/http"
	"time"

	"esports-registration/internal/web"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleHome(c *gin.Context) {
	sess := s.sessions.Ensure(c)
	s.renderPage(c, http.StatusOK, sess, "")
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC()})
}

// renderPage writes the full page for sess with the given status and an
// optional error banner.
func (s *Server) renderPage(c *gin.Context, status int, sess *formSession, errMsg string) {
	view := buildFormView(sess.controller.Snapshot(), errMsg)
	templ.Handler(web.Page(view), templ.WithStatus(status)).ServeHTTP(c.Writer, c.Request)
}
