package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ratnabot/internal/session"
)

const sessionKey = "ratnabot.session"

// withSession resolves the browser cookie to its server-side session and
// stashes it in the request context. Handlers that mutate the session call
// saveSession explicitly.
func (s *Server) withSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(s.cookieName)
		sess, err := s.sessions.Load(c.Request.Context(), token)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to load session")
			sess = s.sessions.New()
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

func (s *Server) session(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return s.sessions.New()
	}
	return v.(*session.Session)
}

func (s *Server) saveSession(c *gin.Context, sess *session.Session) {
	token, err := s.sessions.Save(c.Request.Context(), sess)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to save session")
		return
	}
	c.SetCookie(s.cookieName, token, int(s.sessions.TTL().Seconds()), "/", "", false, true)
}

// flashAndRedirect records a flash message and sends the browser elsewhere.
func (s *Server) flashAndRedirect(c *gin.Context, sess *session.Session, category, message, location string) {
	sess.AddFlash(category, message)
	s.saveSession(c, sess)
	c.Redirect(http.StatusFound, location)
}

func respondError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": "error", "message": message})
}

func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": message})
}
