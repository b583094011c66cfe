package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ratnabot/internal/session"
	"ratnabot/internal/storage"
)

func (s *Server) SignupPage(c *gin.Context) {
	sess := s.session(c)
	flashes := sess.PopFlashes()
	s.saveSession(c, sess)
	c.HTML(http.StatusOK, "signup.html", gin.H{"Flashes": flashes})
}

func (s *Server) Signup(c *gin.Context) {
	sess := s.session(c)
	username := c.PostForm("username")
	password := strings.TrimSpace(c.PostForm("password"))

	if !ValidUsername(username) {
		s.flashAndRedirect(c, sess, "danger", "invalid username", "/signup")
		return
	}
	if !ValidPassword(password) {
		s.flashAndRedirect(c, sess, "danger", "choose strong password", "/signup")
		return
	}

	hash, err := storage.HashPassword(password)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		s.flashAndRedirect(c, sess, "danger", "Signup failed. Please try again.", "/signup")
		return
	}

	if err := s.users.Create(username, hash); err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			s.flashAndRedirect(c, sess, "danger", "Username already exists.", "/signup")
			return
		}
		s.logger.Error().Err(err).Msg("failed to create user")
		s.flashAndRedirect(c, sess, "danger", "Signup failed. Please try again.", "/signup")
		return
	}

	s.logger.Info().Str("username", username).Msg("user signed up")
	s.flashAndRedirect(c, sess, "success", "Signup successful. Please log in.", "/login")
}

func (s *Server) LoginPage(c *gin.Context) {
	sess := s.session(c)
	flashes := sess.PopFlashes()
	s.saveSession(c, sess)
	c.HTML(http.StatusOK, "login.html", gin.H{"Flashes": flashes})
}

func (s *Server) Login(c *gin.Context) {
	sess := s.session(c)
	username := c.PostForm("username")
	password := strings.TrimSpace(c.PostForm("password"))

	// Same format rules as signup, checked before any store read.
	if !ValidUsername(username) {
		s.flashAndRedirect(c, sess, "danger", "invalid username", "/login")
		return
	}
	if !ValidPassword(password) {
		s.flashAndRedirect(c, sess, "danger", "choose strong password", "/login")
		return
	}

	hash, err := s.users.Hash(username)
	if err != nil || !storage.VerifyPassword(hash, password) {
		s.flashAndRedirect(c, sess, "danger", "Invalid username or password.", "/login")
		return
	}

	// Identity change clears the transcript.
	sess.SetIdentity(session.Authenticated(username))
	s.logger.Info().Str("username", username).Msg("user logged in")
	s.flashAndRedirect(c, sess, "success", "Login successful!", "/")
}

func (s *Server) Logout(c *gin.Context) {
	sess := s.session(c)
	if err := s.sessions.Destroy(c.Request.Context(), sess); err != nil {
		s.logger.Error().Err(err).Msg("failed to destroy session")
	}
	fresh := s.sessions.New()
	s.flashAndRedirect(c, fresh, "info", "You have been logged out.", "/login")
}

func (s *Server) UseGuest(c *gin.Context) {
	sess := s.session(c)
	sess.SetIdentity(session.Guest())
	s.flashAndRedirect(c, sess, "info", "You are now using chatbot as guest.", "/")
}
