// Package web is the HTTP route layer: thin glue between gin and the session
// store, the flat-file stores, and the conversation orchestrator.
package web

import (
	"context"
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"ratnabot/internal/gemini"
	"ratnabot/internal/metrics"
	"ratnabot/internal/session"
	"ratnabot/internal/storage"
)

//go:embed templates/*.html
var templateFS embed.FS

// Responder is the conversation orchestrator as the route layer sees it.
type Responder interface {
	Respond(ctx context.Context, sess *session.Session, message string) string
}

type Server struct {
	sessions   *session.Store
	users      *storage.UserStore
	feedback   *storage.FeedbackStore
	bot        Responder
	gemini     *gemini.Client
	apiKeyLen  int
	cookieName string
	logger     zerolog.Logger
	metrics    *metrics.Metrics
}

type Config struct {
	Sessions   *session.Store
	Users      *storage.UserStore
	Feedback   *storage.FeedbackStore
	Bot        Responder
	Gemini     *gemini.Client
	APIKeyLen  int
	CookieName string
	Logger     zerolog.Logger
	Metrics    *metrics.Metrics
}

func NewServer(cfg Config) *Server {
	m := cfg.Metrics
	if m == nil {
		m = metrics.Global()
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "ratnabot_session"
	}
	return &Server{
		sessions:   cfg.Sessions,
		users:      cfg.Users,
		feedback:   cfg.Feedback,
		bot:        cfg.Bot,
		gemini:     cfg.Gemini,
		apiKeyLen:  cfg.APIKeyLen,
		cookieName: cfg.CookieName,
		logger:     cfg.Logger,
		metrics:    m,
	}
}

// Router wires all routes onto the engine.
func (s *Server) Router(r *gin.Engine) {
	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	r.Use(gin.Recovery())
	r.Use(s.withSession())

	// Auth
	r.GET("/signup", s.SignupPage)
	r.POST("/signup", s.Signup)
	r.GET("/login", s.LoginPage)
	r.POST("/login", s.Login)
	r.GET("/logout", s.Logout)
	r.GET("/use-guest", s.UseGuest)

	// Chat
	r.GET("/", s.Index)
	r.GET("/get", s.GetReply)

	// Diagnostics
	r.GET("/env-check", s.EnvCheck)
	r.GET("/test-gemini", s.TestGemini)
	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Feedback
	r.POST("/submit-feedback", s.SubmitFeedback)
	r.POST("/delete-feedback", s.DeleteFeedback)
	r.POST("/delete-all-feedbacks", s.DeleteAllFeedbacks)
	r.GET("/view-feedbacks", s.ViewFeedbacks)
}
