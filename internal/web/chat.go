package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ratnabot/internal/gemini"
)

const replyAccessDenied = "Access denied. Please log in or use as guest."

// testCandidates is the fixed probe list for the /test-gemini diagnostic.
var testCandidates = []string{"gemini-pro", "gemini-1.5-pro", "gemini-1.5-flash"}

func (s *Server) Index(c *gin.Context) {
	sess := s.session(c)
	if !sess.Identity.Known() {
		s.flashAndRedirect(c, sess, "warning", "Please log in first or use as guest.", "/login")
		return
	}

	username := sess.Identity.Username
	if username == "" {
		username = "Guest"
	}
	flashes := sess.PopFlashes()
	s.saveSession(c, sess)
	c.HTML(http.StatusOK, "index.html", gin.H{"Username": username, "Flashes": flashes})
}

// GetReply is the core chat endpoint. Chat-path failures come back as fixed
// reply strings in a 200 JSON body, never as 5xx.
func (s *Server) GetReply(c *gin.Context) {
	sess := s.session(c)
	if !sess.Identity.Known() {
		c.JSON(http.StatusOK, gin.H{"reply": replyAccessDenied})
		return
	}

	message := strings.TrimSpace(c.Query("msg"))
	if message == "" {
		c.JSON(http.StatusOK, gin.H{"reply": "Please enter a message."})
		return
	}

	reply := s.bot.Respond(c.Request.Context(), sess, message)
	s.saveSession(c, sess)
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// EnvCheck reports whether the remote credential is configured and how long
// it is, never its value.
func (s *Server) EnvCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"gemini_configured": s.gemini.Configured(),
		"key_length":        s.apiKeyLen,
		"hint":              "Restart the service after changing environment variables.",
	})
}

// TestGemini lists remote models and probes a small fixed candidate list with
// a trivial generation.
func (s *Server) TestGemini(c *gin.Context) {
	ctx := c.Request.Context()
	if !s.gemini.Configured() {
		c.JSON(http.StatusOK, gin.H{"status": "error", "error": "API key not configured"})
		return
	}

	models, err := s.gemini.ListModels(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("test-gemini: list models failed")
		c.JSON(http.StatusOK, gin.H{"status": "error", "error": err.Error()})
		return
	}

	type modelInfo struct {
		Name             string   `json:"name"`
		DisplayName      string   `json:"display_name"`
		SupportedMethods []string `json:"supported_methods"`
	}
	infos := make([]modelInfo, 0, 10)
	for _, m := range models {
		if len(infos) == 10 {
			break
		}
		infos = append(infos, modelInfo{
			Name:             m.Name,
			DisplayName:      m.DisplayName,
			SupportedMethods: m.SupportedGenerationMethods,
		})
	}

	var workingModel string
	var probeErrors []string
	for _, candidate := range testCandidates {
		_, err := s.gemini.GenerateContent(ctx, candidate, []gemini.Content{
			{Role: "user", Parts: []gemini.Part{{Text: "Hello"}}},
		}, nil)
		if err != nil {
			probeErrors = append(probeErrors, candidate+": "+err.Error())
			continue
		}
		workingModel = candidate
		break
	}

	status := "success"
	if workingModel == "" {
		status = "error"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":             status,
		"api_key_configured": true,
		"total_models":       len(models),
		"models":             infos,
		"working_model":      workingModel,
		"errors":             probeErrors,
	})
}
