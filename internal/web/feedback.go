package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ratnabot/internal/storage"
)

func (s *Server) SubmitFeedback(c *gin.Context) {
	var req struct {
		Feedback string `json:"feedback"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	text := strings.TrimSpace(req.Feedback)
	if text == "" {
		respondError(c, http.StatusBadRequest, "Feedback is empty.")
		return
	}

	if err := s.feedback.Append(text); err != nil {
		s.logger.Error().Err(err).Msg("failed to append feedback")
		respondError(c, http.StatusInternalServerError, "Could not save feedback.")
		return
	}
	s.metrics.FeedbackSubmitted.Inc()
	respondSuccess(c, "Feedback received. Thank you!")
}

// DeleteFeedback removes one entry by its current index. Guest identity is
// not enough here.
func (s *Server) DeleteFeedback(c *gin.Context) {
	sess := s.session(c)
	if !sess.Identity.Authenticated() {
		respondError(c, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	var req struct {
		Index *int `json:"index"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Index == nil {
		respondError(c, http.StatusBadRequest, "Invalid index.")
		return
	}

	if err := s.feedback.DeleteAt(*req.Index); err != nil {
		if errors.Is(err, storage.ErrIndexOutOfRange) {
			respondError(c, http.StatusBadRequest, "Index out of range.")
			return
		}
		s.logger.Error().Err(err).Msg("failed to delete feedback")
		respondError(c, http.StatusInternalServerError, "Could not delete feedback.")
		return
	}
	respondSuccess(c, "Feedback deleted.")
}

func (s *Server) DeleteAllFeedbacks(c *gin.Context) {
	sess := s.session(c)
	if !sess.Identity.Authenticated() {
		respondError(c, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	if err := s.feedback.Clear(); err != nil {
		s.logger.Error().Err(err).Msg("failed to clear feedbacks")
		respondError(c, http.StatusInternalServerError, "Could not delete feedbacks.")
		return
	}
	respondSuccess(c, "All feedbacks deleted.")
}

func (s *Server) ViewFeedbacks(c *gin.Context) {
	sess := s.session(c)
	if !sess.Identity.Authenticated() {
		s.flashAndRedirect(c, sess, "warning", "Only logged-in users can view feedbacks.", "/login")
		return
	}

	entries, err := s.feedback.All()
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load feedbacks")
		entries = nil
	}

	type item struct {
		Index int
		Text  string
	}
	items := make([]item, 0, len(entries))
	for i, e := range entries {
		items = append(items, item{Index: i, Text: e})
	}
	c.HTML(http.StatusOK, "feedbacks.html", gin.H{"Items": items})
}
