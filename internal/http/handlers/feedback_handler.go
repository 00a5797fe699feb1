package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-support-backend/internal/services"
)

// FeedbackRequest is the JSON payload for rating a past exchange.
type FeedbackRequest struct {
	// ChatLogID references the exchange being rated.
	ChatLogID int64 `json:"chat_log_id" binding:"required" example:"42"`
	// Rating is "up" or "down".
	Rating string `json:"rating" binding:"required" example:"up"`
	// Comment optionally elaborates on the rating.
	Comment *string `json:"comment,omitempty" example:"Solved it first try"`
}

// FeedbackResponse acknowledges stored feedback.
type FeedbackResponse struct {
	FeedbackID int64 `json:"feedback_id"`
}

// PostFeedback godoc
// @ID          postFeedback
// @Summary     Rate a past exchange
// @Description Stores an up/down rating (with optional comment) against a chat log entry.
// @Tags        Feedback
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.FeedbackRequest  true  "Feedback payload"
//
// @Success     201  {object}  handlers.FeedbackResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Chat log not found"
// @Failure     422  {object}  handlers.ErrorResponse  "Invalid rating value"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /feedback [post]
func (h *Handlers) PostFeedback(c *gin.Context) {
	ctx := c.Request.Context()

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "chat_log_id and rating required")
		return
	}

	rating := strings.TrimSpace(strings.ToLower(req.Rating))
	fb, err := h.fbSvc.Leave(ctx, req.ChatLogID, rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRating):
			fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, `rating must be "up" or "down"`)
		case errors.Is(err, services.ErrChatLogNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "chat log not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeFeedbackFailed, err.Error())
		}
		return
	}

	ok(c, http.StatusCreated, FeedbackResponse{FeedbackID: fb.ID})
}
