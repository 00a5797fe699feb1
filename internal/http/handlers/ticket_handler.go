package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-support-backend/internal/repo"
)

// TicketItem is one escalation ticket in a listing.
type TicketItem struct {
	ID            int64     `json:"id"`
	UserMessage   string    `json:"user_message"`
	Status        string    `json:"status"`
	Priority      string    `json:"priority"`
	BotConfidence float64   `json:"bot_confidence"`
	CreatedAt     time.Time `json:"created_at"`
}

// GetTickets godoc
// @ID          getTickets
// @Summary     List escalation tickets
// @Description Returns all tickets, newest first. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Tickets
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
//
// @Success     200  {array}  handlers.TicketItem
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /tickets [get]
func (h *Handlers) GetTickets(c *gin.Context) {
	ctx := c.Request.Context()

	// ETag pre-check (best effort).
	if db := h.serviceDB(); db != nil {
		count, maxTS, err := repo.TicketsStats(ctx, db)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"tickets:%d:%d"`, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	rows, err := h.ticketSvc.List(ctx)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	items := make([]TicketItem, 0, len(rows))
	for _, t := range rows {
		items = append(items, TicketItem{
			ID:            t.ID,
			UserMessage:   t.UserMessage,
			Status:        t.Status,
			Priority:      t.Priority,
			BotConfidence: t.BotConfidence,
			CreatedAt:     t.CreatedAt,
		})
	}
	ok(c, http.StatusOK, items)
}
