// Package domain defines the persistence models for chat logs, tickets, and
// feedback. These types are mapped with GORM and form the core data layer
// of the support backend.
package domain

import "time"

// Values written by the decision engine. The ticket status lifecycle beyond
// "open" (closing, reassigning) is out of scope.
const (
	TicketStatusOpen     = "open"
	TicketPriorityNormal = "normal"

	DefaultSessionID = "default"

	FeedbackRatingUp   = "up"
	FeedbackRatingDown = "down"
)

// ChatLog represents one chat exchange: the user message and the bot reply
// produced for it, together with the decision metadata (intent, confidence)
// and the owning session. Rows are append-only; the autoincrement ID is the
// canonical conversation order within a session.
//
// Fields:
//   - ID: autoincrement primary key; ordering key for history.
//   - UserMessage / BotResponse: both non-empty by construction.
//   - Intent: coarse category assigned by the classifier.
//   - Confidence: full-precision score in [0,1].
//   - SessionID: conversation identifier; indexed for history lookups.
type ChatLog struct {
	ID          int64     `json:"id"           gorm:"primaryKey;autoIncrement"`
	UserMessage string    `json:"user_message" gorm:"type:text;not null"`
	BotResponse string    `json:"bot_response" gorm:"type:text;not null"`
	Intent      string    `json:"intent"       gorm:"type:varchar(32)"`
	Confidence  float64   `json:"confidence"`
	SessionID   string    `json:"session_id"   gorm:"type:varchar(128);not null;default:'default';index:idx_session_logs"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the database table name for ChatLog.
func (ChatLog) TableName() string { return "chat_logs" }

// Ticket represents an escalation created as a side effect of the decision
// engine (escalation intent or low confidence). It carries the triggering
// message rather than a foreign key to the chat log row; the two schemas are
// deliberately decoupled (see DESIGN.md).
type Ticket struct {
	ID            int64     `json:"id"             gorm:"primaryKey;autoIncrement"`
	UserMessage   string    `json:"user_message"   gorm:"type:text;not null"`
	Status        string    `json:"status"         gorm:"type:varchar(16);not null"`
	Priority      string    `json:"priority"       gorm:"type:varchar(16);not null"`
	CreatedAt     time.Time `json:"created_at"     gorm:"index:idx_ticket_created"`
	BotConfidence float64   `json:"bot_confidence"`
}

// TableName returns the database table name for Ticket.
func (Ticket) TableName() string { return "tickets" }

// Feedback represents a user rating ("up" or "down") on a chat exchange,
// referencing the ChatLog row by id.
type Feedback struct {
	ID        int64     `json:"id"          gorm:"primaryKey;autoIncrement"`
	ChatLogID int64     `json:"chat_log_id" gorm:"not null;index"`
	Rating    string    `json:"rating"      gorm:"type:varchar(8);not null;check:rating IN ('up','down')"`
	Comment   *string   `json:"comment,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`

	// ChatLog is the rated exchange. Feedback is cascade-deleted if the
	// underlying chat log row is removed.
	ChatLog ChatLog `json:"-" gorm:"foreignKey:ChatLogID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Feedback.
func (Feedback) TableName() string { return "feedback" }
