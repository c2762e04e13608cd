package models

import "time"

// Chat is a conversation owned by a single user. Chats are created lazily:
// the client only creates one once the user actually sends a first message.
type Chat struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	Title      string    `json:"title" db:"title"`
	IsPinned   bool      `json:"is_pinned" db:"is_pinned"`
	IsArchived bool      `json:"is_archived" db:"is_archived"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Message roles. Only two roles are ever persisted; "system" messages exist
// transiently in completion requests and are never written to the database.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Attachment is a file reference carried on a user message (url/name/mime).
type Attachment struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Message is a single turn row. Two rows are appended per successful relay
// call (one user, one assistant); there is no update or soft-delete path.
type Message struct {
	ID          string       `json:"id" db:"id"`
	ChatID      string       `json:"chat_id" db:"chat_id"`
	Role        string       `json:"role" db:"role"`
	Content     string       `json:"content" db:"content"`
	Attachments []Attachment `json:"attachments,omitempty" db:"attachments"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
}
