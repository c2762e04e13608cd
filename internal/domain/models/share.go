package models

import "time"

// SharedConversation exposes a chat read-only via an unguessable token.
type SharedConversation struct {
	ID         string     `json:"id" db:"id"`
	ChatID     string     `json:"chat_id" db:"chat_id"`
	ShareToken string     `json:"share_token" db:"share_token"`
	IsPublic   bool       `json:"is_public" db:"is_public"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	ExpiresAt  *time.Time `json:"expires_at" db:"expires_at"`
}

// SharedView bundles what the public share page renders.
type SharedView struct {
	Chat     *Chat     `json:"chat"`
	Messages []Message `json:"messages"`
}
