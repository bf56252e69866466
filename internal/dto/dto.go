// Package dto holds the JSON shapes returned by the HTTP API.
package dto

import (
	"time"

	"chatroom/internal/models"

	"github.com/samber/lo"
)

// MemberSummary is the member view embedded in login responses.
type MemberSummary struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email"`
}

// Profile is the member view returned by the profile endpoints.
type Profile struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     *string   `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Registration is returned once, right after an account is created.
type Registration struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email"`
	Token    string  `json:"token"`
}

// Login is returned after successful authentication.
type Login struct {
	Token string        `json:"token"`
	User  MemberSummary `json:"user"`
}

// Author is the nested author of a message.
type Author struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// Message is a single chat message.
type Message struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// MessagePage is one window of the message list.
type MessagePage struct {
	Count   int64     `json:"count"`
	Results []Message `json:"results"`
}

// NewMemberSummary builds the login view of a member.
func NewMemberSummary(m *models.Member) MemberSummary {
	return MemberSummary{ID: m.ID, Username: m.Username, Email: m.Email}
}

// NewProfile builds the profile view of a member.
func NewProfile(m *models.Member) Profile {
	return Profile{ID: m.ID, Username: m.Username, Email: m.Email, CreatedAt: m.CreatedAt}
}

// NewMessage builds the API view of a message. Author must be loaded.
func NewMessage(m models.Message) Message {
	return Message{
		ID:        m.ID,
		Text:      m.Text,
		Author:    Author{ID: m.Author.ID, Username: m.Author.Username},
		CreatedAt: m.CreatedAt,
	}
}

// NewMessages converts a page of messages, preserving order.
func NewMessages(messages []models.Message) []Message {
	return lo.Map(messages, func(item models.Message, _ int) Message {
		return NewMessage(item)
	})
}
