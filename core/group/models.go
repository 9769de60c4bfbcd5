package group

import (
	"time"

	"github.com/mkabeya/ratiba/core"
)

// Group is a study group students join to discuss coursework.
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is a single discussion entry in a group.
type Message struct {
	ID         string    `json:"id"`
	GroupID    string    `json:"group_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

type NewGroup struct {
	Name    string `json:"name" validate:"required"`
	Subject string `json:"subject"`
}

func (ng *NewGroup) Validate() error {
	ng.Name = core.CleanString(ng.Name)
	ng.Subject = core.CleanString(ng.Subject)
	return core.Validate.Struct(ng)
}

type NewMessage struct {
	Content string `json:"content" validate:"required"`
}

func (nm *NewMessage) Validate() error {
	nm.Content = core.CleanString(nm.Content)
	return core.Validate.Struct(nm)
}
