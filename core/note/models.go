package note

import (
	"time"

	"github.com/mkabeya/ratiba/core"
)

// AttachmentKind is the closed set of attachment classifications.
type AttachmentKind string

const (
	AttachmentImage AttachmentKind = "IMAGE"
	AttachmentAudio AttachmentKind = "AUDIO"
	AttachmentText  AttachmentKind = "TEXT"
	AttachmentOther AttachmentKind = "OTHER"
)

// Tag renders the fixed display prefix for a kind; unknown kinds render as other.
func (k AttachmentKind) Tag() string {
	switch k {
	case AttachmentImage:
		return "[image]"
	case AttachmentAudio:
		return "[audio]"
	case AttachmentText:
		return "[text]"
	default:
		return "[file]"
	}
}

type Attachment struct {
	Kind AttachmentKind `json:"kind" validate:"required,oneof=IMAGE AUDIO TEXT OTHER"`
	Name string         `json:"name" validate:"required"`
}

type Note struct {
	ID          string       `json:"id"`
	OwnerID     string       `json:"owner_id"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	Attachments []Attachment `json:"attachments"`
	// Summary caches the latest structured summary verbatim; opaque to this layer.
	Summary   string    `json:"summary,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NewNote struct {
	Title       string       `json:"title" validate:"required"`
	Content     string       `json:"content"`
	Attachments []Attachment `json:"attachments" validate:"omitempty,dive"`
}

func (nn *NewNote) Validate() error {
	nn.Title = core.CleanString(nn.Title)
	return core.Validate.Struct(nn)
}

type UpdateNote struct {
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	Attachments []Attachment `json:"attachments" validate:"omitempty,dive"`
}

func (un *UpdateNote) Validate() error {
	un.Title = core.CleanString(un.Title)
	return core.Validate.Struct(un)
}
