package note

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("note not found")

type (
	Repository interface {
		CreateNote(ctx context.Context, nt Note) (Note, error)
		// QueryNotesByOwner returns notes ordered by last update, newest first.
		QueryNotesByOwner(ctx context.Context, ownerID string) ([]Note, error)
		GetNoteByID(ctx context.Context, id string) (Note, error)
		UpdateNote(ctx context.Context, nt Note) (Note, error)
		SaveNoteSummary(ctx context.Context, id, summary string) error
		DeleteNotesByID(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ownerID string, nn NewNote) (Note, error) {
	now := time.Now().UTC()
	nt := Note{
		OwnerID:     ownerID,
		Title:       nn.Title,
		Content:     nn.Content,
		Attachments: nn.Attachments,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateNote(ctx, nt)
}

func (svc *Service) QueryByOwner(ctx context.Context, ownerID string) ([]Note, error) {
	return svc.repo.QueryNotesByOwner(ctx, ownerID)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Note, error) {
	return svc.repo.GetNoteByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, un UpdateNote) (Note, error) {
	nt := Note{
		ID:          id,
		Title:       un.Title,
		Content:     un.Content,
		Attachments: un.Attachments,
		UpdatedAt:   time.Now().UTC(),
	}
	return svc.repo.UpdateNote(ctx, nt)
}

// SaveSummary caches a rendered summary on the note verbatim.
func (svc *Service) SaveSummary(ctx context.Context, id, summary string) error {
	return svc.repo.SaveNoteSummary(ctx, id, summary)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteNotesByID(ctx, ids...)
}
