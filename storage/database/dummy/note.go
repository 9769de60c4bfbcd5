package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/mkabeya/ratiba/core/note"
)

type noteRepository struct {
	db *noteTable
}

var _ note.Repository = (*noteRepository)(nil) // interface compliance check

func NewNoteRepository(db *DB) note.Repository {
	return &noteRepository{db: db.note}
}

func (repo *noteRepository) CreateNote(_ context.Context, nt note.Note) (note.Note, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	nt.ID = uuid.New().String()
	repo.db.table[nt.ID] = &nt
	return nt, nil
}

func (repo *noteRepository) QueryNotesByOwner(_ context.Context, ownerID string) ([]note.Note, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var notes []note.Note
	for _, nt := range repo.db.table {
		if nt.OwnerID == ownerID {
			notes = append(notes, *nt)
		}
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].UpdatedAt.After(notes[j].UpdatedAt) })
	return notes, nil
}

func (repo *noteRepository) GetNoteByID(_ context.Context, id string) (note.Note, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if nt, ok := repo.db.table[id]; ok {
		return *nt, nil
	}
	return note.Note{}, note.ErrNotFound
}

func (repo *noteRepository) UpdateNote(_ context.Context, nt note.Note) (note.Note, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	existing, ok := repo.db.table[nt.ID]
	if !ok {
		return note.Note{}, note.ErrNotFound
	}
	if nt.Title != "" {
		existing.Title = nt.Title
	}
	if nt.Content != "" {
		existing.Content = nt.Content
	}
	if nt.Attachments != nil {
		existing.Attachments = nt.Attachments
	}
	if !nt.UpdatedAt.IsZero() {
		existing.UpdatedAt = nt.UpdatedAt
	}
	return *existing, nil
}

func (repo *noteRepository) SaveNoteSummary(_ context.Context, id, summary string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	nt, ok := repo.db.table[id]
	if !ok {
		return note.ErrNotFound
	}
	nt.Summary = summary
	return nil
}

func (repo *noteRepository) DeleteNotesByID(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
