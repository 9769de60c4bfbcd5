package group

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrNotFound  = errors.New("group not found")
	ErrNotMember = errors.New("not a member of this group")
)

type (
	Repository interface {
		CreateGroup(ctx context.Context, grp Group) (Group, error)
		GetGroupByID(ctx context.Context, id string) (Group, error)
		QueryGroupsByMember(ctx context.Context, userID string) ([]Group, error)
		AddGroupMember(ctx context.Context, groupID, userID string) error
		IsGroupMember(ctx context.Context, groupID, userID string) (bool, error)
		DeleteGroupsByID(ctx context.Context, ids ...string) error

		CreateMessage(ctx context.Context, msg Message) (Message, error)
		// QueryMessages returns up to limit messages, newest first.
		QueryMessages(ctx context.Context, groupID string, limit int) ([]Message, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ownerID string, ng NewGroup) (Group, error) {
	grp := Group{
		Name:      ng.Name,
		Subject:   ng.Subject,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}
	grp, err := svc.repo.CreateGroup(ctx, grp)
	if err != nil {
		return Group{}, err
	}
	// the creator is always a member
	if err := svc.repo.AddGroupMember(ctx, grp.ID, ownerID); err != nil {
		return Group{}, errors.Wrap(err, "adding group owner as member")
	}
	return grp, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (Group, error) {
	return svc.repo.GetGroupByID(ctx, id)
}

func (svc *Service) QueryByMember(ctx context.Context, userID string) ([]Group, error) {
	return svc.repo.QueryGroupsByMember(ctx, userID)
}

func (svc *Service) Join(ctx context.Context, groupID, userID string) error {
	if _, err := svc.repo.GetGroupByID(ctx, groupID); err != nil {
		return err
	}
	return svc.repo.AddGroupMember(ctx, groupID, userID)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteGroupsByID(ctx, ids...)
}

func (svc *Service) PostMessage(ctx context.Context, groupID string, authorID, authorName string, nm NewMessage) (Message, error) {
	ok, err := svc.repo.IsGroupMember(ctx, groupID, authorID)
	if err != nil {
		return Message{}, errors.Wrap(err, "checking group membership")
	}
	if !ok {
		return Message{}, ErrNotMember
	}
	msg := Message{
		GroupID:    groupID,
		AuthorID:   authorID,
		AuthorName: authorName,
		Content:    nm.Content,
		CreatedAt:  time.Now().UTC(),
	}
	return svc.repo.CreateMessage(ctx, msg)
}

func (svc *Service) QueryMessages(ctx context.Context, groupID string, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 50
	}
	return svc.repo.QueryMessages(ctx, groupID, limit)
}
