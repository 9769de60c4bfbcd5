package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/mkabeya/ratiba/core/group"
)

type groupRepository struct {
	db *groupTable
}

var _ group.Repository = (*groupRepository)(nil) // interface compliance check

func NewGroupRepository(db *DB) group.Repository {
	return &groupRepository{db: db.group}
}

func (repo *groupRepository) CreateGroup(_ context.Context, grp group.Group) (group.Group, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	grp.ID = uuid.New().String()
	repo.db.table[grp.ID] = &grp
	repo.db.members[grp.ID] = make(map[string]bool)
	return grp, nil
}

func (repo *groupRepository) GetGroupByID(_ context.Context, id string) (group.Group, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if grp, ok := repo.db.table[id]; ok {
		return *grp, nil
	}
	return group.Group{}, group.ErrNotFound
}

func (repo *groupRepository) QueryGroupsByMember(_ context.Context, userID string) ([]group.Group, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var groups []group.Group
	for id, members := range repo.db.members {
		if members[userID] {
			if grp, ok := repo.db.table[id]; ok {
				groups = append(groups, *grp)
			}
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].CreatedAt.Before(groups[j].CreatedAt) })
	return groups, nil
}

func (repo *groupRepository) AddGroupMember(_ context.Context, groupID, userID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	members, ok := repo.db.members[groupID]
	if !ok {
		return group.ErrNotFound
	}
	members[userID] = true
	return nil
}

func (repo *groupRepository) IsGroupMember(_ context.Context, groupID, userID string) (bool, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.members[groupID][userID], nil
}

func (repo *groupRepository) DeleteGroupsByID(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		delete(repo.db.table, id)
		delete(repo.db.members, id)
		delete(repo.db.messages, id)
	}
	return nil
}

func (repo *groupRepository) CreateMessage(_ context.Context, msg group.Message) (group.Message, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[msg.GroupID]; !ok {
		return group.Message{}, group.ErrNotFound
	}
	msg.ID = uuid.New().String()
	repo.db.messages[msg.GroupID] = append(repo.db.messages[msg.GroupID], msg)
	return msg, nil
}

func (repo *groupRepository) QueryMessages(_ context.Context, groupID string, limit int) ([]group.Message, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	all := repo.db.messages[groupID]
	msgs := make([]group.Message, 0, limit)
	for i := len(all) - 1; i >= 0 && len(msgs) < limit; i-- { // newest first
		msgs = append(msgs, all[i])
	}
	return msgs, nil
}
