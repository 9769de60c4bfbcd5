package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/mkabeya/ratiba/core/assignment"
	"github.com/mkabeya/ratiba/core/course"
	"github.com/mkabeya/ratiba/core/group"
	"github.com/mkabeya/ratiba/core/note"
	"github.com/mkabeya/ratiba/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, uname, email, pwd string,
	isStaff, isActive bool,
	createdAt ...time.Time,
) user.User {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Username:  uname,
		Email:     email,
		IsStaff:   isStaff,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	usr.SetActive(isActive)
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateCourse(
	t *testing.T,
	repo course.Repository,
	ownerID, name string,
	weekday int,
	startTime, endTime string,
) course.Course {
	tstamp := time.Now().UTC()
	crs, err := repo.CreateCourse(context.Background(), course.Course{
		OwnerID:   ownerID,
		Name:      name,
		Weekday:   weekday,
		StartTime: startTime,
		EndTime:   endTime,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return crs
}

func CreateAssignment(
	t *testing.T,
	repo assignment.Repository,
	ownerID, title string,
	dueAt time.Time,
	priority assignment.Priority,
	status assignment.Status,
) assignment.Assignment {
	tstamp := time.Now().UTC()
	asg, err := repo.CreateAssignment(context.Background(), assignment.Assignment{
		OwnerID:   ownerID,
		Title:     title,
		DueAt:     dueAt.UTC(),
		Priority:  priority,
		Status:    status,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	})
	if err != nil {
		t.Fatalf("CreateAssignment() failed: %v", err)
	}
	return asg
}

func CreateNote(
	t *testing.T,
	repo note.Repository,
	ownerID, title, content string,
	attachments ...note.Attachment,
) note.Note {
	tstamp := time.Now().UTC()
	nt, err := repo.CreateNote(context.Background(), note.Note{
		OwnerID:     ownerID,
		Title:       title,
		Content:     content,
		Attachments: attachments,
		CreatedAt:   tstamp,
		UpdatedAt:   tstamp,
	})
	if err != nil {
		t.Fatalf("CreateNote() failed: %v", err)
	}
	return nt
}

// CreateGroup creates a group and enrolls the owner as its first member.
func CreateGroup(
	t *testing.T,
	repo group.Repository,
	ownerID, name, subject string,
) group.Group {
	ctx := context.Background()
	grp, err := repo.CreateGroup(ctx, group.Group{
		OwnerID:   ownerID,
		Name:      name,
		Subject:   subject,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateGroup() failed: %v", err)
	}
	if err := repo.AddGroupMember(ctx, grp.ID, ownerID); err != nil {
		t.Fatalf("CreateGroup() failed: %v", err)
	}
	return grp
}

func CreateGroupMessage(
	t *testing.T,
	repo group.Repository,
	groupID, authorID, authorName, content string,
) group.Message {
	msg, err := repo.CreateMessage(context.Background(), group.Message{
		GroupID:    groupID,
		AuthorID:   authorID,
		AuthorName: authorName,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateMessage() failed: %v", err)
	}
	return msg
}
