package main

import (
	"context"
	"time"

	"github.com/mkabeya/ratiba/core"
	"github.com/mkabeya/ratiba/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(uname, email, pwd string, isStaff bool) error {
	ctx := context.Background()
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	usr, err := cli.usrRepo.GetUser(ctx, user.GetFilter{UsernameOrEmail: uname})
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		now := time.Now().UTC()
		usr = user.User{
			Username:  uname,
			Email:     email,
			IsStaff:   isStaff,
			CreatedAt: now,
			UpdatedAt: now,
		}
		usr.SetActive(true)
		if err := usr.SetPassword(pwd); err != nil {
			return err
		}
		_, err = cli.usrRepo.CreateUser(ctx, usr)
		return err
	}

	usr.Email = email
	usr.IsStaff = isStaff
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	active := true
	_, err = cli.usrRepo.UpdateUser(ctx, usr, &active)
	return err
}
