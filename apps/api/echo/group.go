package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mkabeya/ratiba/core/group"
	"github.com/mkabeya/ratiba/core/user"
)

type groupApi struct {
	svc    *group.Service
	usrSvc *user.Service
}

func registerGroupAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *group.Service, usrSvc *user.Service) {
	api := groupApi{svc: svc, usrSvc: usrSvc}

	gg := g.Group("/groups", jwt)
	gg.POST("", api.create)
	gg.GET("", api.query)
	gg.GET("/:id", api.retrieve)
	gg.POST("/:id/join", api.join)
	gg.DELETE("/:id", api.destroy, staffMiddleware())
	gg.POST("/:id/messages", api.postMessage)
	gg.GET("/:id/messages", api.queryMessages)
}

func (api *groupApi) create(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data group.NewGroup
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGroup")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	grp, err := api.svc.Create(ctx.Request().Context(), claims.Subject, data)
	if err != nil {
		return errors.Wrap(err, "creating group")
	}
	return ctx.JSON(http.StatusCreated, grp)
}

func (api *groupApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	groups, err := api.svc.QueryByMember(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying groups")
	}
	if groups == nil {
		groups = []group.Group{}
	}
	return ctx.JSON(http.StatusOK, groups)
}

func (api *groupApi) retrieve(ctx echo.Context) error {
	grp, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == group.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding group by ID")
	}
	return ctx.JSON(http.StatusOK, grp)
}

func (api *groupApi) join(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	if err := api.svc.Join(ctx.Request().Context(), ctx.Param("id"), claims.Subject); err != nil {
		if errors.Cause(err) == group.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "joining group")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *groupApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting group")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *groupApi) postMessage(ctx echo.Context) error {
	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data group.NewMessage
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMessage")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	msg, err := api.svc.PostMessage(ctx.Request().Context(), ctx.Param("id"), ctxUsr.ID, ctxUsr.Name, data)
	if err != nil {
		switch errors.Cause(err) {
		case group.ErrNotFound:
			return errHttpNotFound
		case group.ErrNotMember:
			return errHttpForbidden
		}
		return errors.Wrap(err, "posting message")
	}
	return ctx.JSON(http.StatusCreated, msg)
}

func (api *groupApi) queryMessages(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	// only members can read the thread
	if _, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if errors.Cause(err) == group.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding group by ID")
	}
	memberOf, err := api.svc.QueryByMember(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "checking group membership")
	}
	var isMember bool
	for _, grp := range memberOf {
		if grp.ID == ctx.Param("id") {
			isMember = true
			break
		}
	}
	if !isMember && !claims.IsStaff {
		return errHttpForbidden
	}

	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))
	msgs, err := api.svc.QueryMessages(ctx.Request().Context(), ctx.Param("id"), limit)
	if err != nil {
		return errors.Wrap(err, "querying messages")
	}
	if msgs == nil {
		msgs = []group.Message{}
	}
	return ctx.JSON(http.StatusOK, msgs)
}
