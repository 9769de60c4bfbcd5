package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mkabeya/ratiba/core/assignment"
)

type assignmentApi struct {
	svc *assignment.Service
}

func registerAssignmentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *assignment.Service) {
	api := assignmentApi{svc: svc}

	ag := g.Group("/assignments", jwt)
	ag.POST("", api.create)
	ag.GET("", api.query)

	dg := ag.Group("/:id", api.ctxAssignmentMiddleware())
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.POST("/complete", api.complete)
	dg.DELETE("", api.destroy)
}

func (api *assignmentApi) ctxAssignmentMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			asg, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
			if err != nil {
				if errors.Cause(err) == assignment.ErrNotFound {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding assignment by ID")
			}
			if asg.OwnerID != claims.Subject && !claims.IsStaff {
				return errHttpNotFound
			}
			ctx.Set("object", asg)
			return next(ctx)
		}
	}
}

func (api *assignmentApi) create(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data assignment.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	asg, err := api.svc.Create(ctx.Request().Context(), claims.Subject, data)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusCreated, asg)
}

func (api *assignmentApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	filter := assignment.QueryFilter{OwnerID: claims.Subject}
	if status := ctx.QueryParam("status"); status != "" {
		filter.Status = assignment.Status(status)
	}
	if courseID := ctx.QueryParam("course_id"); courseID != "" {
		filter.CourseID = courseID
	}

	asgs, err := api.svc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	if asgs == nil {
		asgs = []assignment.Assignment{}
	}
	return ctx.JSON(http.StatusOK, asgs)
}

func (api *assignmentApi) retrieve(ctx echo.Context) error {
	asg, ok := ctx.Get("object").(assignment.Assignment)
	if !ok {
		return errors.Wrap(errHttpNotFound, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, asg)
}

func (api *assignmentApi) update(ctx echo.Context) error {
	asg, ok := ctx.Get("object").(assignment.Assignment)
	if !ok {
		return errors.Wrap(errHttpNotFound, "retrieving object from context")
	}

	var data assignment.UpdateAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAssignment")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	asg, err := api.svc.Update(ctx.Request().Context(), asg.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating assignment")
	}
	return ctx.JSON(http.StatusOK, asg)
}

func (api *assignmentApi) complete(ctx echo.Context) error {
	asg, ok := ctx.Get("object").(assignment.Assignment)
	if !ok {
		return errors.Wrap(errHttpNotFound, "retrieving object from context")
	}

	asg, err := api.svc.Complete(ctx.Request().Context(), asg.ID)
	if err != nil {
		return errors.Wrap(err, "completing assignment")
	}
	return ctx.JSON(http.StatusOK, asg)
}

func (api *assignmentApi) destroy(ctx echo.Context) error {
	asg, ok := ctx.Get("object").(assignment.Assignment)
	if !ok {
		return errors.Wrap(errHttpNotFound, "retrieving object from context")
	}
	if err := api.svc.Delete(ctx.Request().Context(), asg.ID); err != nil {
		return errors.Wrap(err, "deleting assignment")
	}
	return ctx.NoContent(http.StatusNoContent)
}
