package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mkabeya/ratiba/core/course"
)

type courseApi struct {
	svc *course.Service
}

func registerCourseAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *course.Service) {
	api := courseApi{svc: svc}

	cg := g.Group("/courses", jwt)
	cg.POST("", api.create)
	cg.GET("", api.query)

	dg := cg.Group("/:id", api.ctxCourseMiddleware())
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

// ctxCourseMiddleware loads the course and rejects access unless the
// authenticated user owns it.
func (api *courseApi) ctxCourseMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			crs, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
			if err != nil {
				if errors.Cause(err) == course.ErrNotFound {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding course by ID")
			}
			if crs.OwnerID != claims.Subject && !claims.IsStaff {
				return errHttpNotFound
			}
			ctx.Set("object", crs)
			return next(ctx)
		}
	}
}

func (api *courseApi) create(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	crs, err := api.svc.Create(ctx.Request().Context(), claims.Subject, data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, crs)
}

func (api *courseApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	courses, err := api.svc.QueryByOwner(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	if courses == nil {
		courses = []course.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	crs, ok := ctx.Get("object").(course.Course)
	if !ok {
		return errors.Wrap(errHttpNotFound, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) update(ctx echo.Context) error {
	crs, ok := ctx.Get("object").(course.Course)
	if !ok {
		return errors.Wrap(errHttpNotFound, "retrieving object from context")
	}

	var data course.UpdateCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	crs, err := api.svc.Update(ctx.Request().Context(), crs.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) destroy(ctx echo.Context) error {
	crs, ok := ctx.Get("object").(course.Course)
	if !ok {
		return errors.Wrap(errHttpNotFound, "retrieving object from context")
	}
	if err := api.svc.Delete(ctx.Request().Context(), crs.ID); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}
