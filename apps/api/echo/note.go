package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mkabeya/ratiba/core"
	"github.com/mkabeya/ratiba/core/aiassist"
	"github.com/mkabeya/ratiba/core/course"
	"github.com/mkabeya/ratiba/core/note"
)

type noteApi struct {
	svc       *note.Service
	courseSvc *course.Service
	assistSvc *aiassist.Service
}

func registerNoteAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *note.Service,
	courseSvc *course.Service,
	assistSvc *aiassist.Service,
) {
	api := noteApi{svc: svc, courseSvc: courseSvc, assistSvc: assistSvc}

	ng := g.Group("/notes", jwt)
	ng.POST("", api.create)
	ng.GET("", api.query)

	dg := ng.Group("/:id", api.ctxNoteMiddleware())
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.POST("/insights", api.insights)
}

func (api *noteApi) ctxNoteMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			nt, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
			if err != nil {
				if errors.Cause(err) == note.ErrNotFound {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding note by ID")
			}
			if nt.OwnerID != claims.Subject && !claims.IsStaff {
				return errHttpNotFound
			}
			ctx.Set("object", nt)
			return next(ctx)
		}
	}
}

func (api *noteApi) create(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data note.NewNote
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNote")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	nt, err := api.svc.Create(ctx.Request().Context(), claims.Subject, data)
	if err != nil {
		return errors.Wrap(err, "creating note")
	}
	return ctx.JSON(http.StatusCreated, nt)
}

func (api *noteApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	notes, err := api.svc.QueryByOwner(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying notes")
	}
	if notes == nil {
		notes = []note.Note{}
	}
	return ctx.JSON(http.StatusOK, notes)
}

func (api *noteApi) retrieve(ctx echo.Context) error {
	nt, ok := ctx.Get("object").(note.Note)
	if !ok {
		return errors.Wrap(errHttpNotFound, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, nt)
}

func (api *noteApi) update(ctx echo.Context) error {
	nt, ok := ctx.Get("object").(note.Note)
	if !ok {
		return errors.Wrap(errHttpNotFound, "retrieving object from context")
	}

	var data note.UpdateNote
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateNote")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	nt, err := api.svc.Update(ctx.Request().Context(), nt.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating note")
	}
	return ctx.JSON(http.StatusOK, nt)
}

func (api *noteApi) destroy(ctx echo.Context) error {
	nt, ok := ctx.Get("object").(note.Note)
	if !ok {
		return errors.Wrap(errHttpNotFound, "retrieving object from context")
	}
	if err := api.svc.Delete(ctx.Request().Context(), nt.ID); err != nil {
		return errors.Wrap(err, "deleting note")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// insights structures the note's content and caches the summary on the note.
func (api *noteApi) insights(ctx echo.Context) error {
	nt, ok := ctx.Get("object").(note.Note)
	if !ok {
		return errors.Wrap(errHttpNotFound, "retrieving object from context")
	}

	reqCtx := ctx.Request().Context()
	courses, err := api.courseSvc.QueryByOwner(reqCtx, nt.OwnerID)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}

	insights, err := api.assistSvc.NoteInsights(reqCtx, nt.Content, nt.Attachments, courses)
	if err != nil {
		if errors.Cause(err) == aiassist.ErrInsufficientInput {
			return core.NewValidationError(err)
		}
		return errors.Wrap(err, "structuring note")
	}

	if insights.Summary != "" {
		if err := api.svc.SaveSummary(reqCtx, nt.ID, insights.Summary); err != nil {
			return errors.Wrap(err, "saving note summary")
		}
	}
	return ctx.JSON(http.StatusOK, insights)
}
