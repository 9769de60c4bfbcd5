package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mkabeya/ratiba/core"
	"github.com/mkabeya/ratiba/core/aiassist"
	"github.com/mkabeya/ratiba/core/assignment"
	"github.com/mkabeya/ratiba/core/course"
	"github.com/mkabeya/ratiba/core/group"
)

const (
	defaultPlanDays = 7

	// recent messages pulled per group as hint material
	hintMessagesPerGroup = 20
)

type assistApi struct {
	courseSvc     *course.Service
	assignmentSvc *assignment.Service
	groupSvc      *group.Service
	svc           *aiassist.Service
}

func registerAssistAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	courseSvc *course.Service,
	assignmentSvc *assignment.Service,
	groupSvc *group.Service,
	svc *aiassist.Service,
) {
	api := assistApi{courseSvc: courseSvc, assignmentSvc: assignmentSvc, groupSvc: groupSvc, svc: svc}

	ag := g.Group("/assist", jwt)
	ag.POST("/assignment-hint", api.assignmentHint)
	ag.GET("/study-plan", api.studyPlan)
}

type AssignmentHintRequest struct {
	Question string `json:"question" validate:"required"`
}

func (hr *AssignmentHintRequest) Validate() error {
	hr.Question = core.CleanString(hr.Question)
	return core.Validate.Struct(hr)
}

func (api *assistApi) assignmentHint(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data AssignmentHintRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AssignmentHintRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	reqCtx := ctx.Request().Context()
	courses, err := api.courseSvc.QueryByOwner(reqCtx, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	asgs, err := api.assignmentSvc.QueryByOwner(reqCtx, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}

	groups, err := api.groupSvc.QueryByMember(reqCtx, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying groups")
	}
	var msgs []group.Message
	for _, grp := range groups {
		grpMsgs, err := api.groupSvc.QueryMessages(reqCtx, grp.ID, hintMessagesPerGroup)
		if err != nil {
			return errors.Wrap(err, "querying group messages")
		}
		msgs = append(msgs, grpMsgs...)
	}

	hint := api.svc.AssignmentHint(data.Question, courses, asgs, msgs)
	return ctx.JSON(http.StatusOK, hint)
}

func (api *assistApi) studyPlan(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	days := defaultPlanDays
	if raw := ctx.QueryParam("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "days", Error: "must be an integer"})
		}
	}

	reqCtx := ctx.Request().Context()
	courses, err := api.courseSvc.QueryByOwner(reqCtx, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	asgs, err := api.assignmentSvc.QueryByOwner(reqCtx, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}

	plan := api.svc.StudyPlan(courses, asgs, days)
	return ctx.JSON(http.StatusOK, plan)
}
