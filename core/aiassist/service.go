package aiassist

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/mkabeya/ratiba/core"
	"github.com/mkabeya/ratiba/core/assignment"
	"github.com/mkabeya/ratiba/core/course"
	"github.com/mkabeya/ratiba/core/group"
	"github.com/mkabeya/ratiba/core/note"
)

const insightsPrompt = `You are a study assistant. Structure the following lecture notes.
Respond with a single JSON object only, using exactly these keys:
"summary" (string), "structuredOutline" (array of {"title","bulletPoints"}),
"keyPoints" (array of strings), "mindMapBranches" (array of {"title","nodes"}),
"chapterLinks" (array of {"courseName","chapterLabel","reason"}).

Notes:
%s`

// Service fronts the heuristic engines with the optional completion
// collaborator: model output is preferred when present and parseable, the
// local engines are the fallback. A nil completion service is valid and
// means heuristics only.
type Service struct {
	completionSvc core.CompletionService
	logger        core.Logger
}

func NewService(completionSvc core.CompletionService, logger core.Logger) *Service {
	return &Service{completionSvc: completionSvc, logger: logger}
}

// NoteInsights structures note text, preferring the completion service when
// configured. ErrInsufficientInput from the model is surfaced to the caller;
// any other model failure silently degrades to the local engine.
func (svc *Service) NoteInsights(
	ctx context.Context,
	text string,
	attachments []note.Attachment,
	courses []course.Course,
) (NoteInsights, error) {
	if svc.completionSvc != nil {
		raw, err := svc.completionSvc.Complete(ctx, fmt.Sprintf(insightsPrompt, text))
		if err == nil {
			ins, perr := ParseInsights(raw)
			if perr == nil {
				return ins, nil
			}
			if errors.Is(perr, ErrInsufficientInput) {
				return NoteInsights{}, perr
			}
		} else {
			svc.logger.Warn("completion service failed; falling back to heuristics", err)
		}
	}
	return StructureNotes(text, attachments, courses), nil
}

// AssignmentHint derives study hints for a question. relatedMessages may be
// the raw feed of the asker's groups; only the ones relevant to the question
// make it into the hint.
func (svc *Service) AssignmentHint(
	question string,
	courses []course.Course,
	assignments []assignment.Assignment,
	relatedMessages []group.Message,
) AssignmentHint {
	return GenerateAssignmentHint(question, courses, assignments, FilterRelevantMessages(question, relatedMessages))
}

func (svc *Service) StudyPlan(courses []course.Course, assignments []assignment.Assignment, dayCount int) []StudyPlanDay {
	return GeneratePlan(courses, assignments, dayCount)
}
