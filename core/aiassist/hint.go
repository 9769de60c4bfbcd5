package aiassist

import (
	"strings"
	"unicode/utf8"

	"github.com/mkabeya/ratiba/core/assignment"
	"github.com/mkabeya/ratiba/core/course"
	"github.com/mkabeya/ratiba/core/group"
)

const maxRelatedDiscussions = 3

// solutionSteps is the fixed generic problem-solving checklist; it does not
// depend on the question.
var solutionSteps = []string{
	"Break the problem statement into given conditions and goals",
	"List the relevant formulas and name the unknowns",
	"Substitute known values and check the units",
	"Sanity-check the result against edge cases",
}

// FilterRelevantMessages keeps the messages whose content mentions one of the
// question's keywords. Matching is case-insensitive and order is preserved.
func FilterRelevantMessages(question string, messages []group.Message) []group.Message {
	keywords := ExtractKeywords(question)
	if len(keywords) == 0 {
		return nil
	}

	var relevant []group.Message
	for _, msg := range messages {
		content := strings.ToLower(msg.Content)
		for _, kw := range keywords {
			if strings.Contains(content, strings.ToLower(kw)) {
				relevant = append(relevant, msg)
				break
			}
		}
	}
	return relevant
}

// GenerateAssignmentHint derives study hints for a question from local
// heuristics. Messages are expected to be pre-filtered to relevance by the
// caller; only the first 3 are rendered.
func GenerateAssignmentHint(
	question string,
	courses []course.Course,
	assignments []assignment.Assignment,
	relatedMessages []group.Message,
) AssignmentHint {
	keywords := ExtractKeywords(question)

	concepts := make([]string, 0, len(keywords))
	formulas := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		concepts = append(concepts, "background on "+kw)
		formulas = append(formulas, "formula related to "+kw)
	}

	discussions := make([]string, 0, maxRelatedDiscussions)
	for _, msg := range relatedMessages {
		if len(discussions) == maxRelatedDiscussions {
			break
		}
		excerpt := msg.Content
		if utf8.RuneCountInString(excerpt) > 60 {
			excerpt = firstRunes(excerpt, 60)
		}
		discussions = append(discussions, excerpt+" · "+msg.CreatedAt.Local().Format("01-02 15:04"))
	}

	return AssignmentHint{
		Concepts:    concepts,
		Formulas:    formulas,
		Steps:       append([]string(nil), solutionSteps...),
		Chapters:    MatchChapters(question, courses),
		Discussions: discussions,
	}
}
