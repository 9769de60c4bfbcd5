package aiassist

// Value objects produced by the engines. All are immutable once built and
// carry no identity; callers may render or persist them as they see fit.
// The JSON field names of NoteInsights and its parts are a contract shared
// with the completion collaborator (see ParseInsights).

type OutlineSection struct {
	Title        string   `json:"title"`
	BulletPoints []string `json:"bulletPoints"`
}

type MindMapBranch struct {
	Title string   `json:"title"`
	Nodes []string `json:"nodes"`
}

// ChapterLink connects free text to a curriculum reference.
type ChapterLink struct {
	CourseName   string `json:"courseName"`
	ChapterLabel string `json:"chapterLabel"`
	Reason       string `json:"reason"`
}

type NoteInsights struct {
	Summary         string           `json:"summary"`
	Outline         []OutlineSection `json:"structuredOutline"`
	KeyPoints       []string         `json:"keyPoints"`
	MindMapBranches []MindMapBranch  `json:"mindMapBranches"`
	ChapterLinks    []ChapterLink    `json:"chapterLinks"`
}

type AssignmentHint struct {
	Concepts    []string      `json:"concepts"`
	Formulas    []string      `json:"formulas"`
	Steps       []string      `json:"steps"`
	Chapters    []ChapterLink `json:"chapters"`
	Discussions []string      `json:"discussions"`
}

// SessionKind classifies a planned study session.
type SessionKind string

const (
	SessionClass      SessionKind = "CLASS"
	SessionReview     SessionKind = "REVIEW"
	SessionAssignment SessionKind = "ASSIGNMENT"
	SessionDiscussion SessionKind = "DISCUSSION"
	SessionBuffer     SessionKind = "BUFFER"
)

type PlannedSession struct {
	Label        string      `json:"label"`
	Detail       string      `json:"detail"`
	TimeRange    string      `json:"time_range"`
	Kind         SessionKind `json:"kind"`
	CourseID     string      `json:"course_id,omitempty"`
	AssignmentID string      `json:"assignment_id,omitempty"`
}

type StudyPlanDay struct {
	Date                string           `json:"date"` // "2006-01-02"
	Sessions            []PlannedSession `json:"sessions"`
	PriorityAssignments []string         `json:"priority_assignments"`
	FocusScore          int              `json:"focus_score"`
}
