package aiassist

import (
	"encoding/json"
	"strings"
	"unicode"

	"github.com/kaptinlin/jsonrepair"
	"github.com/pkg/errors"
)

// ErrInsufficientInput signals that the completion collaborator judged the
// input too thin to structure ("please provide content" boilerplate); callers
// should surface it instead of showing an empty result.
var ErrInsufficientInput = errors.New("insufficient input for structuring")

var insufficientMarkers = []string{
	"please provide",
	"provide the content",
	"no content to summarize",
	"请提供",
	"内容为空",
}

// ParseInsights parses a completion response into NoteInsights. Malformed
// JSON is repaired and retried; if that still fails the response is re-parsed
// with best-effort line heuristics rather than failing hard. Missing fields
// default to empty values.
func ParseInsights(raw string) (NoteInsights, error) {
	raw = strings.TrimSpace(stripCodeFence(raw))
	if raw == "" {
		return NoteInsights{}, ErrInsufficientInput
	}

	lower := strings.ToLower(raw)
	for _, marker := range insufficientMarkers {
		if strings.Contains(lower, marker) {
			return NoteInsights{}, ErrInsufficientInput
		}
	}

	var ins NoteInsights
	if err := json.Unmarshal([]byte(raw), &ins); err == nil {
		return ins, nil
	}

	if repaired, err := jsonrepair.JSONRepair(raw); err == nil {
		if err := json.Unmarshal([]byte(repaired), &ins); err == nil {
			return ins, nil
		}
	}

	return parseLines(raw), nil
}

// stripCodeFence removes a surrounding markdown code fence, if any.
func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return raw
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[idx+1:] // drop the language hint line
	}
	return strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
}

// parseLines is the best-effort degradation for non-JSON responses: headings
// open outline sections, bullet lines fill them, leading prose becomes the
// summary. A line matching both heading and bullet heuristics is treated as a
// heading.
func parseLines(raw string) NoteInsights {
	var ins NoteInsights
	var summaryLines []string

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case isHeadingLine(line):
			ins.Outline = append(ins.Outline, OutlineSection{Title: trimHeading(line)})
		case isBulletLine(line):
			point := trimBullet(line)
			if n := len(ins.Outline); n > 0 {
				ins.Outline[n-1].BulletPoints = append(ins.Outline[n-1].BulletPoints, point)
			} else {
				ins.KeyPoints = append(ins.KeyPoints, point)
			}
		default:
			if len(summaryLines) < 2 && len(ins.Outline) == 0 {
				summaryLines = append(summaryLines, line)
			}
		}
	}

	ins.Summary = strings.Join(summaryLines, "\n")
	return ins
}

func isHeadingLine(line string) bool {
	if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "【") {
		return true
	}
	// numbered headings: "1." / "2、" / "3:"
	runes := []rune(line)
	if len(runes) >= 2 && unicode.IsDigit(runes[0]) {
		switch runes[1] {
		case '.', '、', ':', '：':
			return true
		}
	}
	return false
}

func isBulletLine(line string) bool {
	for _, prefix := range []string{"-", "*", "•", "·"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func trimHeading(line string) string {
	line = strings.TrimLeft(line, "# ")
	line = strings.TrimPrefix(line, "【")
	line = strings.TrimSuffix(line, "】")
	runes := []rune(line)
	if len(runes) >= 2 && unicode.IsDigit(runes[0]) {
		switch runes[1] {
		case '.', '、', ':', '：':
			line = strings.TrimSpace(string(runes[2:]))
		}
	}
	return strings.TrimSpace(line)
}

func trimBullet(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, "-*•· "))
}
