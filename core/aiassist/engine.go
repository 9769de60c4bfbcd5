package aiassist

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mkabeya/ratiba/core/course"
	"github.com/mkabeya/ratiba/core/note"
)

const (
	maxOutlineSections = 4
	maxSectionBullets  = 4
	maxKeyPoints       = 5
	maxConceptNodes    = 6
	minSentenceRunes   = 5
	titleRunes         = 18
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)

	reviewActions = []string{
		"Rewrite the key points in your own words",
		"Make flashcards for the core concepts",
		"Explain each topic to a study partner",
		"Redo one related exercise per topic",
	}
)

// StructureNotes turns free-form note text into a structured insight bundle
// using local heuristics only. It never fails: empty or degenerate input
// degrades to empty fields.
func StructureNotes(text string, attachments []note.Attachment, courses []course.Course) NoteInsights {
	clean := strings.TrimSpace(whitespaceRegex.ReplaceAllString(text, " "))
	sentences := splitSentences(clean)

	return NoteInsights{
		Summary:         buildSummary(sentences, attachments),
		Outline:         buildOutline(sentences),
		KeyPoints:       pickKeyPoints(sentences),
		MindMapBranches: buildMindMap(sentences, attachments),
		ChapterLinks:    MatchChapters(clean, courses),
	}
}

// splitSentences segments cleaned text on sentence-ending punctuation and
// drops fragments too short to be meaningful.
func splitSentences(clean string) []string {
	parts := strings.FieldsFunc(clean, func(r rune) bool {
		switch r {
		case '。', '．', '.', '！', '!', '？', '?', '\n':
			return true
		}
		return false
	})

	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if utf8.RuneCountInString(p) >= minSentenceRunes {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// buildOutline partitions the sentences into at most 4 contiguous chunks of
// roughly equal size; the last chunk absorbs any remainder.
func buildOutline(sentences []string) []OutlineSection {
	n := len(sentences)
	if n == 0 {
		return nil
	}

	size := n / maxOutlineSections
	if size < 1 {
		size = 1
	}

	var outline []OutlineSection
	start := 0
	for i := 0; i < maxOutlineSections && start < n; i++ {
		end := start + size
		if i == maxOutlineSections-1 || end > n {
			end = n
		}
		chunk := sentences[start:end]

		bullets := chunk
		if len(bullets) > maxSectionBullets {
			bullets = bullets[:maxSectionBullets]
		}
		outline = append(outline, OutlineSection{
			Title:        fmt.Sprintf("Topic %d: %s", i+1, firstRunes(chunk[0], titleRunes)),
			BulletPoints: append([]string(nil), bullets...),
		})
		start = end
	}
	return outline
}

// pickKeyPoints returns the 5 longest sentences, descending by rune count;
// ties keep original relative order.
func pickKeyPoints(sentences []string) []string {
	points := append([]string(nil), sentences...)
	sort.SliceStable(points, func(i, j int) bool {
		return utf8.RuneCountInString(points[i]) > utf8.RuneCountInString(points[j])
	})
	if len(points) > maxKeyPoints {
		points = points[:maxKeyPoints]
	}
	return points
}

// buildMindMap assembles up to three branches in fixed order: core concepts,
// attached materials, suggested review actions. Empty branches are omitted.
func buildMindMap(sentences []string, attachments []note.Attachment) []MindMapBranch {
	var branches []MindMapBranch

	if concepts := topTokens(sentences, maxConceptNodes); len(concepts) > 0 {
		branches = append(branches, MindMapBranch{Title: "Core concepts", Nodes: concepts})
	}

	if len(attachments) > 0 {
		nodes := make([]string, 0, len(attachments))
		for _, at := range attachments {
			nodes = append(nodes, at.Kind.Tag()+" "+at.Name)
		}
		branches = append(branches, MindMapBranch{Title: "Attached materials", Nodes: nodes})
	}

	if len(sentences) > 0 || len(attachments) > 0 {
		branches = append(branches, MindMapBranch{
			Title: "Suggested review actions",
			Nodes: append([]string(nil), reviewActions...),
		})
	}
	return branches
}

// topTokens tokenizes sentences on comma/space/middle-dot separators and
// returns the most frequent tokens of rune length [2,12], first-seen stable.
func topTokens(sentences []string, limit int) []string {
	counts := make(map[string]int)
	var order []string

	for _, s := range sentences {
		tokens := strings.FieldsFunc(s, func(r rune) bool {
			return r == ',' || r == '，' || r == '、' || r == '·' || unicode.IsSpace(r)
		})
		for _, tok := range tokens {
			length := utf8.RuneCountInString(tok)
			if length < 2 || length > 12 {
				continue
			}
			if _, seen := counts[tok]; !seen {
				order = append(order, tok)
			}
			counts[tok]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}
	return order
}

func buildSummary(sentences []string, attachments []note.Attachment) string {
	lead := sentences
	if len(lead) > 2 {
		lead = lead[:2]
	}
	summary := strings.Join(lead, "\n")
	if len(attachments) > 0 {
		line := fmt.Sprintf("Includes %d attached material(s).", len(attachments))
		if summary == "" {
			return line
		}
		summary += "\n" + line
	}
	return summary
}

// firstRunes returns the first n runes of s.
func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
