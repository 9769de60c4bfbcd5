package aiassist

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mkabeya/ratiba/core/course"
	"github.com/mkabeya/ratiba/core/note"
)

func TestStructureNotesEmptyInput(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "whitespace only", text: "  \n\t  \n"},
		{name: "fragments below minimum", text: "ab. cd. 你好."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins := StructureNotes(tt.text, nil, nil)
			if ins.Summary != "" {
				t.Errorf("Summary = %q, want empty", ins.Summary)
			}
			if len(ins.Outline) != 0 {
				t.Errorf("Outline has %d sections, want 0", len(ins.Outline))
			}
			if len(ins.KeyPoints) != 0 {
				t.Errorf("KeyPoints has %d entries, want 0", len(ins.KeyPoints))
			}
			if len(ins.MindMapBranches) != 0 {
				t.Errorf("MindMapBranches has %d branches, want 0", len(ins.MindMapBranches))
			}
		})
	}
}

func TestStructureNotesSignalProcessingExample(t *testing.T) {
	text := "傅里叶变换是信号处理的核心工具。它将时域信号转换为频域表示。"
	ins := StructureNotes(text, nil, nil)

	if got := len(ins.KeyPoints); got > 2 {
		t.Errorf("KeyPoints has %d entries, want at most 2", got)
	}
	if len(ins.KeyPoints) == 2 {
		// longest sentence first
		if ins.KeyPoints[0] != "傅里叶变换是信号处理的核心工具" {
			t.Errorf("KeyPoints[0] = %q, want the longer sentence", ins.KeyPoints[0])
		}
	}

	var found bool
	for _, link := range ins.ChapterLinks {
		if link.CourseName == "信号与系统" && link.ChapterLabel == "第4章 傅里叶变换" {
			found = true
		}
	}
	if !found {
		t.Errorf("ChapterLinks = %v, want 信号与系统/第4章 傅里叶变换 entry", ins.ChapterLinks)
	}

	if got := len(ins.Outline); got != 2 {
		t.Errorf("Outline has %d sections, want 2", got)
	}
	if !strings.HasPrefix(ins.Outline[0].Title, "Topic 1: ") {
		t.Errorf("Outline[0].Title = %q, want Topic 1 prefix", ins.Outline[0].Title)
	}
}

func TestStructureNotesOutlineChunking(t *testing.T) {
	tests := []struct {
		name         string
		numSentences int
		wantSections int
		wantLastLen  int
	}{
		{name: "one sentence", numSentences: 1, wantSections: 1, wantLastLen: 1},
		{name: "four sentences", numSentences: 4, wantSections: 4, wantLastLen: 1},
		{name: "eight sentences", numSentences: 8, wantSections: 4, wantLastLen: 2},
		{name: "nine sentences, last chunk absorbs remainder", numSentences: 9, wantSections: 4, wantLastLen: 3},
		{name: "twenty sentences, bullets capped", numSentences: 20, wantSections: 4, wantLastLen: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			for i := 0; i < tt.numSentences; i++ {
				b.WriteString("this is sentence number ")
				b.WriteByte(byte('a' + i))
				b.WriteString(". ")
			}
			ins := StructureNotes(b.String(), nil, nil)

			if got := len(ins.Outline); got != tt.wantSections {
				t.Fatalf("Outline has %d sections, want %d", got, tt.wantSections)
			}
			last := ins.Outline[len(ins.Outline)-1]
			if got := len(last.BulletPoints); got != tt.wantLastLen {
				t.Errorf("last section has %d bullets, want %d", got, tt.wantLastLen)
			}
			for i, sec := range ins.Outline {
				if len(sec.BulletPoints) == 0 {
					t.Errorf("section %d has no bullets", i)
				}
				if len(sec.BulletPoints) > 4 {
					t.Errorf("section %d has %d bullets, want at most 4", i, len(sec.BulletPoints))
				}
			}
		})
	}
}

func TestStructureNotesKeyPointOrdering(t *testing.T) {
	text := "short one here. a significantly longer sentence that should come first. medium sentence in the middle."
	ins := StructureNotes(text, nil, nil)

	for i := 1; i < len(ins.KeyPoints); i++ {
		prev := utf8.RuneCountInString(ins.KeyPoints[i-1])
		curr := utf8.RuneCountInString(ins.KeyPoints[i])
		if prev < curr {
			t.Errorf("KeyPoints not sorted by descending length: %q (%d) before %q (%d)",
				ins.KeyPoints[i-1], prev, ins.KeyPoints[i], curr)
		}
	}
}

func TestStructureNotesMindMapBranches(t *testing.T) {
	text := "algebra matters, algebra wins, calculus follows. algebra rules the exam, calculus too."
	attachments := []note.Attachment{
		{Kind: note.AttachmentImage, Name: "whiteboard.jpg"},
		{Kind: note.AttachmentAudio, Name: "lecture.m4a"},
	}
	ins := StructureNotes(text, attachments, nil)

	if got := len(ins.MindMapBranches); got != 3 {
		t.Fatalf("MindMapBranches has %d branches, want 3", got)
	}
	// fixed branch order: concepts, attachments, actions
	if ins.MindMapBranches[0].Title != "Core concepts" {
		t.Errorf("branch 0 = %q, want Core concepts", ins.MindMapBranches[0].Title)
	}
	if ins.MindMapBranches[0].Nodes[0] != "algebra" {
		t.Errorf("top concept = %q, want algebra (most frequent)", ins.MindMapBranches[0].Nodes[0])
	}
	if ins.MindMapBranches[1].Title != "Attached materials" {
		t.Errorf("branch 1 = %q, want Attached materials", ins.MindMapBranches[1].Title)
	}
	if got := ins.MindMapBranches[1].Nodes[0]; got != "[image] whiteboard.jpg" {
		t.Errorf("attachment node = %q, want tagged label", got)
	}
	if ins.MindMapBranches[2].Title != "Suggested review actions" {
		t.Errorf("branch 2 = %q, want Suggested review actions", ins.MindMapBranches[2].Title)
	}
	if got := len(ins.MindMapBranches[2].Nodes); got != 4 {
		t.Errorf("review actions branch has %d nodes, want 4", got)
	}

	// concept branch omitted when no token qualifies
	ins = StructureNotes("傅里叶变换是信号处理的核心工具。", nil, nil)
	for _, br := range ins.MindMapBranches {
		if br.Title == "Core concepts" {
			t.Errorf("Core concepts branch present with no qualifying tokens: %v", br.Nodes)
		}
	}
}

func TestStructureNotesSummary(t *testing.T) {
	text := "first sentence of the note. second sentence of the note. third sentence is ignored."
	atts := []note.Attachment{{Kind: note.AttachmentText, Name: "syllabus.txt"}}

	ins := StructureNotes(text, nil, nil)
	wantPlain := "first sentence of the note\nsecond sentence of the note"
	if ins.Summary != wantPlain {
		t.Errorf("Summary = %q, want %q", ins.Summary, wantPlain)
	}

	ins = StructureNotes(text, atts, nil)
	if !strings.HasSuffix(ins.Summary, "Includes 1 attached material(s).") {
		t.Errorf("Summary = %q, want attachment count line appended", ins.Summary)
	}
}

func TestStructureNotesCourseHighlights(t *testing.T) {
	courses := []course.Course{
		{ID: "c1", Name: "信号与系统", Weekday: 1},
		{ID: "c2", Name: "操作系统原理", Weekday: 2},
	}
	text := "今天复习了信号与系统的内容，重点是采样定理。"
	ins := StructureNotes(text, nil, courses)

	var highlights int
	for _, link := range ins.ChapterLinks {
		if link.ChapterLabel == "lecture highlight" {
			highlights++
			if link.CourseName != "信号与系统" {
				t.Errorf("highlight course = %q, want 信号与系统", link.CourseName)
			}
		}
	}
	if highlights != 1 {
		t.Errorf("got %d lecture highlights, want 1", highlights)
	}

	// no duplicate (course, chapter) pairs
	seen := make(map[[2]string]bool)
	for _, link := range ins.ChapterLinks {
		key := [2]string{link.CourseName, link.ChapterLabel}
		if seen[key] {
			t.Errorf("duplicate chapter link %v", key)
		}
		seen[key] = true
	}
}
