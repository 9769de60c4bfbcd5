package aiassist

import (
	"testing"

	"github.com/pkg/errors"
)

func TestParseInsightsValidJSON(t *testing.T) {
	raw := `{
		"summary": "Fourier basics",
		"structuredOutline": [{"title": "Intro", "bulletPoints": ["time domain", "frequency domain"]}],
		"keyPoints": ["transform pairs"],
		"mindMapBranches": [{"title": "Core concepts", "nodes": ["fourier"]}],
		"chapterLinks": [{"courseName": "信号与系统", "chapterLabel": "第4章 傅里叶变换", "reason": "keyword match"}]
	}`
	ins, err := ParseInsights(raw)
	if err != nil {
		t.Fatalf("ParseInsights() error = %v", err)
	}
	if ins.Summary != "Fourier basics" {
		t.Errorf("Summary = %q", ins.Summary)
	}
	if len(ins.Outline) != 1 || ins.Outline[0].Title != "Intro" || len(ins.Outline[0].BulletPoints) != 2 {
		t.Errorf("Outline = %+v", ins.Outline)
	}
	if len(ins.ChapterLinks) != 1 || ins.ChapterLinks[0].CourseName != "信号与系统" {
		t.Errorf("ChapterLinks = %+v", ins.ChapterLinks)
	}
}

func TestParseInsightsCodeFence(t *testing.T) {
	raw := "```json\n{\"summary\": \"fenced\", \"keyPoints\": [\"a point\"]}\n```"
	ins, err := ParseInsights(raw)
	if err != nil {
		t.Fatalf("ParseInsights() error = %v", err)
	}
	if ins.Summary != "fenced" || len(ins.KeyPoints) != 1 {
		t.Errorf("got %+v", ins)
	}
}

func TestParseInsightsRepairedJSON(t *testing.T) {
	// trailing comma and single quotes, typical sloppy model output
	raw := `{'summary': 'repaired', 'keyPoints': ['one', 'two',],}`
	ins, err := ParseInsights(raw)
	if err != nil {
		t.Fatalf("ParseInsights() error = %v", err)
	}
	if ins.Summary != "repaired" {
		t.Errorf("Summary = %q, want repaired", ins.Summary)
	}
	if len(ins.KeyPoints) != 2 {
		t.Errorf("KeyPoints = %v, want 2 entries", ins.KeyPoints)
	}
}

func TestParseInsightsLineFallback(t *testing.T) {
	raw := `These notes cover the sampling theorem.
It matters for digital signal processing.
# Sampling
- Nyquist rate
- aliasing
【重建】
· 低通滤波
2、补充
- 窗函数`
	ins, err := ParseInsights(raw)
	if err != nil {
		t.Fatalf("ParseInsights() error = %v", err)
	}

	wantSummary := "These notes cover the sampling theorem.\nIt matters for digital signal processing."
	if ins.Summary != wantSummary {
		t.Errorf("Summary = %q, want leading prose lines", ins.Summary)
	}
	if len(ins.Outline) != 3 {
		t.Fatalf("Outline has %d sections, want 3", len(ins.Outline))
	}
	if ins.Outline[0].Title != "Sampling" {
		t.Errorf("Outline[0].Title = %q", ins.Outline[0].Title)
	}
	if len(ins.Outline[0].BulletPoints) != 2 || ins.Outline[0].BulletPoints[0] != "Nyquist rate" {
		t.Errorf("Outline[0].BulletPoints = %v", ins.Outline[0].BulletPoints)
	}
	if ins.Outline[1].Title != "重建" {
		t.Errorf("Outline[1].Title = %q, want 重建", ins.Outline[1].Title)
	}
	if len(ins.Outline[1].BulletPoints) != 1 || ins.Outline[1].BulletPoints[0] != "低通滤波" {
		t.Errorf("Outline[1].BulletPoints = %v", ins.Outline[1].BulletPoints)
	}
	if ins.Outline[2].Title != "补充" {
		t.Errorf("Outline[2].Title = %q, want numbered heading trimmed", ins.Outline[2].Title)
	}
}

func TestParseInsightsBulletsBeforeAnySection(t *testing.T) {
	ins, err := ParseInsights("- floating point\n- rounding error")
	if err != nil {
		t.Fatalf("ParseInsights() error = %v", err)
	}
	if len(ins.KeyPoints) != 2 || ins.KeyPoints[0] != "floating point" {
		t.Errorf("KeyPoints = %v, want orphan bullets collected", ins.KeyPoints)
	}
	if len(ins.Outline) != 0 {
		t.Errorf("Outline = %v, want empty", ins.Outline)
	}
}

func TestParseInsightsInsufficientInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "fenced empty", raw: "```\n```"},
		{name: "english boilerplate", raw: "Please provide the notes you would like me to structure."},
		{name: "chinese boilerplate", raw: "请提供需要整理的笔记内容。"},
		{name: "no content", raw: "There is no content to summarize."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseInsights(tt.raw)
			if !errors.Is(err, ErrInsufficientInput) {
				t.Errorf("ParseInsights() error = %v, want ErrInsufficientInput", err)
			}
		})
	}
}
