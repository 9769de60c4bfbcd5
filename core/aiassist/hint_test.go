package aiassist

import (
	"strings"
	"testing"
	"time"

	"github.com/mkabeya/ratiba/core/group"
)

func TestGenerateAssignmentHint(t *testing.T) {
	question := "求卷积 convolution 的频域表示"
	hint := GenerateAssignmentHint(question, nil, nil, nil)

	if len(hint.Concepts) == 0 || len(hint.Concepts) != len(hint.Formulas) {
		t.Fatalf("Concepts = %v, Formulas = %v, want one pair per keyword", hint.Concepts, hint.Formulas)
	}
	for i, c := range hint.Concepts {
		if !strings.HasPrefix(c, "background on ") {
			t.Errorf("Concepts[%d] = %q", i, c)
		}
		if !strings.HasPrefix(hint.Formulas[i], "formula related to ") {
			t.Errorf("Formulas[%d] = %q", i, hint.Formulas[i])
		}
	}

	if len(hint.Steps) != 4 {
		t.Errorf("Steps has %d entries, want the fixed checklist of 4", len(hint.Steps))
	}
	if len(hint.Chapters) != 1 || hint.Chapters[0].ChapterLabel != "第2章 线性时不变系统" {
		t.Errorf("Chapters = %+v, want the convolution chapter once", hint.Chapters)
	}
	if len(hint.Discussions) != 0 {
		t.Errorf("Discussions = %v, want empty without messages", hint.Discussions)
	}
}

func TestGenerateAssignmentHintDiscussions(t *testing.T) {
	at := time.Date(2026, 3, 2, 19, 45, 0, 0, time.Local)
	long := strings.Repeat("卷积的性质很重要", 10) // 80 runes
	msgs := []group.Message{
		{ID: "m1", Content: "先画系统框图再求卷积", CreatedAt: at},
		{ID: "m2", Content: long, CreatedAt: at},
		{ID: "m3", Content: "third", CreatedAt: at},
		{ID: "m4", Content: "fourth is dropped", CreatedAt: at},
	}
	hint := GenerateAssignmentHint("卷积", nil, nil, msgs)

	if len(hint.Discussions) != 3 {
		t.Fatalf("Discussions has %d entries, want capped at 3", len(hint.Discussions))
	}
	if want := "先画系统框图再求卷积 · 03-02 19:45"; hint.Discussions[0] != want {
		t.Errorf("Discussions[0] = %q, want %q", hint.Discussions[0], want)
	}
	if got := []rune(hint.Discussions[1]); len(got) > 60+len([]rune(" · 03-02 19:45")) {
		t.Errorf("Discussions[1] not truncated to 60 runes: %q", hint.Discussions[1])
	}
}

func TestFilterRelevantMessages(t *testing.T) {
	msgs := []group.Message{
		{ID: "m1", Content: "先画系统框图再求卷积"},
		{ID: "m2", Content: "anyone up for lunch?"},
		{ID: "m3", Content: "那道题的频域表示我用了傅里叶"},
	}

	relevant := FilterRelevantMessages("求卷积 的频域表示", msgs)
	if len(relevant) != 2 {
		t.Fatalf("FilterRelevantMessages() kept %d messages, want 2", len(relevant))
	}
	if relevant[0].ID != "m1" || relevant[1].ID != "m3" {
		t.Errorf("kept = [%s %s], want original order [m1 m3]", relevant[0].ID, relevant[1].ID)
	}

	if got := FilterRelevantMessages("", msgs); got != nil {
		t.Errorf("FilterRelevantMessages(\"\") = %v, want nil", got)
	}
	if got := FilterRelevantMessages("矩阵的特征值", msgs); len(got) != 0 {
		t.Errorf("FilterRelevantMessages() kept %d off-topic messages, want 0", len(got))
	}
}

func TestFilterRelevantMessagesCaseInsensitive(t *testing.T) {
	msgs := []group.Message{{ID: "m1", Content: "The Fourier transform maps to the frequency domain"}}
	if got := FilterRelevantMessages("fourier 变换", msgs); len(got) != 1 {
		t.Errorf("FilterRelevantMessages() kept %d messages, want 1", len(got))
	}
}

func TestGenerateAssignmentHintEmptyQuestion(t *testing.T) {
	hint := GenerateAssignmentHint("", nil, nil, nil)
	if len(hint.Concepts) != 0 || len(hint.Formulas) != 0 {
		t.Errorf("Concepts = %v, Formulas = %v, want empty", hint.Concepts, hint.Formulas)
	}
	if len(hint.Steps) != 4 {
		t.Errorf("Steps has %d entries, the checklist is unconditional", len(hint.Steps))
	}
	if len(hint.Chapters) != 0 {
		t.Errorf("Chapters = %v, want empty", hint.Chapters)
	}
}
