package tests

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/mkabeya/ratiba/apps/api/echo"
	"github.com/mkabeya/ratiba/core/aiassist"
	"github.com/mkabeya/ratiba/core/assignment"
	"github.com/mkabeya/ratiba/tests"
)

func Test_assistApi_studyPlan(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero", "hero@test.cd", "", false, true)
	testutil.CreateCourse(t, courseRepo, student.ID, "信号与系统", 1, "08:00", "09:40")
	asg := testutil.CreateAssignment(t, asgRepo, student.ID, "Problem set 3",
		time.Now().Add(48*time.Hour).UTC(), assignment.PriorityHigh, assignment.StatusPending)

	type extra struct{ wantDays int }
	tests := []httpTest{
		{name: "Auth required", path: "/v1/assist/study-plan", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "invalid days", path: "/v1/assist/study-plan?days=lol", token: getToken(t, student),
			wantCode: http.StatusBadRequest, wantData: fieldErrs(t, map[string]string{"days": "must be an integer"}),
		},
		{name: "default week", path: "/v1/assist/study-plan", token: getToken(t, student), wantCode: http.StatusOK, extra: extra{wantDays: 7}},
		{name: "three days", path: "/v1/assist/study-plan?days=3", token: getToken(t, student), wantCode: http.StatusOK, extra: extra{wantDays: 3}},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if extra, ok := tt.extra.(extra); ok {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				var plan []aiassist.StudyPlanDay
				if err := json.Unmarshal(rec.Body.Bytes(), &plan); err != nil {
					t.Fatalf("json.Unmarshal() failed! err %v", err)
				}
				if len(plan) != extra.wantDays {
					t.Fatalf("len(plan) = %d; want %d", len(plan), extra.wantDays)
				}

				var scheduled bool
				for _, day := range plan {
					if day.FocusScore < 60 || day.FocusScore > 100 {
						t.Errorf("focus_score = %d; want 60..100", day.FocusScore)
					}
					for _, s := range day.Sessions {
						if s.AssignmentID == asg.ID {
							scheduled = true
						}
					}
				}
				if !scheduled {
					t.Error("pending assignment never scheduled")
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_assistApi_assignmentHint(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero", "hero@test.cd", "", false, true)
	testutil.CreateCourse(t, courseRepo, student.ID, "信号与系统", 1, "08:00", "09:40")

	// one on-topic and one off-topic message in the student's group
	grp := testutil.CreateGroup(t, grpRepo, student.ID, "Signals study night", "Signals")
	testutil.CreateGroupMessage(t, grpRepo, grp.ID, student.ID, student.Name, "先画系统框图再求卷积")
	testutil.CreateGroupMessage(t, grpRepo, grp.ID, student.ID, student.Name, "anyone up for lunch?")

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "required fields", token: getToken(t, student), wantCode: http.StatusBadRequest,
			wantData: fieldErrs(t, map[string]string{"question": "this field is required"}),
		},
		{
			name: "hint", token: getToken(t, student), wantCode: http.StatusOK,
			body: marchallObj(t, echoapi.AssignmentHintRequest{Question: "求卷积 convolution 的频域表示"}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/assist/assignment-hint"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusOK {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				var hint aiassist.AssignmentHint
				if err := json.Unmarshal(rec.Body.Bytes(), &hint); err != nil {
					t.Fatalf("json.Unmarshal() failed! err %v", err)
				}
				if len(hint.Steps) != 4 {
					t.Errorf("len(steps) = %d; want 4", len(hint.Steps))
				}
				if len(hint.Concepts) == 0 {
					t.Error("failed! no concepts extracted")
				}
				if len(hint.Chapters) == 0 {
					t.Error("failed! no chapter matched for 卷积")
				}
				if len(hint.Discussions) != 1 {
					t.Fatalf("len(discussions) = %d; want the one on-topic group message", len(hint.Discussions))
				}
				if !strings.HasPrefix(hint.Discussions[0], "先画系统框图再求卷积") {
					t.Errorf("discussions[0] = %q; want the 卷积 message excerpt", hint.Discussions[0])
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}
