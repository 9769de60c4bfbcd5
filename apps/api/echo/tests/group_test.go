package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/mkabeya/ratiba/core/group"
	"github.com/mkabeya/ratiba/tests"
)

func Test_groupApi_groupCreateAndJoin(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero", "hero@test.cd", "", false, true)
	other := testutil.CreateUser(t, usrRepo, "Other", "other", "other@test.cd", "", false, true)

	var created group.Group

	t.Run("create", func(t *testing.T) {
		body := marchallObj(t, group.NewGroup{Name: "Signals study night", Subject: "Signals"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/groups", getToken(t, student), body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusCreated)
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
			t.Fatalf("json.Unmarshal() failed! err %v", err)
		}
		if created.OwnerID != student.ID {
			t.Errorf("owner_id = %q; want %q", created.OwnerID, student.ID)
		}
	})

	t.Run("creator is a member", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/groups", getToken(t, student))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallList(t, created)}, rec)
	})

	t.Run("non-member sees no groups", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/groups", getToken(t, other))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallList(t, []interface{}{}...)}, rec)
	})

	t.Run("join unknown group", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/groups/lol/join", getToken(t, other))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)
	})

	t.Run("join", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/groups/"+created.ID+"/join", getToken(t, other))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusNoContent)
		}

		req, rec = newAuthRequest(http.MethodGet, "/v1/groups", getToken(t, other))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallList(t, created)}, rec)
	})
}

func Test_groupApi_groupDestroy(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero", "hero@test.cd", "", false, true)
	staff := testutil.CreateUser(t, usrRepo, "Staff", "staff", "staff@test.cd", "", true, true)

	grp := testutil.CreateGroup(t, grpRepo, student.ID, "Signals study night", "Signals")

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Staff required", token: getToken(t, student), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{name: "destroyed", token: getToken(t, staff), wantCode: http.StatusNoContent},
	}
	for _, tt := range tests {
		tt.method = http.MethodDelete
		tt.path = "/v1/groups/" + grp.ID

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusNoContent {
				if rec.Code != tt.wantCode {
					t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_groupApi_messages(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero", "hero@test.cd", "", false, true)
	outsider := testutil.CreateUser(t, usrRepo, "Out", "outsider", "out@test.cd", "", false, true)
	staff := testutil.CreateUser(t, usrRepo, "Staff", "staff", "staff@test.cd", "", true, true)

	grp := testutil.CreateGroup(t, grpRepo, student.ID, "Signals study night", "Signals")

	postPath := "/v1/groups/" + grp.ID + "/messages"

	postTests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "required fields", token: getToken(t, student), wantCode: http.StatusBadRequest,
			wantData: fieldErrs(t, map[string]string{"content": "this field is required"}),
		},
		{
			name: "members only", token: getToken(t, outsider), wantCode: http.StatusForbidden,
			body:     marchallObj(t, group.NewMessage{Content: "hey"}),
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "posted", token: getToken(t, student), wantCode: http.StatusCreated,
			body: marchallObj(t, group.NewMessage{Content: "先画系统框图再求卷积"}),
		},
	}
	for _, tt := range postTests {
		tt.method = http.MethodPost
		tt.path = postPath

		t.Run("post: "+tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusCreated {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				var respData group.Message
				if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
					t.Fatalf("json.Unmarshal() failed! err %v", err)
				}
				if respData.AuthorName != student.Name {
					t.Errorf("author_name = %q; want %q", respData.AuthorName, student.Name)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}

	// post a second message so ordering is observable
	req, rec := newAuthRequest(http.MethodPost, postPath, getToken(t, student), marchallObj(t, group.NewMessage{Content: "second"}))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("posting second message failed! code = %v", rec.Code)
	}

	queryTests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "members only", token: getToken(t, outsider), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{name: "member reads, newest first", token: getToken(t, student), wantCode: http.StatusOK},
		{name: "staff reads", token: getToken(t, staff), wantCode: http.StatusOK},
		{name: "limit", path: postPath + "?limit=1", token: getToken(t, student), wantCode: http.StatusOK, extra: 1},
	}
	for _, tt := range queryTests {
		tt.method = http.MethodGet
		if tt.path == "" {
			tt.path = postPath
		}

		t.Run("query: "+tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusOK {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				var respData []group.Message
				if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
					t.Fatalf("json.Unmarshal() failed! err %v", err)
				}
				if want, ok := tt.extra.(int); ok {
					if len(respData) != want {
						t.Fatalf("len(messages) = %d; want %d", len(respData), want)
					}
					return
				}
				if len(respData) != 2 {
					t.Fatalf("len(messages) = %d; want 2", len(respData))
				}
				if respData[0].Content != "second" {
					t.Errorf("messages[0].Content = %q; want %q", respData[0].Content, "second")
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}
