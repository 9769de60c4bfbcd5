package tests

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/mkabeya/ratiba/apps/api/echo"
	"github.com/mkabeya/ratiba/core"
	"github.com/mkabeya/ratiba/core/aiassist"
	"github.com/mkabeya/ratiba/core/assignment"
	"github.com/mkabeya/ratiba/core/course"
	"github.com/mkabeya/ratiba/core/group"
	"github.com/mkabeya/ratiba/core/note"
	"github.com/mkabeya/ratiba/core/user"
	"github.com/mkabeya/ratiba/services/email"
	"github.com/mkabeya/ratiba/services/logger"
	"github.com/mkabeya/ratiba/storage/database/dummy"
)

var (
	usrRepo    user.Repository
	courseRepo course.Repository
	asgRepo    assignment.Repository
	grpRepo    group.Repository
	noteRepo   note.Repository

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
)

// setup builds a Server on fresh in-memory repos. The package repo vars are
// rebound on every call so each test starts from a clean slate.
func setup(t *testing.T, completionSvc ...core.CompletionService) Server {
	t.Helper()

	core.Conf.Debug = false
	core.Conf.TestMode = true

	// set up DB & repos
	db := dummydb.Open()
	usrRepo = dummydb.NewUserRepository(db)
	courseRepo = dummydb.NewCourseRepository(db)
	asgRepo = dummydb.NewAssignmentRepository(db)
	grpRepo = dummydb.NewGroupRepository(db)
	noteRepo = dummydb.NewNoteRepository(db)

	// set up services
	logSvc := logsvc.NewConsoleLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags))
	mailSvc := emailsvc.NewConsoleService()

	var complSvc core.CompletionService // heuristics only by default
	if len(completionSvc) > 0 {
		complSvc = completionSvc[0]
	}

	// set up server
	return NewServer(
		&Options{
			DisableReqLogs: true,
			Logger:         logSvc,
			UserSvc:        user.NewService(usrRepo, mailSvc),
			CourseSvc:      course.NewService(courseRepo),
			AssignmentSvc:  assignment.NewService(asgRepo),
			GroupSvc:       group.NewService(grpRepo),
			NoteSvc:        note.NewService(noteRepo),
			AssistSvc:      aiassist.NewService(complSvc, logSvc),
		},
	)
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	claims := GetUserClaims(usr)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func fieldErrs(t *testing.T, errs map[string]string) []byte {
	return marchallObj(t, errs)
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
