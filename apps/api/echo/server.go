package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/mkabeya/ratiba/core"
	"github.com/mkabeya/ratiba/core/aiassist"
	"github.com/mkabeya/ratiba/core/assignment"
	"github.com/mkabeya/ratiba/core/course"
	"github.com/mkabeya/ratiba/core/group"
	"github.com/mkabeya/ratiba/core/note"
	"github.com/mkabeya/ratiba/core/user"
)

type (
	Options struct {
		Addr           string
		DisableReqLogs bool
		SignalShutdown func()

		Logger        core.Logger
		UserSvc       *user.Service
		CourseSvc     *course.Service
		AssignmentSvc *assignment.Service
		GroupSvc      *group.Service
		NoteSvc       *note.Service
		AssistSvc     *aiassist.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	if opts.SignalShutdown == nil {
		opts.SignalShutdown = func() {}
	}
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.SignalShutdown)
	s.app.Debug = core.Conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerUserAPI(v1, jwt, s.opts.UserSvc)
	registerCourseAPI(v1, jwt, s.opts.CourseSvc)
	registerAssignmentAPI(v1, jwt, s.opts.AssignmentSvc)
	registerGroupAPI(v1, jwt, s.opts.GroupSvc, s.opts.UserSvc)
	registerNoteAPI(v1, jwt, s.opts.NoteSvc, s.opts.CourseSvc, s.opts.AssistSvc)
	registerAssistAPI(v1, jwt, s.opts.CourseSvc, s.opts.AssignmentSvc, s.opts.GroupSvc, s.opts.AssistSvc)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Addr))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Ratiba API!")
}
