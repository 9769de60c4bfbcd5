package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkabeya/ratiba/apps/api/echo"
	"github.com/mkabeya/ratiba/core"
	"github.com/mkabeya/ratiba/core/aiassist"
	"github.com/mkabeya/ratiba/core/assignment"
	"github.com/mkabeya/ratiba/core/course"
	"github.com/mkabeya/ratiba/core/group"
	"github.com/mkabeya/ratiba/core/note"
	"github.com/mkabeya/ratiba/core/user"
	"github.com/mkabeya/ratiba/services/completion"
	"github.com/mkabeya/ratiba/services/email"
	"github.com/mkabeya/ratiba/services/logger"
	"github.com/mkabeya/ratiba/storage/database"
	"github.com/mkabeya/ratiba/storage/database/sqlxrepos"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	var logger core.Logger
	if core.Conf.Debug {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, core.Conf)
	}

	// set up DB
	db, err := database.Open(core.Conf)
	if err != nil {
		logger.Fatal("opening database", err)
	}
	defer func() { _ = db.Close() }()

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}
	var completionSvc core.CompletionService
	if core.Conf.Completion.Enabled() {
		completionSvc = completionsvc.NewOpenAIService(core.Conf)
	}

	usrSvc := user.NewService(sqlxrepos.NewUserRepository(db), mailSvc)
	courseSvc := course.NewService(sqlxrepos.NewCourseRepository(db))
	assignmentSvc := assignment.NewService(sqlxrepos.NewAssignmentRepository(db))
	groupSvc := group.NewService(sqlxrepos.NewGroupRepository(db))
	noteSvc := note.NewService(sqlxrepos.NewNoteRepository(db))
	assistSvc := aiassist.NewService(completionSvc, logger)

	// start API server
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	app := echoapi.NewServer(
		&echoapi.Options{
			Addr:           core.Conf.Server.Address(),
			SignalShutdown: func() { shutdown <- syscall.SIGTERM },

			Logger:        logger,
			UserSvc:       usrSvc,
			CourseSvc:     courseSvc,
			AssignmentSvc: assignmentSvc,
			GroupSvc:      groupSvc,
			NoteSvc:       noteSvc,
			AssistSvc:     assistSvc,
		},
	)
	go app.Start()

	<-shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		logger.Error("stopping server", err)
	}
}
