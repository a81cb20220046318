package main

import (
	"log"
	"os"

	echoapi "github.com/trezcool/shule/apps/api/echo"
	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/academic"
	"github.com/trezcool/shule/core/assignment"
	"github.com/trezcool/shule/core/attendance"
	"github.com/trezcool/shule/core/user"
	emailsvc "github.com/trezcool/shule/services/email"
	logsvc "github.com/trezcool/shule/services/logger"
	"github.com/trezcool/shule/storage/database"
	pgrepos "github.com/trezcool/shule/storage/database/postgres"
)

func main() {
	logger := logsvc.NewRollbarLogger(log.New(os.Stdout, "API : ", log.LstdFlags|log.Lshortfile), core.Conf)
	logger.Enable(!(core.Conf.Debug || core.Conf.TestMode))

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

	usrRepo := pgrepos.NewUserRepository(db)
	catalogRepo := pgrepos.NewAcademicRepository(db)
	asnRepo := pgrepos.NewAssignmentRepository(db)

	usrSvc := user.NewService(usrRepo, mailSvc)
	academicSvc := academic.NewService(catalogRepo)
	assignmentSvc := assignment.NewService(asnRepo, usrRepo, catalogRepo)
	attendanceSvc := attendance.NewService(pgrepos.NewAttendanceRepository(db), asnRepo)

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Address:       core.Conf.Server.Address(),
			Logger:        logger,
			UserSvc:       usrSvc,
			AcademicSvc:   academicSvc,
			AssignmentSvc: assignmentSvc,
			AttendanceSvc: attendanceSvc,
		},
	)
	app.Start()
}
