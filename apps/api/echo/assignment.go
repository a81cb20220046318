package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/assignment"
)

type assignmentApi struct {
	svc *assignment.Service
}

func registerAssignmentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *assignment.Service) {
	api := assignmentApi{svc: svc}

	ag := g.Group("/assignments", jwt, adminMiddleware())
	ag.POST("", api.create)
	ag.GET("", api.query)

	eg := g.Group("/enrollments", jwt, adminMiddleware())
	eg.POST("", api.enroll)

	g.GET("/students/me/class", api.myClass, jwt, studentMiddleware())
	g.GET("/teachers/me/students", api.myStudents, jwt, teacherMiddleware())
}

// Handlers

func (api *assignmentApi) create(ctx echo.Context) error {
	var data assignment.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	ta, err := api.svc.AssignTeacher(ctx.Request().Context(), data)
	if err != nil {
		switch errors.Cause(err) {
		case assignment.ErrDuplicateAssignment, assignment.ErrInvalidReference:
			return core.NewValidationError(errors.Cause(err))
		}
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusCreated, ta)
}

func (api *assignmentApi) query(ctx echo.Context) error {
	infos, err := api.svc.QueryAssignments(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	if infos == nil {
		infos = []assignment.AssignmentInfo{}
	}
	return ctx.JSON(http.StatusOK, infos)
}

func (api *assignmentApi) enroll(ctx echo.Context) error {
	var data assignment.NewEnrollment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEnrollment")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	se, err := api.svc.EnrollStudent(ctx.Request().Context(), data)
	if err != nil {
		switch errors.Cause(err) {
		case assignment.ErrAlreadyEnrolled, assignment.ErrInvalidReference:
			return core.NewValidationError(errors.Cause(err))
		}
		return errors.Wrap(err, "enrolling student")
	}
	return ctx.JSON(http.StatusCreated, se)
}

func (api *assignmentApi) myClass(ctx echo.Context) error {
	summary, err := api.svc.StudentClass(ctx.Request().Context(), getPrincipal(ctx).ID)
	if err != nil {
		if errors.Cause(err) == assignment.ErrNotEnrolled {
			return echo.NewHTTPError(http.StatusNotFound, assignment.ErrNotEnrolled.Error())
		}
		return errors.Wrap(err, "finding student class")
	}
	return ctx.JSON(http.StatusOK, summary)
}

func (api *assignmentApi) myStudents(ctx echo.Context) error {
	students, err := api.svc.TaughtStudents(ctx.Request().Context(), getPrincipal(ctx).ID)
	if err != nil {
		return errors.Wrap(err, "querying taught students")
	}
	if students == nil {
		students = []assignment.TaughtStudent{}
	}
	return ctx.JSON(http.StatusOK, students)
}
