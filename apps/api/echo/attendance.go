package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/assignment"
	"github.com/trezcool/shule/core/attendance"
)

type attendanceApi struct {
	svc *attendance.Service
}

func registerAttendanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *attendance.Service) {
	api := attendanceApi{svc: svc}

	ag := g.Group("/attendance", jwt, teacherMiddleware())
	ag.GET("", api.form)
	ag.POST("", api.submit)
}

// Handlers

func (api *attendanceApi) form(ctx echo.Context) error {
	date, err := parseDate(ctx.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	form, err := api.svc.PrepareForm(ctx.Request().Context(), getPrincipal(ctx).ID, date)
	if err != nil {
		if errors.Cause(err) == assignment.ErrNoAssignment {
			return echo.NewHTTPError(http.StatusNotFound, assignment.ErrNoAssignment.Error())
		}
		return errors.Wrap(err, "preparing attendance form")
	}
	return ctx.JSON(http.StatusOK, form)
}

func (api *attendanceApi) submit(ctx echo.Context) error {
	var data SubmitAttendanceRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SubmitAttendanceRequest")
	}
	date, err := parseDate(data.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	err = api.svc.Submit(ctx.Request().Context(), getPrincipal(ctx).ID, date, data.Statuses)
	if err != nil {
		if errors.Cause(err) == assignment.ErrNoAssignment {
			return echo.NewHTTPError(http.StatusNotFound, assignment.ErrNoAssignment.Error())
		}
		return errors.Wrap(err, "submitting attendance")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Attendance marked successfully."})
}

type SubmitAttendanceRequest struct {
	Date     string         `json:"date"`
	Statuses map[int]string `json:"statuses"` // studentID -> status
}

// parseDate reads a YYYY-MM-DD date, defaulting to today.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse("2006-01-02", s)
}
