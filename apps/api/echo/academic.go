package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/academic"
)

type academicApi struct {
	svc *academic.Service
}

func registerAcademicAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *academic.Service) {
	api := academicApi{svc: svc}

	cg := g.Group("/classes", jwt, adminMiddleware())
	cg.POST("", api.createClass)
	cg.GET("", api.queryClasses)
	cg.GET("/:id/subjects", api.queryClassSubjects)
	cg.POST("/:id/deactivate", api.deactivateClass)

	sg := g.Group("/subjects", jwt, adminMiddleware())
	sg.POST("", api.createSubject)
	sg.GET("", api.querySubjects)
	sg.POST("/:id/deactivate", api.deactivateSubject)
}

// Handlers

func (api *academicApi) createClass(ctx echo.Context) error {
	var data academic.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	class, err := api.svc.AddClass(ctx.Request().Context(), data)
	if err != nil {
		if errors.Cause(err) == academic.ErrClassExists {
			return core.NewValidationError(err, core.FieldError{Field: "name", Error: err.Error()})
		}
		return errors.Wrap(err, "creating class")
	}
	return ctx.JSON(http.StatusCreated, class)
}

func (api *academicApi) queryClasses(ctx echo.Context) error {
	classes, err := api.svc.QueryActiveClasses(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	if classes == nil {
		classes = []academic.Class{}
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *academicApi) queryClassSubjects(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}

	subjects, err := api.svc.QueryActiveSubjects(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "querying class subjects")
	}
	if subjects == nil {
		subjects = []academic.SubjectInfo{}
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *academicApi) deactivateClass(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}

	class, err := api.svc.DeactivateClass(ctx.Request().Context(), id)
	if err != nil {
		if errors.Cause(err) == academic.ErrClassNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deactivating class")
	}
	return ctx.JSON(http.StatusOK, class)
}

func (api *academicApi) createSubject(ctx echo.Context) error {
	var data academic.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	subject, err := api.svc.AddSubject(ctx.Request().Context(), data)
	if err != nil {
		switch errors.Cause(err) {
		case academic.ErrSubjectExists:
			return core.NewValidationError(err, core.FieldError{Field: "name", Error: err.Error()})
		case academic.ErrClassNotFound:
			return core.NewValidationError(err, core.FieldError{Field: "class_id", Error: err.Error()})
		}
		return errors.Wrap(err, "creating subject")
	}
	return ctx.JSON(http.StatusCreated, subject)
}

func (api *academicApi) querySubjects(ctx echo.Context) error {
	subjects, err := api.svc.QueryActiveSubjects(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying subjects")
	}
	if subjects == nil {
		subjects = []academic.SubjectInfo{}
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *academicApi) deactivateSubject(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}

	subject, err := api.svc.DeactivateSubject(ctx.Request().Context(), id)
	if err != nil {
		if errors.Cause(err) == academic.ErrSubjectNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deactivating subject")
	}
	return ctx.JSON(http.StatusOK, subject)
}
