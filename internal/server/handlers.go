package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/riordanpawley/kanban/internal/domain"
)

func (s *Server) register() {
	e := s.echo
	e.GET("/healthz", healthz)

	api := e.Group("/api")
	api.GET("/board", s.getBoard)
	api.GET("/stats", s.getStats)
	api.GET("/export", s.getExport)
	api.POST("/reset", s.postReset)
	api.POST("/columns/:column/tasks", s.createTask)
	api.PATCH("/columns/:column/tasks/:id", s.editTask)
	api.POST("/columns/:column/tasks/:id/move", s.moveTask)
	api.DELETE("/columns/:column/tasks/:id", s.deleteTask)
}

// createRequest is the body of a new task. Priority and due date use the
// stored formats; empty means default.
type createRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Assignee    string `json:"assignee"`
	DueDate     string `json:"due_date"`
}

// editRequest carries only the fields to change
type editRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Priority     *string `json:"priority"`
	Assignee     *string `json:"assignee"`
	DueDate      *string `json:"due_date"`
	ClearDueDate bool    `json:"clear_due_date"`
}

type moveRequest struct {
	To string `json:"to"`
}

func healthz(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func (s *Server) getBoard(c echo.Context) error {
	data, err := s.svc.Export(c.Request().Context())
	if err != nil {
		return s.httpError(err)
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

func (s *Server) getStats(c echo.Context) error {
	stats, err := s.svc.Stats(c.Request().Context())
	if err != nil {
		return s.httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (s *Server) getExport(c echo.Context) error {
	data, err := s.svc.Export(c.Request().Context())
	if err != nil {
		return s.httpError(err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", s.exportName))
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

func (s *Server) postReset(c echo.Context) error {
	if ok, _ := strconv.ParseBool(c.QueryParam("confirm")); !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "reset requires confirm=true")
	}
	ctx := c.Request().Context()
	if _, err := s.svc.Reset(ctx); err != nil {
		return s.httpError(err)
	}
	data, err := s.svc.Export(ctx)
	if err != nil {
		return s.httpError(err)
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

func (s *Server) createTask(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	fields := domain.TaskFields{
		Title:       req.Title,
		Description: req.Description,
		Assignee:    req.Assignee,
	}
	if req.Priority != "" {
		p, err := domain.ParsePriority(req.Priority)
		if err != nil {
			return s.httpError(err)
		}
		fields.Priority = p
	}
	if req.DueDate != "" {
		d, err := domain.ParseDate(req.DueDate)
		if err != nil {
			return s.httpError(err)
		}
		fields.DueDate = &d
	}

	task, err := s.svc.Create(c.Request().Context(), c.Param("column"), fields)
	if err != nil {
		return s.httpError(err)
	}
	return c.JSON(http.StatusCreated, task)
}

func (s *Server) editTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	var req editRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	patch := domain.TaskPatch{
		Title:        req.Title,
		Description:  req.Description,
		Assignee:     req.Assignee,
		ClearDueDate: req.ClearDueDate,
	}
	if req.Priority != nil {
		p, err := domain.ParsePriority(*req.Priority)
		if err != nil {
			return s.httpError(err)
		}
		patch.Priority = &p
	}
	if req.DueDate != nil && strings.TrimSpace(*req.DueDate) != "" {
		d, err := domain.ParseDate(*req.DueDate)
		if err != nil {
			return s.httpError(err)
		}
		patch.DueDate = &d
	}

	task, err := s.svc.Edit(c.Request().Context(), id, c.Param("column"), patch)
	if err != nil {
		return s.httpError(err)
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) moveTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	var req moveRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.To == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "to is required")
	}

	task, err := s.svc.Move(c.Request().Context(), id, c.Param("column"), req.To)
	if err != nil {
		return s.httpError(err)
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) deleteTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	if _, err := s.svc.Delete(c.Request().Context(), id, c.Param("column")); err != nil {
		return s.httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func taskID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}
	return id, nil
}

// httpError maps domain and store errors to HTTP statuses
func (s *Server) httpError(err error) error {
	switch {
	case domain.IsValidation(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUnknownColumn):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNoAdjacentColumn):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	s.logger.Error("request failed", "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error").SetInternal(err)
}
