package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"journal-go/internal/analytics"
	"journal-go/internal/model"
)

type writeRequest struct {
	Content string `json:"content" validate:"required,max=20000"`
}

type writingHelpRequest struct {
	CurrentContent string `json:"current_content" validate:"max=20000"`
}

type trendsQuery struct {
	Window int `query:"window" validate:"omitempty,min=1,max=3650"`
}

type tagsQuery struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

type calendarResponse struct {
	Today model.Date            `json:"today"`
	Weeks [][]analytics.DayCell `json:"weeks"`
}

type reflectionResponse struct {
	ReflectionPrompt string `json:"reflection_prompt"`
}

type writingHelpResponse struct {
	WritingStarter string `json:"writing_starter"`
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listEntries(c echo.Context) error {
	entries, err := s.svc.Entries(c.Request().Context(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

func (s *Server) todayEntry(c echo.Context) error {
	entry, err := s.svc.TodayEntry(c.Request().Context(), userID(c))
	if err != nil {
		return err
	}
	if entry == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no entry written today")
	}
	return c.JSON(http.StatusOK, entry)
}

func (s *Server) entryForDate(c echo.Context) error {
	date, err := model.ParseDate(c.Param("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	entry, err := s.svc.EntryForDate(c.Request().Context(), userID(c), date)
	if err != nil {
		return err
	}
	if entry == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no entry for "+date.String())
	}
	return c.JSON(http.StatusOK, entry)
}

func (s *Server) writeEntry(c echo.Context) error {
	var req writeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	entry, created, err := s.svc.WriteToday(c.Request().Context(), userID(c), req.Content)
	if err != nil {
		return err
	}
	s.metrics.RecordWrite(created)

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, entry)
}

func (s *Server) trends(c echo.Context) error {
	var q trendsQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "window must be a number")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}
	if q.Window == 0 {
		q.Window = s.opts.DefaultWindowDays
	}

	summary, err := s.svc.Trends(c.Request().Context(), userID(c), q.Window)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

func (s *Server) calendar(c echo.Context) error {
	grid, err := s.svc.Calendar(c.Request().Context(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, calendarResponse{Today: s.svc.Today(), Weeks: grid})
}

func (s *Server) tags(c echo.Context) error {
	var q tagsQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "limit must be a number")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	tags, err := s.svc.CommonTags(c.Request().Context(), userID(c), q.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tags)
}

func (s *Server) reflectionPrompt(c echo.Context) error {
	prompt, err := s.svc.Reflect(c.Request().Context(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reflectionResponse{ReflectionPrompt: prompt})
}

func (s *Server) writingHelp(c echo.Context) error {
	var req writingHelpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	starter, err := s.svc.WritingHelp(c.Request().Context(), req.CurrentContent)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, writingHelpResponse{WritingStarter: starter})
}
