package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/crib-match-backend/internal/model"
	"github.com/shinyyama/crib-match-backend/internal/service"
)

type MatchHandler struct {
	svc service.MatchService
}

func NewMatchHandler(svc service.MatchService) *MatchHandler {
	return &MatchHandler{svc: svc}
}

// Run regenerates the whole match set.
func (h *MatchHandler) Run(c echo.Context) error {
	run, err := h.svc.Run(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, functionResult{Success: false, Error: err.Error()})
	}
	return c.JSON(http.StatusOK, functionResult{
		Success: true,
		Message: fmt.Sprintf("Successfully generated %d matches", len(run.Matches)),
	})
}

type rawMatchesResponse struct {
	Data []model.Match `json:"data"`
}

func (h *MatchHandler) Raw(c echo.Context) error {
	list, err := h.svc.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, functionError{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, rawMatchesResponse{Data: list})
}

func (h *MatchHandler) Mine(c echo.Context) error {
	uid := callerUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	list, err := h.svc.ListForUser(c.Request().Context(), uid)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
