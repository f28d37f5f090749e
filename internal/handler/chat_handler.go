package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/crib-match-backend/internal/service"
)

type ChatHandler struct {
	svc service.ChatService
}

func NewChatHandler(svc service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type openChatRequest struct {
	CounterpartUID string  `json:"counterpart_uid"`
	PropertyID     *string `json:"property_id"`
	ProfileID      *string `json:"profile_id"`
}

type messageRequest struct {
	Body string `json:"body"`
}

func (h *ChatHandler) Open(c echo.Context) error {
	uid := callerUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req openChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	chat, err := h.svc.Open(c.Request().Context(), service.OpenChatInput{
		CallerUID:      uid,
		CounterpartUID: req.CounterpartUID,
		PropertyID:     req.PropertyID,
		ProfileID:      req.ProfileID,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, chat)
}

func (h *ChatHandler) List(c echo.Context) error {
	uid := callerUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	chats, err := h.svc.ListByUser(c.Request().Context(), uid)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, chats)
}

func (h *ChatHandler) ListMessages(c echo.Context) error {
	uid := callerUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	msgs, err := h.svc.ListMessages(c.Request().Context(), c.Param("id"), uid)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, msgs)
}

func (h *ChatHandler) PostMessage(c echo.Context) error {
	uid := callerUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req messageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	msg, err := h.svc.PostMessage(c.Request().Context(), c.Param("id"), uid, req.Body)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, msg)
}
