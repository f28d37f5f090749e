package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/crib-match-backend/internal/service"
)

const (
	actionGetTokens       = "get_tokens"
	actionAddMessageToken = "add_message_token"
	actionUnlockChat      = "unlock_chat"
	actionUseTokens       = "use_tokens"
)

type TokenHandler struct {
	svc service.TokenService
}

func NewTokenHandler(svc service.TokenService) *TokenHandler {
	return &TokenHandler{svc: svc}
}

type tokenRequest struct {
	Action     string      `json:"action"`
	UserID     string      `json:"user_id"`
	ChatID     string      `json:"chat_id"`
	PropertyID *string     `json:"property_id"`
	ProfileID  *string     `json:"profile_id"`
	Feature    string      `json:"feature"`
	Amount     json.Number `json:"amount"`
}

// Dispatch serves the chat-tokens action endpoint.
func (h *TokenHandler) Dispatch(c echo.Context) error {
	var req tokenRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return c.JSON(http.StatusInternalServerError, functionError{Error: err.Error()})
	}

	switch req.Action {
	case actionGetTokens, actionAddMessageToken, actionUnlockChat, actionUseTokens:
	default:
		return c.JSON(http.StatusBadRequest, functionError{Error: "Invalid action"})
	}

	uid, status, msg := resolveUser(callerUID(c), req.UserID)
	if status != 0 {
		return c.JSON(status, functionError{Error: msg})
	}
	ctx := c.Request().Context()

	switch req.Action {
	case actionGetTokens:
		bal, err := h.svc.Get(ctx, uid)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, functionError{Error: err.Error()})
		}
		return c.JSON(http.StatusOK, bal)

	case actionAddMessageToken:
		granted, err := h.svc.CreditMessageBonus(ctx, uid, req.ChatID)
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, functionResult{Success: false, Message: "Chat not found"})
		case errors.Is(err, service.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, functionResult{Success: false, Message: "Missing chat_id"})
		case err != nil:
			return c.JSON(http.StatusInternalServerError, functionError{Error: err.Error()})
		}
		if !granted {
			return c.JSON(http.StatusOK, functionResult{Success: false, Message: "No reply detected, token not added"})
		}
		return c.JSON(http.StatusOK, functionResult{Success: true, Message: "Token added for message"})

	case actionUnlockChat:
		if err := h.svc.CreditUnlockBonus(ctx, uid); err != nil {
			return c.JSON(http.StatusInternalServerError, functionError{Error: err.Error()})
		}
		return c.JSON(http.StatusOK, functionResult{
			Success: true,
			Message: fmt.Sprintf("Chat unlocked and %d tokens awarded", service.UnlockBonus),
		})

	default:
		amount, ok := parseAmount(req.Amount)
		if !ok || req.Feature == "" {
			return c.JSON(http.StatusBadRequest, functionResult{Success: false, Message: "Missing amount or feature"})
		}
		remaining, err := h.svc.DebitForFeature(ctx, service.DebitRequest{
			UserID:     uid,
			Feature:    req.Feature,
			Cost:       amount,
			PropertyID: req.PropertyID,
			ProfileID:  req.ProfileID,
		})
		switch {
		case errors.Is(err, service.ErrInsufficientTokens):
			return c.JSON(http.StatusBadRequest, functionResult{Success: false, Message: "Not enough tokens"})
		case errors.Is(err, service.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, functionResult{Success: false, Message: "Missing amount or feature"})
		case err != nil:
			return c.JSON(http.StatusInternalServerError, functionError{Error: err.Error()})
		}
		return c.JSON(http.StatusOK, functionResult{
			Success:         true,
			Message:         fmt.Sprintf("Feature \"%s\" unlocked for %d tokens", req.Feature, amount),
			RemainingTokens: &remaining,
		})
	}
}

// parseAmount accepts a positive whole number, given either as a JSON number or a numeric string.
func parseAmount(n json.Number) (int64, bool) {
	v, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// resolveUser picks the ledger owner. An authenticated caller may only act on their own account.
func resolveUser(authUID, bodyUID string) (string, int, string) {
	switch {
	case bodyUID == "" && authUID == "":
		return "", http.StatusBadRequest, "Missing user_id"
	case bodyUID == "":
		return authUID, 0, ""
	case authUID != "" && authUID != bodyUID:
		return "", http.StatusForbidden, "user_id does not match caller"
	default:
		return bodyUID, 0, ""
	}
}

func (h *TokenHandler) ListUnlocked(c echo.Context) error {
	uid := callerUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	if c.Param("uid") != uid {
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "can only list your own unlocks"))
	}
	list, err := h.svc.ListUnlocked(c.Request().Context(), uid)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
