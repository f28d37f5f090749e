package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/crib-match-backend/internal/model"
	"github.com/shinyyama/crib-match-backend/internal/service"
)

type PreferenceHandler struct {
	svc service.PreferenceService
}

func NewPreferenceHandler(svc service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{svc: svc}
}

type renterPreferenceRequest struct {
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   float64  `json:"bathrooms"`
	Budget      int64    `json:"budget"`
	Locations   []string `json:"locations"`
	MoveInDate  string   `json:"move_in_date"`
	Preferences []string `json:"preferences"`
}

type landlordPreferenceRequest struct {
	PropertyName            string   `json:"property_name"`
	PropertyType            string   `json:"property_type"`
	Location                string   `json:"location"`
	NeighborhoodType        string   `json:"neighborhood_type"`
	NeighborhoodDescription *string  `json:"neighborhood_description"`
	BuildingFeatures        []string `json:"building_features"`
	PetsAllowed             bool     `json:"pets_allowed"`
	MinIncome               int64    `json:"min_income"`
	PreferredMoveInDate     string   `json:"preferred_move_in_date"`
	LeaseLength             string   `json:"lease_length"`
	TenantPreferences       []string `json:"tenant_preferences"`
}

func (h *PreferenceHandler) PutRenter(c echo.Context) error {
	uid := callerUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req renterPreferenceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	p := &model.RenterPreference{
		UserID:      uid,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Budget:      req.Budget,
		Locations:   req.Locations,
		MoveInDate:  req.MoveInDate,
		Preferences: req.Preferences,
	}
	if err := h.svc.SaveRenter(c.Request().Context(), p); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PreferenceHandler) PutLandlord(c echo.Context) error {
	uid := callerUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req landlordPreferenceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	p := &model.LandlordPreference{
		UserID:                  uid,
		PropertyName:            req.PropertyName,
		PropertyType:            req.PropertyType,
		Location:                req.Location,
		NeighborhoodType:        req.NeighborhoodType,
		NeighborhoodDescription: req.NeighborhoodDescription,
		BuildingFeatures:        req.BuildingFeatures,
		PetsAllowed:             req.PetsAllowed,
		MinIncome:               req.MinIncome,
		PreferredMoveInDate:     req.PreferredMoveInDate,
		LeaseLength:             req.LeaseLength,
		TenantPreferences:       req.TenantPreferences,
	}
	if err := h.svc.SaveLandlord(c.Request().Context(), p); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PreferenceHandler) GetMine(c echo.Context) error {
	uid := callerUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	prefs, err := h.svc.GetMine(c.Request().Context(), uid)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, prefs)
}
