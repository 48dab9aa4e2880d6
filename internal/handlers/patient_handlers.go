package handlers

import (
	"net/http"
	"strconv"

	"labdesk/internal/common"
	"labdesk/internal/models"
	"labdesk/internal/services"

	"github.com/labstack/echo/v4"
)

// PatientHandlers handles HTTP requests for patients
type PatientHandlers struct {
	patientService services.PatientServiceInterface
}

// NewPatientHandlers creates a new patient handlers instance
func NewPatientHandlers(patientService services.PatientServiceInterface) *PatientHandlers {
	return &PatientHandlers{patientService: patientService}
}

// CreatePatient handles POST /patients
func (h *PatientHandlers) CreatePatient(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Name       string  `json:"name"`
		Age        int     `json:"age"`
		Gender     string  `json:"gender"`
		Phone      string  `json:"phone"`
		Address    *string `json:"address"`
		ReferredBy *string `json:"referred_by"`
	}

	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	patient := &models.Patient{
		Name:       req.Name,
		Age:        req.Age,
		Gender:     req.Gender,
		Phone:      req.Phone,
		Address:    req.Address,
		ReferredBy: req.ReferredBy,
	}

	if err := h.patientService.RegisterPatient(ctx, patient); err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(http.StatusCreated, patient)
}

// GetPatient handles GET /patients/:id
func (h *PatientHandlers) GetPatient(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}

	patient, err := h.patientService.GetPatientByID(ctx, id)
	if err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, patient)
}

// ListPatients handles GET /patients
func (h *PatientHandlers) ListPatients(c echo.Context) error {
	ctx := c.Request().Context()

	limit, offset := parsePagination(c)

	if search := c.QueryParam("search"); search != "" {
		patients, err := h.patientService.SearchPatients(ctx, search, limit, offset)
		if err != nil {
			return common.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, patients)
	}

	patients, err := h.patientService.ListPatients(ctx, limit, offset)
	if err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, patients)
}

// DeletePatient handles DELETE /patients/:id
func (h *PatientHandlers) DeletePatient(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}

	if err := h.patientService.DeletePatient(ctx, id); err != nil {
		return common.RespondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func parsePagination(c echo.Context) (int, int) {
	limit := 20
	offset := 0

	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if v, err := strconv.Atoi(limitParam); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}
	if offsetParam := c.QueryParam("offset"); offsetParam != "" {
		if v, err := strconv.Atoi(offsetParam); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}
