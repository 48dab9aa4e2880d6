package handlers

import (
	"net/http"
	"time"

	"labdesk/internal/common"
	"labdesk/internal/services"

	"github.com/labstack/echo/v4"
)

// SampleHandlers handles HTTP requests for sample tracking
type SampleHandlers struct {
	sampleService services.SampleServiceInterface
}

// NewSampleHandlers creates a new sample handlers instance
func NewSampleHandlers(sampleService services.SampleServiceInterface) *SampleHandlers {
	return &SampleHandlers{sampleService: sampleService}
}

// CollectSample handles POST /samples
func (h *SampleHandlers) CollectSample(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		PatientID   string   `json:"patient_id"`
		TestNames   []string `json:"test_names"`
		CollectedAt string   `json:"collected_at"`
	}

	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	patientID, err := common.ValidateUUID(req.PatientID, "patient_id")
	if err != nil {
		return common.RespondError(c, err)
	}

	var collectedAt time.Time
	if req.CollectedAt != "" {
		collectedAt, err = time.ParseInLocation(time.RFC3339, req.CollectedAt, time.Local)
		if err != nil {
			return common.SendValidationError(c, "collected_at", "must be an RFC 3339 timestamp")
		}
	}

	sample, err := h.sampleService.CollectSample(ctx, patientID, req.TestNames, collectedAt)
	if err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(http.StatusCreated, sample)
}

// GetSample handles GET /samples/:id
func (h *SampleHandlers) GetSample(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}

	sample, err := h.sampleService.GetSampleByID(ctx, id)
	if err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, sample)
}

// ListSamples handles GET /samples
func (h *SampleHandlers) ListSamples(c echo.Context) error {
	ctx := c.Request().Context()

	limit, offset := parsePagination(c)

	samples, err := h.sampleService.ListSamples(ctx, limit, offset)
	if err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, samples)
}

// UpdateSampleStatus handles PATCH /samples/:id/status
func (h *SampleHandlers) UpdateSampleStatus(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.sampleService.UpdateSampleStatus(ctx, id, req.Status); err != nil {
		return common.RespondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteSample handles DELETE /samples/:id
func (h *SampleHandlers) DeleteSample(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}

	if err := h.sampleService.DeleteSample(ctx, id); err != nil {
		return common.RespondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
