package handlers

import (
	"net/http"

	"labdesk/internal/common"
	"labdesk/internal/models"
	"labdesk/internal/services"

	"github.com/labstack/echo/v4"
)

// TestHandlers handles HTTP requests for the test catalog
type TestHandlers struct {
	testService services.TestServiceInterface
}

// NewTestHandlers creates a new test catalog handlers instance
func NewTestHandlers(testService services.TestServiceInterface) *TestHandlers {
	return &TestHandlers{testService: testService}
}

type testRequest struct {
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Price           float64 `json:"price"`
	SampleType      string  `json:"sample_type"`
	TurnaroundHours int     `json:"turnaround_hours"`
}

// CreateTest handles POST /tests
func (h *TestHandlers) CreateTest(c echo.Context) error {
	ctx := c.Request().Context()

	var req testRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	test := &models.LabTest{
		Name:            req.Name,
		Category:        req.Category,
		Price:           req.Price,
		SampleType:      req.SampleType,
		TurnaroundHours: req.TurnaroundHours,
	}

	if err := h.testService.CreateTest(ctx, test); err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(http.StatusCreated, test)
}

// GetTest handles GET /tests/:id
func (h *TestHandlers) GetTest(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}

	test, err := h.testService.GetTestByID(ctx, id)
	if err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, test)
}

// ListTests handles GET /tests
func (h *TestHandlers) ListTests(c echo.Context) error {
	ctx := c.Request().Context()

	limit, offset := parsePagination(c)

	tests, err := h.testService.ListTests(ctx, limit, offset)
	if err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, tests)
}

// UpdateTest handles PUT /tests/:id
func (h *TestHandlers) UpdateTest(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}

	var req testRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	test := &models.LabTest{
		ID:              id,
		Name:            req.Name,
		Category:        req.Category,
		Price:           req.Price,
		SampleType:      req.SampleType,
		TurnaroundHours: req.TurnaroundHours,
	}

	if err := h.testService.UpdateTest(ctx, test); err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, test)
}

// DeleteTest handles DELETE /tests/:id
func (h *TestHandlers) DeleteTest(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}

	if err := h.testService.DeleteTest(ctx, id); err != nil {
		return common.RespondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
