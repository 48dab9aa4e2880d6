package handlers

import (
	"fmt"
	"net/http"

	"labdesk/internal/common"
	"labdesk/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BillingHandlers handles HTTP requests for invoices
type BillingHandlers struct {
	billingService services.BillingServiceInterface
	reportService  services.ReportServiceInterface
}

// NewBillingHandlers creates a new billing handlers instance
func NewBillingHandlers(billingService services.BillingServiceInterface, reportService services.ReportServiceInterface) *BillingHandlers {
	return &BillingHandlers{
		billingService: billingService,
		reportService:  reportService,
	}
}

// CreateInvoice handles POST /invoices
func (h *BillingHandlers) CreateInvoice(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		PatientID   string   `json:"patient_id"`
		TestIDs     []string `json:"test_ids"`
		Discount    float64  `json:"discount"`
		PaidAmount  float64  `json:"paid_amount"`
		PaymentMode string   `json:"payment_mode"`
	}

	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	patientID, err := common.ValidateUUID(req.PatientID, "patient_id")
	if err != nil {
		return common.RespondError(c, err)
	}

	testIDs := make([]uuid.UUID, 0, len(req.TestIDs))
	for _, raw := range req.TestIDs {
		testID, err := common.ValidateUUID(raw, "test_ids")
		if err != nil {
			return common.RespondError(c, err)
		}
		testIDs = append(testIDs, testID)
	}

	createdBy, ok := common.GetUserNameFromContext(ctx)
	if !ok || createdBy == "" {
		return common.SendUnauthorizedError(c)
	}

	invoice, err := h.billingService.CreateInvoice(ctx, services.CreateInvoiceInput{
		PatientID:   patientID,
		TestIDs:     testIDs,
		Discount:    req.Discount,
		PaidAmount:  req.PaidAmount,
		PaymentMode: req.PaymentMode,
		CreatedBy:   createdBy,
	})
	if err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(http.StatusCreated, invoice)
}

// GetInvoice handles GET /invoices/:id
func (h *BillingHandlers) GetInvoice(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}

	invoice, err := h.billingService.GetInvoiceByID(ctx, id)
	if err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, invoice)
}

// ListInvoices handles GET /invoices
func (h *BillingHandlers) ListInvoices(c echo.Context) error {
	ctx := c.Request().Context()

	limit, offset := parsePagination(c)

	invoices, err := h.billingService.ListInvoices(ctx, limit, offset)
	if err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, invoices)
}

// DeleteInvoice handles DELETE /invoices/:id
func (h *BillingHandlers) DeleteInvoice(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}

	if err := h.billingService.DeleteInvoice(ctx, id); err != nil {
		return common.RespondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DownloadInvoicePDF handles GET /invoices/:id/pdf
func (h *BillingHandlers) DownloadInvoicePDF(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}

	invoice, err := h.billingService.GetInvoiceByID(ctx, id)
	if err != nil {
		return common.RespondError(c, err)
	}

	pdfBytes, err := h.reportService.BuildInvoicePDF(ctx, invoice)
	if err != nil {
		return common.SendServerError(c, "Failed to generate invoice PDF: "+err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.pdf"`, invoice.InvoiceNumber))
	return c.Blob(http.StatusOK, "application/pdf", pdfBytes)
}
