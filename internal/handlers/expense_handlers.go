package handlers

import (
	"net/http"
	"time"

	"labdesk/internal/common"
	"labdesk/internal/models"
	"labdesk/internal/services"

	"github.com/labstack/echo/v4"
)

// ExpenseHandlers handles HTTP requests for the expense ledger
type ExpenseHandlers struct {
	expenseService services.ExpenseServiceInterface
}

// NewExpenseHandlers creates a new expense handlers instance
func NewExpenseHandlers(expenseService services.ExpenseServiceInterface) *ExpenseHandlers {
	return &ExpenseHandlers{expenseService: expenseService}
}

// CreateExpense handles POST /expenses
func (h *ExpenseHandlers) CreateExpense(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Category      string  `json:"category"`
		SubCategory   string  `json:"sub_category"`
		Description   string  `json:"description"`
		Amount        float64 `json:"amount"`
		PaymentMode   string  `json:"payment_mode"`
		Status        string  `json:"status"`
		Vendor        *string `json:"vendor"`
		InvoiceNumber *string `json:"invoice_number"`
		Date          string  `json:"date"`
		Remarks       *string `json:"remarks"`
	}

	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		return common.SendValidationError(c, "date", "must be a valid date (YYYY-MM-DD)")
	}

	enteredBy, ok := common.GetUserNameFromContext(ctx)
	if !ok || enteredBy == "" {
		return common.SendUnauthorizedError(c)
	}

	expense := &models.Expense{
		Category:      req.Category,
		SubCategory:   req.SubCategory,
		Description:   req.Description,
		Amount:        req.Amount,
		PaymentMode:   req.PaymentMode,
		Status:        req.Status,
		Vendor:        req.Vendor,
		InvoiceNumber: req.InvoiceNumber,
		Date:          date,
		Remarks:       req.Remarks,
		EnteredBy:     enteredBy,
	}

	if err := h.expenseService.CreateExpense(ctx, expense); err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(http.StatusCreated, expense)
}

// ListExpenses handles GET /expenses
func (h *ExpenseHandlers) ListExpenses(c echo.Context) error {
	ctx := c.Request().Context()

	expenses, err := h.expenseService.ListExpenses(ctx)
	if err != nil {
		return common.RespondError(c, err)
	}
	if expenses == nil {
		expenses = []*models.Expense{}
	}

	return c.JSON(http.StatusOK, expenses)
}

// DeleteExpense handles DELETE /expenses/:id
func (h *ExpenseHandlers) DeleteExpense(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}

	if err := h.expenseService.DeleteExpense(ctx, id); err != nil {
		return common.RespondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ExpenseDashboard handles GET /expenses/dashboard
func (h *ExpenseHandlers) ExpenseDashboard(c echo.Context) error {
	ctx := c.Request().Context()

	dashboard, err := h.expenseService.Dashboard(ctx, time.Now())
	if err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, dashboard)
}
