package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/expensave/expensave-backend/internal/apperrors"
	"github.com/expensave/expensave-backend/internal/application/services"
	"github.com/expensave/expensave-backend/internal/domain/entities"
	"github.com/expensave/expensave-backend/internal/domain/repositories"
)

const dateLayout = "2006-01-02"

type addCategoryRequest struct {
	Name            string `json:"name"`
	TransactionType string `json:"transactionType"`
}

type addTransactionRequest struct {
	TransactionDate string   `json:"transactionDate"`
	Name            string   `json:"name"`
	Amount          float64  `json:"amount"`
	Description     string   `json:"description"`
	Categories      []string `json:"categories"`
}

func (h *Handler) AddCategory(c echo.Context) error {
	var req addCategoryRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, apperrors.NewValidation("request body is malformed"))
	}

	category, err := h.categories.Create(c.Request().Context(), currentUserID(c), req.Name, entities.TransactionType(req.TransactionType))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]*entities.Category{"category": category})
}

func (h *Handler) GetCategories(c echo.Context) error {
	categories, err := h.categories.List(c.Request().Context(), currentUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *Handler) AddTransaction(c echo.Context) error {
	var req addTransactionRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, apperrors.NewValidation("request body is malformed"))
	}

	date, err := parseDate(req.TransactionDate)
	if err != nil {
		return writeError(c, err)
	}

	categoryIDs := make([]uuid.UUID, 0, len(req.Categories))
	for _, raw := range req.Categories {
		id, err := uuid.Parse(raw)
		if err != nil {
			return writeError(c, apperrors.NewValidation("categories must be valid ids"))
		}
		categoryIDs = append(categoryIDs, id)
	}

	transaction, err := h.transactions.Create(c.Request().Context(), currentUserID(c), services.TransactionInput{
		Date:        date,
		Name:        req.Name,
		Amount:      req.Amount,
		Description: req.Description,
		CategoryIDs: categoryIDs,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]*entities.Transaction{"transaction": transaction})
}

func (h *Handler) GetTransactions(c echo.Context) error {
	filter := repositories.TransactionFilter{
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
	}

	if from := c.QueryParam("from"); from != "" {
		t, err := parseDate(from)
		if err != nil {
			return writeError(c, err)
		}
		filter.From = t
	}
	if to := c.QueryParam("to"); to != "" {
		t, err := parseDate(to)
		if err != nil {
			return writeError(c, err)
		}
		filter.To = t
	}

	transactions, err := h.transactions.List(c.Request().Context(), currentUserID(c), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, transactions)
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, apperrors.NewValidation("date is required")
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02 15:04", value); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.NewValidation("date must be YYYY-MM-DD or RFC3339")
	}
	return t, nil
}
