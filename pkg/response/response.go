package response

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "campusmarket/pkg/errors"
)

type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorInfo  `json:"error,omitempty"`
	Timestamp string      `json:"timestamp"`
}

type ErrorInfo struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type PaginatedResponse struct {
	Items      interface{} `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// fieldLabels names form fields the way the listing form shows them.
var fieldLabels = map[string]string{
	"name":            "Title",
	"category":        "Category",
	"price":           "Price",
	"original_price":  "Original price",
	"description":     "Description",
	"meetup_location": "Pickup location",
	"recipient_id":    "Recipient",
	"text":            "Message",
	"user_id":         "User",
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func Success(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{
		Success:   true,
		Data:      data,
		Timestamp: now(),
	})
}

func Created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Response{
		Success:   true,
		Data:      data,
		Timestamp: now(),
	})
}

func Accepted(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusAccepted, Response{
		Success:   true,
		Data:      data,
		Timestamp: now(),
	})
}

func NoContent(c echo.Context) error {
	return c.JSON(http.StatusOK, Response{
		Success:   true,
		Timestamp: now(),
	})
}

func Paginated(c echo.Context, items interface{}, total int64, page, pageSize int) error {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize > 0 {
			totalPages++
		}
	}

	return c.JSON(http.StatusOK, Response{
		Success:   true,
		Timestamp: now(),
		Data: PaginatedResponse{
			Items:      items,
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
		},
	})
}

func Error(c echo.Context, err error) error {
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return handleValidationError(c, validationErr)
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.RetryAfter > 0 {
			c.Response().Header().Set("Retry-After", strconv.Itoa(int(appErr.RetryAfter.Seconds()+0.5)))
		}
		return c.JSON(appErr.Status, Response{
			Success:   false,
			Timestamp: now(),
			Error: &ErrorInfo{
				Code:    appErr.Code,
				Message: appErr.Message,
			},
		})
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return c.JSON(httpErr.Code, Response{
			Success:   false,
			Timestamp: now(),
			Error: &ErrorInfo{
				Code:    "BAD_REQUEST",
				Message: http.StatusText(httpErr.Code),
			},
		})
	}

	return c.JSON(http.StatusInternalServerError, Response{
		Success:   false,
		Timestamp: now(),
		Error: &ErrorInfo{
			Code:    apperrors.CodeInternal,
			Message: "An unexpected error occurred",
		},
	})
}

// handleValidationError reports every failing field in details and the
// first one as the headline message.
func handleValidationError(c echo.Context, validationErr validator.ValidationErrors) error {
	details := make(map[string]string, len(validationErr))
	message := "Invalid input data"

	for i, err := range validationErr {
		field := err.Field()
		fieldMessage := validationMessage(field, err.Tag(), err.Param())
		details[field] = fieldMessage
		if i == 0 {
			message = fieldMessage
		}
	}

	return c.JSON(http.StatusBadRequest, Response{
		Success:   false,
		Timestamp: now(),
		Error: &ErrorInfo{
			Code:    "VALIDATION_ERROR",
			Message: message,
			Details: details,
		},
	})
}

func validationMessage(field, tag, param string) string {
	label, ok := fieldLabels[field]
	if !ok {
		label = strings.ToUpper(field[:1]) + strings.ReplaceAll(field[1:], "_", " ")
	}

	switch tag {
	case "required", "notblank":
		return label + " is required"
	case "min":
		return label + " must be at least " + param
	case "max":
		return label + " must be at most " + param
	case "oneof":
		return label + " must be one of: " + param
	case "price":
		return label + " must be a valid amount"
	default:
		return label + " is invalid"
	}
}
