// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/tannermartz/breakline/app/dto"
	businessflow "github.com/tannermartz/breakline/business_flow"
)

// baseHandler carries the pieces every resource handler shares
type baseHandler struct {
	validator *validator.Validate
}

func newBaseHandler() baseHandler {
	v := validator.New()
	registerCustomValidations(v)
	return baseHandler{validator: v}
}

func (h *baseHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *baseHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// validateStruct runs the validator and turns failures into readable messages
func (h *baseHandler) validateStruct(req any) []string {
	err := h.validator.Struct(req)
	if err == nil {
		return nil
	}

	var messages []string
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldErr := range validationErrors {
			messages = append(messages, getValidationErrorMessage(fieldErr))
		}
	} else {
		messages = append(messages, err.Error())
	}
	return messages
}

// clientMetadata builds the audit metadata from the request
func clientMetadata(c fiber.Ctx) *businessflow.ClientMetadata {
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	if requestID := c.Get("X-Request-ID"); requestID != "" {
		metadata.SetRequestID(requestID)
	}
	return metadata
}

// requestContext creates a bounded context carrying the request ID for audit logging.
// The cancel function rides along in the context; the deadline reclaims
// resources when callers never invoke it.
func requestContext(c fiber.Ctx) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	ctx = context.WithValue(ctx, cancelFuncKey, cancel)

	if requestID := c.Get("X-Request-ID"); requestID != "" {
		ctx = context.WithValue(ctx, businessflow.RequestIDKey, requestID)
	}
	return ctx
}

type contextKey string

const cancelFuncKey contextKey = "cancel_func"

func registerCustomValidations(v *validator.Validate) {
	// US state codes are two uppercase letters
	_ = v.RegisterValidation("state_code", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if len(value) != 2 {
			return false
		}
		for _, char := range value {
			if char < 'A' || char > 'Z' {
				return false
			}
		}
		return true
	})
}

func getValidationErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return err.Field() + " must be at least " + err.Param()
	case "max":
		return err.Field() + " must be at most " + err.Param()
	case "len":
		return err.Field() + " must be exactly " + err.Param() + " characters"
	case "oneof":
		return err.Field() + " must be one of: " + err.Param()
	case "eqfield":
		return err.Field() + " must match " + err.Param()
	case "uuid":
		return err.Field() + " must be a valid UUID"
	case "datetime":
		return err.Field() + " must be a date in YYYY-MM-DD format"
	case "state_code":
		return err.Field() + " must be a two-letter state code"
	case "alpha":
		return err.Field() + " must contain only letters"
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", err.Field(), err.Param())
	default:
		return err.Field() + " is invalid"
	}
}
