package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/inventario-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventario-ledger-api/internal/domain"
)

// Códigos de error estables para el cliente (campo "code").
const (
	CodeValidation         = "VALIDATION"
	CodeInvalidBody        = "INVALID_BODY"
	CodeNotFound           = "NOT_FOUND"
	CodeDuplicate          = "DUPLICATE"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeInsufficientStock  = "INSUFFICIENT_STOCK"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInactiveUser       = "INACTIVE_USER"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeRateLimited        = "RATE_LIMITED"
	CodeSuspiciousInput    = "SUSPICIOUS_INPUT"
	CodeInternal           = "INTERNAL"
)

// classify traduce un error a status HTTP y código. El orden importa:
// ErrEmailAlreadyExists envuelve ErrDuplicate y los errores de auth envuelven ErrUnauthorized.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusBadRequest, CodeInsufficientStock
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusBadRequest, CodeEmailExists
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusBadRequest, CodeDuplicate
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, CodeValidation
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, CodeNotFound
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, CodeInvalidCredentials
	case errors.Is(err, domain.ErrInactiveUser):
		return fiber.StatusUnauthorized, CodeInactiveUser
	case errors.Is(err, domain.ErrInvalidToken):
		return fiber.StatusUnauthorized, CodeInvalidToken
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, CodeUnauthorized
	default:
		return fiber.StatusInternalServerError, CodeInternal
	}
}

// writeError responde con el cuerpo de error estándar. Los 500 se registran y el cliente
// solo recibe un mensaje genérico.
func writeError(c *fiber.Ctx, err error) error {
	status, code := classify(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error interno")
		msg = "error interno del servidor"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: msg, Code: code})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg, Code: code})
}

func unauthorized(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: msg, Code: code})
}

// ErrorHandler es el fiber.ErrorHandler de la app: errores de framework (404 de ruta,
// 405, body demasiado grande, pánicos recuperados) y errores de dominio no atendidos.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := CodeInternal
		switch fe.Code {
		case fiber.StatusNotFound:
			code = CodeNotFound
		case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge, fiber.StatusUnprocessableEntity:
			code = CodeValidation
		case fiber.StatusTooManyRequests:
			code = CodeRateLimited
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		}
		if fe.Code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("error de framework")
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Error: fe.Message, Code: code})
	}
	return writeError(c, err)
}
