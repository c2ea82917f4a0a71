package http

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger-api/internal/application/dto"
)

var errInvalidBody = errors.New("cuerpo JSON inválido")

// parsePage lee skip/limit. Valores no numéricos o fuera de rango son un 400.
func parsePage(c *fiber.Ctx, v *Validator) (dto.PageRequest, error) {
	page := dto.PageRequest{Skip: 0, Limit: dto.DefaultLimit}
	fields := map[string]string{}
	if raw := strings.TrimSpace(c.Query("skip")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			fields["skip"] = "debe ser un entero"
		}
		page.Skip = n
	}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			fields["limit"] = "debe ser un entero"
		}
		page.Limit = n
	}
	if len(fields) > 0 {
		return page, &ValidationError{Fields: fields}
	}
	if err := v.Struct(page); err != nil {
		return page, err
	}
	return page, nil
}

// bindJSON parsea el body en out y lo valida.
func bindJSON(c *fiber.Ctx, v *Validator, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody
	}
	return v.Struct(out)
}

// bindQuery parsea los filtros de query string en out y los valida.
func bindQuery(c *fiber.Ctx, v *Validator, out any) error {
	if err := c.QueryParser(out); err != nil {
		return &ValidationError{Fields: map[string]string{"query": "parámetros inválidos"}}
	}
	return v.Struct(out)
}

// writeBindError responde 400 para errores de bind/validación; cualquier otro pasa por writeError.
func writeBindError(c *fiber.Ctx, err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   ve.Error(),
			Code:    CodeValidation,
			Details: ve.Fields,
		})
	}
	if errors.Is(err, errInvalidBody) {
		return badRequest(c, CodeInvalidBody, err.Error())
	}
	return writeError(c, err)
}
