package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/nac-jewellers-backup/vendorAPI/internal/models"
	"github.com/nac-jewellers-backup/vendorAPI/internal/validation"
)

const serverErrorMessage = "Server Error. Please try again later"

func respond(c *fiber.Ctx, code int, status, message string, result any) error {
	return c.Status(code).JSON(models.Response{
		Status:  status,
		Message: message,
		Result:  result,
	})
}

func invalidBody(c *fiber.Ctx) error {
	return respond(c, fiber.StatusBadRequest, models.StatusFailure, "Invalid request body", nil)
}

func serverError(c *fiber.Ctx) error {
	return respond(c, fiber.StatusServiceUnavailable, models.StatusError, serverErrorMessage, nil)
}

// parseBody decodes the JSON body whatever the Content-Type header says.
func parseBody(c *fiber.Ctx, v any) error {
	return c.App().Config().JSONDecoder(c.Body(), v)
}

func invalidRequest(c *fiber.Ctx, err error) error {
	msg := "Invalid request"
	var fe *validation.FieldError
	if errors.As(err, &fe) {
		msg = fe.Message()
	}
	return respond(c, fiber.StatusBadRequest, models.StatusFailure, msg, nil)
}
