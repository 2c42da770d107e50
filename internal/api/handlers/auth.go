package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/nac-jewellers-backup/vendorAPI/internal/auth"
	"github.com/nac-jewellers-backup/vendorAPI/internal/middleware"
	"github.com/nac-jewellers-backup/vendorAPI/internal/models"
	"github.com/nac-jewellers-backup/vendorAPI/internal/services"
	"github.com/nac-jewellers-backup/vendorAPI/internal/storage"
	"github.com/nac-jewellers-backup/vendorAPI/internal/validation"
	"github.com/rs/zerolog"
)

const statusFailed = "failed"

type AuthHandler struct {
	accounts *services.AccountService
	log      zerolog.Logger
}

func NewAuthHandler(accounts *services.AccountService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		log:      log,
	}
}

func (h *AuthHandler) Health(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, models.StatusSuccess, "NAC Vendor Backend Service Running Successfully", nil)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return invalidBody(c)
	}

	if strings.TrimSpace(req.MobileNumber) == "" || req.Password == "" {
		return respond(c, fiber.StatusUnauthorized, models.StatusFailure, "Mobile number and Password are required", nil)
	}
	if err := validation.ValidateStruct(req); err != nil {
		return invalidRequest(c, err)
	}

	res, err := h.accounts.Login(c.Context(), req.TableName, strings.TrimSpace(req.MobileNumber), req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return respond(c, fiber.StatusForbidden, models.StatusFailure, "Invalid credentials", nil)
		}
		h.log.Error().Err(err).Str("table", req.TableName).Msg("login failed")
		return respond(c, fiber.StatusServiceUnavailable, models.StatusError, "Login service error", nil)
	}

	return c.JSON(fiber.Map{
		"status":  models.StatusSuccess,
		"session": res.Session,
		"name":    res.Name,
	})
}

// Verify looks the account up by mobile number and sends it a reset OTP.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var req models.VerifyRequest
	if err := parseBody(c, &req); err != nil {
		return invalidBody(c)
	}
	if err := validation.ValidateStruct(req); err != nil {
		return invalidRequest(c, err)
	}

	res, err := h.accounts.RequestOTP(c.Context(), req.TableName, strings.TrimSpace(req.MobileNumber))
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		return respond(c, fiber.StatusUnauthorized, statusFailed, "User not found", nil)
	case errors.Is(err, services.ErrOTPDelivery):
		h.log.Warn().Err(err).Str("table", req.TableName).Msg("otp delivery failed")
		return respond(c, fiber.StatusUnauthorized, statusFailed, "Error in sending OTP", nil)
	default:
		h.log.Error().Err(err).Str("table", req.TableName).Msg("otp request failed")
		return serverError(c)
	}

	return c.JSON(fiber.Map{
		"status":  models.StatusSuccess,
		"message": "User found",
		"data":    res,
	})
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req models.ForgotPasswordRequest
	if err := parseBody(c, &req); err != nil {
		return invalidBody(c)
	}
	if err := validation.ValidateStruct(req); err != nil {
		return respond(c, fiber.StatusUnauthorized, models.StatusError, "Error in changing the password", nil)
	}

	err := h.accounts.ResetPassword(c.Context(), req.TableName, req.ID, req.OTP.String(), req.Password)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrInvalidOTP):
		return respond(c, fiber.StatusUnauthorized, models.StatusFailure, "Invalid or expired OTP", nil)
	default:
		if !errors.Is(err, storage.ErrNotFound) {
			h.log.Error().Err(err).Str("table", req.TableName).Msg("password reset failed")
		}
		return respond(c, fiber.StatusUnauthorized, models.StatusError, "Error in changing the password", nil)
	}

	return respond(c, fiber.StatusOK, models.StatusSuccess, "Password successfully changed", nil)
}

// ChangePassword runs behind the session middleware and only changes the
// password of the account the session belongs to.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var body models.ChangePasswordRequest
	if err := parseBody(c, &body); err != nil {
		return invalidBody(c)
	}
	if err := validation.ValidateStruct(body); err != nil {
		return invalidRequest(c, err)
	}

	caller, ok := c.Locals(middleware.LocalsIdentity).(auth.Identity)
	if !ok {
		return middleware.Unauthorized(c)
	}

	req := body.Request
	err := h.accounts.ChangePassword(c.Context(), caller, req.TableName, req.ID, req.OldPassword, req.NewPassword)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrNotAccountOwner):
		h.log.Warn().Str("table", req.TableName).Str("id", req.ID).Str("caller", caller.MobileNumber).Msg("password change for another account")
		return middleware.Unauthorized(c)
	case errors.Is(err, services.ErrIncorrectPassword):
		return respond(c, fiber.StatusForbidden, models.StatusFailure, "Password is incorrect", nil)
	case errors.Is(err, storage.ErrNotFound):
		return respond(c, fiber.StatusNotFound, models.StatusFailure, "User not found", nil)
	default:
		h.log.Error().Err(err).Str("table", req.TableName).Msg("password change failed")
		return respond(c, fiber.StatusUnauthorized, models.StatusFailure, "Error in changing password", nil)
	}

	return respond(c, fiber.StatusOK, models.StatusSuccess, "Password successfully changed", nil)
}
