package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/nac-jewellers-backup/vendorAPI/internal/models"
	"github.com/nac-jewellers-backup/vendorAPI/internal/services"
	"github.com/nac-jewellers-backup/vendorAPI/internal/storage"
	"github.com/rs/zerolog"
)

// RecordHandler serves list/get/add/edit/delete for one entity.
type RecordHandler struct {
	records *services.RecordService
	entity  *models.Entity
	log     zerolog.Logger
}

func NewRecordHandler(records *services.RecordService, entity *models.Entity, log zerolog.Logger) *RecordHandler {
	return &RecordHandler{
		records: records,
		entity:  entity,
		log:     log.With().Str("entity", entity.Name).Logger(),
	}
}

func (h *RecordHandler) Entity() *models.Entity {
	return h.entity
}

type idRequest struct {
	ID string `json:"id"`
}

func (h *RecordHandler) List(c *fiber.Ctx) error {
	records, err := h.records.List(c.Context(), h.entity)
	if err != nil {
		return h.fail(c, "list", err)
	}
	return respond(c, fiber.StatusOK, models.StatusSuccess, h.entity.Plural+" found", h.entity.ShapeAll(records))
}

func (h *RecordHandler) Get(c *fiber.Ctx) error {
	var req idRequest
	if err := parseBody(c, &req); err != nil {
		return invalidBody(c)
	}

	record, err := h.records.Get(c.Context(), h.entity, req.ID)
	if err != nil {
		return h.fail(c, "get", err)
	}
	return respond(c, fiber.StatusOK, models.StatusSuccess, h.entity.Name+" found", h.entity.Shape(record))
}

func (h *RecordHandler) Add(c *fiber.Ctx) error {
	payload, err := h.payload(c)
	if err != nil {
		return invalidBody(c)
	}

	id, err := h.records.Add(c.Context(), h.entity, payload)
	if err != nil {
		return h.fail(c, "add", err)
	}
	return respond(c, fiber.StatusOK, models.StatusSuccess, h.entity.Name+" record added successfully", fiber.Map{"id": id})
}

func (h *RecordHandler) Edit(c *fiber.Ctx) error {
	payload, err := h.payload(c)
	if err != nil {
		return invalidBody(c)
	}

	if err := h.records.Edit(c.Context(), h.entity, payload); err != nil {
		return h.fail(c, "edit", err)
	}
	return respond(c, fiber.StatusOK, models.StatusSuccess, h.entity.Name+" record edited successfully", nil)
}

func (h *RecordHandler) Delete(c *fiber.Ctx) error {
	var req idRequest
	if err := parseBody(c, &req); err != nil {
		return invalidBody(c)
	}

	if _, err := h.records.Delete(c.Context(), h.entity, req.ID); err != nil {
		return h.fail(c, "delete", err)
	}
	return respond(c, fiber.StatusOK, models.StatusSuccess, h.entity.Name+" record deleted successfully", nil)
}

// payload extracts the entity object, e.g. {"admin": {...}}, from the body.
func (h *RecordHandler) payload(c *fiber.Ctx) (map[string]any, error) {
	var body map[string]any
	if err := parseBody(c, &body); err != nil {
		return nil, err
	}
	payload, ok := body[h.entity.Payload].(map[string]any)
	if !ok {
		return nil, errors.New("missing " + h.entity.Payload)
	}
	return payload, nil
}

func (h *RecordHandler) fail(c *fiber.Ctx, op string, err error) error {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		return respond(c, fiber.StatusAccepted, models.StatusFailure, ve.Message, nil)
	case errors.Is(err, storage.ErrNothingToUpdate):
		return respond(c, fiber.StatusAccepted, models.StatusFailure, "No fields to update", nil)
	case errors.Is(err, storage.ErrNotFound):
		return respond(c, fiber.StatusNotFound, models.StatusFailure, h.entity.Name+" not found", nil)
	}

	h.log.Error().Err(err).Str("op", op).Str("table", h.entity.Table).Msg("record operation failed")
	return serverError(c)
}
