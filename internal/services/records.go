package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nac-jewellers-backup/vendorAPI/internal/models"
	"github.com/nac-jewellers-backup/vendorAPI/internal/storage"
	"github.com/nac-jewellers-backup/vendorAPI/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// ValidationError is a request the caller can fix, such as a duplicate
// email. Message is shown to the caller as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RecordService implements list/get/add/edit/delete for any entity.
type RecordService struct {
	store storage.DocumentStore
	newID func() string
}

func NewRecordService(store storage.DocumentStore) *RecordService {
	return &RecordService{
		store: store,
		newID: uuid.NewString,
	}
}

func (s *RecordService) List(ctx context.Context, e *models.Entity) ([]storage.Record, error) {
	return s.store.Scan(ctx, e.Table)
}

func (s *RecordService) Get(ctx context.Context, e *models.Entity, id string) (storage.Record, error) {
	if id == "" {
		return nil, storage.ErrNotFound
	}
	return s.store.Get(ctx, e.Table, id)
}

// Add writes a new record. A missing id is generated. The secret, if the
// entity has one, is stored as a bcrypt hash.
func (s *RecordService) Add(ctx context.Context, e *models.Entity, payload map[string]any) (string, error) {
	if err := validation.ValidateMap(payload, e.AddRules); err != nil {
		var fe *validation.FieldError
		if errors.As(err, &fe) {
			return "", &ValidationError{Field: fe.Field, Message: fe.Message()}
		}
		return "", err
	}

	record := e.FromPayload(payload)
	if record.ID() == "" {
		record[storage.KeyField] = s.newID()
	}

	if err := s.checkUnique(ctx, e, record, ""); err != nil {
		return "", err
	}

	if e.Secret != "" {
		secret, ok := record[models.PasswordField].(string)
		if !ok || secret == "" {
			return "", &ValidationError{Field: e.Secret, Message: "Invalid or missing " + e.Secret}
		}
		hash, err := hashPassword(secret)
		if err != nil {
			return "", err
		}
		record[models.PasswordField] = hash
	}

	if err := s.store.Put(ctx, e.Table, record); err != nil {
		return "", err
	}
	return record.ID(), nil
}

// Edit applies the supplied attributes to an existing record. Attributes on
// the entity deny-list are ignored; if nothing remains the edit is rejected
// with storage.ErrNothingToUpdate.
func (s *RecordService) Edit(ctx context.Context, e *models.Entity, payload map[string]any) error {
	fields := e.FromPayload(payload)
	id := fields.ID()
	if id == "" {
		return &ValidationError{Field: storage.KeyField, Message: "Invalid or missing id"}
	}

	if err := s.checkUnique(ctx, e, fields, id); err != nil {
		return err
	}

	u, err := storage.BuildUpdate(id, fields, e.DenyList)
	if err != nil {
		return err
	}
	return s.store.Update(ctx, e.Table, u)
}

func (s *RecordService) Delete(ctx context.Context, e *models.Entity, id string) (storage.Record, error) {
	if id == "" {
		return nil, storage.ErrNotFound
	}
	return s.store.Delete(ctx, e.Table, id)
}

// checkUnique scans the table and rejects fields whose unique attributes
// are already held by another record. selfID excludes the record being
// edited. The scan and the following write are not atomic.
func (s *RecordService) checkUnique(ctx context.Context, e *models.Entity, fields storage.Record, selfID string) error {
	wanted := make([]models.UniqueField, 0, len(e.Unique))
	for _, u := range e.Unique {
		if isBlank(fields[u.Store]) {
			continue
		}
		wanted = append(wanted, u)
	}
	if len(wanted) == 0 {
		return nil
	}

	records, err := s.store.Scan(ctx, e.Table)
	if err != nil {
		return err
	}

	for _, r := range records {
		if selfID != "" && r.ID() == selfID {
			continue
		}
		for _, u := range wanted {
			if sameValue(r[u.Store], fields[u.Store]) {
				return &ValidationError{Field: u.Store, Message: u.Message}
			}
		}
	}
	return nil
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

func sameValue(stored, supplied any) bool {
	if isBlank(stored) {
		return false
	}
	return fmt.Sprint(stored) == fmt.Sprint(supplied)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
