package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/nac-jewellers-backup/vendorAPI/internal/config"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrNothingToUpdate = errors.New("nothing to update")
	ErrMissingID       = errors.New("record id is required")
)

// KeyField is the primary key attribute of every table.
const KeyField = "id"

// Record is a flat document keyed by storage attribute names.
type Record map[string]any

// ID returns the record key, or "" if it is absent or not a string.
func (r Record) ID() string {
	id, _ := r[KeyField].(string)
	return id
}

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// DocumentStore is the external key/document service. Lookups other than by
// id go through Scan and are filtered by the caller.
type DocumentStore interface {
	Scan(ctx context.Context, table string) ([]Record, error)
	Get(ctx context.Context, table, id string) (Record, error)
	Put(ctx context.Context, table string, record Record) error
	// Update applies u to an existing record and returns ErrNotFound when
	// the id is absent. Attributes not named by u are left untouched.
	Update(ctx context.Context, table string, u *UpdateInstruction) error
	Delete(ctx context.Context, table, id string) (Record, error)
}

func BuildDSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		cfg.SSLMode,
	)
}
