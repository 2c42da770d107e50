package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// document holds one record of a logical table as a jsonb blob.
type document struct {
	Collection string `gorm:"primaryKey;size:64"`
	ID         string `gorm:"primaryKey;size:128"`
	Data       string `gorm:"type:jsonb;not null"`
}

func (document) TableName() string { return "documents" }

type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&document{}); err != nil {
		return nil, err
	}

	return newPostgresStore(db), nil
}

func newPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Scan(ctx context.Context, table string) ([]Record, error) {
	var docs []document
	if err := s.db.WithContext(ctx).Where("collection = ?", table).Order("id").Find(&docs).Error; err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(docs))
	for _, d := range docs {
		r, err := decodeDocument(d)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

func (s *PostgresStore) Get(ctx context.Context, table, id string) (Record, error) {
	var d document
	if err := s.db.WithContext(ctx).First(&d, "collection = ? AND id = ?", table, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decodeDocument(d)
}

func (s *PostgresStore) Put(ctx context.Context, table string, record Record) error {
	if record.ID() == "" {
		return ErrMissingID
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	d := document{Collection: table, ID: record.ID(), Data: string(data)}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&d).Error
}

// Update merges the assigned attributes into the stored document with the
// jsonb || operator; the patch is bound as a parameter.
func (s *PostgresStore) Update(ctx context.Context, table string, u *UpdateInstruction) error {
	if len(u.Set) == 0 {
		return ErrNothingToUpdate
	}

	patch, err := json.Marshal(u.Fields())
	if err != nil {
		return fmt.Errorf("marshal patch: %w", err)
	}

	res := s.db.WithContext(ctx).
		Model(&document{}).
		Where("collection = ? AND id = ?", table, u.ID).
		Update("data", gorm.Expr("data || ?::jsonb", string(patch)))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, table, id string) (Record, error) {
	var old Record
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d document
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&d, "collection = ? AND id = ?", table, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		r, err := decodeDocument(d)
		if err != nil {
			return err
		}
		old = r

		return tx.Where("collection = ? AND id = ?", table, id).Delete(&document{}).Error
	})
	if err != nil {
		return nil, err
	}
	return old, nil
}

func decodeDocument(d document) (Record, error) {
	var r Record
	if err := json.Unmarshal([]byte(d.Data), &r); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", d.Collection, d.ID, err)
	}
	return r, nil
}
