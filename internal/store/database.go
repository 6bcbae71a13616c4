package store

import (
	"context"
	"errors"

	"github.com/localnerve/lessonsync/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// DatabaseBackend keeps each document as one row of the documents table.
type DatabaseBackend struct {
	DB *gorm.DB
}

// Load implements Backend.
func (b *DatabaseBackend) Load(ctx context.Context, name string) ([]byte, error) {
	var doc models.StoredDocument
	err := b.DB.WithContext(ctx).
		Session(&gorm.Session{Logger: b.DB.Logger.LogMode(logger.Silent)}).
		Where("document_name = ?", name).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc.Content.Bytes(), nil
}

// Save implements Backend as a single upsert keyed by document name.
func (b *DatabaseBackend) Save(ctx context.Context, name string, data []byte) error {
	doc := models.StoredDocument{
		DocumentName: name,
		Content:      models.NewJSON(data),
	}
	return b.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "document_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
		}).
		Create(&doc).Error
}
