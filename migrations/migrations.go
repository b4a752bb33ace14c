// SPDX-License-Identifier: GPL-3.0-only

package migrations

import (
	"fmt"
	"raex-server/commons"
	"raex-server/models"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

const sortKeyBatchSize = 200

func List() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "001_create_file_records",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.AutoMigrate(models.AllModels...); err != nil {
					return fmt.Errorf("failed to create tables: %w", err)
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&models.IngestLog{}, &models.SearchTerm{}, &models.FileRecord{})
			},
		},
		{
			ID: "002_refresh_file_name_sort_keys",
			Migrate: func(tx *gorm.DB) error {
				var records []models.FileRecord
				updates := tx.Session(&gorm.Session{NewDB: true})
				return tx.Model(&models.FileRecord{}).Select("id", "file_name").
					FindInBatches(&records, sortKeyBatchSize, func(_ *gorm.DB, _ int) error {
						for _, record := range records {
							if err := updates.Model(&models.FileRecord{}).
								Where("id = ?", record.ID).
								Update("file_name_sort_key", commons.SortKey(record.FileName)).Error; err != nil {
								return fmt.Errorf("update sort key of %s: %w", record.ID, err)
							}
						}
						return nil
					}).Error
			},
			Rollback: func(tx *gorm.DB) error { return nil },
		},
	}
}
