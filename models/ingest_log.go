// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IngestOutcome string

const (
	OutcomeAccepted  IngestOutcome = "ACCEPTED"
	OutcomeDuplicate IngestOutcome = "DUPLICATE"
	OutcomeMalformed IngestOutcome = "MALFORMED"
	OutcomeFailed    IngestOutcome = "FAILED"
)

// IngestOutcomes lists every outcome in reporting order.
var IngestOutcomes = []IngestOutcome{OutcomeAccepted, OutcomeDuplicate, OutcomeMalformed, OutcomeFailed}

// IngestLog records one upload attempt, whatever its outcome.
type IngestLog struct {
	ID             uint          `gorm:"primaryKey"`
	EID            string        `gorm:"size:36;not null;uniqueIndex"`
	Outcome        IngestOutcome `gorm:"size:16;not null;index"`
	SourceFilename string        `gorm:"size:512;not null"`
	TADIGCode      *string       `gorm:"size:64;default:null"`
	FileRecordID   *string       `gorm:"size:36;default:null"`
	Description    *string       `gorm:"type:text;default:null"`
	CreatedAt      time.Time     `gorm:"index"`
}

func (ingestLog *IngestLog) BeforeCreate(tx *gorm.DB) (err error) {
	if ingestLog.EID == "" {
		ingestLog.EID = uuid.NewString()
	}
	return
}

func init() {
	AllModels = append(AllModels, &IngestLog{})
}
