// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FileRecord is the canonical, storage-ready form of one operator's
// interchange document. It is written once at ingest and never updated.
type FileRecord struct {
	ID                    string                                    `gorm:"size:36;primaryKey" json:"id"`
	FileName              string                                    `gorm:"size:512;not null;index" json:"fileName"`
	FileNameSortKey       string                                    `gorm:"size:512;not null;index" json:"-"`
	PrimaryTADIGCode      *string                                   `gorm:"size:64;uniqueIndex;default:null" json:"-"`
	FileCreationTimestamp *string                                   `gorm:"size:64;default:null" json:"fileCreationTimestamp"`
	SenderTADIG           *string                                   `gorm:"size:64;default:null" json:"senderTADIG"`
	OrganisationName      *string                                   `gorm:"size:255;index;default:null" json:"organisationName"`
	CountryInitials       *string                                   `gorm:"size:16;index;default:null" json:"countryInitials"`
	CountryName           *string                                   `gorm:"size:255;index;default:null" json:"countryName"`
	CountryFlagURL        *string                                   `gorm:"size:255;default:null" json:"countryFlagUrl"`
	E214                  datatypes.JSONType[E214]                  `json:"E214"`
	TADIGSummaryList      datatypes.JSONSlice[TADIGSummary]         `json:"tadigSummaryList"`
	MSISDNNumberRanges    datatypes.JSONSlice[NumberRange]          `json:"msisdnNumberRanges"`
	GTNumberRanges        datatypes.JSONSlice[NumberRange]          `json:"gtNumberRanges"`
	MSRNNumberRanges      datatypes.JSONSlice[NumberRange]          `json:"msrnNumberRanges"`
	NPNumberRanges        datatypes.JSONSlice[NumberRange]          `json:"npNumberRanges"`
	NwNodes               datatypes.JSONSlice[NwNode]               `json:"nwNodes"`
	InternationalSCCP     datatypes.JSONSlice[SCCPCarrier]          `gorm:"column:international_sccp_gateway" json:"internationalSCCPGateway"`
	DomesticSCCPGateway   datatypes.JSON                            `gorm:"column:domestic_sccp_gateway" json:"domesticSCCPGateway"`
	GRXIPXRouting         datatypes.JSONType[GRXIPXRouting]         `gorm:"column:grx_ipx_routing" json:"grxIpxRouting"`
	DNSInfo               datatypes.JSONType[DNSInfo]               `gorm:"column:dns_info" json:"dnsInfo"`
	ASNInfo               datatypes.JSONSlice[ASN]                  `gorm:"column:asn_info" json:"asnInfo"`
	PacketDataServiceInfo datatypes.JSONType[PacketDataServiceInfo] `json:"packetDataServiceInfo"`
	SupportedTechnologies datatypes.JSON                            `json:"supportedTechnologies"`
	CreatedAt             time.Time                                 `json:"createdAt"`
	SearchTerms           []SearchTerm                              `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (record *FileRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	return
}

// TADIGCodes returns the codes of every TADIG summary entry, skipping absent ones.
func (record *FileRecord) TADIGCodes() []string {
	codes := make([]string, 0, len(record.TADIGSummaryList))
	for _, entry := range record.TADIGSummaryList {
		if entry.TADIGCode != nil && *entry.TADIGCode != "" {
			codes = append(codes, *entry.TADIGCode)
		}
	}
	return codes
}

func init() {
	AllModels = append(AllModels, &FileRecord{})
}
