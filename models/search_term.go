// SPDX-License-Identifier: GPL-3.0-only

package models

import "strings"

// SearchTerm is one indexed value of a FileRecord field. Nested sections are
// stored as JSON, so search and duplicate lookups run against these rows.
type SearchTerm struct {
	ID           uint   `gorm:"primaryKey"`
	FileRecordID string `gorm:"size:36;not null;index"`
	Field        string `gorm:"size:128;not null;index"`
	Value        string `gorm:"type:text;not null"`
	ValueFolded  string `gorm:"type:text;not null"`
}

// SearchField names a searchable path of a FileRecord and how to read it.
type SearchField struct {
	Path   string
	Values func(*FileRecord) []string
}

// Field paths with special meaning outside search.
const (
	FieldTADIGCode = "tadigSummaryList.TADIGCode"
)

// SearchFields is the fixed set of fields a search term is matched against.
var SearchFields = []SearchField{
	{"fileName", func(r *FileRecord) []string { return []string{r.FileName} }},
	{"organisationName", func(r *FileRecord) []string { return strs(r.OrganisationName) }},
	{"senderTADIG", func(r *FileRecord) []string { return strs(r.SenderTADIG) }},
	{"countryInitials", func(r *FileRecord) []string { return strs(r.CountryInitials) }},
	{"countryName", func(r *FileRecord) []string { return strs(r.CountryName) }},

	{"E214.CC", func(r *FileRecord) []string { return strs(r.E214.Data().CC) }},
	{"E214.NC", func(r *FileRecord) []string { return strs(r.E214.Data().NC) }},

	{FieldTADIGCode, func(r *FileRecord) []string {
		return collect(r.TADIGSummaryList, func(s TADIGSummary) []*string { return []*string{s.TADIGCode} })
	}},
	{"tadigSummaryList.MCC", func(r *FileRecord) []string {
		return collect(r.TADIGSummaryList, func(s TADIGSummary) []*string { return []*string{s.MCC} })
	}},
	{"tadigSummaryList.MNC", func(r *FileRecord) []string {
		return collect(r.TADIGSummaryList, func(s TADIGSummary) []*string { return []*string{s.MNC} })
	}},
	{"tadigSummaryList.NetworkType", func(r *FileRecord) []string {
		return collect(r.TADIGSummaryList, func(s TADIGSummary) []*string { return []*string{s.NetworkType} })
	}},
	{"tadigSummaryList.VPMNHPMNList", func(r *FileRecord) []string {
		return collect(r.TADIGSummaryList, func(s TADIGSummary) []*string { return []*string{s.VPMNHPMNList} })
	}},

	{"msisdnNumberRanges.CC", func(r *FileRecord) []string {
		return collect(r.MSISDNNumberRanges, func(n NumberRange) []*string { return []*string{n.CC} })
	}},
	{"msisdnNumberRanges.NDC", func(r *FileRecord) []string {
		return collect(r.MSISDNNumberRanges, func(n NumberRange) []*string { return []*string{n.NDC} })
	}},
	{"msisdnNumberRanges.SN_RangeStart", func(r *FileRecord) []string {
		return collect(r.MSISDNNumberRanges, func(n NumberRange) []*string { return []*string{n.SNRangeStart} })
	}},
	{"msisdnNumberRanges.SN_RangeStop", func(r *FileRecord) []string {
		return collect(r.MSISDNNumberRanges, func(n NumberRange) []*string { return []*string{n.SNRangeStop} })
	}},
	{"msisdnNumberRanges.NetworkOwner", func(r *FileRecord) []string {
		return collect(r.MSISDNNumberRanges, func(n NumberRange) []*string { return []*string{n.NetworkOwner} })
	}},
	{"gtNumberRanges.NetworkOwner", func(r *FileRecord) []string {
		return collect(r.GTNumberRanges, func(n NumberRange) []*string { return []*string{n.NetworkOwner} })
	}},
	{"npNumberRanges.NetworkOwner", func(r *FileRecord) []string {
		return collect(r.NPNumberRanges, func(n NumberRange) []*string { return []*string{n.NetworkOwner} })
	}},

	{"nwNodes.NwElementType", func(r *FileRecord) []string {
		return collect(r.NwNodes, func(n NwNode) []*string { return []*string{n.NwElementType} })
	}},
	{"nwNodes.VendorInfo", func(r *FileRecord) []string {
		return collect(r.NwNodes, func(n NwNode) []*string { return []*string{n.VendorInfo} })
	}},
	{"nwNodes.IPAddressInfo.IPAddress", func(r *FileRecord) []string {
		return collect(r.NwNodes, func(n NwNode) []*string { return []*string{n.IPAddressInfo.IPAddress} })
	}},
	{"nwNodes.IPAddressInfo.IPAddressRange", func(r *FileRecord) []string {
		return collect(r.NwNodes, func(n NwNode) []*string { return []*string{n.IPAddressInfo.IPAddressRange} })
	}},
	{"nwNodes.GTAddressInfo.CC", func(r *FileRecord) []string {
		return collect(r.NwNodes, func(n NwNode) []*string { return []*string{n.GTAddressInfo.CC} })
	}},

	{"internationalSCCPGateway.carrierName", func(r *FileRecord) []string {
		return collect(r.InternationalSCCP, func(c SCCPCarrier) []*string { return []*string{c.CarrierName} })
	}},
	{"internationalSCCPGateway.dpcList.DPC", func(r *FileRecord) []string {
		return collect(r.InternationalSCCP, func(c SCCPCarrier) []*string {
			out := make([]*string, 0, len(c.DPCList))
			for _, dpc := range c.DPCList {
				out = append(out, dpc.DPC)
			}
			return out
		})
	}},

	{"grxIpxRouting.grxProvider", func(r *FileRecord) []string { return strs(r.GRXIPXRouting.Data().GRXProvider) }},
	{"grxIpxRouting.interPMNBackboneIPList.ipAddressRange", func(r *FileRecord) []string {
		return collect(r.GRXIPXRouting.Data().InterPMNBackboneIPList, func(b BackboneIP) []*string { return []*string{b.IPAddressRange} })
	}},
	{"grxIpxRouting.interPMNBackboneIPList.networkOwner", func(r *FileRecord) []string {
		return collect(r.GRXIPXRouting.Data().InterPMNBackboneIPList, func(b BackboneIP) []*string { return []*string{b.NetworkOwner} })
	}},

	{"dnsInfo.authoritative.ipAddress", func(r *FileRecord) []string {
		return collect(r.DNSInfo.Data().Authoritative, func(d DNSEntry) []*string { return []*string{d.IPAddress} })
	}},
	{"dnsInfo.authoritative.dnsName", func(r *FileRecord) []string {
		return collect(r.DNSInfo.Data().Authoritative, func(d DNSEntry) []*string { return []*string{d.DNSName} })
	}},
	{"dnsInfo.local.ipAddress", func(r *FileRecord) []string {
		return collect(r.DNSInfo.Data().Local, func(d DNSEntry) []*string { return []*string{d.IPAddress} })
	}},
	{"dnsInfo.local.dnsName", func(r *FileRecord) []string {
		return collect(r.DNSInfo.Data().Local, func(d DNSEntry) []*string { return []*string{d.DNSName} })
	}},

	{"asnInfo.asNumber", func(r *FileRecord) []string {
		return collect(r.ASNInfo, func(a ASN) []*string { return []*string{a.ASNumber} })
	}},
	{"asnInfo.operator", func(r *FileRecord) []string {
		return collect(r.ASNInfo, func(a ASN) []*string { return []*string{a.Operator} })
	}},

	{"packetDataServiceInfo.apnOperatorIdentifiers", func(r *FileRecord) []string {
		return r.PacketDataServiceInfo.Data().APNOperatorIdentifiers
	}},
	{"packetDataServiceInfo.testingAPNs.web.credential.APN", func(r *FileRecord) []string {
		return collect(r.PacketDataServiceInfo.Data().TestingAPNs.Web, func(w WebAPN) []*string { return []*string{w.Credential.APN} })
	}},
	{"packetDataServiceInfo.testingAPNs.web.primaryDNS", func(r *FileRecord) []string {
		return collect(r.PacketDataServiceInfo.Data().TestingAPNs.Web, func(w WebAPN) []*string { return []*string{w.PrimaryDNS} })
	}},
	{"packetDataServiceInfo.testingAPNs.wap.gatewayIPAddress", func(r *FileRecord) []string {
		return collect(r.PacketDataServiceInfo.Data().TestingAPNs.WAP, func(w WAPAPN) []*string { return []*string{w.GatewayIPAddress} })
	}},
	{"packetDataServiceInfo.testingAPNs.mms.messagingServerURL", func(r *FileRecord) []string {
		return collect(r.PacketDataServiceInfo.Data().TestingAPNs.MMS, func(m MMSAPN) []*string { return []*string{m.MessagingServerURL} })
	}},
	{"packetDataServiceInfo.qosProfiles.profileName", func(r *FileRecord) []string {
		return collect(r.PacketDataServiceInfo.Data().QoSProfiles, func(q QoSProfile) []*string { return []*string{q.ProfileName} })
	}},
}

// BuildSearchTerms derives the index rows of a record from SearchFields.
// Empty values and repeats within one field are skipped.
func BuildSearchTerms(record *FileRecord) []SearchTerm {
	var terms []SearchTerm
	for _, field := range SearchFields {
		seen := make(map[string]struct{})
		for _, value := range field.Values(record) {
			if value == "" {
				continue
			}
			if _, dup := seen[value]; dup {
				continue
			}
			seen[value] = struct{}{}
			terms = append(terms, SearchTerm{
				FileRecordID: record.ID,
				Field:        field.Path,
				Value:        value,
				ValueFolded:  FoldValue(value),
			})
		}
	}
	return terms
}

// FoldValue is the case-insensitive form stored for matching.
func FoldValue(value string) string {
	return strings.ToLower(value)
}

func strs(values ...*string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}

func collect[T any](items []T, pick func(T) []*string) []string {
	var out []string
	for _, item := range items {
		out = append(out, strs(pick(item)...)...)
	}
	return out
}

func init() {
	AllModels = append(AllModels, &SearchTerm{})
}
