// SPDX-License-Identifier: GPL-3.0-only

package raex

import (
	"raex-server/commons/xmltree"
	"raex-server/models"
	"strings"
)

// Two schema generations describe the same network and AS data. Each
// resolver picks the shape present in a document, first match wins, and the
// assembler only talks to the resolved shape.

// NetworkListShape is the resolved form of an organisation's network list.
type NetworkListShape interface {
	Summaries() []models.TADIGSummary
	isNetworkListShape()
}

// TADIGSummaryVariant holds OrganisationInfo/TADIGSummaryList/TADIGSummaryItem
// entries, with network properties kept per entry.
type TADIGSummaryVariant struct {
	Items []*xmltree.Node
}

// NetworkListVariant holds OrganisationInfo/NetworkList/Network entries, with
// MCC and MNC nested inside the E.212 routing data.
type NetworkListVariant struct {
	Networks []*xmltree.Node
}

// NoNetworkList is resolved when neither list is present.
type NoNetworkList struct{}

func (TADIGSummaryVariant) isNetworkListShape() {}
func (NetworkListVariant) isNetworkListShape() {}
func (NoNetworkList) isNetworkListShape() {}

func (v TADIGSummaryVariant) Summaries() []models.TADIGSummary {
	out := make([]models.TADIGSummary, 0, len(v.Items))
	for _, item := range v.Items {
		props := item.First("NetworkProperties")
		vpmn := strings.Join(props.Texts("VPMNHPMNList", "VPMNHPMN"), ", ")
		out = append(out, models.TADIGSummary{
			TADIGCode:    item.Str("TADIGCode"),
			MCC:          props.Str("MCC"),
			MNC:          props.Str("MNC"),
			NetworkType:  props.Str("NetworkType"),
			VPMNHPMNList: &vpmn,
		})
	}
	return out
}

func (v NetworkListVariant) Summaries() []models.TADIGSummary {
	out := make([]models.TADIGSummary, 0, len(v.Networks))
	for _, network := range v.Networks {
		e212 := network.First("NetworkData", "RoutingInfoSection", "RoutingInfo", "CCITT_E212_NumberSeries")
		out = append(out, models.TADIGSummary{
			TADIGCode:   network.Str("TADIGCode"),
			MCC:         e212.Str("MCC"),
			MNC:         e212.Str("MNC"),
			NetworkType: network.Str("NetworkType"),
			NetworkName: network.Str("NetworkName"),
		})
	}
	return out
}

func (NoNetworkList) Summaries() []models.TADIGSummary {
	return []models.TADIGSummary{}
}

// ResolveNetworkList prefers the TADIG summary list and falls back to the
// network list. The two are never merged.
func ResolveNetworkList(org *xmltree.Node) NetworkListShape {
	if items := org.All("TADIGSummaryList", "TADIGSummaryItem"); len(items) > 0 {
		return TADIGSummaryVariant{Items: items}
	}
	if networks := org.All("NetworkList", "Network"); len(networks) > 0 {
		return NetworkListVariant{Networks: networks}
	}
	return NoNetworkList{}
}

// ASNListShape is the resolved form of a network's autonomous system list.
type ASNListShape interface {
	Entries() []models.ASN
	isASNListShape()
}

// GRXASNVariant holds GRX/IPX routing ASNsList/ASNItem entries, each with an owner.
type GRXASNVariant struct {
	Items []*xmltree.Node
}

// InterworkingASNVariant holds the bare AS numbers of the IP roaming
// interworking section. They carry no owner.
type InterworkingASNVariant struct {
	Numbers []string
}

type NoASNList struct{}

func (GRXASNVariant) isASNListShape() {}
func (InterworkingASNVariant) isASNListShape() {}
func (NoASNList) isASNListShape() {}

func (v GRXASNVariant) Entries() []models.ASN {
	out := make([]models.ASN, 0, len(v.Items))
	for _, item := range v.Items {
		out = append(out, models.ASN{
			ASNumber: item.Str("ASN"),
			Operator: item.Str("NetworkOwner"),
		})
	}
	return out
}

func (v InterworkingASNVariant) Entries() []models.ASN {
	out := make([]models.ASN, 0, len(v.Numbers))
	for _, number := range v.Numbers {
		asn := number
		out = append(out, models.ASN{ASNumber: &asn})
	}
	return out
}

func (NoASNList) Entries() []models.ASN {
	return []models.ASN{}
}

// ResolveASNList prefers the GRX/IPX routing list and falls back to the
// interworking list.
func ResolveASNList(networkData *xmltree.Node) ASNListShape {
	grx := networkData.First("GRXIPXRoutingForDataRoamingSection", "GRXIPXRoutingForDataRoaming")
	if items := grx.All("ASNsList", "ASNItem"); len(items) > 0 {
		return GRXASNVariant{Items: items}
	}
	numbers := networkData.Texts("IPRoaming_IW_InfoSection", "IPRoaming_IW_Info_General", "ASNsList", "ASN")
	if len(numbers) > 0 {
		return InterworkingASNVariant{Numbers: numbers}
	}
	return NoASNList{}
}

// PrimaryTADIGCode returns the natural key of a document: the first TADIG
// summary code, else the first network list code, else "".
func PrimaryTADIGCode(doc *xmltree.Node) string {
	org := doc.First("OrganisationInfo")
	if code := org.NonEmpty("TADIGSummaryList", "TADIGSummaryItem", "TADIGCode"); code != nil {
		return *code
	}
	if code := org.NonEmpty("NetworkList", "Network", "TADIGCode"); code != nil {
		return *code
	}
	return ""
}
