// SPDX-License-Identifier: GPL-3.0-only

// Package raex assembles FileRecords from parsed RAEX IR.21 documents.
package raex

import (
	"encoding/json"
	"path/filepath"
	"raex-server/commons"
	"raex-server/commons/xmltree"
	"raex-server/models"
	"strings"

	"gorm.io/datatypes"
)

// Assemble walks every section of doc once and builds the canonical record.
// sourceFilename names the uploaded file and is only used when the document
// carries neither a TADIG code nor an organisation name.
func Assemble(doc *xmltree.Node, sourceFilename string) *models.FileRecord {
	header := doc.First("RAEXIR21FileHeader")
	org := doc.First("OrganisationInfo")
	network := org.First("NetworkList", "Network")
	networkData := network.First("NetworkData")
	routingInfo := networkData.First("RoutingInfoSection", "RoutingInfo")
	grxIpx := networkData.First("GRXIPXRoutingForDataRoamingSection", "GRXIPXRoutingForDataRoaming")

	primaryTADIG := PrimaryTADIGCode(doc)
	organisationName := org.Str("OrganisationName")

	e214 := models.E214{
		CC: routingInfo.NonEmpty("CCITT_E214_MGT", "MGT_CC"),
		NC: routingInfo.NonEmpty("CCITT_E214_MGT", "MGT_NC"),
	}

	record := &models.FileRecord{
		FileName:              displayName(primaryTADIG, organisationName, sourceFilename),
		FileCreationTimestamp: header.Str("FileCreationTimestamp"),
		SenderTADIG:           header.Str("SenderTADIG"),
		OrganisationName:      organisationName,
		E214:                  datatypes.NewJSONType(e214),
		TADIGSummaryList:      ResolveNetworkList(org).Summaries(),
		MSISDNNumberRanges:    rangeData(routingInfo.All("CCITT_E164_NumberSeries", "MSISDN_NumberRanges", "RangeData"), true),
		GTNumberRanges:        rangeData(routingInfo.All("CCITT_E164_NumberSeries", "GT_NumberRanges", "RangeData"), true),
		MSRNNumberRanges:      rangeData(routingInfo.All("CCITT_E164_NumberSeries", "MSRN_NumberRanges", "RangeData"), false),
		NPNumberRanges:        npRanges(routingInfo.All("NP_E164NumberRangesList", "NP_E164NumberRange")),
		NwNodes:               nwNodes(networkData.All("NetworkElementsInfoSection", "NetworkElementsInfo", "NwNodeList", "NwNode")),
		InternationalSCCP:     sccpCarriers(networkData.All("InternationalSCCPGatewaySection", "InternationalSCCPGatewayInfo", "InternationalSCCPCarrierList", "SCCPCarrierItem")),
		DomesticSCCPGateway:   blob(networkData.First("DomesticSCCPGatewaySection")),
		GRXIPXRouting:         datatypes.NewJSONType(grxIpxRouting(grxIpx)),
		DNSInfo:               datatypes.NewJSONType(dnsInfo(grxIpx)),
		ASNInfo:               ResolveASNList(networkData).Entries(),
		PacketDataServiceInfo: datatypes.NewJSONType(packetDataServiceInfo(networkData.First("PacketDataServiceInfoSection", "PacketDataServiceInfo"))),
		SupportedTechnologies: blob(network.First("SupportedTechnologies")),
	}
	if primaryTADIG != "" {
		record.PrimaryTADIGCode = &primaryTADIG
	}
	record.FileNameSortKey = commons.SortKey(record.FileName)

	if raw := org.Str("CountryInitials"); raw != nil {
		initials := strings.ToUpper(*raw)
		record.CountryInitials = &initials
		if country, ok := commons.ResolveCountry(initials); ok {
			record.CountryName = &country.Name
			record.CountryFlagURL = &country.FlagURL
		}
	}
	return record
}

// displayName joins the primary TADIG code and organisation name, falling back
// to the uploaded file name without its extension.
func displayName(primaryTADIG string, organisationName *string, sourceFilename string) string {
	parts := make([]string, 0, 2)
	if primaryTADIG != "" {
		parts = append(parts, primaryTADIG)
	}
	if organisationName != nil && *organisationName != "" {
		parts = append(parts, *organisationName)
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	base := filepath.Base(strings.ReplaceAll(sourceFilename, `\`, "/"))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func rangeData(items []*xmltree.Node, withOwner bool) []models.NumberRange {
	out := make([]models.NumberRange, 0, len(items))
	for _, item := range items {
		numberRange := item.First("NumberRange")
		entry := models.NumberRange{
			CC:           numberRange.Str("CC"),
			NDC:          numberRange.Str("NDC"),
			SNRangeStart: numberRange.Str("SN_Range", "SN_RangeStart"),
			SNRangeStop:  numberRange.Str("SN_Range", "SN_RangeStop"),
		}
		if withOwner {
			entry.NetworkOwner = item.Str("NetworkOwner")
		}
		out = append(out, entry)
	}
	return out
}

func npRanges(items []*xmltree.Node) []models.NumberRange {
	out := make([]models.NumberRange, 0, len(items))
	for _, item := range items {
		out = append(out, models.NumberRange{
			CC:           item.Str("CC"),
			NDC:          item.Str("NDC"),
			SNRangeStart: item.Str("SN_Range", "SN_RangeStart"),
			SNRangeStop:  item.Str("SN_Range", "SN_RangeStop"),
		})
	}
	return out
}

func nwNodes(items []*xmltree.Node) []models.NwNode {
	out := make([]models.NwNode, 0, len(items))
	for _, node := range items {
		gt := node.First("GTAddressInfo")
		ip := node.First("IPAddressInfo")
		out = append(out, models.NwNode{
			NwElementType: node.Str("NwElementType"),
			GTAddressInfo: models.GTAddressInfo{
				CC:           gt.Str("CC"),
				NDC:          gt.Str("NDC"),
				SNRangeStart: gt.Str("SN_Range", "SN_RangeStart"),
				SNRangeStop:  gt.Str("SN_Range", "SN_RangeStop"),
			},
			IPAddressInfo: models.IPAddressInfo{
				IPAddress:      ip.Str("IPAddress"),
				IPAddressRange: ip.Str("IPAddressRange"),
			},
			VendorInfo:    node.Str("VendorInfo"),
			UTCTimeOffset: node.Str("UTCTimeOffset"),
		})
	}
	return out
}

func sccpCarriers(items []*xmltree.Node) []models.SCCPCarrier {
	out := make([]models.SCCPCarrier, 0, len(items))
	for _, carrier := range items {
		dpcItems := carrier.All("DPCList", "DPCItem")
		dpcs := make([]models.DPC, 0, len(dpcItems))
		for _, dpc := range dpcItems {
			dpcs = append(dpcs, models.DPC{
				SCSignature: dpc.Str("SCSignature"),
				SCType:      dpc.Str("SCType"),
				DPC:         dpc.Str("DPC"),
			})
		}
		out = append(out, models.SCCPCarrier{
			CarrierName:      carrier.Str("SCCPCarrierName"),
			ConnectivityInfo: carrier.Str("SCCPConnectivityInformation"),
			DPCList:          dpcs,
		})
	}
	return out
}

func grxIpxRouting(grx *xmltree.Node) models.GRXIPXRouting {
	backbone := grx.All("InterPMNBackboneIPList", "IPAddressOrRange")
	ips := make([]models.BackboneIP, 0, len(backbone))
	for _, item := range backbone {
		address := item.NonEmpty("IPAddressRange")
		if address == nil {
			address = item.Str("IPAddress")
		}
		ips = append(ips, models.BackboneIP{
			IPAddressRange: address,
			NetworkOwner:   item.Str("NetworkOwner"),
		})
	}
	return models.GRXIPXRouting{
		EffectiveDateOfChange:  grx.Str("EffectiveDateOfChange"),
		GRXProvider:            grx.Str("GRXIPXProvidersList", "GRXIPXProviderItem", "ProviderName"),
		InterPMNBackboneIPList: ips,
	}
}

func dnsInfo(grx *xmltree.Node) models.DNSInfo {
	return models.DNSInfo{
		Authoritative: dnsEntries(grx.All("PMNAuthoritativeDNSIPList", "DNSitem")),
		Local:         dnsEntries(grx.All("PMNLocalDNSIPList", "DNSitem")),
	}
}

func dnsEntries(items []*xmltree.Node) []models.DNSEntry {
	out := make([]models.DNSEntry, 0, len(items))
	for _, item := range items {
		out = append(out, models.DNSEntry{
			IPAddress:    item.NonEmpty("IPAddress"),
			DNSName:      item.NonEmpty("DNSname"),
			Priority:     item.NonEmpty("Priority"),
			NetworkOwner: item.NonEmpty("NetworkOwner"),
		})
	}
	return out
}

func packetDataServiceInfo(info *xmltree.Node) models.PacketDataServiceInfo {
	identifiers := make([]string, 0)
	for _, item := range info.All("APNOperatorIdentifierList", "APNOperatorIdentifierItem") {
		if id := item.Str("APNOperatorIdentifier"); id != nil {
			identifiers = append(identifiers, *id)
		}
	}

	testAPNs := info.First("TestingAPNs")

	webItems := testAPNs.All("APN_WEBList", "APN_WEB")
	web := make([]models.WebAPN, 0, len(webItems))
	for _, item := range webItems {
		web = append(web, models.WebAPN{
			Credential:      models.APNCredential{APN: item.Str("APN_Credential", "APN")},
			APNTypes:        item.Texts("APNTypeList", "APNType"),
			PDUSessionTypes: item.Texts("RequiredPduSessionTypeList", "RequiredPduSessionType"),
			PDNTypes:        item.Texts("RequiredPdnTypeList", "RequiredPdnType"),
			PDPTypes:        item.Texts("RequiredPdpTypeList", "RequiredPdpType"),
			PrimaryDNS:      item.Str("ISP_DNS_IP_AddressPrimary"),
			SecondaryDNS:    item.Str("ISP_DNS_IP_AddressSecondary"),
		})
	}

	wapItems := testAPNs.All("APN_WAPList", "APN_WAP")
	wap := make([]models.WAPAPN, 0, len(wapItems))
	for _, item := range wapItems {
		wap = append(wap, models.WAPAPN{
			Credential:       models.APNCredential{APN: item.Str("APN_Credential", "APN")},
			APNTypes:         item.Texts("APNTypeList", "APNType"),
			GatewayIPAddress: item.Str("WAP_Gateway_IP_Address"),
			ServerURL:        item.Str("WAP_Server_URL"),
			Ports:            item.Texts("WAP1_PortList", "WAP_Port"),
		})
	}

	mmsItems := testAPNs.All("APN_MMSList", "APN_MMS")
	mms := make([]models.MMSAPN, 0, len(mmsItems))
	for _, item := range mmsItems {
		credential := item.First("APN_Credential")
		mms = append(mms, models.MMSAPN{
			Credential: models.APNCredential{
				APN:      credential.Str("APN"),
				Username: credential.Str("Username"),
				Password: credential.Str("Password"),
			},
			GatewayIPAddress:   item.Str("MMS_Gateway_IP_Address"),
			MessagingServerURL: item.Str("Messaging_Server_URL"),
		})
	}

	qosItems := info.All("QOSProfile2G3GList", "QOSProfile2G3GItem")
	qos := make([]models.QoSProfile, 0, len(qosItems))
	for _, item := range qosItems {
		qos = append(qos, models.QoSProfile{
			ProfileName:  item.Str("ProfileName2G3G"),
			TrafficClass: item.Str("TrafficClassList", "TrafficClass"),
			ARP:          item.Str("ARP2G3GList", "ARP2G3G"),
		})
	}

	return models.PacketDataServiceInfo{
		APNOperatorIdentifiers: identifiers,
		TestingAPNs:            models.TestingAPNs{Web: web, WAP: wap, MMS: mms},
		GTPVersions: models.GTPVersions{
			SGSN: info.Texts("GTPVersionInfo", "SGSN_GTPVersionList", "SGSN_GTPVersion"),
			GGSN: info.Texts("GTPVersionInfo", "GGSN_GTPVersionList", "GGSN_GTPVersion"),
		},
		QoSProfiles: qos,
	}
}

// blob keeps a section as opaque JSON, "{}" when absent or empty.
func blob(node *xmltree.Node) datatypes.JSON {
	value := node.Value()
	if s, isText := value.(string); value == nil || (isText && s == "") {
		return datatypes.JSON("{}")
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(raw)
}
