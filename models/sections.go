// SPDX-License-Identifier: GPL-3.0-only

package models

// Section shapes of a FileRecord. Values are relayed from the interchange
// document as raw strings; nil means the element was absent.

type E214 struct {
	CC *string `json:"CC"`
	NC *string `json:"NC"`
}

// TADIGSummary is one network entry. VPMNHPMNList is set for documents with a
// TADIG summary list, NetworkName for documents that only carry a network list.
type TADIGSummary struct {
	TADIGCode    *string `json:"TADIGCode"`
	MCC          *string `json:"MCC"`
	MNC          *string `json:"MNC"`
	NetworkType  *string `json:"NetworkType"`
	VPMNHPMNList *string `json:"VPMNHPMNList,omitempty"`
	NetworkName  *string `json:"NetworkName,omitempty"`
}

type NumberRange struct {
	CC           *string `json:"CC"`
	NDC          *string `json:"NDC"`
	SNRangeStart *string `json:"SN_RangeStart"`
	SNRangeStop  *string `json:"SN_RangeStop"`
	NetworkOwner *string `json:"NetworkOwner,omitempty"`
}

type GTAddressInfo struct {
	CC           *string `json:"CC"`
	NDC          *string `json:"NDC"`
	SNRangeStart *string `json:"SN_RangeStart"`
	SNRangeStop  *string `json:"SN_RangeStop"`
}

type IPAddressInfo struct {
	IPAddress      *string `json:"IPAddress"`
	IPAddressRange *string `json:"IPAddressRange"`
}

type NwNode struct {
	NwElementType *string       `json:"NwElementType"`
	GTAddressInfo GTAddressInfo `json:"GTAddressInfo"`
	IPAddressInfo IPAddressInfo `json:"IPAddressInfo"`
	VendorInfo    *string       `json:"VendorInfo"`
	UTCTimeOffset *string       `json:"UTCTimeOffset"`
}

type DPC struct {
	SCSignature *string `json:"SCSignature"`
	SCType      *string `json:"SCType"`
	DPC         *string `json:"DPC"`
}

type SCCPCarrier struct {
	CarrierName      *string `json:"carrierName"`
	ConnectivityInfo *string `json:"connectivityInfo"`
	DPCList          []DPC   `json:"dpcList"`
}

type BackboneIP struct {
	IPAddressRange *string `json:"ipAddressRange"`
	NetworkOwner   *string `json:"networkOwner"`
}

type GRXIPXRouting struct {
	EffectiveDateOfChange  *string      `json:"effectiveDateOfChange"`
	GRXProvider            *string      `json:"grxProvider"`
	InterPMNBackboneIPList []BackboneIP `json:"interPMNBackboneIPList"`
}

type DNSEntry struct {
	IPAddress    *string `json:"ipAddress"`
	DNSName      *string `json:"dnsName"`
	Priority     *string `json:"priority"`
	NetworkOwner *string `json:"networkOwner"`
}

type DNSInfo struct {
	Authoritative []DNSEntry `json:"authoritative"`
	Local         []DNSEntry `json:"local"`
}

// ASN is an autonomous system entry; Operator is nil when the document only
// lists bare AS numbers.
type ASN struct {
	ASNumber *string `json:"asNumber"`
	Operator *string `json:"operator"`
}

type APNCredential struct {
	APN      *string `json:"APN"`
	Username *string `json:"Username,omitempty"`
	Password *string `json:"Password,omitempty"`
}

type WebAPN struct {
	Credential      APNCredential `json:"credential"`
	APNTypes        []string      `json:"apnTypes"`
	PDUSessionTypes []string      `json:"pduSessionTypes"`
	PDNTypes        []string      `json:"pdnTypes"`
	PDPTypes        []string      `json:"pdpTypes"`
	PrimaryDNS      *string       `json:"primaryDNS"`
	SecondaryDNS    *string       `json:"secondaryDNS"`
}

type WAPAPN struct {
	Credential       APNCredential `json:"credential"`
	APNTypes         []string      `json:"apnTypes"`
	GatewayIPAddress *string       `json:"gatewayIPAddress"`
	ServerURL        *string       `json:"serverURL"`
	Ports            []string      `json:"ports"`
}

type MMSAPN struct {
	Credential         APNCredential `json:"credential"`
	GatewayIPAddress   *string       `json:"gatewayIPAddress"`
	MessagingServerURL *string       `json:"messagingServerURL"`
}

type TestingAPNs struct {
	Web []WebAPN `json:"web"`
	WAP []WAPAPN `json:"wap"`
	MMS []MMSAPN `json:"mms"`
}

type GTPVersions struct {
	SGSN []string `json:"sgsn"`
	GGSN []string `json:"ggsn"`
}

type QoSProfile struct {
	ProfileName  *string `json:"profileName"`
	TrafficClass *string `json:"trafficClass"`
	ARP          *string `json:"arp"`
}

type PacketDataServiceInfo struct {
	APNOperatorIdentifiers []string     `json:"apnOperatorIdentifiers"`
	TestingAPNs            TestingAPNs  `json:"testingAPNs"`
	GTPVersions            GTPVersions  `json:"gtpVersions"`
	QoSProfiles            []QoSProfile `json:"qosProfiles"`
}
