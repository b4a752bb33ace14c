// SPDX-License-Identifier: GPL-3.0-only

package raex

import (
	"raex-server/commons/xmltree"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, doc string) *xmltree.Node {
	t.Helper()
	root, err := xmltree.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	return root
}

const summaryListOrg = `
<TADIGSummaryList>
  <TADIGSummaryItem>
    <TADIGCode>AAA01</TADIGCode>
    <NetworkProperties>
      <MCC>310</MCC>
      <MNC>410</MNC>
      <NetworkType>Terrestrial</NetworkType>
      <VPMNHPMNList><VPMNHPMN>GSM</VPMNHPMN><VPMNHPMN>LTE</VPMNHPMN></VPMNHPMNList>
    </NetworkProperties>
  </TADIGSummaryItem>
</TADIGSummaryList>`

const networkListOrg = `
<NetworkList>
  <Network>
    <TADIGCode>BBB01</TADIGCode>
    <NetworkType>Terrestrial</NetworkType>
    <NetworkName>Beta</NetworkName>
    <NetworkData>
      <RoutingInfoSection><RoutingInfo><CCITT_E212_NumberSeries>
        <MCC>234</MCC><MNC>15</MNC>
      </CCITT_E212_NumberSeries></RoutingInfo></RoutingInfoSection>
    </NetworkData>
  </Network>
</NetworkList>`

func orgDoc(body string) string {
	return "<RAEXIR21><OrganisationInfo>" + body + "</OrganisationInfo></RAEXIR21>"
}

func TestResolveNetworkListSummaryVariant(t *testing.T) {
	org := parseDoc(t, orgDoc(summaryListOrg)).First("OrganisationInfo")

	shape := ResolveNetworkList(org)
	require.IsType(t, TADIGSummaryVariant{}, shape)

	summaries := shape.Summaries()
	require.Len(t, summaries, 1)
	assert.Equal(t, "AAA01", *summaries[0].TADIGCode)
	assert.Equal(t, "310", *summaries[0].MCC)
	assert.Equal(t, "410", *summaries[0].MNC)
	assert.Equal(t, "Terrestrial", *summaries[0].NetworkType)
	assert.Equal(t, "GSM, LTE", *summaries[0].VPMNHPMNList)
	assert.Nil(t, summaries[0].NetworkName)
}

func TestResolveNetworkListNetworkVariant(t *testing.T) {
	org := parseDoc(t, orgDoc(networkListOrg)).First("OrganisationInfo")

	shape := ResolveNetworkList(org)
	require.IsType(t, NetworkListVariant{}, shape)

	summaries := shape.Summaries()
	require.Len(t, summaries, 1)
	assert.Equal(t, "BBB01", *summaries[0].TADIGCode)
	assert.Equal(t, "234", *summaries[0].MCC)
	assert.Equal(t, "15", *summaries[0].MNC)
	assert.Equal(t, "Beta", *summaries[0].NetworkName)
	assert.Nil(t, summaries[0].VPMNHPMNList)
}

func TestResolveNetworkListPrefersSummaries(t *testing.T) {
	org := parseDoc(t, orgDoc(summaryListOrg+networkListOrg)).First("OrganisationInfo")

	summaries := ResolveNetworkList(org).Summaries()
	require.Len(t, summaries, 1)
	assert.Equal(t, "AAA01", *summaries[0].TADIGCode)
}

func TestResolveNetworkListEmpty(t *testing.T) {
	org := parseDoc(t, orgDoc("<OrganisationName>X</OrganisationName>")).First("OrganisationInfo")

	shape := ResolveNetworkList(org)
	assert.IsType(t, NoNetworkList{}, shape)
	assert.NotNil(t, shape.Summaries())
	assert.Empty(t, shape.Summaries())

	assert.Empty(t, ResolveNetworkList(nil).Summaries())
}

func TestResolveASNList(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		numbers   []string
		operators []string
	}{
		{
			name: "grx items with owners",
			data: `<GRXIPXRoutingForDataRoamingSection><GRXIPXRoutingForDataRoaming><ASNsList>
			  <ASNItem><ASN>64512</ASN><NetworkOwner>Acme</NetworkOwner></ASNItem>
			  <ASNItem><ASN>64513</ASN><NetworkOwner>Acme 2</NetworkOwner></ASNItem>
			</ASNsList></GRXIPXRoutingForDataRoaming></GRXIPXRoutingForDataRoamingSection>
			<IPRoaming_IW_InfoSection><IPRoaming_IW_Info_General><ASNsList><ASN>1</ASN></ASNsList></IPRoaming_IW_Info_General></IPRoaming_IW_InfoSection>`,
			numbers:   []string{"64512", "64513"},
			operators: []string{"Acme", "Acme 2"},
		},
		{
			name: "interworking numbers",
			data: `<IPRoaming_IW_InfoSection><IPRoaming_IW_Info_General><ASNsList>
			  <ASN>25135</ASN><ASN>12576</ASN>
			</ASNsList></IPRoaming_IW_Info_General></IPRoaming_IW_InfoSection>`,
			numbers:   []string{"25135", "12576"},
			operators: []string{"", ""},
		},
		{
			name:      "none",
			data:      `<Other>x</Other>`,
			numbers:   []string{},
			operators: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parseDoc(t, "<NetworkData>"+tt.data+"</NetworkData>")

			entries := ResolveASNList(root).Entries()
			require.NotNil(t, entries)

			numbers := []string{}
			operators := []string{}
			for _, entry := range entries {
				numbers = append(numbers, *entry.ASNumber)
				if entry.Operator == nil {
					operators = append(operators, "")
				} else {
					operators = append(operators, *entry.Operator)
				}
			}
			assert.Equal(t, tt.numbers, numbers)
			assert.Equal(t, tt.operators, operators)
		})
	}
}

func TestPrimaryTADIGCode(t *testing.T) {
	tests := []struct {
		name string
		org  string
		want string
	}{
		{"summary list first", summaryListOrg + networkListOrg, "AAA01"},
		{"network list fallback", networkListOrg, "BBB01"},
		{
			"empty summary code falls back",
			`<TADIGSummaryList><TADIGSummaryItem><TADIGCode></TADIGCode></TADIGSummaryItem></TADIGSummaryList>` + networkListOrg,
			"BBB01",
		},
		{"absent", `<OrganisationName>Nobody</OrganisationName>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrimaryTADIGCode(parseDoc(t, orgDoc(tt.org))))
		})
	}
}
