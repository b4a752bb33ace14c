// SPDX-License-Identifier: GPL-3.0-only

package xmltree

import (
	"raex-server/commons"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<RAEXIR21 xmlns="https://infocentre.gsma.com/RAEX" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <RAEXIR21FileHeader>
    <FileCreationTimestamp>2024-01-02T10:00:00</FileCreationTimestamp>
    <SenderTADIG>USAAM</SenderTADIG>
  </RAEXIR21FileHeader>
  <OrganisationInfo version="3">
    <OrganisationName>  Acme Mobile  </OrganisationName>
    <Empty></Empty>
    <Item>one</Item>
    <Item>two</Item>
  </OrganisationInfo>
</RAEXIR21>`

func TestParseStripsDocumentWrapper(t *testing.T) {
	root, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, "RAEXIR21", root.Name)
	assert.Equal(t, "USAAM", *root.Str("RAEXIR21FileHeader", "SenderTADIG"))
}

func TestParseMergesAttributesWithChildren(t *testing.T) {
	root, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, "3", *root.Str("OrganisationInfo", "version"))
	assert.Equal(t, "https://infocentre.gsma.com/RAEX", *root.Str("xmlns"))
	assert.Equal(t, "http://www.w3.org/2001/XMLSchema-instance", *root.Str("xmlns:xsi"))
}

func TestParseTrimsText(t *testing.T) {
	root, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, "Acme Mobile", *root.Str("OrganisationInfo", "OrganisationName"))
	empty := root.Str("OrganisationInfo", "Empty")
	require.NotNil(t, empty)
	assert.Equal(t, "", *empty)
	assert.Nil(t, root.NonEmpty("OrganisationInfo", "Empty"))
}

func TestParseSingletonsAreSequences(t *testing.T) {
	root, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	assert.Len(t, root.All("OrganisationInfo", "OrganisationName"), 1)
	assert.Equal(t, []string{"one", "two"}, root.Texts("OrganisationInfo", "Item"))
}

func TestParseDecodesDeclaredCharset(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><Root><Name>T\xe9l\xe9com</Name></Root>"
	root, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "Télécom", *root.Str("Name"))
}

func TestParseSkipsByteOrderMark(t *testing.T) {
	docs := map[string]string{
		"with declaration":    "\ufeff<?xml version=\"1.0\" encoding=\"UTF-8\"?><RAEXIR21><SenderTADIG>USAAM</SenderTADIG></RAEXIR21>",
		"without declaration": "\ufeff<RAEXIR21><SenderTADIG>USAAM</SenderTADIG></RAEXIR21>",
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			root, err := Parse(strings.NewReader(doc))
			require.NoError(t, err)
			assert.Equal(t, "RAEXIR21", root.Name)
			assert.Equal(t, "USAAM", *root.Str("SenderTADIG"))
		})
	}
}

func TestParseMalformed(t *testing.T) {
	cases := map[string]string{
		"empty":      "",
		"whitespace": "   \n",
		"unclosed":   "<Root><Child></Root>",
		"truncated":  "<Root><Child>text",
		"two roots":  "<A/><B/>",
		"stray text": "hello <A/>",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, commons.ErrMalformedDocument)
		})
	}
}

func TestNormalize(t *testing.T) {
	a := &Node{Name: "a"}
	b := &Node{Name: "b"}
	var absent *Node

	assert.Empty(t, Normalize(nil))
	assert.NotNil(t, Normalize(nil))
	assert.Empty(t, Normalize(absent))
	assert.Empty(t, Normalize([]*Node(nil)))
	assert.Equal(t, []*Node{a}, Normalize(a))
	assert.Equal(t, []*Node{a, b}, Normalize([]*Node{a, b}))

	for _, input := range []any{nil, absent, a, []*Node{a, b}, []*Node{}} {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestAccessorsOnAbsentBranches(t *testing.T) {
	root, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	assert.Nil(t, root.First("Missing", "Deeper", "Still"))
	assert.Nil(t, root.Str("Missing", "Deeper"))
	assert.Empty(t, root.All("Missing", "Deeper"))
	assert.Empty(t, root.Texts("OrganisationInfo", "Missing"))
	assert.False(t, root.Has("OrganisationInfo", "Missing"))

	var none *Node
	assert.Nil(t, none.First("x"))
	assert.Empty(t, none.All("x", "y"))
	assert.Nil(t, none.Value())
	assert.Nil(t, none.Names())
}

func TestValueShape(t *testing.T) {
	root, err := Parse(strings.NewReader(`<Root a="1"><Leaf>x</Leaf><Leaf>y</Leaf><Inner><Deep>z</Deep></Inner></Root>`))
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"a":    []any{"1"},
		"Leaf": []any{"x", "y"},
		"Inner": []any{
			map[string]any{"Deep": []any{"z"}},
		},
	}, root.Value())
	assert.Equal(t, []string{"Inner", "Leaf", "a"}, root.Names())
}
