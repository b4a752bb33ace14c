// SPDX-License-Identifier: GPL-3.0-only

package commons

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCountry(t *testing.T) {
	tests := []struct {
		in     string
		ok     bool
		alpha2 string
		name   string
	}{
		{"USA", true, "US", "United States"},
		{"gbr", true, "GB", "United Kingdom"},
		{" DEU ", true, "DE", "Germany"},
		{"XYZ", false, "", ""},
		{"BUR", false, "", ""},
		{"ZAR", false, "", ""},
		{"TMP", false, "", ""},
		{"COD", true, "CD", "Congo - Kinshasa"},
		{"US", false, "", ""},
		{"U1A", false, "", ""},
		{"", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			country, ok := ResolveCountry(tt.in)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				assert.Equal(t, Country{}, country)
				return
			}
			assert.Equal(t, tt.alpha2, country.Alpha2)
			assert.Equal(t, tt.name, country.Name)
			assert.Equal(t, "https://cdn.jsdelivr.net/npm/country-flag-icons/3x2/"+tt.alpha2+".svg", country.FlagURL)
		})
	}
}
