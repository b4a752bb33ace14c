// SPDX-License-Identifier: GPL-3.0-only

package commons

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const countryFlagURLTemplate = "https://cdn.jsdelivr.net/npm/country-flag-icons/3x2/%s.svg"

var countryNamer = display.English.Regions()

// withdrawnRegions are transitionally reserved codes with no single successor.
var withdrawnRegions = map[string]bool{"AN": true, "CS": true, "NT": true, "YU": true}

// Country is the display metadata derived from an ISO 3166-1 alpha-3 code.
type Country struct {
	Alpha2  string
	Name    string
	FlagURL string
}

// ResolveCountry maps an alpha-3 code to its alpha-2 code, English name and
// flag URL. ok is false when any step fails, and then nothing is returned.
func ResolveCountry(alpha3 string) (Country, bool) {
	code := strings.ToUpper(strings.TrimSpace(alpha3))
	if len(code) != 3 || !isASCIIUpper(code) {
		return Country{}, false
	}
	region, err := language.ParseRegion(code)
	if err != nil || !region.IsCountry() {
		return Country{}, false
	}
	// withdrawn codes such as BUR parse to their old alpha-2 form
	if region.Canonicalize() != region {
		return Country{}, false
	}
	alpha2 := region.String()
	if withdrawnRegions[alpha2] {
		return Country{}, false
	}
	name := countryNamer.Name(region)
	if len(alpha2) != 2 || name == "" {
		return Country{}, false
	}
	return Country{
		Alpha2:  alpha2,
		Name:    name,
		FlagURL: fmt.Sprintf(countryFlagURLTemplate, alpha2),
	}, true
}

func isASCIIUpper(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
