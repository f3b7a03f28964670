// Package countries exposes the ISO-3166 country list the declaration
// form offers, with names localized through x/text CLDR data.
package countries

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// List enumerates every ISO-3166 country that has an alpha-3 code and a
// display name in the given locale, sorted with that locale's collation.
// The result is stable for a given x/text version, so callers build it
// once at startup.
func List(tag language.Tag) []Country {
	namer := display.Regions(tag)
	seen := make(map[string]bool)
	var out []Country

	for a := 'A'; a <= 'Z'; a++ {
		for b := 'A'; b <= 'Z'; b++ {
			region, err := language.ParseRegion(string([]rune{a, b}))
			if err != nil || !region.IsCountry() || region.IsPrivateUse() {
				continue
			}
			if region.String() == "ZZ" {
				// The "unknown region" placeholder has CLDR names too.
				continue
			}

			alpha3 := region.ISO3()
			if len(alpha3) != 3 || seen[alpha3] {
				continue
			}

			name := namer.Name(region)
			if name == "" || name == region.String() {
				// No CLDR name for this region in the requested locale.
				continue
			}

			seen[alpha3] = true
			out = append(out, Country{Code: alpha3, Name: name})
		}
	}

	col := collate.New(tag)
	sort.Slice(out, func(i, j int) bool {
		return col.CompareString(out[i].Name, out[j].Name) < 0
	})

	return out
}
