// Package licensing holds the allow-list of license identifiers considered
// safe under copyleft-averse packaging configurations.
//
// Classification is a membership check against a static set of SPDX
// identifiers: no attempt is made to interpret license text or expressions.
// Identifiers absent from the list are treated as potentially copyleft.
package licensing

import "sort"

// nonGPLLicenses is the set of SPDX license identifiers known not to be
// GPL-family. Operating as an allow-list keeps unknown and newly minted
// copyleft identifiers excluded by default.
var nonGPLLicenses = map[string]struct{}{
	"Apache-1.1":       {},
	"Apache-2.0":       {},
	"Artistic-1.0":     {},
	"BSD-1-Clause":     {},
	"BSD-2-Clause":     {},
	"BSD-3-Clause":     {},
	"bzip2-1.0.6":      {},
	"CC0-1.0":          {},
	"HPND":             {},
	"ICU":              {},
	"ISC":              {},
	"libtiff":          {},
	"MIT":              {},
	"NCSA":             {},
	"OpenSSL":          {},
	"PostgreSQL":       {},
	"PSF-2.0":          {},
	"Python-2.0":       {},
	"SMLNJ":            {},
	"Unicode-DFS-2016": {},
	"Unlicense":        {},
	"X11":              {},
	"Zlib":             {},
}

// IsNonGPL reports whether the SPDX identifier is on the non-copyleft
// allow-list. Unknown identifiers return false.
func IsNonGPL(license string) bool {
	_, ok := nonGPLLicenses[license]
	return ok
}

// NonGPLLicenses returns the allow-listed identifiers in sorted order.
func NonGPLLicenses() []string {
	out := make([]string, 0, len(nonGPLLicenses))
	for license := range nonGPLLicenses {
		out = append(out, license)
	}
	sort.Strings(out)
	return out
}
