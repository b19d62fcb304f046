package spdx

import (
	"strings"

	"github.com/github/go-spdx/v2/spdxexp/spdxlicenses"
)

// The id tables come from the SPDX license-list-data bundled with go-spdx.
// Deprecated ids such as "GPL-2.0+" or "GPL-2.0-with-classpath-exception"
// are still valid in expressions and are kept.
var (
	licenseIndex   = foldIndex(spdxlicenses.GetLicenses(), spdxlicenses.GetDeprecated())
	exceptionIndex = foldIndex(spdxlicenses.GetExceptions())
)

func foldIndex(lists ...[]string) map[string]string {
	m := map[string]string{}
	for _, ids := range lists {
		for _, id := range ids {
			key := strings.ToLower(id)
			if _, dup := m[key]; !dup {
				m[key] = id
			}
		}
	}
	return m
}

// LookupLicense returns the canonical spelling of a known license id.
func LookupLicense(id string) (string, bool) {
	c, ok := licenseIndex[strings.ToLower(id)]
	return c, ok
}

// LookupException returns the canonical spelling of a known exception id.
func LookupException(id string) (string, bool) {
	c, ok := exceptionIndex[strings.ToLower(id)]
	return c, ok
}
