package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// partnerCaser performs Unicode case folding, so "JANE", "jane" and "Jane"
// normalize identically in any script.
var partnerCaser = cases.Fold()

// PartnerKey derives the deterministic cache key under which compatibility
// memos for one partner are stored. The same person must map to the same key
// however the caller spells them: the name is trimmed, inner runs of
// whitespace collapsed, and case folded, then joined with the birth date.
func PartnerKey(name, birthDate string) string {
	folded := partnerCaser.String(strings.Join(strings.Fields(name), " "))
	return folded + "_" + strings.TrimSpace(birthDate)
}
