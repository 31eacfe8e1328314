package domain

import "strings"

// =============================================================================
// Project Name Slugs
// =============================================================================

// Slugify converts free-form text into a valid project name.
//
// The transformation rules are:
//   - Lowercase letters (a-z) and digits (0-9) are kept as-is
//   - Uppercase letters (A-Z) are converted to lowercase
//   - Spaces, underscores, and dots become hyphens
//   - All other characters are removed
//   - Hyphen runs are collapsed and leading/trailing hyphens trimmed
//
// The result always matches the project-name pattern (or is empty when the
// input contains nothing usable). Reserved-name collisions are left to the
// validator.
//
// This is a pure function with no side effects.
//
// Example:
//
//	Slugify("My Odoo Shop")   // returns "my-odoo-shop"
//	Slugify("acme_erp v2.1")  // returns "acme-erp-v2-1"
//	Slugify("--Crm--")        // returns "crm"
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastHyphen := true // suppress leading hyphens
	for _, r := range name {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
			lastHyphen = false
		case r == ' ' || r == '_' || r == '.' || r == '-':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
		// all other characters are dropped
	}

	return strings.TrimSuffix(b.String(), "-")
}
