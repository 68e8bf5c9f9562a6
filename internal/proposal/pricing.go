package proposal

import "strings"

// Scope is the project size tier used for pricing.
type Scope string

const (
	ScopeSmall  Scope = "small"
	ScopeMedium Scope = "medium"
	ScopeLarge  Scope = "large"
)

var priceRanges = map[Scope]string{
	ScopeSmall:  "Starting from $15,000–$35,000",
	ScopeMedium: "Typical range: $35,000–$100,000 depending on scope",
	ScopeLarge:  "Starting from $100,000+ depending on requirements",
}

// ParseScope maps s to a tier case-insensitively. Anything unrecognized,
// including the empty string, is medium.
func ParseScope(s string) Scope {
	scope := Scope(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := priceRanges[scope]; ok {
		return scope
	}
	return ScopeMedium
}

// PriceRange returns the investment estimate text for a project scope.
func PriceRange(scope string) string {
	return priceRanges[ParseScope(scope)]
}
