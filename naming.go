package websave

import "strings"

// NamingStrategy selects how output filename stems are derived from
// search results. A strategy is a pure function of a SearchResult; it
// never picks an extension and never touches the filesystem. Collision
// handling is owned by the batch naming resolver.
type NamingStrategy string

// Naming strategies.
const (
	NamingTitle       NamingStrategy = "title"
	NamingDomain      NamingStrategy = "domain"
	NamingSequential  NamingStrategy = "sequential"
	NamingTitleDomain NamingStrategy = "title-domain"
)

// ParseNamingStrategy parses a string into a NamingStrategy.
// Returns EINVALID for unknown strategies.
func ParseNamingStrategy(s string) (NamingStrategy, error) {
	switch strings.ToLower(s) {
	case "title":
		return NamingTitle, nil
	case "domain":
		return NamingDomain, nil
	case "sequential":
		return NamingSequential, nil
	case "title-domain":
		return NamingTitleDomain, nil
	default:
		return "", Errorf(EINVALID, "invalid naming strategy %q", s)
	}
}

func (n NamingStrategy) String() string {
	return string(n)
}
