package catalog

import (
	"strings"

	"github.com/barkwell/frontdesk/pkg/logging"
)

// Family is the coarse booking classification for a service.
type Family string

const (
	FamilyDaycare    Family = "daycare"
	FamilySpa        Family = "spa"
	FamilyBoarding   Family = "boarding"
	FamilyEvaluation Family = "evaluation"
	FamilyUnknown    Family = ""
)

// ParseFamily normalizes a free-form family string.
func ParseFamily(s string) Family {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daycare", "day care":
		return FamilyDaycare
	case "spa", "grooming":
		return FamilySpa
	case "boarding":
		return FamilyBoarding
	case "evaluation", "eval":
		return FamilyEvaluation
	default:
		return FamilyUnknown
	}
}

// Classifier resolves the family of a service. An explicit per-id table
// (configuration) wins; the upstream-reported family is consulted next; name
// substring matching is the last resort and logs when it fires, since a
// renamed upstream service silently changes booking behavior.
type Classifier struct {
	table  map[string]Family
	cache  *Cache
	logger *logging.Logger
}

// NewClassifier builds a classifier over the given id-to-family table and
// catalog cache.
func NewClassifier(table map[string]string, cache *Cache, logger *logging.Logger) *Classifier {
	if logger == nil {
		logger = logging.Default()
	}
	parsed := make(map[string]Family, len(table))
	for id, fam := range table {
		if f := ParseFamily(fam); f != FamilyUnknown {
			parsed[id] = f
		}
	}
	return &Classifier{table: parsed, cache: cache, logger: logger}
}

// Classify determines the family for a primary service id. Returns
// FamilyUnknown only when every strategy comes up empty.
func (c *Classifier) Classify(serviceID string) Family {
	if f, ok := c.table[serviceID]; ok {
		return f
	}

	v, ok := c.cache.Lookup(serviceID)
	if !ok {
		return FamilyUnknown
	}
	if f := ParseFamily(v.Family); f != FamilyUnknown {
		return f
	}

	if f := familyFromName(v.Name); f != FamilyUnknown {
		c.logger.Warn("classified service by name substring; add it to the family table",
			"service_id", serviceID,
			"service_name", v.Name,
			"family", string(f),
		)
		return f
	}
	return FamilyUnknown
}

func familyFromName(name string) Family {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "boarding"), strings.Contains(n, "overnight"):
		return FamilyBoarding
	case strings.Contains(n, "daycare"), strings.Contains(n, "day care"):
		return FamilyDaycare
	case strings.Contains(n, "eval"):
		return FamilyEvaluation
	case strings.Contains(n, "bath"), strings.Contains(n, "groom"), strings.Contains(n, "nail"), strings.Contains(n, "spa"):
		return FamilySpa
	default:
		return FamilyUnknown
	}
}
