package catalog

import (
	"strings"

	"reminder-engine/internal/model"
)

// TextClassifier maps the joined, lower-cased name/type text of a record to
// a family. It is only consulted when no coding matched.
type TextClassifier func(text string) (model.FamilyKey, bool)

// PatternClassifier returns the first entry, in table order, whose pattern
// matches the text.
func PatternClassifier(entries []Entry) TextClassifier {
	return func(text string) (model.FamilyKey, bool) {
		for _, e := range entries {
			if e.Pattern != nil && e.Pattern.MatchString(text) {
				return e.Key, true
			}
		}
		return "", false
	}
}

// MatchCoding scans every entry for an exact (system, code) pair.
func (c *Catalog) MatchCoding(system, code string) (model.FamilyKey, bool) {
	system = strings.TrimSpace(system)
	code = strings.TrimSpace(code)
	if system == "" || code == "" {
		return "", false
	}
	for _, e := range c.entries {
		if e.HasCoding(system, code) {
			return e.Key, true
		}
	}
	return "", false
}

// MatchFamily resolves a record to a family. Codings are authoritative and
// are tried against the whole table before the text fallback runs.
func (c *Catalog) MatchFamily(r model.VaccinationRecord) (model.FamilyKey, bool) {
	if key, ok := c.MatchCoding(r.VaccineSystem, r.VaccineCode); ok {
		return key, true
	}
	return c.classify(JoinText(r))
}

// JoinText is the text the classifier sees for a record.
func JoinText(r model.VaccinationRecord) string {
	return strings.ToLower(r.VaccineName + " " + r.VaccineType)
}

// Groups partitions records by family, preserving input order within a family.
type Groups map[model.FamilyKey][]model.VaccinationRecord

// Group matches every record and returns the partition plus the indexes of
// the records no family claimed.
func (c *Catalog) Group(records []model.VaccinationRecord) (Groups, []int) {
	groups := make(Groups)
	var unmatched []int
	for i, r := range records {
		key, ok := c.MatchFamily(r)
		if !ok {
			unmatched = append(unmatched, i)
			continue
		}
		groups[key] = append(groups[key], r)
	}
	return groups, unmatched
}
