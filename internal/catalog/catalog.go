// Package catalog holds the static vaccine-family reference table and the
// matcher that maps a recorded dose onto a family.
package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"sync"

	"reminder-engine/internal/model"
)

var (
	ErrDuplicateKey = errors.New("duplicate catalog key")
	ErrEmptyMatcher = errors.New("catalog entry has neither codings nor pattern")
	ErrUnknownKey   = errors.New("unknown catalog key")
)

// CVX is the coding system used by the built-in table.
const CVX = "http://hl7.org/fhir/sid/cvx"

type RecommendationLevel string

const (
	RecommendationRoutine RecommendationLevel = "Routine (many countries)"
	RecommendationRisk    RecommendationLevel = "Risk-based"
	RecommendationVaries  RecommendationLevel = "Varies by country"
)

type Coding struct {
	System  string `json:"system"`
	Code    string `json:"code"`
	Display string `json:"display,omitempty"`
}

type Source struct {
	Label string `json:"label"`
	URL   string `json:"url"`
	Note  string `json:"note,omitempty"`
}

// Entry describes one vaccine family. Only Key, Codings and Pattern take
// part in matching; the remaining fields are display text.
type Entry struct {
	Key                    model.FamilyKey     `json:"key"`
	Label                  string              `json:"label"`
	Short                  string              `json:"short"`
	ProtectsAgainst        string              `json:"protects_against"`
	TypicalUse             string              `json:"typical_use"`
	ScheduleNotes          string              `json:"schedule_notes"`
	CommonSideEffects      []string            `json:"common_side_effects"`
	RareSeriousSideEffects []string            `json:"rare_serious_side_effects"`
	Recommendation         RecommendationLevel `json:"recommendation"`
	Pattern                *regexp.Regexp      `json:"-"`
	Codings                []Coding            `json:"codings,omitempty"`
	Sources                []Source            `json:"sources,omitempty"`
	CostNotes              string              `json:"cost_notes,omitempty"`
}

// HasCoding reports whether the entry lists the exact (system, code) pair.
func (e Entry) HasCoding(system, code string) bool {
	for _, c := range e.Codings {
		if c.System == system && c.Code == code {
			return true
		}
	}
	return false
}

// Catalog is an immutable, ordered set of entries. Table order decides
// which family wins when more than one could match.
type Catalog struct {
	entries  []Entry
	index    map[model.FamilyKey]int
	classify TextClassifier
}

type Option func(*Catalog)

// WithClassifier replaces the pattern-based text fallback.
func WithClassifier(tc TextClassifier) Option {
	return func(c *Catalog) {
		if tc != nil {
			c.classify = tc
		}
	}
}

// New validates entries and builds a catalog. Duplicate keys and entries
// that could never match anything are rejected.
func New(entries []Entry, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Entry, len(entries)),
		index:   make(map[model.FamilyKey]int, len(entries)),
	}
	copy(c.entries, entries)

	for i, e := range c.entries {
		if _, dup := c.index[e.Key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, e.Key)
		}
		if len(e.Codings) == 0 && (e.Pattern == nil || e.Pattern.String() == "") {
			return nil, fmt.Errorf("%w: %s", ErrEmptyMatcher, e.Key)
		}
		c.index[e.Key] = i
	}

	c.classify = PatternClassifier(c.entries)
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// MustNew is New for static tables; it panics on an integrity violation.
func MustNew(entries []Entry, opts ...Option) *Catalog {
	c, err := New(entries, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog, built once per process.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = MustNew(defaultEntries())
	})
	return defaultCatalog
}

func (c *Catalog) Get(key model.FamilyKey) (Entry, bool) {
	i, ok := c.index[key]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// MustGet looks up a key that is expected to exist. An unknown key is a
// programming error against static data and panics.
func (c *Catalog) MustGet(key model.FamilyKey) Entry {
	e, ok := c.Get(key)
	if !ok {
		panic(fmt.Errorf("%w: %s", ErrUnknownKey, key))
	}
	return e
}

// Entries returns a copy of the table in order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Catalog) Len() int { return len(c.entries) }
