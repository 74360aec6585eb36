package describe

import "strings"

// SuffixRule pluralizes words ending in one of Suffixes. With Strip set the
// matched suffix is removed before Ending is appended; otherwise Ending is
// appended to the whole word.
type SuffixRule struct {
	Suffixes []string
	Strip    bool
	Ending   string
}

func (r SuffixRule) apply(word string) (string, bool) {
	for _, s := range r.Suffixes {
		if strings.HasSuffix(word, s) {
			if r.Strip {
				return strings.TrimSuffix(word, s) + r.Ending, true
			}
			return word + r.Ending, true
		}
	}
	return "", false
}

// Inflector is a fixed plural lookup table for one language.
//
// Pluralize tries, in order: Irregular, Nasal, Liquid, Epenthetic, and
// finally appends Default. Only the first matching rule applies.
type Inflector struct {
	Irregular  map[string]string
	Nasal      []SuffixRule
	Liquid     []SuffixRule
	Epenthetic []SuffixRule
	Default    string
}

// Pluralize returns the plural of a singular noun.
//
// @example
// PortugueseBR.Inflector.Pluralize("avião")  // "aviões"
// PortugueseBR.Inflector.Pluralize("animal") // "animais"
// PortugueseBR.Inflector.Pluralize("colher") // "colheres"
// PortugueseBR.Inflector.Pluralize("gato")   // "gatos"
func (in Inflector) Pluralize(word string) string {
	if p, ok := in.Irregular[word]; ok {
		return p
	}
	for _, rules := range [][]SuffixRule{in.Nasal, in.Liquid, in.Epenthetic} {
		for _, r := range rules {
			if p, ok := r.apply(word); ok {
				return p
			}
		}
	}
	return word + in.Default
}

// WithIrregulars returns a copy of in whose irregular table also holds extra.
// Entries in extra win over existing ones.
func (in Inflector) WithIrregulars(extra map[string]string) Inflector {
	merged := make(map[string]string, len(in.Irregular)+len(extra))
	for k, v := range in.Irregular {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	in.Irregular = merged
	return in
}
