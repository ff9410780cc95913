// Package vocab obtains the set of known class names from an out-of-process
// class compiler, caching the result by a fingerprint of its inputs.
package vocab

import (
	"maps"
	"slices"
)

// Vocabulary is an immutable set of class names.
type Vocabulary struct {
	classes map[string]struct{}
}

// NewVocabulary builds a Vocabulary; duplicates are dropped.
func NewVocabulary(names []string) Vocabulary {
	classes := make(map[string]struct{}, len(names))
	for _, name := range names {
		classes[name] = struct{}{}
	}
	return Vocabulary{classes: classes}
}

// Has reports whether name is a known class.
func (v Vocabulary) Has(name string) bool {
	_, ok := v.classes[name]
	return ok
}

// Len returns the number of classes.
func (v Vocabulary) Len() int {
	return len(v.classes)
}

// Sorted returns the class names in lexical order.
func (v Vocabulary) Sorted() []string {
	return slices.Sorted(maps.Keys(v.classes))
}
