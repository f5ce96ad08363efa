// Package dictionary provides word lists used to accept submitted words.
package dictionary

import (
	_ "embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/zyedidia/generic/mapset"
)

//go:embed words_en.txt
var embeddedEnglish string

// Set is an in-memory, case-insensitive word list.
type Set struct {
	words mapset.Set[string]
}

// NewSet normalises words to lowercase and keeps those accepted by filter.
// A nil filter keeps every non-empty word.
func NewSet(words []string, filter FilterFunc) *Set {
	if filter == nil {
		filter = KeepAll
	}
	set := mapset.New[string]()
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if !filter(w) {
			continue
		}
		set.Put(w)
	}
	return &Set{words: set}
}

// Contains reports whether word is in the list, ignoring case.
func (s *Set) Contains(word string) bool {
	return s.words.Has(strings.ToLower(word))
}

// Size returns the number of distinct entries.
func (s *Set) Size() int {
	return s.words.Size()
}

// Words returns the entries in sorted order.
func (s *Set) Words() []string {
	out := make([]string, 0, s.words.Size())
	s.words.Each(func(w string) {
		out = append(out, w)
	})
	sort.Strings(out)
	return out
}

var (
	defaultOnce sync.Once
	defaultSet  *Set
	defaultErr  error
)

// Default returns the built-in English list.
func Default() (*Set, error) {
	defaultOnce.Do(func() {
		defaultSet, defaultErr = parseList(strings.NewReader(embeddedEnglish), FilterForLang("en"))
		if defaultErr != nil {
			defaultErr = fmt.Errorf("failed to read built-in word list: %w", defaultErr)
		}
	})
	return defaultSet, defaultErr
}

func parseList(r io.Reader, filter FilterFunc) (*Set, error) {
	words, err := readWords(r)
	if err != nil {
		return nil, err
	}
	set := NewSet(words, filter)
	if set.Size() == 0 {
		return nil, fmt.Errorf("word list has no playable words")
	}
	return set, nil
}
