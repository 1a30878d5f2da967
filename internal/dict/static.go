// internal/dict/static.go
//
// Offline dictionary backed by the bundled TSV word list. Used when no
// DICT_BASE_URL is configured so the server always starts with a working
// (if small) dictionary. Loading happens once, on first lookup.
package dict

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kipackjeong/wordbingo-server/assets"
)

type staticEntry struct {
	pos        string
	definition string
}

// Static serves lookups from the embedded dictionary.
type Static struct {
	once    sync.Once
	entries map[string]staticEntry
	loadErr error
}

// NewStatic returns an offline client over assets/dictionary.tsv.
func NewStatic() *Static {
	return &Static{}
}

func (s *Static) Name() string { return "static" }

func (s *Static) load() {
	lines, err := assets.DictionaryLines()
	if err != nil {
		s.loadErr = err
		return
	}
	s.entries = make(map[string]staticEntry, len(lines))
	for _, line := range lines {
		// word <TAB> pos <TAB> definition
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) != 3 {
			continue
		}
		word := strings.TrimSpace(parts[0])
		if word == "" {
			continue
		}
		s.entries[word] = staticEntry{
			pos:        strings.TrimSpace(parts[1]),
			definition: strings.TrimSpace(parts[2]),
		}
	}
}

// Lookup resolves a word against the embedded list. The only failure mode
// is a broken embedded asset, which counts as the dictionary being
// unavailable.
func (s *Static) Lookup(_ context.Context, word string) (Result, error) {
	s.once.Do(s.load)
	if s.loadErr != nil {
		return Result{}, fmt.Errorf("%w: embedded dictionary: %v", ErrUnavailable, s.loadErr)
	}
	e, ok := s.entries[strings.TrimSpace(word)]
	if !ok {
		return Result{Exists: false}, nil
	}
	return Result{Exists: true, POS: e.pos, Definition: e.definition}, nil
}

// Size reports how many entries the embedded dictionary holds.
func (s *Static) Size() int {
	s.once.Do(s.load)
	return len(s.entries)
}
