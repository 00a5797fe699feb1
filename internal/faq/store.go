package faq

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
)

// ErrCorpusNotFound indicates the FAQ corpus file is missing or unreadable.
// The process must not serve traffic without a loaded corpus, so callers
// treat this as fatal at startup.
var ErrCorpusNotFound = errors.New("faq corpus not found")

// Entry is one question/answer pair from the corpus.
type Entry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Store holds the loaded corpus. It is read-only after Load and safe for
// concurrent use.
type Store struct {
	entries []Entry
	// folded caches the case-folded, trimmed questions, index-aligned with
	// entries, so per-request matching does not re-normalize the corpus.
	folded []string
}

var folder = cases.Fold()

// normalize case-folds and trims a string for caseless comparison.
func normalize(s string) string {
	return strings.TrimSpace(folder.String(s))
}

// Load reads a JSON array of {question, answer} objects from path. A missing
// file yields ErrCorpusNotFound; malformed JSON is reported as-is. Corpus
// order is preserved: it decides ties during matching.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrCorpusNotFound, path)
		}
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse faq corpus %s: %w", path, err)
	}

	s := &Store{
		entries: entries,
		folded:  make([]string, len(entries)),
	}
	for i, e := range entries {
		s.folded[i] = normalize(e.Question)
	}
	return s, nil
}

// Len returns the number of corpus entries.
func (s *Store) Len() int { return len(s.entries) }

// BestMatch scores query against every corpus question and returns the
// answer of the single highest-scoring entry with its score. Entries with
// empty answers are skipped. The scan only overwrites on a strictly greater
// score, so the first entry in corpus order wins ties — matching is
// deterministic and order-stable for a fixed corpus.
//
// ok is false when the corpus is empty or no entry has an answer; the score
// is then 0.
func (s *Store) BestMatch(query string) (answer string, score float64, ok bool) {
	if s == nil || len(s.entries) == 0 {
		return "", 0, false
	}

	q := normalize(query)
	for i, e := range s.entries {
		if e.Answer == "" {
			continue
		}
		if r := Ratio(q, s.folded[i]); r > score {
			score = r
			answer = e.Answer
			ok = true
		}
	}
	return answer, score, ok
}
