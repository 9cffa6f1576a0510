package skill

import (
	"fmt"
	"regexp"
	"strings"
)

type MatchMode string

const (
	// MatchSubstring accepts a phrase anywhere in the text, including inside
	// a longer word ("java" matches "javascript").
	MatchSubstring MatchMode = "substring"
	// MatchWordBoundary requires the phrase to be delimited by a
	// non-alphanumeric character or the text edge.
	MatchWordBoundary MatchMode = "word_boundary"
)

func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchSubstring:
		return MatchSubstring, nil
	case MatchWordBoundary:
		return MatchWordBoundary, nil
	default:
		return "", fmt.Errorf("unknown skill match mode %q", s)
	}
}

// Extractor finds vocabulary skills in free text. It holds no mutable state
// and may be shared across goroutines.
type Extractor struct {
	vocab    *Vocabulary
	mode     MatchMode
	patterns []*regexp.Regexp
}

func NewExtractor(vocab *Vocabulary, mode MatchMode) *Extractor {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	if mode == "" {
		mode = MatchSubstring
	}

	e := &Extractor{vocab: vocab, mode: mode}
	if mode == MatchWordBoundary {
		e.patterns = make([]*regexp.Regexp, len(vocab.phrases))
		for i, p := range vocab.phrases {
			e.patterns[i] = regexp.MustCompile(`(^|[^a-z0-9])` + regexp.QuoteMeta(p.text) + `([^a-z0-9]|$)`)
		}
	}
	return e
}

func (e *Extractor) Mode() MatchMode {
	return e.mode
}

func (e *Extractor) Vocabulary() *Vocabulary {
	return e.vocab
}

func (e *Extractor) Extract(text string) Set {
	out := NewSet()
	if strings.TrimSpace(text) == "" {
		return out
	}

	lower := strings.ToLower(text)
	for i, p := range e.vocab.phrases {
		if e.contains(lower, i, p.text) {
			out.Add(p.label)
		}
	}
	return out
}

func (e *Extractor) contains(lower string, i int, p string) bool {
	if e.mode == MatchWordBoundary {
		return e.patterns[i].MatchString(lower)
	}
	return strings.Contains(lower, p)
}
