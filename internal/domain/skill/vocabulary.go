package skill

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyVocabulary      = errors.New("vocabulary has no entries")
	ErrEmptyVocabularyEntry = errors.New("vocabulary entry has no phrases")
)

// labelOverrides maps phrases whose display form does not follow the
// per-word capitalization rule.
var labelOverrides = map[string]Label{
	"spring boot": "Spring Boot",
	"sql":         "SQL",
	"aws":         "AWS",
	"javascript":  "JavaScript",
	"typescript":  "TypeScript",
	"rest api":    "REST API",
}

var defaultPhrases = []string{
	"java", "spring", "spring boot", "rest api", "sql", "maven",
	"docker", "kubernetes", "python", "javascript", "react", "svelte",
	"aws", "azure", "git", "linux",
}

type Entry struct {
	Label   Label    `yaml:"label"`
	Phrases []string `yaml:"phrases"`
}

type phrase struct {
	text  string
	label Label
}

// Vocabulary is immutable once built.
type Vocabulary struct {
	phrases []phrase
}

func NewVocabulary(entries []Entry) (*Vocabulary, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyVocabulary
	}

	seen := map[string]struct{}{}
	out := make([]phrase, 0, len(entries))
	for i, e := range entries {
		cleaned := make([]string, 0, len(e.Phrases))
		for _, p := range e.Phrases {
			p = normalizePhrase(p)
			if p == "" {
				continue
			}
			cleaned = append(cleaned, p)
		}
		if len(cleaned) == 0 {
			return nil, fmt.Errorf("%w: entry %d (%q)", ErrEmptyVocabularyEntry, i, e.Label)
		}

		label := Label(strings.TrimSpace(string(e.Label)))
		if label == "" {
			label = Canonicalize(cleaned[0])
		}

		for _, p := range cleaned {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, phrase{text: p, label: label})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].text < out[j].text })
	return &Vocabulary{phrases: out}, nil
}

func DefaultVocabulary() *Vocabulary {
	entries := make([]Entry, 0, len(defaultPhrases))
	for _, p := range defaultPhrases {
		entries = append(entries, Entry{Phrases: []string{p}})
	}
	v, err := NewVocabulary(entries)
	if err != nil {
		panic(err)
	}
	return v
}

type vocabularyFile struct {
	Skills []Entry `yaml:"skills"`
}

func LoadVocabulary(path string) (*Vocabulary, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	return ParseVocabulary(b)
}

func ParseVocabulary(b []byte) (*Vocabulary, error) {
	var f vocabularyFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}
	return NewVocabulary(f.Skills)
}

// Labels returns every canonical label the vocabulary can produce.
func (v *Vocabulary) Labels() Set {
	out := NewSet()
	if v == nil {
		return out
	}
	for _, p := range v.phrases {
		out.Add(p.label)
	}
	return out
}

func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.phrases)
}

// Canonicalize returns the display label for a lowercase phrase.
func Canonicalize(p string) Label {
	p = normalizePhrase(p)
	if l, ok := labelOverrides[p]; ok {
		return l
	}

	parts := strings.Split(p, " ")
	for i, w := range parts {
		if w == "" {
			continue
		}
		r := []rune(w)
		parts[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return Label(strings.Join(parts, " "))
}

func normalizePhrase(p string) string {
	return strings.Join(strings.Fields(strings.ToLower(p)), " ")
}
