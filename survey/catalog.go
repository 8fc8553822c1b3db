// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/danielhkuo/survey-tally/models"
)

var ErrInvalidCatalog = errors.New("invalid survey catalog")

// Option is one canonical answer slot and the free-text labels that map to it.
type Option struct {
	Key    string
	Labels []string
}

// Question describes one survey question. Aliases are legacy form field
// names, checked in order after Key.
type Question struct {
	Key     string
	Aliases []string
	Options []Option
}

// Catalog is a validated set of questions with a precomputed label index.
type Catalog struct {
	questions []Question
	labels    map[string]map[string]string // question -> folded label -> option key
}

// genericLabels are accepted for every question. %d is the option number.
var genericLabels = []string{"Opção %d", "Opcao %d", "Option %d", "Alternativa %d"}

// DefaultQuestions returns the fixed three-question survey.
func DefaultQuestions() []Question {
	return []Question{
		{
			Key:     models.Question1,
			Aliases: []string{"motivo1", "m1"},
			Options: []Option{
				{Key: models.Opt1, Labels: withGeneric(1, "Sempre")},
				{Key: models.Opt2, Labels: withGeneric(2, "Às vezes", "Raramente")},
				{Key: models.Opt3, Labels: withGeneric(3, "Nunca")},
			},
		},
		{
			Key:     models.Question2,
			Aliases: []string{"motivo2", "m2"},
			Options: []Option{
				{Key: models.Opt1, Labels: withGeneric(1, "Sim")},
				{Key: models.Opt2, Labels: withGeneric(2, "Não")},
				{Key: models.Opt3, Labels: withGeneric(3, "Talvez", "Não sei")},
			},
		},
		{
			Key:     models.Question3,
			Aliases: []string{"motivo3", "m3"},
			Options: []Option{
				{Key: models.Opt1, Labels: withGeneric(1, "Muito satisfeito")},
				{Key: models.Opt2, Labels: withGeneric(2, "Satisfeito")},
				{Key: models.Opt3, Labels: withGeneric(3, "Insatisfeito")},
			},
		},
	}
}

func withGeneric(n int, labels ...string) []string {
	out := append([]string{}, labels...)
	for _, g := range genericLabels {
		out = append(out, fmt.Sprintf(g, n))
	}
	out = append(out, string(rune('A'+n-1)))
	return out
}

// New validates the questions and builds the label index.
// Every question must cover all canonical options, labels must be
// unambiguous within a question and field names must be unique.
func New(questions []Question) (*Catalog, error) {
	if len(questions) != len(models.Questions) {
		return nil, fmt.Errorf("%w: expected %d questions, got %d", ErrInvalidCatalog, len(models.Questions), len(questions))
	}

	c := &Catalog{
		questions: questions,
		labels:    make(map[string]map[string]string, len(questions)),
	}
	fields := make(map[string]string)

	for i, q := range questions {
		if q.Key != models.Questions[i] {
			return nil, fmt.Errorf("%w: question %d has key %q, want %q", ErrInvalidCatalog, i+1, q.Key, models.Questions[i])
		}

		for _, name := range append([]string{q.Key}, q.Aliases...) {
			if owner, ok := fields[name]; ok {
				return nil, fmt.Errorf("%w: field %q used by %s and %s", ErrInvalidCatalog, name, owner, q.Key)
			}
			fields[name] = q.Key
		}

		index := make(map[string]string)
		seen := make(map[string]bool)
		for _, opt := range q.Options {
			if !isOptionKey(opt.Key) {
				return nil, fmt.Errorf("%w: %s has unknown option %q", ErrInvalidCatalog, q.Key, opt.Key)
			}
			if seen[opt.Key] {
				return nil, fmt.Errorf("%w: %s lists option %q twice", ErrInvalidCatalog, q.Key, opt.Key)
			}
			seen[opt.Key] = true

			if len(opt.Labels) == 0 {
				return nil, fmt.Errorf("%w: %s.%s has no labels", ErrInvalidCatalog, q.Key, opt.Key)
			}
			for _, label := range opt.Labels {
				folded := fold(label)
				if folded == "" {
					return nil, fmt.Errorf("%w: %s.%s has an empty label", ErrInvalidCatalog, q.Key, opt.Key)
				}
				if other, ok := index[folded]; ok && other != opt.Key {
					return nil, fmt.Errorf("%w: %s label %q maps to both %s and %s", ErrInvalidCatalog, q.Key, label, other, opt.Key)
				}
				index[folded] = opt.Key
			}
		}
		for _, key := range models.Options {
			if !seen[key] {
				return nil, fmt.Errorf("%w: %s is missing option %s", ErrInvalidCatalog, q.Key, key)
			}
		}

		c.labels[q.Key] = index
	}

	return c, nil
}

// Default returns the validated built-in catalog.
func Default() (*Catalog, error) {
	return New(DefaultQuestions())
}

// Questions returns the catalog's questions in display order.
func (c *Catalog) Questions() []Question {
	return c.questions
}

// Pick chooses the raw answer for every question from the submitted fields,
// preferring the canonical key over its aliases. Questions with no non-blank
// value are returned in missing.
func (c *Catalog) Pick(fields models.SubmitFields) (answers map[string]models.Answer, missing []string) {
	answers = make(map[string]models.Answer, len(c.questions))
	for _, q := range c.questions {
		found := false
		for _, name := range append([]string{q.Key}, q.Aliases...) {
			if v, ok := fields[name]; ok && !v.Blank() {
				answers[q.Key] = v
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, q.Key)
		}
	}
	return answers, missing
}

// FieldNames returns every field name the catalog reads, canonical keys first.
func (c *Catalog) FieldNames() []string {
	var names []string
	for _, q := range c.questions {
		names = append(names, q.Key)
	}
	for _, q := range c.questions {
		names = append(names, q.Aliases...)
	}
	return names
}

// Normalize maps a raw answer for question onto its canonical option key.
// Canonical keys win, then the label table, then the first literal 1, 2 or 3
// found in the value. ok is false when nothing matches.
func (c *Catalog) Normalize(question, raw string) (string, bool) {
	index, known := c.labels[question]
	if !known {
		return "", false
	}

	value := strings.TrimSpace(raw)
	if isOptionKey(strings.ToLower(value)) {
		return strings.ToLower(value), true
	}

	if key, ok := index[fold(value)]; ok {
		return key, true
	}

	for _, r := range value {
		switch r {
		case '1':
			return models.Opt1, true
		case '2':
			return models.Opt2, true
		case '3':
			return models.Opt3, true
		}
	}

	return "", false
}

func isOptionKey(s string) bool {
	for _, opt := range models.Options {
		if s == opt {
			return true
		}
	}
	return false
}

// fold lowercases, strips diacritics and collapses whitespace.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}
