// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"errors"
	"testing"

	"github.com/danielhkuo/survey-tally/models"
)

func mustDefault(t *testing.T) *Catalog {
	t.Helper()
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	return c
}

func TestNormalize(t *testing.T) {
	c := mustDefault(t)

	tests := []struct {
		name     string
		question string
		raw      string
		want     string
		wantOK   bool
	}{
		// Canonical keys
		{"canonical opt1", "q1", "opt1", "opt1", true},
		{"canonical opt3", "q3", "opt3", "opt3", true},
		{"canonical uppercase", "q2", "OPT2", "opt2", true},
		{"canonical padded", "q2", "  opt2 ", "opt2", true},

		// Legacy labels
		{"Sempre is q1 opt1", "q1", "Sempre", "opt1", true},
		{"as vezes without accent", "q1", "as vezes", "opt2", true},
		{"Às vezes with accent", "q1", "Às vezes", "opt2", true},
		{"Nunca", "q1", "nunca", "opt3", true},
		{"Sim", "q2", "Sim", "opt1", true},
		{"Não", "q2", "Não", "opt2", true},
		{"Nao without accent", "q2", "NAO", "opt2", true},
		{"Não sei is not Não", "q2", "Não sei", "opt3", true},
		{"Muito satisfeito", "q3", "muito   satisfeito", "opt1", true},
		{"Insatisfeito", "q3", "Insatisfeito", "opt3", true},

		// Generic labels
		{"Opção 2", "q3", "Opção 2", "opt2", true},
		{"Option 3", "q1", "option 3", "opt3", true},
		{"letter B", "q2", "b", "opt2", true},

		// Digit heuristic
		{"bare digit", "q1", "3", "opt3", true},
		{"digit in text", "q2", "resposta-1", "opt1", true},
		{"first digit wins", "q3", "x2y3", "opt2", true},

		// No match
		{"label of other question", "q1", "Sim", "", false},
		{"unknown text", "q1", "talvez amanhã", "", false},
		{"digit out of range", "q2", "opt4", "", false},
		{"empty", "q1", "", "", false},
		{"unknown question", "q9", "opt1", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Normalize(tt.question, tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("Normalize(%q, %q) ok = %v, want %v", tt.question, tt.raw, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q, %q) = %q, want %q", tt.question, tt.raw, got, tt.want)
			}
		})
	}
}

func TestPick(t *testing.T) {
	c := mustDefault(t)

	t.Run("canonical fields", func(t *testing.T) {
		answers, missing := c.Pick(models.SubmitFields{"q1": "opt1", "q2": "opt2", "q3": "opt3"})
		if len(missing) != 0 {
			t.Fatalf("Expected no missing answers, got %v", missing)
		}
		if answers["q2"] != "opt2" {
			t.Errorf("Expected q2 'opt2', got '%s'", answers["q2"])
		}
	})

	t.Run("aliases", func(t *testing.T) {
		answers, missing := c.Pick(models.SubmitFields{"motivo1": "Sempre", "m2": "Sim", "motivo3": "opt3"})
		if len(missing) != 0 {
			t.Fatalf("Expected no missing answers, got %v", missing)
		}
		if answers["q1"] != "Sempre" || answers["q2"] != "Sim" || answers["q3"] != "opt3" {
			t.Errorf("Unexpected answers: %v", answers)
		}
	})

	t.Run("canonical key wins over aliases", func(t *testing.T) {
		answers, _ := c.Pick(models.SubmitFields{"q1": "opt2", "motivo1": "opt1", "m1": "opt3"})
		if answers["q1"] != "opt2" {
			t.Errorf("Expected q1 to win, got '%s'", answers["q1"])
		}
	})

	t.Run("motivo wins over m", func(t *testing.T) {
		answers, _ := c.Pick(models.SubmitFields{"motivo1": "opt1", "m1": "opt3"})
		if answers["q1"] != "opt1" {
			t.Errorf("Expected motivo1 to win, got '%s'", answers["q1"])
		}
	})

	t.Run("blank canonical falls back to alias", func(t *testing.T) {
		answers, missing := c.Pick(models.SubmitFields{"q1": "  ", "m1": "opt3", "q2": "opt1", "q3": "opt1"})
		if len(missing) != 0 {
			t.Fatalf("Expected no missing answers, got %v", missing)
		}
		if answers["q1"] != "opt3" {
			t.Errorf("Expected alias value 'opt3', got '%s'", answers["q1"])
		}
	})

	t.Run("missing answers reported in order", func(t *testing.T) {
		_, missing := c.Pick(models.SubmitFields{"q2": "opt1"})
		if len(missing) != 2 || missing[0] != "q1" || missing[1] != "q3" {
			t.Errorf("Expected missing [q1 q3], got %v", missing)
		}
	})
}

func TestFieldNames(t *testing.T) {
	c := mustDefault(t)

	names := c.FieldNames()
	want := []string{"q1", "q2", "q3", "motivo1", "m1", "motivo2", "m2", "motivo3", "m3"}
	if len(names) != len(want) {
		t.Fatalf("FieldNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("FieldNames()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(qs []Question) []Question
	}{
		{
			name:   "too few questions",
			mutate: func(qs []Question) []Question { return qs[:2] },
		},
		{
			name: "wrong question key",
			mutate: func(qs []Question) []Question {
				qs[1].Key = "q9"
				return qs
			},
		},
		{
			name: "missing option",
			mutate: func(qs []Question) []Question {
				qs[0].Options = qs[0].Options[:2]
				return qs
			},
		},
		{
			name: "duplicate option",
			mutate: func(qs []Question) []Question {
				qs[2].Options[2].Key = models.Opt1
				return qs
			},
		},
		{
			name: "unknown option key",
			mutate: func(qs []Question) []Question {
				qs[2].Options[2].Key = "opt4"
				return qs
			},
		},
		{
			name: "option without labels",
			mutate: func(qs []Question) []Question {
				qs[0].Options[1].Labels = nil
				return qs
			},
		},
		{
			name: "blank label",
			mutate: func(qs []Question) []Question {
				qs[0].Options[1].Labels = []string{"   "}
				return qs
			},
		},
		{
			name: "label mapped to two options",
			mutate: func(qs []Question) []Question {
				qs[1].Options[2].Labels = append(qs[1].Options[2].Labels, "sim")
				return qs
			},
		},
		{
			name: "alias shared by two questions",
			mutate: func(qs []Question) []Question {
				qs[2].Aliases = append(qs[2].Aliases, "m1")
				return qs
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.mutate(DefaultQuestions()))
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Errorf("New() error = %v, want ErrInvalidCatalog", err)
			}
		})
	}

	t.Run("same label in different questions is fine", func(t *testing.T) {
		qs := DefaultQuestions()
		qs[0].Options[0].Labels = append(qs[0].Options[0].Labels, "Sim")
		if _, err := New(qs); err != nil {
			t.Errorf("New() error = %v", err)
		}
	})
}
