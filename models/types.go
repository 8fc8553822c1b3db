package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Question keys
const (
	Question1 = "q1"
	Question2 = "q2"
	Question3 = "q3"
)

// Option keys
const (
	Opt1 = "opt1"
	Opt2 = "opt2"
	Opt3 = "opt3"
)

// Storage modes reported to clients
const (
	StoragePersisted = "persisted"
	StorageMemory    = "memory"
)

// Questions lists the question keys in display order.
var Questions = []string{Question1, Question2, Question3}

// Options lists the canonical option keys in display order.
var Options = []string{Opt1, Opt2, Opt3}

// Domain types

// option key -> count
type OptionCounts map[string]int64

// Aggregate is the whole persisted counter document.
type Aggregate struct {
	TotalSubmissions int64        `json:"totalSubmissions"`
	Q1               OptionCounts `json:"q1"`
	Q2               OptionCounts `json:"q2"`
	Q3               OptionCounts `json:"q3"`
}

// NewAggregate returns an aggregate with every counter at zero.
func NewAggregate() Aggregate {
	return Aggregate{
		Q1: zeroCounts(),
		Q2: zeroCounts(),
		Q3: zeroCounts(),
	}
}

func zeroCounts() OptionCounts {
	c := make(OptionCounts, len(Options))
	for _, opt := range Options {
		c[opt] = 0
	}
	return c
}

// Counts returns the option counts for a question key, or nil for an unknown key.
func (a *Aggregate) Counts(question string) OptionCounts {
	switch question {
	case Question1:
		return a.Q1
	case Question2:
		return a.Q2
	case Question3:
		return a.Q3
	}
	return nil
}

// Normalize fills missing questions and options with zero, clamps negative
// counts and drops unknown option keys.
func (a *Aggregate) Normalize() {
	if a.TotalSubmissions < 0 {
		a.TotalSubmissions = 0
	}
	a.Q1 = normalizeCounts(a.Q1)
	a.Q2 = normalizeCounts(a.Q2)
	a.Q3 = normalizeCounts(a.Q3)
}

func normalizeCounts(in OptionCounts) OptionCounts {
	out := zeroCounts()
	for _, opt := range Options {
		if v := in[opt]; v > 0 {
			out[opt] = v
		}
	}
	return out
}

// Clone returns a deep copy so callers never share maps with the store.
func (a Aggregate) Clone() Aggregate {
	c := Aggregate{TotalSubmissions: a.TotalSubmissions}
	c.Q1 = cloneCounts(a.Q1)
	c.Q2 = cloneCounts(a.Q2)
	c.Q3 = cloneCounts(a.Q3)
	return c
}

func cloneCounts(in OptionCounts) OptionCounts {
	if in == nil {
		return nil
	}
	out := make(OptionCounts, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Answer is a raw survey answer. It accepts JSON strings and numbers so
// clients posting {"q1": 2} are treated like {"q1": "2"}.
type Answer string

func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Answer(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = Answer(n.String())
	return nil
}

// Blank reports whether the answer is missing or only whitespace.
func (a Answer) Blank() bool {
	return strings.TrimSpace(string(a)) == ""
}

// Request types

// SubmitFields holds the raw answers of a submission keyed by field name
// (canonical keys and legacy aliases alike).
type SubmitFields map[string]Answer

// Response types

type SubmitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Storage string `json:"storage"`
}

type OptionSummary struct {
	Option  string  `json:"option"`
	Count   int64   `json:"count"`
	Percent float64 `json:"percent"`
	Label   string  `json:"label"`
}

type QuestionSummary struct {
	Question string          `json:"question"`
	Options  []OptionSummary `json:"options"`
}

type SummaryResponse struct {
	TotalSubmissions int64             `json:"totalSubmissions"`
	Storage          string            `json:"storage"`
	Questions        []QuestionSummary `json:"questions"`
}

// StreamMessage is pushed to live dashboard connections.
type StreamMessage struct {
	Type string    `json:"type"`
	Data Aggregate `json:"data"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
