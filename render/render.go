// SPDX-License-Identifier: MIT

// Package render writes analysis results as text, JSON or YAML and draws the
// criterion-versus-dimensionality plot.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/latentfa/report"
	"github.com/katalvlaran/latentfa/selection"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for an unsupported Format.
var ErrUnknownFormat = errors.New("render: unknown format")

// ParseFormat maps "text", "json", "yaml" (or "yml") to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("render: %q: %w", s, ErrUnknownFormat)
}

// Summary is the full document emitted by the run command.
type Summary struct {
	Subjects   int                   `json:"subjects" yaml:"subjects"`
	Variables  int                   `json:"variables" yaml:"variables"`
	Criterion  string                `json:"criterion" yaml:"criterion"`
	K          int                   `json:"k" yaml:"k"`
	Candidates []selection.Candidate `json:"candidates" yaml:"candidates"`
	Entries    []report.Entry        `json:"entries" yaml:"entries"`
}

// NewSummary assembles a Summary from a selection result and its report.
func NewSummary(subjects, variables int, res *selection.Result, entries []report.Entry) Summary {
	return Summary{
		Subjects:   subjects,
		Variables:  variables,
		Criterion:  res.Criterion.String(),
		K:          res.K,
		Candidates: res.Candidates,
		Entries:    entries,
	}
}

// Write renders the per-dimension entries.
//
// The text layout is, per dimension:
//
//	Component 0
//	r = 0.123, Bonferroni p = 0.456
//	variable (0.789)
//
// followed by a blank line.
func Write(w io.Writer, format Format, entries []report.Entry) error {
	switch format {
	case FormatText:
		return writeEntriesText(w, entries)
	case FormatJSON:
		return writeJSON(w, jsonEntries(entries))
	case FormatYAML:
		return writeYAML(w, entries)
	}
	return fmt.Errorf("render: %q: %w", format, ErrUnknownFormat)
}

// WriteSummary renders s; the text form is the criterion table followed by the entries.
func WriteSummary(w io.Writer, format Format, s Summary) error {
	switch format {
	case FormatText:
		if err := writeCandidatesText(w, s.Criterion, s.K, s.Candidates); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		return writeEntriesText(w, s.Entries)
	case FormatJSON:
		doc := struct {
			Summary
			Entries []jsonEntry `json:"entries"`
		}{Summary: s, Entries: jsonEntries(s.Entries)}
		return writeJSON(w, doc)
	case FormatYAML:
		return writeYAML(w, s)
	}
	return fmt.Errorf("render: %q: %w", format, ErrUnknownFormat)
}

// WriteSelectionText writes the criterion table of a sweep and the chosen k.
func WriteSelectionText(w io.Writer, res *selection.Result) error {
	return writeCandidatesText(w, res.Criterion.String(), res.K, res.Candidates)
}

func writeCandidatesText(w io.Writer, criterion string, k int, cands []selection.Candidate) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%-4s %14s %16s %10s %6s\n", "k", criterion, "log-likelihood", "converged", "iters")
	for _, c := range cands {
		fmt.Fprintf(&b, "%-4d %14.4f %16.4f %10v %6d\n", c.K, c.Criterion, c.LogLikelihood, c.Converged, c.Iterations)
	}
	fmt.Fprintf(&b, "best dimensionality by %s: %d\n", criterion, k)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeEntriesText(w io.Writer, entries []report.Entry) error {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "Component %d\n", e.Dimension)
		fmt.Fprintf(&b, "r = %.3f, Bonferroni p = %.3f\n", e.Correlation, e.AdjustedPValue)
		for _, l := range e.Loadings {
			fmt.Fprintf(&b, "%s (%0.3f)\n", l.Variable, l.Weight)
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// jsonEntry mirrors report.Entry with NaN statistics encoded as null.
type jsonEntry struct {
	Dimension      int              `json:"dimension"`
	Correlation    *float64         `json:"correlation"`
	PValue         *float64         `json:"p_value"`
	AdjustedPValue *float64         `json:"adjusted_p_value"`
	Loadings       []report.Loading `json:"loadings"`
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func jsonEntries(entries []report.Entry) []jsonEntry {
	out := make([]jsonEntry, len(entries))
	for i, e := range entries {
		out[i] = jsonEntry{
			Dimension:      e.Dimension,
			Correlation:    finite(e.Correlation),
			PValue:         finite(e.PValue),
			AdjustedPValue: finite(e.AdjustedPValue),
			Loadings:       e.Loadings,
		}
	}
	return out
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("render: json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("render: yaml: %w", err)
	}
	return enc.Close()
}
