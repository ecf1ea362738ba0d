// Package dedupe finds duplicate and near-duplicate cards and suggests
// which copies to drop.
package dedupe

import (
	"fmt"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/yaklabco/flashforge/pkg/card"
)

// Kind classifies a duplicate group.
type Kind string

const (
	// KindExact groups cards whose normalized fronts are equal.
	KindExact Kind = "exact"

	// KindReverse pairs cards whose front and back are swapped.
	KindReverse Kind = "reverse"

	// KindSimilar pairs cards whose fronts are close but not identical.
	KindSimilar Kind = "similar"

	// KindSubstring pairs cards where one front contains the other.
	KindSubstring Kind = "substring"
)

// Defaults for Options.
const (
	DefaultThreshold          = 0.85
	DefaultMinSubstringLength = 10
)

// Options tunes duplicate detection.
type Options struct {
	// Threshold is the lowest front similarity, in (0, 1], reported as similar.
	Threshold float64

	// MinSubstringLength is the byte length both fronts must exceed before
	// containment is reported.
	MinSubstringLength int
}

// DefaultOptions returns the default detection settings.
func DefaultOptions() Options {
	return Options{
		Threshold:          DefaultThreshold,
		MinSubstringLength: DefaultMinSubstringLength,
	}
}

// Group is a set of cards that look like copies of each other.
type Group struct {
	Kind Kind `json:"kind"`

	// Indices point into the slice given to Find. For substring groups the
	// contained card comes first.
	Indices []int `json:"indices"`

	// Similarity is set for similar groups.
	Similarity float64 `json:"similarity,omitempty"`

	Reason string `json:"reason"`
}

// Stats counts findings by kind.
type Stats struct {
	Total     int `json:"total"`
	Exact     int `json:"exact"`
	Reverse   int `json:"reverse"`
	Similar   int `json:"similar"`
	Substring int `json:"substring"`
}

// Report is the result of Find.
type Report struct {
	Groups []Group `json:"groups"`
	Stats  Stats   `json:"stats"`
}

// Find reports duplicate groups among cards. Exact groups come first, in
// order of first occurrence, followed by pairwise findings in index order.
func Find(cards []card.Candidate, opts Options) *Report {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}

	report := &Report{Groups: []Group{}, Stats: Stats{Total: len(cards)}}

	fronts := make([]string, len(cards))
	backs := make([]string, len(cards))
	for i, c := range cards {
		fronts[i] = Normalize(c.Front)
		backs[i] = Normalize(c.Back)
	}

	report.findExact(fronts)

	for i := range cards {
		for j := i + 1; j < len(cards); j++ {
			report.comparePair(cards, fronts, backs, i, j, opts)
		}
	}

	return report
}

func (r *Report) findExact(fronts []string) {
	byFront := make(map[string][]int)
	var order []string
	for i, front := range fronts {
		if front == "" {
			continue
		}
		if _, seen := byFront[front]; !seen {
			order = append(order, front)
		}
		byFront[front] = append(byFront[front], i)
	}

	for _, front := range order {
		indices := byFront[front]
		if len(indices) < 2 {
			continue
		}
		r.Groups = append(r.Groups, Group{
			Kind:    KindExact,
			Indices: indices,
			Reason:  fmt.Sprintf("identical front text %q", front),
		})
		r.Stats.Exact += len(indices) - 1
	}
}

func (r *Report) comparePair(cards []card.Candidate, fronts, backs []string, i, j int, opts Options) {
	a, b := cards[i], cards[j]

	switch {
	case fronts[i] != "" && fronts[i] == backs[j] && backs[i] == fronts[j]:
		r.Groups = append(r.Groups, Group{
			Kind:    KindReverse,
			Indices: []int{i, j},
			Reason:  "cards are reverses of each other",
		})
		r.Stats.Reverse++
	case a.Front != "" && b.Front != "":
		similarity := levenshtein.Similarity(a.Front, b.Front, nil)
		if similarity >= opts.Threshold && similarity < 1.0 {
			r.Groups = append(r.Groups, Group{
				Kind:       KindSimilar,
				Indices:    []int{i, j},
				Similarity: similarity,
				Reason:     fmt.Sprintf("similar front text (%.0f%% match)", similarity*100),
			})
			r.Stats.Similar++
		}
	}

	if len(a.Front) <= opts.MinSubstringLength || len(b.Front) <= opts.MinSubstringLength {
		return
	}
	switch {
	case strings.Contains(b.Front, a.Front):
		r.Groups = append(r.Groups, Group{
			Kind:    KindSubstring,
			Indices: []int{i, j},
			Reason:  "first card is contained in second",
		})
		r.Stats.Substring++
	case strings.Contains(a.Front, b.Front):
		r.Groups = append(r.Groups, Group{
			Kind:    KindSubstring,
			Indices: []int{j, i},
			Reason:  "second card is contained in first",
		})
		r.Stats.Substring++
	}
}

// Normalize collapses whitespace, lowercases and trims trailing punctuation
// so cosmetic differences do not hide duplicates.
func Normalize(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	text = strings.ToLower(text)
	return strings.TrimRight(text, ".,!?;:")
}
