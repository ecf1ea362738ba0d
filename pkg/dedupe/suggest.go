package dedupe

import (
	"slices"

	"github.com/yaklabco/flashforge/pkg/card"
)

// Action is what a suggestion recommends.
type Action string

const (
	// ActionRemove drops the card; it duplicates a card that is kept.
	ActionRemove Action = "remove"

	// ActionReview flags cards for a person to compare.
	ActionReview Action = "review"
)

// Suggestion recommends what to do about one group.
type Suggestion struct {
	Action Action `json:"action"`

	// Index is the card to remove, for remove suggestions.
	Index int `json:"index,omitempty"`

	// DuplicateOf is the kept card a removed card copies.
	DuplicateOf int `json:"duplicateOf"`

	// Indices are the cards to compare, for review suggestions.
	Indices []int `json:"indices,omitempty"`

	Reason string `json:"reason"`
}

// Suggest turns a report into suggestions. Later copies in exact groups and
// the second card of a reverse pair are removed; similar and substring
// groups are left for review. A card is suggested for removal at most once,
// and groups touching an already removed card are not reviewed.
func Suggest(report *Report) []Suggestion {
	suggestions := []Suggestion{}
	removed := make(map[int]bool)

	remove := func(index, keep int, reason string) {
		if removed[index] || removed[keep] {
			return
		}
		removed[index] = true
		suggestions = append(suggestions, Suggestion{
			Action:      ActionRemove,
			Index:       index,
			DuplicateOf: keep,
			Reason:      reason,
		})
	}

	for _, group := range report.Groups {
		switch group.Kind {
		case KindExact:
			for _, index := range group.Indices[1:] {
				remove(index, group.Indices[0], group.Reason)
			}
		case KindReverse:
			remove(group.Indices[1], group.Indices[0], group.Reason)
		}
	}

	for _, group := range report.Groups {
		if group.Kind != KindSimilar && group.Kind != KindSubstring {
			continue
		}
		if slices.ContainsFunc(group.Indices, func(i int) bool { return removed[i] }) {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Action:  ActionReview,
			Indices: group.Indices,
			Reason:  group.Reason,
		})
	}

	return suggestions
}

// Removals returns the sorted indices that suggestions remove.
func Removals(suggestions []Suggestion) []int {
	var indices []int
	for _, s := range suggestions {
		if s.Action == ActionRemove {
			indices = append(indices, s.Index)
		}
	}
	slices.Sort(indices)
	return indices
}

// Apply returns cards without the ones suggestions remove, preserving order.
func Apply(cards []card.Candidate, suggestions []Suggestion) []card.Candidate {
	drop := make(map[int]bool)
	for _, index := range Removals(suggestions) {
		drop[index] = true
	}

	kept := make([]card.Candidate, 0, max(len(cards)-len(drop), 0))
	for i, c := range cards {
		if !drop[i] {
			kept = append(kept, c)
		}
	}
	return kept
}
