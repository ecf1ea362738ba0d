package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/flashforge/pkg/card"
	"github.com/yaklabco/flashforge/pkg/validate"
)

func TestNew(t *testing.T) {
	v, err := validate.New(validate.Config{MaxFieldBytes: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, v.Config().MaxFieldBytes)

	for _, limit := range []int{0, -1} {
		v, err := validate.New(validate.Config{MaxFieldBytes: limit})
		require.ErrorIs(t, err, validate.ErrInvalidConfig)
		assert.Nil(t, v)
	}

	assert.Equal(t, validate.DefaultMaxFieldBytes, validate.Default().Config().MaxFieldBytes)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		front string
		back  string
		want  []card.IssueKind
	}{
		{name: "valid", front: "cat", back: "gato", want: []card.IssueKind{}},
		{name: "multi-line fields are valid", front: "line one\nline two", back: "ok", want: []card.IssueKind{}},
		{name: "multi-byte text is valid", front: "日本語", back: "にほんご", want: []card.IssueKind{}},
		{name: "empty front", front: "", back: "x", want: []card.IssueKind{card.IssueEmptyFront}},
		{name: "whitespace back", front: "x", back: " \n\t ", want: []card.IssueKind{card.IssueEmptyBack, card.IssueInvalidControlCharacter}},
		{name: "both empty", front: "", back: "", want: []card.IssueKind{card.IssueEmptyFront, card.IssueEmptyBack}},
		{name: "nul byte", front: "a\x00b", back: "x", want: []card.IssueKind{card.IssueInvalidControlCharacter}},
		{name: "vertical tab", front: "x", back: "a\vb", want: []card.IssueKind{card.IssueInvalidControlCharacter}},
		{name: "form feed", front: "a\fb", back: "x", want: []card.IssueKind{card.IssueInvalidControlCharacter}},
		{name: "tab", front: "a\tb", back: "x", want: []card.IssueKind{card.IssueInvalidControlCharacter}},
		{name: "carriage return", front: "a\r\nb", back: "x", want: []card.IssueKind{card.IssueInvalidControlCharacter}},
		{name: "delete is not C0", front: "a\x7fb", back: "x", want: []card.IssueKind{}},
		{name: "invalid utf-8", front: "caf\xe9", back: "x", want: []card.IssueKind{card.IssueInvalidEncoding}},
		{name: "replacement character", front: "x", back: "caf�", want: []card.IssueKind{card.IssueInvalidEncoding}},
		{
			name:  "every issue at once, in order",
			front: "   ",
			back:  "\x00" + strings.Repeat("a", validate.DefaultMaxFieldBytes) + "\xff",
			want: []card.IssueKind{
				card.IssueEmptyFront,
				card.IssueFieldTooLarge,
				card.IssueInvalidControlCharacter,
				card.IssueInvalidEncoding,
			},
		},
	}

	v := validate.Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Validate(card.Candidate{Front: tt.front, Back: tt.back})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate_SizeBoundary(t *testing.T) {
	v := validate.Default()

	exact := strings.Repeat("a", validate.DefaultMaxFieldBytes)
	assert.Empty(t, v.Validate(card.Candidate{Front: exact, Back: exact}))

	over := exact + "a"
	assert.Equal(t, []card.IssueKind{card.IssueFieldTooLarge}, v.Validate(card.Candidate{Front: "x", Back: over}))
	assert.Equal(t, []card.IssueKind{card.IssueFieldTooLarge}, v.Validate(card.Candidate{Front: over, Back: over}))
}

func TestValidate_SizeCountsBytesNotCharacters(t *testing.T) {
	v, err := validate.New(validate.Config{MaxFieldBytes: 6})
	require.NoError(t, err)

	// Two three-byte runes fit, three do not.
	assert.Empty(t, v.Validate(card.Candidate{Front: "日本", Back: "x"}))
	assert.Equal(t, []card.IssueKind{card.IssueFieldTooLarge}, v.Validate(card.Candidate{Front: "日本語", Back: "x"}))
}

func TestValidate_Idempotent(t *testing.T) {
	v := validate.Default()
	c := card.Candidate{Front: "", Back: "bad\x00"}

	first := v.Validate(c)
	second := v.Validate(c)
	assert.Equal(t, first, second)
	assert.Equal(t, "bad\x00", c.Back)
}

func TestCheck_Findings(t *testing.T) {
	verdict := validate.Default().Check(card.Candidate{Front: "a\x01", Back: "b\x02", SourceLine: 7})

	assert.False(t, verdict.Valid())
	assert.Equal(t, []card.IssueKind{card.IssueInvalidControlCharacter}, verdict.Issues)
	require.Len(t, verdict.Findings, 2)
	assert.Equal(t, card.FieldFront, verdict.Findings[0].Field)
	assert.Equal(t, card.FieldBack, verdict.Findings[1].Field)
	assert.Contains(t, verdict.Findings[0].Message, "U+0001")
	assert.Equal(t, 7, verdict.Candidate.SourceLine)
}

func TestValidateAll(t *testing.T) {
	candidates := []card.Candidate{
		{Front: "ok", Back: "fine"},
		{Front: "", Back: "no front"},
		{Front: "also", Back: "good"},
	}

	verdicts := validate.Default().ValidateAll(candidates)
	require.Len(t, verdicts, 3)
	assert.True(t, verdicts[0].Valid())
	assert.True(t, verdicts[1].HasIssue(card.IssueEmptyFront))
	assert.True(t, verdicts[2].Valid())

	assert.Equal(t, []card.Candidate{candidates[0], candidates[2]}, card.Passing(verdicts))
}
