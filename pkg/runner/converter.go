package runner

import (
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/flashforge/pkg/card"
	"github.com/yaklabco/flashforge/pkg/config"
	"github.com/yaklabco/flashforge/pkg/dedupe"
	"github.com/yaklabco/flashforge/pkg/parse"
	"github.com/yaklabco/flashforge/pkg/source"
	"github.com/yaklabco/flashforge/pkg/validate"
)

// ConverterOptions configures every stage of a conversion.
type ConverterOptions struct {
	Strategy card.Strategy
	Parse    parse.Options
	Source   source.Options
	Validate validate.Config

	// Dedupe enables duplicate detection when non-nil.
	Dedupe *dedupe.Options
}

// ConverterOptionsFromConfig maps a resolved configuration onto converter options.
func ConverterOptionsFromConfig(cfg *config.Config) ConverterOptions {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	opts := ConverterOptions{
		Strategy: card.Strategy(cfg.Strategy),
		Parse: parse.Options{
			Delimiter: parse.DelimiterOptions{Token: cfg.Delimiter.Token},
			Cloze: parse.ClozeOptions{
				Open:        cfg.Cloze.Open,
				Close:       cfg.Cloze.Close,
				Placeholder: cfg.Cloze.Placeholder,
			},
			Verse: parse.VerseOptions{SplitFirstLine: cfg.Verse.SplitFirstLine},
			QA: parse.QAOptions{
				Question: cfg.QA.QuestionMarkers,
				Answer:   cfg.QA.AnswerMarkers,
			},
		},
		Source:   source.Options{Encoding: cfg.Input.Encoding},
		Validate: validate.Config{MaxFieldBytes: cfg.Validation.MaxFieldBytes},
	}

	if cfg.Dedupe.Enabled {
		opts.Dedupe = &dedupe.Options{
			Threshold:          cfg.Dedupe.Threshold,
			MinSubstringLength: cfg.Dedupe.MinSubstringLength,
		}
	}

	return opts
}

// Converter runs the load, parse, validate and dedupe stages for one
// source at a time. It holds no per-file state and is safe for concurrent use.
type Converter struct {
	loader    *source.Loader
	parser    parse.Parser
	validator *validate.Validator
	dedupe    *dedupe.Options
}

// NewConverter checks opts and builds the stages.
func NewConverter(opts ConverterOptions) (*Converter, error) {
	loader, err := source.NewLoader(opts.Source)
	if err != nil {
		return nil, err
	}

	parser, err := parse.New(opts.Strategy, opts.Parse)
	if err != nil {
		return nil, err
	}

	validator, err := validate.New(opts.Validate)
	if err != nil {
		return nil, err
	}

	return &Converter{
		loader:    loader,
		parser:    parser,
		validator: validator,
		dedupe:    opts.Dedupe,
	}, nil
}

// Strategy returns the parsing strategy in use.
func (c *Converter) Strategy() card.Strategy {
	return c.parser.Strategy()
}

// ConvertFile loads path and converts it.
func (c *Converter) ConvertFile(ctx context.Context, path string) (*Conversion, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}

	doc, err := c.loader.Load(path)
	if err != nil {
		return nil, err
	}
	return c.ConvertDocument(doc), nil
}

// ConvertReader converts the content of r, using path to pick the format.
func (c *Converter) ConvertReader(ctx context.Context, path string, r io.Reader) (*Conversion, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}

	doc, err := c.loader.Read(path, r)
	if err != nil {
		return nil, err
	}
	return c.ConvertDocument(doc), nil
}

// ConvertDocument parses, validates and optionally dedupes a loaded document.
func (c *Converter) ConvertDocument(doc *source.Document) *Conversion {
	parsed := c.parser.Parse(doc.Text)

	conv := c.ConvertCandidates(doc.Path, parsed.Candidates)
	conv.Title = doc.Title
	conv.Format = doc.Format
	conv.Strategy = parsed.Strategy
	conv.Diagnostics = parsed.Diagnostics
	return conv
}

// ConvertCandidates validates and optionally dedupes candidates that did not
// come from the parser, such as the rows of an existing export.
func (c *Converter) ConvertCandidates(path string, candidates []card.Candidate) *Conversion {
	conv := &Conversion{
		Path:     path,
		Verdicts: c.validator.ValidateAll(candidates),
	}
	conv.Passing = card.Passing(conv.Verdicts)
	conv.Exportable = conv.Passing

	if c.dedupe != nil {
		conv.Duplicates = dedupe.Find(conv.Passing, *c.dedupe)
		conv.Suggestions = dedupe.Suggest(conv.Duplicates)
		conv.Exportable = dedupe.Apply(conv.Passing, conv.Suggestions)
	}

	return conv
}

// Conversion is the outcome of converting one source.
type Conversion struct {
	Path   string
	Title  string
	Format source.Format

	Strategy card.Strategy

	// Verdicts hold every candidate with its validation issues, in input order.
	Verdicts []card.Verdict

	// Diagnostics are the parser's notes on skipped input.
	Diagnostics []card.Diagnostic

	// Passing are the candidates with no validation issues.
	Passing []card.Candidate

	// Duplicates indexes into Passing. Nil when duplicate detection is off.
	Duplicates *dedupe.Report

	// Suggestions come from Duplicates.
	Suggestions []dedupe.Suggestion

	// Exportable is Passing without the cards suggested for removal.
	Exportable []card.Candidate
}

// Candidates returns the number of candidates the parser produced.
func (c *Conversion) Candidates() int {
	return len(c.Verdicts)
}

// Invalid returns the number of candidates that failed validation.
func (c *Conversion) Invalid() int {
	return len(c.Verdicts) - len(c.Passing)
}

// Removed returns the number of passing cards dropped as duplicates.
func (c *Conversion) Removed() int {
	return len(c.Passing) - len(c.Exportable)
}
