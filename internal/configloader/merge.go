package configloader

import "github.com/yaklabco/flashforge/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// It is used for flag overrides, where only explicitly set values are non-zero:
//   - Scalar values: override overwrites base if override is non-zero
//   - Booleans: only true overrides, since false means "flag not given"
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	mergeString(&result.Strategy, override.Strategy)
	mergeString(&result.Delimiter.Token, override.Delimiter.Token)
	mergeString(&result.Cloze.Open, override.Cloze.Open)
	mergeString(&result.Cloze.Close, override.Cloze.Close)
	mergeString(&result.Cloze.Placeholder, override.Cloze.Placeholder)
	mergeString(&result.Export.Deck, override.Export.Deck)
	mergeString(&result.Input.Encoding, override.Input.Encoding)
	mergeString(&result.Backups.Mode, override.Backups.Mode)
	mergeString(&result.Output, override.Output)

	if override.Export.Format != "" {
		result.Export.Format = override.Export.Format
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Validation.MaxFieldBytes != 0 {
		result.Validation.MaxFieldBytes = override.Validation.MaxFieldBytes
	}
	if override.Dedupe.Threshold != 0 {
		result.Dedupe.Threshold = override.Dedupe.Threshold
	}
	if override.Dedupe.MinSubstringLength != 0 {
		result.Dedupe.MinSubstringLength = override.Dedupe.MinSubstringLength
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	mergeBool(&result.Verse.SplitFirstLine, override.Verse.SplitFirstLine)
	mergeBool(&result.Export.HTML, override.Export.HTML)
	mergeBool(&result.Export.GUID, override.Export.GUID)
	mergeBool(&result.Dedupe.Enabled, override.Dedupe.Enabled)
	mergeBool(&result.Backups.Enabled, override.Backups.Enabled)
	mergeBool(&result.DryRun, override.DryRun)
	mergeBool(&result.Strict, override.Strict)
	mergeBool(&result.NoBackups, override.NoBackups)

	mergeSlice(&result.QA.QuestionMarkers, override.QA.QuestionMarkers)
	mergeSlice(&result.QA.AnswerMarkers, override.QA.AnswerMarkers)
	mergeSlice(&result.Export.Tags, override.Export.Tags)
	mergeSlice(&result.Ignore, override.Ignore)

	return result
}

func mergeString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func mergeBool(dst *bool, value bool) {
	if value {
		*dst = true
	}
}

func mergeSlice(dst *[]string, value []string) {
	if value != nil {
		*dst = append([]string(nil), value...)
	}
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
