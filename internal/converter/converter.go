// Package converter runs the full translation pipeline: clean, normalize,
// parse, emit.
package converter

import (
	"fmt"
	"log/slog"

	"github.com/adrenaline09/SqlTranslator/internal/cleaner"
	"github.com/adrenaline09/SqlTranslator/internal/dialect"
	"github.com/adrenaline09/SqlTranslator/internal/emitter"
	"github.com/adrenaline09/SqlTranslator/internal/normalizer"
	"github.com/adrenaline09/SqlTranslator/internal/parser"
)

// Pipeline stages, used to tag conversion failures.
const (
	StageClean     = "clean"
	StageNormalize = "normalize"
	StageParse     = "parse"
	StageEmit      = "emit"
)

// ConversionError wraps a pipeline failure with the stage it occurred in.
// A failed conversion never returns partial SQL text.
type ConversionError struct {
	Stage string
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("conversion failed at %s stage: %v", e.Stage, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// Convert translates a single statement from the source dialect to the
// target dialect. Custom removal patterns are applied during cleaning;
// invalid patterns are skipped with a warning and never abort the
// conversion. Same-dialect conversion returns the cleaned text.
func Convert(sql string, source, target dialect.Dialect, removals []string) (string, error) {
	cleaned, patternErrs := cleaner.Clean(sql, removals)
	for _, perr := range patternErrs {
		slog.Warn("skipping custom removal pattern", "error", perr)
	}

	if source == target {
		return cleaned, nil
	}

	normalized := normalizer.NormalizeJoins(cleaned)
	if source == dialect.Oracle {
		normalized = normalizer.UnwrapRownum(normalized)
	}

	st, err := parser.Parse(normalized)
	if err != nil {
		return "", &ConversionError{Stage: StageParse, Err: err}
	}

	em, err := emitter.New(source, target)
	if err != nil {
		return "", &ConversionError{Stage: StageEmit, Err: err}
	}
	out, err := em.Emit(st)
	if err != nil {
		return "", &ConversionError{Stage: StageEmit, Err: err}
	}
	return out, nil
}
