// Package reporter renders conversion and analysis results as text or JSON.
package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/adrenaline09/SqlTranslator/internal/depgraph"
)

// Format controls report output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Metadata holds report context.
type Metadata struct {
	Tool      string `json:"tool"`
	Command   string `json:"command"`
	Timestamp string `json:"timestamp"`
}

func newMetadata(command string) Metadata {
	return Metadata{
		Tool:      "sqltranslator",
		Command:   command,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Conversion is the outcome of translating one statement.
type Conversion struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Input  string `json:"input"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ConversionSummary counts conversion outcomes.
type ConversionSummary struct {
	Total     int `json:"total"`
	Converted int `json:"converted"`
	Failed    int `json:"failed"`
}

// ConversionReport is the top-level convert output.
type ConversionReport struct {
	Metadata    Metadata          `json:"metadata"`
	Conversions []Conversion      `json:"conversions"`
	Summary     ConversionSummary `json:"summary"`
}

// NewConversionReport builds a report from conversion outcomes.
func NewConversionReport(command string, conversions []Conversion) ConversionReport {
	var summary ConversionSummary
	for _, c := range conversions {
		summary.Total++
		if c.Error == "" {
			summary.Converted++
		} else {
			summary.Failed++
		}
	}
	if conversions == nil {
		conversions = []Conversion{}
	}
	return ConversionReport{
		Metadata:    newMetadata(command),
		Conversions: conversions,
		Summary:     summary,
	}
}

// WriteConversion outputs the report in the given format.
func WriteConversion(w io.Writer, report *ConversionReport, format Format) error {
	if format == FormatJSON {
		return writeJSON(w, report)
	}
	return writeConversionText(w, report)
}

func writeConversionText(w io.Writer, report *ConversionReport) error {
	useColor := isTTY(w)
	for _, c := range report.Conversions {
		if c.Error != "" {
			if _, err := fmt.Fprintf(w, "%s-- %s -> %s failed: %s%s\n",
				paint(useColor, colorRed), c.Source, c.Target, c.Error, paint(useColor, colorReset)); err != nil {
				return err
			}
			continue
		}
		if len(report.Conversions) > 1 {
			if _, err := fmt.Fprintf(w, "-- %s -> %s\n", c.Source, c.Target); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, c.Output); err != nil {
			return err
		}
	}

	if report.Summary.Failed > 0 {
		_, err := fmt.Fprintf(w, "\n%d of %d statements failed\n",
			report.Summary.Failed, report.Summary.Total)
		return err
	}
	return nil
}

// AnalysisReport is the top-level analyze output.
type AnalysisReport struct {
	Metadata   Metadata         `json:"metadata"`
	Result     *depgraph.Result `json:"result"`
	Suppressed int              `json:"suppressed_externals,omitempty"`
}

// NewAnalysisReport builds a report from a dependency analysis.
func NewAnalysisReport(command string, result *depgraph.Result, suppressed int) AnalysisReport {
	return AnalysisReport{
		Metadata:   newMetadata(command),
		Result:     result,
		Suppressed: suppressed,
	}
}

// WriteAnalysis outputs the report in the given format.
func WriteAnalysis(w io.Writer, report *AnalysisReport, format Format) error {
	if format == FormatJSON {
		return writeJSON(w, report)
	}
	return writeAnalysisText(w, report)
}

func writeAnalysisText(w io.Writer, report *AnalysisReport) error {
	useColor := isTTY(w)
	res := report.Result

	if _, err := fmt.Fprintln(w, "Creation order:"); err != nil {
		return err
	}
	if len(res.CreationOrder) == 0 {
		if _, err := fmt.Fprintln(w, "  (no tables created)"); err != nil {
			return err
		}
	}
	for i, t := range res.CreationOrder {
		if _, err := fmt.Fprintf(w, "  %d. %s\n", i+1, t); err != nil {
			return err
		}
	}

	if len(res.ExternalDependencies) > 0 {
		if _, err := fmt.Fprintln(w, "\nExternal dependencies:"); err != nil {
			return err
		}
		for _, t := range res.ExternalDependencies {
			if _, err := fmt.Fprintf(w, "  - %s\n", t); err != nil {
				return err
			}
		}
		if report.Suppressed > 0 {
			if _, err := fmt.Fprintf(w, "  (%d more filtered by baseline)\n", report.Suppressed); err != nil {
				return err
			}
		}
	}

	if len(res.Cycles) > 0 {
		if _, err := fmt.Fprintf(w, "\n%sWarning: circular dependencies: %v%s\n",
			paint(useColor, colorYellow), res.Cycles, paint(useColor, colorReset)); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\nSummary: %d statements, %d tables (%d created, %d external)\n",
		res.Totals.Statements, res.Totals.Tables,
		res.Totals.CreatedTables, len(res.ExternalDependencies))
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
