package model

import (
	"errors"
	"fmt"
)

var (
	// ErrStructuralCSV marks text the tokenizer could not read as CSV.
	ErrStructuralCSV = errors.New("malformed csv")
	// ErrUnrecognizedSchema marks a table whose columns match no supported metric.
	ErrUnrecognizedSchema = errors.New("unrecognized export schema")
	// ErrDateRepairFailure marks a date value that could not be made valid.
	ErrDateRepairFailure = errors.New("date could not be repaired")
	// ErrEmptyDataset marks a file that produced no normalized rows.
	ErrEmptyDataset = errors.New("no rows to assemble")
)

// DiagnosticKind classifies a non-fatal pipeline problem.
type DiagnosticKind int

const (
	DiagStructuralCSV DiagnosticKind = iota
	DiagUnrecognizedSchema
	DiagDateRepairFailure
	DiagEmptyDataset
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagStructuralCSV:
		return "structural_csv"
	case DiagUnrecognizedSchema:
		return "unrecognized_schema"
	case DiagDateRepairFailure:
		return "date_repair_failure"
	case DiagEmptyDataset:
		return "empty_dataset"
	default:
		return "unknown"
	}
}

// Err returns the sentinel error for the kind.
func (k DiagnosticKind) Err() error {
	switch k {
	case DiagStructuralCSV:
		return ErrStructuralCSV
	case DiagUnrecognizedSchema:
		return ErrUnrecognizedSchema
	case DiagDateRepairFailure:
		return ErrDateRepairFailure
	default:
		return ErrEmptyDataset
	}
}

// Diagnostic describes why a row or file was dropped. Row is the zero-based
// data row index, or -1 for file-level diagnostics.
type Diagnostic struct {
	File    string         `json:"file,omitempty"`
	Row     int            `json:"row"`
	Kind    DiagnosticKind `json:"kind"`
	Metric  MetricKind     `json:"metric"`
	Message string         `json:"message"`
}

func (d Diagnostic) Error() string {
	if d.Row >= 0 {
		return fmt.Sprintf("%s: row %d: %s", d.Kind, d.Row, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

// Unwrap allows errors.Is against the kind's sentinel.
func (d Diagnostic) Unwrap() error {
	return d.Kind.Err()
}

// MarshalText encodes the kind as its string name.
func (k DiagnosticKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
