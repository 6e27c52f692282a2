package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"artemis/internal/common"
)

// Diagnostics holds all findings of one inspection.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is a single finding.
type Diagnostic struct {
	Severity Severity
	// Code identifies the kind of finding.
	Code    string
	Message string
	// Entity is the qualified type the finding relates to (if any).
	Entity string
	// Field is the Go field name the finding relates to (if any).
	Field string
}

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

func (d *Diagnostics) AddError(code, message, entity, field string) {
	d.Errors = append(d.Errors, Diagnostic{SeverityError, code, message, entity, field})
}

func (d *Diagnostics) AddWarning(code, message, entity, field string) {
	d.Warnings = append(d.Warnings, Diagnostic{SeverityWarning, code, message, entity, field})
}

func (d *Diagnostics) AddInfo(code, message, entity, field string) {
	d.Infos = append(d.Infos, Diagnostic{SeverityInfo, code, message, entity, field})
}

func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge appends the findings of other.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns every finding, errors first.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// Err combines the error findings, or returns nil when there are none.
func (d *Diagnostics) Err() error {
	var err error
	for _, e := range d.Errors {
		err = multierr.Append(err, errors.New(e.String()))
	}

	return err
}

func (d Diagnostic) String() string {
	var prefix []string
	if d.Entity != "" {
		prefix = append(prefix, "["+d.Entity+"]")
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
