package analyzer

import (
	"fmt"

	"github.com/ivlev/actiondirector/internal/director"
)

// Severity grades a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding is one problem reported about a node of an asset.
type Finding struct {
	Node     director.Directable
	Rule     string
	Severity Severity
	Message  string
}

func (f Finding) String() string {
	return fmt.Sprintf("[%s] %s %s %q: %s", f.Severity, f.Rule, f.Node.Kind(), f.Node.Name(), f.Message)
}

// Checker is the interface for asset lint strategies
type Checker interface {
	Check(a *director.Asset) []Finding
}
