package retorno

import "fmt"

// Severity distinguishes hard per-line failures from advisory findings.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Issue is one finding produced while parsing or extracting. Line is zero
// for file-level findings.
type Issue struct {
	Severity Severity
	Line     int
	Message  string
}

func (i Issue) String() string {
	if i.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", i.Severity, i.Line, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.Severity, i.Message)
}

func warningf(line int, format string, args ...any) Issue {
	return Issue{Severity: SeverityWarning, Line: line, Message: fmt.Sprintf(format, args...)}
}

func errorf(line int, format string, args ...any) Issue {
	return Issue{Severity: SeverityError, Line: line, Message: fmt.Sprintf(format, args...)}
}
