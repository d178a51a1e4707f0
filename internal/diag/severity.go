package diag

// Severity defines the importance of a diagnostic. It only affects
// rendering; suppression and exit status depend on codes alone.
type Severity uint8

const (
	// SevHint marks optional-content findings (missing Examples section etc.).
	SevHint Severity = iota
	// SevInfo marks style findings.
	SevInfo
	// SevWarning marks content mismatches between docstring and declaration.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevHint:
		return "HINT"
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
