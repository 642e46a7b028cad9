package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevHint is a faded, non-intrusive remark (deprecations inside the parser).
	SevHint Severity = iota
	// SevInfo is for informational diagnostics.
	SevInfo
	// SevWarning is for warning diagnostics.
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

// Tag is extra rendering metadata for editors.
type Tag uint8

const (
	// TagUnnecessary renders the range faded out.
	TagUnnecessary Tag = iota + 1
	// TagDeprecated renders the range struck through.
	TagDeprecated
)
