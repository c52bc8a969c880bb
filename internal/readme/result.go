package readme

import (
	"fmt"
	"strings"
)

// CheckResult is the status of a package README in check mode.
type CheckResult int

const (
	// Skipped means the package opted out of README management.
	Skipped CheckResult = iota
	// Missing means the package has no README.
	Missing
	// UpdateNeeded means the README differs from the generated candidate.
	UpdateNeeded
	// UpToDate means the README matches the generated candidate byte for byte.
	UpToDate
)

func (r CheckResult) String() string {
	switch r {
	case Skipped:
		return "Skipped"
	case Missing:
		return "Missing"
	case UpdateNeeded:
		return "Update needed"
	case UpToDate:
		return "Up-to-date"
	default:
		return fmt.Sprintf("CheckResult(%d)", int(r))
	}
}

// MarshalText renders the result with its display name.
func (r CheckResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Err maps a check result onto pass/fail semantics: Missing and UpdateNeeded
// are failures, everything else passes.
func (r CheckResult) Err() error {
	switch r {
	case Missing:
		return ErrReadmeMissing
	case UpdateNeeded:
		return ErrUpdateNeeded
	default:
		return nil
	}
}

// Action is what Generate did to a package README.
type Action int

const (
	// Kept means an existing README was left untouched.
	Kept Action = iota
	// Created means a README was written where none existed.
	Created
	// Replaced means an existing README was overwritten.
	Replaced
	// Extended means generated content was appended to an existing README.
	Extended
	// Ignored means the package opted out of README management.
	Ignored
)

func (a Action) String() string {
	switch a {
	case Kept:
		return "Kept"
	case Created:
		return "Created"
	case Replaced:
		return "Replaced"
	case Extended:
		return "Extended"
	case Ignored:
		return "Ignored"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// MarshalText renders the action with its display name.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Mode is the merge policy used by Generate.
type Mode int

const (
	// IfMissing writes a README only when none exists.
	IfMissing Mode = iota
	// Overwrite replaces any existing README.
	Overwrite
	// Append keeps the existing README and appends the generated content.
	Append
)

var modeNames = map[Mode]string{
	IfMissing: "if-missing",
	Overwrite: "overwrite",
	Append:    "append",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses a mode name such as "overwrite". Matching is
// case-insensitive and accepts underscores in place of hyphens.
func ParseMode(s string) (Mode, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for m, name := range modeNames {
		if name == norm {
			return m, nil
		}
	}
	return 0, fmt.Errorf("invalid mode %q: must be one of: if-missing, overwrite, append", s)
}

// Set implements pflag.Value.
func (m *Mode) Set(s string) error {
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements pflag.Value.
func (m *Mode) Type() string {
	return "mode"
}
