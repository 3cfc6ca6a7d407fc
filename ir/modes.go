package ir

import "fmt"

// UpdateMode selects what a write does when the key already holds a value.
type UpdateMode int

const (
	AssertOnOverwrite UpdateMode = iota
	Overwrite
	AssignIfMissing
)

// ClobberMode selects what a write does when the existing value has
// already been consumed by a read.
type ClobberMode int

const (
	AssertOnWriteAfterUse ClobberMode = iota
	AllowWriteAfterUse
)

// ReportMode selects whether a refused write surfaces as an error or is
// downgraded to a logged warning with the tree left unchanged.
type ReportMode int

const (
	FailFast ReportMode = iota
	WarnAndSkip
)

// Modes holds per-node mode overrides.  Nil members inherit from the
// nearest ancestor override, then from the tree defaults.
type Modes struct {
	Update  *UpdateMode
	Clobber *ClobberMode
	Report  *ReportMode
}

func (m Modes) clone() Modes {
	res := Modes{}
	if m.Update != nil {
		u := *m.Update
		res.Update = &u
	}
	if m.Clobber != nil {
		c := *m.Clobber
		res.Clobber = &c
	}
	if m.Report != nil {
		r := *m.Report
		res.Report = &r
	}
	return res
}

func ParseUpdateMode(v string) (UpdateMode, error) {
	m, ok := map[string]UpdateMode{
		"assert-on-overwrite": AssertOnOverwrite,
		"overwrite":           Overwrite,
		"assign-if-missing":   AssignIfMissing,
	}[v]
	if ok {
		return m, nil
	}
	return 0, fmt.Errorf("unrecognized update mode %q", v)
}

func (m UpdateMode) String() string {
	switch m {
	case AssertOnOverwrite:
		return "assert-on-overwrite"
	case Overwrite:
		return "overwrite"
	case AssignIfMissing:
		return "assign-if-missing"
	default:
		return fmt.Sprintf("<err: %d is not an update mode>", int(m))
	}
}

func (m UpdateMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *UpdateMode) UnmarshalText(d []byte) error {
	pm, err := ParseUpdateMode(string(d))
	if err != nil {
		return err
	}
	*m = pm
	return nil
}

func ParseClobberMode(v string) (ClobberMode, error) {
	m, ok := map[string]ClobberMode{
		"assert-on-write-after-use": AssertOnWriteAfterUse,
		"allow-write-after-use":     AllowWriteAfterUse,
	}[v]
	if ok {
		return m, nil
	}
	return 0, fmt.Errorf("unrecognized clobber mode %q", v)
}

func (m ClobberMode) String() string {
	switch m {
	case AssertOnWriteAfterUse:
		return "assert-on-write-after-use"
	case AllowWriteAfterUse:
		return "allow-write-after-use"
	default:
		return fmt.Sprintf("<err: %d is not a clobber mode>", int(m))
	}
}

func (m ClobberMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *ClobberMode) UnmarshalText(d []byte) error {
	pm, err := ParseClobberMode(string(d))
	if err != nil {
		return err
	}
	*m = pm
	return nil
}

func ParseReportMode(v string) (ReportMode, error) {
	m, ok := map[string]ReportMode{
		"fail-fast":     FailFast,
		"warn-and-skip": WarnAndSkip,
	}[v]
	if ok {
		return m, nil
	}
	return 0, fmt.Errorf("unrecognized report mode %q", v)
}

func (m ReportMode) String() string {
	switch m {
	case FailFast:
		return "fail-fast"
	case WarnAndSkip:
		return "warn-and-skip"
	default:
		return fmt.Sprintf("<err: %d is not a report mode>", int(m))
	}
}

func (m ReportMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *ReportMode) UnmarshalText(d []byte) error {
	pm, err := ParseReportMode(string(d))
	if err != nil {
		return err
	}
	*m = pm
	return nil
}
