// Package triple provides a validated target-triple value type.
//
// A target triple identifies a platform as architecture-vendor-os with an
// optional environment component, e.g. "x86_64-unknown-linux-gnu" or
// "aarch64-apple-darwin".
//
// The packaging policy itself treats triples as opaque map keys; this
// package exists for callers (such as the CLI) that want to reject
// malformed triples before building a policy around them.
//
// Triples are immutable and validated at construction time. The zero value
// is invalid; use [New] or [MustNew].
package triple

import (
	"fmt"
	"regexp"
	"strings"
)

// componentRegex matches one dash-separated triple component.
var componentRegex = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)

// Triple is a validated target triple.
type Triple struct {
	value string

	arch        string
	vendor      string
	os          string
	environment string
}

// New creates a validated Triple from its textual form.
//
// The value must have three or four non-empty dash-separated components:
// architecture, vendor, operating system, and optionally environment/ABI.
func New(value string) (Triple, error) {
	if value == "" {
		return Triple{}, fmt.Errorf("target triple cannot be empty")
	}

	parts := strings.Split(value, "-")
	if len(parts) < 3 || len(parts) > 4 {
		return Triple{}, fmt.Errorf("invalid target triple %q: want arch-vendor-os or arch-vendor-os-env", value)
	}
	for _, part := range parts {
		if !componentRegex.MatchString(part) {
			return Triple{}, fmt.Errorf("invalid target triple %q: bad component %q", value, part)
		}
	}

	t := Triple{
		value:  value,
		arch:   parts[0],
		vendor: parts[1],
		os:     parts[2],
	}
	if len(parts) == 4 {
		t.environment = parts[3]
	}
	return t, nil
}

// MustNew creates a Triple or panics. Use only for constants and tests.
func MustNew(value string) Triple {
	t, err := New(value)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the triple's textual form.
func (t Triple) String() string {
	return t.value
}

// IsEmpty returns true if this is a zero-value Triple.
func (t Triple) IsEmpty() bool {
	return t.value == ""
}

// Arch returns the architecture component (e.g. "x86_64").
func (t Triple) Arch() string {
	return t.arch
}

// Vendor returns the vendor component (e.g. "unknown", "apple", "pc").
func (t Triple) Vendor() string {
	return t.vendor
}

// OS returns the operating system component (e.g. "linux", "darwin").
func (t Triple) OS() string {
	return t.os
}

// Environment returns the environment/ABI component (e.g. "gnu", "musl"),
// or the empty string for three-component triples.
func (t Triple) Environment() string {
	return t.environment
}
