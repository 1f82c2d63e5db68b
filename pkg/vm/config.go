package vm

import "github.com/dlclark/regexp2"

// defaultReservedNamePattern blocks user code from defining new dunder-style
// slots (which a host language typically reserves for engine internals)
// while still permitting the two names this core itself installs
// internally, __proto__ and __fptr__. Expressing "reserved unless it's one
// of these two" needs a negative lookahead, which package regexp does not
// support; regexp2 does.
const defaultReservedNamePattern = `^__(?!proto__$|fptr__$)[A-Za-z0-9_]+__$`

// Config collects the runtime options read by the shape tree and property
// protocol (spec.md §6), threaded explicitly through VM rather than held as
// ambient global state (Design Note §9).
type Config struct {
	// ShapeNoTagSpec, if set, additionally strips TagKnown when projecting
	// a shape's recorded property type (spec.md §4.1).
	ShapeNoTagSpec bool
	// ShapeNoFptrSpec, if set, strips FptrKnown instead of lifting function
	// identity from a closure's __fptr__ shape entry (spec.md §4.1).
	ShapeNoFptrSpec bool

	// MinCap is the inline slot capacity new instances start with.
	MinCap int

	// ReservedNamePattern, when non-nil, is consulted before a *new*
	// property is added to an object; a match rejects the definition. Set
	// to nil to disable the guard entirely.
	ReservedNamePattern *regexp2.Regexp
}

// DefaultConfig returns the configuration new VMs use unless overridden. The
// default reserved-name pattern is a fixed, known-good expression, so unlike
// NewConfig it never needs to report a compile failure.
func DefaultConfig() *Config {
	return &Config{
		MinCap:              MinCap,
		ReservedNamePattern: regexp2.MustCompile(defaultReservedNamePattern, regexp2.None),
	}
}

// NewConfig builds a Config from a host-supplied reserved-name pattern,
// compiling it with regexp2 rather than panicking on a bad expression like
// regexp2.MustCompile does. An empty pattern disables the reserved-name
// guard entirely.
func NewConfig(minCap int, reservedNamePattern string) (*Config, error) {
	cfg := &Config{MinCap: minCap}
	if reservedNamePattern == "" {
		return cfg, nil
	}
	pattern, err := regexp2.Compile(reservedNamePattern, regexp2.None)
	if err != nil {
		return nil, &ConfigError{Msg: "invalid ReservedNamePattern: " + reservedNamePattern, Cause: err}
	}
	cfg.ReservedNamePattern = pattern
	return cfg, nil
}

// NameAllowed reports whether name may be used for a newly-defined
// property. Regex evaluation errors (e.g. a pathological backtracking case
// on hostile input) fail open: a mis-behaving guard pattern is a host
// configuration bug, not grounds to silently reject a legitimate property
// name it was never meant to touch.
func (c *Config) NameAllowed(name string) bool {
	if c == nil || c.ReservedNamePattern == nil {
		return true
	}
	matched, err := c.ReservedNamePattern.MatchString(name)
	if err != nil {
		return true
	}
	return !matched
}
