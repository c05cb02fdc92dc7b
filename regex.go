package gonigmo

import (
	"slices"
	"sync/atomic"

	"github.com/coregx/gonigmo/internal/compile"
	"github.com/coregx/gonigmo/prefilter"
	"github.com/coregx/gonigmo/vm"
)

// Regex is a compiled pattern.
//
// A Regex is immutable and safe for concurrent use; each concurrent search
// needs its own Region. Close releases it; a closed Regex panics with
// ErrClosed on further use.
//
// Example:
//
//	re, err := gonigmo.Compile([]byte(`(\w+)@(\w+)`), gonigmo.OptionNone)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer re.Close()
type Regex struct {
	pattern   string
	options   Option
	config    Config
	program   *compile.Program
	vm        *vm.Program
	prefilter prefilter.Prefilter
	groups    map[string][]int
	states    *searchStatePool
	closed    atomic.Bool
}

// Compile compiles pattern with the default configuration.
//
// pattern is length-delimited: NUL bytes are ordinary characters. The
// compile-time bits of opts select the syntax; the search-time bits become
// defaults for every search.
//
// On failure the error is an *Error.
func Compile(pattern []byte, opts Option) (*Regex, error) {
	return CompileWithConfig(pattern, opts, DefaultConfig())
}

// CompileString is Compile for a string pattern.
func CompileString(pattern string, opts Option) (*Regex, error) {
	return Compile([]byte(pattern), opts)
}

// MustCompile is like Compile but panics if the pattern does not compile.
//
// Example:
//
//	var word = gonigmo.MustCompile(`\w+`, gonigmo.OptionNone)
func MustCompile(pattern string, opts Option) *Regex {
	re, err := CompileString(pattern, opts)
	if err != nil {
		panic("gonigmo: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles pattern with a custom configuration.
func CompileWithConfig(pattern []byte, opts Option, config Config) (*Regex, error) {
	Init()

	if err := config.Validate(); err != nil {
		return nil, newError(CodeInvalidArgument, ErrorInfo{Expr: err.Error(), Err: err})
	}
	settings, err := settingsFor(opts)
	if err != nil {
		return nil, err
	}

	program, cerr := compile.Compile(pattern, settings)
	if cerr != nil {
		return nil, compileError(cerr)
	}

	var pf prefilter.Prefilter
	if config.EnablePrefilter {
		pf = prefilter.Build(program.Regexp, program.Prog)
	}

	groups := make(map[string][]int)
	for i, name := range program.Names {
		if name != "" {
			groups[name] = append(groups[name], i)
		}
	}

	machine := vm.NewProgram(program.Prog, program.NumCap, pf)
	return &Regex{
		pattern:   string(pattern),
		options:   opts,
		config:    config,
		program:   program,
		vm:        machine,
		prefilter: pf,
		groups:    groups,
		states:    newSearchStatePool(machine),
	}, nil
}

// settingsFor translates the compile-time option bits.
func settingsFor(opts Option) (compile.Settings, *Error) {
	s := compile.Settings{
		FoldCase: opts&OptionIgnoreCase != 0,
		DotNL:    opts&OptionMultiline != 0,
		OneLine:  opts&OptionSingleline != 0,
		Extended: opts&OptionExtend != 0,
	}
	switch {
	case opts&OptionCaptureGroup != 0 && opts&OptionDontCaptureGroup != 0:
		return s, newError(CodeInvalidCombinationOfOptions, ErrorInfo{Expr: (opts & (OptionCaptureGroup | OptionDontCaptureGroup)).String()})
	case opts&OptionCaptureGroup != 0:
		s.Captures = compile.CaptureAll
	case opts&OptionDontCaptureGroup != 0:
		s.Captures = compile.CaptureNamedOnly
	}
	return s, nil
}

// Close releases the compiled program. Closing twice is a no-op.
func (re *Regex) Close() {
	re.closed.Store(true)
}

func (re *Regex) checkOpen() {
	if re.closed.Load() {
		panic(ErrClosed)
	}
}

// String returns the source pattern.
func (re *Regex) String() string {
	return re.pattern
}

// Options returns the options the pattern was compiled with.
func (re *Regex) Options() Option {
	return re.options
}

// NumCaptures returns the number of capture groups, not counting group 0.
func (re *Regex) NumCaptures() int {
	re.checkOpen()
	return re.program.NumCap
}

// Names returns the group names indexed by group number. Element 0 and
// unnamed groups are "". A name may appear more than once.
func (re *Regex) Names() []string {
	re.checkOpen()
	return slices.Clone(re.program.Names)
}

// NameToGroupNumbers returns the group numbers that carry name, in
// ascending order, or nil when no group has that name.
func (re *Regex) NameToGroupNumbers(name string) []int {
	re.checkOpen()
	return slices.Clone(re.groups[name])
}

// HasGroup reports whether some group is called name.
func (re *Regex) HasGroup(name string) bool {
	re.checkOpen()
	return len(re.groups[name]) > 0
}

// Info describes the compiled program.
type Info struct {
	Instructions int
	Captures     int
	Prefilter    prefilter.Kind
}

// Info returns the size and strategy of the compiled program.
func (re *Regex) Info() Info {
	re.checkOpen()
	info := Info{
		Instructions: re.vm.Len(),
		Captures:     re.program.NumCap,
	}
	if re.prefilter != nil {
		info.Prefilter = re.prefilter.Kind()
	}
	return info
}
