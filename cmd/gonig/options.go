package main

import (
	"github.com/spf13/pflag"

	"github.com/coregx/gonigmo"
)

// patternFlags are the option switches shared by every command that
// compiles a pattern.
type patternFlags struct {
	ignoreCase   bool
	extend       bool
	multiline    bool
	singleline   bool
	longest      bool
	notEmpty     bool
	captureGroup bool
	noCapture    bool
}

func (f *patternFlags) register(fs *pflag.FlagSet) {
	fs.BoolVarP(&f.ignoreCase, "ignore-case", "i", false, "case-insensitive match")
	fs.BoolVarP(&f.extend, "extend", "x", false, "free-spacing syntax")
	fs.BoolVarP(&f.multiline, "multiline", "m", false, "'.' also matches a newline")
	fs.BoolVarP(&f.singleline, "singleline", "s", false, "'^' and '$' match only at subject edges")
	fs.BoolVar(&f.longest, "longest", false, "prefer the longest leftmost match")
	fs.BoolVar(&f.notEmpty, "not-empty", false, "ignore empty matches")
	fs.BoolVar(&f.captureGroup, "capture-group", false, "plain groups capture even next to named groups")
	fs.BoolVar(&f.noCapture, "no-capture", false, "plain groups do not capture")
}

func (f *patternFlags) options() gonigmo.Option {
	var opts gonigmo.Option
	set := func(on bool, o gonigmo.Option) {
		if on {
			opts |= o
		}
	}
	set(f.ignoreCase, gonigmo.OptionIgnoreCase)
	set(f.extend, gonigmo.OptionExtend)
	set(f.multiline, gonigmo.OptionMultiline)
	set(f.singleline, gonigmo.OptionSingleline)
	set(f.longest, gonigmo.OptionFindLongest)
	set(f.notEmpty, gonigmo.OptionFindNotEmpty)
	set(f.captureGroup, gonigmo.OptionCaptureGroup)
	set(f.noCapture, gonigmo.OptionDontCaptureGroup)
	return opts
}

func (a *app) compile(pattern string, f *patternFlags) (*gonigmo.Regex, error) {
	config, err := a.engineConfig()
	if err != nil {
		return nil, err
	}
	opts := f.options()
	re, err := gonigmo.CompileWithConfig([]byte(pattern), opts, config)
	if err != nil {
		return nil, err
	}
	info := re.Info()
	a.log.Debug().
		Str("pattern", pattern).
		Stringer("options", opts).
		Int("instructions", info.Instructions).
		Int("captures", info.Captures).
		Stringer("prefilter", info.Prefilter).
		Msg("compiled pattern")
	return re, nil
}
