package vm

import (
	"bytes"
	"errors"
	"regexp"
	"slices"
	"testing"

	"github.com/coregx/gonigmo/internal/compile"
)

type executor struct {
	name string
	run  func(p *Program, s *Scratch, req *Request) (bool, error)
}

var executors = []executor{
	{"backtrack", (*Program).Backtrack},
	{"pikevm", (*Program).PikeVM},
}

func newProgram(t *testing.T, pattern string, settings compile.Settings, finder Finder) *Program {
	t.Helper()
	c, err := compile.Compile([]byte(pattern), settings)
	if err != nil {
		t.Fatalf("compile %q: %v", pattern, err)
	}
	return NewProgram(c.Prog, c.NumCap, finder)
}

// find runs req on every executor, checks that they agree and returns the
// capture slots, or nil on no match.
func find(t *testing.T, p *Program, req Request) []int {
	t.Helper()
	var want []int
	for i, ex := range executors {
		s := p.NewScratch()
		ok, err := ex.run(p, s, &req)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", ex.name, err)
		}
		var got []int
		if ok {
			got = slices.Clone(s.Caps)
		}
		if i == 0 {
			want = got
			continue
		}
		if !slices.Equal(got, want) {
			t.Fatalf("%s = %v, %s = %v", ex.name, got, executors[0].name, want)
		}
	}
	return want
}

func TestAgainstStdlib(t *testing.T) {
	patterns := []string{
		`a+`,
		`(a|ab)(c|bcd)(d*)`,
		`(a*)+`,
		`x*`,
		`(\w+)\s(\w+)`,
		`\bfoo\b`,
		`(?i)straße`,
		`[[:alpha:]]+(\d)?`,
		`(a)|b`,
		`^abc$`,
		`a.c`,
		`(?s)a.c`,
		`日本(語)?`,
		`(a+)(b+)?`,
		`(?U)(a+)(a*)`,
	}
	subjects := []string{
		"", "abcd", "xxabcdx", "foo bar", "afoo foo", "aaa", "STRASSE straße",
		"日本語", "a\nc", "b", "abc", "a1", "aab", "\xffabc",
	}

	for _, pattern := range patterns {
		p := newProgram(t, pattern, compile.Settings{OneLine: true, Captures: compile.CaptureAll}, nil)
		oracle := regexp.MustCompile(pattern)
		for _, subject := range subjects {
			got := find(t, p, Request{Subject: []byte(subject)})
			want := oracle.FindSubmatchIndex([]byte(subject))
			if !slices.Equal(got, want) {
				t.Errorf("%q on %q: got %v, want %v", pattern, subject, got, want)
			}
		}
	}
}

func TestOffsetBoundsStartOnly(t *testing.T) {
	tests := []struct {
		pattern string
		subject string
		offset  int
		want    []int
	}{
		{`b`, "ab", 1, []int{1, 2}},
		{`b`, "ab", 2, nil},
		{`\bb`, "ab", 1, nil},
		{`\Bb`, "ab", 1, []int{1, 2}},
		{`^b`, "ab", 1, nil},
		{`^b`, "a\nb", 1, []int{2, 3}},
		{`\Ab`, "ab", 1, nil},
		{`a*`, "baa", 3, []int{3, 3}},
		{`(a)?$`, "xa", 2, []int{2, 2, -1, -1}},
	}

	for _, tt := range tests {
		p := newProgram(t, tt.pattern, compile.Settings{}, nil)
		got := find(t, p, Request{Subject: []byte(tt.subject), Offset: tt.offset})
		if !slices.Equal(got, tt.want) {
			t.Errorf("%q on %q at %d: got %v, want %v", tt.pattern, tt.subject, tt.offset, got, tt.want)
		}
	}
}

func TestAnchored(t *testing.T) {
	p := newProgram(t, `b`, compile.Settings{}, nil)
	if got := find(t, p, Request{Subject: []byte("ab"), Anchored: true}); got != nil {
		t.Errorf("anchored at 0: got %v, want no match", got)
	}
	if got := find(t, p, Request{Subject: []byte("ab"), Offset: 1, Anchored: true}); !slices.Equal(got, []int{1, 2}) {
		t.Errorf("anchored at 1: got %v, want [1 2]", got)
	}
}

func TestContext(t *testing.T) {
	tests := []struct {
		pattern string
		subject string
		ctx     Context
		want    []int
	}{
		{`^a`, "a", NotBOL, nil},
		{`^a`, "x\na", NotBOL, []int{2, 3}},
		{`a$`, "a", NotEOL, nil},
		{`a$`, "a\nb", NotEOL, []int{0, 1}},
		{`\Aa`, "a", NotBOS, nil},
		{`a\z`, "a", NotEOS, nil},
		{`^a`, "a", NotBOS, []int{0, 1}},
	}

	for _, tt := range tests {
		p := newProgram(t, tt.pattern, compile.Settings{}, nil)
		got := find(t, p, Request{Subject: []byte(tt.subject), Context: tt.ctx})
		if !slices.Equal(got, tt.want) {
			t.Errorf("%q on %q ctx=%d: got %v, want %v", tt.pattern, tt.subject, tt.ctx, got, tt.want)
		}
	}
}

func TestNotEmpty(t *testing.T) {
	p := newProgram(t, `a*`, compile.Settings{}, nil)
	if got := find(t, p, Request{Subject: []byte("bab"), NotEmpty: true}); !slices.Equal(got, []int{1, 2}) {
		t.Errorf("got %v, want [1 2]", got)
	}
	if got := find(t, p, Request{Subject: []byte("bbb"), NotEmpty: true}); got != nil {
		t.Errorf("got %v, want no match", got)
	}
}

func TestLongest(t *testing.T) {
	p := newProgram(t, `a|ab`, compile.Settings{}, nil)

	s := p.NewScratch()
	ok, err := p.PikeVM(s, &Request{Subject: []byte("xab"), Longest: true})
	if err != nil || !ok {
		t.Fatalf("PikeVM: ok=%v err=%v", ok, err)
	}
	if !slices.Equal(s.Caps, []int{1, 3}) {
		t.Errorf("longest: got %v, want [1 3]", s.Caps)
	}

	if got := find(t, p, Request{Subject: []byte("xab")}); !slices.Equal(got, []int{1, 2}) {
		t.Errorf("leftmost-first: got %v, want [1 2]", got)
	}
}

func TestStepLimit(t *testing.T) {
	p := newProgram(t, `(a*)*b`, compile.Settings{}, nil)
	subject := bytes.Repeat([]byte("a"), 64)

	for _, ex := range executors {
		s := p.NewScratch()
		ok, err := ex.run(p, s, &Request{Subject: subject, StepLimit: 100})
		if ok || !errors.Is(err, ErrStepLimit) {
			t.Errorf("%s: ok=%v err=%v, want ErrStepLimit", ex.name, ok, err)
		}

		// The scratch must be reusable after an aborted search.
		ok, err = ex.run(p, s, &Request{Subject: []byte("aab")})
		if !ok || err != nil {
			t.Errorf("%s: reuse: ok=%v err=%v", ex.name, ok, err)
		}
	}
}

func TestCanBacktrack(t *testing.T) {
	p := newProgram(t, `abc`, compile.Settings{}, nil)
	n := p.Len()
	if !p.CanBacktrack(9, n*10) {
		t.Errorf("CanBacktrack(9, %d) = false, want true", n*10)
	}
	if p.CanBacktrack(10, n*10) {
		t.Errorf("CanBacktrack(10, %d) = true, want false", n*10)
	}
	if p.CanBacktrack(0, 0) {
		t.Error("CanBacktrack with zero budget = true")
	}
}

type byteFinder struct {
	b     byte
	calls int
}

func (f *byteFinder) Find(h []byte, at int) int {
	f.calls++
	if i := bytes.IndexByte(h[at:], f.b); i >= 0 {
		return at + i
	}
	return -1
}

func TestFinderSkipsAhead(t *testing.T) {
	f := &byteFinder{b: 'z'}
	p := newProgram(t, `z+`, compile.Settings{}, f)
	if got := find(t, p, Request{Subject: []byte("aaazzb")}); !slices.Equal(got, []int{3, 5}) {
		t.Errorf("got %v, want [3 5]", got)
	}
	if f.calls == 0 {
		t.Error("finder was never consulted")
	}
	if got := find(t, p, Request{Subject: []byte("aaab")}); got != nil {
		t.Errorf("got %v, want no match", got)
	}
}

func TestNumSlots(t *testing.T) {
	p := newProgram(t, `(a)(b)`, compile.Settings{}, nil)
	if p.NumSlots() != 6 {
		t.Errorf("NumSlots() = %d, want 6", p.NumSlots())
	}
	got := find(t, p, Request{Subject: []byte("ab")})
	if !slices.Equal(got, []int{0, 2, 0, 1, 1, 2}) {
		t.Errorf("got %v, want [0 2 0 1 1 2]", got)
	}
}
