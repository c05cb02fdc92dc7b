package gonigmo

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, re *Regex, subject string, opts Option) []Pair {
	t.Helper()
	var got []Pair
	n, err := re.Scan([]byte(subject), opts, nil, func(i int, res Result, region *Region) bool {
		assert.Equal(t, len(got), i)
		assert.Equal(t, Pair{res.Begin, res.End}, region.At(0))
		got = append(got, Pair{res.Begin, res.End})
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, len(got), n)
	return got
}

func TestScan(t *testing.T) {
	tests := []struct {
		pattern string
		subject string
		opts    Option
		want    []Pair
	}{
		{`\d+`, "a1b22c333", 0, []Pair{{1, 2}, {3, 5}, {6, 9}}},
		{`a*`, "baaa", 0, []Pair{{0, 0}, {1, 4}, {4, 4}}},
		{`a*`, "aaa", 0, []Pair{{0, 3}, {3, 3}}},
		{`a*`, "baaa", OptionFindNotEmpty, []Pair{{1, 4}}},
		{``, "日本", 0, []Pair{{0, 0}, {3, 3}, {6, 6}}},
		{`x`, "abc", 0, nil},
		{`^\w`, "ab\ncd", 0, []Pair{{0, 1}, {3, 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.subject, func(t *testing.T) {
			re := MustCompile(tt.pattern, OptionNone)
			assert.Equal(t, tt.want, scanAll(t, re, tt.subject, tt.opts))
		})
	}
}

func TestScanFrom(t *testing.T) {
	tests := []struct {
		pattern string
		subject string
		offset  int
		want    []Pair
	}{
		{`\w+`, "hello world", 2, []Pair{{2, 5}, {6, 11}}},
		{`\w+`, "hello world", 11, nil},
		{`\bw`, "hello world", 7, nil},
		{`a*`, "baa", 3, []Pair{{3, 3}}},
	}
	for _, tt := range tests {
		re := MustCompile(tt.pattern, OptionNone)
		var got []Pair
		_, err := re.ScanFrom([]byte(tt.subject), tt.offset, OptionNone, nil, func(_ int, res Result, _ *Region) bool {
			got = append(got, Pair{res.Begin, res.End})
			return true
		})
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%q on %q from %d", tt.pattern, tt.subject, tt.offset)
	}
}

func TestScanFromOutOfRange(t *testing.T) {
	re := MustCompile(`a`, OptionNone)
	n, err := re.ScanFrom([]byte("aa"), 3, OptionNone, nil, func(int, Result, *Region) bool { return true })
	assert.Zero(t, n)
	assert.ErrorIs(t, err, CodeInvalidArgument)
}

func TestScanStops(t *testing.T) {
	re := MustCompile(`\w+`, OptionNone)
	region := NewRegion()
	var words []string
	subject := []byte("one two three four")
	n, err := re.Scan(subject, OptionNone, region, func(_ int, _ Result, region *Region) bool {
		words = append(words, string(region.Group(subject, 0)))
		return len(words) < 2
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"one", "two"}, words)
}

func TestScanError(t *testing.T) {
	config := DefaultConfig()
	config.MatchStepLimit = 40
	re, err := CompileWithConfig([]byte(`(a*)*b|c`), OptionNone, config)
	require.NoError(t, err)

	subject := "c" + strings.Repeat("a", 64)
	n, err := re.Scan([]byte(subject), OptionNone, nil, func(int, Result, *Region) bool { return true })
	assert.Equal(t, 1, n)
	assert.ErrorIs(t, err, CodeMatchStepLimitOver)
}

func TestWriteDot(t *testing.T) {
	re := MustCompile(`a|b+`, OptionNone)
	var buf bytes.Buffer
	require.NoError(t, re.WriteDot(&buf))

	dot := buf.String()
	assert.True(t, strings.HasPrefix(dot, "digraph program {"))
	assert.Contains(t, dot, "start -> i")
	assert.Contains(t, dot, "match")
	assert.Contains(t, dot, "style=dashed")
	assert.Contains(t, dot, `label="a|b+"`)
	assert.True(t, strings.HasSuffix(dot, "}\n"))
}
