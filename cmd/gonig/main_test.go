package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/gonigmo"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	a := newApp(strings.NewReader(stdin), &stdout, &stderr)
	root := a.rootCmd()
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestSearchStdin(t *testing.T) {
	out, _, err := run(t, "a12b345", "search", `\d+`)
	require.NoError(t, err)
	assert.Equal(t, "1-3:12\n4-7:345\n", out)
}

func TestSearchGroups(t *testing.T) {
	out, _, err := run(t, "on 2024-05", "search", "-g", `(?<y>\d{4})-(\d\d)`)
	require.NoError(t, err)
	assert.Equal(t, "3-10:2024-05\ty=2024\n", out)

	out, _, err = run(t, "on 2024-05", "search", "-g", "--capture-group", `(?<y>\d{4})-(\d\d)`)
	require.NoError(t, err)
	assert.Equal(t, "3-10:2024-05\ty=2024\t2=05\n", out)
}

func TestSearchOptions(t *testing.T) {
	out, _, err := run(t, "Foo\nfoo", "search", "-i", `^foo$`)
	require.NoError(t, err)
	assert.Equal(t, "0-3:Foo\n4-7:foo\n", out)

	out, _, err = run(t, "a\nb", "search", "-m", `a.b`)
	require.NoError(t, err)
	assert.Equal(t, `0-3:a\nb`+"\n", out)
}

func TestSearchNoMatch(t *testing.T) {
	out, _, err := run(t, "abc", "search", `\d`)
	assert.ErrorIs(t, err, errNoMatch)
	assert.Empty(t, out)
}

func TestSearchFirstAndOffset(t *testing.T) {
	out, _, err := run(t, "x1 x2 x3", "search", "--first", "--offset", "2", `x\d`)
	require.NoError(t, err)
	assert.Equal(t, "3-5:x2\n", out)

	out, _, err = run(t, "x1 x2 x3", "search", "--offset", "2", `x\d`)
	require.NoError(t, err)
	assert.Equal(t, "3-5:x2\n6-8:x3\n", out)
}

func TestSearchOffsetInsideMatch(t *testing.T) {
	for _, args := range [][]string{
		{"search", "--offset", "2", `\w+`},
		{"search", "--first", "--offset", "2", `\w+`},
	} {
		out, _, err := run(t, "hello world", args...)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "2-5:llo\n"), "%v: %q", args, out)
	}
}

func TestSearchOffsetPastEnd(t *testing.T) {
	for _, args := range [][]string{
		{"search", "--offset", "9", "a"},
		{"search", "--first", "--offset", "9", "a"},
	} {
		_, _, err := run(t, "abc", args...)
		require.Error(t, err)
		assert.NotErrorIs(t, err, errNoMatch)
		assert.ErrorIs(t, err, gonigmo.CodeInvalidArgument)
	}
}

func TestSearchCount(t *testing.T) {
	out, _, err := run(t, "aXbXc", "search", "-c", `X`)
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestSearchCompressedFiles(t *testing.T) {
	dir := t.TempDir()
	content := []byte("one foo\ntwo\nfoo three\n")

	plain := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(plain, content, 0o644))

	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, err := zw.Write(content)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	gzName := filepath.Join(dir, "log.gz")
	require.NoError(t, os.WriteFile(gzName, gz.Bytes(), 0o644))

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	zstName := filepath.Join(dir, "log.zst")
	require.NoError(t, os.WriteFile(zstName, enc.EncodeAll(content, nil), 0o644))
	require.NoError(t, enc.Close())

	out, _, err := run(t, "", "search", "foo", plain, gzName, zstName)
	require.NoError(t, err)

	var want strings.Builder
	for _, name := range []string{plain, gzName, zstName} {
		want.WriteString(name + ":4-7:foo\n")
		want.WriteString(name + ":12-15:foo\n")
	}
	assert.Equal(t, want.String(), out)
}

func TestSearchMissingFile(t *testing.T) {
	_, _, err := run(t, "", "search", "foo", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSearchProgress(t *testing.T) {
	name := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(name, []byte("abc abc"), 0o644))

	out, stderr, err := run(t, "", "search", "--progress", "abc", name)
	require.NoError(t, err)
	assert.Equal(t, name+":0-3:abc\n"+name+":4-7:abc\n", out)
	assert.Contains(t, stderr, "searching")
}

func TestSearchColor(t *testing.T) {
	out, _, err := run(t, "abc", "search", "--color", "b")
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "b")
}

func TestCompileError(t *testing.T) {
	_, _, err := run(t, "abc", "search", `a(b`)
	require.Error(t, err)

	var gerr *gonigmo.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, gonigmo.CodeMissingParen, gerr.Code)
}

func TestStepLimitFromConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("engine:\n  match_step_limit: 10\n"), 0o644))

	_, _, err := run(t, strings.Repeat("a", 64), "--config", cfg, "search", `(a*)*b`)
	require.Error(t, err)
	assert.ErrorIs(t, err, gonigmo.CodeMatchStepLimitOver)
}

func TestStepLimitFromEnv(t *testing.T) {
	t.Setenv("GONIG_ENGINE_MATCH_STEP_LIMIT", "10")
	_, _, err := run(t, strings.Repeat("a", 64), "search", `(a*)*b`)
	assert.ErrorIs(t, err, gonigmo.CodeMatchStepLimitOver)
}

func TestInvalidEngineConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("engine:\n  max_backtrack_bits: -1\n"), 0o644))

	_, _, err := run(t, "a", "--config", cfg, "search", "a")
	var cerr *gonigmo.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "MaxBacktrackBits", cerr.Field)
}

func TestMatch(t *testing.T) {
	out, _, err := run(t, "", "match", "--offset", "4", `(?<k>\w+)=(?<v>\w*)`, "set key=value")
	require.NoError(t, err)
	assert.Equal(t, "9\nk\t4-7\tkey\nv\t8-13\tvalue\n", out)

	_, _, err = run(t, "", "match", `\w+`, " key")
	assert.ErrorIs(t, err, errNoMatch)
}

func TestMatchUnsetGroup(t *testing.T) {
	out, _, err := run(t, "", "match", `(a)|(b)`, "b")
	require.NoError(t, err)
	assert.Equal(t, "1\n1\t(unset)\n2\t0-1\tb\n", out)
}

func TestGraphDot(t *testing.T) {
	out, _, err := run(t, "", "graph", `a(b|c)*d`)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "digraph program {"))
	assert.Contains(t, out, "doublecircle")
}

func TestGraphUnknownFormat(t *testing.T) {
	_, _, err := run(t, "", "graph", "--format", "png", "a")
	assert.ErrorContains(t, err, `unknown format "png"`)
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "gonig "+gonigmo.Version()+"\n", out)
}

func TestLogging(t *testing.T) {
	_, stderr, err := run(t, "abc", "--log-level", "debug", "--log-format", "json", "search", "b")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"message":"compiled pattern"`)
	assert.Contains(t, stderr, `"prefilter":`)

	_, _, err = run(t, "abc", "--log-level", "loud", "search", "b")
	assert.ErrorContains(t, err, "invalid log level")

	_, _, err = run(t, "abc", "--log-format", "xml", "search", "b")
	assert.ErrorContains(t, err, "invalid log format")
}
