package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/coregx/gonigmo"
)

type searchFlags struct {
	patternFlags
	offset   int
	first    bool
	groups   bool
	count    bool
	progress bool
}

func (a *app) searchCmd() *cobra.Command {
	var f searchFlags
	cmd := &cobra.Command{
		Use:   "search PATTERN [FILE...]",
		Short: "Print every match of PATTERN in stdin or the given files",
		Long: `Print every match as [FILE:]BEGIN-END:TEXT, where BEGIN and END are
byte offsets into the (decompressed) input. With --groups each capture group
follows on the same line as NAME=TEXT or NUMBER=TEXT.

Exits 1 when nothing matched.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSearch(cmd, args[0], args[1:], &f)
		},
	}
	f.register(cmd.Flags())
	cmd.Flags().IntVar(&f.offset, "offset", 0, "byte offset where matches may start")
	cmd.Flags().BoolVar(&f.first, "first", false, "stop at the first match of each input")
	cmd.Flags().BoolVarP(&f.groups, "groups", "g", false, "print capture groups")
	cmd.Flags().BoolVarP(&f.count, "count", "c", false, "print only the number of matches per input")
	cmd.Flags().BoolVar(&f.progress, "progress", false, "show a progress bar on stderr")
	cmd.Flags().Bool("color", false, "highlight output")
	cmd.Flags().Int("step-limit", 0, "abort a search after this many steps (0: unlimited)")
	_ = a.v.BindPFlag("output.color", cmd.Flags().Lookup("color"))
	_ = a.v.BindPFlag("engine.match_step_limit", cmd.Flags().Lookup("step-limit"))
	return cmd
}

func (a *app) runSearch(cmd *cobra.Command, pattern string, files []string, f *searchFlags) error {
	re, err := a.compile(pattern, &f.patternFlags)
	if err != nil {
		return err
	}
	defer re.Close()

	if len(files) == 0 {
		files = []string{stdinName}
	}
	prefix := len(files) > 1 || files[0] != stdinName

	var bar *progressbar.ProgressBar
	if f.progress {
		var total int64
		for _, name := range files {
			if n := inputSize(name); n > 0 {
				total += n
			}
		}
		bar = progressbar.NewOptions64(total,
			progressbar.OptionSetWriter(a.stderr),
			progressbar.OptionSetDescription("searching"),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(40),
		)
	}

	out := bufio.NewWriter(a.stdout)
	defer out.Flush()
	pal := newPalette(a.stdout, a.v.GetBool("output.color"))
	names := re.Names()
	region := gonigmo.NewRegion()
	defer region.Release()

	ctx := cmd.Context()
	total := 0
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := a.readInput(name)
		if err != nil {
			return err
		}
		if bar != nil {
			if size := inputSize(name); size > 0 {
				_ = bar.Add64(size)
			}
		}

		var lead string
		if prefix {
			lead = pal.File(name) + ":"
		}

		n, err := searchInput(ctx, re, data, f, region, func(res gonigmo.Result, region *gonigmo.Region) {
			if f.count {
				return
			}
			fmt.Fprintf(out, "%s%s:%s", lead,
				pal.Offset(strconv.Itoa(res.Begin)+"-"+strconv.Itoa(res.End)),
				pal.Match(escape(data[res.Begin:res.End])))
			if f.groups {
				writeGroups(out, pal, data, names, region)
			}
			fmt.Fprintln(out)
		})
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		a.log.Debug().Str("input", name).Int("bytes", len(data)).Int("matches", n).Msg("searched input")
		if f.count {
			fmt.Fprintf(out, "%s%d\n", lead, n)
		}
		total += n
	}
	if bar != nil {
		_ = bar.Finish()
	}

	if total == 0 {
		return errNoMatch
	}
	return nil
}

// searchInput reports the matches in data that start at or after the
// offset to emit and returns their count.
func searchInput(ctx context.Context, re *gonigmo.Regex, data []byte, f *searchFlags,
	region *gonigmo.Region, emit func(gonigmo.Result, *gonigmo.Region)) (int, error) {
	if f.first {
		res := re.SearchContext(ctx, data, f.offset, gonigmo.OptionNone, region)
		switch res.Kind {
		case gonigmo.KindError:
			return 0, res.Err
		case gonigmo.KindMatched:
			emit(res, region)
			return 1, nil
		}
		return 0, nil
	}

	var stop error
	n, err := re.ScanFrom(data, f.offset, gonigmo.OptionNone, region, func(_ int, res gonigmo.Result, region *gonigmo.Region) bool {
		if stop = ctx.Err(); stop != nil {
			return false
		}
		emit(res, region)
		return true
	})
	if err != nil {
		return n, err
	}
	if stop != nil {
		return n - 1, stop
	}
	return n, nil
}

func writeGroups(w io.Writer, pal palette, data []byte, names []string, region *gonigmo.Region) {
	for i := 1; i < region.Len(); i++ {
		label := strconv.Itoa(i)
		if i < len(names) && names[i] != "" {
			label = names[i]
		}
		text := "(unset)"
		if p := region.At(i); !p.Unset() {
			text = escape(data[p.Begin:p.End])
		}
		fmt.Fprintf(w, "\t%s=%s", pal.Group(label), text)
	}
}

var escaper = strings.NewReplacer("\n", `\n`, "\r", `\r`, "\t", `\t`)

func escape(b []byte) string {
	return escaper.Replace(string(b))
}
