package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coregx/gonigmo"
)

func (a *app) matchCmd() *cobra.Command {
	var (
		f      patternFlags
		offset int
	)
	cmd := &cobra.Command{
		Use:   "match PATTERN SUBJECT",
		Short: "Match PATTERN exactly at an offset of SUBJECT",
		Long: `Try PATTERN anchored at --offset and print the match length followed by
the capture groups, one per line. Exits 1 when there is no match.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			re, err := a.compile(args[0], &f)
			if err != nil {
				return err
			}
			defer re.Close()

			subject := []byte(args[1])
			region := gonigmo.NewRegion()
			defer region.Release()

			res := re.Match(subject, offset, gonigmo.OptionNone, region)
			switch res.Kind {
			case gonigmo.KindError:
				return res.Err
			case gonigmo.KindMismatch:
				return errNoMatch
			}

			fmt.Fprintln(a.stdout, res.End-res.Begin)
			names := re.Names()
			for i := 1; i < region.Len(); i++ {
				p := region.At(i)
				label := fmt.Sprint(i)
				if names[i] != "" {
					label = names[i]
				}
				if p.Unset() {
					fmt.Fprintf(a.stdout, "%s\t(unset)\n", label)
					continue
				}
				fmt.Fprintf(a.stdout, "%s\t%d-%d\t%s\n", label, p.Begin, p.End, escape(subject[p.Begin:p.End]))
			}
			return nil
		},
	}
	f.register(cmd.Flags())
	cmd.Flags().IntVar(&offset, "offset", 0, "byte offset of the match start")
	return cmd
}
