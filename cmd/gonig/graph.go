package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-graphviz"
	"github.com/spf13/cobra"
)

func (a *app) graphCmd() *cobra.Command {
	var (
		f      patternFlags
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "graph PATTERN",
		Short: "Draw the compiled program of PATTERN",
		Long: `Write the compiled instruction graph of PATTERN as Graphviz DOT or as an
SVG rendered with the embedded Graphviz.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			re, err := a.compile(args[0], &f)
			if err != nil {
				return err
			}
			defer re.Close()

			var dot bytes.Buffer
			if err := re.WriteDot(&dot); err != nil {
				return err
			}

			var w io.Writer = a.stdout
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return err
				}
				defer file.Close()
				w = file
			}

			switch format {
			case "dot":
				_, err = w.Write(dot.Bytes())
				return err
			case "svg":
				return renderSVG(cmd, dot.Bytes(), w)
			default:
				return fmt.Errorf("unknown format %q (want dot or svg)", format)
			}
		},
	}
	f.register(cmd.Flags())
	cmd.Flags().StringVar(&format, "format", "dot", "output format (dot, svg)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}

func renderSVG(cmd *cobra.Command, dot []byte, w io.Writer) error {
	ctx := cmd.Context()
	graph, err := graphviz.ParseBytes(dot)
	if err != nil {
		return fmt.Errorf("parse dot: %w", err)
	}
	defer graph.Close()

	g, err := graphviz.New(ctx)
	if err != nil {
		return err
	}
	defer g.Close()

	return g.Render(ctx, graph, graphviz.SVG, w)
}
