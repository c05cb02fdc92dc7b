package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coregx/gonigmo"
)

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(a.stdout, "gonig %s\n", gonigmo.Version())
		},
	}
}
