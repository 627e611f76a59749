package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tsawler/manifest/fields"
)

func newFieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the field extractors and presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib := fields.Default()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tLABELS")
			for _, e := range lib.Extractors() {
				labels := make([]string, 0, len(e.Labels()))
				for _, l := range e.Labels() {
					labels = append(labels, string(l))
				}
				fmt.Fprintf(tw, "%s\t%s\n", e.Name(), strings.Join(labels, ", "))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout())
			for _, p := range fields.Presets() {
				names, err := fields.Preset(p)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "preset %s: %s\n", p, strings.Join(names, ", "))
			}
			return nil
		},
	}
}
