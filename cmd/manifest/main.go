// Package main implements the manifest CLI, which extracts line items and
// shipping fields from invoice exports.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// version information
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Extract line items and shipping fields from invoice exports",
		Long: `manifest reads invoice exports (CSV, TSV, XLSX, HTML or PDF), rebuilds the
line-item table from the densely filled rows and harvests named fields such as
the consigner, EORI, VAT number, consignee address and grand total from the
sparse header and footer rows.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format (console or json)")

	cmd.AddCommand(newExtractCmd(opts))
	cmd.AddCommand(newFieldsCmd())
	return cmd
}
