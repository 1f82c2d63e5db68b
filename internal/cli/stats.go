package cli

import (
	"github.com/spf13/cobra"
)

// NewStatsCommand builds the "orzoctl stats <script>" subcommand: runs a
// property-operation script and reports shape allocation and flip counters.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "stats <script>",
		Short:         "run a property-operation script and report shape statistics",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runStats(opts *RootOptions, scriptPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	session, runErr := runScript(opts, scriptPath)
	if session == nil {
		return runErr
	}

	report := session.VM.Report()
	if opts.Format == "text" {
		report.PrintReport()
	} else if err := formatter.Emit(report); err != nil {
		return err
	}
	return runErr
}
