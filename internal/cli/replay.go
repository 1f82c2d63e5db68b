package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewReplayCommand builds the "orzoctl replay <script>" subcommand: runs a
// property-operation script and prints every applied event in order, the
// same trace a host would use to confirm a script behaves deterministically
// across runs.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "replay <script>",
		Short:         "run a property-operation script and print its event trace",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runReplay(opts *RootOptions, scriptPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	session, runErr := runScript(opts, scriptPath)
	if session == nil {
		return runErr
	}

	if opts.Format == "text" {
		for _, ev := range session.Events {
			status := "ok"
			if !ev.Ok {
				status = "rejected"
			}
			fmt.Fprintf(formatter.Writer, "%4d %-8s %-16s %-16s %s\n", ev.Line, ev.Verb, ev.Target, ev.Value, status)
		}
		return runErr
	}
	if err := formatter.Emit(session.Events); err != nil {
		return err
	}
	return runErr
}
