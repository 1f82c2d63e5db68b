package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDumpCommand builds the "orzoctl dump <script>" subcommand: runs a
// property-operation script and prints the resulting shape tree.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dump <script>",
		Short:         "run a property-operation script and print its shape tree",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runDump(opts *RootOptions, scriptPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	session, runErr := runScript(opts, scriptPath)
	if session == nil {
		return runErr
	}

	dump := session.VM.Dump()
	if opts.Format == "text" {
		fmt.Fprint(formatter.Writer, dump)
	} else if err := formatter.Emit(map[string]string{"dump": dump}); err != nil {
		return err
	}
	return runErr
}
