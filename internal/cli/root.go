package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds flags shared by every orzoctl subcommand.
type RootOptions struct {
	Format              string // "text" | "json"
	ShapeNoTagSpec      bool
	ShapeNoFptrSpec     bool
	TraceAccess         bool
	TraceShape          bool
	ReservedNamePattern string
	MinCap              int
}

var validFormats = []string{"text", "json"}

// NewRootCommand builds the orzoctl root command and wires every subcommand
// (stats, dump, replay) under it.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "orzoctl",
		Short: "orzoctl drives the object-shape core against a scripted sequence of property operations",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, validFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")
	cmd.PersistentFlags().BoolVar(&opts.ShapeNoTagSpec, "shape-no-tag-spec", false, "strip TagKnown when projecting property types")
	cmd.PersistentFlags().BoolVar(&opts.ShapeNoFptrSpec, "shape-no-fptr-spec", false, "disable function-identity lifting for closure properties")
	cmd.PersistentFlags().BoolVar(&opts.TraceAccess, "trace-access", false, "trace property get/set operations to stderr")
	cmd.PersistentFlags().BoolVar(&opts.TraceShape, "trace-shape", false, "trace shape tree mutations to stderr")
	cmd.PersistentFlags().StringVar(&opts.ReservedNamePattern, "reserved-name-pattern", "", "regexp2 pattern rejecting new property names (default: engine's built-in dunder guard)")
	cmd.PersistentFlags().IntVar(&opts.MinCap, "min-cap", 0, "inline slot capacity for new instances (default: engine's built-in minimum)")

	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewDumpCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range validFormats {
		if f == format {
			return true
		}
	}
	return false
}
