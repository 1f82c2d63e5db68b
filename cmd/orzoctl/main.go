// Command orzoctl drives the pkg/vm object-shape core against a scripted
// sequence of property operations, standing in for the surrounding host
// language this core is explicitly not responsible for (spec.md §1
// Non-goals).
package main

import (
	"fmt"
	"os"

	"orzo/internal/cli"
)

func main() {
	root := cli.NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
