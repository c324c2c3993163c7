// Command raddict loads and inspects RADIUS attribute dictionaries.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/roach88/raddict/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "raddict: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
