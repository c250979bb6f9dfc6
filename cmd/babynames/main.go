package main

import (
	"os"

	"github.com/okian/babynames/internal/cli"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the root command with args and returns the process exit code.
func run(args []string) int {
	cmd := cli.NewRootCommand()
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		// cobra has already printed the error
		return 1
	}
	return 0
}
