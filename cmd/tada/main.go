package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Makepad-fr/tada/internal/cli"
)

func main() {
	// Root flags (apply to every subcommand)
	groupPending := flag.Bool("group", false, "group output by pending/done")
	configPath := flag.String("config", "", "config file (TOML)")
	ephemeral := flag.Bool("ephemeral", false, "keep data in memory for this run only")
	flag.Usage = cli.PrintHelp
	flag.Parse()

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		Group:      *groupPending,
		ConfigPath: *configPath,
		Ephemeral:  *ephemeral,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
