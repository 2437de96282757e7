package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dl/rpipe/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := cli.Config{}
	var colorFlag string

	exitCode := 0
	root := &cobra.Command{
		Use:           "rpipe [flags] path...",
		Short:         "Dump raw bytes from files and pipe ports without buffering",
		Long:          "rpipe opens each path read-only, drains it with single unbuffered read\ncalls, and writes the bytes to stdout. Each open, read, and close emits one\ndiagnostic line.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Paths = args

			switch colorFlag {
			case "auto":
				cfg.Color = cli.ColorAuto
			case "always":
				cfg.Color = cli.ColorAlways
			case "never":
				cfg.Color = cli.ColorNever
			default:
				return fmt.Errorf("invalid --color value %q (want auto, always, or never)", colorFlag)
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			exitCode = cli.Run(cfg)
			return nil
		},
	}

	flags := root.Flags()
	flags.IntVarP(&cfg.Count, "count", "c", 64*1024, "maximum bytes requested per read call")
	flags.BoolVarP(&cfg.Hex, "hex", "x", false, "render output as an offset/hex/ASCII dump")
	flags.BoolVarP(&cfg.Follow, "follow", "f", false, "keep the port open and dump newly appended data")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", false, "discard per-operation diagnostics")
	flags.IntVarP(&cfg.Workers, "workers", "j", 0, "worker count for multi-path dumps (0 = NumCPU*2)")
	flags.StringVar(&colorFlag, "color", "auto", "when to color hex output: auto, always, never")

	// Config file flags come first so the command line can override them.
	root.SetArgs(append(cli.LoadConfigArgs(), os.Args[1:]...))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "rpipe:", err)
		return 2
	}
	return exitCode
}
