// Package cli wires the command-line surface on top of the mars and
// redcode/parser packages: a cobra command tree, not part of the core
// simulation itself.
package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"go.redcode.dev/mars/mars"
	"go.redcode.dev/mars/redcode"
	"go.redcode.dev/mars/redcode/parser"
	"go.redcode.dev/mars/warriors"
)

// Root builds the top-level "mars" command and its subcommands.
func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "mars",
		Short: "Run Redcode '94 warriors in a memory array redcode simulator",
	}
	root.AddCommand(runCmd(), demoCmd(), serveCmd())
	return root
}

func loadConfig(cmd *cobra.Command) mars.Config {
	cfg := mars.DefaultConfig()
	if v, _ := cmd.Flags().GetInt("core-size"); v > 0 {
		cfg.CoreSize = v
	}
	if v, _ := cmd.Flags().GetInt("max-cycles"); v > 0 {
		cfg.MaxCycles = v
	}
	if v, _ := cmd.Flags().GetInt("max-processes"); v > 0 {
		cfg.MaxProcesses = v
	}
	return cfg
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().Int("core-size", 0, "override CORESIZE (default 8000)")
	cmd.Flags().Int("max-cycles", 0, "override MAXCYCLES (default 80000)")
	cmd.Flags().Int("max-processes", 0, "override MAXPROCESSES (default 8000)")
	cmd.Flags().Int64("seed", 1, "placement RNG seed")
	cmd.Flags().String("trace", "", "write a CSV trace export to this path")
}

// assembleFiles reads and assembles every path into a Program, using
// each path as given as the warrior's display name.
func assembleFiles(paths []string, coreSize int) (names []string, progs []redcode.Program, err error) {
	names = make([]string, len(paths))
	progs = make([]redcode.Program, len(paths))
	for i, p := range paths {
		src, err := os.ReadFile(p)
		if err != nil {
			return nil, nil, fmt.Errorf("read %q: %w", p, err)
		}
		prog, err := parser.New(p, coreSize).Parse(string(src))
		if err != nil {
			return nil, nil, fmt.Errorf("assemble %q: %w", p, err)
		}
		names[i] = p
		progs[i] = *prog
	}
	return names, progs, nil
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <warrior.red...>",
		Short: "Assemble and run a match between two or more warriors",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)
			seed, _ := cmd.Flags().GetInt64("seed")
			tracePath, _ := cmd.Flags().GetString("trace")
			watch, _ := cmd.Flags().GetBool("watch")

			run := func() error {
				names, progs, err := assembleFiles(args, cfg.CoreSize)
				if err != nil {
					return err
				}
				tracer := recordingTracer(tracePath)
				match, err := mars.NewMatch(cfg, names, progs, uint64(seed), tracer)
				if err != nil {
					return err
				}
				res := match.Run(context.Background())
				reportResult(cmd, res)
				if rt, ok := tracer.(tracerExporter); ok && tracePath != "" {
					if err := exportTrace(tracePath, rt); err != nil {
						return err
					}
				}
				return nil
			}

			if !watch {
				return run()
			}
			return watchAndRerun(args, run)
		},
	}
	addConfigFlags(cmd)
	cmd.Flags().Bool("watch", false, "re-run whenever a warrior source file changes")
	return cmd
}

func reportResult(cmd *cobra.Command, res mars.Result) {
	switch {
	case res.Winner != nil:
		fmt.Fprintf(cmd.OutOrStdout(), "winner: %s (after %d cycles)\n", res.Winner.Name, res.Cycles)
	case res.Draw:
		fmt.Fprintf(cmd.OutOrStdout(), "draw after %d cycles\n", res.Cycles)
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "undetermined after %d cycles\n", res.Cycles)
	}
}

func demoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a match between two embedded sample warriors",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)
			seed, _ := cmd.Flags().GetInt64("seed")
			tracePath, _ := cmd.Flags().GetString("trace")
			names := warriors.Names
			progs := make([]redcode.Program, len(names))
			for i, n := range names {
				src, ok := warriors.Source(n)
				if !ok {
					return fmt.Errorf("unknown embedded warrior %q", n)
				}
				prog, err := parser.New(n, cfg.CoreSize).Parse(src)
				if err != nil {
					return fmt.Errorf("assemble %q: %w", n, err)
				}
				progs[i] = *prog
			}
			tracer := recordingTracer(tracePath)
			match, err := mars.NewMatch(cfg, names, progs, uint64(seed), tracer)
			if err != nil {
				return err
			}
			res := match.Run(context.Background())
			reportResult(cmd, res)
			if rt, ok := tracer.(tracerExporter); ok && tracePath != "" {
				return exportTrace(tracePath, rt)
			}
			return nil
		},
	}
	addConfigFlags(cmd)
	return cmd
}

func serveCmd() *cobra.Command {
	var rounds int
	var addr string
	cmd := &cobra.Command{
		Use:   "serve <warrior.red...>",
		Short: "Run a multi-round tournament while exposing live metrics over HTTP",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)
			names, progs, err := assembleFiles(args, cfg.CoreSize)
			if err != nil {
				return err
			}
			return serveTournament(cfg, names, progs, rounds, addr)
		},
	}
	addConfigFlags(cmd)
	cmd.Flags().IntVar(&rounds, "rounds", 100, "number of independent rounds to run")
	cmd.Flags().StringVar(&addr, "addr", ":9094", "address to serve /metrics on")
	return cmd
}

// Execute runs the root command, logging and exiting non-zero on
// assembly errors, matching exit code 1 from the external interface.
func Execute() {
	if err := Root().Execute(); err != nil {
		log.Printf("mars: %v", err)
		os.Exit(1)
	}
}
