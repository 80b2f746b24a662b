// Command soc is a thin driver over the interp package: it contains
// no language semantics of its own, only enough wiring to run a file
// or a line-at-a-time REPL against an Interpreter.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/achronyme/soc/interp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// runConfig is the optional soc.yaml run configuration: tracing on/off
// and its name filters, loaded the same way the teacher's config/db
// loaders use yaml.v3 for structured text formats.
type runConfig struct {
	Trace       bool     `yaml:"trace"`
	TraceFilter []string `yaml:"trace_filter"`
}

func loadConfig(path string) runConfig {
	var cfg runConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	_ = yaml.Unmarshal(data, &cfg)
	return cfg
}

func main() {
	var configPath string

	root := &cobra.Command{
		Use:   "soc",
		Short: "SOC language interpreter",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "soc.yaml", "run configuration file")

	root.AddCommand(runCmd(&configPath))
	root.AddCommand(replCmd(&configPath))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Evaluate a SOC source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(*configPath)
			source, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			i := interp.New()
			if cfg.Trace {
				i.EnableTrace(cfg.TraceFilter)
			}
			val, evalErr := i.EvalSource(string(source))
			if evalErr != nil {
				return evalErr
			}
			fmt.Println(val.String())
			return nil
		},
	}
}

func replCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Evaluate expressions line by line",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(*configPath)
			i := interp.New()
			if cfg.Trace {
				i.EnableTrace(cfg.TraceFilter)
			}
			scanner := bufio.NewScanner(os.Stdin)
			fmt.Fprint(os.Stderr, "> ")
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					fmt.Fprint(os.Stderr, "> ")
					continue
				}
				val, evalErr := i.EvalExpression(line)
				if evalErr != nil {
					val, evalErr = i.EvalSource(line)
				}
				if evalErr != nil {
					fmt.Fprintln(os.Stderr, evalErr)
				} else {
					fmt.Println(val.String())
				}
				fmt.Fprint(os.Stderr, "> ")
			}
			return scanner.Err()
		},
	}
}
