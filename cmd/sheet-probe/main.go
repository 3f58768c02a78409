// Command sheet-probe identifies a spreadsheet file by its magic bytes,
// lists its container entries and previews the first rows of each sheet.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	sheetprobe "sheet-probe"
	"sheet-probe/internal/config"
	"sheet-probe/internal/logging"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sheet-probe [flags] PATH",
		Short:         "Identify a spreadsheet file and preview its sheets",
		Long:          "Detects the container format of PATH from its magic bytes, lists archive entries and prints the leading rows of every sheet.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.New(cmd.Flags())
			if err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				fmt.Fprintf(stderr, "[x] invalid configuration: %v\n", err)
				return err
			}
			return run(cfg, args[0], stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func run(cfg *config.Config, path string, stdout, stderr io.Writer) error {
	log := logging.Setup(stderr, cfg.LogLevel, cfg.LogFormat)

	p := sheetprobe.New(
		sheetprobe.WithRowLimit(cfg.RowLimit),
		sheetprobe.WithEntryLimit(cfg.EntryLimit),
		sheetprobe.WithCharset(cfg.Charset),
		sheetprobe.WithLogger(log),
	)

	res, err := p.Probe(path)
	if err != nil {
		if sheetprobe.IsNotFound(err) {
			fmt.Fprintf(stderr, "[x] %v\n", err)
		} else {
			log.Error("probe failed", "path", path, "error", err)
		}
		return err
	}

	switch cfg.Format {
	case config.FormatJSON:
		out, err := sheetprobe.RenderJSON(res)
		if err != nil {
			return fmt.Errorf("render json: %w", err)
		}
		_, err = fmt.Fprintln(stdout, string(out))
		return err
	case config.FormatTOON:
		out, err := sheetprobe.RenderTOON(res)
		if err != nil {
			return fmt.Errorf("render toon: %w", err)
		}
		_, err = fmt.Fprintln(stdout, out)
		return err
	default:
		_, err = io.WriteString(stdout, sheetprobe.RenderMarkdown(res))
		return err
	}
}
