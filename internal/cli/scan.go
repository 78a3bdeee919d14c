package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"binpat/memory"
	"binpat/patfile"
	"binpat/scan"
)

func (a *app) scanCmd() *cobra.Command {
	var (
		file        string
		base        string
		patternText string
		mask        string
		cfg         scanConfig
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a flat binary image for a byte pattern",
		RunE: func(cmd *cobra.Command, args []string) error {
			space, err := loadImage(file, base)
			if err != nil {
				return err
			}
			return a.runScan(cmd.OutOrStdout(), space, patternText, mask, cfg)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "binary image to scan")
	cmd.Flags().StringVar(&base, "base", "0", "load address of the image")
	cmd.Flags().StringVar(&patternText, "pattern", "", `pattern, e.g. "48 8B ?? 05"`)
	cmd.Flags().StringVar(&mask, "mask", "", "optional mask for the byte+mask form")
	addScanFlags(cmd, &cfg)
	cmd.MarkFlagRequired("file")
	cmd.MarkFlagRequired("pattern")

	return cmd
}

func (a *app) scanFileCmd() *cobra.Command {
	var (
		patterns string
		file     string
		base     string
		cfg      scanConfig
	)

	cmd := &cobra.Command{
		Use:   "scanfile",
		Short: "Run every scan request from a pattern file against an image",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := patfile.LoadFile(patterns)
			if err != nil {
				return err
			}
			space, err := loadImage(file, base)
			if err != nil {
				return err
			}

			for _, rec := range records {
				a.log.Info().Int("line", rec.Line).Str("pattern", rec.Pattern).Msg("running pattern file record")
				if err := a.runScan(cmd.OutOrStdout(), space, rec.Pattern, rec.Mask, cfg); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&patterns, "patterns", "", "pattern file with one request per line")
	cmd.Flags().StringVar(&file, "file", "", "binary image to scan")
	cmd.Flags().StringVar(&base, "base", "0", "load address of the image")
	addScanFlags(cmd, &cfg)
	cmd.MarkFlagRequired("patterns")
	cmd.MarkFlagRequired("file")

	return cmd
}

func (a *app) attachCmd() *cobra.Command {
	var (
		pid         uint32
		patternText string
		mask        string
		cfg         scanConfig
	)

	cmd := &cobra.Command{
		Use:   "attach",
		Short: "Scan the memory of a live process (Windows only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			space, err := memory.OpenProcess(pid)
			if err != nil {
				return err
			}
			defer space.Close()

			return a.runScan(cmd.OutOrStdout(), space, patternText, mask, cfg)
		},
	}

	cmd.Flags().Uint32Var(&pid, "pid", 0, "process ID to attach to")
	cmd.Flags().StringVar(&patternText, "pattern", "", `pattern, e.g. "48 8B ?? 05"`)
	cmd.Flags().StringVar(&mask, "mask", "", "optional mask for the byte+mask form")
	addScanFlags(cmd, &cfg)
	cmd.MarkFlagRequired("pid")
	cmd.MarkFlagRequired("pattern")

	return cmd
}

func addScanFlags(cmd *cobra.Command, cfg *scanConfig) {
	cmd.Flags().IntVar(&cfg.max, "max", scan.DefaultMaxResults, "maximum results to retain")
	cmd.Flags().IntVar(&cfg.runs, "runs", scan.DefaultRuns, "scan passes (for benchmarking)")
	cmd.Flags().IntVar(&cfg.bits, "bits", 64, "x86 mode for --disasm (32 or 64)")
	cmd.Flags().BoolVar(&cfg.disasm, "disasm", false, "disassemble the instruction at each hit")
}

func loadImage(file, base string) (*memory.Buffer, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	baseAddr, err := strconv.ParseUint(base, 0, 64)
	if err != nil {
		return nil, fmt.Errorf("parse base address %q: %w", base, err)
	}
	return memory.NewBuffer(baseAddr, data), nil
}
