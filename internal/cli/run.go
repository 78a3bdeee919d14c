package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"binpat/analysis"
	"binpat/analysis/x86"
	"binpat/memory"
	"binpat/report"
	"binpat/scan"
)

type scanConfig struct {
	max    int
	runs   int
	bits   int
	disasm bool
}

// runScan compiles one request, executes it on a background worker with
// interrupt-driven cancellation, and prints the rendered report. Compile
// failures abort only this request so pattern-file runs keep going.
func (a *app) runScan(out io.Writer, space memory.AddressSpace, patternText, mask string, cfg scanConfig) error {
	p, display, err := scan.Compile(patternText, mask)
	if err != nil {
		a.log.Error().Err(err).Str("pattern", display).Msg("cannot compile pattern")
		return nil
	}

	task := scan.NewTask(fmt.Sprintf("Scanning for pattern: %q", display))
	stop := cancelOnInterrupt(task)
	defer stop()

	done := make(chan *scan.Result, 1)
	go func() {
		done <- scan.Run(task, space, p, scan.Options{
			MaxResults:  cfg.max,
			Runs:        cfg.runs,
			PatternText: display,
			Logger:      a.log,
		})
	}()

	res := <-done
	if res == nil {
		a.log.Warn().Str("task", task.Label()).Msg("scan cancelled")
		return nil
	}

	var view analysis.View
	if cfg.disasm {
		arch, err := x86.New(cfg.bits)
		if err != nil {
			return err
		}
		view = &disasmView{AddressSpace: space, arch: arch}
	}

	title, body := report.Render(res, report.Build(view, res.Addresses))
	fmt.Fprintf(out, "# %s\n\n%s", title, body)
	return nil
}

// cancelOnInterrupt forwards the first interrupt to the task's cooperative
// cancellation flag. The returned stop function detaches the handler.
func cancelOnInterrupt(task *scan.Task) func() {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)

	go func() {
		if _, ok := <-sigc; ok {
			task.Cancel()
		}
	}()

	return func() {
		signal.Stop(sigc)
		close(sigc)
	}
}

// disasmView satisfies analysis.View for a flat image without code-block
// analysis: each queried address gets a one-instruction pseudo block so the
// report can show the decoded instruction at every hit.
type disasmView struct {
	memory.AddressSpace
	arch analysis.Architecture
}

func (v *disasmView) BlocksAt(addr uint64) []analysis.Block {
	return []analysis.Block{{
		Start:    addr,
		End:      addr + uint64(v.arch.MaxInstructionLength()),
		Function: fmt.Sprintf("loc_%x", addr),
		Arch:     v.arch,
	}}
}

func (v *disasmView) DefaultArchitecture() analysis.Architecture { return v.arch }

func (v *disasmView) ExecutableAt(addr uint64) bool { return true }
