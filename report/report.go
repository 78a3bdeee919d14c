// Package report turns scan results into a rendered markdown report.
//
// Building the result records and rendering them are separate steps, so the
// scanning core stays free of presentation concerns and hosts can swap the
// rendering.
package report

import (
	"fmt"
	"strings"

	"binpat/analysis"
	"binpat/scan"
)

// Title is the display title handed to the host alongside the body.
const Title = "Scan Results"

// Context is one line of disassembly-derived context for a result address:
// the enclosing function's display name and the covering instruction's text.
type Context struct {
	Function    string
	Instruction string
}

// Record is one result address with any code context resolved for it. An
// address outside analysed code simply has no contexts.
type Record struct {
	Address  uint64
	Contexts []Context
}

// Build resolves a context record for every result address against the
// analysis view. A nil view yields records without context lines.
func Build(v analysis.View, addresses []uint64) []Record {
	records := make([]Record, 0, len(addresses))
	for _, addr := range addresses {
		rec := Record{Address: addr}
		if v != nil {
			for _, block := range v.BlocksAt(addr) {
				rec.Contexts = append(rec.Contexts, Context{
					Function:    block.Function,
					Instruction: analysis.InstructionAt(v, block, addr),
				})
			}
		}
		records = append(records, rec)
	}
	return records
}

// Render formats the report body for a completed scan: an optional
// truncation warning, the result summary with match and total elapsed
// times, the pattern diagnostics line, then one bullet per address with
// nested function/instruction context bullets.
func Render(res *scan.Result, records []Record) (title, body string) {
	var b strings.Builder

	if res.Truncated {
		fmt.Fprintf(&b, "Warning: Too many results, truncated to %d.\n\n", len(res.Addresses))
	}

	fmt.Fprintf(&b, "Found %d results for `%s` in %d ms (actual %d ms):\n\n",
		len(records), res.PatternText,
		res.MatchElapsed.Milliseconds(), res.TotalElapsed.Milliseconds())

	if res.PatternLen > 0 {
		fmt.Fprintf(&b, "Pattern: Length %d, \"%s\"\n\n", res.PatternLen, res.Canonical)
	}

	b.WriteString("\n")

	for _, rec := range records {
		fmt.Fprintf(&b, "* 0x%X\n", rec.Address)
		for _, ctx := range rec.Contexts {
			fmt.Fprintf(&b, "    * %s : `%s`\n", ctx.Function, ctx.Instruction)
		}
	}

	return Title, b.String()
}
