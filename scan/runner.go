package scan

import (
	"slices"
	"time"

	"github.com/rs/zerolog"

	"binpat/memory"
	"binpat/pattern"
)

const (
	// DefaultMaxResults caps the retained result set per scan request.
	DefaultMaxResults = 1000

	// DefaultRuns is the number of scan passes per request. Values above 1
	// repeat the pass for benchmarking; results come from the last
	// completed run.
	DefaultRuns = 1
)

// Options configures a scan run.
type Options struct {
	// MaxResults caps the result set; 0 selects DefaultMaxResults,
	// negative values disable the cap.
	MaxResults int

	// Runs is the number of scan passes; 0 selects DefaultRuns.
	Runs int

	// PatternText is the user-supplied pattern string used in reports and
	// log lines. Defaults to the canonical form of the compiled pattern.
	PatternText string

	// Logger receives scan diagnostics. Defaults to a no-op logger.
	Logger zerolog.Logger
}

func (o Options) withDefaults(p *pattern.Pattern) Options {
	if o.MaxResults == 0 {
		o.MaxResults = DefaultMaxResults
	}
	if o.Runs <= 0 {
		o.Runs = DefaultRuns
	}
	if o.PatternText == "" {
		o.PatternText = p.String()
	}
	return o
}

// Result is the outcome of a completed (non-cancelled) scan.
type Result struct {
	// Addresses are the absolute match addresses, sorted ascending,
	// truncated to the configured maximum.
	Addresses []uint64

	// Truncated reports that the cap was reached; more matches may exist.
	Truncated bool

	// MatchElapsed is time spent in the matching passes only.
	MatchElapsed time.Duration

	// TotalElapsed covers the whole task including reads and bookkeeping.
	TotalElapsed time.Duration

	// PatternText is the user-supplied pattern string.
	PatternText string

	// PatternLen is the logical cell count of the compiled pattern.
	PatternLen int

	// Canonical is the canonical token form of the compiled pattern.
	Canonical string

	// Runs counts the completed scan passes.
	Runs int
}

// Compile builds a pattern from a scan request: token form when mask is
// empty, unescaped byte+mask form otherwise. The returned string is the
// display form for reports and logs.
func Compile(patternText, mask string) (*pattern.Pattern, string, error) {
	if mask == "" {
		p, err := pattern.Parse(patternText)
		return p, patternText, err
	}

	data := pattern.Unescape(patternText)
	p, err := pattern.New(data, mask)
	return p, patternText + ", " + mask, err
}

// Run executes the configured number of scan passes over the address space
// and returns the aggregated result. Each task owns its pattern, results and
// timing exclusively; concurrent runs share only the read-only space.
//
// Run returns nil when the task was cancelled: a cancelled scan produces no
// result and callers must not render a report for it.
func Run(task *Task, space memory.AddressSpace, p *pattern.Pattern, opts Options) *Result {
	opts = opts.withDefaults(p)
	log := opts.Logger

	task.start()
	totalStart := time.Now()

	var (
		addresses    []uint64
		truncated    bool
		matchElapsed time.Duration
		runs         int
	)

	for i := 0; i < opts.Runs; i++ {
		if task.Cancelled() {
			break
		}

		start := time.Now()
		sub, trunc := ScanAll(space, p, task, opts.MaxResults)
		matchElapsed += time.Since(start)

		if task.Cancelled() {
			break
		}

		addresses, truncated = sub, trunc
		runs++
	}

	if task.Cancelled() {
		task.finish(StateCancelled)
		log.Info().
			Str("task", task.Label()).
			Str("pattern", opts.PatternText).
			Msg("scan cancelled")
		return nil
	}

	slices.Sort(addresses)
	if opts.MaxResults > 0 && len(addresses) > opts.MaxResults {
		truncated = true
		addresses = addresses[:opts.MaxResults]
	}

	task.finish(StateCompleted)

	res := &Result{
		Addresses:    addresses,
		Truncated:    truncated,
		MatchElapsed: matchElapsed,
		TotalElapsed: time.Since(totalStart),
		PatternText:  opts.PatternText,
		PatternLen:   p.Len(),
		Canonical:    p.String(),
		Runs:         runs,
	}

	log.Debug().
		Str("task", task.Label()).
		Str("pattern", opts.PatternText).
		Int("matches", len(res.Addresses)).
		Bool("truncated", res.Truncated).
		Dur("match_elapsed", res.MatchElapsed).
		Dur("total_elapsed", res.TotalElapsed).
		Msg("scan completed")

	return res
}
