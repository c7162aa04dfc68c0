package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/odyssey-erp/odyssey-quotes/internal/sales/financials"
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/summary"
)

// ExitNegativeFinalTotal is returned when any computed document has a
// negative final total.
const ExitNegativeFinalTotal = 10

// ComputeOptions defines available flags for the compute command.
type ComputeOptions struct {
	// Files holds engine input documents. "-" reads stdin.
	Files       []string
	JSONOutput  bool
	Currency    string
	Locale      string
	Concurrency int
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
}

// ComputeResult is one entry of the JSON output.
type ComputeResult struct {
	File    string             `json:"file"`
	Outputs financials.Outputs `json:"outputs"`
	Summary summary.Summary    `json:"summary"`
}

// ComputeCommand runs the engine over each input file and prints the results
// in argument order.
func ComputeCommand(ctx context.Context, opts ComputeOptions) int {
	opts = withDefaults(opts)
	if len(opts.Files) == 0 {
		_, _ = fmt.Fprintln(opts.Stderr, "compute: at least one input file is required (use - for stdin)")
		return 1
	}
	formatter, err := summary.NewCurrencyFormatter(opts.Currency, opts.Locale)
	if err != nil {
		_, _ = fmt.Fprintf(opts.Stderr, "compute: %v\n", err)
		return 1
	}

	inputs, err := readInputs(ctx, opts)
	if err != nil {
		_, _ = fmt.Fprintf(opts.Stderr, "compute: %v\n", err)
		return 1
	}

	results := make([]ComputeResult, len(inputs))
	negative := false
	for i, in := range inputs {
		out := financials.Compute(in)
		results[i] = ComputeResult{File: opts.Files[i], Outputs: out, Summary: summary.Build(in, out, formatter)}
		if out.HasWarning(financials.WarningNegativeFinalTotal) {
			negative = true
		}
	}

	if opts.JSONOutput {
		enc := json.NewEncoder(opts.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			_, _ = fmt.Fprintf(opts.Stderr, "compute: encode json: %v\n", err)
			return 1
		}
	} else {
		renderComputeHuman(opts.Stdout, results)
	}
	if negative {
		return ExitNegativeFinalTotal
	}
	return 0
}

// readInputs decodes every file concurrently. Stdin is read at most once.
func readInputs(ctx context.Context, opts ComputeOptions) ([]financials.Inputs, error) {
	stdinUses := 0
	for _, f := range opts.Files {
		if f == "-" {
			stdinUses++
		}
	}
	if stdinUses > 1 {
		return nil, fmt.Errorf("stdin (-) can only be given once")
	}

	inputs := make([]financials.Inputs, len(opts.Files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, file := range opts.Files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			in, err := decodeInputs(file, opts.Stdin)
			if err != nil {
				return err
			}
			inputs[i] = in
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return inputs, nil
}

func decodeInputs(file string, stdin io.Reader) (financials.Inputs, error) {
	var r io.Reader = stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return financials.Inputs{}, err
		}
		defer f.Close()
		r = f
	}
	var in financials.Inputs
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return financials.Inputs{}, fmt.Errorf("decode %s: %w", file, err)
	}
	return in, nil
}

func renderComputeHuman(w io.Writer, results []ComputeResult) {
	for i, res := range results {
		if len(results) > 1 {
			if i > 0 {
				_, _ = fmt.Fprintln(w)
			}
			_, _ = fmt.Fprintf(w, "== %s ==\n", res.File)
		}
		_, _ = io.WriteString(w, res.Summary.Text())
	}
}

func withDefaults(opts ComputeOptions) ComputeOptions {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if strings.TrimSpace(opts.Currency) == "" {
		opts.Currency = "THB"
	}
	return opts
}
