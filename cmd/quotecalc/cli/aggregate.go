package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/odyssey-erp/odyssey-quotes/internal/sales/lineitems"
	"github.com/odyssey-erp/odyssey-quotes/internal/sales/shared"
)

// AggregateOptions defines available flags for the aggregate command.
type AggregateOptions struct {
	// File holds {"items": [...], "referenced_source_ids": [...]}. "-" or
	// empty reads stdin.
	File   string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

type aggregateInput struct {
	Items               []lineitems.RawItem `json:"items"`
	ReferencedSourceIDs []string            `json:"referenced_source_ids"`
}

type aggregateOutput struct {
	Items    []lineitems.LineItem `json:"items"`
	Subtotal float64              `json:"subtotal"`
}

// AggregateCommand folds source rows into line items and prints them as JSON.
func AggregateCommand(opts AggregateOptions) int {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	var r io.Reader = opts.Stdin
	name := "stdin"
	if opts.File != "" && opts.File != "-" {
		f, err := os.Open(opts.File)
		if err != nil {
			_, _ = fmt.Fprintf(opts.Stderr, "aggregate: %v\n", err)
			return 1
		}
		defer f.Close()
		r, name = f, opts.File
	}

	var in aggregateInput
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		_, _ = fmt.Fprintf(opts.Stderr, "aggregate: decode %s: %v\n", name, err)
		return 1
	}

	items := lineitems.Aggregate(in.Items, in.ReferencedSourceIDs)
	enc := json.NewEncoder(opts.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(aggregateOutput{
		Items:    items,
		Subtotal: shared.Float(shared.Round2(lineitems.Subtotal(items))),
	}); err != nil {
		_, _ = fmt.Fprintf(opts.Stderr, "aggregate: encode json: %v\n", err)
		return 1
	}
	return 0
}
