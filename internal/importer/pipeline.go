package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ParseError reports a structural CSV failure in one of the input files.
// Any ParseError is fatal to the whole import; no partial results are
// returned alongside it.
type ParseError struct {
	Kind Kind
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("importer: parse %s file: %v", e.Kind, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Result holds the validated record collections produced by one import run.
type Result struct {
	Materials    []Material
	Products     []Product
	SupplyOrders []SupplyOrder
}

// Total returns the number of accepted records across all three kinds.
func (r Result) Total() int {
	return len(r.Materials) + len(r.Products) + len(r.SupplyOrders)
}

// Summary renders a human-readable status line for the run. An all-empty
// result is a warning condition, not an error.
func (r Result) Summary() string {
	if r.Total() == 0 {
		return "no data imported"
	}
	return fmt.Sprintf("imported %d materials, %d products, %d supply orders",
		len(r.Materials), len(r.Products), len(r.SupplyOrders))
}

// ImportAll parses the three CSV inputs concurrently, maps each row through
// the field mapper for its kind, and keeps only rows whose identity field is
// populated. The three imports have no data dependency on one another; they
// are joined with an all-must-succeed policy, so a parse failure in any file
// fails the whole call and nothing is returned.
func ImportAll(ctx context.Context, materials, products, supplyOrders io.Reader) (Result, error) {
	var result Result

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		rows, err := readRows(ctx, materials)
		if err != nil {
			return &ParseError{Kind: KindMaterial, Err: err}
		}
		result.Materials = collectMaterials(rows)
		return nil
	})

	group.Go(func() error {
		rows, err := readRows(ctx, products)
		if err != nil {
			return &ParseError{Kind: KindProduct, Err: err}
		}
		result.Products = collectProducts(rows)
		return nil
	})

	group.Go(func() error {
		rows, err := readRows(ctx, supplyOrders)
		if err != nil {
			return &ParseError{Kind: KindSupplyOrder, Err: err}
		}
		result.SupplyOrders = collectSupplyOrders(rows)
		return nil
	})

	if err := group.Wait(); err != nil {
		return Result{}, err
	}

	return result, nil
}

func collectMaterials(rows []map[string]string) []Material {
	accepted := make([]Material, 0, len(rows))
	for _, row := range rows {
		candidate := MapMaterial(row)
		if candidate.Name == "" {
			continue
		}
		accepted = append(accepted, candidate)
	}
	return accepted
}

func collectProducts(rows []map[string]string) []Product {
	accepted := make([]Product, 0, len(rows))
	for _, row := range rows {
		candidate := MapProduct(row)
		if candidate.Name == "" {
			continue
		}
		accepted = append(accepted, candidate)
	}
	return accepted
}

func collectSupplyOrders(rows []map[string]string) []SupplyOrder {
	accepted := make([]SupplyOrder, 0, len(rows))
	for _, row := range rows {
		candidate := MapSupplyOrder(row)
		if candidate.MaterialRef == "" {
			continue
		}
		accepted = append(accepted, candidate)
	}
	return accepted
}

// readRows parses a headed CSV stream into one string map per data row.
// Blank rows are discarded. Rows shorter than the header keep only the
// columns they have; extra unrecognized columns are carried through and
// ignored by the mapper.
func readRows(ctx context.Context, r io.Reader) ([]map[string]string, error) {
	if r == nil {
		return nil, fmt.Errorf("no input provided")
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row := make(map[string]string, len(header))
		empty := true
		for idx, key := range header {
			if idx >= len(record) {
				continue
			}
			value := strings.TrimSpace(record[idx])
			if value != "" {
				empty = false
			}
			row[key] = value
		}
		if empty {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}
