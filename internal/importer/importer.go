package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront/internal/domain"
)

type ProductWriter interface {
	UpsertBySerial(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter bulk-loads catalog products from a CSV export. Rows are
// keyed by serial code, so re-running an import refreshes existing
// products instead of duplicating them.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

// Run parses CSV rows and upserts products, returning the imported count.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		p, err := parseRow(record, index)
		if err != nil {
			return imported, err
		}
		if p == nil {
			continue
		}
		if _, err := i.productRepo.UpsertBySerial(ctx, *p); err != nil {
			return imported, fmt.Errorf("upsert product %s: %w", p.SerialCode, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func parseRow(record []string, index map[string]int) (*domain.Product, error) {
	get := func(key string) string {
		i, ok := index[key]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	serial := get("serial_code")
	name := get("name")
	if serial == "" && name == "" {
		return nil, nil // blank row
	}
	if serial == "" || name == "" {
		return nil, fmt.Errorf("invalid product row: serial_code and name are required (serial=%q name=%q)", serial, name)
	}

	cents, err := strconv.ParseInt(get("price_cents"), 10, 64)
	if err != nil || cents < 0 {
		return nil, fmt.Errorf("invalid price for %s: %q", serial, get("price_cents"))
	}

	stock := 0
	if raw := get("stock"); raw != "" {
		stock, err = strconv.Atoi(raw)
		if err != nil || stock < 0 {
			return nil, fmt.Errorf("invalid stock for %s: %q", serial, raw)
		}
	}

	return &domain.Product{
		Name:        name,
		Description: get("description"),
		PriceCents:  cents,
		Category:    get("category"),
		SerialCode:  serial,
		Stock:       stock,
		ImageURL:    get("image_url"),
	}, nil
}
