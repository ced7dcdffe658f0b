package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"storefront/internal/domain"
)

// Catalog is the part of the state manager the importer writes through.
type Catalog interface {
	Product(id string) (domain.Product, bool)
	AddProduct(ctx context.Context, p domain.Product) error
	UpdateProduct(ctx context.Context, p domain.Product) error
}

// listSep separates values inside the images, sizes and colors columns.
const listSep = ";"

// CSVImporter reads product CSV files and inserts or updates catalog entries.
//
// Expected columns: id,name,description,price,category,images,sizes,colors,stock,rating,featured.
// A row with a name starts a product; rows without a name only add images to the
// product above them.
type CSVImporter struct {
	reader  *csv.Reader
	catalog Catalog
	newID   func() string
}

func NewCSVImporter(r io.Reader, catalog Catalog) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:  csvr,
		catalog: catalog,
		newID:   uuid.NewString,
	}
}

// Result counts what a run changed.
type Result struct {
	Added   int
	Updated int
}

func (r Result) Total() int { return r.Added + r.Updated }

type csvRow struct {
	line    int
	product domain.Product
}

// Run parses every row and upserts the products in file order.
func (i *CSVImporter) Run(ctx context.Context) (Result, error) {
	var res Result
	headers, err := i.reader.Read()
	if err != nil {
		return res, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["name"]; !ok {
		return res, errors.New("missing name column")
	}

	var current *csvRow
	for line := 2; ; line++ {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("read row: %w", err)
		}

		if pick(record, index, "name") == "" {
			// Continuation rows (images) belong to the current product.
			if current != nil {
				current.product.Images = append(current.product.Images, splitList(pick(record, index, "images"))...)
			}
			continue
		}

		if current != nil {
			if err := i.save(ctx, current, &res); err != nil {
				return res, err
			}
		}
		row, err := parseRow(record, index)
		if err != nil {
			return res, fmt.Errorf("line %d: %w", line, err)
		}
		row.line = line
		current = row
	}

	if current != nil {
		if err := i.save(ctx, current, &res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow, res *Result) error {
	p := row.product
	if p.ID == "" {
		p.ID = i.newID()
	}
	if _, exists := i.catalog.Product(p.ID); exists {
		if err := i.catalog.UpdateProduct(ctx, p); err != nil {
			return fmt.Errorf("line %d: update product %q: %w", row.line, p.Name, err)
		}
		res.Updated++
		return nil
	}
	if err := i.catalog.AddProduct(ctx, p); err != nil {
		return fmt.Errorf("line %d: add product %q: %w", row.line, p.Name, err)
	}
	res.Added++
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (*csvRow, error) {
	p := domain.Product{
		ID:          pick(record, index, "id"),
		Name:        pick(record, index, "name"),
		Description: pick(record, index, "description"),
		Category:    domain.Category(pick(record, index, "category")),
		Images:      splitList(pick(record, index, "images")),
		Sizes:       splitList(pick(record, index, "sizes")),
		Colors:      splitList(pick(record, index, "colors")),
		Price:       decimal.Zero,
	}

	var err error
	if v := pick(record, index, "price"); v != "" {
		if p.Price, err = decimal.NewFromString(v); err != nil {
			return nil, fmt.Errorf("invalid price %q", v)
		}
	}
	if v := pick(record, index, "stock"); v != "" {
		if p.Stock, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("invalid stock %q", v)
		}
	}
	if v := pick(record, index, "rating"); v != "" {
		if p.Rating, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("invalid rating %q", v)
		}
	}
	if v := pick(record, index, "featured"); v != "" {
		if p.Featured, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("invalid featured flag %q", v)
		}
	}
	return &csvRow{product: p}, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, listSep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
