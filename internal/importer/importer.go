package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"web-larek/internal/domain"
)

type ProductWriter interface {
	Save(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// requiredColumns must be present in the header row.
var requiredColumns = []string{"id", "title"}

// CSVImporter reads catalog CSV exports with the columns
// id,title,description,price,image,category and upserts products. A row with
// an empty id continues the previous product: its description becomes another
// paragraph.
type CSVImporter struct {
	reader *csv.Reader
	writer ProductWriter
	policy *bluemonday.Policy
	logger zerolog.Logger
}

func NewCSVImporter(r io.Reader, writer ProductWriter, logger *zerolog.Logger) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	return &CSVImporter{
		reader: csvr,
		writer: writer,
		policy: bluemonday.StrictPolicy(),
		logger: l,
	}
}

type csvRow struct {
	line        int
	ID          string
	Title       string
	Description []string
	Price       *int64
	Image       string
	Category    string
}

// Run parses CSV rows and upserts products in file order.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return 0, fmt.Errorf("missing column %q", col)
		}
	}

	var (
		current  *csvRow
		imported int
		line     = 1
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return imported, fmt.Errorf("read row %d: %w", line, err)
		}

		row, err := i.parseRow(record, index, line)
		if err != nil {
			return imported, err
		}
		if row == nil {
			continue
		}

		if row.ID != "" {
			if current != nil {
				if err := i.save(ctx, current, imported); err != nil {
					return imported, err
				}
				imported++
			}
			current = row
			continue
		}

		if current == nil {
			return imported, fmt.Errorf("row %d: continuation row before any product", line)
		}
		current.Description = append(current.Description, row.Description...)
	}

	if current != nil {
		if err := i.save(ctx, current, imported); err != nil {
			return imported, err
		}
		imported++
	}

	i.logger.Info().Int("imported", imported).Msg("catalog import finished")
	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow, position int) error {
	if row.Title == "" {
		return fmt.Errorf("row %d: product %q has no title", row.line, row.ID)
	}
	category := domain.Category(row.Category)
	if row.Category != "" && !category.Valid() {
		i.logger.Warn().Str("id", row.ID).Str("category", row.Category).Msg("unknown category, using other")
	}

	p := domain.Product{
		ID:          row.ID,
		Title:       row.Title,
		Description: domain.StringList(row.Description),
		Price:       row.Price,
		Image:       row.Image,
		Category:    domain.ParseCategory(row.Category),
		Position:    position,
	}
	if _, err := i.writer.Save(ctx, p); err != nil {
		return fmt.Errorf("upsert product %q: %w", row.ID, err)
	}
	return nil
}

// clean strips markup from a cell. The policy escapes what it keeps, so the
// result is unescaped back to plain text.
func (i *CSVImporter) clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(i.policy.Sanitize(s)))
}

func (i *CSVImporter) parseRow(record []string, index map[string]int, line int) (*csvRow, error) {
	id := pick(record, index, "id")
	desc := i.clean(pick(record, index, "description"))
	if id == "" && desc == "" {
		return nil, nil
	}

	row := &csvRow{
		line:     line,
		ID:       id,
		Title:    i.clean(pick(record, index, "title")),
		Image:    pick(record, index, "image"),
		Category: strings.ToLower(pick(record, index, "category")),
	}
	if desc != "" {
		row.Description = []string{desc}
	}
	if raw := pick(record, index, "price"); raw != "" && !strings.EqualFold(raw, "null") {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("row %d: invalid price %q", line, raw)
		}
		row.Price = &v
	}
	return row, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
