// Package export renders category product listings as spreadsheet downloads.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/rpattn/barmenu/internal/domain"
	"github.com/rpattn/barmenu/internal/filters"
)

// Format is a download format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ParseFormat accepts xlsx and csv, case-insensitively.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatXLSX, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("unsupported export format %q", raw)
}

// ContentType is the MIME type served for f.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Catalog is what the exporter reads from.
type Catalog interface {
	Category(ctx context.Context, id int64) (domain.Category, error)
	AllCategoryProducts(ctx context.Context, categoryID int64, raw filters.Raw) ([]domain.Product, error)
	IngredientsForProducts(ctx context.Context, productIDs []int64) (map[int64][]domain.ProductIngredient, error)
}

// File is a rendered export.
type File struct {
	Name        string
	ContentType string
	ModTime     time.Time
	Data        []byte
	Rows        int
}

// Service renders exports.
type Service struct {
	catalog Catalog
	logger  *zap.Logger
	now     func() time.Time
}

type Option func(*Service)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(catalog Catalog, opts ...Option) *Service {
	s := &Service{
		catalog: catalog,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Header of every product export, in column order.
var productColumns = []string{
	"id", "name", "slug", "description", "price_in_cents", "sort_order", "ingredients", "created_at", "updated_at",
}

// CategoryProducts exports every product of a category, sorted per raw.
// Page parameters in raw are ignored.
func (s *Service) CategoryProducts(ctx context.Context, categoryID int64, raw filters.Raw, format Format) (*File, error) {
	products, err := s.catalog.AllCategoryProducts(ctx, categoryID, raw)
	if err != nil {
		return nil, err
	}
	category, err := s.catalog.Category(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	ingredients, err := s.catalog.IngredientsForProducts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredients for export: %w", err)
	}

	rows := make([][]any, 0, len(products))
	for _, p := range products {
		rows = append(rows, productRow(p, ingredients[p.ID]))
	}

	var data []byte
	switch format {
	case FormatXLSX:
		data, err = writeWorkbook(sheetName(category.Name), rows)
	case FormatCSV:
		data, err = writeCSV(rows)
	default:
		err = fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return nil, err
	}

	file := &File{
		Name:        fmt.Sprintf("%s-products.%s", sanitizeFileComponent(category.Slug), format),
		ContentType: format.ContentType(),
		ModTime:     s.now().UTC(),
		Data:        data,
		Rows:        len(rows),
	}
	s.logger.Info("category products exported",
		zap.Int64("category_id", categoryID),
		zap.String("format", string(format)),
		zap.Int("rows", file.Rows),
		zap.Int("bytes", len(file.Data)),
	)
	return file, nil
}

func productRow(p domain.Product, ingredients []domain.ProductIngredient) []any {
	parts := make([]string, len(ingredients))
	for i, ing := range ingredients {
		parts[i] = fmt.Sprintf("%s (%s)", ing.Name, ing.Type)
	}
	return []any{
		p.ID,
		p.Name,
		p.Slug,
		p.Description,
		p.PriceInCents,
		p.SortOrder,
		strings.Join(parts, ", "),
		p.CreatedAt,
		p.UpdatedAt,
	}
}

func writeWorkbook(sheet string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(productColumns))
	for i, c := range productColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = cellValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeCSV(rows [][]any) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(productColumns); err != nil {
		return nil, err
	}
	record := make([]string, len(productColumns))
	for _, row := range rows {
		for i, v := range row {
			record[i] = formatValue(v)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}

// cellValue keeps numbers numeric in the workbook and renders the rest as text.
func cellValue(v any) any {
	switch v.(type) {
	case int, int64:
		return v
	}
	return formatValue(v)
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}

const maxSheetName = 31

func sheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	name = strings.Trim(name, "'")
	if name == "" {
		return "Products"
	}
	for utf8.RuneCountInString(name) > maxSheetName {
		_, size := utf8.DecodeLastRuneInString(name)
		name = name[:len(name)-size]
	}
	return name
}

func sanitizeFileComponent(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	builder := strings.Builder{}
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-' || r == '_':
			builder.WriteRune(r)
		default:
			builder.WriteRune('-')
		}
	}
	result := strings.Trim(builder.String(), "-")
	if result == "" {
		return "category"
	}
	return result
}
