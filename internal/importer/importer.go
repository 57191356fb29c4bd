// Package importer loads products in bulk from an xlsx sheet with the
// columns Name | Description | Price | Stock | Category. Categories are
// created on the fly; per-row failures are reported, not fatal.
package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"catalog-backend/internal/catalog"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type RowResult struct {
	Row     int    `json:"row"`
	Name    string `json:"name"`
	Status  string `json:"status"` // created | skipped
	Message string `json:"message,omitempty"`
}

type Summary struct {
	Created           int         `json:"created"`
	Skipped           int         `json:"skipped"`
	CategoriesCreated int         `json:"categories_created"`
	Rows              []RowResult `json:"rows"`
}

type Importer struct {
	store *catalog.Store
}

func New(store *catalog.Store) *Importer {
	return &Importer{store: store}
}

func (imp *Importer) ImportXLSX(r io.Reader) (*Summary, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, errors.New("spreadsheet has no data rows")
	}

	summary := &Summary{Rows: []RowResult{}}
	// Row 1 is the header.
	for i, row := range rows[1:] {
		rowNum := i + 2
		result := imp.importRow(row, rowNum, summary)
		summary.Rows = append(summary.Rows, result)
		if result.Status == "created" {
			summary.Created++
		} else {
			summary.Skipped++
		}
	}
	return summary, nil
}

func (imp *Importer) importRow(row []string, rowNum int, summary *Summary) RowResult {
	name := cell(row, 0)
	if name == "" {
		return RowResult{Row: rowNum, Status: "skipped", Message: "name is empty"}
	}
	res := RowResult{Row: rowNum, Name: name}

	price, err := decimal.NewFromString(cell(row, 2))
	if err != nil || price.IsNegative() || price.Exponent() < -2 {
		res.Status = "skipped"
		res.Message = "invalid price"
		return res
	}

	stock := 0
	if v := cell(row, 3); v != "" {
		stock, err = strconv.Atoi(v)
		if err != nil || stock < 0 {
			res.Status = "skipped"
			res.Message = "invalid stock"
			return res
		}
	}

	categoryID, err := imp.resolveCategory(cell(row, 4), summary)
	if err != nil {
		res.Status = "skipped"
		res.Message = err.Error()
		return res
	}

	_, err = imp.store.CreateProduct(name, cell(row, 1), price, stock, categoryID)
	switch {
	case errors.Is(err, catalog.ErrDuplicateName):
		res.Status = "skipped"
		res.Message = "product already exists"
	case err != nil:
		res.Status = "skipped"
		res.Message = "could not create product"
	default:
		res.Status = "created"
	}
	return res
}

// resolveCategory maps a category name to an id, creating the category
// when it does not exist yet. An empty name means the default category.
func (imp *Importer) resolveCategory(name string, summary *Summary) (uint, error) {
	if name == "" {
		return imp.store.DefaultCategoryID(), nil
	}
	if len(name) > 50 {
		return 0, errors.New("category name too long")
	}

	cat, err := imp.store.GetCategoryByName(name)
	if err == nil {
		return cat.ID, nil
	}
	if !errors.Is(err, catalog.ErrNotFound) {
		return 0, errors.New("category lookup failed")
	}

	created, err := imp.store.CreateCategory(name, "Imported category")
	if err != nil {
		return 0, errors.New("could not create category")
	}
	summary.CategoriesCreated++
	return created.ID, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
