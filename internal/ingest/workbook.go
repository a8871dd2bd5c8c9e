// Package ingest extracts typed cost and hours rows from uploaded
// spreadsheet workbooks. Header matching is deliberately tolerant: the
// source files come from several hands and name their columns
// inconsistently.
package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// WorkbookContentType is the MIME type workbook uploads are stored under.
const WorkbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ErrEmptyWorkbook is returned when the workbook has no sheets.
var ErrEmptyWorkbook = errors.New("workbook has no sheets")

// ErrUnreadableWorkbook is returned when the file is not a valid xlsx
// workbook.
var ErrUnreadableWorkbook = errors.New("unreadable workbook")

// CostRow is one extracted cost line. Amount is in minor currency units.
type CostRow struct {
	Category    string
	Amount      int64
	IsPaid      bool
	PaymentDate *time.Time
	Notes       *string
}

// HoursRow is one extracted month of hours, stored as hundredths.
type HoursRow struct {
	Month      string
	Hours      int64
	IsForecast bool
}

// WorkbookData is the typed result of parsing one workbook.
type WorkbookData struct {
	Costs []CostRow
	Hours []HoursRow
}

// ParseWorkbook reads an xlsx workbook and extracts cost rows and hours
// rows. Rows without a category/month or with a non-positive amount are
// skipped rather than failing the import.
func ParseWorkbook(data []byte) (*WorkbookData, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableWorkbook, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}

	out := &WorkbookData{Costs: []CostRow{}, Hours: []HoursRow{}}

	costsSheet := pickSheet(sheets, []string{"Costs", "Cost Breakdown"}, sheets[0])
	costRows, err := f.GetRows(costsSheet)
	if err != nil {
		return nil, err
	}
	out.Costs = parseCostRows(costRows)

	hoursFallback := ""
	if len(sheets) > 1 {
		hoursFallback = sheets[1]
	}
	hoursSheet := pickSheet(sheets, []string{"Hours", "Time"}, hoursFallback)
	if hoursSheet != "" && hoursSheet != costsSheet {
		hourRows, err := f.GetRows(hoursSheet)
		if err != nil {
			return nil, err
		}
		out.Hours = parseHourRows(hourRows)
	}

	return out, nil
}

func pickSheet(sheets []string, preferred []string, fallback string) string {
	for _, want := range preferred {
		for _, name := range sheets {
			if strings.EqualFold(name, want) {
				return name
			}
		}
	}
	return fallback
}

// header maps lowercased column names to indexes for one sheet.
type header map[string]int

func makeHeader(row []string) header {
	h := make(header, len(row))
	for i, cell := range row {
		h[strings.ToLower(strings.TrimSpace(cell))] = i
	}
	return h
}

// get returns the cell for the first matching column name.
func (h header) get(row []string, names ...string) string {
	for _, name := range names {
		if i, ok := h[name]; ok && i < len(row) {
			return strings.TrimSpace(row[i])
		}
	}
	return ""
}

func parseCostRows(rows [][]string) []CostRow {
	out := []CostRow{}
	if len(rows) < 2 {
		return out
	}
	h := makeHeader(rows[0])
	for _, row := range rows[1:] {
		category := h.get(row, "category", "cost type")
		amount := parseAmount(h.get(row, "amount", "cost"))
		if category == "" || amount <= 0 {
			continue
		}
		status := strings.ToLower(h.get(row, "status"))
		item := CostRow{
			Category: category,
			Amount:   amount,
			IsPaid:   strings.Contains(status, "paid") && !strings.Contains(status, "unpaid"),
		}
		if d := parseDate(h.get(row, "payment date", "payment_date", "date")); d != nil {
			item.PaymentDate = d
		}
		if notes := h.get(row, "notes"); notes != "" {
			item.Notes = &notes
		}
		out = append(out, item)
	}
	return out
}

func parseHourRows(rows [][]string) []HoursRow {
	out := []HoursRow{}
	if len(rows) < 2 {
		return out
	}
	h := makeHeader(rows[0])
	for _, row := range rows[1:] {
		month := h.get(row, "month", "period")
		hoursStr := h.get(row, "hours", "time")
		hoursValue, err := strconv.ParseFloat(hoursStr, 64)
		if err != nil || month == "" || hoursValue <= 0 {
			continue
		}
		out = append(out, HoursRow{
			Month:      normalizeMonth(month),
			Hours:      int64(math.Round(hoursValue * 100)),
			IsForecast: strings.Contains(strings.ToLower(h.get(row, "type")), "forecast"),
		})
	}
	return out
}

func parseAmount(s string) int64 {
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int64(math.Round(v))
}

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"2/1/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"2006-01-02 15:04:05",
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

var monthLayouts = []string{
	"2006-01",
	"2006-01-02",
	"Jan 2006",
	"Jan-06",
	"January 2006",
	"01/2006",
}

// normalizeMonth reduces the many month spellings seen in source files
// to YYYY-MM. Unparseable values pass through untouched.
func normalizeMonth(s string) string {
	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01")
		}
	}
	return s
}
