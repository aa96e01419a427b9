package workbook

import (
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/Tiliavir/clockrep/internal/model"
	"github.com/Tiliavir/clockrep/internal/timecalc"
)

const (
	colorDark   = "404040"
	colorYellow = "FFFF00"
	colorWhite  = "FFFFFF"

	// numFmtAmount is the built-in "#,##0.00" format.
	numFmtAmount = 4

	detailedTableName = "DetailedEntries"
)

type styles struct {
	dark, title, header        int
	highlight, highlightNumber int
	data, dataNumber, label    int
}

func newStyles(f *excelize.File) (styles, error) {
	darkFill := excelize.Fill{Type: "pattern", Color: []string{colorDark}, Pattern: 1}
	yellowBold := &excelize.Font{Bold: true, Color: colorYellow, Size: 10}

	var s styles
	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&s.dark, &excelize.Style{Fill: darkFill}},
		{&s.title, &excelize.Style{
			Fill:      darkFill,
			Font:      &excelize.Font{Color: colorWhite, Size: 22},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		}},
		{&s.header, &excelize.Style{Fill: darkFill, Font: yellowBold}},
		{&s.highlight, &excelize.Style{Fill: darkFill, Font: yellowBold}},
		{&s.highlightNumber, &excelize.Style{Fill: darkFill, Font: yellowBold, NumFmt: numFmtAmount}},
		{&s.data, &excelize.Style{Font: &excelize.Font{Size: 10}}},
		{&s.dataNumber, &excelize.Style{Font: &excelize.Font{Size: 10}, NumFmt: numFmtAmount}},
		{&s.label, &excelize.Style{Fill: darkFill, Font: &excelize.Font{Bold: true, Color: colorYellow}}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return styles{}, err
		}
		*d.dst = id
	}
	return s, nil
}

// sheetWriter keeps the first excelize error so rendering code can stay linear.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func cell(col string, row int) string {
	return col + strconv.Itoa(row)
}

func (w *sheetWriter) str(col string, row int, v string) {
	if w.err == nil {
		w.err = w.f.SetCellStr(w.sheet, cell(col, row), v)
	}
}

func (w *sheetWriter) num(col string, row int, v float64) {
	if w.err == nil {
		w.err = w.f.SetCellFloat(w.sheet, cell(col, row), v, -1, 64)
	}
}

func (w *sheetWriter) style(from, to string, row, id int) {
	if w.err == nil {
		w.err = w.f.SetCellStyle(w.sheet, cell(from, row), cell(to, row), id)
	}
}

func (w *sheetWriter) merge(from, to string, row int) {
	if w.err == nil {
		w.err = w.f.MergeCell(w.sheet, cell(from, row), cell(to, row))
	}
}

func (w *sheetWriter) widths(cols []string, widths []float64) {
	for i, c := range cols {
		if w.err == nil {
			w.err = w.f.SetColWidth(w.sheet, c, c, widths[i])
		}
	}
}

func (w *sheetWriter) height(row int, h float64) {
	if w.err == nil {
		w.err = w.f.SetRowHeight(w.sheet, row, h)
	}
}

func (w *sheetWriter) headers(row int, names []string) {
	for i, name := range names {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil && w.err == nil {
			w.err = err
		}
		w.str(col, row, name)
	}
}

// Render builds the report workbook: a "Summary Report" sheet with project
// and description totals and a "Detailed Report" sheet with one row per entry.
func Render(rep model.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		_ = f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(DetailedSheet); err != nil {
		_ = f.Close()
		return nil, err
	}
	f.SetActiveSheet(0)

	st, err := newStyles(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := renderSummary(f, st, rep); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := renderDetailed(f, st, rep); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

func currency(rep model.Report) string {
	if rep.Currency == "" {
		return "BRL"
	}
	return rep.Currency
}

func renderSummary(f *excelize.File, st styles, rep model.Report) error {
	w := &sheetWriter{f: f, sheet: SummarySheet}
	w.widths([]string{"A", "B", "C", "D", "E"}, []float64{39.14, 87.14, 16.29, 19, 21.86})

	w.style("A", "E", 1, st.dark)
	w.merge("A", "D", 1)
	w.str("A", 1, SummarySheet)
	w.style("A", "A", 1, st.title)
	w.height(1, 30)

	w.style("A", "E", 2, st.dark)
	w.headers(3, SummaryHeaders(currency(rep)))
	w.style("A", "E", 3, st.header)
	w.style("A", "E", 4, st.dark)

	row := 5
	for _, p := range rep.Projects {
		w.str("A", row, p.Label())
		w.str("C", row, timecalc.FormatDuration(p.DurationSeconds))
		w.num("D", row, timecalc.Hours(p.DurationSeconds))
		w.num("E", row, p.Amount)
		w.style("A", "C", row, st.highlight)
		w.style("D", "E", row, st.highlightNumber)
		row++

		for _, d := range p.Descriptions {
			w.str("B", row, d.Description)
			w.str("C", row, timecalc.FormatDuration(d.DurationSeconds))
			w.num("D", row, timecalc.Hours(d.DurationSeconds))
			w.num("E", row, d.Amount)
			w.style("A", "C", row, st.data)
			w.style("D", "E", row, st.dataNumber)
			row++
		}
	}

	label := "Total"
	if !rep.Period.IsZero() {
		label = "Total (" + rep.Period.Label() + ")"
	}
	w.str("A", row, label)
	w.str("C", row, timecalc.FormatDuration(rep.TotalSeconds))
	w.num("D", row, timecalc.Hours(rep.TotalSeconds))
	w.num("E", row, rep.TotalAmount)
	w.style("A", "C", row, st.highlight)
	w.style("D", "E", row, st.highlightNumber)
	return w.err
}

func renderDetailed(f *excelize.File, st styles, rep model.Report) error {
	w := &sheetWriter{f: f, sheet: DetailedSheet}
	w.widths(
		[]string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K"},
		[]float64{17.29, 20.29, 87.14, 18.86, 11.29, 20, 20, 13.14, 12.43, 14, 17},
	)

	w.style("A", "K", 1, st.dark)
	w.merge("C", "G", 1)
	w.str("C", 1, DetailedSheet)
	w.style("C", "C", 1, st.title)
	w.str("J", 1, "Total Amount:")
	w.style("J", "J", 1, st.label)
	w.num("K", 1, rep.TotalAmount)
	w.style("K", "K", 1, st.highlightNumber)
	w.height(1, 30)

	w.style("A", "K", 2, st.dark)
	w.headers(3, DetailedHeaders)
	w.style("A", "K", 3, st.header)

	row := 4
	for _, e := range rep.Entries {
		w.str("A", row, e.Project)
		w.str("B", row, e.Client)
		w.str("C", row, e.Description)
		w.str("D", row, e.User)
		w.str("E", row, e.FirstTag())
		w.str("F", row, e.Start)
		w.str("G", row, e.End)
		w.str("H", row, timecalc.FormatDuration(e.DurationSeconds))
		w.num("I", row, e.Hours())
		w.num("J", row, e.Rate)
		w.num("K", row, e.Amount())
		w.style("A", "H", row, st.data)
		w.style("I", "K", row, st.dataNumber)
		row++
	}
	if w.err != nil {
		return w.err
	}

	if len(rep.Entries) > 0 {
		stripes := true
		if err := f.AddTable(DetailedSheet, &excelize.Table{
			Range:          "A3:" + cell("K", row-1),
			Name:           detailedTableName,
			StyleName:      "TableStyleMedium15",
			ShowRowStripes: &stripes,
		}); err != nil {
			return err
		}
	}

	w.style("A", "K", row, st.dark)
	w.str("A", row, "Total")
	w.str("H", row, timecalc.FormatDuration(rep.TotalSeconds))
	w.num("I", row, timecalc.Hours(rep.TotalSeconds))
	w.num("K", row, rep.TotalAmount)
	w.style("A", "H", row, st.highlight)
	w.style("I", "K", row, st.highlightNumber)
	return w.err
}
