package importer

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"Bearing/internal/calc/bearing"
	"Bearing/internal/calc/premium/batch"

	"github.com/xuri/excelize/v2"
)

const (
	importSheet = "Bearings"
	exportSheet = "Results"
)

// ImportHeader is the fixed column order of an import sheet.
var ImportHeader = []string{
	"Bearing ID", "Mode", "Type", "Shape",
	"a (mm)", "b (mm)", "D (mm)", "Side cover (mm)",
	"te (mm)", "Layers", "ts (mm)", "tp (mm)",
	"Holes", "Hole D (mm)", "Core D (mm)",
	"Shim steel", "Plate steel", "Elastomer", "gamma_m", "Load type",
	"Top contact", "Top surface", "Bottom contact", "Bottom surface",
	"Fz (kN)", "Fz,min (kN)", "Fx (kN)", "Fy (kN)",
	"vx (mm)", "vy (mm)", "alpha_a (mrad)", "alpha_b (mrad)", "d_d (mm)",
}

var ExportHeader = []string{
	"Bearing ID", "Mode", "Material", "Layers",
	"S", "sigma (MPa)", "eps_t,d", "eps limit", "ts,min (mm)",
	"Kv (kN/mm)", "Kh (kN/mm)", "Keff (kN/mm)", "xi (%)",
	"OK", "Advisories", "Failed checks", "Error",
}

// RowError reports a sheet row that could not be read into a request.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// Parsed holds the requests read from a workbook. Rows[i] is the 1-based
// sheet row of Inputs[i].
type Parsed struct {
	Inputs    []bearing.Input `json:"-"`
	Rows      []int           `json:"rows"`
	RowErrors []RowError      `json:"row_errors"`
}

// ParseWorkbook reads the first sheet: one header row, then one bearing per
// row in ImportHeader order. Blank rows are skipped.
func ParseWorkbook(r io.Reader) (Parsed, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Parsed{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return Parsed{}, fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) < 2 {
		return Parsed{}, fmt.Errorf("empty sheet")
	}

	var out Parsed
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		in, err := parseRow(rows[i])
		if err != nil {
			out.RowErrors = append(out.RowErrors, RowError{Row: i + 1, Error: err.Error()})
			continue
		}
		out.Inputs = append(out.Inputs, in)
		out.Rows = append(out.Rows, i+1)
	}
	return out, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

type rowReader struct {
	row []string
	err error
}

func (r *rowReader) str(col int) string {
	if col >= len(r.row) {
		return ""
	}
	return strings.TrimSpace(r.row[col])
}

func (r *rowReader) num(col int) float64 {
	s := strings.ReplaceAll(r.str(col), ",", ".")
	if s == "" || r.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		r.err = fmt.Errorf("column %q: %q is not a number", ImportHeader[col], r.str(col))
	}
	return v
}

func (r *rowReader) count(col int) int {
	v := r.num(col)
	if r.err == nil && v != math.Trunc(v) {
		r.err = fmt.Errorf("column %q: %q is not a whole number", ImportHeader[col], r.str(col))
	}
	return int(v)
}

func parseRow(row []string) (bearing.Input, error) {
	r := &rowReader{row: row}
	in := bearing.Input{
		BearingID:   r.str(0),
		Mode:        bearing.Mode(strings.ToLower(r.str(1))),
		BearingType: bearing.BearingType(strings.ToUpper(r.str(2))),
		Shape:       bearing.Shape(strings.ToLower(r.str(3))),

		AMM:            r.num(4),
		BMM:            r.num(5),
		DiameterMM:     r.num(6),
		SideCoverMM:    r.num(7),
		LayerMM:        r.num(8),
		Layers:         r.count(9),
		ShimMM:         r.num(10),
		PlateMM:        r.num(11),
		HoleCount:      r.count(12),
		HoleDiameterMM: r.num(13),
		CoreDiameterMM: r.num(14),

		ShimSteel:  r.str(15),
		PlateSteel: r.str(16),
		Elastomer:  r.str(17),
		GammaM:     r.num(18),
		LoadType:   bearing.LoadType(strings.ToLower(r.str(19))),
		Top: bearing.Contact{
			Kind:    bearing.ContactKind(strings.ToLower(r.str(20))),
			Surface: bearing.Surface(strings.ToLower(r.str(21))),
		},
		Bottom: bearing.Contact{
			Kind:    bearing.ContactKind(strings.ToLower(r.str(22))),
			Surface: bearing.Surface(strings.ToLower(r.str(23))),
		},

		FzKN:         r.num(24),
		FzMinKN:      r.num(25),
		FxKN:         r.num(26),
		FyKN:         r.num(27),
		VxMM:         r.num(28),
		VyMM:         r.num(29),
		AlphaAMrad:   r.num(30),
		AlphaBMrad:   r.num(31),
		DesignDispMM: r.num(32),
	}
	if in.BearingType == "ISOLATOR" {
		in.BearingType = bearing.TypeIsolator
	}
	if r.err != nil {
		return bearing.Input{}, r.err
	}
	return in, nil
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
}

// newSheet returns a workbook whose only sheet is name, with a styled header.
func newSheet(name string, header []string) (*excelize.File, *excelize.StreamWriter, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", name); err != nil {
		f.Close()
		return nil, nil, err
	}
	style, err := headerStyle(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("header style: %w", err)
	}
	sw, err := f.NewStreamWriter(name)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if err := sw.SetColWidth(1, len(header), 14); err != nil {
		f.Close()
		return nil, nil, err
	}
	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = excelize.Cell{StyleID: style, Value: h}
	}
	if err := sw.SetRow("A1", cells); err != nil {
		f.Close()
		return nil, nil, err
	}
	return f, sw, nil
}

func finish(f *excelize.File, sw *excelize.StreamWriter) ([]byte, error) {
	defer f.Close()
	if err := sw.Flush(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Template returns an empty import workbook.
func Template() ([]byte, error) {
	f, sw, err := newSheet(importSheet, ImportHeader)
	if err != nil {
		return nil, err
	}
	return finish(f, sw)
}

// WriteInputs writes requests in import layout, so a workbook produced here
// parses back to the same requests.
func WriteInputs(inputs []bearing.Input) ([]byte, error) {
	f, sw, err := newSheet(importSheet, ImportHeader)
	if err != nil {
		return nil, err
	}
	for i, in := range inputs {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			in.BearingID, string(in.Mode), string(in.BearingType), string(in.Shape),
			in.AMM, in.BMM, in.DiameterMM, in.SideCoverMM,
			in.LayerMM, in.Layers, in.ShimMM, in.PlateMM,
			in.HoleCount, in.HoleDiameterMM, in.CoreDiameterMM,
			in.ShimSteel, in.PlateSteel, in.Elastomer, in.GammaM, string(in.LoadType),
			string(in.Top.Kind), string(in.Top.Surface), string(in.Bottom.Kind), string(in.Bottom.Surface),
			in.FzKN, in.FzMinKN, in.FxKN, in.FyKN,
			in.VxMM, in.VyMM, in.AlphaAMrad, in.AlphaBMrad, in.DesignDispMM,
		}
		if err := sw.SetRow(cell, row); err != nil {
			f.Close()
			return nil, err
		}
	}
	return finish(f, sw)
}

// Export writes one result row per batch item.
func Export(res batch.Result) ([]byte, error) {
	f, sw, err := newSheet(exportSheet, ExportHeader)
	if err != nil {
		return nil, err
	}
	for i, it := range res.Items {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, exportRow(it)); err != nil {
			f.Close()
			return nil, err
		}
	}
	return finish(f, sw)
}

func exportRow(it batch.Item) []interface{} {
	if it.Result == nil {
		row := make([]interface{}, len(ExportHeader))
		row[0] = it.BearingID
		row[len(row)-1] = it.Error
		return row
	}
	r := it.Result
	var failed []string
	for _, v := range r.Verdicts {
		if !v.Pass {
			failed = append(failed, string(v.Check))
		}
	}
	return []interface{}{
		r.BearingID, string(r.Mode), r.Material, r.Layers,
		round(r.Demand.ShapeFactor, 3), round(r.Demand.StressMPa, 3),
		round(r.Demand.TotalStrain, 4), round(r.Limits.StrainLimit, 4), round(r.Limits.MinShimMM, 3),
		round(r.Stiffness.VerticalKNmm, 2), round(r.Stiffness.HorizontalKNmm, 4),
		round(r.Seismic.EffStiffnessKNmm, 4), round(r.Seismic.DampingPercent, 2),
		r.OK, r.Advisories, strings.Join(failed, ", "), "",
	}
}

func round(v float64, digits int) float64 {
	s := strconv.FormatFloat(v, 'f', digits, 64)
	out, _ := strconv.ParseFloat(s, 64)
	return out
}
