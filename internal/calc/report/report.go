package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
	"time"

	"Bearing/internal/calc/bearing"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"
)

// Meta is the title block of a report.
type Meta struct {
	Title  string
	Author string
	Number string
	Date   time.Time
}

// NewMeta fills the defaults and draws a fresh report number.
func NewMeta(title, author string, now time.Time) Meta {
	if title == "" {
		title = "Bearing Verification Report"
	}
	return Meta{
		Title:  title,
		Author: author,
		Number: Number(now),
		Date:   now,
	}
}

// Number returns "BR-<yyyymmdd>-<8 hex>".
func Number(now time.Time) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("BR-%s-%s", now.Format("20060102"), strings.ToUpper(id[:8]))
}

type row struct {
	label string
	value string
}

// keyResults lists the quantities shown in both report formats.
func keyResults(r bearing.Result) []row {
	g, d := r.Geometry, r.Demand
	rows := []row{
		{"Bearing type", string(r.BearingType)},
		{"Shape", string(r.Shape)},
		{"Layers", fmt.Sprintf("%d", r.Layers)},
		{"Net area A_r", fmt.Sprintf("%.0f mm2", g.NetAreaMM2)},
		{"Shape factor S", fmt.Sprintf("%.2f", d.ShapeFactor)},
		{"Total elastomer T_e", fmt.Sprintf("%.1f mm", d.TotalElastomerMM)},
		{"Sigma_m", fmt.Sprintf("%.2f MPa", d.StressMPa)},
		{"Shear strain", fmt.Sprintf("%.3f", d.ShearStrain)},
	}
	switch r.Mode {
	case bearing.ModeSeismic:
		h := r.Seismic
		rows = append(rows,
			row{"Design displacement d_d", fmt.Sprintf("%.1f mm", h.DesignDispMM)},
			row{"Q_d", fmt.Sprintf("%.1f kN", h.CharStrengthKN)},
			row{"K_eff", fmt.Sprintf("%.3f kN/mm", h.EffStiffnessKNmm)},
			row{"Xi_eff", fmt.Sprintf("%.1f %%", h.DampingPercent)},
		)
	default:
		rows = append(rows,
			row{"eps_t,d", fmt.Sprintf("%.3f (limit %.3f)", d.TotalStrain, r.Limits.StrainLimit)},
			row{"t_s,min", fmt.Sprintf("%.2f mm", r.Limits.MinShimMM)},
			row{"K_v", fmt.Sprintf("%.1f kN/mm (%s area)", r.Stiffness.VerticalKNmm, r.Stiffness.AreaBasis)},
			row{"K_h", fmt.Sprintf("%.3f kN/mm", r.Stiffness.HorizontalKNmm)},
		)
	}
	return rows
}

func formatLimit(v float64) string {
	if math.IsInf(v, 1) {
		return "unbounded"
	}
	return fmt.Sprintf("%.3f", v)
}

func verdictLabel(v bearing.Verdict) string {
	switch {
	case v.Pass:
		return "PASS"
	case v.Severity == bearing.SeverityAdvisory:
		return "ADVISORY"
	default:
		return "FAIL"
	}
}

func overall(r bearing.Result) string {
	if !r.OK {
		return "NOT COMPLIANT"
	}
	if r.Advisories > 0 {
		return fmt.Sprintf("COMPLIANT with %d advisory note(s)", r.Advisories)
	}
	return "COMPLIANT"
}

// WriteText writes the plain-text report.
func WriteText(w io.Writer, m Meta, r bearing.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\n", strings.ToUpper(m.Title))
	fmt.Fprintf(tw, "Report no.\t%s\n", m.Number)
	fmt.Fprintf(tw, "Date\t%s\n", m.Date.Format("2006-01-02"))
	if m.Author != "" {
		fmt.Fprintf(tw, "Author\t%s\n", m.Author)
	}
	fmt.Fprintf(tw, "Project\t%s\n", r.Project)
	fmt.Fprintf(tw, "Bearing\t%s\n", r.BearingID)
	fmt.Fprintf(tw, "Mode\t%s\n", r.Mode)
	fmt.Fprintf(tw, "Material\t%s\n", r.Material)
	fmt.Fprintf(tw, "gamma_m\t%.2f\n\n", r.GammaM)

	for _, kr := range keyResults(r) {
		fmt.Fprintf(tw, "%s\t%s\n", kr.label, kr.value)
	}

	fmt.Fprintf(tw, "\nCHECK\tDEMAND\tCAPACITY\tUNIT\tRATIO\tRESULT\n")
	for _, v := range r.Verdicts {
		fmt.Fprintf(tw, "%s\t%.3f\t%s\t%s\t%s\t%s\n",
			v.Check, v.Demand, formatLimit(v.Capacity), v.Unit, formatLimit(v.Ratio), verdictLabel(v))
	}
	fmt.Fprintf(tw, "\nOverall\t%s\n", overall(r))
	if r.Notes != "" {
		fmt.Fprintf(tw, "Notes\t%s\n", r.Notes)
	}
	return tw.Flush()
}

// WritePDF writes the A4 report.
func WritePDF(w io.Writer, m Meta, r bearing.Result) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(m.Title, false)
	pdf.SetAuthor(m.Author, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, m.Title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []string{
		"Report no.: " + m.Number,
		"Project: " + r.Project,
		"Bearing: " + r.BearingID,
		"Author: " + m.Author,
		"Date: " + m.Date.Format("2006-01-02"),
		fmt.Sprintf("Mode: %s   Material: %s   gamma_m = %.2f", r.Mode, r.Material, r.GammaM),
	} {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Key results")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for _, kr := range keyResults(r) {
		pdf.CellFormat(70, 6, kr.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(80, 6, kr.value, "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Verification")
	pdf.Ln(8)
	widths := []float64{55, 28, 28, 15, 22, 25}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 243, 255)
	for i, h := range []string{"Check", "Demand", "Capacity", "Unit", "Ratio", "Result"} {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	for _, v := range r.Verdicts {
		cells := []string{
			string(v.Check),
			fmt.Sprintf("%.3f", v.Demand),
			formatLimit(v.Capacity),
			v.Unit,
			formatLimit(v.Ratio),
			verdictLabel(v),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, "Overall: "+overall(r))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, r.Notes, "", "L", false)

	return pdf.Output(w)
}
