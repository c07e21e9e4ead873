// Package report renders evaluations as PDF documents and bundles them for download.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/matiisnothere-15/septjunto/internal/estimation"
	"github.com/matiisnothere-15/septjunto/internal/models"
)

const (
	pageMargin = 10.0
	lineHeight = 5.0
	dateLayout = "02/01/2006"
)

var (
	brandColor  = [3]int{41, 65, 122}
	headerFill  = [3]int{225, 231, 243}
	tileFill    = [3]int{245, 247, 251}
	borderColor = [3]int{190, 198, 214}
)

type column struct {
	title string
	width float64
	align string
}

var taskColumns = []column{
	{"#", 8, "C"},
	{"Tarea", 62, "L"},
	{"Componente", 30, "L"},
	{"Complejidad", 24, "L"},
	{"Horas", 18, "R"},
	{"Días", 14, "C"},
	{"Día inicio-fin", 34, "C"},
}

// Render draws the evaluation report. The evaluation must have its project and its
// details with component and complexity loaded.
func Render(ev *models.Evaluation) ([]byte, error) {
	if ev.Project == nil {
		return nil, fmt.Errorf("evaluation %s has no project loaded", ev.ID)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle("Evaluación "+ev.Project.Name, true)
	pdf.SetCreationDate(ev.Date)
	pdf.AliasNbPages("")

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 5, tr("Documento generado automáticamente"), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("%d/{nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	drawHeader(pdf, tr, ev)
	drawInfo(pdf, tr, ev)
	drawTiles(pdf, tr, ev)
	drawTasks(pdf, tr, ev)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report for evaluation %s: %w", ev.ID, err)
	}
	return buf.Bytes(), nil
}

func drawHeader(pdf *fpdf.Fpdf, tr func(string) string, ev *models.Evaluation) {
	pageW, _ := pdf.GetPageSize()
	pdf.SetFillColor(brandColor[0], brandColor[1], brandColor[2])
	pdf.Rect(0, 0, pageW, 28, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(pageMargin, 8)
	pdf.CellFormat(0, 8, tr("EVALUACIÓN DE PROYECTO"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr(ev.Project.Name), "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(34)
}

func drawInfo(pdf *fpdf.Fpdf, tr func(string) string, ev *models.Evaluation) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, tr("Información general"), "", 1, "L", false, 0, "")

	rows := [][2]string{
		{"Proyecto", ev.Project.Name},
		{"Fecha", ev.Date.Format(dateLayout)},
		{"Tareas", fmt.Sprintf("%d", len(ev.Details))},
	}
	if ev.Name != "" {
		rows = append([][2]string{{"Evaluación", ev.Name}}, rows...)
	}
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(30, lineHeight+1, tr(row[0]+":"), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, lineHeight+1, tr(row[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func drawTiles(pdf *fpdf.Fpdf, tr func(string) string, ev *models.Evaluation) {
	risk := 0.0
	if ev.RiskPct != nil {
		risk = *ev.RiskPct
	}
	withRisk := "-"
	if ev.RiskAdjustedHours != nil {
		withRisk = fmt.Sprintf("%.2f h", *ev.RiskAdjustedHours)
	}

	tiles := [][2]string{
		{"Total horas", fmt.Sprintf("%.2f h", ev.TotalHours)},
		{fmt.Sprintf("Horas con riesgo (%.0f%%)", risk), withRisk},
		{"Días estimados", fmt.Sprintf("%d", ev.EstimatedDays)},
		{"Riesgo", fmt.Sprintf("%.2f%%", risk)},
	}

	const gap = 4.0
	pageW, _ := pdf.GetPageSize()
	width := (pageW - 2*pageMargin - gap*float64(len(tiles)-1)) / float64(len(tiles))
	height := 20.0
	y := pdf.GetY()

	pdf.SetDrawColor(borderColor[0], borderColor[1], borderColor[2])
	pdf.SetFillColor(tileFill[0], tileFill[1], tileFill[2])
	for i, tile := range tiles {
		x := pageMargin + float64(i)*(width+gap)
		pdf.Rect(x, y, width, height, "FD")

		pdf.SetXY(x, y+3)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(90, 90, 90)
		pdf.CellFormat(width, 4, tr(tile[0]), "", 0, "C", false, 0, "")

		pdf.SetXY(x, y+10)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.SetTextColor(brandColor[0], brandColor[1], brandColor[2])
		pdf.CellFormat(width, 6, tr(tile[1]), "", 0, "C", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(pageMargin, y+height+6)
}

func drawTasks(pdf *fpdf.Fpdf, tr func(string) string, ev *models.Evaluation) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, tr("Detalle de tareas"), "", 1, "L", false, 0, "")

	hours := make([]float64, len(ev.Details))
	for i, d := range ev.Details {
		hours[i] = d.BaseHours
	}
	schedule := estimation.Schedule(hours, ev.RiskPct)

	drawTableHeader(pdf, tr)
	_, pageH := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()

	pdf.SetFont("Helvetica", "", 9)
	var total float64
	for i, d := range ev.Details {
		entry := schedule[i]
		total += entry.RiskHours

		taskLines := wrapText(pdf, tr(d.TaskDescription), taskColumns[1].width-2)
		rowH := lineHeight*float64(len(taskLines)) + 2

		if pdf.GetY()+rowH > pageH-bottom-5 {
			pdf.AddPage()
			drawTableHeader(pdf, tr)
			pdf.SetFont("Helvetica", "", 9)
		}

		cells := []string{
			fmt.Sprintf("%d", entry.Index),
			"",
			tr(nameOf(d.Component)),
			tr(levelOf(d.Complexity)),
			fmt.Sprintf("%.2f", entry.RiskHours),
			fmt.Sprintf("%d", entry.Days),
			fmt.Sprintf("%d - %d", entry.StartDay, entry.EndDay),
		}
		drawRow(pdf, cells, taskLines, rowH)
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
	labelW := taskColumns[0].width + taskColumns[1].width + taskColumns[2].width + taskColumns[3].width
	pdf.CellFormat(labelW, lineHeight+2, "Total", "1", 0, "R", true, 0, "")
	pdf.CellFormat(taskColumns[4].width, lineHeight+2, fmt.Sprintf("%.2f", estimation.Round2(total)), "1", 0, "R", true, 0, "")
	pdf.CellFormat(taskColumns[5].width+taskColumns[6].width, lineHeight+2, tr(fmt.Sprintf("%d días", ev.EstimatedDays)), "1", 1, "C", true, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.MultiCell(0, 4, tr(fmt.Sprintf(
		"Jornada de %d horas. Las horas por tarea incluyen el riesgo aplicado. Generado el %s.",
		estimation.HoursPerDay, time.Now().Format(dateLayout),
	)), "", "L", false)
}

func drawTableHeader(pdf *fpdf.Fpdf, tr func(string) string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
	pdf.SetDrawColor(borderColor[0], borderColor[1], borderColor[2])
	for i, col := range taskColumns {
		ln := 0
		if i == len(taskColumns)-1 {
			ln = 1
		}
		pdf.CellFormat(col.width, lineHeight+2, tr(col.title), "1", ln, "C", true, 0, "")
	}
}

// drawRow draws one table row; the task column holds the wrapped description.
func drawRow(pdf *fpdf.Fpdf, cells []string, taskLines []string, rowH float64) {
	x, y := pdf.GetX(), pdf.GetY()
	for i, col := range taskColumns {
		pdf.Rect(x, y, col.width, rowH, "D")
		if i == 1 {
			for j, line := range taskLines {
				pdf.SetXY(x+1, y+1+float64(j)*lineHeight)
				pdf.CellFormat(col.width-2, lineHeight, line, "", 0, "L", false, 0, "")
			}
		} else {
			pdf.SetXY(x, y+1)
			pdf.CellFormat(col.width, lineHeight, cells[i], "", 0, col.align, false, 0, "")
		}
		x += col.width
	}
	pdf.SetXY(pageMargin, y+rowH)
}

// wrapText splits translated single-byte text into lines that fit width.
func wrapText(pdf *fpdf.Fpdf, text string, width float64) []string {
	var lines []string
	for _, line := range pdf.SplitLines([]byte(text), width) {
		lines = append(lines, string(line))
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

func nameOf(c *models.Component) string {
	if c == nil {
		return ""
	}
	return c.Name
}

func levelOf(c *models.ComplexityLevel) string {
	if c == nil {
		return ""
	}
	return c.Name
}
