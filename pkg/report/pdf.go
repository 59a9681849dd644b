package report

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Brand colors used throughout the report.
const (
	colorPrimary   = "2A77D4"
	colorSecondary = "111827"
	colorSuccess   = "10B981"
	colorWarning   = "F59E0B"
	colorDanger    = "EF4444"
)

// Generator renders scored reviews into a PDF report with a sentiment
// distribution chart, recommendations and sample reviews.
type Generator struct{}

// NewGenerator creates a report generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes a PDF report for the given reviews to outputPath. An
// empty review set produces a minimal placeholder report rather than an
// error; rendering faults degrade to the same placeholder so a report file
// always exists for a completed upload.
func (g *Generator) Generate(companyName string, reviews []ScoredReview, outputPath string) error {
	if len(reviews) == 0 {
		return g.writeFallback(companyName, outputPath)
	}

	if err := g.writeReport(companyName, reviews, outputPath); err != nil {
		// Degrade to the placeholder, mirroring the no-data path.
		if fallbackErr := g.writeFallback(companyName, outputPath); fallbackErr != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
	}
	return nil
}

// writeReport renders the full report.
func (g *Generator) writeReport(companyName string, reviews []ScoredReview, outputPath string) error {
	summary := Summarize(reviews)

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Title block.
	setTextHex(pdf, colorPrimary)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 14, "NeilanX", "", 1, "C", false, 0, "")
	setTextHex(pdf, colorSecondary)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("AI-driven Recensionsanalys"), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	// Company info.
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr(fmt.Sprintf(
		"Företag: %s\nRapportdatum: %s\nAntal analyserade recensioner: %d",
		companyName, time.Now().Format("2006-01-02"), summary.TotalReviews)), "", "L", false)
	pdf.Ln(6)

	g.writeSummaryTable(pdf, tr, summary)
	g.writeSentimentChart(pdf, summary)
	g.writeRecommendations(pdf, tr, summary)
	g.writeSampleReviews(pdf, tr, reviews)

	// Footer.
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(107, 114, 128)
	pdf.MultiCell(0, 5, tr("Denna rapport genererades av NeilanX - AI-driven recensionsanalys för svenska e-handlare."), "", "L", false)

	return pdf.OutputFileAndClose(outputPath)
}

// writeSummaryTable renders the sentiment count/percentage table.
func (g *Generator) writeSummaryTable(pdf *gofpdf.Fpdf, tr func(string) string, summary Summary) {
	pdf.SetFont("Helvetica", "B", 14)
	setTextHex(pdf, colorSecondary)
	pdf.CellFormat(0, 9, tr("SAMMANFATTNING"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	type row struct {
		label   string
		count   int
		percent float64
	}
	rows := []row{
		{"Positiva recensioner", summary.Positive, summary.PositivePct},
		{"Negativa recensioner", summary.Negative, summary.NegativePct},
		{"Neutrala recensioner", summary.Neutral, summary.NeutralPct},
	}

	setFillHex(pdf, colorPrimary)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(70, 8, "Sentiment", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 8, "Antal", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 8, "Procent", "1", 1, "C", true, 0, "")

	setTextHex(pdf, colorSecondary)
	pdf.SetFont("Helvetica", "", 11)
	for _, r := range rows {
		pdf.CellFormat(70, 8, tr(r.label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 8, strconv.Itoa(r.count), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.1f%%", r.percent), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(6)
}

// writeSentimentChart renders the pie chart and embeds it. Chart errors are
// swallowed: the report is still useful without the figure.
func (g *Generator) writeSentimentChart(pdf *gofpdf.Fpdf, summary Summary) {
	values := []chart.Value{}
	add := func(label string, count int, hex string) {
		if count > 0 {
			values = append(values, chart.Value{
				Label: label,
				Value: float64(count),
				Style: chart.Style{FillColor: drawing.ColorFromHex(hex)},
			})
		}
	}
	add("Positiva", summary.Positive, colorSuccess)
	add("Negativa", summary.Negative, colorDanger)
	add("Neutrala", summary.Neutral, colorWarning)
	if len(values) == 0 {
		return
	}

	pie := chart.PieChart{Width: 512, Height: 512, Values: values}
	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return
	}

	options := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("sentiment_chart", options, &buf)
	x := (210.0 - 90.0) / 2
	pdf.ImageOptions("sentiment_chart", x, pdf.GetY(), 90, 90, true, options, 0, "")
	pdf.Ln(6)
}

// writeRecommendations renders advice driven by the sentiment distribution.
func (g *Generator) writeRecommendations(pdf *gofpdf.Fpdf, tr func(string) string, summary Summary) {
	pdf.SetFont("Helvetica", "B", 14)
	setTextHex(pdf, colorSecondary)
	pdf.CellFormat(0, 9, tr("REKOMMENDATIONER"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	recommendations := []string{}
	switch {
	case summary.PositivePct > 70:
		recommendations = append(recommendations, "Utmärkt! Majoriteten av era recensioner är positiva. Fortsätt med det goda arbetet.")
	case summary.PositivePct > 50:
		recommendations = append(recommendations, "Bra resultat, men det finns utrymme för förbättring. Analysera negativa recensioner för förbättringsmöjligheter.")
	default:
		recommendations = append(recommendations, "Fokusera på att förbättra kundupplevelsen baserat på negativ feedback.")
	}
	if summary.NegativePct > 30 {
		recommendations = append(recommendations, "Undersök vanliga klagomål och skapa handlingsplaner för att adressera dem.")
	}
	recommendations = append(recommendations,
		"Använd positiv feedback i marknadsföring och produktutveckling.",
		"Följ upp regelbundet för att spåra förändringar över tid.",
	)

	pdf.SetFont("Helvetica", "", 11)
	for _, recommendation := range recommendations {
		pdf.MultiCell(0, 6, tr("- "+recommendation), "", "L", false)
	}
	pdf.Ln(4)
}

// writeSampleReviews renders up to two example reviews per sentiment.
func (g *Generator) writeSampleReviews(pdf *gofpdf.Fpdf, tr func(string) string, reviews []ScoredReview) {
	pdf.SetFont("Helvetica", "B", 14)
	setTextHex(pdf, colorSecondary)
	pdf.CellFormat(0, 9, tr("EXEMPEL PÅ RECENSIONER"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	sections := []struct {
		sentiment string
		heading   string
	}{
		{"positive", "POSITIVA RECENSIONER:"},
		{"negative", "NEGATIVA RECENSIONER:"},
		{"neutral", "NEUTRALA RECENSIONER:"},
	}

	for _, section := range sections {
		shown := 0
		for _, review := range reviews {
			if string(review.Analysis.Sentiment) != section.sentiment {
				continue
			}
			if shown == 0 {
				pdf.SetFont("Helvetica", "B", 12)
				pdf.CellFormat(0, 7, tr(section.heading), "", 1, "L", false, 0, "")
				pdf.SetFont("Helvetica", "", 11)
			}
			text := review.Review.Text
			if len([]rune(text)) > 200 {
				text = string([]rune(text)[:200]) + "..."
			}
			pdf.MultiCell(0, 6, tr("- "+text), "", "L", false)
			shown++
			if shown >= 2 {
				break
			}
		}
		if shown > 0 {
			pdf.Ln(3)
		}
	}
}

// writeFallback renders a minimal report when no data is available or the
// full render failed.
func (g *Generator) writeFallback(companyName, outputPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr("NeilanX - Recensionsanalys"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, tr("Företag: "+companyName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, tr("Datum: "+time.Now().Format("2006-01-02")), "", 1, "L", false, 0, "")
	pdf.Ln(4)
	pdf.MultiCell(0, 6, tr("Rapporten kunde inte genereras på grund av ett tekniskt fel eller saknad data. Kontakta support för hjälp."), "", "L", false)

	return pdf.OutputFileAndClose(outputPath)
}

// setTextHex sets the current text color from a hex string.
func setTextHex(pdf *gofpdf.Fpdf, hex string) {
	r, g, b := hexToRGB(hex)
	pdf.SetTextColor(r, g, b)
}

// setFillHex sets the current fill color from a hex string.
func setFillHex(pdf *gofpdf.Fpdf, hex string) {
	r, g, b := hexToRGB(hex)
	pdf.SetFillColor(r, g, b)
}

// hexToRGB parses an RRGGBB hex color.
func hexToRGB(hex string) (int, int, int) {
	var r, g, b int
	fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	return r, g, b
}
