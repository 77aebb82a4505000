package services

import (
	"bytes"
	"html/template"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/soaringjerry/Survey/internal/models"
)

const DefaultReportTitle = "Personality Assessment Results"

// QuestionSource is the read side of the survey the report needs.
type QuestionSource interface {
	Questions() []models.Question
}

// ExportResult is a rendered report ready to send as a download.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportService renders the current answers in the supported export formats.
type ReportService struct {
	source QuestionSource
	title  string
	logger *zap.Logger
}

// NewReportService falls back to DefaultReportTitle when title is blank.
func NewReportService(source QuestionSource, title string, logger *zap.Logger) *ReportService {
	if strings.TrimSpace(title) == "" {
		title = DefaultReportTitle
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{source: source, title: title, logger: logger}
}

// Export renders a snapshot of the current answers. format is one of
// pdf (default), html, csv or scores.
func (s *ReportService) Export(format string) (*ExportResult, error) {
	if s.source == nil {
		return nil, NewPreconditionFailedError("report source not configured")
	}
	summary := Summarize(s.source.Questions())
	if format == "" {
		format = "pdf"
	}
	var (
		res *ExportResult
		err error
	)
	switch format {
	case "pdf":
		var b []byte
		b, err = RenderReportPDF(s.title, summary)
		res = &ExportResult{Filename: "report.pdf", ContentType: "application/pdf", Data: b}
	case "html":
		var b []byte
		b, err = RenderReportHTML(s.title, summary)
		res = &ExportResult{Filename: "report.html", ContentType: "text/html; charset=utf-8", Data: b}
	case "csv":
		var b []byte
		b, err = ExportAnswersCSV(summary)
		res = &ExportResult{Filename: "answers.csv", ContentType: "text/csv; charset=utf-8", Data: b}
	case "scores":
		var b []byte
		b, err = ExportSectionScoresCSV(summary)
		res = &ExportResult{Filename: "scores.csv", ContentType: "text/csv; charset=utf-8", Data: b}
	default:
		return nil, NewInvalidError("unsupported format")
	}
	if err != nil {
		s.logger.Error("report render failed", zap.String("format", format), zap.Error(err))
		return nil, err
	}
	s.logger.Info("report rendered", zap.String("format", format), zap.Int("bytes", len(res.Data)))
	return res, nil
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"avg":      FormatAverage,
	"response": ResponseText,
}).Parse(`<html>
  <head>
    <style>
      body { font-family: system-ui; padding: 20px; }
      h1 { color: #1e293b; }
      .section { margin: 20px 0; }
      .section-title { color: #334155; }
      .average { color: #6366f1; font-weight: bold; }
      .question { margin: 10px 0; color: #475569; }
      .answer { color: #6366f1; }
    </style>
  </head>
  <body>
    <h1>{{.Title}}</h1>
{{- range .Sections}}
    <div class="section">
      <h2 class="section-title">{{.Section}}</h2>
      <p>Section Average: <span class="average">{{avg .Average}}</span></p>
{{- range .Questions}}
      <div class="question">
        <p>{{.Text}}</p>
        <p class="answer">Response: {{response .}}</p>
      </div>
{{- end}}
    </div>
{{- end}}
  </body>
</html>
`))

// RenderReportHTML produces the report document: a heading, then per section
// its average and the question/answer pairs.
func RenderReportHTML(title string, summary ResultSummary) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := reportTemplate.Execute(buf, struct {
		Title    string
		Sections []SectionAggregate
	}{Title: title, Sections: summary.Sections})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderReportPDF lays out the same structure as RenderReportHTML on A4 pages.
func RenderReportPDF(title string, summary ResultSummary) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(0x1e, 0x29, 0x3b)
	pdf.MultiCell(0, 10, tr(title), "", "L", false)
	pdf.Ln(4)

	for _, sec := range summary.Sections {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetTextColor(0x33, 0x41, 0x55)
		pdf.MultiCell(0, 8, tr(sec.Section), "", "L", false)

		r, g, b := hexRGB(sec.Color)
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(0x47, 0x55, 0x69)
		pdf.CellFormat(32, 7, "Section Average:", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(r, g, b)
		pdf.CellFormat(0, 7, FormatAverage(sec.Average), "", 1, "L", false, 0, "")

		for _, q := range sec.Questions {
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(0x47, 0x55, 0x69)
			pdf.MultiCell(0, 5, tr(q.Text), "", "L", false)
			pdf.SetTextColor(r, g, b)
			pdf.MultiCell(0, 5, "Response: "+ResponseText(q), "", "L", false)
			pdf.Ln(2)
		}
		pdf.Ln(4)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// hexRGB parses "#rrggbb"; anything else yields the default slate.
func hexRGB(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0x64, 0x74, 0x8b
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0x64, 0x74, 0x8b
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
