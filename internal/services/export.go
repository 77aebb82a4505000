package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/soaringjerry/Survey/internal/models"
)

const notAnswered = "Not answered"

// ResponseText renders an answer the way the results screen shows it.
func ResponseText(q models.Question) string {
	if q.Answer == nil {
		return notAnswered
	}
	return strconv.Itoa(*q.Answer)
}

// LikertLabel returns the label for a value in 1..7, or "" outside the scale.
func LikertLabel(value int) string {
	if value < MinLikertValue || value > MaxLikertValue {
		return ""
	}
	return LikertLabels[value-1]
}

// FormatAverage renders a section average with one decimal.
func FormatAverage(avg float64) string {
	return fmt.Sprintf("%.1f", avg)
}

// ExportAnswersCSV renders a long-format CSV, one row per question in
// section order.
func ExportAnswersCSV(summary ResultSummary) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"section", "question_id", "question", "answer", "label"})
	for _, sec := range summary.Sections {
		for _, q := range sec.Questions {
			answer, label := "", ""
			if q.Answer != nil {
				answer = strconv.Itoa(*q.Answer)
				label = LikertLabel(*q.Answer)
			}
			if err := w.Write([]string{sec.Section, strconv.Itoa(q.ID), q.Text, answer, label}); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ExportSectionScoresCSV renders one row per section with its average.
func ExportSectionScoresCSV(summary ResultSummary) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"section", "answered", "total", "average", "percentage"})
	for _, sec := range summary.Sections {
		rec := []string{
			sec.Section,
			strconv.Itoa(sec.Answered),
			strconv.Itoa(len(sec.Questions)),
			FormatAverage(sec.Average),
			fmt.Sprintf("%.0f", sec.Gauge.Percentage),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
