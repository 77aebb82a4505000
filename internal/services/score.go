package services

import (
	"math"

	"github.com/soaringjerry/Survey/internal/models"
)

const (
	GaugeRadius      = 120
	GaugeStrokeWidth = 20
)

// GaugeCircumference is the stroke length of a full gauge circle.
var GaugeCircumference = 2 * math.Pi * GaugeRadius

// SectionAggregate is derived on demand from the bank and never stored.
type SectionAggregate struct {
	Section   string            `json:"section"`
	Color     string            `json:"color"`
	Questions []models.Question `json:"questions"`
	Average   float64           `json:"average"`
	Answered  int               `json:"answered"`
	Gauge     Gauge             `json:"gauge"`
}

// Gauge is the rendered projection of a section average.
type Gauge struct {
	Value      float64 `json:"value"`
	MaxValue   float64 `json:"max_value"`
	Percentage float64 `json:"percentage"`
	DashOffset float64 `json:"dash_offset"`
}

// ResultSummary is what the results screen and the report consume.
type ResultSummary struct {
	Sections       []SectionAggregate `json:"sections"`
	Answered       int                `json:"answered"`
	Total          int                `json:"total"`
	OverallAverage float64            `json:"overall_average"`
	Complete       bool               `json:"complete"`
}

// SectionAverage is the mean of the answered values, or exactly 0 when
// nothing in the slice is answered.
func SectionAverage(questions []models.Question) float64 {
	sum, n := 0, 0
	for _, q := range questions {
		if q.Answer == nil {
			continue
		}
		sum += *q.Answer
		n++
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// GroupBySection partitions questions by section label. Sections keep the
// order in which they are first encountered; questions keep bank order.
func GroupBySection(questions []models.Question) []SectionAggregate {
	pos := map[string]int{}
	var out []SectionAggregate
	for _, q := range questions {
		i, ok := pos[q.Section]
		if !ok {
			i = len(out)
			pos[q.Section] = i
			out = append(out, SectionAggregate{Section: q.Section, Color: SectionColor(q.Section)})
		}
		out[i].Questions = append(out[i].Questions, q)
		if q.Answer != nil {
			out[i].Answered++
		}
	}
	for i := range out {
		out[i].Average = SectionAverage(out[i].Questions)
		out[i].Gauge = GaugeFor(out[i].Average)
	}
	return out
}

// GaugeFor maps an average on the 0..7 scale to the gauge fill.
func GaugeFor(value float64) Gauge {
	v := math.Max(0, math.Min(value, MaxLikertValue))
	frac := v / MaxLikertValue
	return Gauge{
		Value:      value,
		MaxValue:   MaxLikertValue,
		Percentage: frac * 100,
		DashOffset: GaugeCircumference * (1 - frac),
	}
}

func Summarize(questions []models.Question) ResultSummary {
	sections := GroupBySection(questions)
	answered := 0
	for _, sec := range sections {
		answered += sec.Answered
	}
	return ResultSummary{
		Sections:       sections,
		Answered:       answered,
		Total:          len(questions),
		OverallAverage: SectionAverage(questions),
		Complete:       len(questions) > 0 && answered == len(questions),
	}
}
