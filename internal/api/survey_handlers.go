package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/soaringjerry/Survey/internal/models"
	"github.com/soaringjerry/Survey/internal/services"
)

type sectionView struct {
	Section   string            `json:"section"`
	Color     string            `json:"color"`
	Questions []models.Question `json:"questions"`
}

// GET /api/survey/questions
func (rt *Router) handleQuestions(w http.ResponseWriter, r *http.Request) {
	qs := rt.survey.Questions()
	groups := services.GroupBySection(qs)
	sections := make([]sectionView, 0, len(groups))
	for _, g := range groups {
		sections = append(sections, sectionView{Section: g.Section, Color: g.Color, Questions: g.Questions})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"likert_labels": services.LikertLabels,
		"max_value":     services.MaxLikertValue,
		"total":         len(qs),
		"sections":      sections,
	})
}

// PUT /api/survey/answers/{id} {value}
func (rt *Router) handleSetAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, services.NewInvalidError("question id must be numeric"))
		return
	}
	var req answerRequest
	if err := rt.decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := rt.survey.SetAnswer(id, req.Value); err != nil {
		writeError(w, err)
		return
	}
	q, err := rt.survey.Question(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "question": q, "label": services.LikertLabel(req.Value)})
}

// POST /api/survey/reset
func (rt *Router) handleReset(w http.ResponseWriter, r *http.Request) {
	rt.survey.ResetSurvey()
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// GET /api/results
func (rt *Router) handleResults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, services.Summarize(rt.survey.Questions()))
}

// GET /api/results/report?format=pdf|html|csv|scores
func (rt *Router) handleReport(w http.ResponseWriter, r *http.Request) {
	res, err := rt.reports.Export(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+res.Filename)
	_, _ = w.Write(res.Data)
}
