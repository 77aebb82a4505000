package services

import "github.com/soaringjerry/Survey/internal/models"

const (
	SectionCognitive    = "Cognitive & Thought Process"
	SectionEmotional    = "Emotional & Decision-Making Style"
	SectionOrganization = "Organization & Lifestyle"
	SectionSocialEnergy = "Social & Energy Levels"
	defaultSectionColor = "#64748b"
)

// Sections lists the four known sections in display order.
var Sections = []string{SectionCognitive, SectionEmotional, SectionOrganization, SectionSocialEnergy}

var sectionColors = map[string]string{
	SectionCognitive:    "#6366f1",
	SectionEmotional:    "#ec4899",
	SectionOrganization: "#14b8a6",
	SectionSocialEnergy: "#f59e0b",
}

// SectionColor returns the gauge color for a section, grey for unknown labels.
func SectionColor(section string) string {
	if c, ok := sectionColors[section]; ok {
		return c
	}
	return defaultSectionColor
}

// LikertLabels are the seven choices offered for every question; index 0 is value 1.
var LikertLabels = []string{
	"Strongly Agree",
	"Agree",
	"Somewhat Agree",
	"Neutral",
	"Somewhat Disagree",
	"Disagree",
	"Strongly Disagree",
}

// DefaultQuestionBank returns a fresh copy of the built-in questionnaire.
func DefaultQuestionBank() []models.Question {
	stems := []struct {
		section string
		text    string
	}{
		{SectionCognitive, "I carefully analyse the details before making a financial decision."},
		{SectionCognitive, "I enjoy learning about new ways to grow my savings."},
		{SectionCognitive, "I prefer to plan my spending well in advance."},
		{SectionCognitive, "I rely on data rather than intuition when comparing options."},
		{SectionEmotional, "I stay calm when my investments lose value."},
		{SectionEmotional, "I rarely regret purchases after making them."},
		{SectionEmotional, "I make financial decisions without needing reassurance from others."},
		{SectionEmotional, "Unexpected expenses do not cause me significant stress."},
		{SectionOrganization, "I keep track of my monthly income and expenses."},
		{SectionOrganization, "I pay my bills on time without reminders."},
		{SectionOrganization, "My financial documents are well organised."},
		{SectionOrganization, "I follow a routine for reviewing my finances."},
		{SectionSocialEnergy, "I feel comfortable discussing money with friends and family."},
		{SectionSocialEnergy, "I actively seek advice from financial professionals."},
		{SectionSocialEnergy, "I have the energy to pursue my long-term financial goals."},
		{SectionSocialEnergy, "Social events rarely push me to overspend."},
	}
	out := make([]models.Question, 0, len(stems))
	for i, s := range stems {
		out = append(out, models.Question{ID: i + 1, Text: s.text, Section: s.section})
	}
	return out
}
