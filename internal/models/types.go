package models

// User is the single in-process respondent. PII is kept in memory only.
type User struct {
	ID                string `json:"id"`
	Mobile            string `json:"mobile"`
	Email             string `json:"email,omitempty"`
	Age               int    `json:"age,omitempty"`
	Qualification     string `json:"qualification,omitempty"`
	Target            string `json:"target,omitempty"`
	IsProfileComplete bool   `json:"is_profile_complete"`
}

// ProfileUpdate carries the fields merged by a profile update.
// Nil fields are left untouched on the user.
type ProfileUpdate struct {
	Email         *string
	Age           *int
	Qualification *string
	Target        *string
}

// Question is a Likert item belonging to one section of the bank.
type Question struct {
	ID      int    `json:"id"`
	Text    string `json:"text"`
	Section string `json:"section"`
	Answer  *int   `json:"answer,omitempty"` // nil while unanswered, else 1..7
}

// Answered reports whether the question carries a response.
func (q Question) Answered() bool { return q.Answer != nil }
