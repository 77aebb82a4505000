package services

import (
	"testing"

	"github.com/soaringjerry/Survey/internal/models"
)

func TestSessionLogoutClearsBothStores(t *testing.T) {
	auth := newTestAuth()
	survey := newTestSurvey(t)
	sess := NewSessionService(auth, survey, nil)

	if got := sess.NextRoute(); got != "/auth/login" {
		t.Fatalf("route = %q, want /auth/login", got)
	}
	auth.Login("9876543210")
	auth.VerifyOtp(MockOTPCode)
	if got := sess.NextRoute(); got != "/auth/login" {
		t.Fatalf("route after otp = %q, want /auth/login", got)
	}
	if _, err := auth.UpdateProfile(models.ProfileUpdate{Email: strp("a@b.co")}); err != nil {
		t.Fatal(err)
	}
	if got := sess.NextRoute(); got != "/survey" {
		t.Fatalf("route = %q, want /survey", got)
	}
	_ = survey.SetAnswer(1, 4)
	_ = survey.SetAnswer(3, 6)

	sess.Logout()

	st := auth.State()
	if st.User != nil || st.IsAuthenticated || st.IsOtpVerified {
		t.Fatalf("auth not reset: %+v", st)
	}
	for _, q := range survey.Questions() {
		if q.Answered() {
			t.Fatalf("question %d kept answer after logout", q.ID)
		}
	}
	if got := sess.NextRoute(); got != "/auth/login" {
		t.Fatalf("route after logout = %q", got)
	}
}
