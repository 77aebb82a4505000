package services

import (
	"strings"
	"sync"
	"testing"

	"github.com/soaringjerry/Survey/internal/models"
)

type stubOTP struct{ code string }

func (s stubOTP) Verify(code string) bool { return code == s.code }

func newTestAuth() *AuthService {
	return NewAuthService(stubOTP{code: MockOTPCode}, nil)
}

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }

func TestAuthLoginResetsFlags(t *testing.T) {
	svc := newTestAuth()
	svc.Login("9876543210")
	svc.VerifyOtp(MockOTPCode)
	if _, err := svc.UpdateProfile(models.ProfileUpdate{Email: strp("a@b.co")}); err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}

	for _, m := range []string{"9876543210", "0123456789", "12ab"} {
		svc.Login(m)
		st := svc.State()
		if st.User == nil || st.User.Mobile != m {
			t.Fatalf("user after Login(%q) = %+v", m, st.User)
		}
		if st.User.ID != "1" {
			t.Fatalf("user id = %q, want 1", st.User.ID)
		}
		if st.IsAuthenticated || st.IsOtpVerified {
			t.Fatalf("flags after Login(%q) = %+v, want both false", m, st)
		}
		if st.User.IsProfileComplete || st.User.Email != "" {
			t.Fatalf("Login(%q) kept previous profile: %+v", m, st.User)
		}
		if svc.Stage() != StageMobileEntered {
			t.Fatalf("stage = %s, want %s", svc.Stage(), StageMobileEntered)
		}
	}
}

func TestAuthVerifyOtp(t *testing.T) {
	svc := newTestAuth()
	svc.Login("9876543210")

	for _, code := range []string{"", "123456", "00000", "0000000", " 000000"} {
		if svc.VerifyOtp(code) {
			t.Fatalf("VerifyOtp(%q) = true, want false", code)
		}
		if svc.State().IsOtpVerified {
			t.Fatalf("VerifyOtp(%q) changed state", code)
		}
	}
	if !svc.VerifyOtp("000000") {
		t.Fatalf("VerifyOtp(000000) = false, want true")
	}
	st := svc.State()
	if !st.IsOtpVerified {
		t.Fatalf("expected otp verified")
	}
	if st.IsAuthenticated {
		t.Fatalf("otp verification must not authenticate")
	}
	if svc.Stage() != StageOtpVerified {
		t.Fatalf("stage = %s, want %s", svc.Stage(), StageOtpVerified)
	}
	if svc.VerifyOtp("111111") {
		t.Fatalf("wrong code accepted after success")
	}
	if !svc.State().IsOtpVerified {
		t.Fatalf("failed attempt cleared verified flag")
	}
}

func TestAuthUpdateProfile(t *testing.T) {
	svc := newTestAuth()
	svc.Login("9876543210")
	svc.VerifyOtp(MockOTPCode)

	u, err := svc.UpdateProfile(models.ProfileUpdate{
		Email:         strp("user@example.com"),
		Age:           intp(29),
		Qualification: strp("MBA"),
		Target:        strp("Retire early"),
	})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if u.Email != "user@example.com" || u.Age != 29 || u.Qualification != "MBA" || u.Target != "Retire early" {
		t.Fatalf("unexpected profile %+v", u)
	}
	if u.Mobile != "9876543210" {
		t.Fatalf("mobile = %q, want preserved", u.Mobile)
	}
	st := svc.State()
	if !st.IsAuthenticated || !st.User.IsProfileComplete {
		t.Fatalf("expected authenticated and complete, got %+v", st)
	}
	if svc.Stage() != StageProfileComplete {
		t.Fatalf("stage = %s, want %s", svc.Stage(), StageProfileComplete)
	}
}

func TestAuthUpdateProfileTrustsCaller(t *testing.T) {
	svc := newTestAuth()
	svc.Login("9876543210")

	// Partial fields and no OTP verification still complete the profile.
	u, err := svc.UpdateProfile(models.ProfileUpdate{Target: strp("Save")})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if !u.IsProfileComplete || u.Email != "" || u.Target != "Save" {
		t.Fatalf("unexpected user %+v", u)
	}
	st := svc.State()
	if !st.IsAuthenticated || st.IsOtpVerified {
		t.Fatalf("unexpected flags %+v", st)
	}
}

func TestAuthUpdateProfileWithoutUser(t *testing.T) {
	svc := newTestAuth()
	_, err := svc.UpdateProfile(models.ProfileUpdate{Email: strp("x@y.z")})
	if !IsCode(err, ErrorPreconditionFailed) {
		t.Fatalf("expected precondition_failed, got %v", err)
	}
	st := svc.State()
	if st.User != nil || st.IsAuthenticated {
		t.Fatalf("state changed on failed update: %+v", st)
	}
}

func TestAuthLogoutFromAnyState(t *testing.T) {
	setups := map[string]func(*AuthService){
		"anonymous": func(*AuthService) {},
		"mobile":    func(s *AuthService) { s.Login("9876543210") },
		"verified": func(s *AuthService) {
			s.Login("9876543210")
			s.VerifyOtp(MockOTPCode)
		},
		"complete": func(s *AuthService) {
			s.Login("9876543210")
			s.VerifyOtp(MockOTPCode)
			_, _ = s.UpdateProfile(models.ProfileUpdate{Email: strp("a@b.co")})
		},
	}
	for name, setup := range setups {
		svc := newTestAuth()
		setup(svc)
		svc.Logout()
		st := svc.State()
		if st.User != nil || st.IsAuthenticated || st.IsOtpVerified {
			t.Fatalf("%s: state after logout = %+v", name, st)
		}
		if svc.Stage() != StageAnonymous {
			t.Fatalf("%s: stage = %s", name, svc.Stage())
		}
	}
}

func TestAuthStateIsSnapshot(t *testing.T) {
	svc := newTestAuth()
	svc.Login("9876543210")
	st := svc.State()
	st.User.Mobile = "tampered"
	if svc.State().User.Mobile != "9876543210" {
		t.Fatalf("snapshot mutation leaked into service")
	}
}

func TestHashedOTP(t *testing.T) {
	v, err := NewHashedOTP(MockOTPCode)
	if err != nil {
		t.Fatalf("NewHashedOTP returned error: %v", err)
	}
	if !v.Verify("000000") {
		t.Fatalf("expected 000000 accepted")
	}
	// bcrypt cycles the key with a NUL terminator up to 72 bytes; none of
	// these repetitions of the accepted code may pass.
	cycled := strings.Repeat("000000\x00", 14)
	for _, code := range []string{"", "000001", "0000000", "000000\x00", cycled[:72], cycled[:95]} {
		if v.Verify(code) {
			t.Fatalf("Verify(%q) = true", code)
		}
	}
	if _, err := NewHashedOTP(""); err == nil {
		t.Fatalf("expected error for empty code")
	}
	if _, err := NewHashedOTP("00\x000"); err == nil {
		t.Fatalf("expected error for code containing NUL")
	}
}

func TestAuthVerifyOtpWithHashedCode(t *testing.T) {
	otp, err := NewHashedOTP(MockOTPCode)
	if err != nil {
		t.Fatalf("NewHashedOTP returned error: %v", err)
	}
	svc := NewAuthService(otp, nil)
	svc.Login("9876543210")

	cycled := strings.Repeat("000000\x00", 11)[:72]
	for _, code := range []string{"123456", "0000000", cycled} {
		if svc.VerifyOtp(code) {
			t.Fatalf("VerifyOtp(%q) = true, want false", code)
		}
		if svc.State().IsOtpVerified {
			t.Fatalf("VerifyOtp(%q) changed state", code)
		}
	}
	if !svc.VerifyOtp(MockOTPCode) || !svc.State().IsOtpVerified {
		t.Fatalf("expected %s to verify", MockOTPCode)
	}
	if svc.Stage() != StageOtpVerified {
		t.Fatalf("stage = %s, want %s", svc.Stage(), StageOtpVerified)
	}
}

func TestAuthVerifyOtpConcurrentWithLogout(t *testing.T) {
	otp, err := NewHashedOTP(MockOTPCode)
	if err != nil {
		t.Fatalf("NewHashedOTP returned error: %v", err)
	}
	svc := NewAuthService(otp, nil)

	for i := 0; i < 50; i++ {
		svc.Login("9876543210")
		var wg sync.WaitGroup
		wg.Add(3)
		go func() {
			defer wg.Done()
			if !svc.VerifyOtp(MockOTPCode) {
				t.Errorf("VerifyOtp(%s) = false", MockOTPCode)
			}
		}()
		go func() {
			defer wg.Done()
			svc.Logout()
		}()
		go func() {
			defer wg.Done()
			_ = svc.State().Stage()
		}()
		wg.Wait()

		svc.Logout()
		if st := svc.State(); st.User != nil || st.IsOtpVerified || st.IsAuthenticated {
			t.Fatalf("state after Logout = %+v, want zero", st)
		}
	}
}
