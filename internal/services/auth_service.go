package services

import (
	"sync"

	"go.uber.org/zap"

	"github.com/soaringjerry/Survey/internal/models"
)

// Stage is the position of the session in the login flow.
type Stage string

const (
	StageAnonymous       Stage = "anonymous"
	StageMobileEntered   Stage = "mobile_entered"
	StageOtpVerified     Stage = "otp_verified"
	StageProfileComplete Stage = "profile_complete"
)

// AuthState is a read-only snapshot of the session.
type AuthState struct {
	User            *models.User `json:"user"`
	IsAuthenticated bool         `json:"is_authenticated"`
	IsOtpVerified   bool         `json:"is_otp_verified"`
}

// Stage derives the flow position from the snapshot.
func (s AuthState) Stage() Stage {
	switch {
	case s.User == nil:
		return StageAnonymous
	case s.User.IsProfileComplete:
		return StageProfileComplete
	case s.IsOtpVerified:
		return StageOtpVerified
	default:
		return StageMobileEntered
	}
}

// AuthService owns the identity of the single in-process user.
// Inputs are trusted: format checks belong to the caller.
type AuthService struct {
	mu     sync.RWMutex
	state  AuthState
	otp    OTPVerifier
	userID func() string
	logger *zap.Logger
}

func NewAuthService(otp OTPVerifier, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		otp:    otp,
		userID: func() string { return "1" },
		logger: logger,
	}
}

// Login replaces the current user and clears both session flags.
func (s *AuthService) Login(mobile string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = AuthState{User: &models.User{ID: s.userID(), Mobile: mobile}}
	s.logger.Info("login", zap.String("mobile", maskMobile(mobile)))
}

// VerifyOtp marks the session verified when code is accepted.
// A rejected code leaves the state untouched.
// The check and the flag write share one critical section so a concurrent
// Logout cannot land between them.
func (s *AuthService) VerifyOtp(code string) bool {
	s.mu.Lock()
	ok := s.otp != nil && s.otp.Verify(code)
	if ok {
		s.state.IsOtpVerified = true
	}
	s.mu.Unlock()
	if !ok {
		s.logger.Info("otp rejected")
		return false
	}
	s.logger.Info("otp verified")
	return true
}

// UpdateProfile merges the supplied fields and marks the user complete and
// authenticated, whichever fields were supplied.
func (s *AuthService) UpdateProfile(upd models.ProfileUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.User == nil {
		return nil, NewPreconditionFailedError("no user logged in")
	}
	u := *s.state.User
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Age != nil {
		u.Age = *upd.Age
	}
	if upd.Qualification != nil {
		u.Qualification = *upd.Qualification
	}
	if upd.Target != nil {
		u.Target = *upd.Target
	}
	u.IsProfileComplete = true
	s.state.User = &u
	s.state.IsAuthenticated = true
	s.logger.Info("profile updated", zap.String("user_id", u.ID))
	out := u
	return &out, nil
}

// Logout returns the session to anonymous from any state.
func (s *AuthService) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = AuthState{}
	s.logger.Info("logout")
}

func (s *AuthService) State() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.state
	if out.User != nil {
		u := *out.User
		out.User = &u
	}
	return out
}

func (s *AuthService) Stage() Stage {
	return s.State().Stage()
}

func maskMobile(m string) string {
	if len(m) <= 4 {
		return "****"
	}
	return "******" + m[len(m)-4:]
}
