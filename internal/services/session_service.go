package services

import "go.uber.org/zap"

// SessionService couples the two stores where a flow spans both.
type SessionService struct {
	auth   *AuthService
	survey *SurveyService
	logger *zap.Logger
}

func NewSessionService(auth *AuthService, survey *SurveyService, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{auth: auth, survey: survey, logger: logger}
}

// Logout ends the session and clears the answers so the next user starts clean.
func (s *SessionService) Logout() {
	s.auth.Logout()
	s.survey.ResetSurvey()
	s.logger.Info("session closed")
}

// NextRoute mirrors the navigation gate: login until authenticated, then the
// profile form until complete, then the survey.
func (s *SessionService) NextRoute() string {
	st := s.auth.State()
	switch {
	case !st.IsAuthenticated:
		return "/auth/login"
	case st.User == nil || !st.User.IsProfileComplete:
		return "/auth/profile"
	default:
		return "/survey"
	}
}
