package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/soaringjerry/Survey/internal/services"
)

const invalidOTPMessage = "Invalid OTP. Please try 000000"

type authStateView struct {
	services.AuthState
	Stage services.Stage `json:"stage"`
	Next  string         `json:"next"`
}

func (rt *Router) stateView() authStateView {
	st := rt.auth.State()
	return authStateView{AuthState: st, Stage: st.Stage(), Next: rt.session.NextRoute()}
}

// POST /api/auth/login {mobile}
func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := rt.decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	rt.endSession()
	rt.auth.Login(req.Mobile)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "state": rt.stateView()})
}

// POST /api/auth/otp {otp}
func (rt *Router) handleVerifyOtp(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if err := rt.decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if !rt.auth.VerifyOtp(req.OTP) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"ok": false, "message": invalidOTPMessage})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "state": rt.stateView()})
}

// PUT /api/auth/profile {email, age, qualification, target}
// All four fields are required here; the auth service itself trusts its caller.
func (rt *Router) handleProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := rt.decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	user, err := rt.auth.UpdateProfile(req.update())
	if err != nil {
		writeError(w, err)
		return
	}
	sid := rt.newSession()
	token, err := rt.tokens.Sign(user.ID, sid, user.Mobile)
	if err != nil {
		rt.logger.Error("sign token", zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"user":       user,
		"token":      token,
		"expires_in": int(rt.tokens.TTL().Seconds()),
		"state":      rt.stateView(),
	})
}

// POST /api/auth/logout clears the session and the answers.
func (rt *Router) handleLogout(w http.ResponseWriter, r *http.Request) {
	rt.endSession()
	rt.session.Logout()
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "state": rt.stateView()})
}

// GET /api/auth/state
func (rt *Router) handleAuthState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rt.stateView())
}
