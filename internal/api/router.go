package api

import (
	"net/http"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/soaringjerry/Survey/internal/middleware"
	"github.com/soaringjerry/Survey/internal/services"
)

// Deps groups the collaborators the HTTP layer reads from and mutates.
type Deps struct {
	Auth      *services.AuthService
	Survey    *services.SurveyService
	Session   *services.SessionService
	Reports   *services.ReportService
	Tokens    *middleware.TokenIssuer
	Logger    *zap.Logger
	Commit    string
	BuildTime string
}

type Router struct {
	auth     *services.AuthService
	survey   *services.SurveyService
	session  *services.SessionService
	reports  *services.ReportService
	tokens   *middleware.TokenIssuer
	logger   *zap.Logger
	validate *validator.Validate

	commit    string
	buildTime string

	// sid identifies the session the current token was issued for; login and
	// logout clear it so older tokens stop working.
	mu  sync.Mutex
	sid string
}

func NewRouter(d Deps) *Router {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		auth:      d.Auth,
		survey:    d.Survey,
		session:   d.Session,
		reports:   d.Reports,
		tokens:    d.Tokens,
		logger:    logger,
		validate:  newValidator(),
		commit:    d.Commit,
		buildTime: d.BuildTime,
	}
}

func (rt *Router) Register(m *mux.Router) {
	m.HandleFunc("/health", rt.handleHealth).Methods(http.MethodGet)
	m.HandleFunc("/version", rt.handleVersion).Methods(http.MethodGet)

	api := m.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/login", rt.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/otp", rt.handleVerifyOtp).Methods(http.MethodPost)
	api.HandleFunc("/auth/profile", rt.handleProfile).Methods(http.MethodPut)
	api.HandleFunc("/auth/logout", rt.handleLogout).Methods(http.MethodPost)
	api.HandleFunc("/auth/state", rt.handleAuthState).Methods(http.MethodGet)
	api.HandleFunc("/survey/questions", rt.handleQuestions).Methods(http.MethodGet)

	protected := api.NewRoute().Subrouter()
	protected.Use(rt.tokens.WithAuth, middleware.RequireAuth, rt.requireSession)
	protected.HandleFunc("/survey/answers/{id:[0-9]+}", rt.handleSetAnswer).Methods(http.MethodPut)
	protected.HandleFunc("/survey/reset", rt.handleReset).Methods(http.MethodPost)
	protected.HandleFunc("/results", rt.handleResults).Methods(http.MethodGet)
	protected.HandleFunc("/results/report", rt.handleReport).Methods(http.MethodGet)
}

// Handler builds the full middleware chain around a fresh mux.
func (rt *Router) Handler(corsOrigins []string) (http.Handler, error) {
	m := mux.NewRouter()
	rt.Register(m)
	accessLog, err := middleware.AccessLog(rt.logger)
	if err != nil {
		return nil, err
	}
	var h http.Handler = m
	h = accessLog(h)
	h = middleware.RequestID(h)
	h = middleware.SecureHeaders(h)
	h = middleware.NoStore(h)
	h = middleware.CORS(corsOrigins)(h)
	return h, nil
}

// requireSession runs after RequireAuth and admits only the token of the
// live session.
func (rt *Router) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.ClaimsFromContext(r.Context())
		rt.mu.Lock()
		live := claims != nil && rt.sid != "" && claims.SID == rt.sid
		rt.mu.Unlock()
		if !live || !rt.auth.State().IsAuthenticated {
			writeError(w, services.NewUnauthorizedError("session expired"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rt *Router) newSession() string {
	sid := strings.ReplaceAll(uuid.NewString(), "-", "")
	rt.mu.Lock()
	rt.sid = sid
	rt.mu.Unlock()
	return sid
}

func (rt *Router) endSession() {
	rt.mu.Lock()
	rt.sid = ""
	rt.mu.Unlock()
}

func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"name":       "Survey API",
		"commit":     rt.commit,
		"build_time": rt.buildTime,
	})
}

func (rt *Router) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"commit":     rt.commit,
		"build_time": rt.buildTime,
	})
}
