package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/soaringjerry/Survey/internal/api"
	"github.com/soaringjerry/Survey/internal/config"
	"github.com/soaringjerry/Survey/internal/middleware"
	"github.com/soaringjerry/Survey/internal/services"
	"github.com/soaringjerry/Survey/internal/utils"
)

func main() {
	app := fx.New(appOptions())

	if err := app.Start(context.Background()); err != nil {
		log.Printf("failed to start: %v", err)
		os.Exit(1)
	}
	<-app.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		log.Printf("failed to stop gracefully: %v", err)
		os.Exit(1)
	}
}

func appOptions() fx.Option {
	return fx.Options(
		fx.Provide(
			loadConfig,
			newLogger,
			newOTPVerifier,
			services.NewAuthService,
			newSurveyService,
			services.NewSessionService,
			newReportService,
			newTokenIssuer,
			newHandler,
			newHTTPServer,
		),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx")}
		}),
		fx.Invoke(func(*http.Server) {}),
	)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func newLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
	logger, err := utils.NewLogger(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(func() { _ = logger.Sync() }))
	return logger, nil
}

func newOTPVerifier(cfg *config.Config) (services.OTPVerifier, error) {
	return services.NewHashedOTP(cfg.OTPCode)
}

func newSurveyService(logger *zap.Logger) (*services.SurveyService, error) {
	return services.NewSurveyService(services.DefaultQuestionBank(), logger.Named("survey"))
}

func newReportService(survey *services.SurveyService, cfg *config.Config, logger *zap.Logger) *services.ReportService {
	return services.NewReportService(survey, cfg.ReportTitle, logger.Named("report"))
}

func newTokenIssuer(cfg *config.Config) *middleware.TokenIssuer {
	return middleware.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL())
}

type handlerParams struct {
	fx.In

	Config  *config.Config
	Logger  *zap.Logger
	Auth    *services.AuthService
	Survey  *services.SurveyService
	Session *services.SessionService
	Reports *services.ReportService
	Tokens  *middleware.TokenIssuer
}

func newHandler(p handlerParams) (http.Handler, error) {
	rt := api.NewRouter(api.Deps{
		Auth:      p.Auth,
		Survey:    p.Survey,
		Session:   p.Session,
		Reports:   p.Reports,
		Tokens:    p.Tokens,
		Logger:    p.Logger.Named("http"),
		Commit:    p.Config.Commit,
		BuildTime: p.Config.BuildTime,
	})
	return rt.Handler(p.Config.CORSOrigins)
}

func newHTTPServer(lc fx.Lifecycle, cfg *config.Config, h http.Handler, logger *zap.Logger) *http.Server {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("survey server listening", zap.String("addr", srv.Addr), zap.String("commit", cfg.Commit))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping http server")
			return srv.Shutdown(ctx)
		},
	})
	return srv
}
