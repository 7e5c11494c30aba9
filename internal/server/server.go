package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/formfillhq/formfill/internal/auth"
	authdomain "github.com/formfillhq/formfill/internal/auth/domain"
	"github.com/formfillhq/formfill/internal/auth/session"
	"github.com/formfillhq/formfill/internal/config"
	"github.com/formfillhq/formfill/internal/entitlement"
	"github.com/formfillhq/formfill/internal/fields"
	"github.com/formfillhq/formfill/internal/fill"
	"github.com/formfillhq/formfill/internal/mapping"
	"github.com/formfillhq/formfill/internal/observability"
	obsmiddleware "github.com/formfillhq/formfill/internal/observability/logger"
	obsmetrics "github.com/formfillhq/formfill/internal/observability/metrics"
	obstracing "github.com/formfillhq/formfill/internal/observability/tracing"
	"github.com/formfillhq/formfill/internal/profile"
	profiledomain "github.com/formfillhq/formfill/internal/profile/domain"
	"github.com/formfillhq/formfill/internal/providers"
	"github.com/formfillhq/formfill/internal/providers/billing"
	"github.com/formfillhq/formfill/internal/providers/email"
	"github.com/formfillhq/formfill/internal/usagelimit"
	"github.com/formfillhq/formfill/internal/user"
	userdomain "github.com/formfillhq/formfill/internal/user/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fields.Module,
	user.Module,
	auth.Module,
	profile.Module,
	mapping.Module,
	entitlement.Module,
	fill.Module,
	usagelimit.Module,
	providers.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, sd fx.Shutdowner, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server exited", zap.Error(err))
					_ = sd.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	log         *zap.Logger
	authsvc     authdomain.Service
	usersvc     userdomain.Service
	profilesvc  profiledomain.Service
	fillsvc     *fill.Service
	entitlement *entitlement.Service
	billing     billing.Provider
	email       email.Provider
	sessions    *session.Manager
	limiter     *usagelimit.Limiter
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	Log         *zap.Logger
	Authsvc     authdomain.Service
	Usersvc     userdomain.Service
	Profilesvc  profiledomain.Service
	Fillsvc     *fill.Service
	Entitlement *entitlement.Service
	Billing     billing.Provider
	Email       email.Provider
	Sessions    *session.Manager
	Limiter     *usagelimit.Limiter
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		log:         p.Log,
		authsvc:     p.Authsvc,
		usersvc:     p.Usersvc,
		profilesvc:  p.Profilesvc,
		fillsvc:     p.Fillsvc,
		entitlement: p.Entitlement,
		billing:     p.Billing,
		email:       p.Email,
		sessions:    p.Sessions,
		limiter:     p.Limiter,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()
	svc.registerBillingRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/magic-link", s.RequestMagicLink)
	auth.GET("/verify", s.VerifyMagicLink)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.SessionRequired(), s.Me)
	auth.PATCH("/me", s.SessionRequired(), s.UpdateMe)
	auth.DELETE("/me", s.SessionRequired(), s.DeleteAccount)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	api.POST("/extract-fields", s.MaxUpload(), s.ExtractFields)
	api.POST("/fill", s.MaxUpload(), s.SessionOptional(), s.Fill)
	api.POST("/ai-extract", s.AIExtract)

	profiles := api.Group("/profiles", s.SessionRequired())
	{
		profiles.GET("", s.ListProfiles)
		profiles.POST("", s.ProRequired(), s.CreateProfile)
		profiles.GET("/:id", s.GetProfile)
		profiles.PATCH("/:id", s.UpdateProfile)
		profiles.DELETE("/:id", s.DeleteProfile)
	}
}

func (s *Server) registerBillingRoutes() {
	billing := s.engine.Group("/billing", s.SessionRequired())

	billing.POST("/checkout", s.CreateCheckout)
	billing.GET("/success", s.CheckoutSuccess)
	billing.POST("/refresh", s.RefreshEntitlement)
}
