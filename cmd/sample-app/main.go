package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adapterhandler "sample-app/internal/adapter/handler"
	"sample-app/internal/adapter/gateway"
	"sample-app/internal/domain"
	infracache "sample-app/internal/infrastructure/cache"
	"sample-app/internal/infrastructure/signature"
	infratoken "sample-app/internal/infrastructure/token"
	"sample-app/internal/usecase"

	"sample-app/config"
	appmiddleware "sample-app/middleware"
	"sample-app/utils/logger"
	"sample-app/utils/otel"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Handle healthcheck subcommand (for Docker healthcheck in distroless image)
	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		if err := runHealthcheck(); err != nil {
			fmt.Fprintf(os.Stderr, "Healthcheck failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Initialize OpenTelemetry
	otelCfg := otel.ConfigFromEnv()
	otelShutdown, err := otel.InitProvider(ctx, otelCfg)
	if err != nil {
		slog.Warn("failed to initialize OpenTelemetry, continuing without tracing", "error", err)
		otelCfg.Enabled = false
	}

	// Initialize structured logger
	logger.Init(logger.Config{OTel: otelCfg.Enabled})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "configuration loaded",
		"port", cfg.Port,
		"app_url", cfg.AppURL,
		"session_provider", cfg.SessionProvider,
		"signed_sessions", cfg.SessionSecret != "",
		"oauth_state", cfg.StateSecret != "",
		"cache_ttl", cfg.CacheTTL)

	// Infrastructure
	meCache := infracache.NewResponseCache(ctx, cfg.CacheTTL, time.Minute)
	upstream := gateway.NewHTTPClient(cfg.UpstreamTimeout)
	loginGateway := gateway.NewLoginGateway(cfg.LoginAppAPIURL, upstream)
	identityGateway := gateway.NewIdentityGateway(cfg.IdentityAPIURL, upstream)
	brokerGateway := gateway.NewBrokerGateway(cfg.BrokerAPIURL, upstream)

	var sessionSource domain.SessionSource = loginGateway
	if cfg.SessionProvider == config.ProviderKratos {
		sessionSource = gateway.NewKratosGateway(cfg.KratosURL, upstream)
	}

	sealer, err := newSessionSealer(cfg)
	if err != nil {
		slog.ErrorContext(ctx, "failed to configure session cookies", "error", err)
		os.Exit(1)
	}
	stateIssuer := infratoken.NewHMACStateIssuer(cfg.StateSecret)
	signer := signature.NewHMACSigner(cfg.BrokerAccessToken)

	// Usecases
	loginUC := usecase.NewBuildLoginURI(usecase.LoginConfig{
		LoginURL:    cfg.LoginAppURL,
		RedirectURL: cfg.RedirectURL,
		ClientID:    cfg.ClientID,
	}, stateIssuer, slog.Default())
	exchangeUC := usecase.NewExchangeToken(loginGateway, sealer, stateIssuer, usecase.ExchangeConfig{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
	}, slog.Default())
	meUC := usecase.NewGetMe(sessionSource, meCache, slog.Default())
	identityUC := usecase.NewGetIdentity(identityGateway, slog.Default())
	dataProductUC := usecase.NewFetchDataProduct(brokerGateway, signer, cfg.ClientID, slog.Default())
	logoutUC := usecase.NewLogout(meCache, slog.Default())

	// Handlers
	cookies := adapterhandler.NewSessionCookies(sealer, cfg.SSLEnabled)
	loginHandler := adapterhandler.NewLoginHandler(loginUC, cookies)
	exchangeHandler := adapterhandler.NewExchangeTokenHandler(exchangeUC, cookies, cfg.AppURL)
	meHandler := adapterhandler.NewMeHandler(meUC, cookies)
	identityHandler := adapterhandler.NewIdentityHandler(identityUC, cookies)
	dataProductHandler := adapterhandler.NewDataProductHandler(dataProductUC)
	logoutHandler := adapterhandler.NewLogoutHandler(logoutUC, cookies)
	healthHandler := adapterhandler.NewHealthHandler()

	// Setup Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = adapterhandler.NewRequestValidator()

	// Security middleware
	e.Use(appmiddleware.SecurityHeaders(appmiddleware.SecurityConfig{HSTS: cfg.SSLEnabled}))

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(appmiddleware.RequestContext())

	if len(cfg.CORSAllowedOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderXRequestID},
			AllowCredentials: true,
			MaxAge:           600,
		}))
	}

	// OpenTelemetry tracing
	if otelCfg.Enabled {
		e.Use(otelecho.Middleware(otelCfg.ServiceName))
		e.Use(appmiddleware.OTelStatusMiddleware())
	}

	// Request logging
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			rctx := c.Request().Context()
			if v.Error == nil {
				slog.InfoContext(rctx, "request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				slog.ErrorContext(rctx, "request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))

	e.Use(middleware.Recover())

	// Rate limiters per endpoint group
	authRL := appmiddleware.NewRateLimiter(ctx, appmiddleware.PerMinute(30, 5))
	sessionRL := appmiddleware.NewRateLimiter(ctx, appmiddleware.PerMinute(120, 20))
	productRL := appmiddleware.NewRateLimiter(ctx, appmiddleware.PerMinute(30, 5))

	e.GET("/health", healthHandler.Handle)
	e.GET("/login", loginHandler.Handle, authRL.Middleware())
	e.GET("/exchangeToken", exchangeHandler.Handle, authRL.Middleware())
	e.GET("/logout", logoutHandler.Handle, authRL.Middleware())
	e.GET("/me", meHandler.Handle, sessionRL.Middleware())
	e.GET("/identities/:id", identityHandler.Handle, sessionRL.Middleware())
	e.POST("/fetch-data-product", dataProductHandler.Handle, productRL.Middleware())

	// Start server with errgroup for graceful shutdown
	address := fmt.Sprintf(":%s", cfg.Port)
	slog.InfoContext(ctx, "starting sample-app server", "address", address)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("shutting down server...")
		start := time.Now()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := e.Shutdown(shutdownCtx)
		logger.GlobalContext.LogDurationTime(shutdownCtx, "server_shutdown", time.Since(start))
		return err
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return otelShutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.GlobalContext.LogError(context.Background(), "shutdown", err)
		os.Exit(1)
	}

	slog.Info("server exited properly")
}

// newSessionSealer signs session cookies when a secret is configured and
// stores the bearer credential as is otherwise.
func newSessionSealer(cfg *config.Config) (domain.SessionSealer, error) {
	if cfg.SessionSecret == "" {
		return infratoken.PlainSealer{FallbackTTL: cfg.SessionTTL}, nil
	}
	sealer, err := infratoken.NewJWTSealer(infratoken.SessionConfig{
		Secret:      cfg.SessionSecret,
		Issuer:      "sample-app",
		FallbackTTL: cfg.SessionTTL,
	})
	if err != nil {
		return nil, err
	}
	return sealer, nil
}

// runHealthcheck performs a health check against the local server.
func runHealthcheck() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%s/health", port))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health endpoint returned status: %d", resp.StatusCode)
	}
	return nil
}
