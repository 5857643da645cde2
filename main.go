package main

import (
	"context"
	"errors"
	"os"
	"time"

	"barbershop-billing/config"
	"barbershop-billing/database"
	billingapi "barbershop-billing/internal/api/billing"
	usersapi "barbershop-billing/internal/api/users"
	routes "barbershop-billing/internal/app/http"
	"barbershop-billing/internal/domain/billing"
	"barbershop-billing/internal/infra/identity"
	"barbershop-billing/internal/infra/ledger"
	"barbershop-billing/internal/infra/stripe"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	logger = logger.Level(level)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg.DBURL, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("database")
	}

	gateway := stripe.NewGateway(stripe.Options{
		SecretKey: cfg.StripeSecretKey,
		APIURL:    cfg.StripeAPIURL,
		AppEnv:    cfg.AppEnv,
	})

	reconciler := billing.NewReconciler(gateway, ledger.NewGormLedger(db), billing.Config{
		PriceID:    cfg.StripePriceID,
		SuccessURL: cfg.SuccessURL(),
		CancelURL:  cfg.CancelURL(),
	}, logger)

	bearer, session, err := verifiers(context.Background(), cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("identity")
	}
	gate := identity.NewGate(bearer, session, cfg.SessionCookie)

	r := gin.Default()

	// CORS before routes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r,
		billingapi.NewHandler(reconciler),
		usersapi.NewHandler(reconciler, logger.With().Str("component", "me").Logger()),
		gate,
	)

	logger.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("billing api listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server")
	}
}

// verifiers picks the bearer verifier (local HMAC, then OIDC, then the
// identity directory) and the verifier used for session cookies, which
// prefers the directory when it is configured.
func verifiers(ctx context.Context, cfg *config.Config) (bearer, session identity.Verifier, err error) {
	var remote identity.Verifier
	if cfg.SupabaseURL != "" && cfg.SupabaseAnonKey != "" {
		remote = identity.NewGoTrueVerifier(cfg.SupabaseURL, cfg.SupabaseAnonKey, nil)
	}

	switch {
	case cfg.SupabaseJWTSecret != "":
		bearer = identity.NewHMACVerifier(cfg.SupabaseJWTSecret, cfg.OIDCAudience)
	case cfg.OIDCIssuer != "":
		bearer, err = identity.NewOIDCVerifier(ctx, cfg.OIDCIssuer, cfg.OIDCAudience)
		if err != nil {
			return nil, nil, err
		}
	case remote != nil:
		bearer = remote
	default:
		return nil, nil, errors.New("no token verifier configured")
	}

	session = bearer
	if remote != nil {
		session = remote
	}
	return bearer, session, nil
}
