// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/canonical/trust-service/internal/config"
	"github.com/canonical/trust-service/internal/crypto"
	"github.com/canonical/trust-service/internal/db"
	"github.com/canonical/trust-service/internal/idp"
	"github.com/canonical/trust-service/internal/logging"
	"github.com/canonical/trust-service/internal/monitoring/prometheus"
	"github.com/canonical/trust-service/internal/storage"
	"github.com/canonical/trust-service/internal/ticketing"
	"github.com/canonical/trust-service/internal/tracing"
	"github.com/canonical/trust-service/pkg/csrf"
	"github.com/canonical/trust-service/pkg/delegation"
	"github.com/canonical/trust-service/pkg/handoff"
	"github.com/canonical/trust-service/pkg/ratelimit"
	"github.com/canonical/trust-service/pkg/session"
	"github.com/canonical/trust-service/pkg/tenancy"
	"github.com/canonical/trust-service/pkg/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		main()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("trust-service", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	encryptionKey, err := base64.StdEncoding.DecodeString(specs.EncryptionKey)
	if err != nil {
		return fmt.Errorf("encryption key is not valid base64: %v", err)
	}
	signingKey, err := base64.StdEncoding.DecodeString(specs.SigningKey)
	if err != nil {
		return fmt.Errorf("signing key is not valid base64: %v", err)
	}

	encrypter, err := crypto.NewEncrypter(encryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialise encrypter: %v", err)
	}
	signer, err := crypto.NewSigner(signingKey)
	if err != nil {
		return fmt.Errorf("failed to initialise signer: %v", err)
	}

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()
	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	resolver := tenancy.NewResolver(s, specs.TenantCacheTTL, tracer, monitor, logger)
	limiter := ratelimit.NewLimiter(ratelimit.DefaultConfigs(), tracer, monitor, logger)
	guard := csrf.NewGuard(specs.SecureCookies, tracer, monitor, logger)

	sessionService := session.NewService(encrypter, signer, specs.SessionLifetime, specs.SecureCookies, tracer, monitor, logger)
	handoffService := handoff.NewService(encrypter, signer, specs.HandoffTTL, specs.BaseDomain, specs.SecureCookies, tracer, monitor, logger)

	ticketingClient := ticketing.NewClient(
		specs.TicketingTokenURL,
		specs.TicketingClientID,
		specs.TicketingSecret,
		specs.TicketingProbeURL,
		tracer,
		monitor,
		logger,
	)
	coordinator := delegation.NewCoordinator(
		s,
		ticketingClient,
		encrypter,
		specs.RefreshSafetyMargin,
		specs.UpstreamCallTimeout,
		tracer,
		monitor,
		logger,
	)
	sweeper := delegation.NewSweeper(s, coordinator, specs.CredentialSweepEvery, specs.CredentialStaleAfter, tracer, logger)

	var revoker handoff.RevokerInterface
	if specs.IdentityProviderURL != "" {
		idpClient, err := idp.NewClient(
			context.Background(),
			specs.IdentityProviderURL,
			specs.IdentityClientID,
			specs.IdentityClientSecret,
			tracer,
			monitor,
			logger,
		)
		if err != nil {
			return fmt.Errorf("failed to initialise identity provider client: %v", err)
		}
		revoker = idpClient
	} else {
		logger.Warn("no identity provider configured, logout revocation disabled")
	}

	handoffAPI := handoff.NewAPI(handoffService, sessionService, revoker, tracer, monitor, logger)

	// The portal application (rendering, CRUD, billing) mounts here in
	// the full deployment. This binary serves its trust endpoints only.
	app := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"code": "NOT_FOUND", "message": "not found"})
	})

	router := web.NewRouter(
		tenancy.NewMiddleware(resolver, specs.DevTenantHeaderEnabled, tracer, monitor, logger),
		limiter,
		guard,
		session.NewMiddleware(sessionService, tracer, logger),
		handoffAPI,
		app,
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	background, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	go sweeper.Run(background)
	go runTicker(background, specs.RateLimitSweepInterval, limiter.Sweep)
	go runTicker(background, specs.TenantCacheTTL, resolver.Sweep)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}

func runTicker(ctx context.Context, interval time.Duration, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}

func main() {
	if err := serve(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}
