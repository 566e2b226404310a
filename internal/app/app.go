package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	auditpkg "github.com/praxisworks/lawdesk-backend/internal/audit"
	"github.com/praxisworks/lawdesk-backend/internal/auth"
	"github.com/praxisworks/lawdesk-backend/internal/config"
	"github.com/praxisworks/lawdesk-backend/internal/dispatch"
	"github.com/praxisworks/lawdesk-backend/internal/entitlement"
	eventpkg "github.com/praxisworks/lawdesk-backend/internal/event"

	"github.com/praxisworks/lawdesk-backend/internal/adapter/postgres"
	auditrepo "github.com/praxisworks/lawdesk-backend/internal/adapter/postgres/audit"
	clientrepo "github.com/praxisworks/lawdesk-backend/internal/adapter/postgres/client"
	commentrepo "github.com/praxisworks/lawdesk-backend/internal/adapter/postgres/comment"
	documentrepo "github.com/praxisworks/lawdesk-backend/internal/adapter/postgres/document"
	eventrepo "github.com/praxisworks/lawdesk-backend/internal/adapter/postgres/event"
	invitationrepo "github.com/praxisworks/lawdesk-backend/internal/adapter/postgres/invitation"
	invoicerepo "github.com/praxisworks/lawdesk-backend/internal/adapter/postgres/invoice"
	matterrepo "github.com/praxisworks/lawdesk-backend/internal/adapter/postgres/matter"
	membershiprepo "github.com/praxisworks/lawdesk-backend/internal/adapter/postgres/membership"
	orgrepo "github.com/praxisworks/lawdesk-backend/internal/adapter/postgres/organization"
	outboxrepo "github.com/praxisworks/lawdesk-backend/internal/adapter/postgres/outbox"
	"github.com/praxisworks/lawdesk-backend/internal/adapter/s3store"

	adminsvc "github.com/praxisworks/lawdesk-backend/internal/service/admin"
	clientsvc "github.com/praxisworks/lawdesk-backend/internal/service/client"
	commentsvc "github.com/praxisworks/lawdesk-backend/internal/service/comment"
	documentsvc "github.com/praxisworks/lawdesk-backend/internal/service/document"
	invitationsvc "github.com/praxisworks/lawdesk-backend/internal/service/invitation"
	invoicesvc "github.com/praxisworks/lawdesk-backend/internal/service/invoice"
	mattersvc "github.com/praxisworks/lawdesk-backend/internal/service/matter"
	orgsvc "github.com/praxisworks/lawdesk-backend/internal/service/organization"

	"github.com/praxisworks/lawdesk-backend/internal/transport/middleware"
	"github.com/praxisworks/lawdesk-backend/internal/transport/rest"
)

// Run bootstraps the full application stack and blocks until the context
// is cancelled: configuration, logger, database pool, object storage,
// repositories, services, the HTTP server, and the in-process outbox
// dispatcher.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	// 1. Infrastructure.
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)

	store, err := s3store.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("init object storage: %w", err)
	}

	// 2. Repositories.
	auditRepo := auditrepo.New(pool)
	clientRepo := clientrepo.New(pool)
	commentRepo := commentrepo.New(pool)
	documentRepo := documentrepo.New(pool)
	eventRepo := eventrepo.New(pool)
	invitationRepo := invitationrepo.New(pool)
	invoiceRepo := invoicerepo.New(pool)
	matterRepo := matterrepo.New(pool)
	membershipRepo := membershiprepo.New(pool)
	organizationRepo := orgrepo.New(pool)
	outboxRepo := outboxrepo.New(pool)

	// 3. Cross-cutting components.
	evaluator := entitlement.NewEvaluator(membershipRepo, organizationRepo)
	emitter := eventpkg.NewEmitter(logger, eventRepo, outboxRepo, txm)
	recorder := auditpkg.NewRecorder(logger, auditRepo)
	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)

	// 4. Services.
	organizationService := orgsvc.NewService(logger, organizationRepo, membershipRepo, evaluator, emitter, recorder, txm)
	clientService := clientsvc.NewService(logger, clientRepo, evaluator, emitter, recorder)
	matterService := mattersvc.NewService(logger, matterRepo, clientRepo, membershipRepo, evaluator, emitter, recorder)
	commentService := commentsvc.NewService(logger, commentRepo, matterRepo, evaluator, emitter)
	invitationService := invitationsvc.NewService(logger, invitationRepo, membershipRepo, evaluator, emitter, recorder, txm)
	invoiceService := invoicesvc.NewService(logger, invoiceRepo, matterRepo, evaluator, emitter, recorder, txm)
	documentService := documentsvc.NewService(logger, documentRepo, matterRepo, store, evaluator, emitter, recorder, cfg.Storage.MaxUploadBytes)
	adminService := adminsvc.NewService(logger, membershipRepo, clientRepo, matterRepo, invoiceRepo, outboxRepo, auditRepo, evaluator)

	// 5. HTTP transport.
	router := rest.NewRouter(rest.Handlers{
		Health:     rest.NewHealthHandler(pool, BuildVersion()),
		Org:        rest.NewOrgHandler(organizationService, logger),
		Client:     rest.NewClientHandler(clientService, logger),
		Matter:     rest.NewMatterHandler(matterService, logger),
		Comment:    rest.NewCommentHandler(commentService, logger),
		Invitation: rest.NewInvitationHandler(invitationService, logger),
		Invoice:    rest.NewInvoiceHandler(invoiceService, logger),
		Document:   rest.NewDocumentHandler(documentService, logger),
		Admin:      rest.NewAdminHandler(adminService, logger),
	})

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	defer rateLimiter.Stop()

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		rateLimiter.Limit(cfg.Server.RateLimitRPS),
		middleware.Auth(verifier),
		middleware.OrgScope(),
	)(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 6. Outbox dispatcher. Runs in-process; extra instances started via
	// the dispatcher binary stay disjoint through claim transitions.
	processor := dispatch.NewProcessor(
		logger, outboxRepo, eventRepo,
		dispatch.NewLogNotifier(logger),
		cfg.Dispatch.BatchSize, cfg.Dispatch.Interval,
	)

	dispatchCtx, stopDispatch := context.WithCancel(ctx)
	defer stopDispatch()
	go processor.Run(dispatchCtx)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	stopDispatch()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
