package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"notch-chatbot/internal/common/aws"
	"notch-chatbot/internal/common/config"
	"notch-chatbot/internal/common/database"
	"notch-chatbot/internal/common/email"
	"notch-chatbot/internal/common/logger"
	"notch-chatbot/internal/common/observability"
	"notch-chatbot/internal/knowledge"
	blogposts "notch-chatbot/internal/tools/blog-posts"
	knowledgequery "notch-chatbot/internal/tools/knowledge-query"
	sendoffer "notch-chatbot/internal/tools/send-offer"
	"notch-chatbot/pkg/registry"
)

// app holds everything the commands share: config, logging, the loaded
// knowledge base and the tool registry.
type app struct {
	cfg      *config.Config
	zap      *zap.Logger
	log      logger.Logger
	obs      *observability.Observability
	store    *knowledge.Store
	registry *registry.Registry
	offers   *sendoffer.Service
	closers  []func() error
	metrics  *http.Server
}

func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.LoadFromFile(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}
	if dataDir != "" {
		cfg.Knowledge.Source = "files"
		cfg.Knowledge.DataDir = dataDir
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	return cfg, nil
}

// newApp loads config and the knowledge base and registers every tool.
// Knowledge base load errors are fatal.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	a := &app{
		cfg: cfg,
		zap: zapLog,
		log: logger.NewZapAdapter(zapLog),
		obs: observability.New(cfg.App.Name),
	}

	src, err := a.knowledgeSource(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.store, err = knowledge.Open(ctx, src)
	if err != nil {
		a.Close()
		return nil, err
	}
	for _, issue := range knowledge.Check(a.store.Snapshot()) {
		a.log.Warn("Knowledge base consistency issue", map[string]interface{}{
			"kind":       string(issue.Kind),
			"collection": issue.Collection,
			"id":         issue.ID,
			"reference":  issue.Reference,
		})
	}

	if err := a.registerTools(ctx); err != nil {
		a.Close()
		return nil, err
	}
	a.startMetrics()
	return a, nil
}

func (a *app) knowledgeSource(ctx context.Context) (knowledge.Source, error) {
	if a.cfg.Knowledge.Source != "postgres" {
		return knowledge.NewDirSource(a.cfg.Knowledge.DataDir), nil
	}
	pg, err := database.NewPostgres(ctx, a.cfg.Database.Postgres)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, pg.Close)
	return knowledge.NewPostgresSource(pg), nil
}

func (a *app) registerTools(ctx context.Context) error {
	a.registry = registry.New(a.cfg.App.Version, a.log)

	if err := knowledgequery.Register(a.registry, knowledge.NewQuery(a.store), knowledgequery.ServiceDependencies{Logger: a.log}); err != nil {
		return err
	}

	blogCfg := blogposts.FromAppConfig(a.cfg.Blog)
	if err := blogCfg.Validate(); err != nil {
		return fmt.Errorf("blog config: %w", err)
	}
	blog := blogposts.NewService(blogposts.ServiceDependencies{Logger: a.log}, blogCfg)
	if err := a.registry.Register(blogposts.NewHandler(blog).Tool()); err != nil {
		return err
	}

	offerCfg := sendoffer.FromAppConfig(a.cfg.Email)
	if err := offerCfg.Validate(); err != nil {
		return fmt.Errorf("email config: %w", err)
	}
	mailer, err := a.mailer(ctx)
	if err != nil {
		return err
	}
	a.offers = sendoffer.NewService(sendoffer.ServiceDependencies{
		Logger:        a.log,
		Mailer:        mailer,
		Observability: a.obs,
	}, offerCfg)
	return a.registry.Register(sendoffer.NewHandler(a.offers).Tool())
}

// mailer returns nil for SendGrid, which the offer service builds itself.
func (a *app) mailer(ctx context.Context) (email.Mailer, error) {
	if a.cfg.Email.Provider != sendoffer.ProviderSES {
		return nil, nil
	}
	m, err := aws.NewSESMailer(ctx, a.cfg.Email.SES.Region)
	if err != nil {
		return nil, fmt.Errorf("ses mailer: %w", err)
	}
	return m, nil
}

func (a *app) startMetrics() {
	if a.cfg.Metrics.Address == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	a.metrics = &http.Server{Addr: a.cfg.Metrics.Address, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		a.log.Info("Metrics server listening", map[string]interface{}{"address": a.cfg.Metrics.Address})
		if err := a.metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("Metrics server failed", map[string]interface{}{"error": err.Error()})
		}
	}()
}

func (a *app) Close() {
	if a.metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = a.metrics.Shutdown(ctx)
		cancel()
	}
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.log.Warn("Close failed", map[string]interface{}{"error": err.Error()})
		}
	}
	a.obs.Shutdown()
	_ = a.zap.Sync()
}
