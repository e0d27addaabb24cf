package commands

import (
	"fmt"

	"github.com/dyluth/bugbash/internal/config"
	"github.com/dyluth/bugbash/internal/creator"
	"github.com/dyluth/bugbash/internal/docstore"
	"github.com/dyluth/bugbash/internal/hub"
	"github.com/dyluth/bugbash/internal/printer"
	"github.com/dyluth/bugbash/internal/stores"
	"github.com/dyluth/bugbash/internal/wit"
	"github.com/redis/go-redis/v9"
)

// session is the wired-up state layer one CLI invocation runs against:
// configuration, document store, tracking client, hub, stores, creator.
type session struct {
	cfg       *config.Config
	docs      docstore.Store
	hub       *hub.Hub
	bashes    *stores.BugBashStore
	fields    *stores.FieldStore
	templates *stores.TemplateStore
	creator   *creator.Creator
}

// newSession loads configuration and builds the full dependency graph.
// Callers must Close() the session when done.
func newSession() (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, printer.Error(
			"failed to load configuration",
			err.Error(),
			[]string{"Create a bugbash.yml in the current directory, or pass --config <path>."},
		)
	}

	docs, err := openDocStore(cfg)
	if err != nil {
		return nil, printer.ErrorWithContext(
			"failed to open document store",
			err.Error(),
			map[string]string{"Backend": string(cfg.Storage.Backend)},
			nil,
		)
	}

	witClient, err := wit.NewRestClient(wit.Options{
		BaseURL: cfg.Tracking.BaseURL,
		Project: cfg.Scope.Project,
		Team:    cfg.Scope.Team,
		Token:   cfg.Tracking.ResolveToken(),
	})
	if err != nil {
		docs.Close()
		return nil, printer.Error("failed to build tracking client", err.Error(), nil)
	}

	h := hub.New()
	bashes := stores.NewBugBashStore(h)
	fields := stores.NewFieldStore(h)
	templates := stores.NewTemplateStore(h)

	scope := creator.Scope{ProjectID: cfg.Scope.Project, TeamID: cfg.Scope.Team}

	return &session{
		cfg:       cfg,
		docs:      docs,
		hub:       h,
		bashes:    bashes,
		fields:    fields,
		templates: templates,
		creator:   creator.New(h, bashes, fields, templates, docs, witClient, scope),
	}, nil
}

func (s *session) Close() {
	if s.docs != nil {
		s.docs.Close()
	}
}

func openDocStore(cfg *config.Config) (docstore.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		return docstore.NewRedisStore(&redis.Options{Addr: cfg.Storage.Addr}, cfg.Instance)
	case config.BackendBolt:
		return docstore.NewBoltStore(cfg.Storage.Path)
	}
	// Load() already validated the backend; this is unreachable.
	return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
}
