package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/abhisek/careerfit/internal/assessment"
	"github.com/abhisek/careerfit/internal/catalog"
	"github.com/abhisek/careerfit/internal/config"
	"github.com/abhisek/careerfit/internal/logging"
	"github.com/abhisek/careerfit/internal/metrics"
	"github.com/abhisek/careerfit/internal/store"
)

// env holds the dependencies built for one command invocation.
type env struct {
	cfg     config.Config
	log     *slog.Logger
	catalog catalog.Catalog
	store   *store.Store
	reg     *prometheus.Registry
	svc     *assessment.Service

	dumpMetrics bool
}

// loadConfig resolves configuration for cmd and builds its logger.
func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr()), nil
}

// openCatalog returns the configured catalog behind an LRU cache.
func openCatalog(cfg config.Config) (catalog.Catalog, error) {
	var src catalog.Catalog = catalog.MustSeed()
	if cfg.Catalog != "" {
		s, err := catalog.Open(cfg.Catalog)
		if err != nil {
			return nil, fmt.Errorf("open catalog: %w", err)
		}
		src = s
	}
	return catalog.NewCached(src, cfg.CacheSize)
}

// catalogOnly builds the catalog without opening the database.
func catalogOnly(cmd *cobra.Command) (catalog.Catalog, error) {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return openCatalog(cfg)
}

// setup opens the store, catalog and metrics and builds the assessment
// service. Callers must Close the returned env.
func setup(cmd *cobra.Command) (*env, error) {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	cat, err := openCatalog(cfg)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	reg := prometheus.NewRegistry()
	m, err := metrics.New(cfg.Metrics.Namespace, reg)
	if err != nil {
		st.Close()
		return nil, err
	}

	svc := assessment.NewService(cat, assessment.ReposFrom(st), assessment.Options{
		Metrics: m,
		Logger:  log,
		TopN:    cfg.TopN,
	})
	dump, _ := cmd.Flags().GetBool("metrics")
	log.Debug("store opened", "path", dbPath)
	return &env{
		cfg:         cfg,
		log:         log,
		catalog:     cat,
		store:       st,
		reg:         reg,
		svc:         svc,
		dumpMetrics: dump,
	}, nil
}

// Close releases the store and prints metrics when requested.
func (e *env) Close() {
	if e.dumpMetrics {
		if mfs, err := e.reg.Gather(); err == nil {
			for _, mf := range mfs {
				expfmt.MetricFamilyToText(os.Stderr, mf)
			}
		}
	}
	if err := e.store.Close(); err != nil {
		e.log.Warn("close store", "error", err)
	}
}

// resolveDBPath returns the configured database path (from --db, config
// or CAREERFIT_DB), falling back to the default XDG path.
func resolveDBPath(p string) (string, error) {
	if p == "" {
		var err error
		if p, err = store.DefaultDBPath(); err != nil {
			return "", err
		}
	}
	return p, store.EnsureDir(p)
}
