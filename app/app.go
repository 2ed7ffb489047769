package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nutrishop/shop-manager/config"
	httpapi "github.com/nutrishop/shop-manager/internal/api/http"
	"github.com/nutrishop/shop-manager/internal/analytics"
	"github.com/nutrishop/shop-manager/internal/apisrv/admin"
	"github.com/nutrishop/shop-manager/internal/apisrv/auth"
	"github.com/nutrishop/shop-manager/internal/dependency"
	"github.com/nutrishop/shop-manager/internal/fixture"
	"github.com/nutrishop/shop-manager/internal/metrics"
	"github.com/nutrishop/shop-manager/internal/store"
	"github.com/nutrishop/shop-manager/internal/store/memory"
)

// Demo dataset size used by the in-memory mode.
const (
	demoSeed      = 42
	demoCustomers = 200
	demoOrders    = 1500
)

// App is the main application
type App struct {
	hs     *httpapi.Server
	db     dependency.Repository
	c      *config.Config
	memory bool
	done   chan struct{}
	once   sync.Once
}

// Option configures an App.
type Option func(*App)

// WithMemoryStore serves a generated demo dataset instead of connecting to the database.
func WithMemoryStore() Option {
	return func(a *App) {
		a.memory = true
	}
}

// New returns a new instance of App
func New(c *config.Config, opts ...Option) *App {
	a := &App{
		c:    c,
		done: make(chan struct{}),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	slog.Default().InfoContext(ctx, "starting shop manager", slog.Bool("memory", a.memory))

	var (
		ms   dependency.Metrics
		ping httpapi.Pinger
	)
	if a.memory {
		mem := memory.New()
		if err := fixture.Load(ctx, mem, fixture.Generate(time.Now(), demoSeed, demoCustomers, demoOrders)); err != nil {
			return fmt.Errorf("load demo dataset: %w", err)
		}
		ms, ping = mem, mem
	} else {
		db, err := store.New(ctx, a.c.DB)
		if err != nil {
			slog.Default().ErrorContext(ctx, "couldn't connect to database",
				slog.String("err", err.Error()),
			)
			return err
		}
		a.db = db
		ms, ping = db.Metrics(), db
	}

	engine, err := analytics.New(ms, a.c.Analytics)
	if err != nil {
		return err
	}

	authS, err := auth.New(&a.c.Auth)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed create new auth server",
			slog.String("err", err.Error()),
		)
		return err
	}

	m := metrics.New()
	adminS := admin.New(engine, m)

	// start API server
	a.hs = httpapi.New(&a.c.HTTP)
	if err = a.hs.Start(ctx, adminS, authS, m, ping); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server",
			slog.String("err", err.Error()),
		)
		return err
	}

	go func() {
		<-a.hs.Done()
		a.once.Do(func() { close(a.done) })
	}()

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.hs != nil {
		sctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := a.hs.Stop(sctx); err != nil {
			slog.Default().ErrorContext(ctx, "http server shutdown failed",
				slog.String("err", err.Error()),
			)
		}
	}
	if a.db != nil {
		a.db.Close()
	}
	a.once.Do(func() { close(a.done) })
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() <-chan struct{} {
	return a.done
}
