package runtime

import (
	"context"
	"errors"

	cfgpkg "github.com/AnshRaj112/mrpizzeria-sub000/internal/config"
	"github.com/AnshRaj112/mrpizzeria-sub000/internal/journal"
	"github.com/AnshRaj112/mrpizzeria-sub000/internal/notify"
	pebblestore "github.com/AnshRaj112/mrpizzeria-sub000/internal/storage/pebble"
	"github.com/AnshRaj112/mrpizzeria-sub000/internal/store/catalog"
	orderstore "github.com/AnshRaj112/mrpizzeria-sub000/internal/store/orders"
	logpkg "github.com/AnshRaj112/mrpizzeria-sub000/pkg/log"
)

// Options for building the Runtime.
type Options struct {
	DataDir string
	Fsync   pebblestore.FsyncMode
	Config  cfgpkg.Config
	Logger  logpkg.Logger
}

// Runtime wires storage, config, stores, and the notification hub for a
// single-node instance.
type Runtime struct {
	db      *pebblestore.DB
	config  cfgpkg.Config
	logger  logpkg.Logger
	hub     *notify.Hub
	orders  *orderstore.Store
	catalog *catalog.Store
	journal *journal.Journal
}

// Open initializes the underlying storage and returns a Runtime.
func Open(opts Options) (*Runtime, error) {
	if opts.Logger == nil {
		opts.Logger = logpkg.NewLogger()
	}
	db, err := pebblestore.Open(pebblestore.Options{DataDir: opts.DataDir, Fsync: opts.Fsync})
	if err != nil {
		return nil, err
	}
	return &Runtime{
		db:      db,
		config:  opts.Config,
		logger:  opts.Logger,
		hub:     notify.NewHub(opts.Logger),
		orders:  orderstore.New(db),
		catalog: catalog.New(db),
		journal: journal.New(db),
	}, nil
}

// Close closes underlying resources.
func (r *Runtime) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// CheckHealth performs a simple storage round trip.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.db == nil {
		return errors.New("db not open")
	}
	it, err := r.db.NewIter(nil)
	if err != nil {
		return err
	}
	return it.Close()
}

// DB exposes the underlying DB for advanced operations (internal use only).
func (r *Runtime) DB() *pebblestore.DB { return r.db }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }

// Logger returns the shared logger.
func (r *Runtime) Logger() logpkg.Logger { return r.logger }

// Hub returns the process-wide notification registry.
func (r *Runtime) Hub() *notify.Hub { return r.hub }

// OrderStore returns the order document store.
func (r *Runtime) OrderStore() *orderstore.Store { return r.orders }

// CatalogStore returns the menu catalog store.
func (r *Runtime) CatalogStore() *catalog.Store { return r.catalog }

// Journal returns the order status history journal.
func (r *Runtime) Journal() *journal.Journal { return r.journal }
