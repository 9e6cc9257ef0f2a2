package serverrun

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	cfgpkg "github.com/AnshRaj112/mrpizzeria-sub000/internal/config"
	"github.com/AnshRaj112/mrpizzeria-sub000/internal/runtime"
	httpserver "github.com/AnshRaj112/mrpizzeria-sub000/internal/server/http"
	catalogsvc "github.com/AnshRaj112/mrpizzeria-sub000/internal/services/catalog"
	ordersvc "github.com/AnshRaj112/mrpizzeria-sub000/internal/services/orders"
	pebblestore "github.com/AnshRaj112/mrpizzeria-sub000/internal/storage/pebble"
	logpkg "github.com/AnshRaj112/mrpizzeria-sub000/pkg/log"
)

func getenvDefault(key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

// small wrapper to allow testing; replaced by os.Getenv at build time
var getenv = func(key string) string { return os.Getenv(key) }

// Options configures a server run.
type Options struct {
	DataDir  string
	HTTPAddr string
	Fsync    pebblestore.FsyncMode
	Config   cfgpkg.Config
}

// Run starts the HTTP server and blocks until ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	// Layer a local signal context over the provided one so callers that
	// don't pass a signal-aware context still get clean shutdown.
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.DataDir == "" {
		opts.DataDir = cfgpkg.DefaultDataDir()
	}
	storeDir := filepath.Join(opts.DataDir, "store")

	logCfg := &logpkg.Config{
		Level:  getenvDefault("PIZZERIA_LOG_LEVEL", "info"),
		Format: getenvDefault("PIZZERIA_LOG_FORMAT", "text"),
	}
	procLogger, err := logpkg.ApplyConfig(logCfg)
	if err != nil {
		procLogger = logpkg.NewLogger(logpkg.WithFormatter(&logpkg.TextFormatter{}))
	}

	// Redirect stdlib logs (Pebble uses them) to our logger.
	logpkg.RedirectStdLog(procLogger)

	rt, err := runtime.Open(runtime.Options{
		DataDir: storeDir,
		Fsync:   opts.Fsync,
		Config:  opts.Config,
		Logger:  procLogger,
	})
	if err != nil {
		return err
	}
	defer rt.Close()

	procLogger.Info("starting mrpizzeria server",
		logpkg.Str("http", opts.HTTPAddr),
		logpkg.Str("data_dir", opts.DataDir),
		logpkg.Str("level", logCfg.Level),
		logpkg.Str("format", logCfg.Format),
		logpkg.Bool("strict_status_flow", opts.Config.StrictStatusFlow),
		logpkg.Int("subscriber_buffer", opts.Config.SubscriberBuffer),
	)

	ordersSvc := ordersvc.New(rt.OrderStore(), rt.CatalogStore(), rt.Journal(), rt.Hub(), ordersvc.Options{
		StrictStatusFlow: opts.Config.StrictStatusFlow,
		DefaultListLimit: opts.Config.DefaultListLimit,
	}, procLogger)
	catSvc := catalogsvc.New(rt.CatalogStore(), procLogger)
	hsrv := httpserver.New(rt, ordersSvc, catSvc)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := hsrv.ListenAndServe(sctx, opts.HTTPAddr); err != nil && sctx.Err() == nil {
			procLogger.Error("http server error", logpkg.Err(err))
		}
	}()

	<-sctx.Done()
	// Shut the server down before closing the runtime/DB to avoid races.
	hsrv.Close()
	wg.Wait()
	return nil
}
