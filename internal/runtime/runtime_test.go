package runtime

import (
	"context"
	"testing"

	cfgpkg "github.com/AnshRaj112/mrpizzeria-sub000/internal/config"
	pebblestore "github.com/AnshRaj112/mrpizzeria-sub000/internal/storage/pebble"
)

func TestOpenAndHealth(t *testing.T) {
	rt, err := Open(Options{
		DataDir: t.TempDir(),
		Fsync:   pebblestore.FsyncModeNever,
		Config:  cfgpkg.Default(),
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rt.Close()

	if err := rt.CheckHealth(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
	if rt.Hub() == nil || rt.OrderStore() == nil || rt.CatalogStore() == nil || rt.Journal() == nil {
		t.Fatal("runtime facades not wired")
	}
	if rt.Config().SubscriberBuffer != cfgpkg.Default().SubscriberBuffer {
		t.Fatal("config not carried")
	}
}
