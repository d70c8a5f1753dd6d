package storage

import (
	"errors"
	"os"
	"testing"
	"time"

	"farmdiff/farm"
)

func TestSnapshotStore(t *testing.T) {
	// Create temporary directory for test database
	dir, err := os.MkdirTemp("", "farmdiff-test-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	store, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	inv := &farm.Inventory{
		Farm: "old-farm",
		Apps: []farm.PublishedApp{
			{Name: "Notepad", Enabled: true, Folder: "/apps"},
			{Name: "Calc", Enabled: false},
		},
	}

	first, err := store.Save(inv)
	if err != nil {
		t.Fatalf("failed to save snapshot: %v", err)
	}
	if first.ID == "" || first.Count != 2 {
		t.Errorf("unexpected snapshot metadata: %+v", first)
	}

	// A second snapshot with one app removed; keys are timestamped, so
	// make sure the clock moved.
	time.Sleep(2 * time.Millisecond)
	inv2 := &farm.Inventory{Farm: "old-farm", Apps: inv.Apps[:1]}
	second, err := store.Save(inv2)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("Latest", func(t *testing.T) {
		got, snap, err := store.Latest("old-farm")
		if err != nil {
			t.Fatal(err)
		}
		if snap.ID != second.ID {
			t.Errorf("expected latest snapshot %s, got %s", second.ID, snap.ID)
		}
		if len(got.Apps) != 1 || got.Apps[0].Name != "Notepad" {
			t.Errorf("unexpected inventory: %+v", got)
		}
	})

	t.Run("List", func(t *testing.T) {
		snaps, err := store.List("old-farm")
		if err != nil {
			t.Fatal(err)
		}
		if len(snaps) != 2 {
			t.Fatalf("expected 2 snapshots, got %d", len(snaps))
		}
		if snaps[0].ID != first.ID || snaps[1].ID != second.ID {
			t.Error("snapshots not in chronological order")
		}
	})

	t.Run("UnknownFarm", func(t *testing.T) {
		_, _, err := store.Latest("no-such-farm")
		if !errors.Is(err, ErrNoSnapshot) {
			t.Errorf("expected ErrNoSnapshot, got %v", err)
		}
		snaps, err := store.List("no-such-farm")
		if err != nil || len(snaps) != 0 {
			t.Errorf("expected empty list, got %v, %v", snaps, err)
		}
	})
}
