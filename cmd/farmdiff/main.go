package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"farmdiff/farm"
	"farmdiff/reconcile"
	"farmdiff/relation"
	"farmdiff/storage"
)

func main() {
	var oldFile, newFile string
	var oldFarm, newFarm string
	var dbPath string
	var save, cached bool
	var modeStr, suffix string
	var noColor, raw bool

	flag.StringVar(&oldFile, "old", "", "old farm snapshot file (.json or .csv)")
	flag.StringVar(&newFile, "new", "", "new farm snapshot file (.json or .csv)")
	flag.StringVar(&oldFarm, "old-farm", "old", "old farm name")
	flag.StringVar(&newFarm, "new-farm", "new", "new farm name")
	flag.StringVar(&dbPath, "db", "", "snapshot cache directory (badger)")
	flag.BoolVar(&save, "save", false, "cache loaded inventories in the snapshot store")
	flag.BoolVar(&cached, "cached", false, "fall back to the latest cached snapshot when a file is not given")
	flag.StringVar(&modeStr, "mode", "FullOuter", "join mode: LeftOuter, RightOuter, Inner, FullOuter")
	flag.StringVar(&suffix, "suffix", "_new", "column suffix for the new farm's fields")
	flag.BoolVar(&noColor, "no-color", false, "disable colored output")
	flag.BoolVar(&raw, "raw", false, "also print the raw joined table")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Reconciles published applications between two farm inventories.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -old xa65.json -new xa76.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -old xa65.csv -new xa76.json -db ./cache -save\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -new xa76.json -db ./cache -cached   # old farm from cache\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -old a.json -new b.json -mode Inner  # matched apps only\n", os.Args[0])
	}
	flag.Parse()

	mode, err := relation.ParseMode(modeStr)
	if err != nil {
		log.Fatalf("Invalid mode: %v", err)
	}

	var store *storage.SnapshotStore
	if dbPath != "" {
		store, err = storage.Open(dbPath)
		if err != nil {
			log.Fatalf("Failed to open snapshot store: %v", err)
		}
		defer store.Close()
	}

	oldInv := loadInventory(oldFarm, oldFile, store, cached, save)
	newInv := loadInventory(newFarm, newFile, store, cached, save)

	r := &reconcile.Reconciler{Mode: mode, NewSuffix: suffix}
	report, err := r.Run(oldInv, newInv)
	if err != nil {
		log.Fatalf("Reconciliation failed: %v", err)
	}

	report.Render(os.Stdout, !noColor)

	if raw {
		fmt.Println()
		relation.PrintResult(report.Joined)
	}
}

// loadInventory reads a farm inventory from a snapshot file, falling
// back to the cache when allowed. Loaded files are cached when -save is
// set.
func loadInventory(farmName, file string, store *storage.SnapshotStore, cached, save bool) *farm.Inventory {
	if file == "" {
		if !cached || store == nil {
			log.Fatalf("No snapshot file for farm %s (use -cached with -db to read the cache)", farmName)
		}
		inv, snap, err := store.Latest(farmName)
		if err != nil {
			log.Fatalf("Failed to load cached snapshot for %s: %v", farmName, err)
		}
		log.Printf("Using cached snapshot of %s from %s (%d apps)", farmName, snap.TakenAt.Format("2006-01-02 15:04:05"), snap.Count)
		return inv
	}

	src, err := farm.FromFile(farmName, file)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", file, err)
	}
	inv, err := src.Load()
	if err != nil {
		log.Fatalf("Failed to load %s: %v", file, err)
	}

	if save && store != nil {
		snap, err := store.Save(inv)
		if err != nil {
			log.Fatalf("Failed to cache snapshot for %s: %v", farmName, err)
		}
		log.Printf("Cached snapshot %s of %s (%d apps)", snap.ID, farmName, snap.Count)
	}
	return inv
}
