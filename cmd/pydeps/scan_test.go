package main

import (
	"path/filepath"
	"testing"

	"pydeps/internal/config"
)

func TestHistoryDBPath(t *testing.T) {
	cfg := config.DefaultConfig()

	scanDB = ""
	want := filepath.Join("/proj", ".pydeps", "history.db")
	if got := historyDBPath(cfg, "/proj"); got != want {
		t.Errorf("historyDBPath = %q, want %q", got, want)
	}

	scanDB = filepath.Join(t.TempDir(), "custom.db")
	defer func() { scanDB = "" }()
	if got := historyDBPath(cfg, "/proj"); got != scanDB {
		t.Errorf("historyDBPath with --db = %q, want %q", got, scanDB)
	}
}
