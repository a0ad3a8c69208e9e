package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/sandfall/internal/core"
	"github.com/vovakirdan/sandfall/internal/sand"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.SaveSession(Session{SceneID: "dunes", Cols: 10, Rows: 10, Ticks: 5})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	sessions, err := store.RecentSessions("", 10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Errorf("Expected 1 session after reopen, got %d", len(sessions))
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	want := Session{
		SceneID:     "dunes",
		Preset:      "heavy",
		Seed:        42,
		Cols:        80,
		Rows:        48,
		Ticks:       900,
		Spawned:     1200,
		Erased:      300,
		PeakActive:  1100,
		FinalActive: 900,
		Duration:    30 * time.Second,
	}
	id, err := store.SaveSession(want)
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("Expected positive ID, got %d", id)
	}

	sessions, err := store.RecentSessions("dunes", 10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("Expected 1 session, got %d", len(sessions))
	}

	got := sessions[0]
	want.ID = id
	want.CreatedAt = got.CreatedAt
	if got != want {
		t.Errorf("RecentSessions()[0] = %+v, expected %+v", got, want)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}
}

func TestStoreRecentSessionsOrderAndLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveSession(Session{SceneID: "rain", Ticks: int64(i + 1)})
	}
	store.SaveSession(Session{SceneID: "empty", Ticks: 99})

	sessions, err := store.RecentSessions("rain", 3)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("Expected 3 sessions with limit, got %d", len(sessions))
	}

	// Newest first: 5, 4, 3
	if sessions[0].Ticks != 5 || sessions[1].Ticks != 4 || sessions[2].Ticks != 3 {
		t.Errorf("Sessions not in expected order: %+v", sessions)
	}

	all, _ := store.RecentSessions("", 0)
	if len(all) != 6 {
		t.Errorf("Expected 6 sessions across scenes, got %d", len(all))
	}
	if all[0].SceneID != "empty" {
		t.Errorf("Expected newest session to be empty scene, got %q", all[0].SceneID)
	}
}

func TestStoreClearSessions(t *testing.T) {
	store := openTestStore(t)

	store.SaveSession(Session{SceneID: "dunes"})
	store.SaveSession(Session{SceneID: "dunes"})
	store.SaveSession(Session{SceneID: "rain"})

	if err := store.ClearSessions("dunes"); err != nil {
		t.Fatalf("ClearSessions() failed: %v", err)
	}

	dunes, _ := store.RecentSessions("dunes", 10)
	if len(dunes) != 0 {
		t.Errorf("Expected 0 dunes sessions after clear, got %d", len(dunes))
	}
	rain, _ := store.RecentSessions("rain", 10)
	if len(rain) != 1 {
		t.Error("Rain sessions should not be affected by clearing dunes")
	}

	if err := store.ClearSessions(""); err != nil {
		t.Fatalf("ClearSessions(\"\") failed: %v", err)
	}
	all, _ := store.RecentSessions("", 10)
	if len(all) != 0 {
		t.Errorf("Expected no sessions after clearing all, got %d", len(all))
	}
}

func TestStoreSceneStats(t *testing.T) {
	store := openTestStore(t)

	// No sessions yet
	stats, err := store.GetSceneStats("dunes")
	if err != nil {
		t.Fatalf("GetSceneStats() failed: %v", err)
	}
	if stats.Sessions != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.SaveSession(Session{SceneID: "dunes", Ticks: 100, Spawned: 50, Erased: 5, PeakActive: 40, Duration: time.Second})
	store.SaveSession(Session{SceneID: "dunes", Ticks: 200, Spawned: 70, Erased: 10, PeakActive: 90, Duration: 2 * time.Second})
	store.SaveSession(Session{SceneID: "rain", Ticks: 1000})

	stats, err = store.GetSceneStats("dunes")
	if err != nil {
		t.Fatalf("GetSceneStats() failed: %v", err)
	}
	if stats.Sessions != 2 {
		t.Errorf("Sessions = %d, expected 2", stats.Sessions)
	}
	if stats.TotalTicks != 300 || stats.TotalSpawned != 120 || stats.TotalErased != 15 {
		t.Errorf("totals = %+v", stats)
	}
	if stats.PeakActive != 90 {
		t.Errorf("PeakActive = %d, expected 90", stats.PeakActive)
	}
	if stats.TotalDuration != 3*time.Second {
		t.Errorf("TotalDuration = %s, expected 3s", stats.TotalDuration)
	}

	all, err := store.GetAllSceneStats()
	if err != nil {
		t.Fatalf("GetAllSceneStats() failed: %v", err)
	}
	if len(all) != 2 || all["rain"] == nil || all["rain"].TotalTicks != 1000 {
		t.Errorf("GetAllSceneStats() = %+v", all)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	homeStore, err := Open("~/data/sessions.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer homeStore.Close()
	if _, err := os.Stat(filepath.Join(home, "data", "sessions.db")); err != nil {
		t.Errorf("Database not created under HOME: %v", err)
	}
}

func TestSessionFromEngine(t *testing.T) {
	cfg := sand.DefaultConfig(8, 6)
	cfg.Brush.SpawnChance = 1
	e, err := sand.New(cfg, 1)
	if err != nil {
		t.Fatal(err)
	}
	e.Brush().Spawn(sand.C(4, 2), 1)
	e.Tick(core.InputFrame{}, time.Unix(0, 0))

	sess := SessionFromEngine("rain", "heavy", 9, e, time.Minute)
	if sess.SceneID != "rain" || sess.Preset != "heavy" || sess.Seed != 9 {
		t.Errorf("identity fields wrong: %+v", sess)
	}
	if sess.Cols != 8 || sess.Rows != 6 || sess.Ticks != 1 || sess.FinalActive != 4 {
		t.Errorf("engine fields wrong: %+v", sess)
	}
	if sess.Duration != time.Minute {
		t.Errorf("Duration = %s, expected 1m", sess.Duration)
	}
}
