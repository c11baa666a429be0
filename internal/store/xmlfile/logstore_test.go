package xmlfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/hay-kot/synclog/internal/core/results"
	"github.com/hay-kot/synclog/internal/core/synclog"
)

func result(minute int, major results.MajorCode) results.Result {
	return results.Result{
		SyncTime: time.Date(2024, 1, 15, 10, minute, 0, 0, time.UTC),
		Major:    major,
	}
}

func TestLogStore_SaveAndGet(t *testing.T) {
	store := NewLogStore(filepath.Join(t.TempDir(), "logs"))
	ctx := context.Background()

	l := synclog.New("work")
	l.Record(result(1, results.MajorSuccess))
	l.Record(result(2, results.MajorFailed))

	if err := store.Save(ctx, l); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Get(ctx, "work")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if got.ProfileName() != "work" {
		t.Errorf("ProfileName = %q, want %q", got.ProfileName(), "work")
	}
	if got.Len() != 2 {
		t.Fatalf("Len = %d, want 2", got.Len())
	}
	last, _ := got.Last()
	if last.Major != results.MajorFailed {
		t.Errorf("last Major = %v, want %v", last.Major, results.MajorFailed)
	}
	best, ok := got.LastSuccessful()
	if !ok || best.SyncTime.Minute() != 1 {
		t.Errorf("LastSuccessful = %v (ok=%v), want minute 1", best.SyncTime, ok)
	}
}

func TestLogStore_PreservesEvictedSuccess(t *testing.T) {
	store := NewLogStore(t.TempDir())
	ctx := context.Background()

	l := synclog.New("work")
	l.Record(result(1, results.MajorSuccess))
	for i := 2; i <= 8; i++ {
		l.Record(result(i, results.MajorFailed))
	}

	if err := store.Save(ctx, l); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Get(ctx, "work")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if got.Len() != synclog.MaxEntries {
		t.Errorf("Len = %d, want %d", got.Len(), synclog.MaxEntries)
	}
	best, ok := got.LastSuccessful()
	if !ok || best.SyncTime.Minute() != 1 {
		t.Errorf("LastSuccessful = %v (ok=%v), want minute 1", best.SyncTime, ok)
	}
}

func TestLogStore_GetNotFound(t *testing.T) {
	store := NewLogStore(t.TempDir())

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, synclog.ErrNotFound) {
		t.Errorf("Get error = %v, want ErrNotFound", err)
	}
}

func TestLogStore_StoredName(t *testing.T) {
	dir := t.TempDir()
	store := NewLogStore(dir)
	ctx := context.Background()

	if err := store.Save(ctx, synclog.New("work")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := os.Rename(filepath.Join(dir, "work.xml"), filepath.Join(dir, "home.xml")); err != nil {
		t.Fatal(err)
	}

	name, err := store.StoredName(ctx, "home")
	if err != nil {
		t.Fatalf("StoredName failed: %v", err)
	}
	if name != "work" {
		t.Errorf("StoredName = %q, want %q", name, "work")
	}

	got, err := store.Get(ctx, "home")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ProfileName() != "home" {
		t.Errorf("ProfileName = %q, want %q", got.ProfileName(), "home")
	}

	if _, err := store.StoredName(ctx, "missing"); !errors.Is(err, synclog.ErrNotFound) {
		t.Errorf("StoredName error = %v, want ErrNotFound", err)
	}
}

func TestLogStore_GetCorrupted(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.xml"), []byte("<synclog"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewLogStore(dir).Get(context.Background(), "bad")
	if err == nil {
		t.Fatal("expected error for corrupted file")
	}
	if errors.Is(err, synclog.ErrNotFound) {
		t.Errorf("corrupted file reported as not found: %v", err)
	}
}

func TestLogStore_InvalidProfileName(t *testing.T) {
	store := NewLogStore(t.TempDir())
	ctx := context.Background()

	if err := store.Save(ctx, synclog.New("../escape")); err == nil {
		t.Error("Save with path separator should fail")
	}
	if _, err := store.Get(ctx, ""); err == nil {
		t.Error("Get with empty name should fail")
	}
}

func TestLogStore_List(t *testing.T) {
	dir := t.TempDir()
	store := NewLogStore(dir)
	ctx := context.Background()

	names, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("List = %v, want empty", names)
	}

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := store.Save(ctx, synclog.New(name)); err != nil {
			t.Fatalf("Save %s failed: %v", name, err)
		}
	}
	// Stray files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	names, err = store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("List = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("List[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestLogStore_ListMissingDir(t *testing.T) {
	store := NewLogStore(filepath.Join(t.TempDir(), "nope"))

	names, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("List = %v, want empty", names)
	}
}

func TestLogStore_Delete(t *testing.T) {
	store := NewLogStore(t.TempDir())
	ctx := context.Background()

	if err := store.Save(ctx, synclog.New("work")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Delete(ctx, "work"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "work"); !errors.Is(err, synclog.ErrNotFound) {
		t.Errorf("Get after Delete error = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, "work"); !errors.Is(err, synclog.ErrNotFound) {
		t.Errorf("second Delete error = %v, want ErrNotFound", err)
	}
}

func TestLogStore_ConcurrentSaves(t *testing.T) {
	store := NewLogStore(t.TempDir())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l := synclog.New("work")
			l.Record(result(i, results.MajorFailed))
			if err := store.Save(ctx, l); err != nil {
				t.Errorf("Save failed: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, "work")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Len() != 1 {
		t.Errorf("Len = %d, want 1", got.Len())
	}
}
