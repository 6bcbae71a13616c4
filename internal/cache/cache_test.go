package cache

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func caches(t *testing.T) map[string]Cache {
	t.Helper()
	f, err := OpenFile(filepath.Join(t.TempDir(), "cache.json"))
	if err != nil {
		t.Fatal(err)
	}
	out := map[string]Cache{
		"memory": NewMemory(),
		"file":   f,
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" && !testing.Short() {
		r, err := NewRedis(addr, "lessonsync-test:"+t.Name()+":", nil)
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { _ = r.Close() })
		out["redis"] = r
	}
	return out
}

func TestGetSet(t *testing.T) {
	for name, c := range caches(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok := c.Get("theme"); ok {
				t.Fatal("new cache should be empty")
			}
			if err := c.Set("theme", "dark"); err != nil {
				t.Fatal(err)
			}
			if err := c.Set("theme", "light"); err != nil {
				t.Fatal(err)
			}
			if v, ok := c.Get("theme"); !ok || v != "light" {
				t.Errorf("Get(theme) = %q, %v", v, ok)
			}
			if err := c.Set("empty", ""); err != nil {
				t.Fatal(err)
			}
			if v, ok := c.Get("empty"); !ok || v != "" {
				t.Errorf("an empty value is still present, got %q, %v", v, ok)
			}
		})
	}
}

func TestFilePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cache.json")

	f, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Set("savedTests", `[{"id":"1"}]`); err != nil {
		t.Fatal(err)
	}
	if err := f.Set("theme", "dark"); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := reopened.Get("savedTests"); v != `[{"id":"1"}]` {
		t.Errorf("savedTests after reopen = %q", v)
	}
	if diff := cmp.Diff([]string{"savedTests", "theme"}, reopened.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
}

func TestFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenFile(path); err == nil {
		t.Error("expected an error for a corrupt cache file")
	}
}

func TestFileConcurrentSet(t *testing.T) {
	f, err := OpenFile(filepath.Join(t.TempDir(), "cache.json"))
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = f.Set(string(rune('a'+i)), "v")
		}(i)
	}
	wg.Wait()

	reopened, err := OpenFile(f.Path())
	if err != nil {
		t.Fatal(err)
	}
	if n := len(reopened.Keys()); n != 20 {
		t.Errorf("got %d keys after concurrent sets, want 20", n)
	}
}
