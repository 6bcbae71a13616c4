package store

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/localnerve/lessonsync/internal/testdb"
)

// TestWithMariaDB runs the database backend against a real MariaDB container.
// Set DB_IMAGE (e.g. mariadb:11) to enable it.
func TestWithMariaDB(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	image := os.Getenv("DB_IMAGE")
	if image == "" {
		t.Skip("DB_IMAGE not set")
	}

	ctx := context.Background()

	mariadb, err := testdb.StartMariaDB(ctx, image)
	if err != nil {
		t.Fatalf("Failed to start MariaDB container: %v", err)
	}
	defer func() {
		if err := mariadb.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate MariaDB container: %v", err)
		}
	}()
	cfg := mariadb.Config()

	// the port opens before the server accepts logins
	var (
		st      *Store
		closeFn func() error
	)
	for i := 0; i < 30; i++ {
		st, closeFn, err = Open(cfg)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		t.Fatalf("Failed to open database store: %v", err)
	}
	defer closeFn()

	// missing document falls back
	doc := map[string][]int{"seen": {}}
	if err := st.Read(ctx, "tests", &doc); err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if len(doc["seen"]) != 0 {
		t.Errorf("fallback changed: %v", doc)
	}

	// concurrent updates all land
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d := map[string][]int{}
			err := st.Update(ctx, "tests", &d, func() (bool, error) {
				if d == nil {
					d = map[string][]int{}
				}
				d["seen"] = append(d["seen"], i)
				return true, nil
			})
			if err != nil {
				t.Errorf("Update() error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	got := map[string][]int{}
	if err := st.Read(ctx, "tests", &got); err != nil {
		t.Fatal(err)
	}
	if len(got["seen"]) != 20 {
		t.Errorf("got %d entries, want 20", len(got["seen"]))
	}
}
