package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/localnerve/lessonsync/internal/models"
	"github.com/localnerve/lessonsync/internal/store"
)

type seqIDs struct{ n int }

func (g *seqIDs) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

// fixedClock advances one second per call.
func fixedClock() func() time.Time {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	return &Service{
		Store: store.New(store.NewFileBackend(dir)),
		IDs:   &seqIDs{},
		Clock: fixedClock(),
	}, dir
}

func TestUpsertMaterialWithoutID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	saved, err := svc.UpsertMaterial(ctx, models.CategoryPhotos, models.Item{"name": "cat.png"})
	if err != nil {
		t.Fatalf("UpsertMaterial() error: %v", err)
	}
	if saved.ID() != "id-1" {
		t.Errorf("id = %q, want id-1", saved.ID())
	}
	if saved.CreatedAt() == "" || saved.UpdatedAt() == "" {
		t.Errorf("timestamps not assigned: %#v", saved)
	}

	second, err := svc.UpsertMaterial(ctx, models.CategoryPhotos, models.Item{"name": "cat.png"})
	if err != nil {
		t.Fatal(err)
	}
	if second.ID() == saved.ID() {
		t.Error("an item without id must never replace an existing one")
	}

	items, err := svc.ListMaterials(ctx, models.CategoryPhotos)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Errorf("got %d photos, want 2", len(items))
	}
}

func TestUpsertMaterialIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.UpsertMaterial(ctx, models.CategoryTexts, models.Item{"id": "t1", "name": "old"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpsertMaterial(ctx, models.CategoryTexts, models.Item{"id": "other", "name": "x"}); err != nil {
		t.Fatal(err)
	}
	second, err := svc.UpsertMaterial(ctx, models.CategoryTexts, models.Item{"id": "t1", "name": "new", "createdAt": "1999-01-01T00:00:00.000Z"})
	if err != nil {
		t.Fatal(err)
	}

	items, _ := svc.ListMaterials(ctx, models.CategoryTexts)
	if len(items) != 2 {
		t.Fatalf("got %d texts, want 2", len(items))
	}
	if items[0].ID() != "t1" || items[0].Name() != "new" {
		t.Errorf("replacement should keep position and take new fields: %#v", items[0])
	}
	if second.CreatedAt() != first.CreatedAt() {
		t.Errorf("createdAt changed from %q to %q", first.CreatedAt(), second.CreatedAt())
	}
	if second.UpdatedAt() <= first.UpdatedAt() {
		t.Errorf("updatedAt did not advance: %q -> %q", first.UpdatedAt(), second.UpdatedAt())
	}
}

func TestUpsertMaterialClientID(t *testing.T) {
	svc, _ := newTestService(t)
	saved, err := svc.UpsertMaterial(context.Background(), models.CategoryExercises, models.Item{"id": "client-42"})
	if err != nil {
		t.Fatal(err)
	}
	if saved.ID() != "client-42" {
		t.Errorf("client supplied id should be kept, got %q", saved.ID())
	}
}

func TestMaterialsAreScopedByCategory(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.UpsertMaterial(ctx, models.CategoryPhotos, models.Item{"id": "same"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpsertMaterial(ctx, models.CategoryTexts, models.Item{"id": "same"}); err != nil {
		t.Fatal(err)
	}
	photos, _ := svc.ListMaterials(ctx, models.CategoryPhotos)
	texts, _ := svc.ListMaterials(ctx, models.CategoryTexts)
	if len(photos) != 1 || len(texts) != 1 {
		t.Errorf("photos=%d texts=%d, want 1 each", len(photos), len(texts))
	}
}

func TestDeleteMaterial(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		if _, err := svc.UpsertMaterial(ctx, models.CategoryPhotos, models.Item{"id": id}); err != nil {
			t.Fatal(err)
		}
	}
	if err := svc.DeleteMaterial(ctx, models.CategoryPhotos, "b"); err != nil {
		t.Fatal(err)
	}
	items, _ := svc.ListMaterials(ctx, models.CategoryPhotos)
	var got []string
	for _, it := range items {
		got = append(got, it.ID())
	}
	if diff := cmp.Diff([]string{"a", "c"}, got); diff != "" {
		t.Errorf("ids after delete (-want +got):\n%s", diff)
	}
}

func TestDeleteMissingIsNoop(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()

	// never written: delete must not create the file
	if err := svc.DeleteTest(ctx, "does-not-exist"); err != nil {
		t.Fatalf("DeleteTest() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "tests.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("delete on a missing document created it (stat err = %v)", err)
	}

	if _, err := svc.UpsertTest(ctx, models.Item{"name": "Unit1"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpsertMaterial(ctx, models.CategoryPhotos, models.Item{"id": "p"}); err != nil {
		t.Fatal(err)
	}

	for _, tc := range []struct {
		file string
		del  func() error
	}{
		{"tests.json", func() error { return svc.DeleteTest(ctx, "nope") }},
		{"materials.json", func() error { return svc.DeleteMaterial(ctx, models.CategoryPhotos, "nope") }},
		{"materials.json", func() error { return svc.DeleteMaterial(ctx, models.CategoryHomework, "nope") }},
	} {
		path := filepath.Join(dir, tc.file)
		before, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if err := tc.del(); err != nil {
			t.Fatalf("delete error: %v", err)
		}
		after, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(string(before), string(after)); diff != "" {
			t.Errorf("%s changed on a no-op delete (-before +after):\n%s", tc.file, diff)
		}
	}
}

func TestListOnMissingFile(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()

	tests, err := svc.ListTests(ctx)
	if err != nil || tests == nil || len(tests) != 0 {
		t.Errorf("ListTests() = %#v, %v; want empty list", tests, err)
	}
	photos, err := svc.ListMaterials(ctx, models.CategoryPhotos)
	if err != nil || photos == nil || len(photos) != 0 {
		t.Errorf("ListMaterials() = %#v, %v; want empty list", photos, err)
	}
	sel, err := svc.GetSelected(ctx, models.CategoryTexts)
	if err != nil || sel == nil || len(sel) != 0 {
		t.Errorf("GetSelected() = %#v, %v; want empty list", sel, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("reads created files: %v", entries)
	}
}

func TestUpsertTestMatchesName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.UpsertTest(ctx, models.Item{"name": "Unit1", "questions": []interface{}{"q1"}})
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.UpsertTest(ctx, models.Item{"name": "unit1", "questions": []interface{}{"q1", "q2"}})
	if err != nil {
		t.Fatal(err)
	}

	tests, _ := svc.ListTests(ctx)
	if len(tests) != 1 {
		t.Fatalf("got %d tests, want 1", len(tests))
	}
	if second.ID() != first.ID() {
		t.Errorf("name match without id should keep the stored id %q, got %q", first.ID(), second.ID())
	}
	if tests[0].Name() != "unit1" {
		t.Errorf("second write should win, name = %q", tests[0].Name())
	}
}

func TestUpsertTestNameMatchWithDifferentID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.UpsertTest(ctx, models.Item{"id": "a", "name": "Quiz"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpsertTest(ctx, models.Item{"id": "b", "name": "Other"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpsertTest(ctx, models.Item{"id": "c", "name": "QUIZ"}); err != nil {
		t.Fatal(err)
	}

	tests, _ := svc.ListTests(ctx)
	var got []string
	for _, it := range tests {
		got = append(got, it.ID()+":"+it.Name())
	}
	if diff := cmp.Diff([]string{"c:QUIZ", "b:Other"}, got); diff != "" {
		t.Errorf("tests (-want +got):\n%s", diff)
	}
}

func TestUpsertTestIDWinsOverName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.UpsertTest(ctx, models.Item{"id": "a", "name": "First"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpsertTest(ctx, models.Item{"id": "b", "name": "Second"}); err != nil {
		t.Fatal(err)
	}
	// id "b" with the name of "a": the id match decides
	if _, err := svc.UpsertTest(ctx, models.Item{"id": "b", "name": "first"}); err != nil {
		t.Fatal(err)
	}

	tests, _ := svc.ListTests(ctx)
	if len(tests) != 2 || tests[0].ID() != "a" || tests[1].ID() != "b" || tests[1].Name() != "first" {
		t.Errorf("unexpected tests: %#v", tests)
	}
}

func TestSelectedReplacesWholeList(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.SetSelected(ctx, models.CategoryPhotos, []models.Item{{"id": "1"}, {"id": "2"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SetSelected(ctx, models.CategoryPhotos, []models.Item{{"id": "3"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SetSelected(ctx, models.CategoryTexts, []models.Item{{"id": "t"}}); err != nil {
		t.Fatal(err)
	}

	photos, _ := svc.GetSelected(ctx, models.CategoryPhotos)
	if len(photos) != 1 || photos[0].ID() != "3" {
		t.Errorf("photos selection = %#v, want only id 3", photos)
	}
	texts, _ := svc.GetSelected(ctx, models.CategoryTexts)
	if len(texts) != 1 {
		t.Errorf("texts selection = %#v", texts)
	}
}

func TestSingletonDefaults(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		one  Singleton
		want models.Record
	}{
		{Homework, models.Record{"content": ""}},
		{Whiteboard, models.Record{"drawing": nil}},
		{Preferences, models.Record{}},
		{Progress, models.Record{}},
	}
	for _, tt := range tests {
		t.Run(tt.one.Document, func(t *testing.T) {
			got, err := svc.GetRecord(ctx, tt.one)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("default (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSetRecordReplaces(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.SetRecord(ctx, Preferences, models.Record{"theme": "dark", "animation": "on"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.SetRecord(ctx, Preferences, models.Record{"theme": "light"})
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.GetRecord(ctx, Preferences)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got["animation"]; ok {
		t.Errorf("set should replace the whole record, got %#v", got)
	}
	if got["theme"] != "light" {
		t.Errorf("theme = %v, want light", got["theme"])
	}
	if second["updatedAt"].(string) <= first["updatedAt"].(string) {
		t.Errorf("updatedAt did not advance")
	}
}

func TestHealthCheck(t *testing.T) {
	svc, _ := newTestService(t)
	if res := svc.HealthCheck(context.Background()); res.Status != "ok" {
		t.Errorf("HealthCheck() = %#v", res)
	}
}
