package syncer

import (
	"context"

	"github.com/localnerve/lessonsync/internal/models"
	"github.com/localnerve/lessonsync/internal/progress"
)

// The operations below are what the app's features call. Each writes the
// local cache first, so the change survives without a server, and then
// pushes it. A failed push is logged and picked up by the next sync pass.

// SaveMaterial stores item under cat, assigning an id when it has none.
func (e *Engine) SaveMaterial(ctx context.Context, cat models.Category, item models.Item) (models.Item, error) {
	item = item.Clone()
	if item.ID() == "" {
		item["id"] = e.newID()
	}

	e.localMu.Lock()
	items, err := e.Local.Materials(cat)
	if err == nil {
		if idx := models.IndexByID(items, item.ID()); idx >= 0 {
			items[idx] = item
		} else {
			items = append(items, item)
		}
		err = e.Local.SetMaterials(cat, items)
	}
	e.localMu.Unlock()
	if err != nil {
		return nil, err
	}

	if _, ok := e.Client.SaveMaterial(ctx, cat, item); !ok {
		e.Log.Info("material kept locally", "category", cat, "id", item.ID())
	}
	return item, nil
}

// DeleteMaterial removes a material locally and on the server.
func (e *Engine) DeleteMaterial(ctx context.Context, cat models.Category, id string) error {
	e.localMu.Lock()
	items, err := e.Local.Materials(cat)
	if err == nil {
		if filtered, removed := models.RemoveByID(items, id); removed {
			err = e.Local.SetMaterials(cat, filtered)
		}
	}
	e.localMu.Unlock()
	if err != nil {
		return err
	}

	if !e.Client.DeleteMaterial(ctx, cat, id) {
		e.Log.Info("material delete not propagated", "category", cat, "id", id)
	}
	return nil
}

// SaveSelected replaces the selection for cat.
func (e *Engine) SaveSelected(ctx context.Context, cat models.Category, items []models.Item) error {
	if err := e.Local.SetSelected(cat, items); err != nil {
		return err
	}
	if !e.Client.SaveSelected(ctx, cat, nonNil(items)) {
		e.Log.Info("selection kept locally", "category", cat)
	}
	return nil
}

// SaveTest stores a test, replacing one with the same id or else the same
// name.
func (e *Engine) SaveTest(ctx context.Context, test models.Item) (models.Item, error) {
	test = test.Clone()

	e.localMu.Lock()
	tests, err := e.Local.Tests()
	if err == nil {
		idx := models.IndexByID(tests, test.ID())
		if idx < 0 {
			idx = models.IndexByName(tests, test)
		}
		if test.ID() == "" {
			if idx >= 0 && tests[idx].ID() != "" {
				test["id"] = tests[idx]["id"]
			} else {
				test["id"] = e.newID()
			}
		}
		if idx >= 0 {
			tests[idx] = test
		} else {
			tests = append(tests, test)
		}
		err = e.Local.SetTests(tests)
	}
	e.localMu.Unlock()
	if err != nil {
		return nil, err
	}

	if _, ok := e.Client.SaveTest(ctx, test); !ok {
		e.Log.Info("test kept locally", "id", test.ID())
	}
	return test, nil
}

// DeleteTest removes a test locally and on the server.
func (e *Engine) DeleteTest(ctx context.Context, id string) error {
	e.localMu.Lock()
	tests, err := e.Local.Tests()
	if err == nil {
		if filtered, removed := models.RemoveByID(tests, id); removed {
			err = e.Local.SetTests(filtered)
		}
	}
	e.localMu.Unlock()
	if err != nil {
		return err
	}

	if !e.Client.DeleteTest(ctx, id) {
		e.Log.Info("test delete not propagated", "id", id)
	}
	return nil
}

// SaveHomework stores the homework text.
func (e *Engine) SaveHomework(ctx context.Context, content string) error {
	if err := e.Local.SetHomework(content); err != nil {
		return err
	}
	if !e.Client.SaveHomework(ctx, content) {
		e.Log.Info("homework kept locally")
	}
	return nil
}

// SaveWhiteboard stores the encoded drawing.
func (e *Engine) SaveWhiteboard(ctx context.Context, drawing string) error {
	if err := e.Local.SetWhiteboard(drawing); err != nil {
		return err
	}
	if !e.Client.SaveWhiteboard(ctx, drawing) {
		e.Log.Info("whiteboard kept locally")
	}
	return nil
}

// SavePreferences stores the theme and background animation.
func (e *Engine) SavePreferences(ctx context.Context, theme, animation string) error {
	if err := e.Local.SetTheme(theme); err != nil {
		return err
	}
	if err := e.Local.SetAnimation(animation); err != nil {
		return err
	}
	if _, ok := e.Client.SaveRecord(ctx, models.DocPreferences, preferencesRecord(theme, animation)); !ok {
		e.Log.Info("preferences kept locally")
	}
	return nil
}

// SaveProgress evaluates achievements, stores the record and pushes it. It
// returns the stored record and the achievements it newly unlocked.
func (e *Engine) SaveProgress(ctx context.Context, rec models.Record) (models.Record, []string, error) {
	rec, unlocked, err := progress.Unlock(e.evaluator(), rec)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		rec = models.Record{}
	}

	e.localMu.Lock()
	err = e.Local.SetProgress(rec)
	e.localMu.Unlock()
	if err != nil {
		return nil, nil, err
	}

	if _, ok := e.Client.SaveRecord(ctx, models.DocProgress, rec); !ok {
		e.Log.Info("progress kept locally")
	}
	return rec, unlocked, nil
}
