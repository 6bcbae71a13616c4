// engine.go
//
// A file-backed document store and offline sync service for the lessonsync learning platform
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of lessonsync.
// lessonsync is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// lessonsync is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with lessonsync.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/localnerve/lessonsync/internal/ids"
	"github.com/localnerve/lessonsync/internal/logger"
	"github.com/localnerve/lessonsync/internal/models"
	"github.com/localnerve/lessonsync/internal/progress"
	"golang.org/x/sync/singleflight"
)

// Sync phases
const (
	PhasePull = "pull"
	PhasePush = "push"
)

var errRequest = errors.New("server request failed")

// Result is the outcome of one entity in one phase.
type Result struct {
	Entity string `json:"entity"`
	Phase  string `json:"phase"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
}

// Report collects the outcome of a sync pass. Online is only set by Run,
// when the health probe succeeded.
type Report struct {
	Online   bool     `json:"online"`
	Results  []Result `json:"results"`
	Unlocked []string `json:"unlocked,omitempty"`
}

func (r *Report) add(entity, phase string, err error) {
	res := Result{Entity: entity, Phase: phase, OK: err == nil}
	if err != nil {
		res.Error = err.Error()
	}
	r.Results = append(r.Results, res)
}

// Failed returns the results that did not succeed.
func (r *Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK {
			out = append(out, res)
		}
	}
	return out
}

// Engine pulls server state into the local cache and pushes local state to
// the server. Sync passes never overlap; concurrent Run calls share the pass
// in flight.
type Engine struct {
	Client       *Client
	Local        *Local
	IDs          ids.Generator
	Achievements progress.Evaluator
	Log          *logger.Logger

	mu      sync.Mutex // one pass at a time
	localMu sync.Mutex // local read-modify-write
	group   singleflight.Group
}

// NewEngine creates an Engine with the default id generator and achievement
// rules.
func NewEngine(client *Client, local *Local, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.NewNop()
	}
	return &Engine{
		Client:       client,
		Local:        local,
		IDs:          ids.Default,
		Achievements: progress.Rules{},
		Log:          log.With("service", "SyncEngine"),
	}
}

func (e *Engine) newID() string {
	if e.IDs == nil {
		return ids.Default.NewID()
	}
	return e.IDs.NewID()
}

func (e *Engine) evaluator() progress.Evaluator {
	if e.Achievements == nil {
		return progress.Rules{}
	}
	return e.Achievements
}

// Run checks the server's health and, when it answers, pulls and then
// pushes. An unreachable server leaves the cache untouched.
func (e *Engine) Run(ctx context.Context) *Report {
	v, _, _ := e.group.Do("sync", func() (interface{}, error) {
		e.mu.Lock()
		defer e.mu.Unlock()

		rep := &Report{}
		if !e.Client.CheckHealth(ctx) {
			e.Log.Info("server unreachable, keeping local state")
			return rep, nil
		}
		rep.Online = true
		e.pull(ctx, rep)
		e.push(ctx, rep)
		e.logReport("sync", rep)
		return rep, nil
	})
	return v.(*Report)
}

// LoadFromBackend merges server state into the local cache.
func (e *Engine) LoadFromBackend(ctx context.Context) *Report {
	e.mu.Lock()
	defer e.mu.Unlock()

	rep := &Report{}
	e.pull(ctx, rep)
	e.logReport("load", rep)
	return rep
}

// SyncToBackend pushes the local cache to the server. Nothing is deleted on
// the server.
func (e *Engine) SyncToBackend(ctx context.Context) *Report {
	e.mu.Lock()
	defer e.mu.Unlock()

	rep := &Report{}
	e.push(ctx, rep)
	e.logReport("push", rep)
	return rep
}

func (e *Engine) logReport(pass string, rep *Report) {
	failed := rep.Failed()
	if len(failed) == 0 {
		e.Log.Info("sync pass completed", "pass", pass, "entities", len(rep.Results))
		return
	}
	for _, res := range failed {
		e.Log.Warn("sync entity failed", "pass", pass, "entity", res.Entity, "phase", res.Phase, "error", res.Error)
	}
}

func (e *Engine) pull(ctx context.Context, rep *Report) {
	for _, cat := range models.Categories {
		rep.add("materials/"+string(cat), PhasePull, e.pullMaterials(ctx, cat))
	}
	for _, cat := range models.Categories {
		rep.add("selected/"+string(cat), PhasePull, e.pullSelected(ctx, cat))
	}
	rep.add(models.DocHomework, PhasePull, e.pullHomework(ctx))
	rep.add(models.DocTests, PhasePull, e.pullTests(ctx))
	rep.add(models.DocWhiteboard, PhasePull, e.pullWhiteboard(ctx))
	rep.add(models.DocPreferences, PhasePull, e.pullPreferences(ctx))

	unlocked, err := e.pullProgress(ctx)
	rep.add(models.DocProgress, PhasePull, err)
	rep.Unlocked = append(rep.Unlocked, unlocked...)
}

func (e *Engine) pullMaterials(ctx context.Context, cat models.Category) error {
	server, ok := e.Client.GetMaterials(ctx, cat)
	if !ok {
		return errRequest
	}
	if len(server) == 0 {
		return nil
	}

	e.localMu.Lock()
	defer e.localMu.Unlock()
	local, err := e.Local.Materials(cat)
	if err != nil {
		return err
	}
	return e.Local.SetMaterials(cat, MergeList(server, local))
}

func (e *Engine) pullSelected(ctx context.Context, cat models.Category) error {
	server, ok := e.Client.GetSelected(ctx, cat)
	if !ok {
		return errRequest
	}
	if len(server) == 0 {
		return nil
	}
	return e.Local.SetSelected(cat, server)
}

func (e *Engine) pullHomework(ctx context.Context) error {
	content, ok := e.Client.GetHomework(ctx)
	if !ok {
		return errRequest
	}
	if content == "" {
		return nil
	}
	return e.Local.SetHomework(content)
}

func (e *Engine) pullTests(ctx context.Context) error {
	server, ok := e.Client.GetTests(ctx)
	if !ok {
		return errRequest
	}
	if len(server) == 0 {
		return nil
	}

	e.localMu.Lock()
	defer e.localMu.Unlock()
	local, err := e.Local.Tests()
	if err != nil {
		return err
	}
	return e.Local.SetTests(MergeTests(server, local))
}

func (e *Engine) pullWhiteboard(ctx context.Context) error {
	drawing, ok := e.Client.GetWhiteboard(ctx)
	if !ok {
		return errRequest
	}
	if drawing == "" {
		return nil
	}
	return e.Local.SetWhiteboard(drawing)
}

func (e *Engine) pullPreferences(ctx context.Context) error {
	prefs, ok := e.Client.GetRecord(ctx, models.DocPreferences)
	if !ok {
		return errRequest
	}
	if theme, _ := prefs["theme"].(string); theme != "" {
		if err := e.Local.SetTheme(theme); err != nil {
			return err
		}
	}
	if animation, _ := prefs["animation"].(string); animation != "" {
		if err := e.Local.SetAnimation(animation); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) pullProgress(ctx context.Context) ([]string, error) {
	server, ok := e.Client.GetRecord(ctx, models.DocProgress)
	if !ok {
		return nil, errRequest
	}
	if len(server) == 0 {
		return nil, nil
	}

	e.localMu.Lock()
	defer e.localMu.Unlock()
	local, err := e.Local.Progress()
	if err != nil {
		return nil, err
	}
	merged, unlocked, err := progress.Unlock(e.evaluator(), MergeRecord(local, server))
	if err != nil {
		return nil, err
	}
	return unlocked, e.Local.SetProgress(merged)
}

func (e *Engine) push(ctx context.Context, rep *Report) {
	for _, cat := range models.Categories {
		rep.add("materials/"+string(cat), PhasePush, e.pushItems(func() ([]models.Item, error) {
			return e.Local.Materials(cat)
		}, func(item models.Item) bool {
			_, ok := e.Client.SaveMaterial(ctx, cat, item)
			return ok
		}))
	}
	for _, cat := range models.Categories {
		rep.add("selected/"+string(cat), PhasePush, e.pushSelected(ctx, cat))
	}
	rep.add(models.DocHomework, PhasePush, e.pushString(e.Local.Homework(), func(v string) bool {
		return e.Client.SaveHomework(ctx, v)
	}))
	rep.add(models.DocTests, PhasePush, e.pushItems(e.Local.Tests, func(item models.Item) bool {
		_, ok := e.Client.SaveTest(ctx, item)
		return ok
	}))
	rep.add(models.DocWhiteboard, PhasePush, e.pushString(e.Local.Whiteboard(), func(v string) bool {
		return e.Client.SaveWhiteboard(ctx, v)
	}))
	rep.add(models.DocPreferences, PhasePush, e.pushPreferences(ctx))
	rep.add(models.DocProgress, PhasePush, e.pushProgress(ctx))
}

// pushItems upserts every local item; one failed item does not stop the rest
func (e *Engine) pushItems(load func() ([]models.Item, error), save func(models.Item) bool) error {
	items, err := load()
	if err != nil {
		return err
	}
	failed := 0
	for _, item := range items {
		if !save(item) {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d items: %w", failed, len(items), errRequest)
	}
	return nil
}

func (e *Engine) pushString(value string, save func(string) bool) error {
	if value == "" {
		return nil
	}
	if !save(value) {
		return errRequest
	}
	return nil
}

func (e *Engine) pushSelected(ctx context.Context, cat models.Category) error {
	items, err := e.Local.Selected(cat)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	if !e.Client.SaveSelected(ctx, cat, items) {
		return errRequest
	}
	return nil
}

func (e *Engine) pushPreferences(ctx context.Context) error {
	theme, animation := e.Local.Theme(), e.Local.Animation()
	if theme == "" && animation == "" {
		return nil
	}
	if _, ok := e.Client.SaveRecord(ctx, models.DocPreferences, preferencesRecord(theme, animation)); !ok {
		return errRequest
	}
	return nil
}

func (e *Engine) pushProgress(ctx context.Context) error {
	rec, err := e.Local.Progress()
	if err != nil {
		return err
	}
	if len(rec) == 0 {
		return nil
	}
	if _, ok := e.Client.SaveRecord(ctx, models.DocProgress, rec); !ok {
		return errRequest
	}
	return nil
}

// preferencesRecord builds the server record; an unset value is sent as null
func preferencesRecord(theme, animation string) models.Record {
	rec := models.Record{"theme": nil, "animation": nil}
	if theme != "" {
		rec["theme"] = theme
	}
	if animation != "" {
		rec["animation"] = animation
	}
	return rec
}
