package syncer

import (
	"context"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/lessonsync/internal/models"
)

// GetMaterials lists the server's materials in cat.
func (c *Client) GetMaterials(ctx context.Context, cat models.Category) ([]models.Item, bool) {
	return c.getList(ctx, "/materials/"+string(cat))
}

// SaveMaterial upserts item and returns the stored copy.
func (c *Client) SaveMaterial(ctx context.Context, cat models.Category, item models.Item) (models.Item, bool) {
	return c.postItem(ctx, "/materials/"+string(cat), item)
}

// DeleteMaterial removes a material by id.
func (c *Client) DeleteMaterial(ctx context.Context, cat models.Category, id string) bool {
	_, ok := c.Call(ctx, fiber.MethodDelete, "/materials/"+string(cat)+"/"+url.PathEscape(id), nil)
	return ok
}

// GetSelected returns the server's selection for cat.
func (c *Client) GetSelected(ctx context.Context, cat models.Category) ([]models.Item, bool) {
	return c.getList(ctx, "/selected/"+string(cat))
}

// SaveSelected replaces the server's selection for cat.
func (c *Client) SaveSelected(ctx context.Context, cat models.Category, items []models.Item) bool {
	if items == nil {
		items = []models.Item{}
	}
	_, ok := c.Call(ctx, fiber.MethodPost, "/selected/"+string(cat), items)
	return ok
}

// GetTests lists the server's saved tests.
func (c *Client) GetTests(ctx context.Context) ([]models.Item, bool) {
	return c.getList(ctx, "/tests")
}

// SaveTest upserts a test and returns the stored copy.
func (c *Client) SaveTest(ctx context.Context, test models.Item) (models.Item, bool) {
	return c.postItem(ctx, "/tests", test)
}

// DeleteTest removes a test by id.
func (c *Client) DeleteTest(ctx context.Context, id string) bool {
	_, ok := c.Call(ctx, fiber.MethodDelete, "/tests/"+url.PathEscape(id), nil)
	return ok
}

// GetRecord fetches a singleton document: homework, whiteboard, preferences
// or progress.
func (c *Client) GetRecord(ctx context.Context, doc string) (models.Record, bool) {
	endpoint := "/" + doc
	raw, ok := c.Call(ctx, fiber.MethodGet, endpoint, nil)
	if !ok {
		return nil, false
	}
	var rec models.Record
	if !c.decode(endpoint, raw, &rec) {
		return nil, false
	}
	return rec, true
}

// SaveRecord replaces a singleton document and returns the stored record.
func (c *Client) SaveRecord(ctx context.Context, doc string, rec models.Record) (models.Record, bool) {
	endpoint := "/" + doc
	raw, ok := c.Call(ctx, fiber.MethodPost, endpoint, rec)
	if !ok {
		return nil, false
	}
	var saved models.Record
	if !c.decode(endpoint, raw, &saved) {
		return nil, false
	}
	return saved, true
}

// GetHomework returns the homework text, or "" when the server has none.
func (c *Client) GetHomework(ctx context.Context) (string, bool) {
	rec, ok := c.GetRecord(ctx, models.DocHomework)
	if !ok {
		return "", false
	}
	content, _ := rec["content"].(string)
	return content, true
}

// SaveHomework stores the homework text.
func (c *Client) SaveHomework(ctx context.Context, content string) bool {
	_, ok := c.SaveRecord(ctx, models.DocHomework, models.Record{"content": content})
	return ok
}

// GetWhiteboard returns the encoded drawing, or "" when there is none.
func (c *Client) GetWhiteboard(ctx context.Context) (string, bool) {
	rec, ok := c.GetRecord(ctx, models.DocWhiteboard)
	if !ok {
		return "", false
	}
	drawing, _ := rec["drawing"].(string)
	return drawing, true
}

// SaveWhiteboard stores the encoded drawing.
func (c *Client) SaveWhiteboard(ctx context.Context, drawing string) bool {
	_, ok := c.SaveRecord(ctx, models.DocWhiteboard, models.Record{"drawing": drawing})
	return ok
}

func (c *Client) getList(ctx context.Context, endpoint string) ([]models.Item, bool) {
	raw, ok := c.Call(ctx, fiber.MethodGet, endpoint, nil)
	if !ok {
		return nil, false
	}
	var items []models.Item
	if !c.decode(endpoint, raw, &items) {
		return nil, false
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, true
}

func (c *Client) postItem(ctx context.Context, endpoint string, item models.Item) (models.Item, bool) {
	raw, ok := c.Call(ctx, fiber.MethodPost, endpoint, item)
	if !ok {
		return nil, false
	}
	var saved models.Item
	if !c.decode(endpoint, raw, &saved) {
		return nil, false
	}
	return saved, true
}
