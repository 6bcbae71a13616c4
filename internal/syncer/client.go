// client.go
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

// Package syncer keeps a client's local cache and the lessonsync server in
// step. Every server call is fail-soft: the client keeps working offline.
package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/lessonsync/internal/logger"
)

// DefaultTimeout bounds a single server call when none is configured.
const DefaultTimeout = 10 * time.Second

// Client calls the lessonsync HTTP API.
type Client struct {
	BaseURL string
	Timeout time.Duration
	Log     *logger.Logger
}

// NewClient creates a Client for the API rooted at baseURL, e.g.
// http://localhost:3000/api.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Timeout: timeout,
		Log:     log.With("service", "SyncClient"),
	}
}

// Call sends one request and returns the response body. Transport errors,
// timeouts and non-2xx answers are logged and reported as false; Call never
// returns an error to its caller.
func (c *Client) Call(ctx context.Context, method, endpoint string, body interface{}) (json.RawMessage, bool) {
	if err := ctx.Err(); err != nil {
		c.Log.Warn("api call skipped", "method", method, "endpoint", endpoint, "error", err)
		return nil, false
	}
	timeout := c.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}

	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(c.BaseURL + endpoint)
	a.Timeout(timeout)
	if body != nil {
		a.JSON(body)
	}

	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		c.Log.Warn("api call failed", "method", method, "endpoint", endpoint, "error", err)
		return nil, false
	}

	// Bytes releases the agent
	code, resp, errs := a.Bytes()
	if len(errs) > 0 {
		c.Log.Warn("api call failed", "method", method, "endpoint", endpoint, "error", errs[0])
		return nil, false
	}
	if code < 200 || code > 299 {
		c.Log.Warn("api call failed", "method", method, "endpoint", endpoint, "status", code, "error", errorMessage(resp))
		return nil, false
	}
	return json.RawMessage(resp), true
}

// CheckHealth reports whether the server answers GET /health with 2xx.
func (c *Client) CheckHealth(ctx context.Context) bool {
	_, ok := c.Call(ctx, fiber.MethodGet, "/health", nil)
	return ok
}

// errorMessage pulls the "error" field out of an error envelope
func errorMessage(body []byte) string {
	var env struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err != nil || env.Error == "" {
		return string(bytes.TrimSpace(body))
	}
	return env.Error
}

// decode unmarshals a response, keeping numbers as json.Number
func (c *Client) decode(endpoint string, raw json.RawMessage, v interface{}) bool {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		c.Log.Warn("api response unreadable", "endpoint", endpoint, "error", err)
		return false
	}
	return true
}
