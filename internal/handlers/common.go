// common.go
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

package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/lessonsync/internal/logger"
	"github.com/localnerve/lessonsync/internal/models"
	"github.com/localnerve/lessonsync/internal/services"
	"github.com/localnerve/lessonsync/internal/types"
	"github.com/localnerve/lessonsync/internal/utils"
)

// Handler serves the /api routes over a services.Service
type Handler struct {
	Service *services.Service
	Log     *logger.Logger
}

// New creates a Handler. A nil log discards output.
func New(svc *services.Service, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{Service: svc, Log: log}
}

var errInvalidInput = types.NewBadRequest("Invalid input", "input")

// decodeBody parses the request body into v, keeping numbers as json.Number
// so ids and counters round-trip unchanged.
func decodeBody(c *fiber.Ctx, v interface{}) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return errInvalidInput
	}
	return decodeJSON(body, v)
}

// decodeList is decodeBody for list bodies, where null is an empty list.
func decodeList(c *fiber.Ctx, v interface{}) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return errInvalidInput
	}
	return decodeJSON(body, v)
}

func decodeJSON(body []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return errInvalidInput
	}
	if dec.More() {
		return errInvalidInput
	}
	return nil
}

// category reads and validates the :type path parameter
func category(c *fiber.Ctx) (models.Category, error) {
	cat, err := models.ParseCategory(c.Params("type"))
	if err != nil {
		return "", types.NewBadRequest("Unknown material type", "category")
	}
	return cat, nil
}

// fail logs a service failure and answers with a generic 500. The
// underlying error never reaches the client.
func (h *Handler) fail(c *fiber.Ctx, op, resource string, err error) error {
	var ce *types.CustomError
	if errors.As(err, &ce) {
		return err
	}
	h.Log.Error("request failed", "op", op, "resource", resource, "url", c.OriginalURL(), "error", err)
	return utils.ErrorResponse(c, fmt.Sprintf("Failed to %s %s", op, resource), fiber.StatusInternalServerError, op)
}
