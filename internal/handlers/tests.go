// tests.go
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
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/lessonsync/internal/models"
	"github.com/localnerve/lessonsync/internal/utils"
)

// ListTests handles GET /api/tests
// @Summary List saved tests
// @Tags Tests
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /tests [get]
func (h *Handler) ListTests(c *fiber.Ctx) error {
	tests, err := h.Service.ListTests(c.UserContext())
	if err != nil {
		return h.fail(c, "fetch", "tests", err)
	}
	return utils.SuccessResponse(c, tests, fiber.StatusOK)
}

// SaveTest handles POST /api/tests
// @Summary Create or replace a test
// @Description Replace the test with the same id, or else the same name (case-insensitive), or append it
// @Tags Tests
// @Accept json
// @Produce json
// @Param body body object true "Test"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /tests [post]
func (h *Handler) SaveTest(c *fiber.Ctx) error {
	var item models.Item
	if err := decodeBody(c, &item); err != nil {
		return err
	}

	saved, err := h.Service.UpsertTest(c.UserContext(), item)
	if err != nil {
		return h.fail(c, "save", "test", err)
	}
	return utils.SuccessResponse(c, saved, fiber.StatusOK)
}

// DeleteTest handles DELETE /api/tests/:id
// @Summary Delete a test
// @Tags Tests
// @Produce json
// @Param id path string true "Test id"
// @Success 200 {object} utils.DeletedResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /tests/{id} [delete]
func (h *Handler) DeleteTest(c *fiber.Ctx) error {
	if err := h.Service.DeleteTest(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, "delete", "test", err)
	}
	return utils.DeletedResponse(c)
}
