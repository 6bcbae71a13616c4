// materials.go
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

// ListMaterials handles GET /api/materials/:type
// @Summary List materials
// @Description List every material stored under a category
// @Tags Materials
// @Produce json
// @Param type path string true "Category" Enums(photos, texts, exercises, homework)
// @Success 200 {array} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /materials/{type} [get]
func (h *Handler) ListMaterials(c *fiber.Ctx) error {
	cat, err := category(c)
	if err != nil {
		return err
	}

	items, err := h.Service.ListMaterials(c.UserContext(), cat)
	if err != nil {
		return h.fail(c, "fetch", "materials", err)
	}
	return utils.SuccessResponse(c, items, fiber.StatusOK)
}

// SaveMaterial handles POST /api/materials/:type
// @Summary Create or replace a material
// @Description Replace the material with the same id, or append it with a generated id
// @Tags Materials
// @Accept json
// @Produce json
// @Param type path string true "Category" Enums(photos, texts, exercises, homework)
// @Param body body object true "Material"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /materials/{type} [post]
func (h *Handler) SaveMaterial(c *fiber.Ctx) error {
	cat, err := category(c)
	if err != nil {
		return err
	}
	var item models.Item
	if err := decodeBody(c, &item); err != nil {
		return err
	}

	saved, err := h.Service.UpsertMaterial(c.UserContext(), cat, item)
	if err != nil {
		return h.fail(c, "save", "material", err)
	}
	return utils.SuccessResponse(c, saved, fiber.StatusOK)
}

// DeleteMaterial handles DELETE /api/materials/:type/:id
// @Summary Delete a material
// @Description Remove a material by id. Deleting a missing id succeeds.
// @Tags Materials
// @Produce json
// @Param type path string true "Category" Enums(photos, texts, exercises, homework)
// @Param id path string true "Material id"
// @Success 200 {object} utils.DeletedResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /materials/{type}/{id} [delete]
func (h *Handler) DeleteMaterial(c *fiber.Ctx) error {
	cat, err := category(c)
	if err != nil {
		return err
	}

	if err := h.Service.DeleteMaterial(c.UserContext(), cat, c.Params("id")); err != nil {
		return h.fail(c, "delete", "material", err)
	}
	return utils.DeletedResponse(c)
}
