// selected.go
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
	"github.com/localnerve/lessonsync/internal/types"
	"github.com/localnerve/lessonsync/internal/utils"
)

// GetSelected handles GET /api/selected/:type
// @Summary Get selected materials
// @Description Get the current selection for a category
// @Tags Selected
// @Produce json
// @Param type path string true "Category" Enums(photos, texts, exercises, homework)
// @Success 200 {array} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /selected/{type} [get]
func (h *Handler) GetSelected(c *fiber.Ctx) error {
	cat, err := category(c)
	if err != nil {
		return err
	}

	items, err := h.Service.GetSelected(c.UserContext(), cat)
	if err != nil {
		return h.fail(c, "fetch", "selected materials", err)
	}
	return utils.SuccessResponse(c, items, fiber.StatusOK)
}

// SetSelected handles POST /api/selected/:type
// @Summary Replace selected materials
// @Description Replace the whole selection for a category. A single object is taken as a one-item selection.
// @Tags Selected
// @Accept json
// @Produce json
// @Param type path string true "Category" Enums(photos, texts, exercises, homework)
// @Param body body []object true "Selection"
// @Success 200 {array} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /selected/{type} [post]
func (h *Handler) SetSelected(c *fiber.Ctx) error {
	cat, err := category(c)
	if err != nil {
		return err
	}
	var items types.FlexList[models.Item]
	if err := decodeList(c, &items); err != nil {
		return err
	}

	saved, err := h.Service.SetSelected(c.UserContext(), cat, items.Slice())
	if err != nil {
		return h.fail(c, "save", "selected materials", err)
	}
	return utils.SuccessResponse(c, saved, fiber.StatusOK)
}
