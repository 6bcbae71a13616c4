// singletons.go
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
	"github.com/localnerve/lessonsync/internal/services"
	"github.com/localnerve/lessonsync/internal/utils"
)

// getRecord returns the GET handler for a singleton document
func (h *Handler) getRecord(one services.Singleton) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec, err := h.Service.GetRecord(c.UserContext(), one)
		if err != nil {
			return h.fail(c, "fetch", one.Document, err)
		}
		return utils.SuccessResponse(c, rec, fiber.StatusOK)
	}
}

// setRecord returns the POST handler for a singleton document
func (h *Handler) setRecord(one services.Singleton) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var patch models.Record
		if err := decodeBody(c, &patch); err != nil {
			return err
		}
		rec, err := h.Service.SetRecord(c.UserContext(), one, patch)
		if err != nil {
			return h.fail(c, "save", one.Document, err)
		}
		return utils.SuccessResponse(c, rec, fiber.StatusOK)
	}
}

// GetHomework handles GET /api/homework
// @Summary Get homework
// @Tags Homework
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /homework [get]
func (h *Handler) GetHomework(c *fiber.Ctx) error {
	return h.getRecord(services.Homework)(c)
}

// SetHomework handles POST /api/homework
// @Summary Replace homework
// @Tags Homework
// @Accept json
// @Produce json
// @Param body body object true "Homework, usually {content}"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /homework [post]
func (h *Handler) SetHomework(c *fiber.Ctx) error {
	return h.setRecord(services.Homework)(c)
}

// GetWhiteboard handles GET /api/whiteboard
// @Summary Get the whiteboard drawing
// @Tags Whiteboard
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /whiteboard [get]
func (h *Handler) GetWhiteboard(c *fiber.Ctx) error {
	return h.getRecord(services.Whiteboard)(c)
}

// SetWhiteboard handles POST /api/whiteboard
// @Summary Replace the whiteboard drawing
// @Tags Whiteboard
// @Accept json
// @Produce json
// @Param body body object true "Whiteboard, usually {drawing}"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /whiteboard [post]
func (h *Handler) SetWhiteboard(c *fiber.Ctx) error {
	return h.setRecord(services.Whiteboard)(c)
}

// GetPreferences handles GET /api/preferences
// @Summary Get preferences
// @Tags Preferences
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /preferences [get]
func (h *Handler) GetPreferences(c *fiber.Ctx) error {
	return h.getRecord(services.Preferences)(c)
}

// SetPreferences handles POST /api/preferences
// @Summary Replace preferences
// @Tags Preferences
// @Accept json
// @Produce json
// @Param body body object true "Preferences"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /preferences [post]
func (h *Handler) SetPreferences(c *fiber.Ctx) error {
	return h.setRecord(services.Preferences)(c)
}

// GetProgress handles GET /api/progress
// @Summary Get learner progress
// @Tags Progress
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /progress [get]
func (h *Handler) GetProgress(c *fiber.Ctx) error {
	return h.getRecord(services.Progress)(c)
}

// SetProgress handles POST /api/progress
// @Summary Replace learner progress
// @Tags Progress
// @Accept json
// @Produce json
// @Param body body object true "Progress"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /progress [post]
func (h *Handler) SetProgress(c *fiber.Ctx) error {
	return h.setRecord(services.Progress)(c)
}
