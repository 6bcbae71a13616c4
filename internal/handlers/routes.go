// routes.go
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
	"github.com/localnerve/lessonsync/internal/middleware"
)

// Register mounts every API route on r, which is normally the /api group.
// Each path answers its own methods, OPTIONS for preflight, and 405 for the
// rest.
func (h *Handler) Register(r fiber.Router) {
	route := func(path string, methods middleware.Methods) {
		r.All(path, middleware.CORS(methods.Allowed()...), middleware.Dispatch(methods))
	}

	route("/materials/:type", middleware.Methods{
		fiber.MethodGet:  h.ListMaterials,
		fiber.MethodPost: h.SaveMaterial,
	})
	route("/materials/:type/:id", middleware.Methods{
		fiber.MethodDelete: h.DeleteMaterial,
	})
	route("/selected/:type", middleware.Methods{
		fiber.MethodGet:  h.GetSelected,
		fiber.MethodPost: h.SetSelected,
	})
	route("/tests", middleware.Methods{
		fiber.MethodGet:  h.ListTests,
		fiber.MethodPost: h.SaveTest,
	})
	route("/tests/:id", middleware.Methods{
		fiber.MethodDelete: h.DeleteTest,
	})
	route("/homework", middleware.Methods{
		fiber.MethodGet:  h.GetHomework,
		fiber.MethodPost: h.SetHomework,
	})
	route("/whiteboard", middleware.Methods{
		fiber.MethodGet:  h.GetWhiteboard,
		fiber.MethodPost: h.SetWhiteboard,
	})
	route("/preferences", middleware.Methods{
		fiber.MethodGet:  h.GetPreferences,
		fiber.MethodPost: h.SetPreferences,
	})
	route("/progress", middleware.Methods{
		fiber.MethodGet:  h.GetProgress,
		fiber.MethodPost: h.SetProgress,
	})
	route("/health", middleware.Methods{
		fiber.MethodGet: h.Health,
	})
}
