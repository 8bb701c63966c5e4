package handlers

import (
	"strconv"

	"pantry-planner/domain"

	"github.com/gofiber/fiber/v2"
)

const maxPageSize = 100

func pagination(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func paginated(key string, items any, page, limit int, count int64) fiber.Map {
	return fiber.Map{
		key: items,
		"pagination": domain.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      count,
			TotalPages: (count + int64(limit) - 1) / int64(limit),
		},
	}
}
