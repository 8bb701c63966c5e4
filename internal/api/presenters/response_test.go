package presenters

import (
	"errors"
	"fmt"
	"testing"

	"pantry-planner/domain"
	"pantry-planner/internal/utils/locker"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrShoppingListNotFound, fiber.StatusNotFound},
		{domain.ErrMenuItemNotFound, fiber.StatusNotFound},
		{fmt.Errorf("wrapped: %w", domain.ErrRecipeNotFound), fiber.StatusNotFound},
		{domain.ErrShoppingListCompleted, fiber.StatusConflict},
		{domain.ErrInvalidPortions, fiber.StatusConflict},
		{domain.ErrForbidden, fiber.StatusForbidden},
		{domain.ErrParseUUID, fiber.StatusBadRequest},
		{domain.ErrTokenExpired, fiber.StatusUnauthorized},
		{fmt.Errorf("%w: k", locker.ErrUnavailable), fiber.StatusServiceUnavailable},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ErrorStatus(tc.err), tc.err.Error())
	}
}
