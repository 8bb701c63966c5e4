package handlers

import (
	"pantry-planner/domain"
	"pantry-planner/internal/api/presenters"
	"pantry-planner/pkg/menu"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	MenuPlanHandler interface {
		CreateMenuPlan(c *fiber.Ctx) error
		GetMenuPlans(c *fiber.Ctx) error
		GetActiveMenuPlan(c *fiber.Ctx) error
		GetMenuPlan(c *fiber.Ctx) error
		UpdateMenuPlan(c *fiber.Ctx) error
		DeleteMenuPlan(c *fiber.Ctx) error

		SaveMenuItem(c *fiber.Ctx) error
		UpdateMenuItem(c *fiber.Ctx) error
		DeleteMenuItem(c *fiber.Ctx) error
		ToggleMenuItem(c *fiber.Ctx) error

		GetShoppingList(c *fiber.Ctx) error
		GetNutrition(c *fiber.Ctx) error
	}

	menuPlanHandler struct {
		menuService menu.MenuService
		validator   *validator.Validate
	}
)

func NewMenuPlanHandler(menuService menu.MenuService, validator *validator.Validate) MenuPlanHandler {
	return &menuPlanHandler{
		menuService: menuService,
		validator:   validator,
	}
}

func (h *menuPlanHandler) CreateMenuPlan(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateMenuPlanRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateMenuPlan, err)
	}

	res, err := h.menuService.CreateMenuPlan(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.ErrorStatus(err), domain.MessageFailedCreateMenuPlan, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateMenuPlan)
}

func (h *menuPlanHandler) GetMenuPlans(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, limit := pagination(c)

	plans, count, err := h.menuService.GetMenuPlans(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.ErrorStatus(err), domain.MessageFailedGetMenuPlans, err)
	}

	return presenters.SuccessResponse(c, paginated("menu_plans", plans, page, limit, count), fiber.StatusOK, domain.MessageSuccessGetMenuPlans)
}

func (h *menuPlanHandler) GetActiveMenuPlan(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.menuService.GetActiveMenuPlan(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.ErrorStatus(err), domain.MessageNoActiveMenuPlan, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMenuPlan)
}

func (h *menuPlanHandler) GetMenuPlan(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.menuService.GetMenuPlan(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.ErrorStatus(err), domain.MessageFailedGetMenuPlan, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMenuPlan)
}

func (h *menuPlanHandler) UpdateMenuPlan(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UpdateMenuPlanRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateMenuPlan, err)
	}

	res, err := h.menuService.UpdateMenuPlan(c.Context(), c.Params("id"), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.ErrorStatus(err), domain.MessageFailedUpdateMenuPlan, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateMenuPlan)
}

func (h *menuPlanHandler) DeleteMenuPlan(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.menuService.DeleteMenuPlan(c.Context(), c.Params("id"), userID); err != nil {
		return presenters.ErrorResponse(c, presenters.ErrorStatus(err), domain.MessageFailedDeleteMenuPlan, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteMenuPlan)
}

func (h *menuPlanHandler) SaveMenuItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.MenuItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddMenuItem, err)
	}

	res, err := h.menuService.SaveMenuItem(c.Context(), c.Params("id"), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.ErrorStatus(err), domain.MessageFailedAddMenuItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddMenuItem)
}

func (h *menuPlanHandler) UpdateMenuItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UpdateMenuItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateMenuItem, err)
	}

	res, err := h.menuService.UpdateMenuItem(c.Context(), c.Params("id"), c.Params("itemId"), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.ErrorStatus(err), domain.MessageFailedUpdateMenuItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateMenuItem)
}

func (h *menuPlanHandler) DeleteMenuItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.menuService.DeleteMenuItem(c.Context(), c.Params("id"), c.Params("itemId"), userID); err != nil {
		return presenters.ErrorResponse(c, presenters.ErrorStatus(err), domain.MessageFailedDeleteMenuItem, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteMenuItem)
}

func (h *menuPlanHandler) ToggleMenuItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.menuService.ToggleMenuItem(c.Context(), c.Params("id"), c.Params("itemId"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.ErrorStatus(err), domain.MessageFailedToggleMenuItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessToggleMenuItem)
}

func (h *menuPlanHandler) GetShoppingList(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	regenerate := c.QueryBool("regenerate", false)

	res, err := h.menuService.GetShoppingList(c.Context(), c.Params("id"), regenerate, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.ErrorStatus(err), domain.MessageFailedMenuShopping, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessMenuShopping)
}

func (h *menuPlanHandler) GetNutrition(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.menuService.GetNutrition(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.ErrorStatus(err), domain.MessageFailedMenuNutrition, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessMenuNutrition)
}
