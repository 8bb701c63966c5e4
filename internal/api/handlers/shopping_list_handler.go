package handlers

import (
	"pantry-planner/domain"
	"pantry-planner/internal/api/presenters"
	"pantry-planner/pkg/shopping"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ShoppingListHandler interface {
		CreateShoppingList(c *fiber.Ctx) error
		GetShoppingLists(c *fiber.Ctx) error
		GetShoppingList(c *fiber.Ctx) error
		GetByCategory(c *fiber.Ctx) error
		ExportList(c *fiber.Ctx) error
		ToggleItem(c *fiber.Ctx) error
		AddItem(c *fiber.Ctx) error
		RemoveItem(c *fiber.Ctx) error
		UpdateItemCategory(c *fiber.Ctx) error
		CompleteList(c *fiber.Ctx) error
		DeleteList(c *fiber.Ctx) error
	}

	shoppingListHandler struct {
		shoppingService shopping.ShoppingService
		validator       *validator.Validate
	}
)

func NewShoppingListHandler(shoppingService shopping.ShoppingService, validator *validator.Validate) ShoppingListHandler {
	return &shoppingListHandler{
		shoppingService: shoppingService,
		validator:       validator,
	}
}

func (h *shoppingListHandler) CreateShoppingList(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateShoppingListRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateShoppingList, err)
	}

	res, err := h.shoppingService.CreateShoppingList(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.ErrorStatus(err), domain.MessageFailedCreateShoppingList, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateShoppingList)
}

func (h *shoppingListHandler) GetShoppingLists(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, limit := pagination(c)

	lists, count, err := h.shoppingService.GetShoppingLists(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.ErrorStatus(err), domain.MessageFailedGetShoppingLists, err)
	}

	return presenters.SuccessResponse(c, paginated("shopping_lists", lists, page, limit, count), fiber.StatusOK, domain.MessageSuccessGetShoppingLists)
}

func (h *shoppingListHandler) GetShoppingList(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.shoppingService.GetShoppingList(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.ErrorStatus(err), domain.MessageFailedGetShoppingList, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetShoppingList)
}

func (h *shoppingListHandler) GetByCategory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.shoppingService.GetByCategory(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.ErrorStatus(err), domain.MessageFailedGetShoppingList, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetShoppingList)
}

func (h *shoppingListHandler) ExportList(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	text, err := h.shoppingService.ExportList(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.ErrorStatus(err), domain.MessageFailedExportList, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(fiber.StatusOK).SendString(text)
}

func (h *shoppingListHandler) ToggleItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.ToggleItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedToggleItem, err)
	}

	res, err := h.shoppingService.ToggleItem(c.Context(), c.Params("id"), c.Params("itemId"), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.ErrorStatus(err), domain.MessageFailedToggleItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessToggleItem)
}

func (h *shoppingListHandler) AddItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AddShoppingItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddShoppingItem, err)
	}

	res, err := h.shoppingService.AddItem(c.Context(), c.Params("id"), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.ErrorStatus(err), domain.MessageFailedAddShoppingItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddShoppingItem)
}

func (h *shoppingListHandler) RemoveItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.shoppingService.RemoveItem(c.Context(), c.Params("id"), c.Params("itemId"), userID); err != nil {
		return presenters.ErrorResponse(c, presenters.ErrorStatus(err), domain.MessageFailedRemoveShoppingItem, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRemoveShoppingItem)
}

func (h *shoppingListHandler) UpdateItemCategory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UpdateItemCategoryRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateCategory, err)
	}

	res, err := h.shoppingService.UpdateItemCategory(c.Context(), c.Params("id"), c.Params("itemId"), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.ErrorStatus(err), domain.MessageFailedUpdateCategory, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateCategory)
}

func (h *shoppingListHandler) CompleteList(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.shoppingService.CompleteList(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.ErrorStatus(err), domain.MessageFailedCompleteList, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCompleteList)
}

func (h *shoppingListHandler) DeleteList(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.shoppingService.DeleteList(c.Context(), c.Params("id"), userID); err != nil {
		return presenters.ErrorResponse(c, presenters.ErrorStatus(err), domain.MessageFailedDeleteList, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteList)
}
