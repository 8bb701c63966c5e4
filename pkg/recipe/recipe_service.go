package recipe

import (
	"context"
	"errors"

	"pantry-planner/domain"
	"pantry-planner/entities"
	"pantry-planner/pkg/ingredient"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		SaveRecipe(ctx context.Context, req domain.SaveRecipeRequest, userID string) (domain.RecipeResponse, error)
		GetRecipes(ctx context.Context, userID string, page, limit int) ([]domain.RecipeResponse, int64, error)
		GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID string, userID string) error
		CheckAvailability(ctx context.Context, recipeID string, portions int, userID string) (ingredient.Reconciliation, error)

		// ResolveRecipes looks up the user's recipes by id. Ids that do not
		// resolve are absent from the result.
		ResolveRecipes(ctx context.Context, userID string, ids []uuid.UUID) (map[uuid.UUID]*entities.Recipe, error)
	}

	// StockProvider returns the current pantry of a user.
	StockProvider interface {
		Stock(ctx context.Context, userID string) ([]ingredient.Requirement, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		stock            StockProvider
	}
)

func NewRecipeService(recipeRepository RecipeRepository, stock StockProvider) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		stock:            stock,
	}
}

func (s *recipeService) SaveRecipe(ctx context.Context, req domain.SaveRecipeRequest, userID string) (domain.RecipeResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	portions := req.Portions
	if portions <= 0 {
		portions = ingredient.DefaultPortions
	}

	recipe := &entities.Recipe{
		UserID:      userUUID,
		Title:       req.Title,
		Ingredients: datatypes.JSONSlice[string](req.Ingredients),
		Steps:       datatypes.JSONSlice[string](req.Steps),
		DurationMin: req.DurationMin,
		Difficulty:  req.Difficulty,
		Category:    req.Category,
		Portions:    portions,
		Nutrition:   datatypes.NewJSONType(req.Nutrition),
	}
	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		return domain.RecipeResponse{}, err
	}
	return toResponse(recipe), nil
}

func (s *recipeService) GetRecipes(ctx context.Context, userID string, page, limit int) ([]domain.RecipeResponse, int64, error) {
	recipes, count, err := s.recipeRepository.GetRecipes(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		res = append(res, toResponse(r))
	}
	return res, count, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeResponse, error) {
	recipe, err := s.ownedRecipe(ctx, recipeID, userID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return toResponse(recipe), nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string) error {
	if _, err := s.ownedRecipe(ctx, recipeID, userID); err != nil {
		return err
	}
	return s.recipeRepository.DeleteRecipe(ctx, recipeID)
}

// CheckAvailability reconciles the recipe, scaled to portions, against the
// user's pantry without persisting anything.
func (s *recipeService) CheckAvailability(ctx context.Context, recipeID string, portions int, userID string) (ingredient.Reconciliation, error) {
	recipe, err := s.ownedRecipe(ctx, recipeID, userID)
	if err != nil {
		return ingredient.Reconciliation{}, err
	}
	if portions <= 0 {
		portions = recipe.Portions
	}

	stock, err := s.stock.Stock(ctx, userID)
	if err != nil {
		return ingredient.Reconciliation{}, err
	}

	need := ingredient.ScaleLines(recipe.Ingredients, ingredient.PortionFactor(portions, recipe.Portions))
	return ingredient.Reconcile(need, stock), nil
}

func (s *recipeService) ResolveRecipes(ctx context.Context, userID string, ids []uuid.UUID) (map[uuid.UUID]*entities.Recipe, error) {
	keys := make([]string, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			keys = append(keys, id.String())
		}
	}

	recipes, err := s.recipeRepository.GetRecipesByIDs(ctx, userID, keys)
	if err != nil {
		return nil, err
	}

	resolved := make(map[uuid.UUID]*entities.Recipe, len(recipes))
	for _, r := range recipes {
		resolved[r.ID] = r
	}
	return resolved, nil
}

func (s *recipeService) ownedRecipe(ctx context.Context, recipeID string, userID string) (*entities.Recipe, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return nil, domain.ErrRecipeNotFound
	}
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	if recipe.UserID.String() != userID {
		return nil, domain.ErrForbidden
	}
	return recipe, nil
}

func toResponse(r *entities.Recipe) domain.RecipeResponse {
	ingredients := []string(r.Ingredients)
	if ingredients == nil {
		ingredients = []string{}
	}
	steps := []string(r.Steps)
	if steps == nil {
		steps = []string{}
	}
	return domain.RecipeResponse{
		ID:          r.ID.String(),
		Title:       r.Title,
		Ingredients: ingredients,
		Steps:       steps,
		DurationMin: r.DurationMin,
		Difficulty:  r.Difficulty,
		Category:    r.Category,
		Portions:    r.Portions,
		Nutrition:   r.Nutrition.Data(),
		CreatedAt:   r.CreatedAt,
	}
}
