package inventory

import (
	"context"
	"testing"

	"pantry-planner/domain"
	"pantry-planner/internal/testutil"
	"pantry-planner/internal/utils/locker"
	"pantry-planner/pkg/ingredient"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type InventoryServiceSuite struct {
	suite.Suite
	ctx     context.Context
	userID  string
	service InventoryService
}

func (s *InventoryServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.userID = uuid.NewString()
	db := testutil.NewDB(s.T())
	s.service = NewInventoryService(NewInventoryRepository(db), locker.NewMemoryLocker(), zap.NewNop(), nil)
}

func (s *InventoryServiceSuite) add(name string, qty float64, unit string) domain.InventoryItemResponse {
	res, err := s.service.AddItem(s.ctx, domain.AddInventoryItemRequest{Name: name, Quantity: qty, Unit: unit}, s.userID)
	s.Require().NoError(err)
	return res
}

func (s *InventoryServiceSuite) TestAddNormalizesName() {
	res := s.add("  DOMATES ", 3, "adet")

	s.Equal("domates", res.Name)
	s.Equal(string(ingredient.Count), res.Unit)
	s.Equal("adet", res.UnitLabel)
	s.Equal(string(ingredient.CategoryProduce), res.Category)
	s.False(res.Merged)
}

func (s *InventoryServiceSuite) TestAddMergesSameDimension() {
	first := s.add("un", 1, "kg")
	second := s.add("Un", 500, "gr")

	s.True(second.Merged)
	s.Equal(first.ID, second.ID)
	s.Equal(1.5, second.Quantity)
	s.Equal(string(ingredient.MassKG), second.Unit)

	items, count, err := s.service.GetItems(s.ctx, s.userID, 1, 20)
	s.Require().NoError(err)
	s.EqualValues(1, count)
	s.Len(items, 1)
}

func (s *InventoryServiceSuite) TestAddKeepsOtherDimensionsApart() {
	s.add("soğan", 3, "adet")
	res := s.add("soğan", 500, "gr")
	s.False(res.Merged)

	stock, err := s.service.Stock(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Len(stock, 2)
}

func (s *InventoryServiceSuite) TestAddUnknownUnitNeverMerges() {
	s.add("maydanoz", 1, "demet")
	res := s.add("maydanoz", 1, "demet")
	s.False(res.Merged)
	s.Equal(string(ingredient.Unknown), res.Unit)
}

func (s *InventoryServiceSuite) TestAddRejectsNonPositiveQuantity() {
	_, err := s.service.AddItem(s.ctx, domain.AddInventoryItemRequest{Name: "tuz", Quantity: 0, Unit: "gr"}, s.userID)
	s.ErrorIs(err, domain.ErrInvalidState)
}

func (s *InventoryServiceSuite) TestUpdateAndDelete() {
	item := s.add("süt", 1, "lt")

	updated, err := s.service.UpdateItem(s.ctx, item.ID, domain.UpdateInventoryItemRequest{Quantity: 2}, s.userID)
	s.Require().NoError(err)
	s.Equal(2.0, updated.Quantity)

	s.Require().NoError(s.service.DeleteItem(s.ctx, item.ID, s.userID))

	_, err = s.service.GetItemByID(s.ctx, item.ID, s.userID)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *InventoryServiceSuite) TestForeignOwner() {
	item := s.add("süt", 1, "lt")

	_, err := s.service.GetItemByID(s.ctx, item.ID, uuid.NewString())
	s.ErrorIs(err, domain.ErrForbidden)

	err = s.service.DeleteItem(s.ctx, item.ID, uuid.NewString())
	s.ErrorIs(err, domain.ErrForbidden)
}

func (s *InventoryServiceSuite) TestStockIsOwnerScoped() {
	s.add("domates", 2, "adet")

	stock, err := s.service.Stock(s.ctx, uuid.NewString())
	s.Require().NoError(err)
	s.Empty(stock)

	stock, err = s.service.Stock(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal([]ingredient.Requirement{{Name: "domates", Quantity: 2, Unit: ingredient.Count}}, stock)
}

func TestInventoryServiceSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceSuite))
}
