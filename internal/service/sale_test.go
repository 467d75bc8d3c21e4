package service_test

import (
	"context"
	"testing"
	"time"

	"business-hub-backend/internal/database/models"
	apperrors "business-hub-backend/internal/errors"
	"business-hub-backend/internal/service"
	"business-hub-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SaleServiceTestSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	env    *testEnv
	tenant *testutils.Tenant
}

func (s *SaleServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.env = newTestEnv(s.T(), s.ctrl)
	s.tenant = s.env.factories.SeedTenant(s.T(), s.env.db)
}

func (s *SaleServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *SaleServiceTestSuite) record() *service.SaleResponse {
	sale, err := s.env.sales.Create(context.Background(), s.tenant.AdminMember, &service.CreateSaleRequest{
		CustomerName: "Globex",
		Product:      "Gadget",
		Amount:       4999,
		Currency:     "eur",
	})
	s.Require().NoError(err)
	return sale
}

func (s *SaleServiceTestSuite) TestCreateDefaults() {
	sale := s.record()
	s.Equal(models.SaleStatusPending, sale.Status)
	s.Equal(1, sale.Quantity)
	s.Equal("EUR", sale.Currency)
	s.WithinDuration(time.Now(), sale.SoldAt, time.Minute)
}

func (s *SaleServiceTestSuite) TestMembersCannotAccessSales() {
	sale := s.record()

	_, err := s.env.sales.List(context.Background(), s.tenant.MemberRow)
	s.True(apperrors.IsAuthorization(err))

	_, err = s.env.sales.GetByID(context.Background(), s.tenant.MemberRow, sale.ID)
	s.True(apperrors.IsAuthorization(err))

	_, err = s.env.sales.Create(context.Background(), s.tenant.MemberRow, &service.CreateSaleRequest{CustomerName: "X", Product: "Y"})
	s.True(apperrors.IsAuthorization(err))
}

func (s *SaleServiceTestSuite) TestStatusTransitions() {
	sale := s.record()

	completed, err := s.env.sales.UpdateStatus(context.Background(), s.tenant.AdminMember, sale.ID, models.SaleStatusCompleted)
	s.Require().NoError(err)
	s.Equal(models.SaleStatusCompleted, completed.Status)

	cancelled, err := s.env.sales.UpdateStatus(context.Background(), s.tenant.AdminMember, sale.ID, models.SaleStatusCancelled)
	s.Require().NoError(err)
	s.Equal(models.SaleStatusCancelled, cancelled.Status)

	_, err = s.env.sales.UpdateStatus(context.Background(), s.tenant.AdminMember, sale.ID, models.SaleStatusPending)
	s.ErrorIs(err, apperrors.ErrInvalidStatusTransition)

	notes := "late edit"
	_, err = s.env.sales.Update(context.Background(), s.tenant.AdminMember, sale.ID, &service.UpdateSaleRequest{Notes: &notes})
	s.ErrorIs(err, apperrors.ErrInvalidStatusTransition)

	_, err = s.env.sales.UpdateStatus(context.Background(), s.tenant.AdminMember, sale.ID, "refunded")
	s.ErrorIs(err, apperrors.ErrInvalidStatus)
}

func (s *SaleServiceTestSuite) TestUpdateAndList() {
	sale := s.record()
	quantity := 3
	currency := "gbp"

	updated, err := s.env.sales.Update(context.Background(), s.tenant.AdminMember, sale.ID, &service.UpdateSaleRequest{
		Quantity: &quantity,
		Currency: &currency,
	})
	s.Require().NoError(err)
	s.Equal(3, updated.Quantity)
	s.Equal("GBP", updated.Currency)

	sales, err := s.env.sales.List(context.Background(), s.tenant.AdminMember)
	s.Require().NoError(err)
	s.Len(sales, 1)

	other := s.env.factories.SeedTenant(s.T(), s.env.db)
	_, err = s.env.sales.GetByID(context.Background(), other.AdminMember, sale.ID)
	s.ErrorIs(err, apperrors.ErrSaleNotFound)

	_, err = s.env.sales.GetByID(context.Background(), s.tenant.AdminMember, uuid.New())
	s.ErrorIs(err, apperrors.ErrSaleNotFound)
}

func TestSaleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}
