package service_test

import (
	"context"
	"strings"
	"testing"

	"business-hub-backend/internal/database/models"
	apperrors "business-hub-backend/internal/errors"
	"business-hub-backend/internal/service"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CompanyServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller
	env  *testEnv
}

func (s *CompanyServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.env = newTestEnv(s.T(), s.ctrl)
}

func (s *CompanyServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *CompanyServiceTestSuite) TestCreateMakesCreatorAdmin() {
	founder := s.env.factories.SeedUser(s.T(), s.env.db, "founder@example.com", "")

	resp, err := s.env.companies.Create(context.Background(), founder.ID, &service.CompanyRequest{
		Name:     "Acme Widgets",
		Industry: "Retail",
	})
	s.Require().NoError(err)
	s.Equal("Company created successfully", resp.Message)
	s.Equal("acme-widgets", resp.Company.Slug)
	s.Equal(founder.ID, resp.Company.OwnerID)

	var row models.CompanyMember
	s.Require().NoError(s.env.db.Where("user_id = ?", founder.ID).First(&row).Error)
	s.Equal(resp.Company.ID, row.CompanyID)
	s.Equal(models.MemberRoleAdmin, row.Role)
	s.Equal("Founder", row.Position)

	expected := `
# HELP business_hub_companies_created_total Companies created.
# TYPE business_hub_companies_created_total counter
business_hub_companies_created_total 1
`
	s.NoError(testutil.GatherAndCompare(s.env.metrics.Registry(), strings.NewReader(expected), "business_hub_companies_created_total"))
}

func (s *CompanyServiceTestSuite) TestCreateConflictWritesNothing() {
	tenant := s.env.factories.SeedTenant(s.T(), s.env.db)
	before := s.env.countMembers(s.T())

	_, err := s.env.companies.Create(context.Background(), tenant.Member.ID, &service.CompanyRequest{Name: "Second Co"})
	s.ErrorIs(err, apperrors.ErrMembershipExists)
	s.True(apperrors.IsAlreadyExists(err))

	var companies int64
	s.Require().NoError(s.env.db.Model(&models.Company{}).Count(&companies).Error)
	s.Equal(int64(1), companies)
	s.Equal(before, s.env.countMembers(s.T()))
}

func (s *CompanyServiceTestSuite) TestCreateValidation() {
	user := s.env.factories.SeedUser(s.T(), s.env.db, "nameless@example.com", "")
	_, err := s.env.companies.Create(context.Background(), user.ID, &service.CompanyRequest{})
	s.True(apperrors.IsValidation(err))
}

func (s *CompanyServiceTestSuite) TestGet() {
	tenant := s.env.factories.SeedTenant(s.T(), s.env.db)
	other := s.env.factories.SeedTenant(s.T(), s.env.db)

	got, err := s.env.companies.Get(context.Background(), tenant.MemberRow, tenant.Company.ID)
	s.Require().NoError(err)
	s.Equal(tenant.Company.Name, got.Name)

	_, err = s.env.companies.Get(context.Background(), tenant.MemberRow, other.Company.ID)
	s.ErrorIs(err, apperrors.ErrNotCompanyMember)

	_, err = s.env.companies.Get(context.Background(), nil, tenant.Company.ID)
	s.ErrorIs(err, apperrors.ErrNoCompany)
}

func (s *CompanyServiceTestSuite) TestUpdateRequiresAdmin() {
	tenant := s.env.factories.SeedTenant(s.T(), s.env.db)
	req := &service.CompanyRequest{Name: "Renamed Co", Website: "https://renamed.example.com"}

	_, err := s.env.companies.Update(context.Background(), tenant.MemberRow, tenant.Company.ID, req)
	s.True(apperrors.IsAuthorization(err))

	updated, err := s.env.companies.Update(context.Background(), tenant.AdminMember, tenant.Company.ID, req)
	s.Require().NoError(err)
	s.Equal("Renamed Co", updated.Name)
	s.Equal("renamed-co", updated.Slug)
}

func (s *CompanyServiceTestSuite) TestListMembers() {
	tenant := s.env.factories.SeedTenant(s.T(), s.env.db)
	s.env.factories.SeedTenant(s.T(), s.env.db)

	members, err := s.env.companies.ListMembers(context.Background(), tenant.MemberRow)
	s.Require().NoError(err)
	s.Len(members, 2)

	roles := map[string]models.MemberRole{}
	for _, m := range members {
		roles[m.Email] = m.Role
	}
	s.Equal(models.MemberRoleAdmin, roles[tenant.Admin.Email])
	s.Equal(models.MemberRoleMember, roles[tenant.Member.Email])

	_, err = s.env.companies.ListMembers(context.Background(), nil)
	s.ErrorIs(err, apperrors.ErrNoCompany)
}

func TestCompanyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CompanyServiceTestSuite))
}
