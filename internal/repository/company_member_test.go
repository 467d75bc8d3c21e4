package repository

import (
	"context"
	"errors"
	"testing"

	"business-hub-backend/internal/database"
	"business-hub-backend/internal/database/models"
	"business-hub-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type CompanyMemberRepositoryTestSuite struct {
	suite.Suite
	db        *gorm.DB
	repo      *CompanyMemberRepository
	factories *testutils.FactorySet
}

func (suite *CompanyMemberRepositoryTestSuite) SetupTest() {
	suite.db = testutils.NewSQLiteDB(suite.T())
	suite.repo = NewCompanyMemberRepository(suite.db)
	suite.factories = testutils.NewFactorySet()
}

func (suite *CompanyMemberRepositoryTestSuite) TestFindByUserIDWithoutMembership() {
	user := suite.factories.SeedUser(suite.T(), suite.db, "loner@example.com", "")

	member, err := suite.repo.FindByUserID(context.Background(), user.ID)
	suite.NoError(err)
	suite.Nil(member)

	member, err = suite.repo.FindByEmail(context.Background(), "loner@example.com")
	suite.NoError(err)
	suite.Nil(member)
}

func (suite *CompanyMemberRepositoryTestSuite) TestFindByUserIDAndEmail() {
	tenant := suite.factories.SeedTenant(suite.T(), suite.db)

	member, err := suite.repo.FindByUserID(context.Background(), tenant.Admin.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(member)
	suite.Equal(tenant.Company.ID, member.CompanyID)
	suite.Equal(models.MemberRoleAdmin, member.Role)

	member, err = suite.repo.FindByEmail(context.Background(), " "+tenant.Member.Email)
	suite.Require().NoError(err)
	suite.Require().NotNil(member)
	suite.Equal(models.MemberRoleMember, member.Role)
}

func (suite *CompanyMemberRepositoryTestSuite) TestSecondMembershipIsUniqueViolation() {
	tenant := suite.factories.SeedTenant(suite.T(), suite.db)
	other := suite.factories.SeedTenant(suite.T(), suite.db)

	err := suite.repo.Create(context.Background(), &models.CompanyMember{
		UserID:    tenant.Member.ID,
		CompanyID: other.Company.ID,
		Role:      models.MemberRoleMember,
	})
	suite.Require().Error(err)
	suite.True(IsUniqueViolation(err))
}

func (suite *CompanyMemberRepositoryTestSuite) TestWithTxRollsBack() {
	tenant := suite.factories.SeedTenant(suite.T(), suite.db)
	user := suite.factories.SeedUser(suite.T(), suite.db, "rollback@example.com", "")
	boom := errors.New("boom")

	err := database.WithTransaction(context.Background(), suite.db, func(tx *gorm.DB) error {
		if err := suite.repo.WithTx(tx).Create(context.Background(), &models.CompanyMember{
			UserID:    user.ID,
			CompanyID: tenant.Company.ID,
			Role:      models.MemberRoleMember,
		}); err != nil {
			return err
		}
		return boom
	})
	suite.ErrorIs(err, boom)

	member, err := suite.repo.FindByUserID(context.Background(), user.ID)
	suite.NoError(err)
	suite.Nil(member)
}

func (suite *CompanyMemberRepositoryTestSuite) TestListByCompanyID() {
	tenant := suite.factories.SeedTenant(suite.T(), suite.db)
	suite.factories.SeedTenant(suite.T(), suite.db)

	rows, err := suite.repo.ListByCompanyID(context.Background(), tenant.Company.ID)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)

	byUser := map[uuid.UUID]MemberWithUser{}
	for _, row := range rows {
		byUser[row.UserID] = row
	}
	suite.Equal("Founder", byUser[tenant.Admin.ID].Position)
	suite.Equal(tenant.Member.Email, byUser[tenant.Member.ID].Email)
}

func TestCompanyMemberRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(CompanyMemberRepositoryTestSuite))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: company_members.user_id (2067)")))
	assert.False(t, IsUniqueViolation(gorm.ErrRecordNotFound))
	assert.True(t, IsNotFound(gorm.ErrRecordNotFound))
}
