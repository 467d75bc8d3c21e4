package service_test

import (
	"testing"

	"business-hub-backend/internal/access"
	"business-hub-backend/internal/auth"
	"business-hub-backend/internal/config"
	"business-hub-backend/internal/metrics"
	"business-hub-backend/internal/mocks"
	"business-hub-backend/internal/repository"
	"business-hub-backend/internal/service"
	"business-hub-backend/internal/testutils"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// testEnv wires every service against a private SQLite database
type testEnv struct {
	db        *gorm.DB
	cfg       *config.Config
	factories *testutils.FactorySet
	codec     *auth.TokenCodec
	hasher    *auth.Hasher
	metrics   *metrics.Metrics
	mailer    *mocks.MockSender

	users       *service.UserService
	companies   *service.CompanyService
	invitations *service.InvitationService
	projects    *service.ProjectService
	tasks       *service.TaskService
	sales       *service.SaleService
}

func newTestEnv(t *testing.T, ctrl *gomock.Controller) *testEnv {
	t.Helper()

	cfg := testutils.NewTestConfig()
	db := testutils.NewSQLiteDB(t)
	policy, err := access.NewPolicy()
	require.NoError(t, err)
	v := validator.New()
	m := metrics.New()
	codec := auth.NewTokenCodec(cfg.JWTSecret, cfg.AppName)
	hasher := auth.NewHasher(cfg.BcryptCost)
	mailer := mocks.NewMockSender(ctrl)

	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	memberRepo := repository.NewCompanyMemberRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	return &testEnv{
		db:        db,
		cfg:       cfg,
		factories: testutils.NewFactorySet(),
		codec:     codec,
		hasher:    hasher,
		metrics:   m,
		mailer:    mailer,

		users:       service.NewUserService(userRepo, hasher, v),
		companies:   service.NewCompanyService(db, companyRepo, memberRepo, policy, m, v),
		invitations: service.NewInvitationService(db, cfg, codec, userRepo, companyRepo, memberRepo, policy, mailer, m, v),
		projects:    service.NewProjectService(projectRepo, policy, v),
		tasks:       service.NewTaskService(taskRepo, projectRepo, memberRepo, policy, v),
		sales:       service.NewSaleService(saleRepo, policy, v),
	}
}

func (e *testEnv) countMembers(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Table("company_members").Count(&n).Error)
	return n
}
