package routes_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	_ "business-hub-backend/docs"
	"business-hub-backend/internal/api/routes"
	"business-hub-backend/internal/config"
	"business-hub-backend/internal/metrics"
	"business-hub-backend/internal/mocks"
	"business-hub-backend/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type RoutesTestSuite struct {
	suite.Suite
	*testutils.HTTPTestSuite
	ctrl   *gomock.Controller
	db     *gorm.DB
	cfg    *config.Config
	mailer *mocks.MockSender
}

func (s *RoutesTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.ctrl = gomock.NewController(s.T())
	s.db = testutils.NewSQLiteDB(s.T())
	s.cfg = testutils.NewTestConfig()
	s.mailer = mocks.NewMockSender(s.ctrl)

	router, err := routes.NewRouter(s.db, s.cfg, routes.Dependencies{Mailer: s.mailer, Metrics: metrics.New()})
	s.Require().NoError(err)
	s.HTTPTestSuite = &testutils.HTTPTestSuite{Router: router}
}

func (s *RoutesTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RoutesTestSuite) path(p string) string {
	return s.cfg.APIPrefix + p
}

func (s *RoutesTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

// register signs a user up and logs them in through the form endpoint
func (s *RoutesTestSuite) register(email, name string) string {
	w := s.MakeRequest(http.MethodPost, s.path("/users/signup"), map[string]string{
		"email":    email,
		"name":     name,
		"password": "secret1",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.Equal("User created Successfully", s.decode(w)["message"])

	w = s.MakeFormRequest(http.MethodPost, s.path("/users/login"), url.Values{
		"username": {email},
		"password": {"secret1"},
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	body := s.decode(w)
	s.Equal("bearer", body["token_type"])
	return body["access_token"].(string)
}

func (s *RoutesTestSuite) createCompany(token, name string) string {
	w := s.MakeAuthRequest(http.MethodPost, s.path("/company/create"), token, map[string]string{"name": name})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	body := s.decode(w)
	s.Equal("Company created successfully", body["message"])
	return body["company"].(map[string]interface{})["id"].(string)
}

func (s *RoutesTestSuite) TestHealthAndMetrics() {
	w := s.MakeRequest(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("healthy", s.decode(w)["status"])

	s.Equal(http.StatusOK, s.MakeRequest(http.MethodGet, "/health/live", nil).Code)
	s.Equal(http.StatusOK, s.MakeRequest(http.MethodGet, "/health/ready", nil).Code)

	w = s.MakeRequest(http.MethodGet, "/metrics", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `business_hub_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func (s *RoutesTestSuite) TestSwaggerDocument() {
	w := s.MakeRequest(http.MethodGet, "/swagger/doc.json", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var doc struct {
		BasePath string                                `json:"basePath"`
		Paths    map[string]map[string]json.RawMessage `json:"paths"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &doc))
	s.Equal("/api/v1", doc.BasePath)
	s.Contains(doc.Paths, "/company/invitation/join")
	s.Contains(doc.Paths["/company/invite/{email}"], "post")
	s.Contains(doc.Paths["/tasks/{id}/status"], "patch")
	s.Contains(doc.Paths["/sales/{id}"], "put")
}

func (s *RoutesTestSuite) TestAuthenticationRequired() {
	w := s.MakeRequest(http.MethodGet, s.path("/users/me"), nil)
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.MakeAuthRequest(http.MethodGet, s.path("/users/me"), "garbage", nil)
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.MakeRequest(http.MethodPost, s.path("/users/login"), map[string]string{"username": "nobody@example.com", "password": "secret1"})
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Invalid email or password", s.decode(w)["error"])
}

func (s *RoutesTestSuite) TestProfile() {
	token := s.register("profile@example.com", "Pat")

	w := s.MakeAuthRequest(http.MethodPatch, s.path("/users/me"), token, map[string]string{"name": "Patricia"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.MakeAuthRequest(http.MethodGet, s.path("/users/me"), token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("Patricia", s.decode(w)["name"])

	w = s.MakeRequest(http.MethodPost, s.path("/users/signup"), map[string]string{
		"email": "profile@example.com", "name": "Again", "password": "secret1",
	})
	s.Equal(http.StatusConflict, w.Code)
}

func (s *RoutesTestSuite) TestCompanyAndGenericInvitation() {
	adminToken := s.register("owner@example.com", "Owner")
	companyID := s.createCompany(adminToken, "Acme Widgets")

	w := s.MakeAuthRequest(http.MethodPost, s.path("/company/create"), adminToken, map[string]string{"name": "Second"})
	s.Equal(http.StatusConflict, w.Code)

	joinerToken := s.register("joiner@example.com", "Joiner")

	w = s.MakeAuthRequest(http.MethodGet, s.path("/company/invitation/link"), joinerToken, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.MakeAuthRequest(http.MethodGet, s.path("/company/"+companyID), joinerToken, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.MakeAuthRequest(http.MethodGet, s.path("/company/invitation/link?position=Designer"), adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	link := s.decode(w)["link"].(string)
	s.True(strings.HasPrefix(link, s.path("/company/invitation/join?token=")))

	w = s.MakeRequest(http.MethodGet, link, nil)
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.MakeAuthRequest(http.MethodGet, link, joinerToken, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	body := s.decode(w)
	s.Equal("You have successfully joined the company: Acme Widgets", body["message"])
	s.Equal("Designer", body["position"])

	w = s.MakeAuthRequest(http.MethodGet, link, joinerToken, nil)
	s.Equal(http.StatusConflict, w.Code)

	// membership is read per request, so the pre-join token now sees the company
	w = s.MakeAuthRequest(http.MethodGet, s.path("/company/"+companyID), joinerToken, nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.MakeAuthRequest(http.MethodPut, s.path("/company/"+companyID), joinerToken, map[string]string{"name": "Hijacked"})
	s.Equal(http.StatusForbidden, w.Code)

	w = s.MakeAuthRequest(http.MethodGet, s.path("/company/company/members"), joinerToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var members []map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &members))
	s.Len(members, 2)

	w = s.MakeRequest(http.MethodGet, s.path("/company/invitation/join?token=not.a.token"), nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	w = s.MakeAuthRequest(http.MethodGet, s.path("/company/invitation/join?token=not.a.token"), joinerToken, nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RoutesTestSuite) TestTargetedInvitation() {
	adminToken := s.register("boss@example.com", "Boss")
	s.createCompany(adminToken, "Targeted Co")
	s.register("hire@example.com", "Hire")
	otherToken := s.register("other@example.com", "Other")

	var mailed string
	s.mailer.EXPECT().
		Send(gomock.Any(), "Invitation link", gomock.Any(), []string{"hire@example.com"}).
		DoAndReturn(func(_ context.Context, _, body string, _ []string) error {
			mailed = body
			return nil
		})

	w := s.MakeAuthRequest(http.MethodPost, s.path("/company/invite/hire@example.com"), adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("Invitation link sent successfully", s.decode(w)["message"])

	s.Require().True(strings.HasPrefix(mailed, s.cfg.ServerURL+s.path("/company/join?token=")))
	target := strings.TrimPrefix(mailed, s.cfg.ServerURL)

	w = s.MakeAuthRequest(http.MethodGet, target, otherToken, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.MakeRequest(http.MethodGet, target, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("You have successfully joined the company", s.decode(w)["message"])

	w = s.MakeAuthRequest(http.MethodPost, s.path("/company/invite/hire@example.com"), adminToken, nil)
	s.Equal(http.StatusConflict, w.Code)

	w = s.MakeRequest(http.MethodGet, s.path("/company/join"), nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RoutesTestSuite) TestTasksAndSalesAccess() {
	adminToken := s.register("lead@example.com", "Lead")
	s.createCompany(adminToken, "Board Co")
	memberToken := s.register("crew@example.com", "Crew")

	w := s.MakeAuthRequest(http.MethodGet, s.path("/company/invitation/link"), adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	w = s.MakeAuthRequest(http.MethodGet, s.decode(w)["link"].(string), memberToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.MakeAuthRequest(http.MethodPost, s.path("/projects"), memberToken, map[string]string{"title": "Nope"})
	s.Equal(http.StatusForbidden, w.Code)

	w = s.MakeAuthRequest(http.MethodPost, s.path("/projects"), adminToken, map[string]string{"title": "Launch"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	projectID := s.decode(w)["id"].(string)

	w = s.MakeAuthRequest(http.MethodPost, s.path("/tasks"), memberToken, map[string]string{"project_id": projectID, "title": "Sneaky"})
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("Only company admins can manage tasks", s.decode(w)["error"])

	w = s.MakeAuthRequest(http.MethodPost, s.path("/tasks"), adminToken, map[string]string{"project_id": projectID, "title": "Ship"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	taskID := s.decode(w)["id"].(string)

	w = s.MakeAuthRequest(http.MethodPatch, s.path("/tasks/"+taskID+"/status"), memberToken, map[string]string{"status": "done"})
	s.Equal(http.StatusForbidden, w.Code)

	w = s.MakeAuthRequest(http.MethodPatch, s.path("/tasks/"+taskID+"/status"), adminToken, map[string]string{"status": "done"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("done", s.decode(w)["status"])

	w = s.MakeAuthRequest(http.MethodPatch, s.path("/tasks/"+taskID+"/status"), adminToken, map[string]string{"status": "lost"})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.MakeAuthRequest(http.MethodGet, s.path("/projects/"+projectID+"/tasks"), memberToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(s.decode(w)["tasks"], 1)

	w = s.MakeAuthRequest(http.MethodGet, s.path("/tasks/not-a-uuid"), memberToken, nil)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.MakeAuthRequest(http.MethodGet, s.path("/sales"), memberToken, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.MakeAuthRequest(http.MethodPost, s.path("/sales"), adminToken, map[string]interface{}{
		"customer_name": "Globex", "product": "Gadget", "amount": 1500,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	saleID := s.decode(w)["id"].(string)

	w = s.MakeAuthRequest(http.MethodPatch, s.path("/sales/"+saleID+"/status"), adminToken, map[string]string{"status": "cancelled"})
	s.Require().Equal(http.StatusOK, w.Code)
	w = s.MakeAuthRequest(http.MethodPatch, s.path("/sales/"+saleID+"/status"), adminToken, map[string]string{"status": "completed"})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.MakeAuthRequest(http.MethodDelete, s.path("/tasks/"+taskID), adminToken, nil)
	s.Equal(http.StatusNoContent, w.Code)
}

func TestRoutesTestSuite(t *testing.T) {
	suite.Run(t, new(RoutesTestSuite))
}
