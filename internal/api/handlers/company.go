package handlers

import (
	"net/http"

	"business-hub-backend/internal/auth"
	"business-hub-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// CompanyHandler handles company and invitation endpoints
type CompanyHandler struct {
	companies   service.CompanyServiceInterface
	invitations service.InvitationServiceInterface
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companies service.CompanyServiceInterface, invitations service.InvitationServiceInterface) *CompanyHandler {
	return &CompanyHandler{
		companies:   companies,
		invitations: invitations,
	}
}

// CreateCompany handles POST /company/create
// @Summary Found a company
// @Description Create a company and make the caller its Admin. Fails when the caller already belongs to a company.
// @Tags company
// @Accept json
// @Produce json
// @Param company body service.CompanyRequest true "Company profile"
// @Success 201 {object} service.CreateCompanyResponse
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 409 {object} ErrorResponse "Caller already belongs to a company"
// @Security BearerAuth
// @Router /company/create [post]
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req service.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	userID, _ := auth.GetUserID(c)
	resp, err := h.companies.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetCompany handles GET /company/:id
// @Summary Get company
// @Tags company
// @Produce json
// @Param id path string true "Company ID (UUID)"
// @Success 200 {object} service.CompanyResponse
// @Failure 403 {object} ErrorResponse "Not a member of this company"
// @Failure 404 {object} ErrorResponse "Company not found"
// @Security BearerAuth
// @Router /company/{id} [get]
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "company")
	if !ok {
		return
	}

	company, err := h.companies.Get(c.Request.Context(), auth.GetMembership(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// UpdateCompany handles PUT /company/:id
// @Summary Update company
// @Tags company
// @Accept json
// @Produce json
// @Param id path string true "Company ID (UUID)"
// @Param company body service.CompanyRequest true "Company profile"
// @Success 200 {object} service.CompanyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Admin only"
// @Security BearerAuth
// @Router /company/{id} [put]
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "company")
	if !ok {
		return
	}

	var req service.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	company, err := h.companies.Update(c.Request.Context(), auth.GetMembership(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// ListMembers handles GET /company/company/members
// @Summary List company members
// @Tags company
// @Produce json
// @Success 200 {array} service.MemberResponse
// @Failure 403 {object} ErrorResponse "Caller has no company"
// @Security BearerAuth
// @Router /company/company/members [get]
func (h *CompanyHandler) ListMembers(c *gin.Context) {
	members, err := h.companies.ListMembers(c.Request.Context(), auth.GetMembership(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

// InvitationLink handles GET /company/invitation/link
// @Summary Issue a generic invitation link
// @Description Anyone holding the link can join the caller's company as a Member for 24 hours.
// @Tags invitations
// @Produce json
// @Param position query string false "Position of the new member" default(Employee)
// @Success 200 {object} service.InvitationLinkResponse
// @Failure 403 {object} ErrorResponse "Admin only"
// @Security BearerAuth
// @Router /company/invitation/link [get]
func (h *CompanyHandler) InvitationLink(c *gin.Context) {
	resp, err := h.invitations.IssueLink(c.Request.Context(), auth.GetMembership(c), c.Query("position"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// JoinByLink handles GET /company/invitation/join
// @Summary Redeem a generic invitation
// @Tags invitations
// @Produce json
// @Param token query string true "Invitation token"
// @Success 200 {object} service.JoinResponse
// @Failure 400 {object} ErrorResponse "Invalid or expired invitation token"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 409 {object} ErrorResponse "Already a member of a company"
// @Security BearerAuth
// @Router /company/invitation/join [get]
func (h *CompanyHandler) JoinByLink(c *gin.Context) {
	h.redeem(c)
}

// SendInvitation handles POST /company/invite/:email
// @Summary Invite a person by email
// @Tags invitations
// @Produce json
// @Param email path string true "Invitee email"
// @Success 200 {object} service.MessageResponse
// @Failure 400 {object} ErrorResponse "Invalid email"
// @Failure 403 {object} ErrorResponse "Admin only"
// @Failure 409 {object} ErrorResponse "Email already belongs to a member"
// @Security BearerAuth
// @Router /company/invite/{email} [post]
func (h *CompanyHandler) SendInvitation(c *gin.Context) {
	resp, err := h.invitations.SendInvitation(c.Request.Context(), auth.GetMembership(c), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// JoinByInvitation handles GET /company/join
// @Summary Redeem an emailed invitation
// @Description Works without a session. With a session the caller's email must match the invitation.
// @Tags invitations
// @Produce json
// @Param token query string true "Invitation token"
// @Success 200 {object} service.JoinResponse
// @Failure 400 {object} ErrorResponse "Invalid or expired invitation token"
// @Failure 403 {object} ErrorResponse "Invitation issued to another email"
// @Failure 404 {object} ErrorResponse "User or company not found"
// @Failure 409 {object} ErrorResponse "Already a member of a company"
// @Router /company/join [get]
func (h *CompanyHandler) JoinByInvitation(c *gin.Context) {
	h.redeem(c)
}

func (h *CompanyHandler) redeem(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "token query parameter is required"})
		return
	}

	var caller *service.Caller
	if userID, ok := auth.GetUserID(c); ok {
		email, _ := auth.GetUserEmail(c)
		caller = &service.Caller{UserID: userID, Email: email}
	}

	resp, err := h.invitations.Redeem(c.Request.Context(), token, caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
