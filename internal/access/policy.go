package access

import (
	_ "embed"
	"fmt"
	"strings"

	"business-hub-backend/internal/database/models"
	apperrors "business-hub-backend/internal/errors"
	"business-hub-backend/internal/logger"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/google/uuid"
)

//go:embed model.conf
var modelText string

// Resource is a company-scoped object guarded by the policy
type Resource string

const (
	ResourceCompany    Resource = "company"
	ResourceMember     Resource = "member"
	ResourceInvitation Resource = "invitation"
	ResourceProject    Resource = "project"
	ResourceTask       Resource = "task"
	ResourceSale       Resource = "sale"
)

// Action is what the caller wants to do with a resource
type Action string

const (
	ActionRead  Action = "read"
	ActionWrite Action = "write"
)

// Decision is the outcome of an authorization check
type Decision int

const (
	Denied Decision = iota
	Allowed
)

func (d Decision) String() string {
	if d == Allowed {
		return "allowed"
	}
	return "denied"
}

var deniedMessages = map[Resource]string{
	ResourceCompany:    "Only company admins can update the company",
	ResourceInvitation: "Only company admins can invite members",
	ResourceProject:    "Only company admins can manage projects",
	ResourceTask:       "Only company admins can manage tasks",
	ResourceSale:       "Only company admins can access sales",
}

// Policy decides Admin/Member access. Admin inherits every Member grant.
type Policy struct {
	enforcer *casbin.SyncedEnforcer
}

// NewPolicy builds the in-memory role model
func NewPolicy() (*Policy, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse access model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create enforcer: %w", err)
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, fmt.Errorf("failed to seed access policies: %w", err)
	}
	return &Policy{enforcer: enforcer}, nil
}

func subject(role models.MemberRole) string {
	return "role:" + strings.ToLower(string(role))
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	member := subject(models.MemberRoleMember)
	admin := subject(models.MemberRoleAdmin)

	policies := [][]string{
		// Member permissions (read-only)
		{member, string(ResourceCompany), string(ActionRead)},
		{member, string(ResourceMember), string(ActionRead)},
		{member, string(ResourceProject), string(ActionRead)},
		{member, string(ResourceTask), string(ActionRead)},

		// Admin permissions
		{admin, string(ResourceCompany), string(ActionWrite)},
		{admin, string(ResourceInvitation), string(ActionWrite)},
		{admin, string(ResourceProject), string(ActionWrite)},
		{admin, string(ResourceTask), string(ActionWrite)},
		{admin, string(ResourceSale), string(ActionRead)},
		{admin, string(ResourceSale), string(ActionWrite)},
	}
	if _, err := enforcer.AddPolicies(policies); err != nil {
		return err
	}
	_, err := enforcer.AddGroupingPolicy(admin, member)
	return err
}

// Authorize returns Allowed when the membership's role grants action on
// resource. A nil membership is always Denied.
func (p *Policy) Authorize(member *models.CompanyMember, resource Resource, action Action) Decision {
	if member == nil || !member.Role.IsValid() {
		return Denied
	}
	ok, err := p.enforcer.Enforce(subject(member.Role), string(resource), string(action))
	if err != nil {
		logger.New().WithError(err).WithFields(map[string]interface{}{
			"resource": resource,
			"action":   action,
		}).Error("Access policy evaluation failed")
		return Denied
	}
	if !ok {
		return Denied
	}
	return Allowed
}

// Check is Authorize as an error: ErrNoCompany for callers without a
// membership, otherwise an AuthorizationError naming the resource.
func (p *Policy) Check(member *models.CompanyMember, resource Resource, action Action) error {
	if member == nil {
		return apperrors.ErrNoCompany
	}
	if p.Authorize(member, resource, action) == Allowed {
		return nil
	}
	if msg, ok := deniedMessages[resource]; ok {
		return apperrors.NewAuthorizationError(msg)
	}
	return apperrors.NewAuthorizationError(fmt.Sprintf("You are not allowed to %s %s", action, resource))
}

// CheckCompany runs Check and also requires the membership to belong to
// companyID
func (p *Policy) CheckCompany(member *models.CompanyMember, companyID uuid.UUID, resource Resource, action Action) error {
	if err := p.Check(member, resource, action); err != nil {
		return err
	}
	if member.CompanyID != companyID {
		return apperrors.ErrNotCompanyMember
	}
	return nil
}
