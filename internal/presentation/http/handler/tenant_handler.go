package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/washpoint/washpoint-api/internal/application/service"
	"github.com/washpoint/washpoint-api/internal/presentation/http/dto/request"
	"github.com/washpoint/washpoint-api/internal/presentation/http/dto/response"
)

// TenantHandler handles tenant and branch HTTP requests
type TenantHandler struct {
	tenantService *service.TenantService
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService *service.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// CreateTenant creates a tenant owned by the authenticated user
func (h *TenantHandler) CreateTenant(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req request.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tenant, err := h.tenantService.CreateTenant(c.Request.Context(), &service.CreateTenantInput{
		Name:     req.Name,
		Slug:     req.Slug,
		OwnerID:  *userID,
		Currency: req.Currency,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Tenant created", tenant)
}

// GetTenant returns the current tenant
func (h *TenantHandler) GetTenant(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid tenant ID")
		return
	}

	tenant, err := h.tenantService.GetTenant(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tenant retrieved", tenant)
}

// MyTenants lists tenants the authenticated user belongs to
func (h *TenantHandler) MyTenants(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	tenants, err := h.tenantService.GetUserTenants(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tenants retrieved", tenants)
}

// InviteMember adds a user to the tenant
func (h *TenantHandler) InviteMember(c *gin.Context) {
	tenantID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req request.InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.tenantService.InviteMember(c.Request.Context(), &service.InviteMemberInput{
		TenantID: tenantID,
		UserID:   req.UserID,
		Role:     req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Member invited", nil)
}

// RemoveMember removes a user from the tenant
func (h *TenantHandler) RemoveMember(c *gin.Context) {
	tenantID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid tenant ID")
		return
	}
	userID, ok := ParseUUIDParam(c, "userId")
	if !ok {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.tenantService.RemoveMember(c.Request.Context(), tenantID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ListMembers lists the tenant's memberships
func (h *TenantHandler) ListMembers(c *gin.Context) {
	tenantID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid tenant ID")
		return
	}

	members, err := h.tenantService.GetTenantMembers(c.Request.Context(), tenantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Members retrieved", members)
}

// CreateBranch creates a branch under the current tenant
func (h *TenantHandler) CreateBranch(c *gin.Context) {
	var req request.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	branch, err := h.tenantService.CreateBranch(c.Request.Context(), &service.CreateBranchInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Branch created", branch)
}

// GetBranch returns one branch
func (h *TenantHandler) GetBranch(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid branch ID")
		return
	}

	branch, err := h.tenantService.GetBranch(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branch retrieved", branch)
}

// ListBranches lists the tenant's branches
func (h *TenantHandler) ListBranches(c *gin.Context) {
	branches, err := h.tenantService.ListBranches(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branches retrieved", branches)
}

// UpdateBranch updates branch details
func (h *TenantHandler) UpdateBranch(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid branch ID")
		return
	}

	var req request.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	branch, err := h.tenantService.UpdateBranch(c.Request.Context(), &service.UpdateBranchInput{
		ID:      id,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Active:  req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branch updated", branch)
}
