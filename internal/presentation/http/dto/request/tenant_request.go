package request

import "github.com/google/uuid"

// CreateTenantRequest represents a tenant creation request
type CreateTenantRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=255"`
	Slug     string `json:"slug"`
	Currency string `json:"currency" binding:"omitempty,len=3"`
}

// InviteMemberRequest represents a membership invitation request
type InviteMemberRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	Role   string    `json:"role" binding:"required,oneof=owner admin cashier user"`
}

// CreateBranchRequest represents a branch creation request
type CreateBranchRequest struct {
	Name    string  `json:"name" binding:"required,min=2,max=255"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

// UpdateBranchRequest represents a branch update request
type UpdateBranchRequest struct {
	Name    *string `json:"name,omitempty" binding:"omitempty,min=2,max=255"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Active  *bool   `json:"active,omitempty"`
}
