package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/washpoint/washpoint-api/internal/application/service"
	"github.com/washpoint/washpoint-api/internal/presentation/http/dto/request"
	"github.com/washpoint/washpoint-api/internal/presentation/http/dto/response"
)

// CashSessionHandler handles cash session HTTP requests
type CashSessionHandler struct {
	cashSessionService *service.CashSessionService
}

// NewCashSessionHandler creates a new cash session handler
func NewCashSessionHandler(cashSessionService *service.CashSessionService) *CashSessionHandler {
	return &CashSessionHandler{cashSessionService: cashSessionService}
}

// Open opens a cash session for a branch
func (h *CashSessionHandler) Open(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req request.OpenCashSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.cashSessionService.Open(c.Request.Context(), req.BranchID, *userID, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Cash session opened", session)
}

// Close reconciles and closes a cash session
func (h *CashSessionHandler) Close(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	sessionID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.CloseCashSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	counted := make([]service.CountedAmount, 0, len(req.Counted))
	for _, line := range req.Counted {
		counted = append(counted, service.CountedAmount{
			PaymentMethodID: line.PaymentMethodID,
			Total:           toCents(line.Total),
			Tips:            toCents(line.Tips),
		})
	}

	session, err := h.cashSessionService.Close(c.Request.Context(), sessionID, *userID, counted, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cash session closed", session)
}

// Get returns one cash session with its reconciliation counts
func (h *CashSessionHandler) Get(c *gin.Context) {
	sessionID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	session, err := h.cashSessionService.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cash session retrieved", session)
}

// List lists cash sessions, optionally filtered by branch
func (h *CashSessionHandler) List(c *gin.Context) {
	params := ParsePagination(c)

	branchID, ok := ParseUUIDQuery(c, "branch_id")
	if !ok {
		response.BadRequest(c, "Invalid branch ID")
		return
	}

	result, err := h.cashSessionService.ListSessions(c.Request.Context(), branchID, &params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Cash sessions retrieved", result)
}
