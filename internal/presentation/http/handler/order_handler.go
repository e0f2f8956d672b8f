package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/washpoint/washpoint-api/internal/application/service"
	"github.com/washpoint/washpoint-api/internal/domain/enum"
	"github.com/washpoint/washpoint-api/internal/domain/repository"
	"github.com/washpoint/washpoint-api/internal/presentation/http/dto/request"
	"github.com/washpoint/washpoint-api/internal/presentation/http/dto/response"
)

// OrderHandler handles order, adjustment, payment and document HTTP requests
type OrderHandler struct {
	orderService      *service.OrderService
	adjustmentService *service.AdjustmentService
	paymentService    *service.PaymentService
	documentService   *service.DocumentService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(
	orderService *service.OrderService,
	adjustmentService *service.AdjustmentService,
	paymentService *service.PaymentService,
	documentService *service.DocumentService,
) *OrderHandler {
	return &OrderHandler{
		orderService:      orderService,
		adjustmentService: adjustmentService,
		paymentService:    paymentService,
		documentService:   documentService,
	}
}

// Create opens a new draft order
func (h *OrderHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &service.CreateOrderInput{
		BranchID:   req.BranchID,
		CustomerID: req.CustomerID,
		VehicleID:  req.VehicleID,
		Notes:      req.Notes,
	}, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created", order)
}

// Get returns one order with its items, adjustments and payments
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved", order)
}

// List lists orders with filters
func (h *OrderHandler) List(c *gin.Context) {
	params := repository.OrderFilterParams{
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
		Pagination: ParsePagination(c),
	}

	if raw := c.Query("status"); raw != "" {
		status, ok := enum.ParseOrderStatus(raw)
		if !ok {
			response.BadRequest(c, "Invalid order status")
			return
		}
		params.Status = &status
	}

	branchID, ok := ParseUUIDQuery(c, "branch_id")
	if !ok {
		response.BadRequest(c, "Invalid branch ID")
		return
	}
	params.BranchID = branchID

	customerID, ok := ParseUUIDQuery(c, "customer_id")
	if !ok {
		response.BadRequest(c, "Invalid customer ID")
		return
	}
	params.CustomerID = customerID

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		params.StartDate = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		params.EndDate = &to
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), &params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved", result)
}

// AddItem adds a service line to a mutable order
func (h *OrderHandler) AddItem(c *gin.Context) {
	orderID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.AddOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.AddItem(c.Request.Context(), orderID, req.ServiceID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added", order)
}

// RemoveItem removes a line and its item adjustments
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	orderID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}
	itemID, ok := ParseUUIDParam(c, "itemId")
	if !ok {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	order, err := h.orderService.RemoveItem(c.Request.Context(), orderID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed", order)
}

// SetTip sets the order's tip amount
func (h *OrderHandler) SetTip(c *gin.Context) {
	orderID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.SetTipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.SetTip(c.Request.Context(), orderID, toCents(req.Tip))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tip updated", order)
}

// Transition moves the order to a new lifecycle state
func (h *OrderHandler) Transition(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.Transition(c.Request.Context(), orderID, req.Status, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order transitioned", order)
}

// AddAdjustment creates a manual adjustment on the order or one of its items
func (h *OrderHandler) AddAdjustment(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.AddAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	adjustment, err := h.adjustmentService.AddManual(c.Request.Context(), &service.AddManualInput{
		OrderID:     orderID,
		OrderItemID: req.OrderItemID,
		Mode:        req.Mode,
		Value:       req.Value,
		Reason:      req.Reason,
	}, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Adjustment added", adjustment)
}

// ApplyPromotion instantiates a promotion on the order or one of its items
func (h *OrderHandler) ApplyPromotion(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.ApplyPromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	adjustment, err := h.adjustmentService.ApplyPromotion(c.Request.Context(), orderID, req.PromotionID, req.OrderItemID, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Promotion applied", adjustment)
}

// ApplyMethodPromotion applies the best payment-method promotion, if any
func (h *OrderHandler) ApplyMethodPromotion(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.ApplyMethodPromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	adjustment, err := h.adjustmentService.ApplyPaymentMethodPromotion(c.Request.Context(), orderID, req.MethodCode, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if adjustment == nil {
		response.OK(c, "No applicable promotion", nil)
		return
	}

	response.Created(c, "Promotion applied", adjustment)
}

// RemoveAdjustment deletes an adjustment from a mutable order
func (h *OrderHandler) RemoveAdjustment(c *gin.Context) {
	orderID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}
	adjustmentID, ok := ParseUUIDParam(c, "adjustmentId")
	if !ok {
		response.BadRequest(c, "Invalid adjustment ID")
		return
	}

	if err := h.adjustmentService.Remove(c.Request.Context(), orderID, adjustmentID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// RegisterPayment appends a payment to the order's ledger
func (h *OrderHandler) RegisterPayment(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.paymentService.RegisterPayment(c.Request.Context(), &service.RegisterPaymentInput{
		OrderID:         orderID,
		PaymentMethodID: req.PaymentMethodID,
		Amount:          toCents(req.Amount),
		IsTip:           req.IsTip,
		IdempotencyKey:  req.IdempotencyKey,
	}, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	data := gin.H{
		"payment":  result.Payment,
		"order":    result.Order,
		"replayed": result.Replayed,
	}
	if result.Replayed {
		response.OK(c, "Payment already registered", data)
		return
	}
	response.Created(c, "Payment registered", data)
}

// ListPayments lists the order's ledger entries
func (h *OrderHandler) ListPayments(c *gin.Context) {
	orderID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved", payments)
}

// IssueDocument emits a numbered document snapshot for a settled order
func (h *OrderHandler) IssueDocument(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.IssueDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	document, err := h.documentService.Issue(c.Request.Context(), &service.IssueInput{
		OrderID:      orderID,
		DocumentType: req.DocumentType,
		PointOfSale:  req.PointOfSale,
	}, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Document issued", document)
}

// GetDocument returns one emitted document with its lines
func (h *OrderHandler) GetDocument(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid document ID")
		return
	}

	document, err := h.documentService.GetDocument(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Document retrieved", document)
}
