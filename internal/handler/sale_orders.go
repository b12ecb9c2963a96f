package handler

import (
	"net/http"

	"inventra/internal/apierror"
	"inventra/internal/dto"
	"inventra/internal/middleware"
	"inventra/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SaleOrdersHandler struct {
	svc      service.SaleOrderService
	invoices *InvoiceFiles
}

// InvoiceFiles resolves stored invoice names to their on-disk location for the
// download endpoint.
type InvoiceFiles struct {
	Resolve func(fileName string) string
}

func NewSaleOrdersHandler(svc service.SaleOrderService, invoices *InvoiceFiles) *SaleOrdersHandler {
	return &SaleOrdersHandler{svc: svc, invoices: invoices}
}

// Create runs the full fulfillment workflow. Stock validation and decrement
// are atomic with the order insert; shipment and invoice follow best-effort,
// surfacing their failures in the response's warnings array.
func (h *SaleOrdersHandler) Create(c *gin.Context) {
	var req dto.CreateSaleOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Authentication required"))
		return
	}

	resp, err := h.svc.Fulfill(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SaleOrdersHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Authentication required"))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Could not list sale orders"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SaleOrdersHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Authentication required"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SaleOrdersHandler) UpdatePayment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Authentication required"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	var req dto.UpdateSaleOrderPaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdatePayment(c.Request.Context(), userID, id, req.PaymentReceived)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DownloadInvoice streams the order's generated PDF.
func (h *SaleOrdersHandler) DownloadInvoice(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Authentication required"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	order, err := h.svc.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if order.InvoiceURL == nil {
		c.JSON(http.StatusNotFound, apierror.New("Invoice has not been generated for this order"))
		return
	}
	c.FileAttachment(h.invoices.Resolve("invoice_"+order.ID+".pdf"), "invoice_"+order.ID+".pdf")
}
