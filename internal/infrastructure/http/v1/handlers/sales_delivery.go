package handlers

import (
	"github.com/gin-gonic/gin"

	"moneta/internal/domain/documents/sales_delivery"
	"moneta/internal/infrastructure/http/v1/dto"
)

// SalesDeliveryHandler serves sales delivery endpoints.
type SalesDeliveryHandler struct {
	*DocumentHandler[*sales_delivery.SalesDelivery, dto.SalesDeliveryRequest]
	svc *sales_delivery.Service
}

// NewSalesDeliveryHandler creates the handler.
func NewSalesDeliveryHandler(svc *sales_delivery.Service) *SalesDeliveryHandler {
	return &SalesDeliveryHandler{
		DocumentHandler: NewDocumentHandler[*sales_delivery.SalesDelivery, dto.SalesDeliveryRequest](svc),
		svc:             svc,
	}
}

// List handles GET / with delivery-specific filters.
func (h *SalesDeliveryHandler) List(c *gin.Context) {
	base, dateFrom, dateTo, ok := h.parseDocumentListFilter(c)
	if !ok {
		return
	}

	customerID, ok := h.ParseOptionalIDQuery(c, "customerId")
	if !ok {
		return
	}

	result, err := h.svc.List(c.Request.Context(), sales_delivery.ListFilter{
		ListFilter: base,
		CustomerID: customerID,
		DateFrom:   dateFrom,
		DateTo:     dateTo,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(result))
}
