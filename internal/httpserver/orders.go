package httpserver

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

type orderSummaryResponse struct {
	OrderID       int64                `json:"order_id"`
	TotalPrice    int64                `json:"total_price"`
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time            `json:"created_at"`
	TotalItems    int                  `json:"total_items"`
}

func listOrdersHandler(logger *log.Logger, svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		summaries, err := svc.ListForUser(c.Request.Context(), identityFrom(c))
		if err != nil {
			writeError(c, logger, err)
			return
		}

		out := make([]orderSummaryResponse, 0, len(summaries))
		for _, s := range summaries {
			out = append(out, orderSummaryResponse{
				OrderID:       s.OrderID,
				TotalPrice:    s.TotalPriceCents,
				PaymentStatus: s.PaymentStatus,
				CreatedAt:     s.CreatedAt,
				TotalItems:    s.TotalItems,
			})
		}
		c.JSON(http.StatusOK, gin.H{"orders": out})
	}
}

type orderItemResponse struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
	Subtotal    int64  `json:"subtotal"`
}

type orderDetailResponse struct {
	OrderID       int64                `json:"orderId"`
	UserEmail     string               `json:"userEmail"`
	UserName      string               `json:"userName"`
	TotalPrice    int64                `json:"totalPrice"`
	PaymentStatus domain.PaymentStatus `json:"paymentStatus"`
	CreatedAt     time.Time            `json:"createdAt"`
	Items         []orderItemResponse  `json:"items"`
}

func orderDetailHandler(logger *log.Logger, svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		d, err := svc.Detail(c.Request.Context(), identityFrom(c), orderID)
		if err != nil {
			writeError(c, logger, err)
			return
		}

		items := make([]orderItemResponse, 0, len(d.Items))
		for _, item := range d.Items {
			items = append(items, orderItemResponse{
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPriceCents,
				Subtotal:    item.Subtotal(),
			})
		}
		c.JSON(http.StatusOK, orderDetailResponse{
			OrderID:       d.ID,
			UserEmail:     d.UserEmail,
			UserName:      d.UserName,
			TotalPrice:    d.TotalPriceCents,
			PaymentStatus: d.PaymentStatus,
			CreatedAt:     d.CreatedAt,
			Items:         items,
		})
	}
}

func adminOrdersHandler(logger *log.Logger, svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListAll(c.Request.Context())
		if err != nil {
			writeError(c, logger, err)
			return
		}
		if orders == nil {
			orders = []domain.AdminOrder{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

func advanceOrderHandler(logger *log.Logger, svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		status, err := svc.Advance(c.Request.Context(), orderID)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orderId": orderID, "status": status})
	}
}
