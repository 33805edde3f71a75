package httpserver

import (
	"log"
	"net/http"
	"time"

	checkoutsvc "storefront/internal/service/checkout"

	"github.com/gin-gonic/gin"
)

// checkoutRequest is the cart snapshot the client submits. A client-supplied
// total is not part of the contract and would be ignored anyway: the server
// computes the authoritative total from the items.
type checkoutRequest struct {
	Items []checkoutsvc.ItemInput `json:"items"`
}

type checkoutOrder struct {
	OrderID    int64     `json:"orderId"`
	TotalPrice int64     `json:"totalPrice"`
	CreatedAt  time.Time `json:"createdAt"`
}

type checkoutResponse struct {
	Success bool          `json:"success"`
	Order   checkoutOrder `json:"order"`
}

func checkoutHandler(logger *log.Logger, svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid checkout payload"})
			return
		}

		res, err := svc.Checkout(c.Request.Context(), identityFrom(c), req.Items)
		if err != nil {
			writeError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, checkoutResponse{
			Success: true,
			Order: checkoutOrder{
				OrderID:    res.OrderID,
				TotalPrice: res.TotalPriceCents,
				CreatedAt:  res.CreatedAt,
			},
		})
	}
}
