package httpserver

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func generateInvoiceHandler(logger *log.Logger, client invoiceClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		doc, err := client.Generate(c.Request.Context(), orderID)
		if err != nil {
			writeError(c, logger, err)
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice_%d.pdf", orderID))
		c.Data(http.StatusOK, doc.ContentType, doc.Data)
	}
}

func invoiceOrderHandler(logger *log.Logger, client invoiceClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		body, err := client.FetchOrder(c.Request.Context(), orderID)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.Data(http.StatusOK, "application/json", body)
	}
}
