package httpserver

import (
	"context"
	"log"
	"time"

	"storefront/internal/domain"
	"storefront/internal/invoice"
	authsvc "storefront/internal/service/auth"
	checkoutsvc "storefront/internal/service/checkout"
	productsvc "storefront/internal/service/product"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type authService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, creds authsvc.Credentials) (domain.Identity, string, error)
	SessionTTLSeconds() int
}

type sessionVerifier interface {
	Verify(token string) (domain.Identity, error)
}

type checkoutService interface {
	Checkout(ctx context.Context, identity domain.Identity, items []checkoutsvc.ItemInput) (*checkoutsvc.Result, error)
}

type orderService interface {
	ListForUser(ctx context.Context, identity domain.Identity) ([]domain.OrderSummary, error)
	Detail(ctx context.Context, identity domain.Identity, orderID int64) (*domain.OrderDetail, error)
	ListAll(ctx context.Context) ([]domain.AdminOrder, error)
	Advance(ctx context.Context, orderID int64) (domain.PaymentStatus, error)
}

type productService interface {
	List(ctx context.Context, includeUnavailable bool) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, in productsvc.CreateInput) (*domain.Product, error)
	Update(ctx context.Context, id int64, in productsvc.UpdateInput) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

type invoiceClient interface {
	Generate(ctx context.Context, orderID int64) (*invoice.Document, error)
	FetchOrder(ctx context.Context, orderID int64) ([]byte, error)
}

// Deps bundles the services the router dispatches to. FederatedSecret
// authenticates the trusted frontend relay on the federated sign-in
// endpoint; when empty, that endpoint rejects every request.
type Deps struct {
	AuthSvc         authService
	Sessions        sessionVerifier
	CheckoutSvc     checkoutService
	OrderSvc        orderService
	ProductSvc      productService
	Invoices        invoiceClient
	CORSOrigins     []string
	FederatedSecret string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestIDMiddleware(), gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	api.POST("/auth/signup", signupHandler(logger, deps.AuthSvc))
	api.POST("/auth/login", loginHandler(logger, deps.AuthSvc))
	api.POST("/auth/federated", federatedHandler(logger, deps.AuthSvc, deps.FederatedSecret))
	api.GET("/products", listProductsHandler(logger, deps.ProductSvc))
	api.GET("/products/:id", getProductHandler(logger, deps.ProductSvc))

	authed := api.Group("", authMiddleware(deps.Sessions))
	authed.GET("/auth/me", meHandler())
	authed.POST("/checkout", checkoutHandler(logger, deps.CheckoutSvc))
	authed.GET("/orders", listOrdersHandler(logger, deps.OrderSvc))
	authed.GET("/orders/:orderId", orderDetailHandler(logger, deps.OrderSvc))
	authed.POST("/invoice/generate/:orderId", generateInvoiceHandler(logger, deps.Invoices))
	authed.GET("/invoice/orders/:orderId", invoiceOrderHandler(logger, deps.Invoices))

	admin := authed.Group("/admin", requireAdmin())
	admin.GET("/orders", adminOrdersHandler(logger, deps.OrderSvc))
	admin.POST("/orders/:id/advance", advanceOrderHandler(logger, deps.OrderSvc))
	admin.GET("/products", adminProductsHandler(logger, deps.ProductSvc))
	admin.POST("/products", createProductHandler(logger, deps.ProductSvc))
	admin.PUT("/products/:id", updateProductHandler(logger, deps.ProductSvc))
	admin.DELETE("/products/:id", deleteProductHandler(logger, deps.ProductSvc))

	return router, nil
}
