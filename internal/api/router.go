// Package api exposes the catalog over HTTP with gin.
package api

import (
	"sync"

	"github.com/ashendes/catalog-service/internal/catalog"
	"github.com/ashendes/catalog-service/internal/metrics"
	"github.com/ashendes/catalog-service/internal/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler serves the catalog endpoints
type Handler struct {
	catalog *catalog.Service
	checker *HealthChecker
}

// RouterConfig holds the HTTP-level settings
type RouterConfig struct {
	ServiceName string
	CORSOrigins []string
}

var registerTagName sync.Once

// NewRouter wires middleware and routes
func NewRouter(cfg RouterConfig, svc *catalog.Service, hc *HealthChecker) *gin.Engine {
	registerTagName.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(models.JSONTagName)
		}
	})

	h := &Handler{catalog: svc, checker: hc}

	router := gin.New()
	router.RedirectTrailingSlash = false
	router.Use(gin.Recovery())
	router.Use(RequestLogger())
	router.Use(metrics.PrometheusMiddleware(cfg.ServiceName))
	if len(cfg.CORSOrigins) > 0 {
		router.Use(corsMiddleware(cfg.CORSOrigins))
	}

	router.GET("/", h.root)
	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	resource(router.Group("/brands"), h.listBrands, h.createBrand, h.getBrand, h.patchBrand, h.deleteBrand)
	resource(router.Group("/categories"), h.listCategories, h.createCategory, h.getCategory, h.patchCategory, h.deleteCategory)
	resource(router.Group("/orders"), h.listOrders, h.createOrder, h.getOrder, h.patchOrder, h.deleteOrder)
	resource(router.Group("/order_items"), h.listOrderItems, h.createOrderItem, h.getOrderItem, h.patchOrderItem, h.deleteOrderItem)

	products := router.Group("/products")
	resource(products, h.listProducts, h.createProduct, h.getProduct, h.patchProduct, h.deleteProduct)
	products.PUT("/:id", h.updateProduct)
	products.PUT("/:id/", h.updateProduct)

	users := router.Group("/users")
	resource(users, h.listUsers, h.createUser, h.getUser, h.patchUser, h.deleteUser)
	users.PUT("/:id", h.updateUser)
	users.PUT("/:id/", h.updateUser)

	return router
}

// resource registers the collection and item routes, each with and without a
// trailing slash.
func resource(g *gin.RouterGroup, list, create, get, patch, del gin.HandlerFunc) {
	for _, p := range []string{"", "/"} {
		g.GET(p, list)
		g.POST(p, create)
	}
	for _, p := range []string{"/:id", "/:id/"} {
		g.GET(p, get)
		g.PATCH(p, patch)
		g.DELETE(p, del)
	}
}

// corsMiddleware expects at least one origin
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader, constraintHeader},
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cors.New(cfg)
		}
	}
	cfg.AllowOrigins = origins
	return cors.New(cfg)
}
