package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kitchencloud/backend/internal/infrastructure/auth"
	"github.com/kitchencloud/backend/internal/interfaces/http/handler"
	"github.com/kitchencloud/backend/internal/interfaces/http/middleware"
)

// Handlers are the endpoints mounted by Mount
type Handlers struct {
	Orders          *handler.OrderHandler
	Accounts        *handler.AccountHandler
	Recommendations *handler.RecommendationHandler
	Health          *handler.HealthHandler
}

// Mount registers the health probes on the engine and the order API under /api/v1.
// Every API route except recommendations requires a bearer token.
func Mount(engine *gin.Engine, validator middleware.TokenValidator, h Handlers, log *zap.Logger) *Router {
	engine.GET("/health", h.Health.Health)
	engine.GET("/health/ready", h.Health.Ready)

	jwtCfg := middleware.DefaultJWTConfig(validator)
	jwtCfg.Logger = log
	perm := middleware.PermissionConfig{Logger: log}
	role := func(roles ...auth.Role) gin.HandlerFunc {
		return middleware.RequireRoleWithConfig(perm, roles...)
	}

	r := NewRouter(engine, WithAPIVersion("v1")).
		Use(middleware.JWTAuthMiddlewareWithConfig(jwtCfg), middleware.TracingAttributeInjector())

	orders := NewDomainGroup("orders", "/orders")
	orders.POST("", role(auth.RoleCustomer, auth.RoleAdmin), h.Orders.PlaceOrder)
	orders.GET("", role(auth.RoleAdmin), h.Orders.ListOrders)
	orders.GET("/available", role(auth.RoleDelivery, auth.RoleAdmin), h.Orders.ListAvailable)
	orders.GET("/deliveries", role(auth.RoleDelivery), h.Orders.ListDeliveries)
	orders.GET("/:id", h.Orders.GetOrder)
	orders.PUT("/:id/assign", role(auth.RoleDelivery), h.Orders.AssignCourier)
	orders.PUT("/:id/status", role(auth.RoleRestaurant, auth.RoleDelivery, auth.RoleAdmin), h.Orders.UpdateStatus)

	accounts := NewDomainGroup("accounts", "/accounts")
	accounts.GET("/:id", role(auth.RoleCustomer, auth.RoleAdmin), h.Accounts.GetAccount)
	accounts.GET("/:id/orders", role(auth.RoleCustomer, auth.RoleAdmin), h.Orders.ListAccountOrders)

	restaurants := NewDomainGroup("restaurants", "/restaurants")
	restaurants.GET("/:id/orders", role(auth.RoleRestaurant, auth.RoleAdmin), h.Orders.ListRestaurantOrders)

	recommendations := NewDomainGroup("recommendations", "/recommendations")
	recommendations.GET("", h.Recommendations.Popular)
	recommendations.GET("/:accountId", h.Recommendations.ForAccount)

	r.Register(orders).Register(accounts).Register(restaurants).Register(recommendations)
	r.Setup()
	return r
}
