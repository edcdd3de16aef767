// Package router contains route registration and the access policy table
// for the HTTP delivery.
package router

import (
	"marketplace/internal/delivery/http/middleware"
	"marketplace/internal/delivery/http/router/handler"
	"marketplace/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	AdminHandler    *handler.AdminHandler
	CustomerHandler *handler.CustomerHandler
	DesignerHandler *handler.DesignerHandler
	ProductHandler  *handler.ProductHandler
	OrderHandler    *handler.OrderHandler
	ReviewHandler   *handler.ReviewHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	auth     *handler.AuthHandler
	admin    *handler.AdminHandler
	customer *handler.CustomerHandler
	designer *handler.DesignerHandler
	product  *handler.ProductHandler
	order    *handler.OrderHandler
	review   *handler.ReviewHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		auth:     params.AuthHandler,
		admin:    params.AdminHandler,
		customer: params.CustomerHandler,
		designer: params.DesignerHandler,
		product:  params.ProductHandler,
		order:    params.OrderHandler,
		review:   params.ReviewHandler,
	}
}

// PolicyTable declares who may reach which routes. The policy middleware
// picks the most specific matching rule, and any path without a rule
// requires an authenticated caller.
func PolicyTable() []middleware.Rule {
	return []middleware.Rule{
		{Method: "GET", Pattern: "/health", Access: middleware.Public()},
		{Method: "GET", Pattern: "/metrics", Access: middleware.Public()},

		{Method: "POST", Pattern: "/auth/register", Access: middleware.Public()},
		{Method: "POST", Pattern: "/auth/login", Access: middleware.Public()},

		{Method: "POST", Pattern: "/admins/login", Access: middleware.Public()},
		{Method: "*", Pattern: "/admins/**", Access: middleware.RequireRole(entity.RoleAdmin)},

		{Method: "POST", Pattern: "/customer/create", Access: middleware.Public()},
		{Method: "POST", Pattern: "/customer/login", Access: middleware.Public()},
		{Method: "GET", Pattern: "/customer/getAll", Access: middleware.RequireRole(entity.RoleAdmin)},
		{Method: "GET", Pattern: "/customer/findByPaymentMethod", Access: middleware.RequireRole(entity.RoleAdmin)},
		{Method: "*", Pattern: "/customer/**", Access: middleware.AnyOf(entity.RoleCustomer, entity.RoleAdmin)},

		{Method: "POST", Pattern: "/products/create", Access: middleware.RequireRole(entity.RoleAdmin)},
		{Method: "PUT", Pattern: "/products/update", Access: middleware.RequireRole(entity.RoleAdmin)},
		{Method: "DELETE", Pattern: "/products/delete/**", Access: middleware.RequireRole(entity.RoleAdmin)},
		{Method: "GET", Pattern: "/products/all", Access: middleware.Public()},
		{Method: "GET", Pattern: "/products/read/**", Access: middleware.Public()},

		{Method: "GET", Pattern: "/orders/all", Access: middleware.RequireRole(entity.RoleAdmin)},
		{Method: "PUT", Pattern: "/orders/updatePaymentStatus/**", Access: middleware.RequireRole(entity.RoleAdmin)},
		{Method: "*", Pattern: "/orders/**", Access: middleware.AnyOf(entity.RoleCustomer, entity.RoleAdmin)},

		{Method: "GET", Pattern: "/reviews/all", Access: middleware.Public()},
		{Method: "GET", Pattern: "/reviews/read/**", Access: middleware.Public()},
		{Method: "GET", Pattern: "/reviews/product/**", Access: middleware.Public()},
		{Method: "*", Pattern: "/reviews/**", Access: middleware.AnyOf(entity.RoleCustomer, entity.RoleAdmin)},

		{Method: "*", Pattern: "/designer/**", Access: middleware.AnyOf(entity.RoleDesigner, entity.RoleAdmin)},
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.auth.Register)
		authGroup.POST("/login", r.auth.Login)
		authGroup.GET("/me", r.auth.Me)
	}

	adminGroup := e.Group("/admins")
	{
		adminGroup.POST("/login", r.auth.Login)
		adminGroup.POST("/register", r.auth.AdminRegister)
		adminGroup.GET("/all", r.admin.GetAll)
		adminGroup.GET("/read/:id", r.admin.Read)
		adminGroup.DELETE("/delete/:id", r.admin.Delete)
	}

	customerGroup := e.Group("/customer")
	{
		customerGroup.POST("/create", r.customer.Create)
		customerGroup.POST("/login", r.customer.Login)
		customerGroup.GET("/getAll", r.customer.GetAll)
		customerGroup.GET("/findByPaymentMethod", r.customer.FindByPaymentMethod)
		customerGroup.GET("/read/:id", r.customer.Read)
		customerGroup.PUT("/update/:id", r.customer.Update)
		customerGroup.DELETE("/delete/:id", r.customer.Delete)
	}

	productGroup := e.Group("/products")
	{
		productGroup.GET("/all", r.product.All)
		productGroup.GET("/read/:id", r.product.Read)
		productGroup.POST("/create", r.product.Create)
		productGroup.PUT("/update", r.product.Update)
		productGroup.DELETE("/delete/:id", r.product.Delete)
	}

	orderGroup := e.Group("/orders")
	{
		orderGroup.POST("/create", r.order.Create)
		orderGroup.GET("/read/:id", r.order.Read)
		orderGroup.GET("/my", r.order.My)
		orderGroup.GET("/all", r.order.All)
		orderGroup.PUT("/updatePaymentStatus/:id", r.order.UpdatePaymentStatus)
	}

	reviewGroup := e.Group("/reviews")
	{
		reviewGroup.POST("/create", r.review.Create)
		reviewGroup.GET("/all", r.review.All)
		reviewGroup.GET("/read/:id", r.review.Read)
		reviewGroup.GET("/product/:productId", r.review.ByProduct)
		reviewGroup.PUT("/update/:id", r.review.Update)
		reviewGroup.DELETE("/delete/:id", r.review.Delete)
	}

	designerGroup := e.Group("/designer")
	{
		designerGroup.GET("/all", r.designer.GetAll)
		designerGroup.GET("/read/:id", r.designer.Read)
		designerGroup.PUT("/update/:id", r.designer.Update)
		designerGroup.GET("/portfolio/qr/:id", r.designer.PortfolioQR)
	}
}
