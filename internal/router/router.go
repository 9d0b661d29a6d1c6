package router

import (
	"fmt"
	"strings"

	"github.com/concho-nutrition/storefront/internal/cache"
	"github.com/concho-nutrition/storefront/internal/config"
	publichandlers "github.com/concho-nutrition/storefront/internal/http/handlers/public"
	"github.com/concho-nutrition/storefront/internal/logger"
	"github.com/concho-nutrition/storefront/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the storefront HTTP routes.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "cn"
	}
	redisClient := cache.Client()
	checkoutRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:checkout", redisPrefix),
		WindowSeconds: cfg.Security.CheckoutRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CheckoutRateLimit.MaxRequests,
		Message:       "Too many checkout attempts",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		apiV1.POST("/session", publicHandler.CreateSession)

		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:slug", publicHandler.GetProductBySlug)
			public.GET("/categories", publicHandler.GetCategories)
		}

		// Session-scoped routes: cart, delivery, checkout.
		session := apiV1.Group("")
		session.Use(SessionAuthMiddleware(c.SessionService))
		{
			session.GET("/cart", publicHandler.GetCart)
			session.POST("/cart/items", publicHandler.AddCartItem)
			session.PUT("/cart/items/:product_id", publicHandler.UpdateCartItemQuantity)
			session.POST("/cart/items/:product_id/toggle-subscription", publicHandler.ToggleCartSubscription)
			session.DELETE("/cart/items/:product_id", publicHandler.DeleteCartItem)
			session.DELETE("/cart", publicHandler.ClearCart)

			session.POST("/delivery/eligibility", publicHandler.CheckDeliveryEligibility)
			session.POST("/delivery/method", publicHandler.SelectDeliveryMethod)

			session.POST("/checkout", RateLimitMiddleware(redisClient, checkoutRule, KeyBySession), publicHandler.SubmitCheckout)
			session.GET("/orders/:order_no", publicHandler.GetOrder)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
