package provider

import (
	"github.com/concho-nutrition/storefront/internal/cache"
	"github.com/concho-nutrition/storefront/internal/config"
	"github.com/concho-nutrition/storefront/internal/logger"
	"github.com/concho-nutrition/storefront/internal/models"
	"github.com/concho-nutrition/storefront/internal/notify"
	"github.com/concho-nutrition/storefront/internal/queue"
	"github.com/concho-nutrition/storefront/internal/repository"
	"github.com/concho-nutrition/storefront/internal/service"
)

// Container wires repositories and services together.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	CartRepo     repository.CartRepository
	OrderRepo    repository.OrderRepository
	SettingRepo  repository.SettingRepository

	// Services
	SessionService  *service.SessionService
	SettingService  *service.SettingService
	ProductService  *service.ProductService
	CartService     *service.CartService
	DeliveryService *service.DeliveryService
	CheckoutService *service.CheckoutService
	Pricing         *service.Pricing

	// Notifiers
	OrderWebhook *notify.OrderWebhook
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.ProductRepo = repository.NewProductRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
}

func (c *Container) initServices() {
	c.SettingService = service.NewSettingService(c.SettingRepo)

	// The free-shipping threshold can be tuned at runtime via settings;
	// the stored value wins over the static config at startup.
	threshold, err := c.SettingService.GetFreeShippingThreshold(c.Config.Checkout.FreeShippingThreshold)
	if err != nil {
		logger.Warnw("provider_load_checkout_setting_failed", "error", err)
	} else {
		c.Config.Checkout.FreeShippingThreshold = threshold
	}

	c.Pricing = service.NewPricing(&c.Config.Checkout)
	c.SessionService = service.NewSessionService(&c.Config.Session)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo, &c.Config.Catalog)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.Pricing)
	c.DeliveryService = service.NewDeliveryService(&c.Config.Delivery)
	c.CheckoutService = service.NewCheckoutService(
		c.CartService,
		c.DeliveryService,
		c.Pricing,
		c.OrderRepo,
		c.CartRepo,
		c.QueueClient,
		&c.Config.Square,
	)
	c.OrderWebhook = notify.NewOrderWebhook(&c.Config.Webhook)
}
