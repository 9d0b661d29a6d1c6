package constants

// Order status constants
const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusPaid           = "paid"
	OrderStatusCanceled       = "canceled"
)

// Delivery method constants
const (
	DeliveryMethodShipping      = "shipping"
	DeliveryMethodLocalDelivery = "local_delivery"
)

// Standardized category slugs
const (
	CategoryProtein     = "protein"
	CategoryPreWorkout  = "pre-workout"
	CategoryVitamins    = "vitamins"
	CategoryWellness    = "wellness"
	CategoryRecovery    = "recovery"
	CategoryAccessories = "accessories"
	CategoryOther       = "other"
)

// Queue and task name constants
const (
	QueueDefault     = "default"
	TaskOrderWebhook = "order:webhook"
)

// Settings keys
const (
	SettingKeyCheckout = "checkout_setting"
)
