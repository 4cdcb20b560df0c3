package constants

const (
	AppShop                = "shopping-backend"
	AppUserService         = "user-service"
	AppProductService      = "product-service"
	AppCartService         = "cart-service"
	AppOrderService        = "order-service"
	AppNotificationService = "notification-service"
	AppMigration           = "migration"
	AudienceUser           = "audience-user"
)

// redis pubsub channels
const (
	ChannelOrderCreated = "order.created"
)

const (
	CartStatusActive   = "active"
	OrderStatusPending = "pending"
)
