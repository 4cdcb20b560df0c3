package log

const (
	KeyAppName          = "app"
	KeyRequestID        = "requestId"
	KeyTraceID          = "traceId"
	KeySpanID           = "spanId"
	KeyProcess          = "process"
	KeyToken            = "token"
	KeyEmail            = "email"
	KeyTag              = "tag"
	KeyRequest          = "request"
	KeyRequestBody      = "requestBody"
	KeyRequestHeader    = "requestHeader"
	KeyRequestHost      = "host"
	KeyRequestIp        = "requesterIP"
	KeyRequestMethod    = "requestMethod"
	KeyRequestURI       = "requestURI"
	KeyRequestURL       = "requestURL"
	KeyConfig           = "config"
	KeyPathValues       = "pathValues"
	KeyCacheKey         = "cacheKey"
	KeyDbURL            = "dbUrl"
	KeyMigrationPath    = "migrationPath"
	KeyUserID           = "userId"
	KeyProductID        = "productId"
	KeyProduct          = "product"
	KeyProducts         = "products"
	KeyCartID           = "cartId"
	KeyCartItemID       = "cartItemId"
	KeyCartItems        = "cartItems"
	KeyCartItemsCount   = "cartItemsCount"
	KeyCartItemQuantity = "cartItemQuantity"
	KeyCart             = "cart"
	KeyOrderID          = "orderId"
	KeyOrder            = "order"
	KeyOrders           = "orders"
	KeyOrderItems       = "orderItems"
	KeyOrderItemsCount  = "orderItemsCount"
	KeyTotalAmount      = "totalAmount"
	KeyCurrency         = "currency"
	KeyIdempotencyKey   = "idempotencyKey"
	KeyChannel          = "channel"
	KeyEvent            = "event"
)
