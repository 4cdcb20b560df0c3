package http

const (
	KeyHeaderAuthorization     = "Authorization"
	KeyHeaderContentType       = "Content-Type"
	KeyHeaderRequestID         = "X-Request-Id"
	ValueHeaderApplicationJson = "application/json"
	ValueAuthSchemeBearer      = "Bearer"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)
