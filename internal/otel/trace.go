package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/Alturino/shopping/internal/constants"
)

var Tracer = otel.Tracer(constants.AppShop)
