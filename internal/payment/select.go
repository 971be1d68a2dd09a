package payment

import (
	"go.uber.org/zap"

	"github.com/printhaus/storefront/internal/config"
)

// NewProcessor picks the live or mock implementation once at startup, based
// on the configured credentials. Callers hold only the Processor interface
// from here on.
func NewProcessor(cfg config.PaymentConfig, logger *zap.Logger) Processor {
	if cfg.UseMock() {
		logger.Warn("Payment secret key absent or not genuine, using mock processor")
		return NewMockProcessor(logger)
	}
	return NewStripeProcessor(cfg, logger)
}
