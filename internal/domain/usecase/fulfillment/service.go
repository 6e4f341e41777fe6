package fulfillment

import (
	"strings"

	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/headshot-service/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/headshot-service/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/headshot-service/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/headshot-service/internal/domain/usecase/generation"
)

// CheckoutSettings configures checkout session creation
type CheckoutSettings struct {
	// BaseURL is the public origin the provider redirects back to
	BaseURL string
	// Products maps a product name to the provider price lookup key.
	// Names match case-insensitively.
	Products map[string]string
	// DefaultProduct is used when a submission names no product
	DefaultProduct string
}

// DefaultCheckoutSettings returns the single-product catalogue
func DefaultCheckoutSettings(baseURL string) CheckoutSettings {
	return CheckoutSettings{
		BaseURL:        baseURL,
		Products:       map[string]string{"headshotBasic": "headshot_basic"},
		DefaultProduct: "headshotBasic",
	}
}

// LookupKey returns the price lookup key of product, or of the default
// product when product is empty
func (c CheckoutSettings) LookupKey(product string) (string, bool) {
	if product == "" {
		product = c.DefaultProduct
	}
	if key, ok := c.Products[product]; ok {
		return key, true
	}
	for name, key := range c.Products {
		if strings.EqualFold(name, product) {
			return key, true
		}
	}
	return "", false
}

// Service implements usecase.FulfillmentUseCase
type Service struct {
	uow          persistence.UnitOfWork
	generations  persistence.GenerationRepository
	users        persistence.UserRepository
	payments     gateway.PaymentGateway
	validator    *generation.OptionsValidator
	dispatcher   generation.Dispatcher
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	checkout     CheckoutSettings
}

var _ usecase.FulfillmentUseCase = (*Service)(nil)

// NewService creates a new fulfillment service
func NewService(
	uow persistence.UnitOfWork,
	generations persistence.GenerationRepository,
	users persistence.UserRepository,
	payments gateway.PaymentGateway,
	validator *generation.OptionsValidator,
	dispatcher generation.Dispatcher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	checkout CheckoutSettings,
) *Service {
	return &Service{
		uow:          uow,
		generations:  generations,
		users:        users,
		payments:     payments,
		validator:    validator,
		dispatcher:   dispatcher,
		timeProvider: timeProvider,
		logger:       logger,
		checkout:     checkout,
	}
}
