package application

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/rahe01/StayVista/errors"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// PaymentService only hands out charge authorizations. Whether the charge
// ultimately succeeds is between the client and the payment processor.
type PaymentService struct {
	cb     *gobreaker.CircuitBreaker
	tracer trace.Tracer
	logger *logrus.Logger
}

func NewPaymentService(tracer trace.Tracer, logger *logrus.Logger) *PaymentService {
	stripe.Key = os.Getenv("STRIPE_SECRET")
	return &PaymentService{
		cb:     CircuitBreaker("paymentService"),
		tracer: tracer,
		logger: logger,
	}
}

// CreatePaymentIntent converts the price to minor currency units, validates
// it, and asks the processor for a client secret.
func (service *PaymentService) CreatePaymentIntent(ctx context.Context, price float64) (string, error) {
	_, span := service.tracer.Start(ctx, "PaymentService.CreatePaymentIntent")
	defer span.End()

	priceInCent := int64(math.Round(price * 100))
	if priceInCent < 1 {
		span.SetStatus(codes.Error, errors.InvalidPriceError)
		return "", fmt.Errorf(errors.InvalidPriceError)
	}

	result, breakerErr := service.cb.Execute(func() (interface{}, error) {
		params := &stripe.PaymentIntentParams{
			Amount:   stripe.Int64(priceInCent),
			Currency: stripe.String(string(stripe.CurrencyUSD)),
			AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
				Enabled: stripe.Bool(true),
			},
		}
		return paymentintent.New(params)
	})
	if breakerErr != nil {
		span.SetStatus(codes.Error, breakerErr.Error())
		service.logger.Errorf("payment intent failed: %s", breakerErr)
		return "", fmt.Errorf(errors.PaymentProviderError)
	}

	intent, ok := result.(*stripe.PaymentIntent)
	if !ok {
		return "", fmt.Errorf(errors.PaymentProviderError)
	}

	return intent.ClientSecret, nil
}
