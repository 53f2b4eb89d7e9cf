package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"GiftBoxPayments/internal/gateway"
	"GiftBoxPayments/internal/identity"
	"GiftBoxPayments/internal/models"
	"GiftBoxPayments/internal/signature"
	"GiftBoxPayments/internal/validate"

	"github.com/google/uuid"
)

// OrderStore is the persistence surface the checkout flow needs.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	MarkPaid(ctx context.Context, gatewayOrderID, paymentID, sig string) (*models.Order, error)
	ListOrders(ctx context.Context) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)
	HasRole(ctx context.Context, userID, role string) (bool, error)
}

type CheckoutService struct {
	Store           OrderStore
	Gateway         gateway.Client
	Identity        identity.Resolver
	KeySecret       string
	DefaultCurrency string
}

type CreateOrderInput struct {
	Amount          int64
	Currency        string
	GiftWrap        bool
	GiftNote        string
	HidePrice       bool
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
	ShippingCity    string
	ShippingState   string
	ShippingPincode string
	BearerToken     string
}

type CreateOrderResult struct {
	GatewayOrderID string
	Amount         int64
	Currency       string
	DBOrderID      string
}

// CreateOrder runs the checkout pipeline: validate, create the gateway-side
// order, persist the local record in created status. The local row is never
// written before the gateway accepts the order; if persistence then fails the
// gateway order is left orphaned and the failure is reported as a storage
// error.
func (s *CheckoutService) CreateOrder(ctx context.Context, in CreateOrderInput) (*CreateOrderResult, error) {
	if !validate.ValidAmount(in.Amount) {
		return nil, validationError(fmt.Sprintf("invalid amount: must be a positive integer not exceeding %d", validate.MaxAmount))
	}

	name := validate.SanitizeText(in.CustomerName, validate.MaxNameLen)
	email := validate.SanitizeText(in.CustomerEmail, validate.MaxEmailLen)
	phone := validate.SanitizeText(in.CustomerPhone, validate.MaxPhoneLen)
	address := validate.SanitizeText(in.ShippingAddress, validate.MaxAddressLen)
	city := validate.SanitizeText(in.ShippingCity, validate.MaxCityLen)
	state := validate.SanitizeText(in.ShippingState, validate.MaxStateLen)
	pincode := validate.SanitizeText(in.ShippingPincode, validate.MaxPincodeLen)
	giftNote := validate.SanitizeText(in.GiftNote, validate.MaxGiftNoteLen)

	switch {
	case len([]rune(name)) < 2:
		return nil, validationError("customer name is required and must be at least 2 characters")
	case !validate.ValidEmail(email):
		return nil, validationError("invalid email address")
	case !validate.ValidPhone(phone):
		return nil, validationError("invalid phone number format")
	case len([]rune(address)) < 10:
		return nil, validationError("shipping address is required and must be at least 10 characters")
	case len([]rune(city)) < 2:
		return nil, validationError("shipping city is required")
	case len([]rune(state)) < 2:
		return nil, validationError("shipping state is required")
	case !validate.ValidPincode(pincode):
		return nil, validationError("invalid pincode format")
	}

	currency := in.Currency
	if currency == "" {
		currency = s.DefaultCurrency
	}
	if !validate.ValidCurrency(currency) {
		return nil, validationError("invalid currency")
	}

	userID := s.resolveUser(ctx, in.BearerToken)

	receipt := fmt.Sprintf("receipt_%d", time.Now().UnixMilli())
	gwOrder, err := s.Gateway.CreateOrder(ctx, in.Amount*100, currency, receipt)
	if err != nil {
		return nil, gatewayError("failed to create payment order", err)
	}

	now := time.Now().UTC()
	order := &models.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		RazorpayOrderID: gwOrder.ID,
		Amount:          in.Amount,
		Currency:        currency,
		Status:          models.OrderCreated,
		GiftWrap:        in.GiftWrap,
		HidePrice:       in.HidePrice,
		CustomerName:    name,
		CustomerEmail:   email,
		CustomerPhone:   phone,
		ShippingAddress: address,
		ShippingCity:    city,
		ShippingState:   state,
		ShippingPincode: pincode,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if giftNote != "" {
		order.GiftNote = &giftNote
	}

	if err := s.Store.CreateOrder(ctx, order); err != nil {
		return nil, storageError("failed to save order", err)
	}

	return &CreateOrderResult{
		GatewayOrderID: gwOrder.ID,
		Amount:         gwOrder.Amount,
		Currency:       gwOrder.Currency,
		DBOrderID:      order.ID,
	}, nil
}

// resolveUser maps an optional bearer token to a user id. Guest checkout is
// allowed, and a token the auth service rejects also falls back to guest,
// matching the storefront's behavior.
func (s *CheckoutService) resolveUser(ctx context.Context, token string) *string {
	if token == "" || s.Identity == nil {
		return nil
	}
	userID, err := s.Identity.Resolve(ctx, token)
	if err != nil {
		log.Printf("identity resolve failed, continuing as guest: %v", err)
		return nil
	}
	return &userID
}

type VerifyPaymentInput struct {
	GatewayOrderID string
	PaymentID      string
	Signature      string
}

// VerifyPayment recomputes the callback signature and, only on an exact
// match, transitions the referenced order to paid. The transition is a single
// conditional update, so duplicate callbacks with identical inputs are safe.
func (s *CheckoutService) VerifyPayment(ctx context.Context, in VerifyPaymentInput) (*models.Order, error) {
	if !signature.Verify(s.KeySecret, in.GatewayOrderID, in.PaymentID, in.Signature) {
		return nil, integrityError("invalid payment signature")
	}

	order, err := s.Store.MarkPaid(ctx, in.GatewayOrderID, in.PaymentID, in.Signature)
	if err != nil {
		if errors.Is(err, models.ErrOrderNotFound) {
			return nil, integrityError("no order matches the payment reference")
		}
		return nil, storageError("failed to update order", err)
	}
	return order, nil
}

func (s *CheckoutService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return s.Store.GetOrder(ctx, id)
}

// requireAdmin resolves the token and checks the admin role assignment.
func (s *CheckoutService) requireAdmin(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthorized
	}
	userID, err := s.Identity.Resolve(ctx, token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	isAdmin, err := s.Store.HasRole(ctx, userID, "admin")
	if err != nil {
		return "", storageError("failed to check role", err)
	}
	if !isAdmin {
		return "", ErrForbidden
	}
	return userID, nil
}

func (s *CheckoutService) ListOrders(ctx context.Context, token string) ([]*models.Order, error) {
	if _, err := s.requireAdmin(ctx, token); err != nil {
		return nil, err
	}
	orders, err := s.Store.ListOrders(ctx)
	if err != nil {
		return nil, storageError("failed to list orders", err)
	}
	return orders, nil
}

func (s *CheckoutService) UpdateOrderStatus(ctx context.Context, token, orderID, status string) (*models.Order, error) {
	if _, err := s.requireAdmin(ctx, token); err != nil {
		return nil, err
	}
	if !models.KnownStatus(status) {
		return nil, validationError("unknown order status")
	}
	order, err := s.Store.UpdateStatus(ctx, orderID, models.OrderStatus(status))
	if err != nil {
		if errors.Is(err, models.ErrOrderNotFound) {
			return nil, err
		}
		return nil, storageError("failed to update order status", err)
	}
	return order, nil
}
