package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"GiftBoxPayments/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const orderColumns = `id, user_id, razorpay_order_id, razorpay_payment_id, razorpay_signature,
	amount, currency, status, gift_wrap, gift_note, hide_price,
	customer_name, customer_email, customer_phone,
	shipping_address, shipping_city, shipping_state, shipping_pincode,
	created_at, updated_at`

type Store struct {
	Pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{Pool: pool}
}

func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO orders (
			id, user_id, razorpay_order_id, razorpay_payment_id, razorpay_signature,
			amount, currency, status, gift_wrap, gift_note, hide_price,
			customer_name, customer_email, customer_phone,
			shipping_address, shipping_city, shipping_state, shipping_pincode,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
	`,
		order.ID,
		order.UserID,
		order.RazorpayOrderID,
		order.RazorpayPaymentID,
		order.RazorpaySignature,
		order.Amount,
		order.Currency,
		order.Status,
		order.GiftWrap,
		order.GiftNote,
		order.HidePrice,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.ShippingAddress,
		order.ShippingCity,
		order.ShippingState,
		order.ShippingPincode,
		order.CreatedAt,
		order.UpdatedAt,
	)
	return err
}

func (s *Store) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id)
	return scanOrder(row)
}

// MarkPaid records the gateway payment against the order identified by its
// gateway order id. The update is a single statement keyed on that id, so a
// replayed callback with identical inputs rewrites the same values.
func (s *Store) MarkPaid(ctx context.Context, gatewayOrderID, paymentID, signature string) (*models.Order, error) {
	row := s.Pool.QueryRow(ctx, `
		UPDATE orders
		SET razorpay_payment_id=$2, razorpay_signature=$3, status=$4, updated_at=now()
		WHERE razorpay_order_id=$1
		RETURNING `+orderColumns, gatewayOrderID, paymentID, signature, models.OrderPaid)
	return scanOrder(row)
}

func (s *Store) ListOrders(ctx context.Context) ([]*models.Order, error) {
	rows, err := s.Pool.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (s *Store) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	row := s.Pool.QueryRow(ctx, `
		UPDATE orders
		SET status=$2, updated_at=now()
		WHERE id=$1
		RETURNING `+orderColumns, id, status)
	return scanOrder(row)
}

func (s *Store) HasRole(ctx context.Context, userID, role string) (bool, error) {
	var exists bool
	row := s.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM user_roles WHERE user_id=$1 AND role=$2)`, userID, role)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	var order models.Order
	var userID, paymentID, sig, giftNote sql.NullString

	err := row.Scan(
		&order.ID,
		&userID,
		&order.RazorpayOrderID,
		&paymentID,
		&sig,
		&order.Amount,
		&order.Currency,
		&order.Status,
		&order.GiftWrap,
		&giftNote,
		&order.HidePrice,
		&order.CustomerName,
		&order.CustomerEmail,
		&order.CustomerPhone,
		&order.ShippingAddress,
		&order.ShippingCity,
		&order.ShippingState,
		&order.ShippingPincode,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrOrderNotFound
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}

	if userID.Valid {
		order.UserID = &userID.String
	}
	if paymentID.Valid {
		order.RazorpayPaymentID = &paymentID.String
	}
	if sig.Valid {
		order.RazorpaySignature = &sig.String
	}
	if giftNote.Valid {
		order.GiftNote = &giftNote.String
	}
	return &order, nil
}
