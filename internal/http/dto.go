package http

import (
	"time"

	"GiftBoxPayments/internal/models"
)

type createOrderRequest struct {
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	GiftWrap        bool   `json:"giftWrap"`
	GiftNote        string `json:"giftNote"`
	HidePrice       bool   `json:"hidePrice"`
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerPhone   string `json:"customerPhone"`
	ShippingAddress string `json:"shippingAddress"`
	ShippingCity    string `json:"shippingCity"`
	ShippingState   string `json:"shippingState"`
	ShippingPincode string `json:"shippingPincode"`
}

type createOrderResponse struct {
	OrderID   string `json:"orderId"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	DBOrderID string `json:"dbOrderId"`
}

type createOrderError struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

type verifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

type verifyPaymentResponse struct {
	Success bool          `json:"success"`
	Order   orderResponse `json:"order"`
}

type verifyPaymentError struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type orderResponse struct {
	ID                string `json:"id"`
	UserID            string `json:"userId,omitempty"`
	RazorpayOrderID   string `json:"razorpayOrderId"`
	RazorpayPaymentID string `json:"razorpayPaymentId,omitempty"`
	RazorpaySignature string `json:"razorpaySignature,omitempty"`
	Amount            int64  `json:"amount"`
	Currency          string `json:"currency"`
	Status            string `json:"status"`
	GiftWrap          bool   `json:"giftWrap"`
	GiftNote          string `json:"giftNote,omitempty"`
	HidePrice         bool   `json:"hidePrice"`
	CustomerName      string `json:"customerName"`
	CustomerEmail     string `json:"customerEmail"`
	CustomerPhone     string `json:"customerPhone"`
	ShippingAddress   string `json:"shippingAddress"`
	ShippingCity      string `json:"shippingCity"`
	ShippingState     string `json:"shippingState"`
	ShippingPincode   string `json:"shippingPincode"`
	CreatedAt         string `json:"createdAt"`
	UpdatedAt         string `json:"updatedAt"`
}

func toOrderResponse(order *models.Order) orderResponse {
	resp := orderResponse{
		ID:              order.ID,
		RazorpayOrderID: order.RazorpayOrderID,
		Amount:          order.Amount,
		Currency:        order.Currency,
		Status:          string(order.Status),
		GiftWrap:        order.GiftWrap,
		HidePrice:       order.HidePrice,
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		CustomerPhone:   order.CustomerPhone,
		ShippingAddress: order.ShippingAddress,
		ShippingCity:    order.ShippingCity,
		ShippingState:   order.ShippingState,
		ShippingPincode: order.ShippingPincode,
		CreatedAt:       order.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       order.UpdatedAt.Format(time.RFC3339),
	}
	if order.UserID != nil {
		resp.UserID = *order.UserID
	}
	if order.RazorpayPaymentID != nil {
		resp.RazorpayPaymentID = *order.RazorpayPaymentID
	}
	if order.RazorpaySignature != nil {
		resp.RazorpaySignature = *order.RazorpaySignature
	}
	if order.GiftNote != nil {
		resp.GiftNote = *order.GiftNote
	}
	return resp
}
