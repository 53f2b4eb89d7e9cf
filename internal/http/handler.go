package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"GiftBoxPayments/internal/models"
	"GiftBoxPayments/internal/services"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	Checkout *services.CheckoutService
}

func NewHandler(checkout *services.CheckoutService) *Handler {
	return &Handler{Checkout: checkout}
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, createOrderError{Error: "invalid json body", Details: err.Error()})
		return
	}

	result, err := h.Checkout.CreateOrder(r.Context(), services.CreateOrderInput{
		Amount:          req.Amount,
		Currency:        req.Currency,
		GiftWrap:        req.GiftWrap,
		GiftNote:        req.GiftNote,
		HidePrice:       req.HidePrice,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		ShippingCity:    req.ShippingCity,
		ShippingState:   req.ShippingState,
		ShippingPincode: req.ShippingPincode,
		BearerToken:     bearerToken(r),
	})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, createOrderErrorBody(err))
		return
	}

	writeJSON(w, http.StatusOK, createOrderResponse{
		OrderID:   result.GatewayOrderID,
		Amount:    result.Amount,
		Currency:  result.Currency,
		DBOrderID: result.DBOrderID,
	})
}

// createOrderErrorBody keeps the public error message and puts the wrapped
// cause in details so the client can tell validation from gateway and storage
// failures apart.
func createOrderErrorBody(err error) createOrderError {
	var se *services.Error
	if errors.As(err, &se) {
		return createOrderError{Error: se.Message, Details: se.Error()}
	}
	return createOrderError{Error: "failed to create order", Details: err.Error()}
}

func (h *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req verifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, verifyPaymentError{Error: "invalid json body"})
		return
	}

	order, err := h.Checkout.VerifyPayment(r.Context(), services.VerifyPaymentInput{
		GatewayOrderID: req.RazorpayOrderID,
		PaymentID:      req.RazorpayPaymentID,
		Signature:      req.RazorpaySignature,
	})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, verifyPaymentError{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, verifyPaymentResponse{Success: true, Order: toOrderResponse(order)})
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	order, err := h.Checkout.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, models.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "get order failed")
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Checkout.ListOrders(r.Context(), bearerToken(r))
	if err != nil {
		writeAdminError(w, err, "list orders failed")
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		resp = append(resp, toOrderResponse(order))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	order, err := h.Checkout.UpdateOrderStatus(r.Context(), bearerToken(r), orderID, req.Status)
	if err != nil {
		if errors.Is(err, models.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		if kind, ok := services.KindOf(err); ok && kind == services.KindValidation {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeAdminError(w, err, "update order status failed")
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func writeAdminError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "missing or invalid credentials")
	case errors.Is(err, services.ErrForbidden):
		writeError(w, http.StatusForbidden, "admin role required")
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
