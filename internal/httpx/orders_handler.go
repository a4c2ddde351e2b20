package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/MohanPrasathSece/Lumi-Co-Backend/internal/gateway"
	kafkax "github.com/MohanPrasathSece/Lumi-Co-Backend/internal/kafka"
	"github.com/MohanPrasathSece/Lumi-Co-Backend/internal/orders"
	"github.com/MohanPrasathSece/Lumi-Co-Backend/internal/redisx"
)

// OrderStore is the persistence surface the handlers need.
type OrderStore interface {
	Insert(ctx context.Context, o *orders.Order) error
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*orders.Order, error)
	MarkPaid(ctx context.Context, gatewayOrderID, paymentID, signature string, paidAt time.Time) (bool, error)
	MarkFailed(ctx context.Context, gatewayOrderID string) (bool, error)
}

// Gateway is the payment gateway surface: remote order creation plus the
// callback signature check. A nil Gateway means the service is unconfigured.
type Gateway interface {
	KeyID() string
	CreateOrder(ctx context.Context, req gateway.CreateOrderRequest) (gateway.Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// Notifier dispatches the buyer/seller confirmation emails.
type Notifier interface {
	SendOrderEmails(ctx context.Context, o *orders.Order) error
}

// EventPublisher is the post-commit event hook; kafkax.Producer satisfies it.
type EventPublisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type OrdersHandler struct {
	Store    OrderStore
	Gateway  Gateway
	Notifier Notifier
	Redis    *redis.Client // optional: status cache + duplicate-callback fast path
	Created  EventPublisher
	Paid     EventPublisher
	Failed   EventPublisher
	Currency string
	Service  string
}

type CreateOrderReq struct {
	Customer        orders.Customer        `json:"customer"`
	ShippingAddress orders.ShippingAddress `json:"shippingAddress"`
	Items           []orders.Item          `json:"items"`
	Notes           string                 `json:"notes"`
}

type OrderRef struct {
	ID     string        `json:"id"`
	Status orders.Status `json:"status"`
}

type CreateOrderResp struct {
	Success    bool     `json:"success"`
	Message    string   `json:"message"`
	OrderID    string   `json:"orderId"`
	Amount     int64    `json:"amount"`
	Currency   string   `json:"currency"`
	GatewayKey string   `json:"gatewayKey"`
	Order      OrderRef `json:"order"`
}

type VerifyPaymentReq struct {
	GatewayOrderID   string `json:"gatewayOrderId"`
	GatewayPaymentID string `json:"gatewayPaymentId"`
	GatewaySignature string `json:"gatewaySignature"`
}

type VerifyPaymentResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID string `json:"orderId"`
}

type OrderStatusResp struct {
	OrderID  string        `json:"orderId"`
	Status   orders.Status `json:"status"`
	Amount   int64         `json:"amount"`
	Currency string        `json:"currency"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/api/orders", h.createOrder)
	r.Post("/api/orders/verify", h.verifyPayment)
	r.Get("/api/orders/{id}", h.getOrder)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy to HTTP. Anything outside the taxonomy
// is a dependency failure: full detail to the log, generic message out.
func writeError(w http.ResponseWriter, err error, op, generic string) {
	var ve *orders.ValidationError
	var nf *orders.NotFoundError
	var ce *orders.ConfigurationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": ve.Msg})
	case errors.As(err, &nf):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": nf.Msg})
	case errors.As(err, &ce):
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": ce.Msg})
	default:
		log.Printf("%s: %v", op, err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": generic})
	}
}

func (h *OrdersHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	if h.Gateway == nil {
		writeError(w, &orders.ConfigurationError{Msg: "Payment gateway is not configured."}, "create order", "")
		return
	}

	var req CreateOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	if err := orders.ValidateCreate(req.Customer, req.ShippingAddress, req.Items); err != nil {
		writeError(w, err, "create order", "Unable to create order")
		return
	}
	amount, minorUnits, err := orders.ComputeAmounts(req.Items)
	if err != nil {
		writeError(w, err, "create order", "Unable to create order")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	// Gateway first, then the local write: a gateway failure leaves nothing
	// persisted.
	gwOrder, err := h.Gateway.CreateOrder(ctx, gateway.CreateOrderRequest{
		AmountMinorUnits: minorUnits,
		Currency:         h.Currency,
		Receipt:          fmt.Sprintf("lumi_%d", time.Now().UnixMilli()),
		Notes: map[string]string{
			"customerEmail": req.Customer.Email,
			"customerName":  req.Customer.Name,
		},
	})
	if err != nil {
		writeError(w, &orders.DependencyError{Op: "gateway create order", Err: err}, "create order", "Unable to create order")
		return
	}

	ord := &orders.Order{
		GatewayOrderID:   gwOrder.ID,
		Amount:           amount,
		AmountMinorUnits: minorUnits,
		Currency:         gwOrder.Currency,
		Status:           orders.StatusPending,
		Customer:         req.Customer,
		ShippingAddress:  req.ShippingAddress,
		Items:            req.Items,
		Notes:            req.Notes,
	}
	if err := h.Store.Insert(ctx, ord); err != nil {
		writeError(w, &orders.DependencyError{Op: "persist order", Err: err}, "create order", "Unable to create order")
		return
	}

	h.cacheStatus(ctx, ord.GatewayOrderID, ord)
	h.publishEvent(h.Created, orders.EventOrderCreated, ord.GatewayOrderID, r, orders.OrderCreatedPayload{
		GatewayOrderID:   ord.GatewayOrderID,
		AmountMinorUnits: minorUnits,
		Currency:         ord.Currency,
		CustomerEmail:    req.Customer.Email,
	})

	writeJSON(w, http.StatusOK, CreateOrderResp{
		Success:    true,
		Message:    "Order created",
		OrderID:    gwOrder.ID,
		Amount:     minorUnits,
		Currency:   ord.Currency,
		GatewayKey: h.Gateway.KeyID(),
		Order:      OrderRef{ID: ord.ID, Status: ord.Status},
	})
}

func (h *OrdersHandler) verifyPayment(w http.ResponseWriter, r *http.Request) {
	if h.Gateway == nil {
		writeError(w, &orders.ConfigurationError{Msg: "Payment gateway is not configured."}, "verify payment", "")
		return
	}

	var req VerifyPaymentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.GatewayOrderID == "" || req.GatewayPaymentID == "" || req.GatewaySignature == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Payment verification data is incomplete."})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	// Duplicate-callback fast path: the gateway retries delivery on its own.
	// The ids are public, so a replay must still carry a matching signature.
	if h.Redis != nil {
		idemKey := fmt.Sprintf(redisx.KeyIdemVerify, req.GatewayPaymentID)
		if id, err := h.Redis.Get(ctx, idemKey).Result(); err == nil && id == req.GatewayOrderID &&
			h.Gateway.VerifySignature(req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature) {
			writeJSON(w, http.StatusOK, VerifyPaymentResp{Success: true, Message: "Payment verified", OrderID: req.GatewayOrderID})
			return
		}
	}

	ord, err := h.Store.FindByGatewayOrderID(ctx, req.GatewayOrderID)
	if err != nil {
		writeError(w, err, "verify payment", "Unable to verify payment")
		return
	}

	if !h.Gateway.VerifySignature(req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature) {
		if ord.Status == orders.StatusPending {
			failed, err := h.Store.MarkFailed(ctx, req.GatewayOrderID)
			if err != nil {
				log.Printf("mark failed %s: %v", req.GatewayOrderID, err)
			}
			// A lost race means the order went terminal under someone else;
			// only the transition winner advertises the failed state.
			if failed {
				ord.Status = orders.StatusFailed
				h.cacheStatus(ctx, req.GatewayOrderID, ord)
				h.publishEvent(h.Failed, orders.EventOrderPaymentFailed, req.GatewayOrderID, r, orders.OrderPaymentFailedPayload{
					GatewayOrderID: req.GatewayOrderID,
					Reason:         "SIGNATURE_MISMATCH",
				})
			}
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid payment signature."})
		return
	}

	now := time.Now().UTC()
	ok, err := h.Store.MarkPaid(ctx, req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature, now)
	if err != nil {
		writeError(w, &orders.DependencyError{Op: "mark paid", Err: err}, "verify payment", "Unable to verify payment")
		return
	}
	if !ok {
		// Lost the compare-and-set: either a duplicate of an already-verified
		// callback (success, no mutation) or a terminal order.
		cur, err := h.Store.FindByGatewayOrderID(ctx, req.GatewayOrderID)
		if err == nil && cur.Status == orders.StatusPaid && cur.GatewayPaymentID == req.GatewayPaymentID {
			writeJSON(w, http.StatusOK, VerifyPaymentResp{Success: true, Message: "Payment verified", OrderID: req.GatewayOrderID})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Order is no longer pending."})
		return
	}

	ord.Status = orders.StatusPaid
	ord.GatewayPaymentID = req.GatewayPaymentID
	ord.GatewaySignature = req.GatewaySignature
	ord.PaidAt = &now

	if h.Redis != nil {
		idemKey := fmt.Sprintf(redisx.KeyIdemVerify, req.GatewayPaymentID)
		_ = h.Redis.Set(ctx, idemKey, req.GatewayOrderID, redisx.TTLIdempotency).Err()
	}
	h.cacheStatus(ctx, req.GatewayOrderID, ord)
	h.publishEvent(h.Paid, orders.EventOrderPaid, req.GatewayOrderID, r, orders.OrderPaidPayload{
		GatewayOrderID:   req.GatewayOrderID,
		GatewayPaymentID: req.GatewayPaymentID,
		AmountMinorUnits: ord.AmountMinorUnits,
		PaidAt:           now,
	})

	// Post-commit hook: the paid state is already the source of truth, so
	// notification runs detached and its failure is visible in logs only.
	go h.notify(ord)

	writeJSON(w, http.StatusOK, VerifyPaymentResp{Success: true, Message: "Payment verified", OrderID: req.GatewayOrderID})
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	gatewayOrderID := chi.URLParam(r, "id")
	if gatewayOrderID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	key := fmt.Sprintf(redisx.KeyOrderStatus, gatewayOrderID)
	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			writeJSON(w, http.StatusOK, json.RawMessage(s))
			return
		}
	}

	ord, err := h.Store.FindByGatewayOrderID(ctx, gatewayOrderID)
	if err != nil {
		writeError(w, err, "get order", "Unable to load order")
		return
	}
	h.cacheStatus(ctx, gatewayOrderID, ord)
	writeJSON(w, http.StatusOK, statusBody(gatewayOrderID, ord))
}

func statusBody(gatewayOrderID string, o *orders.Order) OrderStatusResp {
	return OrderStatusResp{
		OrderID:  gatewayOrderID,
		Status:   o.Status,
		Amount:   o.AmountMinorUnits,
		Currency: o.Currency,
	}
}

func (h *OrdersHandler) cacheStatus(ctx context.Context, gatewayOrderID string, o *orders.Order) {
	if h.Redis == nil {
		return
	}
	key := fmt.Sprintf(redisx.KeyOrderStatus, gatewayOrderID)
	_ = h.Redis.Set(ctx, key, kafkax.MustMarshal(statusBody(gatewayOrderID, o)), redisx.TTLStatusCache).Err()
}

func (h *OrdersHandler) publishEvent(p EventPublisher, eventType, gatewayOrderID string, r *http.Request, payload any) {
	if p == nil {
		return
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: gatewayOrderID,
		Payload:       kafkax.MustMarshal(payload),
	}
	p.Publish(orders.PartitionKey(gatewayOrderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (h *OrdersHandler) notify(o *orders.Order) {
	if h.Notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := h.Notifier.SendOrderEmails(ctx, o); err != nil {
		log.Printf("order emails for %s: %v", o.GatewayOrderID, err)
	}
}
