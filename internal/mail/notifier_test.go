package mail

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohanPrasathSece/Lumi-Co-Backend/internal/orders"
)

type recordingSender struct {
	mu     sync.Mutex
	sent   []Message
	failTo string
}

func (s *recordingSender) Send(ctx context.Context, m Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, m)
	if s.failTo != "" && m.To == s.failTo {
		return errors.New("smtp: connection refused")
	}
	return nil
}

func testOrder() *orders.Order {
	return &orders.Order{
		GatewayOrderID:   "order_ABC123",
		GatewayPaymentID: "pay_XYZ789",
		Amount:           decimal.NewFromInt(2000),
		AmountMinorUnits: 200000,
		Currency:         "INR",
		Status:           orders.StatusPaid,
		Customer:         orders.Customer{Name: "Asha Rao", Email: "asha@example.com", Phone: "9876543210"},
		ShippingAddress: orders.ShippingAddress{
			Line1:      "12 Marigold Street",
			City:       "Chennai",
			State:      "TN",
			PostalCode: "600001",
			Country:    "India",
		},
		Items: []orders.Item{{Name: "Gold Ring", Price: 1000, Quantity: 2}},
	}
}

func TestSendOrderEmailsDeliversBoth(t *testing.T) {
	sender := &recordingSender{}
	n := &Notifier{Sender: sender, SellerEmail: "seller@lumi.example"}

	require.NoError(t, n.SendOrderEmails(context.Background(), testOrder()))

	require.Len(t, sender.sent, 2)
	recipients := map[string]string{}
	for _, m := range sender.sent {
		recipients[m.To] = m.Subject
	}
	assert.Equal(t, sellerSubject, recipients["seller@lumi.example"])
	assert.Equal(t, buyerSubject, recipients["asha@example.com"])
}

func TestSendOrderEmailsOneFailureDoesNotStopTheOther(t *testing.T) {
	sender := &recordingSender{failTo: "seller@lumi.example"}
	n := &Notifier{Sender: sender, SellerEmail: "seller@lumi.example"}

	err := n.SendOrderEmails(context.Background(), testOrder())
	require.Error(t, err)

	// both sends were attempted
	assert.Len(t, sender.sent, 2)
}

func TestSendOrderEmailsDisabledSenderIsNoOp(t *testing.T) {
	n := &Notifier{Sender: Disabled, SellerEmail: "seller@lumi.example"}
	assert.NoError(t, n.SendOrderEmails(context.Background(), testOrder()))
}

func TestNewSenderMissingCredentialsReturnsDisabled(t *testing.T) {
	assert.Equal(t, Disabled, NewSender(Config{Host: "smtp.example.com"}))
	assert.Equal(t, Disabled, NewSender(Config{}))
}
