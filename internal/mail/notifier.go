package mail

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MohanPrasathSece/Lumi-Co-Backend/internal/orders"
)

const (
	sellerSubject = "New Lumi & Co. Order"
	buyerSubject  = "Your Lumi & Co. order is confirmed"
)

type Notifier struct {
	Sender      Sender
	SellerEmail string
}

// SendOrderEmails delivers the seller and buyer confirmations concurrently.
// One send failing does not stop the other; the first error is returned for
// logging only.
func (n *Notifier) SendOrderEmails(ctx context.Context, o *orders.Order) error {
	sellerHTML, err := RenderSellerEmail(o)
	if err != nil {
		return fmt.Errorf("render seller email: %w", err)
	}
	buyerHTML, err := RenderBuyerEmail(o)
	if err != nil {
		return fmt.Errorf("render buyer email: %w", err)
	}

	g := new(errgroup.Group)
	g.Go(func() error {
		return n.Sender.Send(ctx, Message{To: n.SellerEmail, Subject: sellerSubject, HTML: sellerHTML})
	})
	g.Go(func() error {
		return n.Sender.Send(ctx, Message{To: o.Customer.Email, Subject: buyerSubject, HTML: buyerHTML})
	})
	return g.Wait()
}
