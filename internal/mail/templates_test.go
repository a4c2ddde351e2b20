package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSellerEmail(t *testing.T) {
	o := testOrder()
	html, err := RenderSellerEmail(o)
	require.NoError(t, err)

	assert.Contains(t, html, "New Lumi &amp; Co. order")
	assert.Contains(t, html, "Asha Rao")
	assert.Contains(t, html, "9876543210")
	assert.Contains(t, html, "order_ABC123")
	assert.Contains(t, html, "pay_XYZ789")
	assert.Contains(t, html, "Gold Ring")
	assert.Contains(t, html, "₹2000.00")
	assert.Contains(t, html, "12 Marigold Street")
}

func TestRenderSellerEmailPendingPayment(t *testing.T) {
	o := testOrder()
	o.GatewayPaymentID = ""
	html, err := RenderSellerEmail(o)
	require.NoError(t, err)
	assert.Contains(t, html, "Pending")
}

func TestRenderBuyerEmail(t *testing.T) {
	o := testOrder()
	html, err := RenderBuyerEmail(o)
	require.NoError(t, err)

	assert.Contains(t, html, "Thank you for your order!")
	assert.Contains(t, html, "Hello Asha Rao")
	assert.Contains(t, html, "order_ABC123")
	assert.Contains(t, html, "₹2000.00")
	assert.Contains(t, html, "Chennai, TN 600001")
	assert.NotContains(t, html, "pay_XYZ789")
}

func TestRenderAddressLine2Optional(t *testing.T) {
	o := testOrder()
	html, err := RenderBuyerEmail(o)
	require.NoError(t, err)
	assert.NotContains(t, html, "Suite")

	o.ShippingAddress.Line2 = "Suite 4B"
	html, err = RenderBuyerEmail(o)
	require.NoError(t, err)
	assert.Contains(t, html, "Suite 4B")
}
