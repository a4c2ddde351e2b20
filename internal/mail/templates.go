package mail

import (
	"bytes"
	"html/template"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/MohanPrasathSece/Lumi-Co-Backend/internal/orders"
)

var emailTmpl = template.Must(template.New("email").Funcs(template.FuncMap{
	"inr": func(d decimal.Decimal) string { return "₹" + d.StringFixed(2) },
	"num": func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) },
}).Parse(`
{{define "itemsTable"}}
<table style="border-collapse: collapse; width: 100%; font-family: Arial, sans-serif;">
  <thead>
    <tr>
      <th style="padding: 8px 12px; text-align: left; background: #f7f1ff; border: 1px solid #eee;">Product</th>
      <th style="padding: 8px 12px; text-align: left; background: #f7f1ff; border: 1px solid #eee;">Qty</th>
      <th style="padding: 8px 12px; text-align: left; background: #f7f1ff; border: 1px solid #eee;">Price</th>
    </tr>
  </thead>
  <tbody>
    {{range .Items}}
    <tr>
      <td style="padding: 6px 12px; border: 1px solid #eee;">{{.Name}}</td>
      <td style="padding: 6px 12px; border: 1px solid #eee;">{{num .Quantity}}</td>
      <td style="padding: 6px 12px; border: 1px solid #eee;">&#8377;{{num .Price}}</td>
    </tr>
    {{end}}
  </tbody>
</table>
{{end}}

{{define "addressBlock"}}
<p style="margin:0;">{{.ShippingAddress.Line1}}</p>
{{if .ShippingAddress.Line2}}<p style="margin:0;">{{.ShippingAddress.Line2}}</p>{{end}}
<p style="margin:0;">{{.ShippingAddress.City}}, {{.ShippingAddress.State}} {{.ShippingAddress.PostalCode}}</p>
<p style="margin:0;">{{.ShippingAddress.Country}}</p>
{{end}}

{{define "seller"}}
<h2 style="font-family: 'Playfair Display', serif; color:#9b2241;">New Lumi &amp; Co. order</h2>
<p>A new order has been placed on Lumi &amp; Co.</p>
<p><strong>Customer:</strong> {{.Customer.Name}}</p>
<p><strong>Email:</strong> {{.Customer.Email}}</p>
<p><strong>Phone:</strong> {{.Customer.Phone}}</p>
<p><strong>Order ID:</strong> {{.GatewayOrderID}}</p>
<p><strong>Payment ID:</strong> {{if .GatewayPaymentID}}{{.GatewayPaymentID}}{{else}}Pending{{end}}</p>
<h3 style="margin-top:24px;">Items</h3>
{{template "itemsTable" .}}
<p style="margin-top:24px;"><strong>Total:</strong> {{inr .Amount}}</p>
<h3 style="margin-top:24px;">Shipping Address</h3>
{{template "addressBlock" .}}
{{end}}

{{define "buyer"}}
<h2 style="font-family: 'Playfair Display', serif; color:#9b2241;">Thank you for your order!</h2>
<p>Hello {{.Customer.Name}},</p>
<p>We're delighted to confirm your Lumi &amp; Co. order. Our artisans will begin preparing your radiant pieces.</p>
<p><strong>Order reference:</strong> {{.GatewayOrderID}}</p>
<h3 style="margin-top:24px;">Your Selection</h3>
{{template "itemsTable" .}}
<p style="margin-top:24px;"><strong>Total paid:</strong> {{inr .Amount}}</p>
<h3 style="margin-top:24px;">Shipping Address</h3>
{{template "addressBlock" .}}
<p style="margin-top:24px;">We'll send a dispatch update as soon as your jewels leave our atelier.</p>
<p style="margin-top:16px;">With warmth,<br/>Lumi &amp; Co.</p>
{{end}}
`))

func RenderSellerEmail(o *orders.Order) (string, error) { return render("seller", o) }

func RenderBuyerEmail(o *orders.Order) (string, error) { return render("buyer", o) }

func render(name string, o *orders.Order) (string, error) {
	var buf bytes.Buffer
	if err := emailTmpl.ExecuteTemplate(&buf, name, o); err != nil {
		return "", err
	}
	return buf.String(), nil
}
