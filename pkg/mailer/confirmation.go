package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
)

var confirmationHTML = template.Must(template.New("confirmation").Parse(`<h1>Thank you for your order</h1>
<p>Order <strong>{{.ID}}</strong></p>
<table>
{{- range .Items}}
<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{.UnitPrice.StringFixed 0}}</td></tr>
{{- end}}
</table>
<p>Total: {{.Total.StringFixed 0}}</p>
<p>Shipping to {{.ShippingAddress.LastName}} {{.ShippingAddress.FirstName}}, {{.ShippingAddress.PostalCode}} {{.ShippingAddress.Prefecture}} {{.ShippingAddress.City}} {{.ShippingAddress.Address1}}</p>
`))

// OrderConfirmation renders the confirmation mail for a created order.
func OrderConfirmation(to string, order *models.Order) (*models.EmailMessage, error) {
	var html bytes.Buffer
	if err := confirmationHTML.Execute(&html, order); err != nil {
		return nil, fmt.Errorf("failed to render confirmation email: %w", err)
	}

	var text strings.Builder
	fmt.Fprintf(&text, "Thank you for your order.\nOrder %s\n\n", order.ID)
	for _, item := range order.Items {
		fmt.Fprintf(&text, "%s x%d  %s\n", item.Name, item.Quantity, item.UnitPrice.StringFixed(0))
	}
	fmt.Fprintf(&text, "\nTotal: %s\n", order.Total.StringFixed(0))

	return &models.EmailMessage{
		To:          to,
		Subject:     fmt.Sprintf("Order confirmation %s", order.ID.String()[:8]),
		Content:     text.String(),
		HTMLContent: html.String(),
	}, nil
}
