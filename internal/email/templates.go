package email

import (
	"fmt"
	"strings"

	"github.com/example/lesson-shop/internal/order"
)

// BuildOrderConfirmationBody builds the HTML body for an order
// confirmation email.
func BuildOrderConfirmationBody(name, orderID string, total float64, items []order.Item) string {
	var rows strings.Builder
	for _, item := range items {
		rows.WriteString(fmt.Sprintf(
			`<tr>
				<td style="padding: 12px; border-bottom: 1px solid #eee;">%s</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: center;">%d</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: right;">%.2f</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: right;">%.2f</td>
			</tr>`,
			item.Subject,
			item.Quantity,
			item.UnitPrice,
			item.TotalPrice,
		))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h1 style="font-size: 22px;">Order for %s has been submitted!</h1>

	<div style="background: #f8f9fa; padding: 15px; border-radius: 5px; margin: 20px 0;">
		<p style="margin: 0; font-size: 14px; color: #666;">Order reference</p>
		<p style="margin: 5px 0 0 0; font-size: 18px; font-weight: bold; font-family: monospace;">%s</p>
	</div>

	<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
		<thead>
			<tr style="border-bottom: 2px solid #333;">
				<th style="padding: 12px; text-align: left;">Lesson</th>
				<th style="padding: 12px; text-align: center;">Qty</th>
				<th style="padding: 12px; text-align: right;">Unit price</th>
				<th style="padding: 12px; text-align: right;">Total</th>
			</tr>
		</thead>
		<tbody>%s</tbody>
	</table>

	<p style="font-size: 18px; text-align: right;"><strong>Total amount: %.2f</strong></p>
</body>
</html>`, name, orderID, rows.String(), total)
}
