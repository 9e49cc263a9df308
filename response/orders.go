package response

import (
	"fmt"
	"strconv"

	"github.com/liamcoop/erpassistant/dataset"
)

// listIcon is the icon of an order in the order summary
func listIcon(s dataset.OrderStatus) string {
	switch s {
	case dataset.StatusDelivered:
		return "✅"
	case dataset.StatusPendingApproval:
		return "⏳"
	case dataset.StatusInTransit:
		return "🚚"
	default:
		return "📦"
	}
}

// statusTone is the badge tone of an order status
func statusTone(s dataset.OrderStatus) Tone {
	switch s {
	case dataset.StatusDelivered:
		return ToneSuccess
	case dataset.StatusPendingApproval:
		return ToneWarning
	default:
		return ToneInfo
	}
}

func (g *Generator) orderSummary() Response {
	b := &builder{}
	b.heading(Plain("🚚 Order Summary")).lineBreak()
	b.field("Total Orders", Plain(strconv.Itoa(len(g.data.Orders)))).lineBreak()

	for _, o := range g.data.Orders {
		b.paragraph(Plain(listIcon(o.Status)+" "), Strong("Order #"+o.ID))
		b.detail("Customer", Plain(o.Customer))
		b.detail("Status", Badge(statusTone(o.Status), string(o.Status)))
		b.detail("Total", Plain(FormatCurrency(o.Total))).lineBreak()
	}

	return reply(b, "Track order 12345", "Pending approvals", "Delivery schedule")
}

// orderStatus returns the detail icon and the status line of an order
func (g *Generator) orderStatus(o dataset.Order) (icon, message string) {
	switch o.Status {
	case dataset.StatusDelivered:
		return "✅", "Delivered on " + FormatDate(o.DeliveryDate)
	case dataset.StatusInTransit:
		return "🚚", fmt.Sprintf("On schedule, arriving in %d days", DaysUntil(o.DeliveryDate, g.now()))
	case dataset.StatusProcessing:
		return "⚙️", "Order is being prepared for shipment"
	case dataset.StatusPendingApproval:
		return "⏳", "Waiting for approval"
	default:
		return "📦", ""
	}
}

func (g *Generator) orderDetails(o dataset.Order) Response {
	icon, message := g.orderStatus(o)

	b := &builder{}
	b.heading(Plain(fmt.Sprintf("%s Order #%s", icon, o.ID))).lineBreak()
	b.field("Customer", Plain(o.Customer))
	b.field("Status", Badge(statusTone(o.Status), string(o.Status)))
	b.field("Items", Plain(fmt.Sprintf("%d products", o.Items)))
	b.field("Total", Plain(FormatCurrency(o.Total)))
	b.field("Order Date", Plain(FormatDate(o.Date)))
	b.field("Expected Delivery", Plain(FormatDate(o.DeliveryDate)))
	if message != "" {
		b.lineBreak()
		b.note(message)
	}

	return reply(b, "View invoice", "Contact customer", "Track all orders")
}
