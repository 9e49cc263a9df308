package response

import (
	"fmt"
	"strconv"

	"github.com/liamcoop/erpassistant/dataset"
)

// overviewSize is the number of products listed in the inventory overview
const overviewSize = 5

func units(n int) string {
	return fmt.Sprintf("%d units", n)
}

func (g *Generator) inventoryOverview() Response {
	b := &builder{}
	b.heading(Plain("📦 Inventory Overview")).lineBreak()
	b.field("Total Products", Plain(strconv.Itoa(len(g.data.Products))))
	b.field("Low Stock Items", Plain(strconv.Itoa(len(g.data.LowStock())))).lineBreak()
	b.heading(Plain("Stock Summary:"))

	for _, p := range g.data.Products[:min(overviewSize, len(g.data.Products))] {
		spans := []Span{Plain(p.Name + ": "), Strong(units(p.Quantity))}
		if p.IsLowStock() {
			spans = append(spans, Plain(" "), Badge(ToneLowStock, "⚠️ Low Stock"))
		}
		b.bullet(spans...)
	}

	return reply(b, "Show all laptops", "Low stock items", "Reorder recommendations")
}

func (g *Generator) inventoryCategory(c dataset.Category) Response {
	b := &builder{}
	b.heading(Plain(fmt.Sprintf("📦 %s Inventory", c.Title()))).lineBreak()

	for _, p := range g.data.ProductsInCategory(c) {
		stock := []Span{Plain(units(p.Quantity))}
		if p.IsLowStock() {
			stock = append(stock, Plain(" "), Badge(ToneLowStock, "⚠️ Low Stock"))
		}

		b.bullet(Strong(p.Name))
		b.detail("Stock", stock...)
		b.detail("Price", Plain(FormatCurrency(p.Price)))
		b.detail("Location", Plain(p.Location)).lineBreak()
	}

	return reply(b, "Show all inventory", "Track orders", "Generate report")
}

func productDetails(p dataset.Product) Response {
	b := &builder{}
	b.heading(Plain("📦 Product Details")).lineBreak()
	b.heading(Plain(p.Name)).lineBreak()
	b.field("SKU", Plain(p.SKU))

	stock := []Span{Plain(units(p.Quantity))}
	if p.IsLowStock() {
		stock = append(stock, Plain(" "), Badge(ToneAlert, "⚠️ Low Stock"))
	}
	b.field("Stock Level", stock...)
	b.field("Price", Plain(FormatCurrency(p.Price)))
	b.field("Supplier", Plain(p.Supplier))
	b.field("Location", Plain(p.Location))
	b.field("Reorder Level", Plain(units(p.ReorderLevel)))

	if !p.IsLowStock() {
		return reply(b, "View other products", "Check orders")
	}

	b.lineBreak()
	b.note(fmt.Sprintf("💡 Recommendation: Consider reordering %d units", p.ReorderQuantity()))
	return reply(b, "Create purchase order", "View supplier info")
}

func (g *Generator) lowStock() Response {
	low := g.data.LowStock()

	b := &builder{}
	b.heading(Plain("⚠️ Low Stock Alert")).lineBreak()
	b.paragraph(Plain(fmt.Sprintf("Found %d items below reorder level:", len(low)))).lineBreak()

	for _, p := range low {
		b.bullet(Strong(p.Name))
		b.detail("Current", Plain(fmt.Sprintf("%s | Reorder at: %s", units(p.Quantity), units(p.ReorderLevel))))
		b.detail("Recommended order", Plain(units(p.ReorderQuantity())))
		b.detail("Supplier", Plain(p.Supplier)).lineBreak()
	}

	return reply(b, "Create purchase orders", "Contact suppliers", "View full inventory")
}
