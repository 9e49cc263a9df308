package response

import "github.com/liamcoop/erpassistant/dataset"

// financialMonthly renders a monthly summary, falling back to October for
// periods the dataset does not hold
func (g *Generator) financialMonthly(key string) Response {
	p, ok := g.data.Period(key)
	if !ok {
		p, _ = g.data.Period(dataset.PeriodOctober2025)
	}

	b := &builder{}
	b.heading(Plain("💰 Financial Summary - " + p.Label)).lineBreak()
	b.field("Revenue", Plain(FormatCurrency(p.Revenue)))
	b.field("Expenses", Plain(FormatCurrency(p.Expenses)))
	b.field("Net Profit", Plain(FormatCurrency(p.Profit)))
	b.field("Profit Margin", Plain(FormatPercent(p.Margin))).lineBreak()

	if p.Growth != nil && *p.Growth != 0 {
		b.paragraph(Plain("📈 "), Strong(FormatGrowth(*p.Growth)), Plain(" compared to last month")).lineBreak()
	}
	b.note("Performance is strong. Would you like a detailed breakdown?")

	return reply(b, "Expense breakdown", "Revenue by category", "Quarterly report")
}

func (g *Generator) financialQuarterly() Response {
	p, _ := g.data.Period(dataset.PeriodQ32025)

	b := &builder{}
	b.heading(Plain("💼 " + p.Label + " Financial Report")).lineBreak()
	b.field("Total Revenue", Plain(FormatCurrency(p.Revenue)))
	b.field("Total Expenses", Plain(FormatCurrency(p.Expenses)))
	b.field("Net Profit", Plain(FormatCurrency(p.Profit)))
	b.field("Profit Margin", Plain(FormatPercent(p.Margin))).lineBreak()
	b.note("Quarterly performance shows consistent growth across all metrics.")

	return reply(b, "Year-to-date report", "Budget comparison", "Forecast Q4")
}
