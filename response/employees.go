package response

import (
	"fmt"
	"strconv"

	"github.com/liamcoop/erpassistant/dataset"
)

func days(n int) string {
	return fmt.Sprintf("%d days", n)
}

func (g *Generator) employeeDirectory() Response {
	b := &builder{}
	b.heading(Plain("👥 Employee Directory")).lineBreak()
	b.field("Total Employees", Plain(strconv.Itoa(len(g.data.Employees)))).lineBreak()

	for _, e := range g.data.Employees {
		b.bullet(Strong(e.Name), Plain(" ("+e.ID+")"))
		b.detail("", Plain(e.Position+" - "+e.Department))
		b.detail("Leave Balance", Plain(days(e.LeaveBalance))).lineBreak()
	}

	return reply(b, "Search employee", "Department breakdown", "Leave summary")
}

func employeeProfile(e dataset.Employee) Response {
	b := &builder{}
	b.heading(Plain("👤 Employee Profile")).lineBreak()
	b.field("Name", Plain(e.Name))
	b.field("Employee ID", Plain(e.ID))
	b.field("Department", Plain(e.Department))
	b.field("Position", Plain(e.Position))
	b.field("Leave Balance", Plain(days(e.LeaveBalance))).lineBreak()
	b.note("All information is current as of today.")

	return reply(b, "View attendance", "Payroll info", "Performance review")
}
