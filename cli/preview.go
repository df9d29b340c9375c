package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/steerlab/fourws/components/base/fourws"
)

func previewTable(p fourws.TrajectoryPreview) string {
	t := table.NewWriter()
	if p.HasICR {
		t.AppendHeader(table.Row{"Radius", "Length"})
		t.AppendRow(table.Row{"main", fmt.Sprintf("%.2f", p.MainRadius)})
		t.AppendRow(table.Row{"left", fmt.Sprintf("%.2f", p.LeftRadius)})
		t.AppendRow(table.Row{"right", fmt.Sprintf("%.2f", p.RightRadius)})
		return "icr: " + formatPoint(p.ICR.X, p.ICR.Y) + "\n" + t.Render()
	}
	t.AppendHeader(table.Row{"Wheel", "Origin", "End"})
	for _, ray := range p.Rays {
		t.AppendRow(table.Row{
			ray.Wheel,
			formatPoint(ray.Origin.X, ray.Origin.Y),
			formatPoint(ray.End.X, ray.End.Y),
		})
	}
	return "icr: -\n" + t.Render()
}
