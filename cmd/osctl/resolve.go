package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"go.uber.org/zap"

	"field-service/internal/orderflow"
	"field-service/pkg/utils"
)

type ResolveCmd struct {
	File    string `arg:"" type:"existingfile" help:"Order snapshot (.json, .yaml or .yml)."`
	Tecnico int64  `short:"t" required:"" help:"Technician id to evaluate for."`
	Format  string `short:"o" default:"text" enum:"text,json" help:"Output format."`
}

type resolveOutput struct {
	OrderID         int64    `json:"order_id"`
	TechnicianID    int64    `json:"tecnico_id"`
	OrderStatus     string   `json:"order_status"`
	TechnicianState string   `json:"technician_state"`
	ActiveFatID     *int64   `json:"active_fat_id,omitempty"`
	Actions         []string `json:"actions"`
	Violations      []string `json:"violations,omitempty"`
}

func (c *ResolveCmd) Run(g *Globals) error {
	order, warnings, err := loadSnapshot(c.File)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		g.logger.Warn("snapshot anomaly", zap.String("detail", w))
	}

	ev := orderflow.Evaluate(order, c.Tecnico)
	out := resolveOutput{
		OrderID:         ev.OrderID,
		TechnicianID:    ev.TechnicianID,
		OrderStatus:     ev.OrderStatus.String(),
		TechnicianState: ev.State.String(),
		Actions:         make([]string, 0, len(ev.Actions)),
	}
	if ev.ActiveFat != nil {
		out.ActiveFatID = utils.ToPtr(ev.ActiveFat.ID)
	}
	for _, a := range ev.Actions {
		out.Actions = append(out.Actions, string(a))
	}
	for _, v := range ev.Violations {
		out.Violations = append(out.Violations, v.Error())
	}

	if c.Format == "json" {
		enc := json.NewEncoder(g.out)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	tw := tabwriter.NewWriter(g.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "order\t%d\t%s\n", out.OrderID, out.OrderStatus)
	fmt.Fprintf(tw, "technician\t%d\t%s\n", out.TechnicianID, out.TechnicianState)
	for _, a := range ev.Actions {
		fmt.Fprintf(tw, "action\t%s\t%s\n", a, a.Label())
	}
	for _, v := range out.Violations {
		fmt.Fprintf(tw, "warning\t%s\n", v)
	}
	return tw.Flush()
}
