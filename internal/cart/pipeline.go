package cart

import (
	"fmt"

	"github.com/witify/go-cart/internal/config"
	"github.com/witify/go-cart/internal/pricing"
)

// PipelineFromConfig builds a pricing pipeline from configured line
// declarations, in declaration order.
func PipelineFromConfig(lines []config.LineConfig) (*pricing.Pipeline, error) {
	p := pricing.New()
	for _, l := range lines {
		switch l.Kind {
		case config.LineTax:
			p.AddLine(l.Name, pricing.Taxes(l.Rate))
		case config.LineSubtotalTax:
			p.AddLine(l.Name, pricing.SubtotalRate(l.Rate))
		case config.LineFlat:
			p.AddLine(l.Name, pricing.Flat(l.Amount))
		default:
			return nil, fmt.Errorf("pricing line %q: unknown kind %q", l.Name, l.Kind)
		}
	}
	return p, nil
}
