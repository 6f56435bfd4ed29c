// Package pricing implements the ordered pricing-line pipeline that turns a
// cart's item collection into a final total. Lines run as a sequential fold:
// each line sees the running total produced by the lines before it, and its
// amount is added to that total before the next line executes.
package pricing

import (
	"math"

	"github.com/witify/go-cart/internal/types"
)

// LineFunc computes one pricing adjustment. It receives the running total at
// the point the line executes, the cart subtotal, and the item collection, and
// returns the amount to add. Line functions must be pure.
type LineFunc func(total, subtotal float64, items []*types.LineItem) float64

type line struct {
	name    string
	compute LineFunc
}

// Pipeline is an ordered registry of named pricing lines.
type Pipeline struct {
	lines []line
	index map[string]int
}

// New returns an empty pipeline.
func New() *Pipeline {
	return &Pipeline{index: make(map[string]int)}
}

// AddLine registers a named line at the end of the pipeline. Re-registering an
// existing name replaces its function but keeps its original position.
func (p *Pipeline) AddLine(name string, fn LineFunc) {
	if i, ok := p.index[name]; ok {
		p.lines[i].compute = fn
		return
	}
	p.index[name] = len(p.lines)
	p.lines = append(p.lines, line{name: name, compute: fn})
}

// Names returns the registered line names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.lines))
	for i, l := range p.lines {
		names[i] = l.name
	}
	return names
}

// Len reports the number of registered lines.
func (p *Pipeline) Len() int {
	return len(p.lines)
}

// Breakdown is the result of evaluating the pipeline over an item collection.
// Total carries the full unrounded accumulation; rounding happens only at the
// reporting edge.
type Breakdown struct {
	Subtotal float64
	Lines    map[string]float64
	Total    float64
}

// Evaluate folds the registered lines over the items. The subtotal is the sum
// of item totals; each line's amount is recorded under its name and added to
// the running total before the next line runs.
func (p *Pipeline) Evaluate(items []*types.LineItem) Breakdown {
	subtotal := 0.0
	for _, item := range items {
		subtotal += item.Total()
	}

	total := subtotal
	amounts := make(map[string]float64, len(p.lines))
	for _, l := range p.lines {
		amount := l.compute(total, subtotal, items)
		amounts[l.name] = amount
		total += amount
	}

	return Breakdown{Subtotal: subtotal, Lines: amounts, Total: total}
}

// Round2 rounds a reported amount to 2 decimal places. Internal accumulation
// stays unrounded so rounding error never compounds across lines.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
