package pricing

import (
	"testing"

	"github.com/witify/go-cart/internal/types"
)

func fixtureItems() []*types.LineItem {
	a := types.NewLineItem("1", "Item 1", 10.00, nil)
	b := types.NewLineItem("2", "Item 2", 45.00, nil)
	b.SetQuantity(2)
	return []*types.LineItem{a, b} // subtotal 100
}

func TestEvaluateEmptyPipeline(t *testing.T) {
	p := New()
	breakdown := p.Evaluate(fixtureItems())

	if breakdown.Subtotal != 100 {
		t.Errorf("expected subtotal 100, got %v", breakdown.Subtotal)
	}
	if breakdown.Total != 100 {
		t.Errorf("total must equal subtotal with no lines, got %v", breakdown.Total)
	}
	if len(breakdown.Lines) != 0 {
		t.Errorf("expected no line amounts, got %v", breakdown.Lines)
	}
}

func TestEvaluateNoItems(t *testing.T) {
	p := New()
	p.AddLine("taxes", Taxes(0.15))

	breakdown := p.Evaluate(nil)
	if breakdown.Subtotal != 0 || breakdown.Total != 0 {
		t.Errorf("empty cart must total 0, got %+v", breakdown)
	}
}

// Lines fold sequentially: a line computing from the running total must see
// the output of the lines registered before it, not the original subtotal.
func TestEvaluateSequentialFold(t *testing.T) {
	p := New()
	p.AddLine("A", SubtotalRate(0.10)) // 10
	p.AddLine("B", func(total, subtotal float64, _ []*types.LineItem) float64 {
		if total != 110 {
			t.Errorf("B must see the post-A running total 110, got %v", total)
		}
		if subtotal != 100 {
			t.Errorf("B must see the original subtotal 100, got %v", subtotal)
		}
		return total * 0.5 // 55
	})

	breakdown := p.Evaluate(fixtureItems())
	if breakdown.Lines["A"] != 10 {
		t.Errorf("expected A=10, got %v", breakdown.Lines["A"])
	}
	if breakdown.Lines["B"] != 55 {
		t.Errorf("expected B=55, got %v", breakdown.Lines["B"])
	}
	if breakdown.Total != 165 {
		t.Errorf("expected total 165, got %v", breakdown.Total)
	}
}

func TestAddLineOverwriteKeepsSlot(t *testing.T) {
	p := New()
	p.AddLine("taxes", Taxes(0.15))
	p.AddLine("shipping", Flat(10))
	p.AddLine("taxes", Taxes(0.05)) // replace, same slot

	if p.Len() != 2 {
		t.Fatalf("overwrite must not grow the pipeline, got %d lines", p.Len())
	}
	names := p.Names()
	if len(names) != 2 || names[0] != "taxes" || names[1] != "shipping" {
		t.Fatalf("expected [taxes shipping], got %v", names)
	}

	breakdown := p.Evaluate(fixtureItems())
	if breakdown.Lines["taxes"] != 5 {
		t.Errorf("overwritten line must use the new function, got %v", breakdown.Lines["taxes"])
	}
}

func TestBuiltinLines(t *testing.T) {
	items := fixtureItems()

	p := New()
	p.AddLine("fee", Flat(3))
	p.AddLine("taxes", Taxes(0.15)) // 15% of 103

	breakdown := p.Evaluate(items)
	if breakdown.Lines["fee"] != 3 {
		t.Errorf("expected flat fee 3, got %v", breakdown.Lines["fee"])
	}
	if breakdown.Lines["taxes"] != 103*0.15 {
		t.Errorf("tax line must apply to the running total, got %v", breakdown.Lines["taxes"])
	}
}

func TestRound2(t *testing.T) {
	cases := map[float64]float64{
		57.942:  57.94,
		1.999:   2.00,
		11.5:    11.5,
		0:       0,
		99.9999: 100,
	}
	for in, want := range cases {
		if got := Round2(in); got != want {
			t.Errorf("Round2(%v) = %v, want %v", in, got, want)
		}
	}
}
