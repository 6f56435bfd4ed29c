// Package repl implements the interactive cartctl shell.
package repl

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/witify/go-cart/internal/cart"
	"github.com/witify/go-cart/internal/catalog"
	"github.com/witify/go-cart/internal/types"
)

// REPL is the interactive shell over one cart.
type REPL struct {
	cart     *cart.Cart
	catalog  *catalog.Catalog
	rl       *readline.Instance
	ctx      context.Context
	commands map[string]commandHandler
}

type commandHandler func(args []string) error

// Config holds REPL configuration.
type Config struct {
	Cart    *cart.Cart
	Catalog *catalog.Catalog
}

// New creates a REPL instance.
func New(cfg *Config) (*REPL, error) {
	if cfg.Cart == nil {
		return nil, fmt.Errorf("cart is required")
	}
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}

	r := &REPL{
		cart:     cfg.Cart,
		catalog:  cfg.Catalog,
		commands: make(map[string]commandHandler),
	}
	r.registerCommands()
	return r, nil
}

// Run starts the shell loop. It returns when the user exits or input ends.
func (r *REPL) Run(ctx context.Context) error {
	r.ctx = ctx

	cyan := color.New(color.FgCyan).SprintFunc()
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            cyan("cart> "),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()
	r.rl = rl

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		name := strings.ToLower(fields[0])
		if name == "exit" || name == "quit" {
			return nil
		}

		handler, ok := r.commands[name]
		if !ok {
			fmt.Printf("unknown command %q (try 'help')\n", name)
			continue
		}
		if err := handler(fields[1:]); err != nil {
			color.Red("error: %v", err)
		}
	}
}

func (r *REPL) registerCommands() {
	r.commands["help"] = r.cmdHelp
	r.commands["add"] = r.cmdAdd
	r.commands["rm"] = r.cmdRemove
	r.commands["show"] = r.cmdShow
	r.commands["total"] = r.cmdTotal
	r.commands["empty"] = r.cmdEmpty
	r.commands["meta"] = r.cmdMeta
}

func (r *REPL) cmdHelp([]string) error {
	fmt.Println("commands:")
	fmt.Println("  add <product-id> [qty] [key=value ...]  add a catalog item")
	fmt.Println("  rm <row-id>                             remove a row")
	fmt.Println("  show                                    list cart rows")
	fmt.Println("  total                                   pricing breakdown")
	fmt.Println("  empty                                   clear the cart")
	fmt.Println("  meta <key> [value]                      get or set metadata")
	fmt.Println("  exit                                    leave the shell")
	return nil
}

func (r *REPL) cmdAdd(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: add <product-id> [qty] [key=value ...]")
	}

	product, ok := r.catalog.Get(args[0])
	if !ok {
		return fmt.Errorf("no product %q in catalog", args[0])
	}

	quantity := 1.0
	rest := args[1:]
	if len(rest) > 0 && !strings.Contains(rest[0], "=") {
		q, err := strconv.ParseFloat(rest[0], 64)
		if err != nil {
			return fmt.Errorf("invalid quantity %q", rest[0])
		}
		quantity = q
		rest = rest[1:]
	}

	options := types.Options{}
	for _, kv := range rest {
		k, v, found := strings.Cut(kv, "=")
		if !found {
			return fmt.Errorf("invalid option %q (want key=value)", kv)
		}
		options[k] = v
	}

	item, err := r.cart.Add(r.ctx, product, quantity, options)
	if err != nil {
		return err
	}
	color.Green("added %s x%v (%s)", item.Name, item.Quantity, item.RowID[:8])
	return nil
}

func (r *REPL) cmdRemove(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: rm <row-id>")
	}

	// Accept row-id prefixes, matching what show prints.
	rowID := args[0]
	if !r.cart.Has(rowID) {
		for _, item := range r.cart.Items() {
			if strings.HasPrefix(item.RowID, rowID) {
				rowID = item.RowID
				break
			}
		}
	}
	return r.cart.Remove(r.ctx, rowID)
}

func (r *REPL) cmdShow([]string) error {
	items := r.cart.Items()
	if len(items) == 0 {
		fmt.Println("cart is empty")
		return nil
	}
	gray := color.New(color.FgHiBlack).SprintFunc()
	for _, item := range items {
		opts := ""
		if len(item.Options) > 0 {
			parts := make([]string, 0, len(item.Options))
			for k, v := range item.Options {
				parts = append(parts, k+"="+v)
			}
			opts = " [" + strings.Join(parts, " ") + "]"
		}
		fmt.Printf("  %s  %s x%v @ %.2f = %.2f%s\n",
			gray(item.RowID[:8]), item.Name, item.Quantity, item.Price, item.Total(), opts)
	}
	return nil
}

func (r *REPL) cmdTotal([]string) error {
	breakdown := r.cart.Lines()
	fmt.Printf("  subtotal  %10.2f\n", breakdown.Subtotal)
	for _, name := range r.cart.LineNames() {
		fmt.Printf("  %-9s %10.2f\n", name, breakdown.Lines[name])
	}
	bold := color.New(color.Bold).SprintFunc()
	fmt.Printf("  %s     %10.2f\n", bold("total"), r.cart.Total())
	return nil
}

func (r *REPL) cmdEmpty([]string) error {
	return r.cart.Empty(r.ctx)
}

func (r *REPL) cmdMeta(args []string) error {
	switch len(args) {
	case 1:
		v, ok := r.cart.GetMetaData(args[0])
		if !ok {
			fmt.Println("(unset)")
			return nil
		}
		fmt.Println(v)
		return nil
	case 2:
		return r.cart.SetMetaData(r.ctx, args[0], args[1])
	default:
		return fmt.Errorf("usage: meta <key> [value]")
	}
}
