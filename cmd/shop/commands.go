package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/murkotick/storefront-service/internal/app/cart"
	"github.com/murkotick/storefront-service/internal/app/pricing"
	"github.com/murkotick/storefront-service/internal/client/storefront"
)

// maxAddQuantity caps a single add; repeated adds may exceed it.
const maxAddQuantity = 10

const usage = `usage: shop <command> [flags]

commands:
  products   list the catalog
  product    show one product: shop product <id>
  add        add a product to the cart
  remove     remove a cart line
  qty        change the quantity of a cart line
  clear      empty the cart
  show       print the cart with totals
  checkout   submit the cart as an order
`

var errUsage = errors.New("invalid usage")

type catalog interface {
	ListProducts(ctx context.Context, opts storefront.ListOptions) (*storefront.ProductList, error)
	GetProduct(ctx context.Context, id string) (*storefront.Product, error)
	cart.OrderSubmitter
}

type app struct {
	ledger *cart.Ledger
	api    catalog
	out    io.Writer
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "products":
		return a.products(ctx, rest)
	case "product":
		return a.product(ctx, rest)
	case "add":
		return a.add(ctx, rest)
	case "remove":
		return a.remove(ctx, rest)
	case "qty":
		return a.qty(ctx, rest)
	case "clear":
		if err := a.ledger.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "cart cleared")
		return nil
	case "show":
		return a.show()
	case "checkout":
		return a.checkout(ctx, rest)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	}
	fmt.Fprint(a.out, usage)
	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func (a *app) products(ctx context.Context, args []string) error {
	var o storefront.ListOptions
	fs := a.flagSet("products")
	fs.StringVar(&o.Gender, "gender", "", "male, female or unisex")
	fs.StringVar(&o.Category, "category", "", "category")
	fs.StringVar(&o.Brand, "brand", "", "brand")
	fs.StringVar(&o.Search, "search", "", "text search")
	fs.StringVar(&o.SortBy, "sort", "", "createdAt, price, name or rating")
	fs.StringVar(&o.SortOrder, "order", "", "asc or desc")
	fs.IntVar(&o.Page, "page", 0, "page number")
	fs.IntVar(&o.Limit, "limit", 0, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list, err := a.api.ListProducts(ctx, o)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBRAND\tPRICE\tSIZES")
	for _, p := range list.Products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Brand, pricing.Format(p.EffectivePrice), sizeList(p.Sizes))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	pg := list.Pagination
	fmt.Fprintf(a.out, "page %d of %d (%d products)\n", pg.CurrentPage, pg.TotalPages, pg.TotalProducts)
	return nil
}

func (a *app) product(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: product <id>", errUsage)
	}
	p, err := a.api.GetProduct(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s by %s\n", p.Name, p.Brand)
	if p.DiscountPrice != nil {
		fmt.Fprintf(a.out, "price: %s (was %s)\n", pricing.Format(p.EffectivePrice), pricing.Format(p.Price))
	} else {
		fmt.Fprintf(a.out, "price: %s\n", pricing.Format(p.EffectivePrice))
	}
	fmt.Fprintf(a.out, "sizes: %s\n", sizeList(p.Sizes))
	if p.Description != "" {
		fmt.Fprintln(a.out, p.Description)
	}
	return nil
}

func (a *app) add(ctx context.Context, args []string) error {
	fs := a.flagSet("add")
	id := fs.String("product", "", "product id")
	size := fs.String("size", "", "size")
	qty := fs.Int("qty", 1, fmt.Sprintf("quantity, 1 to %d", maxAddQuantity))
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" || *size == "" {
		return fmt.Errorf("%w: add -product ID -size SIZE [-qty N]", errUsage)
	}
	if *qty < 1 || *qty > maxAddQuantity {
		return fmt.Errorf("%w: quantity must be between 1 and %d", errUsage, maxAddQuantity)
	}

	p, err := a.api.GetProduct(ctx, *id)
	if err != nil {
		return err
	}
	s, ok := findSize(p.Sizes, *size)
	if !ok {
		return fmt.Errorf("%s is not available in size %q", p.Name, *size)
	}
	if s.Stock < 1 {
		return fmt.Errorf("%s %s is out of stock", p.Name, s.Size)
	}

	if err := a.ledger.Add(ctx, p.LineItem(s.Size, *qty)); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "added %d x %s (%s); cart has %d items\n", *qty, p.Name, s.Size, a.ledger.TotalItems())
	return nil
}

func (a *app) remove(ctx context.Context, args []string) error {
	fs := a.flagSet("remove")
	id := fs.String("product", "", "product id")
	size := fs.String("size", "", "size")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.ledger.Remove(ctx, *id, *size); err != nil {
		return err
	}
	return a.show()
}

func (a *app) qty(ctx context.Context, args []string) error {
	fs := a.flagSet("qty")
	id := fs.String("product", "", "product id")
	size := fs.String("size", "", "size")
	n := fs.Int("qty", 0, "new quantity, at least 1")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.ledger.UpdateQuantity(ctx, *id, *size, *n); err != nil {
		return err
	}
	return a.show()
}

func (a *app) show() error {
	if a.ledger.Len() == 0 {
		fmt.Fprintln(a.out, "cart is empty")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tSIZE\tQTY\tPRICE\tLINE")
	for _, it := range a.ledger.Items() {
		fmt.Fprintf(tw, "%s (%s)\t%s\t%d\t%s\t%s\n", it.Name, it.ProductID, it.Size, it.Quantity,
			pricing.Format(it.UnitPrice), pricing.Format(it.LineTotal()))
	}
	p := a.ledger.Pricing()
	fmt.Fprintf(tw, "\t\t\tsubtotal\t%s\n", pricing.Format(p.Subtotal))
	fmt.Fprintf(tw, "\t\t\tshipping\t%s\n", pricing.Format(p.ShippingCost))
	fmt.Fprintf(tw, "\t\t\ttax\t%s\n", pricing.Format(p.TaxAmount))
	fmt.Fprintf(tw, "\t\t\ttotal\t%s\n", pricing.Format(p.Total))
	return tw.Flush()
}

func (a *app) checkout(ctx context.Context, args []string) error {
	var (
		d    cart.CheckoutDetails
		addr = &d.ShippingAddress
	)
	fs := a.flagSet("checkout")
	fs.StringVar(&addr.FullName, "name", "", "recipient full name")
	fs.StringVar(&addr.Street, "street", "", "street")
	fs.StringVar(&addr.Apartment, "apartment", "", "apartment")
	fs.StringVar(&addr.City, "city", "", "city")
	fs.StringVar(&addr.State, "state", "", "state")
	fs.StringVar(&addr.PostalCode, "postal", "", "postal code")
	fs.StringVar(&addr.Country, "country", "", "country")
	fs.StringVar(&addr.Phone, "phone", "", "phone")
	fs.StringVar(&addr.Email, "email", "", "email")
	fs.StringVar(&d.PaymentMethod, "payment", "credit_card", "credit_card, paypal or stripe")
	fs.StringVar(&d.Notes, "notes", "", "order notes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	conf, err := a.ledger.Checkout(ctx, a.api, d)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "order %s placed (%s), total %s\n", conf.OrderID, conf.Status, pricing.Format(conf.Total))
	return nil
}

func findSize(sizes []storefront.Size, want string) (storefront.Size, bool) {
	for _, s := range sizes {
		if strings.EqualFold(s.Size, strings.TrimSpace(want)) {
			return s, true
		}
	}
	return storefront.Size{}, false
}

func sizeList(sizes []storefront.Size) string {
	parts := make([]string, 0, len(sizes))
	for _, s := range sizes {
		parts = append(parts, fmt.Sprintf("%s(%d)", s.Size, s.Stock))
	}
	return strings.Join(parts, " ")
}
