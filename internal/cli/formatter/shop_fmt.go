package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/hubkit/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// FormatProductList renders the catalog listing inside a bordered box.
func FormatProductList(products []domain.Product) string {
	if len(products) == 0 {
		return Dim("No products match your filters.")
	}
	headers := []string{"ID", "NAME", "CATEGORY", "PRICE", "RATING", "STOCK"}
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		name := Bold(p.Name)
		if p.Featured {
			name += " " + StylePurple.Render("★ featured")
		}
		rows = append(rows, []string{
			p.ID,
			name,
			p.Category,
			priceLabel(p),
			fmt.Sprintf("%s %s", Stars(p.Rating), Dim(fmt.Sprintf("(%d)", p.Reviews))),
			stockLabel(p.Stock),
		})
	}
	return RenderBox(fmt.Sprintf("Products (%d)", len(products)), RenderTable(headers, rows, 3))
}

// FormatProduct renders the detail card of one product.
func FormatProduct(p domain.Product) string {
	var b strings.Builder
	b.WriteString(Bold(p.Name) + "  " + Dim("#"+p.ID) + "\n")
	b.WriteString(StylePurple.Render(p.Category) + "\n\n")
	b.WriteString(p.Description + "\n\n")
	fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("PRICE "), priceLabel(p))
	fmt.Fprintf(&b, "%s  %s %s\n", StyleDim.Render("RATING"), Stars(p.Rating),
		Dim(fmt.Sprintf("%.1f from %d reviews", p.Rating, p.Reviews)))
	fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("STOCK "), stockLabel(p.Stock))
	if len(p.Tags) > 0 {
		fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("TAGS  "), strings.Join(p.Tags, ", "))
	}
	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}

func priceLabel(p domain.Product) string {
	label := StyleFg.Render(p.Price.String())
	if pct := p.DiscountPct(); pct > 0 {
		label += " " + Dim(p.OriginalPrice.String()) + " " + StyleRed.Render(fmt.Sprintf("-%d%%", pct))
	}
	return label
}

func stockLabel(stock int) string {
	switch {
	case stock <= 0:
		return StyleRed.Render("Out of stock")
	case stock < 5:
		return StyleYellow.Render(fmt.Sprintf("Only %d left", stock))
	default:
		return StyleGreen.Render(strconv.Itoa(stock) + " in stock")
	}
}

// FormatCart renders the cart lines and the priced summary.
func FormatCart(items []domain.CartItem, summary domain.OrderSummary) string {
	if len(items) == 0 {
		return Dim("Your cart is empty.")
	}
	headers := []string{"ID", "PRODUCT", "QTY", "PRICE", "SUBTOTAL"}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.Product.ID,
			Bold(it.Product.Name),
			strconv.Itoa(it.Quantity),
			it.Product.Price.String(),
			it.Subtotal().String(),
		})
	}
	return RenderBox("Cart", RenderTable(headers, rows, 2, 3, 4)+"\n"+FormatSummary(summary))
}

// FormatSummary renders subtotal, shipping, tax and total lines.
func FormatSummary(s domain.OrderSummary) string {
	shipping := s.Shipping.String()
	if s.Shipping == 0 {
		shipping = StyleGreen.Render("Free")
	}
	rows := [][]string{
		{"Subtotal", s.Subtotal.String()},
		{"Shipping", shipping},
		{"Tax", s.Tax.String()},
		{Bold("Total"), Bold(s.Total.String())},
	}
	var b strings.Builder
	for _, r := range rows {
		pad := strings.Repeat(" ", max(0, 11-lipgloss.Width(r[0])))
		fmt.Fprintf(&b, "%s%s%s\n", r[0], pad, r[1])
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatOrderList renders the order history, newest first as given.
func FormatOrderList(orders []domain.Order) string {
	if len(orders) == 0 {
		return Dim("No orders yet.")
	}
	headers := []string{"ORDER", "PLACED", "ITEMS", "TOTAL", "STATUS"}
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []string{
			TruncID(o.ID),
			o.CreatedAt.Format("Jan 2, 2006 15:04"),
			strconv.Itoa(o.ItemCount()),
			o.Summary.Total.String(),
			OrderStatusPill(o.Status),
		})
	}
	return RenderBox("Orders", RenderTable(headers, rows, 2, 3))
}

// FormatOrder renders a placed order confirmation.
func FormatOrder(o domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Bold("Order"), o.DisplayID())
	fmt.Fprintf(&b, "%s\n\n", OrderStatusPill(o.Status))
	for _, it := range o.Items {
		fmt.Fprintf(&b, "%d x %s  %s\n", it.Quantity, it.Product.Name, Dim(it.Subtotal().String()))
	}
	b.WriteString("\n" + FormatSummary(o.Summary) + "\n\n")
	a := o.ShippingAddress
	fmt.Fprintf(&b, "%s\n%s\n%s, %s %s\n%s\n", Dim("Ship to"), a.FullName, a.City, a.State, a.ZipCode, a.Country)
	fmt.Fprintf(&b, "%s %s", Dim("Paid by"), o.PaymentMethod)
	return RenderBox("Order placed", b.String())
}

// FormatNotifications renders queued notifications, one per line.
func FormatNotifications(notes []domain.Notification) string {
	lines := make([]string, 0, len(notes))
	for _, n := range notes {
		line := NotificationStyle(n.Kind).Render("● " + n.Title)
		if n.Message != "" {
			line += " " + Dim(n.Message)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// FormatUser renders the signed-in user, or a hint when nobody is.
func FormatUser(u *domain.User) string {
	if u == nil {
		return Dim("Not signed in.")
	}
	return fmt.Sprintf("%s <%s>  %s  %s", Bold(u.Name), u.Email,
		StylePurple.Render(string(u.Role)), Dim("since "+u.CreatedAt.Format(time.DateOnly)))
}
