package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/hubkit/internal/cli/formatter"
	"github.com/alexanderramin/hubkit/internal/store"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var errFormAborted = huh.ErrUserAborted

// hubkitHuhTheme returns a huh theme using the Gruvbox palette.
func hubkitHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func themed(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(hubkitHuhTheme()).WithShowHelp(false)
}

func requiredInput(title, placeholder string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(validateRequired(title))
}

// signInForm asks for credentials. Fields already filled are kept.
func signInForm(email, password *string) *huh.Form {
	return themed(huh.NewGroup(
		huh.NewInput().Title("Email").Placeholder("you@example.com").Value(email).Validate(validateEmail),
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(password).
			Validate(validateRequired("Password")),
	))
}

func signUpForm(name, email, password *string) *huh.Form {
	return themed(huh.NewGroup(
		requiredInput("Name", "Ada Lovelace", name),
		huh.NewInput().Title("Email").Placeholder("you@example.com").Value(email).Validate(validateEmail),
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(password).
			Validate(validateRequired("Password")),
	))
}

// checkoutForm collects the shipping address on one page and the payment
// method on the next.
func checkoutForm(in *store.CheckoutInput) *huh.Form {
	a := &in.ShippingAddress
	return themed(
		huh.NewGroup(
			requiredInput("Full name", "Ada Lovelace", &a.FullName),
			huh.NewInput().Title("Email").Value(&a.Email).Validate(validateEmail),
			requiredInput("Phone", "555-0100", &a.Phone),
			requiredInput("Address", "12 Analytical Way", &a.Address),
			requiredInput("City", "London", &a.City),
			requiredInput("State", "LDN", &a.State),
			requiredInput("ZIP code", "N1 9GU", &a.ZipCode),
			requiredInput("Country", "UK", &a.Country),
		).Title("Shipping"),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Payment method").
				Options(
					huh.NewOption("Credit card", store.PaymentCard),
					huh.NewOption("PayPal", store.PaymentPayPal),
				).
				Value(&in.PaymentMethod),
		).Title("Payment"),
	)
}

// projectForm asks for the fields a new project cannot default.
func projectForm(name, description, end *string) *huh.Form {
	return themed(huh.NewGroup(
		requiredInput("Name", "Website redesign", name),
		huh.NewText().Title("Description").Value(description),
		huh.NewInput().Title("End date").Placeholder("YYYY-MM-DD").Value(end).
			Validate(func(s string) error {
				if err := validateRequired("End date")(s); err != nil {
					return err
				}
				return validateOptionalDate(s)
			}),
	))
}

// taskForm asks for a title, priority and optional due date.
func taskForm(title, priority, due *string) *huh.Form {
	return themed(huh.NewGroup(
		requiredInput("Title", "Write release notes", title),
		huh.NewSelect[string]().
			Title("Priority").
			Options(
				huh.NewOption("High", "high"),
				huh.NewOption("Medium", "medium"),
				huh.NewOption("Low", "low"),
			).
			Value(priority),
		huh.NewInput().Title("Due date").Placeholder("YYYY-MM-DD").Value(due).Validate(validateOptionalDate),
	))
}

func confirmForm(title string, result *bool) *huh.Form {
	return themed(huh.NewGroup(
		huh.NewConfirm().Title(title).Affirmative("Yes").Negative("No").Value(result),
	))
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", strings.ToLower(field))
		}
		return nil
	}
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("email is required")
	}
	if at := strings.Index(s, "@"); at <= 0 || at == len(s)-1 {
		return errors.New("enter an email like you@example.com")
	}
	return nil
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date string.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return errors.New("use YYYY-MM-DD format")
	}
	return nil
}
