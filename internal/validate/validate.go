package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reEmail  = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID     = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reExpiry = regexp.MustCompile(`^\d{2}/\d{2}$`)
	reDigits = regexp.MustCompile(`^\d+$`)
)

// Shipping holds the checkout form. Phone is the only optional field.
type Shipping struct {
	FirstName  string
	LastName   string
	Phone      string
	Address    string
	City       string
	State      string
	PostalCode string
	Country    string
}

// MissingShippingFields returns the names of required fields left empty, in
// form order.
func MissingShippingFields(f Shipping) []string {
	var missing []string
	check := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	check("firstName", f.FirstName)
	check("lastName", f.LastName)
	check("address", f.Address)
	check("city", f.City)
	check("state", f.State)
	check("postalCode", f.PostalCode)
	check("country", f.Country)
	return missing
}

// CardProblems validates credit card fields: 16-digit number (formatting
// spaces ignored), non-empty holder, MM/YY expiry, 3-digit CVV.
func CardProblems(number, holder, expiry, cvv string) []string {
	var problems []string
	digits := strings.ReplaceAll(number, " ", "")
	if len(digits) != 16 || !reDigits.MatchString(digits) {
		problems = append(problems, "card number must be 16 digits")
	}
	if strings.TrimSpace(holder) == "" {
		problems = append(problems, "cardholder name is required")
	}
	if !reExpiry.MatchString(expiry) {
		problems = append(problems, "expiry date must be MM/YY")
	}
	if len(cvv) != 3 || !reDigits.MatchString(cvv) {
		problems = append(problems, "CVV must be 3 digits")
	}
	return problems
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a simple resource identifier (product/order ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Qty parses a line quantity, clamped to a sane window.
func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	if n > 50 {
		return 50
	}
	return n
}

// Password enforces a simple length window for login checks.
func Password(s string) bool {
	l := len(s)
	return l >= 8 && l <= 72
}
