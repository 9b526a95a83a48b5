package domain

// Order status values. There is no enforced transition graph: the back office
// may move an order to any status, and only two edges carry stock side effects
// (see services.StatusService).
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

var statusLabels = map[string]string{
	StatusPending:    "Pending",
	StatusProcessing: "Processing",
	StatusShipped:    "Shipped",
	StatusCompleted:  "Completed",
	StatusCancelled:  "Cancelled",
}

func ValidStatus(s string) bool {
	_, ok := statusLabels[s]
	return ok
}

// StatusLabel returns the display label for a status, falling back to the raw
// value when unknown.
func StatusLabel(s string) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return s
}

// Payment methods accepted at checkout.
const (
	PaymentCreditCard     = "credit_card"
	PaymentCashOnDelivery = "cash_on_delivery"
)
