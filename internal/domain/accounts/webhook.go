package accounts

import (
	"encoding/json"
	"strings"

	"petcontrol/internal/errs"
)

// PurchaseEvent es el evento de billing normalizado.
type PurchaseEvent struct {
	Source    string
	Email     string
	ProductID string
	Status    Status
	Raw       string // evento / order_status original
}

type kiwifyPayload struct {
	Product struct {
		ID json.RawMessage `json:"id"`
	} `json:"Product"`
	Customer struct {
		Email string `json:"email"`
	} `json:"Customer"`
	OrderStatus string `json:"order_status"`
}

type hotmartPayload struct {
	Event string `json:"event"`
	Data  struct {
		Product struct {
			ID json.RawMessage `json:"id"`
		} `json:"product"`
		Buyer struct {
			Email string `json:"email"`
		} `json:"buyer"`
	} `json:"data"`
}

// ParsePurchase reconoce payloads de Kiwify (Product) y Hotmart (event).
func ParsePurchase(body []byte) (PurchaseEvent, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return PurchaseEvent{}, errs.Invalid("", "invalid json")
	}

	var ev PurchaseEvent
	switch {
	case probe["Product"] != nil:
		var p kiwifyPayload
		if err := json.Unmarshal(body, &p); err != nil {
			return PurchaseEvent{}, errs.Invalid("", "invalid kiwify payload")
		}
		ev = PurchaseEvent{
			Source:    "kiwify",
			Email:     p.Customer.Email,
			ProductID: idString(p.Product.ID),
			Status:    kiwifyStatus(p.OrderStatus),
			Raw:       p.OrderStatus,
		}
	case probe["event"] != nil:
		var p hotmartPayload
		if err := json.Unmarshal(body, &p); err != nil {
			return PurchaseEvent{}, errs.Invalid("", "invalid hotmart payload")
		}
		ev = PurchaseEvent{
			Source:    "hotmart",
			Email:     p.Data.Buyer.Email,
			ProductID: idString(p.Data.Product.ID),
			Status:    hotmartStatus(p.Event),
			Raw:       p.Event,
		}
	default:
		return PurchaseEvent{}, errs.Invalid("", "unrecognized webhook format")
	}

	ev.Email = normalizeEmail(ev.Email)
	if ev.Email == "" {
		return PurchaseEvent{}, errs.Invalid("email", "email not found in payload")
	}
	return ev, nil
}

func kiwifyStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paid", "approved":
		return StatusActive
	case "refunded", "chargedback", "canceled":
		return StatusCanceled
	}
	return StatusInactive
}

func hotmartStatus(e string) Status {
	switch strings.ToUpper(strings.TrimSpace(e)) {
	case "PURCHASE_APPROVED", "PURCHASE_COMPLETE":
		return StatusActive
	case "PURCHASE_CANCELED", "PURCHASE_REFUNDED", "PURCHASE_CHARGEBACK":
		return StatusCanceled
	}
	return StatusInactive
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// idString acepta ids como string o número.
func idString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	t := strings.TrimSpace(string(raw))
	if t == "null" {
		return ""
	}
	return t
}
