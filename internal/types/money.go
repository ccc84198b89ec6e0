// README: Money value object used for flight fares.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Decimal keeps a price exactly as the upstream sent it. Upstreams disagree on
// whether fares are JSON numbers or strings, so both are accepted.
type Decimal string

func (d *Decimal) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*d = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = Decimal(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("decimal: %w", err)
	}
	*d = Decimal(n.String())
	return nil
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(d))
}

func (d Decimal) String() string { return string(d) }

// DefaultCurrency is assumed when an upstream omits the currency.
const DefaultCurrency = "USD"

type Money struct {
	Amount   Decimal `json:"totalFare"`
	Currency string  `json:"currency"`
}

// String renders "EUR 213.40" with the amount exactly as sent. A missing
// currency reads as DefaultCurrency and a missing amount as "N/A".
func (m Money) String() string {
	currency := strings.TrimSpace(m.Currency)
	if currency == "" {
		currency = DefaultCurrency
	}
	amount := m.Amount.String()
	if amount == "" {
		amount = "N/A"
	}
	return currency + " " + amount
}
