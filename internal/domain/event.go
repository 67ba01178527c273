package domain

import "time"

// EventType enumerates the closed set of clickstream event kinds.
type EventType string

const (
	EventTypePageView  EventType = "page_view"
	EventTypeAddToCart EventType = "add_to_cart"
	EventTypePurchase  EventType = "purchase"
)

// IsCommerce reports whether the event type carries commerce attributes
// and is restricted to commerce pages.
func (t EventType) IsCommerce() bool {
	return t == EventTypeAddToCart || t == EventTypePurchase
}

// Device identifies the client platform an event originated from.
type Device struct {
	OS      string `json:"os"`
	Browser string `json:"browser"`
}

// Geo locates an event's origin.
type Geo struct {
	Country string `json:"country"`
	City    string `json:"city"`
}

// Attributes is the event-type-dependent payload attached to an event.
// Concrete variants embed each other, so the purchase field set is a strict
// superset of the add-to-cart field set and every variant marshals as one
// flat JSON object.
type Attributes interface {
	isAttributes()
}

// BrowseAttributes is the payload every event carries.
type BrowseAttributes struct {
	ABTestVariant string `json:"ab_test_variant"`
	UTMCampaign   string `json:"utm_campaign"`
}

// CommerceAttributes extends BrowseAttributes for add_to_cart events.
type CommerceAttributes struct {
	BrowseAttributes
	ProductID string  `json:"product_id"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
	Quantity  int     `json:"quantity"`
}

// PurchaseAttributes extends CommerceAttributes for purchase events.
type PurchaseAttributes struct {
	CommerceAttributes
	OrderID       string `json:"order_id"`
	PaymentMethod string `json:"payment_method"`
}

func (BrowseAttributes) isAttributes()   {}
func (CommerceAttributes) isAttributes() {}
func (PurchaseAttributes) isAttributes() {}

// ClickstreamEvent is a single synthesized user-interaction record.
type ClickstreamEvent struct {
	EventID    string     `json:"event_id"`
	EventTS    string     `json:"event_ts"`
	UserID     string     `json:"user_id"`
	SessionID  string     `json:"session_id"`
	EventType  EventType  `json:"event_type"`
	Page       string     `json:"page"`
	Referrer   string     `json:"referrer"`
	Device     Device     `json:"device"`
	Geo        Geo        `json:"geo"`
	Attributes Attributes `json:"attributes"`
}

// timestampLayout renders ISO-8601 with millisecond precision. The zone
// designator is a literal Z, so times must be converted to UTC first.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t as an ISO-8601 UTC timestamp with millisecond
// precision, the wire format of the event_ts field.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// ParseTimestamp parses an event_ts value back into a UTC time.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(timestampLayout, s)
}
