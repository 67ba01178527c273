package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPurchaseAttributes() PurchaseAttributes {
	return PurchaseAttributes{
		CommerceAttributes: CommerceAttributes{
			BrowseAttributes: BrowseAttributes{
				ABTestVariant: "A",
				UTMCampaign:   "brand",
			},
			ProductID: "sku_1234",
			Price:     19.99,
			Currency:  "EUR",
			Quantity:  2,
		},
		OrderID:       "ord_abcdef123456",
		PaymentMethod: "card",
	}
}

func TestEventType_IsCommerce(t *testing.T) {
	assert.False(t, EventTypePageView.IsCommerce())
	assert.True(t, EventTypeAddToCart.IsCommerce())
	assert.True(t, EventTypePurchase.IsCommerce())
}

func TestClickstreamEvent_MarshalJSON_PurchaseAttributesFlat(t *testing.T) {
	event := &ClickstreamEvent{
		EventID:    "11111111-2222-3333-4444-555555555555",
		EventTS:    "2024-03-07T11:30:45.123Z",
		UserID:     "usr_0123456789abcdef",
		SessionID:  "sess_0123456789abcdef",
		EventType:  EventTypePurchase,
		Page:       "/checkout",
		Referrer:   "google",
		Device:     Device{OS: "iOS", Browser: "Safari"},
		Geo:        Geo{Country: "DE", City: "Berlin"},
		Attributes: testPurchaseAttributes(),
	}

	raw, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	attrs, ok := decoded["attributes"].(map[string]interface{})
	require.True(t, ok, "attributes should be a flat JSON object")

	expectedKeys := []string{
		"ab_test_variant", "utm_campaign",
		"product_id", "price", "currency", "quantity",
		"order_id", "payment_method",
	}
	for _, key := range expectedKeys {
		assert.Contains(t, attrs, key)
	}
	assert.Len(t, attrs, len(expectedKeys))
}

func TestClickstreamEvent_MarshalJSON_BrowseAttributesOnly(t *testing.T) {
	event := &ClickstreamEvent{
		EventID:   "11111111-2222-3333-4444-555555555555",
		EventType: EventTypePageView,
		Page:      "/search",
		Attributes: BrowseAttributes{
			ABTestVariant: "B",
			UTMCampaign:   "none",
		},
	}

	raw, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	attrs, ok := decoded["attributes"].(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, attrs, 2)
	assert.Equal(t, "B", attrs["ab_test_variant"])
	assert.Equal(t, "none", attrs["utm_campaign"])
}

func TestFormatTimestamp_ConvertsToUTC(t *testing.T) {
	cet := time.FixedZone("CET", 3600)
	ts := time.Date(2024, 3, 7, 12, 30, 45, 123_000_000, cet)

	assert.Equal(t, "2024-03-07T11:30:45.123Z", FormatTimestamp(ts))
}

func TestParseTimestamp_RoundTrip(t *testing.T) {
	original := time.Date(2024, 3, 7, 11, 30, 45, 123_000_000, time.UTC)

	parsed, err := ParseTimestamp(FormatTimestamp(original))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(original))
}
