package synth

import (
	"encoding/hex"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/data-sculptor/aws-lakehouse-clickstream/internal/domain"
)

var (
	pages         = []string{"/", "/search", "/product", "/cart", "/checkout", "/help", "/pricing"}
	commercePages = []string{"/product", "/cart", "/checkout"}
	referrers     = []string{"direct", "google", "newsletter", "twitter", "linkedin", "partner_site"}
	browsers      = []string{"Chrome", "Firefox", "Safari", "Edge"}
	oses          = []string{"iOS", "Android", "Windows", "macOS", "Linux"}
	countries     = []string{"DE", "FR", "NL", "GB", "US", "PL", "SE", "ES", "IT"}
	variants      = []string{"A", "B"}
	campaigns     = []string{"brand", "summer_sale", "retargeting", "none"}
	currencies    = []string{"EUR", "USD", "GBP"}
	payments      = []string{"card", "paypal", "klarna"}

	eventTypes = []domain.EventType{
		domain.EventTypePageView,
		domain.EventTypeAddToCart,
		domain.EventTypePurchase,
	}
)

// Synthesizer builds semantically consistent clickstream events. All
// randomness flows through the injected rand source, so a seeded source
// yields reproducible identifiers and attribute draws.
type Synthesizer struct {
	rng   *rand.Rand
	faker *gofakeit.Faker
	now   func() time.Time
}

// New creates a synthesizer drawing from rng and using faker for
// synthetic city names.
func New(rng *rand.Rand, faker *gofakeit.Faker) *Synthesizer {
	return &Synthesizer{
		rng:   rng,
		faker: faker,
		now:   time.Now,
	}
}

// NewUserID mints a readable user identifier, stable for one user's lifetime.
func (s *Synthesizer) NewUserID() string {
	return "usr_" + s.token(16)
}

// NewSessionID mints a session identifier, stable for one session's lifetime.
func (s *Synthesizer) NewSessionID() string {
	return "sess_" + s.token(16)
}

// Event synthesizes one event for the given user and session. A zero
// eventType selects uniformly from the full type set. Commerce events are
// constrained to commerce pages.
func (s *Synthesizer) Event(userID, sessionID string, eventType domain.EventType) *domain.ClickstreamEvent {
	if eventType == "" {
		eventType = pick(s.rng, eventTypes)
	}

	page := pick(s.rng, pages)
	if eventType.IsCommerce() {
		page = pick(s.rng, commercePages)
	}

	return &domain.ClickstreamEvent{
		EventID:   uuid.Must(uuid.NewRandomFromReader(s.rng)).String(),
		EventTS:   domain.FormatTimestamp(s.now()),
		UserID:    userID,
		SessionID: sessionID,
		EventType: eventType,
		Page:      page,
		Referrer:  pick(s.rng, referrers),
		Device: domain.Device{
			OS:      pick(s.rng, oses),
			Browser: pick(s.rng, browsers),
		},
		Geo: domain.Geo{
			Country: pick(s.rng, countries),
			City:    s.faker.City(),
		},
		Attributes: s.attributes(eventType),
	}
}

// attributes builds the variant payload matching eventType.
func (s *Synthesizer) attributes(eventType domain.EventType) domain.Attributes {
	browse := domain.BrowseAttributes{
		ABTestVariant: pick(s.rng, variants),
		UTMCampaign:   pick(s.rng, campaigns),
	}
	if !eventType.IsCommerce() {
		return browse
	}

	commerce := domain.CommerceAttributes{
		BrowseAttributes: browse,
		ProductID:        fmt.Sprintf("sku_%d", 1000+s.rng.Intn(9000)),
		Price:            math.Round((5+s.rng.Float64()*295)*100) / 100,
		Currency:         pick(s.rng, currencies),
		Quantity:         1 + s.rng.Intn(3),
	}
	if eventType != domain.EventTypePurchase {
		return commerce
	}

	return domain.PurchaseAttributes{
		CommerceAttributes: commerce,
		OrderID:            "ord_" + s.token(12),
		PaymentMethod:      pick(s.rng, payments),
	}
}

// token returns the first n hex characters of a fresh UUID drawn from the
// synthesizer's rand source.
func (s *Synthesizer) token(n int) string {
	u := uuid.Must(uuid.NewRandomFromReader(s.rng))
	return hex.EncodeToString(u[:])[:n]
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}
