// Package inventory holds the static flight and hotel catalog the planner
// searches. The catalog is read-only and fixed for the process lifetime.
//
// Departure times are generated relative to the time passed to New so that
// the demo inventory always has flights on or after any extractable trip
// start date (a fixed mock timestamp would go stale within weeks).
package inventory

import (
	"fmt"
	"time"

	"github.com/samarthbanodia/yatrafy/internal/model"
)

// knownDestinations is the ordered list the intent extractor scans.
// Order matters: the first name found in a message wins.
var knownDestinations = []string{
	"Goa",
	"Kerala",
	"Jaipur",
	"Udaipur",
	"Manali",
	"Rishikesh",
}

// departOffsetsDays spreads each destination's flights across the booking
// horizon. A "next month" trip can start up to ~45 days out, so three
// departures sit beyond that.
var departOffsetsDays = [5]int{16, 30, 48, 55, 62}

// Catalog is the in-process inventory. Constructed once and injected
// wherever flights or hotels are searched.
type Catalog struct {
	flights []model.Flight
	hotels  []model.Hotel
}

// New builds the demo catalog with departures anchored to `now`.
func New(now time.Time) *Catalog {
	c := &Catalog{hotels: hotelCatalog()}

	origins := []string{"Delhi", "Mumbai", "Bengaluru", "Delhi", "Mumbai"}
	airlines := []string{"IndiGo", "Vistara", "Air India", "SpiceJet", "Akasa Air"}
	prices := map[string][5]int{
		"Goa":       {4200, 5100, 3800, 6400, 4700},
		"Kerala":    {5600, 4900, 6800, 5200, 6100},
		"Jaipur":    {3100, 3600, 4400, 2900, 3900},
		"Udaipur":   {4800, 5500, 5100, 6200, 4500},
		"Manali":    {5200, 6100, 5700, 4900, 5400},
		"Rishikesh": {3400, 4100, 3700, 4600, 3900},
	}

	seq := 0
	for _, dest := range knownDestinations {
		for i, offset := range departOffsetsDays {
			seq++
			depart := now.AddDate(0, 0, offset).Truncate(time.Hour).Add(7 * time.Hour)
			c.flights = append(c.flights, model.Flight{
				ID:         fmt.Sprintf("fl_%03d", seq),
				From:       origins[i],
				To:         dest,
				DepartTime: depart,
				ArriveTime: depart.Add(150 * time.Minute),
				Price:      prices[dest][i],
				Airline:    airlines[i],
			})
		}
	}
	return c
}

// Flights returns the full flight catalog in catalog order.
// Callers must treat the returned slice as read-only.
func (c *Catalog) Flights() []model.Flight { return c.flights }

// Hotels returns the full hotel catalog in catalog order.
// Callers must treat the returned slice as read-only.
func (c *Catalog) Hotels() []model.Hotel { return c.hotels }

// KnownDestinations returns the ordered destination list used for
// extraction. First match in this order wins.
func (c *Catalog) KnownDestinations() []string { return knownDestinations }

func score(v float64) *float64 { return &v }

func hotelCatalog() []model.Hotel {
	return []model.Hotel{
		// ── Goa ─────────────────────────────────────────
		{ID: "ht_001", Name: "Zostel Beach Hostel", Location: "Anjuna, Goa", PricePerNight: 1400, Rating: 4.1, SafetyScore: score(7.5)},
		{ID: "ht_002", Name: "Casa Palmeira", Location: "Calangute, Goa", PricePerNight: 2600, Rating: 3.9, SafetyScore: score(7.0), AccessibilityScore: score(6.0)},
		{ID: "ht_003", Name: "Sea Breeze Resort", Location: "Baga Beach, Goa", PricePerNight: 4200, Rating: 4.3, SafetyScore: score(8.2), AccessibilityScore: score(7.5)},
		{ID: "ht_004", Name: "Palm Grove Retreat", Location: "Candolim, Goa", PricePerNight: 5100, Rating: 4.5, SafetyScore: score(8.8)},
		{ID: "ht_005", Name: "Riverside Villa Inn", Location: "Panjim, Goa", PricePerNight: 5800, Rating: 4.2, AccessibilityScore: score(8.0)},
		{ID: "ht_006", Name: "Taj Aguada Crest", Location: "Sinquerim, Goa", PricePerNight: 9800, Rating: 4.8, SafetyScore: score(9.5), AccessibilityScore: score(9.0)},
		{ID: "ht_007", Name: "The Leela Palms", Location: "Cavelossim, Goa", PricePerNight: 12500, Rating: 4.9, SafetyScore: score(9.6), AccessibilityScore: score(9.2)},

		// ── Kerala ──────────────────────────────────────
		{ID: "ht_008", Name: "Backwater Bamboo Stay", Location: "Alleppey, Kerala", PricePerNight: 1900, Rating: 4.0, SafetyScore: score(7.8)},
		{ID: "ht_009", Name: "Spice Garden Homestay", Location: "Munnar, Kerala", PricePerNight: 2700, Rating: 4.4, SafetyScore: score(8.5)},
		{ID: "ht_010", Name: "Lagoon View Resort", Location: "Kumarakom, Kerala", PricePerNight: 4600, Rating: 4.5, SafetyScore: score(8.6), AccessibilityScore: score(7.8)},
		{ID: "ht_011", Name: "Tea Valley Residency", Location: "Munnar, Kerala", PricePerNight: 5400, Rating: 4.3, AccessibilityScore: score(7.0)},
		{ID: "ht_012", Name: "Kumarakom Lake Royale", Location: "Kumarakom, Kerala", PricePerNight: 11200, Rating: 4.9, SafetyScore: score(9.4), AccessibilityScore: score(9.1)},

		// ── Jaipur ──────────────────────────────────────
		{ID: "ht_013", Name: "Pink City Backpackers", Location: "Bani Park, Jaipur", PricePerNight: 1100, Rating: 3.8, SafetyScore: score(6.8)},
		{ID: "ht_014", Name: "Haveli Heritage Stay", Location: "Old City, Jaipur", PricePerNight: 2400, Rating: 4.2, SafetyScore: score(7.6), AccessibilityScore: score(6.5)},
		{ID: "ht_015", Name: "Amber View Hotel", Location: "Amer Road, Jaipur", PricePerNight: 3800, Rating: 4.1, SafetyScore: score(8.0)},
		{ID: "ht_016", Name: "Rajputana Courtyard", Location: "C-Scheme, Jaipur", PricePerNight: 5600, Rating: 4.4, SafetyScore: score(8.4), AccessibilityScore: score(8.2)},
		{ID: "ht_017", Name: "Rambagh Heritage Palace", Location: "Bhawani Singh Road, Jaipur", PricePerNight: 14800, Rating: 4.9, SafetyScore: score(9.7), AccessibilityScore: score(9.3)},

		// ── Udaipur ─────────────────────────────────────
		{ID: "ht_018", Name: "Lakeside Hostel", Location: "Lal Ghat, Udaipur", PricePerNight: 1600, Rating: 4.0, SafetyScore: score(7.2)},
		{ID: "ht_019", Name: "Pichola Terrace Hotel", Location: "Ambrai Ghat, Udaipur", PricePerNight: 4400, Rating: 4.4, SafetyScore: score(8.3), AccessibilityScore: score(7.4)},
		{ID: "ht_020", Name: "Oberoi Lake Pavilion", Location: "Haridasji Ki Magri, Udaipur", PricePerNight: 16500, Rating: 5.0, SafetyScore: score(9.8), AccessibilityScore: score(9.4)},

		// ── Manali ──────────────────────────────────────
		{ID: "ht_021", Name: "Old Manali Trekker Lodge", Location: "Old Manali", PricePerNight: 1300, Rating: 4.1, SafetyScore: score(7.4)},
		{ID: "ht_022", Name: "Pinewood Cottage Resort", Location: "Hadimba Road, Manali", PricePerNight: 4100, Rating: 4.3, SafetyScore: score(8.1)},
		{ID: "ht_023", Name: "Solang Sky Chalet", Location: "Solang Valley, Manali", PricePerNight: 7800, Rating: 4.6, SafetyScore: score(9.0), AccessibilityScore: score(8.0)},

		// ── Rishikesh ───────────────────────────────────
		{ID: "ht_024", Name: "Ganga Yoga Ashram Stay", Location: "Tapovan, Rishikesh", PricePerNight: 900, Rating: 4.2, SafetyScore: score(7.9)},
		{ID: "ht_025", Name: "Rapids Edge Camp", Location: "Shivpuri, Rishikesh", PricePerNight: 3400, Rating: 4.0, SafetyScore: score(7.5)},
		{ID: "ht_026", Name: "Himalayan Glass Retreat", Location: "Narendra Nagar, Rishikesh", PricePerNight: 8600, Rating: 4.7, SafetyScore: score(9.2), AccessibilityScore: score(8.6)},
	}
}
