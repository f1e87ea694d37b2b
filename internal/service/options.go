package service

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/samarthbanodia/yatrafy/internal/model"
)

// MaxBundles caps both the flight and hotel shortlists, and therefore
// the number of generated options.
const MaxBundles = 3

// OptionGenerator filters the catalog for a trip and pairs flights with
// hotels into priced bundles.
//
// Pairing is positional: option i = (flight i, hotel i) over the first
// MaxBundles matches of each, in catalog order. The full cross-product
// is deliberately not explored — no optimality is promised, the ranker
// only orders what the generator produced.
type OptionGenerator struct {
	catalog Catalog
	rng     *rand.Rand
}

// NewOptionGenerator creates a generator over the given catalog.
// rng drives rationale template selection; pass a seeded source in tests,
// or nil for a time-seeded one.
func NewOptionGenerator(catalog Catalog, rng *rand.Rand) *OptionGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &OptionGenerator{catalog: catalog, rng: rng}
}

// Generate returns up to MaxBundles flight+hotel bundles for the trip.
// It never fails; an empty slice means nothing in inventory matched.
//
// Matching rules:
//   - flight: destination equals trip.Destination (case-insensitive)
//     and departure is on or after trip.StartDate
//   - hotel: location contains trip.Destination (case-insensitive)
//     and the nightly rate satisfies the trip's budget band
func (g *OptionGenerator) Generate(trip *model.TripRequest) []model.TripOption {
	var flights []model.Flight
	for _, f := range g.catalog.Flights() {
		if !strings.EqualFold(f.To, trip.Destination) || f.DepartTime.Before(trip.StartDate) {
			continue
		}
		flights = append(flights, f)
		if len(flights) == MaxBundles {
			break
		}
	}

	destLower := strings.ToLower(trip.Destination)
	var hotels []model.Hotel
	for _, h := range g.catalog.Hotels() {
		if !strings.Contains(strings.ToLower(h.Location), destLower) {
			continue
		}
		if !trip.BudgetBand.MatchesNightlyRate(h.PricePerNight) {
			continue
		}
		hotels = append(hotels, h)
		if len(hotels) == MaxBundles {
			break
		}
	}

	n := len(flights)
	if len(hotels) < n {
		n = len(hotels)
	}

	nights := trip.Nights()
	options := make([]model.TripOption, 0, n)
	for i := 0; i < n; i++ {
		flight, hotel := flights[i], hotels[i]
		opt := model.TripOption{
			ID:     fmt.Sprintf("opt_%d", i+1),
			Flight: flight,
			Hotel:  hotel,
			// Flight price is doubled to model the round trip.
			TotalPrice: flight.Price*2 + hotel.PricePerNight*nights,
		}
		candidates := rationaleCandidates(flight, hotel, trip)
		opt.Rationale = candidates[g.rng.Intn(len(candidates))]
		options = append(options, opt)
	}

	log.Printf("[options] %s: %d flights × %d hotels matched → %d bundles (%d nights)",
		trip.Destination, len(flights), len(hotels), len(options), nights)

	return options
}

// rationaleCandidates is the fixed template set a bundle's rationale is
// drawn from. Tests assert membership, never exact text.
func rationaleCandidates(flight model.Flight, hotel model.Hotel, trip *model.TripRequest) []string {
	return []string{
		fmt.Sprintf("Perfect for %s! This %s option offers great value with a %.1f-star rated hotel.",
			trip.Purpose, trip.BudgetBand, hotel.Rating),
		fmt.Sprintf("Excellent choice for travelers seeking %s comfort. %s has high safety scores.",
			trip.BudgetBand, hotel.Name),
		fmt.Sprintf("Best balance of price and quality. %s offers reliable service and %s is well-reviewed.",
			flight.Airline, hotel.Name),
		fmt.Sprintf("Ideal %s package. Great location at %s with comfortable amenities.",
			trip.BudgetBand, hotel.Location),
	}
}
