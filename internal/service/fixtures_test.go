package service

import (
	"math/rand"
	"time"

	"github.com/samarthbanodia/yatrafy/internal/model"
	"github.com/samarthbanodia/yatrafy/internal/repository"
)

// fixedNow anchors every clock seam in these tests so extracted dates
// and catalog matching are exact.
var fixedNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

func ptr(v float64) *float64 { return &v }

// stubCatalog is a hand-built inventory small enough to reason about
// match counts per budget band and start date.
type stubCatalog struct {
	flights []model.Flight
	hotels  []model.Hotel
}

func (c stubCatalog) Flights() []model.Flight     { return c.flights }
func (c stubCatalog) Hotels() []model.Hotel       { return c.hotels }
func (c stubCatalog) KnownDestinations() []string { return []string{"Goa", "Kerala", "Jaipur"} }

// newStubCatalog returns a catalog where, relative to fixedNow:
//
//   - Goa has one departed flight (filtered out) and four future ones,
//     but only three on or after a "next month" start date
//   - Goa has 2 budget, 3 mid-range, and 1 premium hotel
//   - Kerala has one flight and one mid-range hotel (so premium Kerala
//     trips produce zero options)
func newStubCatalog() stubCatalog {
	day := func(offset int) time.Time { return fixedNow.AddDate(0, 0, offset) }
	return stubCatalog{
		flights: []model.Flight{
			{ID: "fl_old", From: "Delhi", To: "Goa", DepartTime: day(-2), ArriveTime: day(-2).Add(2 * time.Hour), Price: 3000, Airline: "IndiGo"},
			{ID: "fl_g1", From: "Delhi", To: "Goa", DepartTime: day(20), ArriveTime: day(20).Add(2 * time.Hour), Price: 4000, Airline: "IndiGo"},
			{ID: "fl_g2", From: "Mumbai", To: "Goa", DepartTime: day(40), ArriveTime: day(40).Add(2 * time.Hour), Price: 5000, Airline: "Vistara"},
			{ID: "fl_g3", From: "Delhi", To: "Goa", DepartTime: day(45), ArriveTime: day(45).Add(2 * time.Hour), Price: 3500, Airline: "Air India"},
			{ID: "fl_g4", From: "Bengaluru", To: "Goa", DepartTime: day(50), ArriveTime: day(50).Add(2 * time.Hour), Price: 4200, Airline: "SpiceJet"},
			{ID: "fl_k1", From: "Delhi", To: "Kerala", DepartTime: day(20), ArriveTime: day(20).Add(3 * time.Hour), Price: 5600, Airline: "IndiGo"},
		},
		hotels: []model.Hotel{
			{ID: "ht_b1", Name: "Anjuna Hostel", Location: "Anjuna, Goa", PricePerNight: 2000, Rating: 4.0, SafetyScore: ptr(7.5)},
			{ID: "ht_b2", Name: "Calangute Inn", Location: "Calangute, Goa", PricePerNight: 2800, Rating: 3.8},
			{ID: "ht_m1", Name: "Baga Resort", Location: "Baga Beach, Goa", PricePerNight: 3500, Rating: 4.0, SafetyScore: ptr(8.0)},
			{ID: "ht_m2", Name: "Candolim Retreat", Location: "Candolim, Goa", PricePerNight: 5000, Rating: 4.5, SafetyScore: ptr(8.8), AccessibilityScore: ptr(7.5)},
			{ID: "ht_m3", Name: "Panjim Villa", Location: "Panjim, Goa", PricePerNight: 6000, Rating: 4.2, AccessibilityScore: ptr(7.0)},
			{ID: "ht_p1", Name: "Aguada Crest", Location: "Sinquerim, Goa", PricePerNight: 8000, Rating: 4.8, SafetyScore: ptr(9.5)},
			{ID: "ht_k1", Name: "Munnar Homestay", Location: "Munnar, Kerala", PricePerNight: 4000, Rating: 4.4, SafetyScore: ptr(8.5)},
		},
	}
}

// newFixedExtractor returns an extractor over the stub destinations
// with the clock pinned to fixedNow.
func newFixedExtractor() *IntentExtractor {
	e := NewIntentExtractor(newStubCatalog().KnownDestinations())
	e.now = func() time.Time { return fixedNow }
	return e
}

// newTestPlanner wires a full pipeline over the stub catalog and the
// given in-memory store, with seeded randomness and a pinned clock.
func newTestPlanner(mem *repository.MemoryStore) *PlannerService {
	cat := newStubCatalog()
	gen := NewOptionGenerator(cat, rand.New(rand.NewSource(1)))
	p := NewPlannerService(newFixedExtractor(), gen, mem, mem, mem, DefaultTopOptions)
	p.now = func() time.Time { return fixedNow }
	return p
}

// midRangeTrip is an options_shown trip with two candidates, ready to book.
func midRangeTrip() *model.TripRequest {
	start := fixedNow.AddDate(0, 0, 14)
	cat := newStubCatalog()
	return &model.TripRequest{
		ID:             "trip_fixture_1",
		UserID:         "u1",
		Destination:    "Goa",
		StartDate:      start,
		EndDate:        start.AddDate(0, 0, 3),
		BudgetBand:     model.BandMidRange,
		TravelersCount: 2,
		Purpose:        model.PurposeRelaxation,
		Status:         model.StatusOptionsShown,
		CandidateOptions: []model.TripOption{
			{ID: "opt_1", Flight: cat.flights[1], Hotel: cat.hotels[2], TotalPrice: 4000*2 + 3500*3, Rationale: "r1"},
			{ID: "opt_2", Flight: cat.flights[2], Hotel: cat.hotels[3], TotalPrice: 5000*2 + 5000*3, Rationale: "r2"},
		},
	}
}
