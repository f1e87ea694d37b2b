package inventory

import (
	"strings"
	"testing"
	"time"

	"github.com/samarthbanodia/yatrafy/internal/model"
)

var anchor = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestKnownDestinations_Order(t *testing.T) {
	c := New(anchor)
	got := c.KnownDestinations()
	if len(got) == 0 {
		t.Fatal("KnownDestinations() is empty")
	}
	if got[0] != "Goa" {
		t.Errorf("KnownDestinations()[0] = %q, want Goa", got[0])
	}
}

func TestNew_FlightsAnchoredToNow(t *testing.T) {
	c := New(anchor)
	if len(c.Flights()) == 0 {
		t.Fatal("Flights() is empty")
	}
	for _, f := range c.Flights() {
		if !f.DepartTime.After(anchor) {
			t.Errorf("flight %s departs %v, want after anchor %v", f.ID, f.DepartTime, anchor)
		}
		if !f.ArriveTime.After(f.DepartTime) {
			t.Errorf("flight %s arrives %v before departing %v", f.ID, f.ArriveTime, f.DepartTime)
		}
	}
}

// A "next month" trip can start up to ~45 days after process start, so
// every destination needs at least three departures beyond that horizon.
func TestNew_LateDeparturesPerDestination(t *testing.T) {
	c := New(anchor)
	horizon := anchor.AddDate(0, 0, 46)
	for _, dest := range c.KnownDestinations() {
		late := 0
		for _, f := range c.Flights() {
			if f.To == dest && !f.DepartTime.Before(horizon) {
				late++
			}
		}
		if late < 3 {
			t.Errorf("%s: %d departures beyond the next-month horizon, want >= 3", dest, late)
		}
	}
}

func TestHotelCatalog_CoversDestinations(t *testing.T) {
	c := New(anchor)
	for _, dest := range c.KnownDestinations() {
		found := false
		for _, h := range c.Hotels() {
			if strings.Contains(strings.ToLower(h.Location), strings.ToLower(dest)) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no hotel located in %s", dest)
		}
	}
}

func TestHotelCatalog_GoaSpansAllBands(t *testing.T) {
	c := New(anchor)
	bands := map[model.BudgetBand]int{}
	for _, h := range c.Hotels() {
		if !strings.Contains(h.Location, "Goa") {
			continue
		}
		for _, b := range []model.BudgetBand{model.BandBudget, model.BandMidRange, model.BandPremium} {
			if b.MatchesNightlyRate(h.PricePerNight) {
				bands[b]++
			}
		}
	}
	for _, b := range []model.BudgetBand{model.BandBudget, model.BandMidRange, model.BandPremium} {
		if bands[b] == 0 {
			t.Errorf("Goa has no %s hotels", b)
		}
	}
}
