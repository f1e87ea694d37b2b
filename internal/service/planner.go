package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/samarthbanodia/yatrafy/internal/model"
)

// DefaultTopOptions is how many ranked bundles are surfaced to the user.
const DefaultTopOptions = 3

// PlannerService runs the full planning pipeline:
//
//	message → extract → generate → rank → top-N → options_shown
//
// and owns the surrounding bookkeeping: session registration, chat
// transcript, trip persistence, and analytics events.
type PlannerService struct {
	extractor *IntentExtractor
	generator *OptionGenerator
	ranker    OptionRanker

	trips    TripStore
	events   EventLog
	sessions SessionStore

	topN int
	now  func() time.Time
}

// NewPlannerService wires the pipeline. topN ≤ 0 falls back to
// DefaultTopOptions.
func NewPlannerService(
	extractor *IntentExtractor,
	generator *OptionGenerator,
	trips TripStore,
	events EventLog,
	sessions SessionStore,
	topN int,
) *PlannerService {
	if topN <= 0 {
		topN = DefaultTopOptions
	}
	return &PlannerService{
		extractor: extractor,
		generator: generator,
		trips:     trips,
		events:    events,
		sessions:  sessions,
		topN:      topN,
		now:       time.Now,
	}
}

// PlanResult is what the transport layer gets back from PlanTrip.
// A nil Trip signals extraction failure; Reply then carries the
// clarification message the caller should show.
type PlanResult struct {
	Trip    *model.TripRequest `json:"trip"`
	Options []model.TripOption `json:"options"`
	Reply   string             `json:"reply"`
}

// PlanTrip handles one user message end to end.
//
// Extraction failure is not an error: the result carries a nil trip and
// a guided clarification. Errors are reserved for storage failures.
func (s *PlannerService) PlanTrip(ctx context.Context, message, userID string) (*PlanResult, error) {
	if err := s.trackSession(ctx, userID); err != nil {
		return nil, err
	}
	s.appendMessage(ctx, userID, model.ChatMessage{
		ID:        "msg_" + uuid.NewString(),
		Role:      model.RoleUser,
		Content:   message,
		Timestamp: s.now(),
	})

	trip, err := s.extractor.Extract(message, userID)
	if errors.Is(err, ErrNoDestination) {
		reply := s.clarificationReply()
		log.Printf("[plan] user=%s: no destination recognized", userID)
		s.appendAssistantReply(ctx, userID, reply, nil)
		return &PlanResult{Reply: reply}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("plan: extract: %w", err)
	}

	ranked := s.ranker.Rank(s.generator.Generate(trip), trip)
	top := ranked
	if len(top) > s.topN {
		top = top[:s.topN]
	}

	// Even an empty candidate list advances the trip; only the reply
	// distinguishes "found options" from "found nothing".
	trip.CandidateOptions = top
	trip.Status = model.StatusOptionsShown

	if err := s.trips.Put(ctx, trip); err != nil {
		return nil, fmt.Errorf("plan: save trip: %w", err)
	}
	s.events.Append(ctx, model.EventTripCreated, trip.ID)
	s.events.Append(ctx, model.EventOptionsViewed, trip.ID)

	reply := s.planReply(trip, len(top))
	s.appendAssistantReply(ctx, userID, reply, top)

	log.Printf("[plan] ✓ trip %s: %s, %s band, %d option(s) shown",
		trip.ID, trip.Destination, trip.BudgetBand, len(top))

	return &PlanResult{Trip: trip, Options: top, Reply: reply}, nil
}

// History returns the stored chat transcript for a user.
func (s *PlannerService) History(ctx context.Context, userID string) ([]model.ChatMessage, error) {
	return s.sessions.History(ctx, userID)
}

// trackSession registers the user and logs session_started exactly once
// per user.
func (s *PlannerService) trackSession(ctx context.Context, userID string) error {
	isNew, err := s.sessions.RegisterSession(ctx, userID)
	if err != nil {
		return fmt.Errorf("plan: register session: %w", err)
	}
	if isNew {
		s.events.Append(ctx, model.EventSessionStarted, "")
		log.Printf("[plan] new session for user=%s", userID)
	}
	return nil
}

func (s *PlannerService) planReply(trip *model.TripRequest, shown int) string {
	if shown == 0 {
		return fmt.Sprintf(
			"I couldn't find flight and hotel availability for %s in the %s band right now. Try a different budget or different dates.",
			trip.Destination, trip.BudgetBand)
	}
	return fmt.Sprintf(
		"Perfect! I've found great options for your %d-night trip to %s with a %s budget. Here are my top %d recommendations:",
		trip.Nights(), trip.Destination, trip.BudgetBand, shown)
}

func (s *PlannerService) clarificationReply() string {
	examples := s.extractor.destinations
	if len(examples) > 3 {
		examples = examples[:3]
	}
	return fmt.Sprintf(
		"I couldn't understand your trip request. Please mention a destination like %s, and provide details like dates and budget.",
		strings.Join(examples, ", "))
}

func (s *PlannerService) appendAssistantReply(ctx context.Context, userID, content string, options []model.TripOption) {
	s.appendMessage(ctx, userID, model.ChatMessage{
		ID:          "msg_" + uuid.NewString(),
		Role:        model.RoleAssistant,
		Content:     content,
		TripOptions: options,
		Timestamp:   s.now(),
	})
}

// appendMessage stores a chat turn. Transcript writes are best-effort:
// a failed append must not fail the planning call itself.
func (s *PlannerService) appendMessage(ctx context.Context, userID string, msg model.ChatMessage) {
	if err := s.sessions.AppendMessage(ctx, userID, msg); err != nil {
		log.Printf("[plan] WARNING: append chat message failed: %v", err)
	}
}
