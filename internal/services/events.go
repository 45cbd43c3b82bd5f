package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/campusevents/internal/common"
	"github.com/dmitrijs2005/campusevents/internal/dbx"
	"github.com/dmitrijs2005/campusevents/internal/logging"
	"github.com/dmitrijs2005/campusevents/internal/models"
	"github.com/dmitrijs2005/campusevents/internal/repositories/records"
)

// timeNow is a seam for stamping CreatedAt in tests.
var timeNow = time.Now

// CreateEventParams carries the fields of a new listing. FlyerURL is the
// only optional field. CreatedBy is the id of the creating admin account.
type CreateEventParams struct {
	Category         models.Category
	EventName        string
	CollegeName      string
	RegistrationDate string
	Venue            string
	RegistrationURL  string
	FlyerURL         string
	CreatedBy        string
}

// EventService manages the event listing collection.
//
// The collection is append-only and kept in insertion order; every
// successful Create rewrites the full events record before returning.
// Reads are computed fresh from the in-memory slice on each call.
type EventService interface {
	Load(ctx context.Context) error
	Create(ctx context.Context, p CreateEventParams) (*models.Event, error)
	ListByCategory(category models.Category) []models.Event
	Search(category models.Category, query string) []models.Event
	CountByCategory() map[models.Category]int
	FindByID(id string) (*models.Event, error)
}

type eventService struct {
	db     *sql.DB
	logger logging.Logger

	mu     sync.RWMutex
	events []models.Event
}

// NewEventService constructs an EventService over the given database.
// Call Load before use.
func NewEventService(db *sql.DB, logger logging.Logger) EventService {
	return &eventService{db: db, logger: logger.With("store", "events")}
}

func (s *eventService) getRecordsRepo(db dbx.DBTX) records.Repository {
	return records.NewSQLiteRepository(db)
}

// Load reads the events record into memory. A missing or corrupted record
// loads as an empty collection; this is logged and never fails startup.
func (s *eventService) Load(ctx context.Context) error {
	data, err := s.getRecordsRepo(s.db).Get(ctx, recordKeyEvents)
	if err != nil {
		return fmt.Errorf("failed to load events record: %w", err)
	}

	var events []models.Event
	if len(data) > 0 {
		if err := json.Unmarshal(data, &events); err != nil {
			s.logger.Warn(ctx, "events record is corrupted, starting with an empty collection", "error", err)
			events = nil
		}
	}

	s.mu.Lock()
	s.events = events
	s.mu.Unlock()

	s.logger.Info(ctx, "events loaded", "count", len(events))
	return nil
}

func (p CreateEventParams) validate() error {
	if _, ok := models.ParseCategory(string(p.Category)); !ok {
		return fmt.Errorf("%w: unknown category %q", common.ErrorValidation, p.Category)
	}
	switch {
	case p.EventName == "":
		return fmt.Errorf("%w: event name is required", common.ErrorValidation)
	case p.CollegeName == "":
		return fmt.Errorf("%w: college name is required", common.ErrorValidation)
	case p.RegistrationDate == "":
		return fmt.Errorf("%w: registration date is required", common.ErrorValidation)
	case p.Venue == "":
		return fmt.Errorf("%w: venue is required", common.ErrorValidation)
	case p.RegistrationURL == "":
		return fmt.Errorf("%w: registration link is required", common.ErrorValidation)
	case p.CreatedBy == "":
		return fmt.Errorf("%w: creator account id is required", common.ErrorValidation)
	}
	return nil
}

// Create appends a new listing and persists the full collection. Given
// valid params it cannot fail short of a storage error; duplicate event
// names are permitted.
func (s *eventService) Create(ctx context.Context, p CreateEventParams) (*models.Event, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	event := models.Event{
		ID:               newID(),
		Category:         p.Category,
		EventName:        p.EventName,
		CollegeName:      p.CollegeName,
		RegistrationDate: p.RegistrationDate,
		Venue:            p.Venue,
		RegistrationURL:  p.RegistrationURL,
		FlyerURL:         p.FlyerURL,
		CreatedAt:        timeNow(),
		CreatedBy:        p.CreatedBy,
	}

	updated := append(append([]models.Event(nil), s.events...), event)

	doc, err := json.Marshal(updated)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize events: %w", err)
	}
	if err := s.getRecordsRepo(s.db).Set(ctx, recordKeyEvents, doc); err != nil {
		return nil, fmt.Errorf("failed to persist events: %w", err)
	}

	s.events = updated

	s.logger.Info(ctx, "event created", "id", event.ID, "category", event.Category)
	result := event
	return &result, nil
}

// ListByCategory returns the listings in insertion order. CategoryAll
// returns every listing; any other value returns the exact-match
// subsequence.
func (s *eventService) ListByCategory(category models.Category) []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Event, 0, len(s.events))
	for _, e := range s.events {
		if category == models.CategoryAll || e.Category == category {
			result = append(result, e)
		}
	}
	return result
}

// Search narrows ListByCategory by a case-insensitive substring match over
// event name, college name, and venue. An empty query matches everything.
func (s *eventService) Search(category models.Category, query string) []models.Event {
	filtered := s.ListByCategory(category)
	if query == "" {
		return filtered
	}

	q := strings.ToLower(query)
	result := make([]models.Event, 0, len(filtered))
	for _, e := range filtered {
		if strings.Contains(strings.ToLower(e.EventName), q) ||
			strings.Contains(strings.ToLower(e.CollegeName), q) ||
			strings.Contains(strings.ToLower(e.Venue), q) {
			result = append(result, e)
		}
	}
	return result
}

// CountByCategory returns per-category listing counts; the total count is
// keyed by CategoryAll.
func (s *eventService) CountByCategory() map[models.Category]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[models.Category]int, len(models.Categories())+1)
	for _, c := range models.Categories() {
		counts[c] = 0
	}
	for _, e := range s.events {
		counts[e.Category]++
	}
	counts[models.CategoryAll] = len(s.events)
	return counts
}

// FindByID returns the listing with the given id, or ErrorNotFound.
func (s *eventService) FindByID(id string) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.events {
		if s.events[i].ID == id {
			e := s.events[i]
			return &e, nil
		}
	}
	return nil, common.ErrorNotFound
}
