package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/campusevents/internal/common"
	"github.com/dmitrijs2005/campusevents/internal/models"
	"github.com/dmitrijs2005/campusevents/internal/repositories/records"
)

func newEvents(t *testing.T, db *sql.DB) EventService {
	t.Helper()
	s := NewEventService(db, testLogger())
	require.NoError(t, s.Load(context.Background()))
	return s
}

func eventParams(category models.Category, name string) CreateEventParams {
	return CreateEventParams{
		Category:         category,
		EventName:        name,
		CollegeName:      "MIT",
		RegistrationDate: "2025-05-01",
		Venue:            "Hall A",
		RegistrationURL:  "https://x.edu/reg",
		CreatedBy:        "admin-1",
	}
}

// ---- Create ----

func TestCreate_StampsIDAndCreatedAt(t *testing.T) {
	db, _ := setupDB(t)
	s := newEvents(t, db)

	fixed := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	orig := timeNow
	t.Cleanup(func() { timeNow = orig })
	timeNow = func() time.Time { return fixed }

	e, err := s.Create(context.Background(), eventParams(models.CategoryTechnical, "Hack Day"))
	require.NoError(t, err)
	require.NotEmpty(t, e.ID)
	assert.Equal(t, fixed, e.CreatedAt)
	assert.Equal(t, "admin-1", e.CreatedBy)
}

func TestCreate_DuplicateNamesPermitted(t *testing.T) {
	db, _ := setupDB(t)
	s := newEvents(t, db)
	ctx := context.Background()

	e1, err := s.Create(ctx, eventParams(models.CategoryTechnical, "Hack Day"))
	require.NoError(t, err)
	e2, err := s.Create(ctx, eventParams(models.CategoryTechnical, "Hack Day"))
	require.NoError(t, err)

	assert.NotEqual(t, e1.ID, e2.ID)
	assert.Len(t, s.ListByCategory(models.CategoryAll), 2)
}

func TestCreate_Validation(t *testing.T) {
	db, _ := setupDB(t)
	s := newEvents(t, db)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*CreateEventParams)
	}{
		{"unknown category", func(p *CreateEventParams) { p.Category = "Music" }},
		{"sentinel category", func(p *CreateEventParams) { p.Category = models.CategoryAll }},
		{"missing event name", func(p *CreateEventParams) { p.EventName = "" }},
		{"missing college", func(p *CreateEventParams) { p.CollegeName = "" }},
		{"missing date", func(p *CreateEventParams) { p.RegistrationDate = "" }},
		{"missing venue", func(p *CreateEventParams) { p.Venue = "" }},
		{"missing registration link", func(p *CreateEventParams) { p.RegistrationURL = "" }},
		{"missing creator", func(p *CreateEventParams) { p.CreatedBy = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := eventParams(models.CategoryTechnical, "Hack Day")
			tt.mutate(&p)
			_, err := s.Create(ctx, p)
			require.ErrorIs(t, err, common.ErrorValidation)
		})
	}

	assert.Empty(t, s.ListByCategory(models.CategoryAll), "failed creates must not mutate the collection")
}

func TestCreate_FlyerURLOptional(t *testing.T) {
	db, _ := setupDB(t)
	s := newEvents(t, db)

	p := eventParams(models.CategoryCultural, "Spring Fest")
	p.FlyerURL = "https://x.edu/flyer.png"
	e, err := s.Create(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "https://x.edu/flyer.png", e.FlyerURL)

	e2, err := s.Create(context.Background(), eventParams(models.CategoryCultural, "No Flyer"))
	require.NoError(t, err)
	assert.Empty(t, e2.FlyerURL)
}

// ---- ListByCategory ----

func TestListByCategory_AllReturnsInsertionOrder(t *testing.T) {
	db, _ := setupDB(t)
	s := newEvents(t, db)
	ctx := context.Background()

	names := []string{"One", "Two", "Three", "Four"}
	cats := []models.Category{
		models.CategoryTechnical,
		models.CategorySports,
		models.CategoryTechnical,
		models.CategoryCultural,
	}
	for i, name := range names {
		_, err := s.Create(ctx, eventParams(cats[i], name))
		require.NoError(t, err)
	}

	all := s.ListByCategory(models.CategoryAll)
	require.Len(t, all, len(names))
	for i, e := range all {
		assert.Equal(t, names[i], e.EventName)
	}
}

func TestListByCategory_FiltersExactlyAndPreservesOrder(t *testing.T) {
	db, _ := setupDB(t)
	s := newEvents(t, db)
	ctx := context.Background()

	_, err := s.Create(ctx, eventParams(models.CategoryTechnical, "Hack Day"))
	require.NoError(t, err)
	_, err = s.Create(ctx, eventParams(models.CategorySports, "Marathon"))
	require.NoError(t, err)
	_, err = s.Create(ctx, eventParams(models.CategoryTechnical, "Robo Wars"))
	require.NoError(t, err)

	tech := s.ListByCategory(models.CategoryTechnical)
	require.Len(t, tech, 2)
	assert.Equal(t, "Hack Day", tech[0].EventName)
	assert.Equal(t, "Robo Wars", tech[1].EventName)

	assert.Empty(t, s.ListByCategory(models.CategoryNonTechnical))
}

func TestListByCategory_EmptyStore(t *testing.T) {
	db, _ := setupDB(t)
	s := newEvents(t, db)

	assert.Empty(t, s.ListByCategory(models.CategoryAll))
	assert.Empty(t, s.ListByCategory(models.CategorySports))
}

// ---- Search ----

func TestSearch_MatchesNameCollegeAndVenue(t *testing.T) {
	db, _ := setupDB(t)
	s := newEvents(t, db)
	ctx := context.Background()

	p1 := eventParams(models.CategoryTechnical, "Hack Day")
	p1.CollegeName = "MIT"
	p1.Venue = "Hall A"
	_, err := s.Create(ctx, p1)
	require.NoError(t, err)

	p2 := eventParams(models.CategoryCultural, "Spring Fest")
	p2.CollegeName = "Stanford"
	p2.Venue = "Main Quad"
	_, err = s.Create(ctx, p2)
	require.NoError(t, err)

	tests := []struct {
		query string
		want  []string
	}{
		{"hack", []string{"Hack Day"}},        // event name, case-insensitive
		{"stanford", []string{"Spring Fest"}}, // college name
		{"quad", []string{"Spring Fest"}},     // venue
		{"a", []string{"Hack Day", "Spring Fest"}},
		{"zzz", nil},
		{"", []string{"Hack Day", "Spring Fest"}},
	}

	for _, tt := range tests {
		got := s.Search(models.CategoryAll, tt.query)
		names := make([]string, 0, len(got))
		for _, e := range got {
			names = append(names, e.EventName)
		}
		if tt.want == nil {
			assert.Empty(t, names, "query %q", tt.query)
		} else {
			assert.Equal(t, tt.want, names, "query %q", tt.query)
		}
	}
}

func TestSearch_AppliesCategoryFilterFirst(t *testing.T) {
	db, _ := setupDB(t)
	s := newEvents(t, db)
	ctx := context.Background()

	_, err := s.Create(ctx, eventParams(models.CategoryTechnical, "Campus Hack"))
	require.NoError(t, err)
	_, err = s.Create(ctx, eventParams(models.CategorySports, "Campus Run"))
	require.NoError(t, err)

	got := s.Search(models.CategorySports, "campus")
	require.Len(t, got, 1)
	assert.Equal(t, "Campus Run", got[0].EventName)
}

// ---- CountByCategory ----

func TestCountByCategory(t *testing.T) {
	db, _ := setupDB(t)
	s := newEvents(t, db)
	ctx := context.Background()

	for _, c := range []models.Category{
		models.CategoryTechnical,
		models.CategoryTechnical,
		models.CategorySports,
	} {
		_, err := s.Create(ctx, eventParams(c, "E"))
		require.NoError(t, err)
	}

	counts := s.CountByCategory()
	assert.Equal(t, 2, counts[models.CategoryTechnical])
	assert.Equal(t, 1, counts[models.CategorySports])
	assert.Equal(t, 0, counts[models.CategoryCultural])
	assert.Equal(t, 0, counts[models.CategoryNonTechnical])
	assert.Equal(t, 3, counts[models.CategoryAll])
}

// ---- Load / restart ----

func TestLoad_RestartReproducesCollection(t *testing.T) {
	db, _ := setupDB(t)
	s := newEvents(t, db)
	ctx := context.Background()

	created := make([]models.Event, 0, 3)
	for _, name := range []string{"One", "Two", "Three"} {
		e, err := s.Create(ctx, eventParams(models.CategoryTechnical, name))
		require.NoError(t, err)
		created = append(created, *e)
	}

	restarted := newEvents(t, db)
	got := restarted.ListByCategory(models.CategoryAll)
	require.Len(t, got, len(created))
	for i := range created {
		assert.Equal(t, created[i].ID, got[i].ID)
		assert.Equal(t, created[i].EventName, got[i].EventName)
		assert.True(t, created[i].CreatedAt.Equal(got[i].CreatedAt))
	}
}

func TestLoad_CorruptedEventsRecordLoadsEmpty(t *testing.T) {
	db, _ := setupDB(t)
	ctx := context.Background()

	require.NoError(t, records.NewSQLiteRepository(db).Set(ctx, "events", []byte("[broken")))

	s := newEvents(t, db)
	assert.Empty(t, s.ListByCategory(models.CategoryAll))

	_, err := s.Create(ctx, eventParams(models.CategorySports, "Marathon"))
	require.NoError(t, err)
}

// ---- FindByID ----

func TestEventFindByID(t *testing.T) {
	db, _ := setupDB(t)
	s := newEvents(t, db)

	e, err := s.Create(context.Background(), eventParams(models.CategorySports, "Marathon"))
	require.NoError(t, err)

	got, err := s.FindByID(e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.EventName, got.EventName)

	_, err = s.FindByID("missing")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
