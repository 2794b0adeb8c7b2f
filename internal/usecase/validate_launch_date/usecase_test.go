package validate_launch_date

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DealSchedulerService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-DealSchedulerService/internal/infra/storage/schedule"
	catalogClient "github.com/m04kA/SMC-DealSchedulerService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-DealSchedulerService/internal/scheduler"
	"github.com/m04kA/SMC-DealSchedulerService/pkg/civilday"
	"github.com/m04kA/SMC-DealSchedulerService/pkg/ptr"
)

type fakeReservationRepo struct {
	reservations []*domain.Reservation
}

func (f *fakeReservationRepo) GetActiveInWindow(_ context.Context, _, _ time.Time) ([]*domain.Reservation, error) {
	return f.reservations, nil
}

func (f *fakeReservationRepo) GetByEntity(_ context.Context, _ domain.EntityReservationsFilter) ([]*domain.Reservation, error) {
	return nil, nil
}

type fakeScheduleRepo struct{}

func (fakeScheduleRepo) GetPolicy(_ context.Context) (*domain.SchedulePolicy, error) {
	return nil, scheduleRepo.ErrPolicyNotFound
}

func (fakeScheduleRepo) ListExceptions(_ context.Context) ([]domain.EntityException, error) {
	return nil, nil
}

type fakeCatalogClient struct{}

func (fakeCatalogClient) GetDefaultDurationWithGracefulDegradation(_ context.Context, _ string) (int, error) {
	return 0, catalogClient.ErrCategoryNotFound
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var testCal = civilday.NewCalendar(-7)

func newTestUseCase(repo *fakeReservationRepo) *UseCase {
	return NewUseCase(repo, fakeScheduleRepo{}, fakeCatalogClient{}, testCal, noopLogger{})
}

func occupying(id int64, categoryKey, entity string, start, end civilday.Day) *domain.Reservation {
	r := &domain.Reservation{
		ID:          id,
		CategoryKey: categoryKey,
		StartDate:   testCal.StartOf(start),
		EndDate:     testCal.StartOf(end),
		Status:      domain.StatusScheduled,
	}
	if entity != "" {
		r.EntityName = ptr.Ptr(entity)
	}
	return r
}

func TestExecute_ValidDate(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{})

	start := civilday.Day{Year: 2026, Month: time.March, Day: 20}

	resp, err := uc.Execute(context.Background(), &Request{
		CategorySegments: []string{"Food", "Restaurants", "Sushi"},
		StartDate:        start,
	})

	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Empty(t, resp.Violations)
	assert.Equal(t, "2026-03-20", resp.StartDate.String())
	assert.Equal(t, "2026-03-26", resp.EndDate.String())
	assert.Equal(t, domain.DefaultDurationDays, resp.DurationDays)
}

func TestExecute_ReportsAllViolations(t *testing.T) {
	day := civilday.Day{Year: 2026, Month: time.March, Day: 20}

	repo := &fakeReservationRepo{
		reservations: []*domain.Reservation{
			occupying(1, "Food:Restaurants:Sushi", "", day, day.AddDays(3)),
			occupying(2, "Food:Coffee", "SushiGo", day.AddDays(-10), day.AddDays(-5)),
		},
	}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		CategorySegments: []string{"Food", "Restaurants", "Sushi"},
		EntityName:       ptr.Ptr("SushiGo"),
		StartDate:        day,
	})

	require.NoError(t, err)
	assert.False(t, resp.Valid)
	require.Len(t, resp.Violations, 2)
	assert.Equal(t, string(scheduler.RuleCategoryExclusivity), resp.Violations[0].Rule)
	assert.Equal(t, string(scheduler.RuleEntityCooldown), resp.Violations[1].Rule)

	require.NotNil(t, resp.Violations[0].ConflictID)
	assert.Equal(t, int64(1), *resp.Violations[0].ConflictID)
}

func TestExecute_ParsedDayIsCheckedAsIs(t *testing.T) {
	day, err := civilday.Parse("2026-03-20")
	require.NoError(t, err)

	// Конфликт лежит ровно на запрошенном дне: сдвиг даты хотя бы на
	// сутки при конверсии спрятал бы его от проверки
	repo := &fakeReservationRepo{
		reservations: []*domain.Reservation{
			occupying(1, "Food:Restaurants:Sushi", "", day, day),
		},
	}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		CategorySegments: []string{"Food", "Restaurants", "Sushi"},
		StartDate:        day,
	})

	require.NoError(t, err)
	assert.Equal(t, "2026-03-20", resp.StartDate.String())
	assert.False(t, resp.Valid)
	require.Len(t, resp.Violations, 1)
	assert.Equal(t, string(scheduler.RuleCategoryExclusivity), resp.Violations[0].Rule)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{})

	someDay := civilday.Day{Year: 2026, Month: time.March, Day: 20}

	t.Run("missing category", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{StartDate: someDay})
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("missing start date", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			CategorySegments: []string{"Food"},
		})
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("invalid category path", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			CategorySegments: []string{"Food", "", "Sushi"},
			StartDate:        someDay,
		})
		assert.True(t, errors.Is(err, ErrInvalidCategory))
	})
}
