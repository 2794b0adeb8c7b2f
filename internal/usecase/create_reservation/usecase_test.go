package create_reservation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DealSchedulerService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-DealSchedulerService/internal/infra/storage/schedule"
	catalogClient "github.com/m04kA/SMC-DealSchedulerService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-DealSchedulerService/pkg/civilday"
	"github.com/m04kA/SMC-DealSchedulerService/pkg/ptr"
)

// Фейки зависимостей

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	created      []*domain.Reservation
	nextID       int64
}

func (f *fakeReservationRepo) Create(_ context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	f.nextID++
	reservation.ID = f.nextID
	reservation.CreatedAt = time.Now()
	reservation.UpdatedAt = reservation.CreatedAt
	f.created = append(f.created, reservation)
	return reservation, nil
}

// GetActiveInWindow повторяет контракт репозитория: возвращаются только
// бронирования, пересекающиеся с окном
func (f *fakeReservationRepo) GetActiveInWindow(_ context.Context, windowStart, windowEnd time.Time) ([]*domain.Reservation, error) {
	var result []*domain.Reservation
	for _, r := range f.reservations {
		if r.EndDate.Before(windowStart) || r.StartDate.After(windowEnd) {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (f *fakeReservationRepo) GetByEntity(_ context.Context, filter domain.EntityReservationsFilter) ([]*domain.Reservation, error) {
	var result []*domain.Reservation
	for _, r := range f.reservations {
		if r.EntityName != nil && strings.EqualFold(*r.EntityName, filter.EntityName) {
			result = append(result, r)
		}
	}
	return result, nil
}

type fakeScheduleRepo struct{}

func (fakeScheduleRepo) GetPolicy(_ context.Context) (*domain.SchedulePolicy, error) {
	return nil, scheduleRepo.ErrPolicyNotFound
}

func (fakeScheduleRepo) ListExceptions(_ context.Context) ([]domain.EntityException, error) {
	return nil, nil
}

type fakeCatalogClient struct {
	tree *domain.CategoryNode
}

func (fakeCatalogClient) GetDefaultDurationWithGracefulDegradation(_ context.Context, _ string) (int, error) {
	return 0, catalogClient.ErrCategoryNotFound
}

func (f fakeCatalogClient) GetCategoryTree(_ context.Context) (*domain.CategoryNode, error) {
	if f.tree == nil {
		return nil, catalogClient.ErrServiceDegraded
	}
	return f.tree, nil
}

// fakeTxManager прогоняет функцию без настоящей транзакции
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var testCal = civilday.NewCalendar(-7)

// 15.03.2026 12:00 по UTC-7
var testNow = time.Date(2026, 3, 15, 19, 0, 0, 0, time.UTC)

func newTestUseCase(repo *fakeReservationRepo, txMgr *fakeTxManager) *UseCase {
	return newTestUseCaseWithCatalog(repo, txMgr, fakeCatalogClient{})
}

func newTestUseCaseWithCatalog(repo *fakeReservationRepo, txMgr *fakeTxManager, catalog fakeCatalogClient) *UseCase {
	uc := NewUseCase(repo, fakeScheduleRepo{}, catalog, txMgr, testCal, noopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: testNow}
	return uc
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

func TestExecute_ExplicitDateIsBooked(t *testing.T) {
	repo := &fakeReservationRepo{}
	txMgr := &fakeTxManager{}
	uc := newTestUseCase(repo, txMgr)

	startDate := testCal.Today(testNow).AddDays(3)

	resp, err := uc.Execute(context.Background(), &Request{
		CategorySegments: []string{"Food", "Restaurants", "Sushi"},
		EntityName:       ptr.Ptr("SushiGo"),
		StartDate:        &startDate,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, txMgr.calls)
	require.Len(t, repo.created, 1)

	created := repo.created[0]
	assert.Equal(t, "Food:Restaurants:Sushi", created.CategoryKey)
	assert.Equal(t, domain.StatusScheduled, created.Status)

	assert.Equal(t, resp.StartDate.AddDays(domain.DefaultDurationDays-1), resp.EndDate)
	assert.Equal(t, domain.DefaultDurationDays, resp.DurationDays)
}

func TestExecute_ExplicitDateConflict(t *testing.T) {
	today := testCal.Today(testNow)
	repo := &fakeReservationRepo{
		reservations: []*domain.Reservation{
			occupying(1, "Food:Restaurants:Sushi", "", today, today.AddDays(6)),
		},
	}
	uc := newTestUseCase(repo, &fakeTxManager{})

	startDate := today.AddDays(2)

	_, err := uc.Execute(context.Background(), &Request{
		CategorySegments: []string{"Food", "Restaurants", "Sushi"},
		StartDate:        &startDate,
	})

	assert.True(t, errors.Is(err, ErrDateNotAvailable))
	assert.Empty(t, repo.created)
}

func TestExecute_ExplicitDateInPast(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeTxManager{})

	startDate := testCal.Today(testNow).AddDays(-1)

	_, err := uc.Execute(context.Background(), &Request{
		CategorySegments: []string{"Food", "Restaurants", "Sushi"},
		StartDate:        &startDate,
	})

	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestExecute_AutoPicksNearestDate(t *testing.T) {
	today := testCal.Today(testNow)
	repo := &fakeReservationRepo{
		reservations: []*domain.Reservation{
			occupying(1, "Food:Restaurants:Sushi", "", today, today.AddDays(4)),
		},
	}
	uc := newTestUseCase(repo, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), &Request{
		CategorySegments: []string{"Food", "Restaurants", "Sushi"},
	})

	require.NoError(t, err)
	assert.Equal(t, today.AddDays(5), resp.StartDate)
	require.Len(t, repo.created, 1)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeTxManager{})

	t.Run("missing category", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{})
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("invalid category path", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			CategorySegments: []string{"Food", "", "Sushi"},
		})
		assert.True(t, errors.Is(err, ErrInvalidCategory))
	})

	t.Run("non-positive duration", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			CategorySegments: []string{"Food"},
			DurationDays:     ptr.Ptr(-1),
		})
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})
}

func testCategoryTree(t *testing.T) *domain.CategoryNode {
	t.Helper()
	sushi, err := domain.NewBranch(map[string]*domain.CategoryNode{"Sushi": domain.NewLeaf()})
	require.NoError(t, err)
	restaurants, err := domain.NewBranch(map[string]*domain.CategoryNode{"Restaurants": sushi})
	require.NoError(t, err)
	tree, err := domain.NewBranch(map[string]*domain.CategoryNode{"Food": restaurants})
	require.NoError(t, err)
	return tree
}

func TestExecute_CategoryCheckedAgainstCatalogTree(t *testing.T) {
	catalog := fakeCatalogClient{tree: testCategoryTree(t)}

	t.Run("known path is booked", func(t *testing.T) {
		repo := &fakeReservationRepo{}
		uc := newTestUseCaseWithCatalog(repo, &fakeTxManager{}, catalog)

		_, err := uc.Execute(context.Background(), &Request{
			CategorySegments: []string{"Food", "Restaurants", "Sushi"},
		})

		require.NoError(t, err)
		require.Len(t, repo.created, 1)
	})

	t.Run("unknown path is rejected", func(t *testing.T) {
		repo := &fakeReservationRepo{}
		uc := newTestUseCaseWithCatalog(repo, &fakeTxManager{}, catalog)

		_, err := uc.Execute(context.Background(), &Request{
			CategorySegments: []string{"Food", "Burgers"},
		})

		assert.True(t, errors.Is(err, ErrInvalidCategory))
		assert.Empty(t, repo.created)
	})

	t.Run("catalog outage does not block booking", func(t *testing.T) {
		repo := &fakeReservationRepo{}
		uc := newTestUseCase(repo, &fakeTxManager{})

		_, err := uc.Execute(context.Background(), &Request{
			CategorySegments: []string{"Food", "Burgers"},
		})

		require.NoError(t, err)
		require.Len(t, repo.created, 1)
	})
}

func TestExecute_AutoSnapshotCoversCooldownJumpTarget(t *testing.T) {
	today := testCal.Today(testNow)

	// Будущее бронирование мерчанта заканчивается далеко за горизонтом
	// поиска: прыжок cooldown перенесёт кандидата к его концу + 30 дней
	repo := &fakeReservationRepo{
		reservations: []*domain.Reservation{
			occupying(1, "Food:Coffee", "SushiGo", today.AddDays(900), today.AddDays(950)),
			// Конфликт категории в точке приземления прыжка
			occupying(2, "Food:Restaurants:Sushi", "", today.AddDays(980), today.AddDays(983)),
		},
	}
	uc := newTestUseCase(repo, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), &Request{
		CategorySegments: []string{"Food", "Restaurants", "Sushi"},
		EntityName:       ptr.Ptr("SushiGo"),
	})

	require.NoError(t, err)
	// Первый день после конфликта в точке приземления, а не сам занятый
	// день +980
	assert.Equal(t, today.AddDays(984), resp.StartDate)
	require.Len(t, repo.created, 1)
}
