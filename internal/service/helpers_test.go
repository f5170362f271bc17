package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/goalpace/internal/db/dbtest"
	"github.com/templui/goalpace/internal/model"
	"github.com/templui/goalpace/internal/repository"
)

type fakeNotifier struct {
	mu   sync.Mutex
	sent []*model.MilestoneNotification
	err  error
}

func (f *fakeNotifier) SendGoalMilestone(_ context.Context, contact string, n *model.MilestoneNotification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, n)
	return nil
}

func (f *fakeNotifier) milestones() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []int{}
	for _, n := range f.sent {
		out = append(out, n.Milestone)
	}
	return out
}

// testEnv wires every service against a fresh SQLite database with a fixed clock.
type testEnv struct {
	db       *sqlx.DB
	goalRepo repository.GoalRepository
	goals    *GoalService
	progress *ProgressService
	sweeper  *SweeperService
	sales    *SaleService
	users    *UserService
	notifier *fakeNotifier
	now      time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database := dbtest.New(t)
	env := &testEnv{
		db:       database,
		notifier: &fakeNotifier{},
		now:      time.Date(2025, 10, 16, 12, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return env.now }

	env.goalRepo = repository.NewGoalRepository(database)
	userRepo := repository.NewUserRepository(database)

	notifications := NewNotificationService(userRepo, repository.NewMilestoneRepository(database), env.notifier)
	notifications.now = clock

	env.progress = NewProgressService(env.goalRepo, NewMetricService(repository.NewMetricRepository(database)), notifications)
	env.progress.now = clock

	env.goals = NewGoalService(env.goalRepo, env.progress)
	env.goals.now = clock

	env.sweeper = NewSweeperService(env.goalRepo)
	env.sweeper.now = clock

	env.sales = NewSaleService(repository.NewSaleRepository(database), env.goalRepo, env.progress)
	env.sales.now = clock

	env.users = NewUserService(userRepo)
	env.users.now = clock

	return env
}

func (e *testEnv) user(t *testing.T, email string) string {
	t.Helper()
	user, err := e.users.Create(context.Background(), email, "Owner")
	require.NoError(t, err)
	return user.ID
}

func (e *testEnv) sale(t *testing.T, userID, amount, status string, at time.Time) {
	t.Helper()
	_, err := e.sales.RecordSale(context.Background(), userID, RecordSaleInput{
		Amount:    decimal.RequireFromString(amount),
		Status:    status,
		CreatedAt: &at,
	})
	require.NoError(t, err)
}

func (e *testEnv) adSpend(t *testing.T, userID, amount string, at time.Time) {
	t.Helper()
	_, err := e.sales.RecordAdSpend(context.Background(), userID, RecordAdSpendInput{
		Amount:    decimal.RequireFromString(amount),
		Platform:  model.AdPlatformFacebook,
		SpendDate: at,
	})
	require.NoError(t, err)
}

func (e *testEnv) createGoal(t *testing.T, userID string, input CreateGoalInput) *model.GoalProgress {
	t.Helper()
	progress, err := e.goals.Create(context.Background(), userID, input)
	require.NoError(t, err)
	return progress
}

func october(targetType model.TargetType, target string) CreateGoalInput {
	return CreateGoalInput{
		Title:       "October " + string(targetType),
		TargetType:  targetType,
		TargetValue: decimal.RequireFromString(target),
		PeriodType:  model.PeriodTypeMonthly,
		PeriodStart: date(2025, 10, 1),
		PeriodEnd:   date(2025, 10, 31),
	}
}

func date(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}

var errDelivery = errors.New("smtp down")
