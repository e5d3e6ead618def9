package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"berostock/internal/core/appctx"
	"berostock/internal/core/types"
)

type stubStore struct {
	calls []struct{ from, to time.Time }
}

func (s *stubStore) TotalBetween(ctx context.Context, from, to time.Time) (*Totals, error) {
	s.calls = append(s.calls, struct{ from, to time.Time }{from, to})
	// First call is the daily window, second the monthly one.
	if len(s.calls) == 1 {
		return &Totals{Count: 3, Sales: types.MustMoney("450.00"), Profit: types.MustMoney("150.00")}, nil
	}
	return &Totals{Count: 40, Sales: types.MustMoney("6000.00"), Profit: types.MustMoney("2000.00")}, nil
}

func roleCtx(role appctx.Role) context.Context {
	return appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID: "00000000-0000-0000-0000-000000000001",
		Role:   role,
	})
}

func TestSummary_UTCBoundaries(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store)
	// Late evening in a +02:00 zone is already the 16th locally but
	// still the 15th in UTC.
	local := time.FixedZone("EET", 2*60*60)
	svc.now = func() time.Time {
		return time.Date(2026, time.March, 16, 1, 30, 0, 0, local)
	}

	summary, err := svc.Summary(roleCtx(appctx.RoleAdmin))
	require.NoError(t, err)

	assert.Equal(t, "2026-03-15", summary.Date)
	require.Len(t, store.calls, 2)

	daily := store.calls[0]
	assert.Equal(t, time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC), daily.from)
	assert.Equal(t, time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC), daily.to)

	monthly := store.calls[1]
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), monthly.from)
	assert.Equal(t, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), monthly.to)
}

func TestSummary_PrivilegedSeesProfit(t *testing.T) {
	svc := NewService(&stubStore{})

	summary, err := svc.Summary(roleCtx(appctx.RoleManager))
	require.NoError(t, err)

	assert.Equal(t, int64(3), summary.DailyCount)
	require.NotNil(t, summary.DailyProfit)
	assert.True(t, summary.DailyProfit.Equal(types.MustMoney("150.00")))
	require.NotNil(t, summary.MonthlyProfit)
	assert.True(t, summary.MonthlyProfit.Equal(types.MustMoney("2000.00")))
}

func TestSummary_StaffSeesNoProfit(t *testing.T) {
	svc := NewService(&stubStore{})

	summary, err := svc.Summary(roleCtx(appctx.RoleStaff))
	require.NoError(t, err)

	assert.Nil(t, summary.DailyProfit)
	assert.Nil(t, summary.MonthlyProfit)
	assert.True(t, summary.DailySales.Equal(types.MustMoney("450.00")))
	assert.True(t, summary.MonthlySales.Equal(types.MustMoney("6000.00")))
}
