package redis

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInvalidator(t *testing.T) (*ReportCacheInvalidator, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewReportCacheInvalidator(client, "reports"), mr
}

func TestInvalidateReports_OnlyTouchesTenant(t *testing.T) {
	inv, mr := newTestInvalidator(t)

	require.NoError(t, mr.Set("reports:tenant-1:trial-balance:2026-03", "{}"))
	require.NoError(t, mr.Set("reports:tenant-1:profit-and-loss:2026", "{}"))
	require.NoError(t, mr.Set("reports:tenant-2:trial-balance:2026-03", "{}"))
	require.NoError(t, mr.Set("sessions:tenant-1", "x"))

	require.NoError(t, inv.InvalidateReports(context.Background(), "tenant-1", "*"))

	assert.False(t, mr.Exists("reports:tenant-1:trial-balance:2026-03"))
	assert.False(t, mr.Exists("reports:tenant-1:profit-and-loss:2026"))
	assert.True(t, mr.Exists("reports:tenant-2:trial-balance:2026-03"))
	assert.True(t, mr.Exists("sessions:tenant-1"))
}

func TestInvalidateReports_PatternAndManyKeys(t *testing.T) {
	inv, mr := newTestInvalidator(t)

	for i := 0; i < 250; i++ {
		require.NoError(t, mr.Set(inv.KeyFor("tenant-1", fmt.Sprintf("trial-balance:%03d", i)), "{}"))
	}
	require.NoError(t, mr.Set(inv.KeyFor("tenant-1", "balance-sheet:2026"), "{}"))

	require.NoError(t, inv.InvalidateReports(context.Background(), "tenant-1", "trial-balance:*"))

	assert.Len(t, mr.Keys(), 1)
	assert.True(t, mr.Exists("reports:tenant-1:balance-sheet:2026"))
}

func TestInvalidateReports_ServerDown(t *testing.T) {
	inv, mr := newTestInvalidator(t)
	mr.Close()

	err := inv.InvalidateReports(context.Background(), "tenant-1", "*")
	assert.Error(t, err)
}

func TestInvalidateReports_RequiresTenant(t *testing.T) {
	inv, _ := newTestInvalidator(t)
	assert.Error(t, inv.InvalidateReports(context.Background(), "", "*"))
}

func TestInvalidateReports_NilIsNoop(t *testing.T) {
	var inv *ReportCacheInvalidator
	assert.NoError(t, inv.InvalidateReports(context.Background(), "tenant-1", "*"))
}
