package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/planwise/internal/domain"
	"github.com/alexanderramin/planwise/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepo_GetMissing(t *testing.T) {
	repo := NewSQLiteProfileRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProfileRepo_UpsertAndGet(t *testing.T) {
	repo := NewSQLiteProfileRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	p := testutil.NewTestProfile(
		testutil.WithCommitment("Mon", "Lecture", "09:00-10:00"),
		testutil.WithCommitment("Mon", "Lab", "14:00-16:00; 17:00-18:00"),
		testutil.WithWeekendActivity("Saturday", "Soccer", "10:00-12:00"),
		testutil.WithBreaks("12:00-13:00"),
		testutil.WithWorkStyle(domain.WorkStyleShortBursts),
		testutil.WithProductiveTime(domain.ProductiveEvening),
		testutil.WithProcrastinator(domain.ProcrastinatorPerfectionist),
		testutil.WithStudyMethod("Pomodoro"),
	)
	p.TroubleFinishing = domain.TroubleFinishingYes
	p.WeeklyPersonalHours = 7
	p.WeeklyReviewHours = 1.5
	require.NoError(t, repo.Upsert(ctx, p))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Test Student", got.Name)
	require.Len(t, got.WeeklySchedule["Mon"], 2)
	assert.Equal(t, "Lab", got.WeeklySchedule["Mon"][1].Name)
	assert.Equal(t, []domain.TimeRange{{StartMin: 840, EndMin: 960}, {StartMin: 1020, EndMin: 1080}},
		got.WeeklySchedule["Mon"][1].Ranges, "ranges are re-derived on load")
	assert.Equal(t, "Soccer", got.WeekendSchedule["Saturday"][0].Name)
	assert.Equal(t, []domain.TimeRange{{StartMin: 720, EndMin: 780}}, got.BreakTimes)
	assert.Equal(t, domain.WorkStyleShortBursts, got.WorkStyle)
	assert.Equal(t, domain.ProductiveEvening, got.ProductiveTime)
	assert.True(t, got.IsProcrastinator)
	assert.Equal(t, domain.ProcrastinatorPerfectionist, got.ProcrastinatorType)
	assert.True(t, got.HasTroubleFinishing())
	assert.Equal(t, 7.0, got.WeeklyPersonalHours)
	assert.Equal(t, 1.5, got.WeeklyReviewHours)
	assert.True(t, p.UpdatedAt.Equal(got.UpdatedAt))
}

func TestProfileRepo_UpsertReplaces(t *testing.T) {
	repo := NewSQLiteProfileRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testutil.NewTestProfile(testutil.WithCommitment("Tue", "Work", "09:00-17:00"))))
	second := testutil.NewTestProfile()
	second.Name = "Renamed"
	require.NoError(t, repo.Upsert(ctx, second))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Empty(t, got.WeeklySchedule)
	assert.NotNil(t, got.WeekendSchedule)
}
