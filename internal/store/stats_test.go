package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaughan-dsouza/jemaat/internal/db/dbtest"
	"github.com/vaughan-dsouza/jemaat/internal/models"
)

func TestMembers_Totals(t *testing.T) {
	ctx := context.Background()
	r := NewMembers(dbtest.NewSQLite(t))

	empty, err := r.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, Totals{}, empty)

	all := seedMembers(t, r, 21)

	var want Totals
	for _, m := range all {
		want.Members++
		if m.InArea {
			want.InArea++
		}
		if m.OutsideArea {
			want.OutsideArea++
		}
		if m.Confirmed {
			want.Confirmed++
		}
	}

	got, err := r.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMembers_SectorSummary(t *testing.T) {
	ctx := context.Background()
	r := NewMembers(dbtest.NewSQLite(t))
	all := seedMembers(t, r, 30)

	sum := 0
	for sector := models.MinSector; sector <= models.MaxSector; sector++ {
		s, err := r.SectorSummary(ctx, sector)
		require.NoError(t, err)
		assert.Equal(t, sector, s.Sector)
		assert.Len(t, s.Categories, len(models.Categories))
		assert.Equal(t, s.Total, s.InArea+s.OutsideArea)

		byCat := 0
		for _, n := range s.Categories {
			byCat += n
		}
		assert.Equal(t, s.Total, byCat)
		sum += s.Total
	}
	assert.Equal(t, len(all), sum)
}

func TestMembers_Birthdays(t *testing.T) {
	ctx := context.Background()
	r := NewMembers(dbtest.NewSQLite(t))
	all := seedMembers(t, r, 30)

	// member 1 is born on day 2 of month 2
	on, err := r.BirthdaysOn(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, on, 1)
	assert.Equal(t, all[1].ID, on[0].ID)

	inMonth, err := r.BirthdaysInMonth(ctx, 2)
	require.NoError(t, err)
	for i := 1; i < len(inMonth); i++ {
		assert.LessOrEqual(t, *inMonth[i-1].Day, *inMonth[i].Day)
	}
	for _, m := range inMonth {
		assert.Equal(t, 2, *m.Month)
	}

	incomplete, err := r.IncompleteBirthdates(ctx, 4)
	require.NoError(t, err)
	assert.Len(t, incomplete, 4)
	for _, m := range incomplete {
		assert.False(t, m.HasFullBirthdate())
	}
}
