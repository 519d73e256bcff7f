package tests

import (
	"context"
	"regexp"
	"testing"
	"time"

	"resort-concierge/analytics-svc/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLeaderboard_Top(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	a, b, c := uuid.New(), uuid.New(), uuid.New()
	_, err := mr.ZAdd("popular:venue:x", 3, a.String())
	require.NoError(t, err)
	_, err = mr.ZAdd("popular:venue:x", 7, b.String())
	require.NoError(t, err)
	_, err = mr.ZAdd("popular:venue:x", 1, c.String())
	require.NoError(t, err)
	_, err = mr.ZAdd("popular:venue:x", 99, "not-a-uuid")
	require.NoError(t, err)

	ranked, err := storage.NewRedisLeaderboard(client).Top(context.Background(), "popular:venue:x", 3)

	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, b, ranked[0].MenuItemID)
	assert.Equal(t, int64(7), ranked[0].Quantity)
	assert.Equal(t, a, ranked[1].MenuItemID)
}

func TestRedisLeaderboard_MissingKey(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ranked, err := storage.NewRedisLeaderboard(client).Top(context.Background(), "popular:venue:none", 10)

	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestPostgresRepository_MenuItemNames(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM menu_items WHERE id = ANY($1)")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(id.String(), "Espresso"))

	names, err := storage.NewPostgresRepository(db).MenuItemNames(context.Background(), []uuid.UUID{id, uuid.New()})

	require.NoError(t, err)
	assert.Equal(t, map[uuid.UUID]string{id: "Espresso"}, names)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_TopFromOrders(t *testing.T) {
	venueID := uuid.New()
	since := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		since     time.Time
		wantSince interface{}
	}{
		{name: "today", since: since, wantSince: since},
		{name: "all time", since: time.Time{}, wantSince: nil},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			itemID := uuid.New()

			mock.ExpectQuery(regexp.QuoteMeta("AND ($2::timestamptz IS NULL OR o.created_at >= $2)")).
				WithArgs(venueID, testCase.wantSince, 10).
				WillReturnRows(sqlmock.NewRows([]string{"menu_item_id", "name", "quantity"}).AddRow(itemID.String(), "Mojito", 12))

			items, err := storage.NewPostgresRepository(db).TopFromOrders(context.Background(), venueID, testCase.since, 10)

			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, "Mojito", items[0].Name)
			assert.Equal(t, int64(12), items[0].Quantity)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
