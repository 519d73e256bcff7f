package tests

import (
	"context"
	"regexp"
	"testing"
	"time"

	"resort-concierge/chat-svc/internal/domain"
	"resort-concierge/chat-svc/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*storage.PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return storage.NewPostgresRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestPostgresRepository_InsertMessage(t *testing.T) {
	repo, mock := newMockRepo(t)
	profileID := uuid.New()
	msg := &domain.ChatMessage{ID: uuid.New(), ProfileID: &profileID, Role: domain.RoleUser, Content: "hello"}
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO chat_messages (id, profile_id, role, content)")).
		WithArgs(msg.ID, profileID, "USER", "hello").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	require.NoError(t, repo.InsertMessage(context.Background(), msg))
	assert.Equal(t, now, msg.CreatedAt)
}

func TestPostgresRepository_ListMessages(t *testing.T) {
	repo, mock := newMockRepo(t)
	profileID := uuid.New()
	columns := []string{"id", "profile_id", "role", "content", "created_at"}
	base := time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE role IN ('ASSISTANT', 'SYSTEM') OR profile_id = $1")).
		WithArgs(profileID, 50, 0).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(uuid.NewString(), nil, "SYSTEM", "Welcome!", base).
			AddRow(uuid.NewString(), profileID.String(), "USER", "Hi", base.Add(time.Minute)))

	messages, err := repo.ListMessages(context.Background(), &profileID, 50, 0)

	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Nil(t, messages[0].ProfileID)
	assert.Equal(t, domain.RoleSystem, messages[0].Role)
	require.NotNil(t, messages[1].ProfileID)
	assert.Equal(t, profileID, *messages[1].ProfileID)
}

func TestPostgresRepository_ListMessagesWithoutProfile(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM chat_messages")).
		WithArgs(nil, 10, 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "profile_id", "role", "content", "created_at"}))

	messages, err := repo.ListMessages(context.Background(), nil, 10, 5)

	require.NoError(t, err)
	assert.NotNil(t, messages)
	assert.Empty(t, messages)
}

func TestRedisThrottle_Allow(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	throttle := storage.NewRedisThrottle(client, 2, time.Minute)
	profileID := uuid.New()

	for i := 0; i < 2; i++ {
		allowed, err := throttle.Allow(ctx, profileID)
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	allowed, err := throttle.Allow(ctx, profileID)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, time.Minute, mr.TTL(throttle.ThrottleKey(profileID)))

	allowed, err = throttle.Allow(ctx, uuid.New())
	require.NoError(t, err)
	assert.True(t, allowed, "limits are per profile")

	mr.FastForward(time.Minute + time.Second)
	allowed, err = throttle.Allow(ctx, profileID)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisThrottle_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	mr.Close()

	_, err := storage.NewRedisThrottle(client, 1, time.Minute).Allow(context.Background(), uuid.New())

	assert.Error(t, err)
}
