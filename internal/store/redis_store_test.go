package store

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewRedisStore(db, "sponzo:")
	ctx := context.Background()

	mock.ExpectGet("sponzo:events").SetVal(`[{"id":"event-1"}]`)
	mock.ExpectGet("sponzo:tickets").RedisNil()

	v, ok, err := s.Get(ctx, "events")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"event-1"}]`, v)

	_, ok, err = s.Get(ctx, "tickets")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_SetAndDelete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewRedisStore(db, "sponzo:")
	ctx := context.Background()

	mock.ExpectSet("sponzo:session", `{"id":"admin-1"}`, 0).SetVal("OK")
	mock.ExpectDel("sponzo:session").SetVal(1)

	require.NoError(t, s.Set(ctx, "session", `{"id":"admin-1"}`))
	require.NoError(t, s.Delete(ctx, "session"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_GetError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewRedisStore(db, "")

	mock.ExpectGet("events").SetErr(assert.AnError)

	_, _, err := s.Get(context.Background(), "events")
	assert.ErrorIs(t, err, assert.AnError)
}

func decrement(current string, ok bool) (string, error) {
	if !ok {
		return "", errNoSeats
	}
	n, err := strconv.Atoi(current)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", errNoSeats
	}
	return strconv.Itoa(n - 1), nil
}

var errNoSeats = errors.New("no seats left")

func TestRedisStore_UpdateWatchesAndWrites(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewRedisStore(db, "sponzo:")

	mock.ExpectWatch("sponzo:seats")
	mock.ExpectGet("sponzo:seats").SetVal("5")
	mock.ExpectTxPipeline()
	mock.ExpectSet("sponzo:seats", "4", 0).SetVal("OK")
	mock.ExpectTxPipelineExec()

	require.NoError(t, s.Update(context.Background(), "seats", decrement))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_UpdateCreatesMissingKey(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewRedisStore(db, "sponzo:")

	mock.ExpectWatch("sponzo:tickets")
	mock.ExpectGet("sponzo:tickets").RedisNil()
	mock.ExpectTxPipeline()
	mock.ExpectSet("sponzo:tickets", "[]", 0).SetVal("OK")
	mock.ExpectTxPipelineExec()

	err := s.Update(context.Background(), "tickets", func(current string, ok bool) (string, error) {
		assert.False(t, ok)
		assert.Empty(t, current)
		return "[]", nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_UpdateRetriesFailedTransaction(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewRedisStore(db, "sponzo:")

	mock.ExpectWatch("sponzo:seats").SetErr(redis.TxFailedErr)
	mock.ExpectWatch("sponzo:seats")
	mock.ExpectGet("sponzo:seats").SetVal("1")
	mock.ExpectTxPipeline()
	mock.ExpectSet("sponzo:seats", "0", 0).SetVal("OK")
	mock.ExpectTxPipelineExec()

	require.NoError(t, s.Update(context.Background(), "seats", decrement))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_UpdateGivesUpUnderContention(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewRedisStore(db, "sponzo:")
	s.maxRetries = 2

	mock.ExpectWatch("sponzo:seats").SetErr(redis.TxFailedErr)
	mock.ExpectWatch("sponzo:seats").SetErr(redis.TxFailedErr)

	err := s.Update(context.Background(), "seats", decrement)
	assert.ErrorIs(t, err, ErrContention)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_UpdateAbortWritesNothing(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewRedisStore(db, "sponzo:")

	mock.ExpectWatch("sponzo:seats")
	mock.ExpectGet("sponzo:seats").SetVal("0")

	err := s.Update(context.Background(), "seats", decrement)
	assert.ErrorIs(t, err, errNoSeats)
	assert.NoError(t, mock.ExpectationsWereMet())
}
