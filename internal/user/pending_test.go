package user

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingStore_SaveAndConsume(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewPendingStore(rdb)

	reg := PendingRegistration{Username: "alice", Email: "a@x.com", PasswordHash: "hash"}
	entry, err := json.Marshal(pendingEntry{Code: "123456", Registration: reg})
	require.NoError(t, err)

	mock.ExpectSet("pending_registration:a@x.com", entry, pendingTTL).SetVal("OK")
	require.NoError(t, store.Save(context.Background(), reg, "123456"))

	mock.ExpectGet("pending_registration:a@x.com").SetVal(string(entry))
	mock.ExpectDel("pending_registration:a@x.com").SetVal(1)

	got, err := store.Consume(context.Background(), "a@x.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPendingStore_WrongCode(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewPendingStore(rdb)

	reg := PendingRegistration{Username: "alice", Email: "a@x.com", PasswordHash: "hash"}
	entry, err := json.Marshal(pendingEntry{Code: "123456", Registration: reg})
	require.NoError(t, err)

	// Wrong code must not delete the entry; the right code can still be used.
	mock.ExpectGet("pending_registration:a@x.com").SetVal(string(entry))

	_, err = store.Consume(context.Background(), "a@x.com", "999999")
	require.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1)
}
