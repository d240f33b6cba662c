package session

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"movieflix/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*miniredis.Miniredis, *Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, NewStore(client, 0)
}

func TestStore_SaveLoadClear(t *testing.T) {
	mr, s := newTestStore(t)
	ctx := context.Background()

	user := &model.User{
		Username: "linh",
		Extra:    map[string]json.RawMessage{"id": json.RawMessage(`7`)},
	}
	require.NoError(t, s.Save(ctx, "v1", user))
	assert.JSONEq(t, `{"username":"linh","id":7}`, mr.HGet(KeyPrefix+"v1", UserField))

	got, err := s.Load(ctx, "v1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "linh", got.Username)
	assert.JSONEq(t, `7`, string(got.Extra["id"]))

	mr.HSet(KeyPrefix+"v1", "other", "x")
	require.NoError(t, s.Clear(ctx, "v1"))
	assert.False(t, mr.Exists(KeyPrefix+"v1"), "logout wipes the whole record")

	got, err = s.Load(ctx, "v1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_LoadCorruptIsLoggedOut(t *testing.T) {
	mr, s := newTestStore(t)
	mr.HSet(KeyPrefix+"v2", UserField, "not json")

	got, err := s.Load(context.Background(), "v2")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_LoadRedisDown(t *testing.T) {
	mr, s := newTestStore(t)
	mr.Close()

	_, err := s.Load(context.Background(), "v3")
	assert.Error(t, err)
}

func TestContext_FromGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	empty := From(c)
	require.NotNil(t, empty)
	assert.False(t, empty.LoggedIn())
	assert.Equal(t, "", empty.Username())

	Set(c, &Context{VisitorID: "v", User: &model.User{Username: "ana"}})
	s := From(c)
	assert.True(t, s.LoggedIn())
	assert.Equal(t, "ana", s.Username())
	assert.Equal(t, "v", s.VisitorID)
}
