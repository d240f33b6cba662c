package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_PreservesExtraFields(t *testing.T) {
	in := `{"username":"linh","email":"linh@example.com","id":7}`

	var u User
	require.NoError(t, json.Unmarshal([]byte(in), &u))
	assert.Equal(t, "linh", u.Username)
	assert.Len(t, u.Extra, 2)

	out, err := json.Marshal(u)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestUser_MissingUsername(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"email":"a@b.c"}`), &u))
	assert.Empty(t, u.Username)
}

func TestUser_RejectsNonObject(t *testing.T) {
	var u User
	assert.Error(t, json.Unmarshal([]byte(`"linh"`), &u))
}
