package authenticator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testObject struct {
	ID      string `json:"id"`
	Address string `json:"address"`
}

func TestJWTEngine_GenerateAndVerify(t *testing.T) {
	engine := NewTokenEngine[testObject]("secret", time.Minute)

	token, err := engine.Generate("user1", testObject{ID: "user1", Address: "0xabc"})
	require.NoError(t, err)

	obj, err := engine.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user1", obj.ID)
	require.Equal(t, "0xabc", obj.Address)
}

func TestJWTEngine_VerifyExpired(t *testing.T) {
	engine := NewTokenEngine[testObject]("secret", -time.Minute)

	token, err := engine.Generate("user1", testObject{ID: "user1"})
	require.NoError(t, err)

	_, err = engine.Verify(token)
	require.Error(t, err)
}

func TestJWTEngine_VerifyWrongSecret(t *testing.T) {
	engine := NewTokenEngine[testObject]("secret", time.Minute)
	another := NewTokenEngine[testObject]("another-secret", time.Minute)

	token, err := engine.Generate("user1", testObject{ID: "user1"})
	require.NoError(t, err)

	_, err = another.Verify(token)
	require.Error(t, err)
}
