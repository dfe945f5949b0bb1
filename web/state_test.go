package web

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyState_RoundTrip(t *testing.T) {
	original := VerifyState{GuildID: "123456789012345678", RoleID: "987654321098765432"}

	encoded, err := EncodeVerifyState(original)
	require.NoError(t, err)

	decoded, err := DecodeVerifyState(encoded)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestVerifyState_EncodedFormIsURLSafe(t *testing.T) {
	encoded, err := EncodeVerifyState(VerifyState{GuildID: "g", RoleID: "r"})
	require.NoError(t, err)

	assert.NotContains(t, encoded, "+")
	assert.NotContains(t, encoded, "/")
}

func TestDecodeVerifyState_RejectsGarbage(t *testing.T) {
	_, err := DecodeVerifyState("not base64 at all!!!")
	assert.Error(t, err)

	// Valid base64, invalid JSON
	_, err = DecodeVerifyState("aGVsbG8=")
	assert.Error(t, err)
}

func TestAuthorizeURL(t *testing.T) {
	u := AuthorizeURL("client123", "https://example.com/verify", "state456")

	assert.True(t, strings.HasPrefix(u, "https://discord.com/api/oauth2/authorize?"))
	assert.Contains(t, u, "client_id=client123")
	assert.Contains(t, u, "redirect_uri=https%3A%2F%2Fexample.com%2Fverify")
	assert.Contains(t, u, "response_type=code")
	assert.Contains(t, u, "scope=identify+guilds.join")
	assert.Contains(t, u, "state=state456")
}
