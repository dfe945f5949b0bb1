package web

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
)

// VerifyState is the round-tripped OAuth2 state parameter. It carries
// which guild the verification panel was posted in and which role to
// grant on success. Field names stay short because the state rides in
// a URL.
type VerifyState struct {
	GuildID string `json:"g"`
	RoleID  string `json:"r"`
}

// EncodeVerifyState packs the state as URL-safe base64 JSON.
func EncodeVerifyState(state VerifyState) (string, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("failed to encode verify state: %w", err)
	}
	return base64.URLEncoding.EncodeToString(raw), nil
}

// DecodeVerifyState unpacks a state value produced by EncodeVerifyState.
func DecodeVerifyState(encoded string) (VerifyState, error) {
	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return VerifyState{}, fmt.Errorf("failed to decode verify state: %w", err)
	}
	var state VerifyState
	if err := json.Unmarshal(raw, &state); err != nil {
		return VerifyState{}, fmt.Errorf("failed to parse verify state: %w", err)
	}
	return state, nil
}

// AuthorizeURL builds the Discord OAuth2 authorization URL the verify
// panel button points at.
func AuthorizeURL(clientID, redirectURI, state string) string {
	query := url.Values{}
	query.Set("client_id", clientID)
	query.Set("redirect_uri", redirectURI)
	query.Set("response_type", "code")
	query.Set("scope", "identify guilds.join")
	query.Set("state", state)
	return "https://discord.com/api/oauth2/authorize?" + query.Encode()
}
