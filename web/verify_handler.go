package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"coinbot/models"
)

// GuildJoiner is the Discord-side collaborator the verify flow uses to
// place verified users into guilds and hand out the configured role.
type GuildJoiner interface {
	JoinGuild(ctx context.Context, guildID, userID, accessToken string, roleIDs []string) error
	AssignRole(ctx context.Context, guildID, userID, roleID string) error
}

// handleVerify completes the OAuth2 redirect: it exchanges the code,
// stores the user's access token, and joins them to the guild encoded
// in the state with the verification role attached.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	code := r.URL.Query().Get("code")
	if code == "" {
		writeVerifyPage(w, http.StatusBadRequest, "Verification failed", "The authorization code is missing. Please click the panel button again.")
		return
	}

	state, err := DecodeVerifyState(r.URL.Query().Get("state"))
	if err != nil {
		log.Warnf("Invalid verify state: %v", err)
		writeVerifyPage(w, http.StatusBadRequest, "Verification failed", "The verification link is invalid or expired. Please click the panel button again.")
		return
	}

	token, err := s.exchanger.ExchangeCode(ctx, code)
	if err != nil {
		log.Errorf("Token exchange failed: %v", err)
		writeVerifyPage(w, http.StatusBadGateway, "Verification failed", "Discord rejected the authorization. Please try again.")
		return
	}

	user, err := s.exchanger.FetchUser(ctx, token.TokenType, token.AccessToken)
	if err != nil {
		log.Errorf("Failed to fetch user after token exchange: %v", err)
		writeVerifyPage(w, http.StatusBadGateway, "Verification failed", "Unable to identify your Discord account. Please try again.")
		return
	}

	cred := &models.Credential{
		UserID:      user.ID,
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		CapturedAt:  time.Now().UTC(),
	}
	if err := s.credentials.Put(ctx, cred); err != nil {
		log.Errorf("Failed to store credential for user %s: %v", user.ID, err)
		writeVerifyPage(w, http.StatusInternalServerError, "Verification failed", "Something went wrong on our side. Please try again.")
		return
	}

	// Verification still counts if the role grant fails; the member is
	// told to contact staff instead of being bounced back through OAuth.
	if state.GuildID != "" && s.joiner != nil {
		var roles []string
		if state.RoleID != "" {
			roles = []string{state.RoleID}
		}
		if err := s.joiner.JoinGuild(ctx, state.GuildID, user.ID, token.AccessToken, roles); err != nil {
			log.Warnf("Guild join failed for user %s in guild %s: %v", user.ID, state.GuildID, err)
			if state.RoleID != "" {
				if err := s.joiner.AssignRole(ctx, state.GuildID, user.ID, state.RoleID); err != nil {
					log.Errorf("Role assignment failed for user %s in guild %s: %v", user.ID, state.GuildID, err)
					writeVerifyPage(w, http.StatusOK, "Almost there",
						fmt.Sprintf("Welcome, %s! Verification succeeded but the role could not be assigned. Please contact the staff.", user.Username))
					return
				}
			}
		}
	}

	log.Infof("User %s verified successfully", user.ID)
	writeVerifyPage(w, http.StatusOK, "Verification complete",
		fmt.Sprintf("Welcome, %s! You can close this tab and return to Discord.", user.Username))
}

func writeVerifyPage(w http.ResponseWriter, status int, title, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head><title>%s</title></head>
<body style="font-family: sans-serif; text-align: center; margin-top: 4em;">
<h1>%s</h1>
<p>%s</p>
</body>
</html>
`, title, title, message)
}
