package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coinbot/models"
	"coinbot/store"
)

type fakeExchanger struct {
	exchangeErr error
	fetchErr    error
	userID      string
	username    string
}

func (f *fakeExchanger) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return &TokenResponse{AccessToken: "token-for-" + code, TokenType: "Bearer", ExpiresIn: 604800}, nil
}

func (f *fakeExchanger) FetchUser(ctx context.Context, tokenType, accessToken string) (*DiscordUser, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return &DiscordUser{ID: f.userID, Username: f.username}, nil
}

type joinCall struct {
	guildID, userID, accessToken string
	roleIDs                      []string
}

type fakeJoiner struct {
	joinErr   error
	assignErr error
	joins     []joinCall
	assigns   []joinCall
}

func (f *fakeJoiner) JoinGuild(ctx context.Context, guildID, userID, accessToken string, roleIDs []string) error {
	f.joins = append(f.joins, joinCall{guildID, userID, accessToken, roleIDs})
	return f.joinErr
}

func (f *fakeJoiner) AssignRole(ctx context.Context, guildID, userID, roleID string) error {
	f.assigns = append(f.assigns, joinCall{guildID: guildID, userID: userID, roleIDs: []string{roleID}})
	return f.assignErr
}

type adjustCall struct {
	targetIDs []string
	amount    int64
	remove    bool
}

// fakeEconomy implements the parts of the economy interface the HTTP
// surface touches; everything else is unreachable from these tests.
type fakeEconomy struct {
	adjustErr error
	adjusts   []adjustCall
}

func (f *fakeEconomy) AdminAdjust(ctx context.Context, targetIDs []string, amount int64, remove bool) (*models.AdjustResult, error) {
	f.adjusts = append(f.adjusts, adjustCall{targetIDs, amount, remove})
	if f.adjustErr != nil {
		return nil, f.adjustErr
	}
	return &models.AdjustResult{Amount: amount, Removed: remove, Affected: len(targetIDs)}, nil
}

func (f *fakeEconomy) Work(ctx context.Context, accountID string) (*models.WorkResult, error) {
	panic("not used in web tests")
}

func (f *fakeEconomy) Rob(ctx context.Context, attackerID, targetID string, targetIsBot bool) (*models.RobResult, error) {
	panic("not used in web tests")
}

func (f *fakeEconomy) Give(ctx context.Context, senderID, receiverID string, receiverIsBot bool, amount int64) (*models.GiveResult, error) {
	panic("not used in web tests")
}

func (f *fakeEconomy) PurchaseRole(ctx context.Context, guildID, accountID, name, color string) (*models.PurchaseResult, error) {
	panic("not used in web tests")
}

func (f *fakeEconomy) Balance(ctx context.Context, accountID string) (int64, error) {
	panic("not used in web tests")
}

func (f *fakeEconomy) ActionRemaining(ctx context.Context, accountID string, action models.Action) (time.Duration, error) {
	panic("not used in web tests")
}

func (f *fakeEconomy) MarkActionUsed(ctx context.Context, accountID string, action models.Action) error {
	panic("not used in web tests")
}

type serverFixture struct {
	server      *Server
	economy     *fakeEconomy
	credentials *store.MemoryCredentialStore
	exchanger   *fakeExchanger
	joiner      *fakeJoiner
}

func newServerFixture() *serverFixture {
	economy := &fakeEconomy{}
	credentials := store.NewMemoryCredentialStore()
	exchanger := &fakeExchanger{userID: "user1", username: "alice"}
	joiner := &fakeJoiner{}
	return &serverFixture{
		server:      NewServer(":0", economy, credentials, exchanger, joiner),
		economy:     economy,
		credentials: credentials,
		exchanger:   exchanger,
		joiner:      joiner,
	}
}

func (f *serverFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.server.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func verifyURL(t *testing.T, code string, state VerifyState) string {
	encoded, err := EncodeVerifyState(state)
	require.NoError(t, err)
	return "/verify?code=" + code + "&state=" + encoded
}

func TestHealthz(t *testing.T) {
	f := newServerFixture()

	rec := f.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestVerify_SuccessStoresCredentialAndJoins(t *testing.T) {
	f := newServerFixture()

	url := verifyURL(t, "authcode", VerifyState{GuildID: "guild1", RoleID: "role1"})
	rec := f.do(httptest.NewRequest(http.MethodGet, url, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice")

	// Token captured
	count, err := f.credentials.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	all, err := f.credentials.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user1", all[0].UserID)
	assert.Equal(t, "token-for-authcode", all[0].AccessToken)
	assert.Equal(t, "Bearer", all[0].TokenType)

	// Joined with the verification role attached
	require.Len(t, f.joiner.joins, 1)
	assert.Equal(t, "guild1", f.joiner.joins[0].guildID)
	assert.Equal(t, "user1", f.joiner.joins[0].userID)
	assert.Equal(t, []string{"role1"}, f.joiner.joins[0].roleIDs)
}

func TestVerify_MissingCode(t *testing.T) {
	f := newServerFixture()

	rec := f.do(httptest.NewRequest(http.MethodGet, "/verify", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.joiner.joins)
}

func TestVerify_BadState(t *testing.T) {
	f := newServerFixture()

	rec := f.do(httptest.NewRequest(http.MethodGet, "/verify?code=abc&state=garbage!!!", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	count, _ := f.credentials.Count(context.Background())
	assert.Equal(t, 0, count)
}

func TestVerify_ExchangeFailure(t *testing.T) {
	f := newServerFixture()
	f.exchanger.exchangeErr = errors.New("invalid_grant")

	url := verifyURL(t, "expired", VerifyState{GuildID: "guild1", RoleID: "role1"})
	rec := f.do(httptest.NewRequest(http.MethodGet, url, nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	count, _ := f.credentials.Count(context.Background())
	assert.Equal(t, 0, count)
}

func TestVerify_JoinFailureFallsBackToRoleAssignment(t *testing.T) {
	f := newServerFixture()
	f.joiner.joinErr = errors.New("already a member")

	url := verifyURL(t, "authcode", VerifyState{GuildID: "guild1", RoleID: "role1"})
	rec := f.do(httptest.NewRequest(http.MethodGet, url, nil))

	// Verification still succeeds: the token is stored and the role is
	// granted directly.
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, f.joiner.assigns, 1)
	assert.Equal(t, []string{"role1"}, f.joiner.assigns[0].roleIDs)

	count, _ := f.credentials.Count(context.Background())
	assert.Equal(t, 1, count)
}

func TestWebhook_AddsCoins(t *testing.T) {
	f := newServerFixture()

	body := strings.NewReader(`{"account_id": "user1", "amount": 250}`)
	rec := f.do(httptest.NewRequest(http.MethodPost, "/webhook", body))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, f.economy.adjusts, 1)
	assert.Equal(t, []string{"user1"}, f.economy.adjusts[0].targetIDs)
	assert.Equal(t, int64(250), f.economy.adjusts[0].amount)
	assert.False(t, f.economy.adjusts[0].remove)
}

func TestWebhook_NegativeAmountRemoves(t *testing.T) {
	f := newServerFixture()

	body := strings.NewReader(`{"account_id": "user1", "amount": -75}`)
	rec := f.do(httptest.NewRequest(http.MethodPost, "/webhook", body))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, f.economy.adjusts, 1)
	assert.Equal(t, int64(75), f.economy.adjusts[0].amount)
	assert.True(t, f.economy.adjusts[0].remove)
	assert.Contains(t, rec.Body.String(), `"removed":true`)
}

func TestWebhook_RejectsBadRequests(t *testing.T) {
	f := newServerFixture()

	cases := []string{
		`not json`,
		`{"amount": 100}`,
		`{"account_id": "user1"}`,
		`{"account_id": "user1", "amount": 0}`,
	}
	for _, body := range cases {
		rec := f.do(httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}
	assert.Empty(t, f.economy.adjusts)
}

func TestWebhook_AdjustmentFailure(t *testing.T) {
	f := newServerFixture()
	f.economy.adjustErr = errors.New("database down")

	body := strings.NewReader(`{"account_id": "user1", "amount": 100}`)
	rec := f.do(httptest.NewRequest(http.MethodPost, "/webhook", body))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
