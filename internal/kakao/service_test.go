package kakao

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/classon/server/internal/config"
	customerdomain "github.com/classon/server/internal/customer/domain"
	customerrepository "github.com/classon/server/internal/customer/repository"
	customerservice "github.com/classon/server/internal/customer/service"
	instructordomain "github.com/classon/server/internal/instructor/domain"
	instructorrepository "github.com/classon/server/internal/instructor/repository"
	instructorservice "github.com/classon/server/internal/instructor/service"
	"github.com/classon/server/internal/token"
)

type fakeKakao struct {
	srv          *httptest.Server
	tokenStatus  int
	tokenCalls   int
	profileID    int64
	nickname     string
	email        string
	phone        string
	seenBearer   string
	seenClientID string
}

func newFakeKakao(t *testing.T) *fakeKakao {
	t.Helper()
	f := &fakeKakao{tokenStatus: http.StatusOK, profileID: 99887766, nickname: "민지"}

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls++
		require.NoError(t, r.ParseForm())
		f.seenClientID = r.PostFormValue("client_id")
		if f.tokenStatus != http.StatusOK {
			w.WriteHeader(f.tokenStatus)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"access_token": "kakao-access-token", "token_type": "bearer"})
	})
	mux.HandleFunc("/v2/user/me", func(w http.ResponseWriter, r *http.Request) {
		f.seenBearer = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{
			"id":            f.profileID,
			"properties":    map[string]any{"nickname": f.nickname},
			"kakao_account": map[string]any{"email": f.email, "phone_number": f.phone},
		})
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

type fixture struct {
	svc       *Service
	kakao     *fakeKakao
	customers customerdomain.Service
	store     *instructordomain.Instructor
	tokens    *token.Issuer
}

func newFixture(t *testing.T, kakaoEnabled bool) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&instructordomain.Instructor{}, &customerdomain.Customer{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	instructors := instructorservice.New(instructorservice.Params{
		DB: gdb, Log: zap.NewNop(), GenID: node, Repo: instructorrepository.Provide(),
	})
	customers := customerservice.New(customerservice.Params{
		DB: gdb, Log: zap.NewNop(), GenID: node, Repo: customerrepository.Provide(),
	})
	tokens, err := token.NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	fake := newFakeKakao(t)
	cfg := config.Config{
		KakaoAuthURL:  fake.srv.URL + "/oauth/authorize",
		KakaoTokenURL: fake.srv.URL + "/oauth/token",
		KakaoAPIURL:   fake.srv.URL + "/v2/user/me",
		KakaoTimeout:  5 * time.Second,
	}

	ctx := context.Background()
	store, err := instructors.Signup(ctx, instructordomain.SignupRequest{
		Email:     "teacher@example.com",
		Password:  "password123",
		FullName:  "Kim Teacher",
		Subdomain: "kimclass",
	})
	require.NoError(t, err)

	clientID := "kakao-app-id"
	redirect := "https://kimclass.class-on.kr/auth/kakao/callback"
	store, err = instructors.UpdateProfile(ctx, store.ID, instructordomain.UpdateRequest{
		KakaoEnabled:     &kakaoEnabled,
		KakaoClientID:    &clientID,
		KakaoRedirectURI: &redirect,
	})
	require.NoError(t, err)

	svc := New(Params{
		Config:      cfg,
		Log:         zap.NewNop(),
		Instructors: instructors,
		Customers:   customers,
		Tokens:      tokens,
	})
	return &fixture{svc: svc, kakao: fake, customers: customers, store: store, tokens: tokens}
}

func TestLoginURL(t *testing.T) {
	f := newFixture(t, true)

	info, err := f.svc.LoginURL(context.Background(), "kimclass", "")
	require.NoError(t, err)
	assert.NotEmpty(t, info.State)
	assert.Contains(t, info.AuthorizationURL, "client_id=kakao-app-id")
	assert.Contains(t, info.AuthorizationURL, "response_type=code")
	assert.Contains(t, info.AuthorizationURL, "state="+info.State)
}

func TestLoginURLNotConfigured(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.svc.LoginURL(context.Background(), "kimclass", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestLoginURLUnknownStore(t *testing.T) {
	f := newFixture(t, true)

	_, err := f.svc.LoginURL(context.Background(), "ghost", "")
	assert.ErrorIs(t, err, instructordomain.ErrNotFound)
}

func TestCallbackProvisionsCustomer(t *testing.T) {
	f := newFixture(t, true)
	f.kakao.phone = "+82 10-1234-5678"
	ctx := context.Background()

	result, err := f.svc.Callback(ctx, CallbackRequest{Code: "auth-code", Subdomain: "kimclass"})
	require.NoError(t, err)

	require.NotNil(t, result.Customer)
	assert.Equal(t, "kakao_99887766@kakao.user", result.Customer.Email)
	assert.Equal(t, "민지", result.Customer.FullName)
	assert.Equal(t, "+82 10-1234-5678", result.Customer.Phone)
	assert.Equal(t, f.store.ID, result.Customer.InstructorID)
	assert.Equal(t, "kakao-app-id", f.kakao.seenClientID)
	assert.Equal(t, "Bearer kakao-access-token", f.kakao.seenBearer)

	claims, err := f.tokens.Verify(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, token.UserTypeCustomer, claims.UserType)
	assert.Equal(t, result.Customer.ID.String(), claims.CustomerID)
	assert.Equal(t, f.store.ID.String(), claims.InstructorID)

	// A second login reuses the row.
	again, err := f.svc.Callback(ctx, CallbackRequest{Code: "auth-code-2", Subdomain: "kimclass"})
	require.NoError(t, err)
	assert.Equal(t, result.Customer.ID, again.Customer.ID)

	count, err := f.customers.CountByInstructor(ctx, f.store.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestCallbackUsesAccountEmail(t *testing.T) {
	f := newFixture(t, true)
	f.kakao.email = "minji@example.com"

	result, err := f.svc.Callback(context.Background(), CallbackRequest{Code: "auth-code", Subdomain: "kimclass"})
	require.NoError(t, err)
	assert.Equal(t, "minji@example.com", result.Customer.Email)
}

func TestCallbackExchangeFailure(t *testing.T) {
	f := newFixture(t, true)
	f.kakao.tokenStatus = http.StatusBadRequest
	ctx := context.Background()

	_, err := f.svc.Callback(ctx, CallbackRequest{Code: "bad-code", Subdomain: "kimclass"})
	assert.ErrorIs(t, err, ErrExternalService)
	assert.Equal(t, 1, f.kakao.tokenCalls)

	// No customer row is written for a failed exchange.
	count, err := f.customers.CountByInstructor(ctx, f.store.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestCallbackNotConfigured(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.svc.Callback(context.Background(), CallbackRequest{Code: "auth-code", Subdomain: "kimclass"})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, 0, f.kakao.tokenCalls)
}

func TestCallbackTransportError(t *testing.T) {
	f := newFixture(t, true)
	f.kakao.srv.Close()

	_, err := f.svc.Callback(context.Background(), CallbackRequest{Code: "auth-code", Subdomain: "kimclass"})
	assert.ErrorIs(t, err, ErrExternalService)
}

func TestCallbackRedirectURIFallback(t *testing.T) {
	f := newFixture(t, true)

	info, err := f.svc.LoginURL(context.Background(), "kimclass", "")
	require.NoError(t, err)
	assert.Contains(t, info.AuthorizationURL, "redirect_uri=https%3A%2F%2Fkimclass.class-on.kr%2Fauth%2Fkakao%2Fcallback")
}
