package kakao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/classon/server/internal/config"
	customerdomain "github.com/classon/server/internal/customer/domain"
	instructordomain "github.com/classon/server/internal/instructor/domain"
	"github.com/classon/server/internal/token"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	ErrNotConfigured   = errors.New("kakao_not_configured")
	ErrExternalService = errors.New("kakao_external_error")
)

type LoginInfo struct {
	AuthorizationURL string `json:"authorization_url"`
	State            string `json:"state"`
}

type CallbackRequest struct {
	Code        string
	State       string
	Subdomain   string
	RedirectURI string
}

type CallbackResult struct {
	AccessToken string                   `json:"access_token"`
	TokenType   string                   `json:"token_type"`
	ExpiresIn   int64                    `json:"expires_in"`
	Customer    *customerdomain.Customer `json:"customer"`
}

type Params struct {
	fx.In

	Config      config.Config
	Log         *zap.Logger
	Instructors instructordomain.Service
	Customers   customerdomain.Service
	Tokens      *token.Issuer
}

type Service struct {
	cfg         config.Config
	log         *zap.Logger
	client      *http.Client
	instructors instructordomain.Service
	customers   customerdomain.Service
	tokens      *token.Issuer
}

func New(p Params) *Service {
	return &Service{
		cfg:         p.Config,
		log:         p.Log.Named("kakao.service"),
		client:      &http.Client{Timeout: p.Config.KakaoTimeout},
		instructors: p.Instructors,
		customers:   p.Customers,
		tokens:      p.Tokens,
	}
}

// LoginURL builds the kakao authorization redirect for one store. The store
// must exist and have kakao login switched on.
func (s *Service) LoginURL(ctx context.Context, subdomain, redirectURI string) (*LoginInfo, error) {
	instructor, err := s.instructors.GetBySubdomain(ctx, subdomain)
	if err != nil {
		return nil, err
	}
	if !instructor.KakaoEnabled || instructor.KakaoClientID == "" {
		return nil, ErrNotConfigured
	}
	if redirectURI == "" {
		redirectURI = instructor.KakaoRedirectURI
	}

	state := uuid.NewString()
	q := url.Values{}
	q.Set("client_id", instructor.KakaoClientID)
	q.Set("redirect_uri", redirectURI)
	q.Set("response_type", "code")
	q.Set("state", state)

	return &LoginInfo{
		AuthorizationURL: s.cfg.KakaoAuthURL + "?" + q.Encode(),
		State:            state,
	}, nil
}

// Callback completes the kakao flow: exchange the code, fetch the profile,
// provision the customer, issue a customer token. Nothing is written before
// both kakao calls succeed.
func (s *Service) Callback(ctx context.Context, req CallbackRequest) (*CallbackResult, error) {
	instructor, err := s.instructors.GetBySubdomain(ctx, req.Subdomain)
	if err != nil {
		return nil, err
	}
	if !instructor.KakaoEnabled || instructor.KakaoClientID == "" {
		return nil, ErrNotConfigured
	}

	redirectURI := req.RedirectURI
	if redirectURI == "" {
		redirectURI = instructor.KakaoRedirectURI
	}

	kakaoToken, err := s.exchangeCode(ctx, instructor, req.Code, redirectURI)
	if err != nil {
		return nil, err
	}
	profile, err := s.fetchProfile(ctx, kakaoToken)
	if err != nil {
		return nil, err
	}

	customer, err := s.customers.FindOrCreateFromKakao(ctx, instructor.ID, *profile)
	if err != nil {
		return nil, err
	}

	claims := token.NewClaims(customer.ID.String(), token.UserTypeCustomer)
	claims.CustomerID = customer.ID.String()
	claims.InstructorID = instructor.ID.String()
	accessToken, err := s.tokens.Issue(claims)
	if err != nil {
		return nil, err
	}

	s.log.Info("kakao login completed",
		zap.String("customer_id", customer.ID.String()),
		zap.String("instructor_id", instructor.ID.String()),
	)
	return &CallbackResult{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
		Customer:    customer,
	}, nil
}

func (s *Service) exchangeCode(ctx context.Context, instructor *instructordomain.Instructor, code, redirectURI string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", instructor.KakaoClientID)
	if instructor.KakaoClientSecret != "" {
		form.Set("client_secret", instructor.KakaoClientSecret)
	}
	form.Set("redirect_uri", redirectURI)
	form.Set("code", code)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.KakaoTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		s.log.Warn("kakao token exchange failed", zap.Error(err))
		return "", ErrExternalService
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", ErrExternalService
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.log.Warn("kakao token exchange rejected",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return "", ErrExternalService
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.AccessToken == "" {
		return "", ErrExternalService
	}
	return payload.AccessToken, nil
}

func (s *Service) fetchProfile(ctx context.Context, accessToken string) (*customerdomain.KakaoProfile, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.KakaoAPIURL, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		s.log.Warn("kakao profile fetch failed", zap.Error(err))
		return nil, ErrExternalService
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.log.Warn("kakao profile fetch rejected", zap.Int("status", resp.StatusCode))
		return nil, ErrExternalService
	}

	var payload struct {
		ID         int64 `json:"id"`
		Properties struct {
			Nickname string `json:"nickname"`
		} `json:"properties"`
		KakaoAccount struct {
			Email       string `json:"email"`
			PhoneNumber string `json:"phone_number"`
		} `json:"kakao_account"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.ID == 0 {
		return nil, ErrExternalService
	}

	return &customerdomain.KakaoProfile{
		KakaoID:  fmt.Sprintf("%d", payload.ID),
		Email:    payload.KakaoAccount.Email,
		Nickname: payload.Properties.Nickname,
		Phone:    payload.KakaoAccount.PhoneNumber,
	}, nil
}
