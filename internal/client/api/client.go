package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/iudanet/hospctl/internal/client/storage"
	"github.com/iudanet/hospctl/pkg/api"
)

// Auth endpoints (относительно base URL)
const (
	loginPath   = "/auth/login/"
	mePath      = "/auth/me/"
	refreshPath = "/auth/refresh/"
)

const defaultTimeout = 30 * time.Second

// Client - единственная точка выхода в сеть для всех feature-сервисов.
// Подставляет access token в каждый запрос и владеет протоколом
// refresh-on-401: один коалесцированный обмен, один повтор запроса.
type Client struct {
	httpClient *http.Client
	tokens     storage.TokenStore
	logger     *slog.Logger
	baseURL    string
	refreshing singleflight.Group
}

// NewClient создает новый API клиент.
// tokens может быть nil - тогда все запросы уходят без авторизации.
func NewClient(baseURL string, tokens storage.TokenStore, logger *slog.Logger, timeout time.Duration) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: timeout,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовок Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// Login аутентифицирует оператора. Запрос уходит без access token,
// поэтому 401 здесь означает неверные учетные данные, а не истёкшую сессию.
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error) {
	var resp api.LoginResponse
	if err := c.send(ctx, http.MethodPost, loginPath, "", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Me возвращает профиль текущего оператора.
// Идёт через общий Do, то есть участвует в цикле refresh-on-401.
func (c *Client) Me(ctx context.Context) (*api.User, error) {
	var user api.User
	if err := c.Do(ctx, http.MethodGet, mePath, nil, &user); err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}
	return &user, nil
}

// Do выполняет запрос с подстановкой текущего access token.
// При 401 на любом пути, кроме refresh endpoint, запускается ровно один
// обмен refresh token; конкурирующие 401 ждут тот же in-flight обмен.
// Запрос повторяется не более одного раза: второй подряд 401 после
// успешного refresh - жёсткая ошибка авторизации, а не цикл.
func (c *Client) Do(ctx context.Context, method, path string, body, result any) error {
	accessToken := c.currentAccessToken(ctx)

	err := c.send(ctx, method, path, accessToken, body, result)
	if !isUnauthorized(err) || path == refreshPath {
		return err
	}

	// 401 без подставленного токена не лечится обменом: запрос изначально
	// ушёл неавторизованным (например, до логина)
	if accessToken == "" {
		return err
	}

	newAccess, refreshErr := c.refresh(ctx)
	if refreshErr != nil {
		return refreshErr
	}

	err = c.send(ctx, method, path, newAccess, body, result)
	if isUnauthorized(err) {
		return fmt.Errorf("request unauthorized after token refresh: %w", ErrSessionExpired)
	}
	return err
}

// currentAccessToken читает access token из хранилища.
// Отсутствие токена не ошибка: запрос уйдёт неавторизованным.
func (c *Client) currentAccessToken(ctx context.Context) string {
	if c.tokens == nil {
		return ""
	}
	pair, err := c.tokens.GetTokens(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrAuthNotFound) {
			c.logger.Warn("failed to read tokens", "error", err)
		}
		return ""
	}
	return pair.AccessToken
}

// refresh выполняет один коалесцированный обмен refresh token.
// Новая пара обязана оказаться в хранилище до того, как исходный запрос
// будет повторён. При любой неудаче хранилище очищается и все ожидающие
// получают ErrSessionExpired; состояние сессии клиент не трогает - его
// наблюдает Session Manager по опустевшему хранилищу.
func (c *Client) refresh(ctx context.Context) (string, error) {
	v, err, _ := c.refreshing.Do("refresh", func() (any, error) {
		pair, err := c.tokens.GetTokens(ctx)
		if err != nil {
			c.clearTokens(ctx)
			return nil, fmt.Errorf("no refresh token available: %w", ErrSessionExpired)
		}

		var resp api.RefreshResponse
		req := api.RefreshRequest{Refresh: pair.RefreshToken}
		if err := c.send(ctx, http.MethodPost, refreshPath, "", req, &resp); err != nil {
			c.clearTokens(ctx)
			c.logger.Warn("token refresh failed", "error", err)
			return nil, fmt.Errorf("token refresh failed: %w", ErrSessionExpired)
		}

		access := resp.AccessValue()
		if access == "" {
			c.clearTokens(ctx)
			return nil, fmt.Errorf("refresh response has no access token: %w", ErrSessionExpired)
		}

		refreshToken := resp.RefreshValue()
		if refreshToken == "" {
			// Сервер не ротировал refresh token, продолжаем со старым
			refreshToken = pair.RefreshToken
		}

		newPair := storage.TokenPair{AccessToken: access, RefreshToken: refreshToken}
		if err := c.tokens.SaveTokens(ctx, newPair); err != nil {
			return nil, fmt.Errorf("failed to persist refreshed tokens: %w", err)
		}

		c.logger.Debug("access token refreshed")
		return access, nil
	})
	if err != nil {
		return "", err
	}

	return v.(string), nil
}

func (c *Client) clearTokens(ctx context.Context) {
	if err := c.tokens.DeleteAuth(ctx); err != nil {
		c.logger.Warn("failed to clear tokens", "error", err)
	}
}

// send выполняет один HTTP запрос без какой-либо refresh-логики
func (c *Client) send(ctx context.Context, method, path, accessToken string, body, result any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Запрос ушёл, ответа нет - отдельная категория от серверных ошибок
		return &Error{Kind: KindNetwork, Message: err.Error(), err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		msg := ""
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			msg = errResp.Text()
		}
		return classify(resp.StatusCode, msg)
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func isUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}
