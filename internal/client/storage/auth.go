package storage

import (
	"context"

	"github.com/iudanet/hospctl/pkg/api"
)

// TokenPair - пара токенов текущей сессии.
// Инвариант: оба поля заполнены вместе или отсутствуют вместе;
// половинчатая пара никогда не покидает слой хранения.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Valid сообщает, что пара пригодна для использования
func (p TokenPair) Valid() bool {
	return p.AccessToken != "" && p.RefreshToken != ""
}

// AuthRecord - долговременный конверт сессии: профиль оператора плюс токены
// под единым ключом. Позволяет восстановить сессию при старте без похода в сеть.
type AuthRecord struct {
	User         api.User `json:"user"`
	AccessToken  string   `json:"access"`
	RefreshToken string   `json:"refresh"`
}

// Tokens возвращает пару токенов записи
func (r *AuthRecord) Tokens() TokenPair {
	return TokenPair{AccessToken: r.AccessToken, RefreshToken: r.RefreshToken}
}

// TokenStore defines the narrow interface the API client needs: read the
// current pair, persist a refreshed pair, clear everything on auth failure.
type TokenStore interface {
	// GetTokens returns the persisted pair.
	// Returns ErrAuthNotFound if either half is missing.
	GetTokens(ctx context.Context) (TokenPair, error)

	// SaveTokens atomically replaces both tokens.
	// Писатель обязан закончить до того, как читатель увидит новую пару.
	SaveTokens(ctx context.Context, pair TokenPair) error

	// DeleteAuth removes the persisted record and tokens. Idempotent.
	DeleteAuth(ctx context.Context) error
}

// AuthStorage defines the full interface for the session layer
type AuthStorage interface {
	TokenStore

	// SaveAuth stores the combined user+tokens record
	SaveAuth(ctx context.Context, rec *AuthRecord) error

	// GetAuth retrieves the stored record.
	// Returns ErrAuthNotFound when absent; a corrupt or half-populated
	// record is deleted as a side effect and reported as not found.
	GetAuth(ctx context.Context) (*AuthRecord, error)

	// IsAuthenticated checks that a non-expired token pair is present
	IsAuthenticated(ctx context.Context) (bool, error)
}
