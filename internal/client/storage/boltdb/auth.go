package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/hospctl/internal/client/storage"
	"github.com/iudanet/hospctl/internal/token"
)

// Ключи внутри auth bucket. Запись хранится под тем же ключом, что использовал
// web-клиент, плюс отдельный ключ с голым access token для быстрой проверки
// наличия сессии при старте. Оба ключа всегда пишутся в одной транзакции.
var (
	keyAuthRecord  = []byte("hospital_ai_auth")
	keyAccessToken = []byte("ACCESS_TOKEN")
)

// Compile-time check that Storage implements storage.AuthStorage
var _ storage.AuthStorage = (*Storage)(nil)

// SaveAuth stores the combined user+tokens record
func (s *Storage) SaveAuth(ctx context.Context, rec *storage.AuthRecord) error {
	if rec == nil {
		return fmt.Errorf("auth record is nil")
	}
	if !rec.Tokens().Valid() {
		return fmt.Errorf("auth record has incomplete token pair")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal auth record: %w", err)
		}

		if err := bucket.Put(keyAuthRecord, data); err != nil {
			return fmt.Errorf("failed to save auth record: %w", err)
		}

		// ACCESS_TOKEN держим синхронным с записью
		if err := bucket.Put(keyAccessToken, []byte(rec.AccessToken)); err != nil {
			return fmt.Errorf("failed to save access token: %w", err)
		}

		return nil
	})
}

// GetAuth retrieves the stored record.
// Повреждённая или неполная запись удаляется и трактуется как отсутствующая:
// битое состояние на диске никогда не должно ронять bootstrap.
func (s *Storage) GetAuth(ctx context.Context) (*storage.AuthRecord, error) {
	var rec *storage.AuthRecord
	corrupt := false

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		data := bucket.Get(keyAuthRecord)
		if data == nil {
			return storage.ErrAuthNotFound
		}

		rec = &storage.AuthRecord{}
		if err := json.Unmarshal(data, rec); err != nil {
			corrupt = true
			return nil
		}

		// Половинчатая пара токенов - та же категория, что и битый JSON
		if !rec.Tokens().Valid() {
			corrupt = true
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	if corrupt {
		if delErr := s.DeleteAuth(ctx); delErr != nil {
			return nil, fmt.Errorf("failed to delete corrupt auth record: %w", delErr)
		}
		return nil, storage.ErrAuthNotFound
	}

	return rec, nil
}

// GetTokens returns the persisted token pair
func (s *Storage) GetTokens(ctx context.Context) (storage.TokenPair, error) {
	rec, err := s.GetAuth(ctx)
	if err != nil {
		return storage.TokenPair{}, err
	}
	return rec.Tokens(), nil
}

// SaveTokens atomically replaces both tokens inside the persisted record.
// Остальные поля записи (профиль оператора) не трогаются.
func (s *Storage) SaveTokens(ctx context.Context, pair storage.TokenPair) error {
	if !pair.Valid() {
		return fmt.Errorf("refusing to save incomplete token pair")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		rec := &storage.AuthRecord{}
		if data := bucket.Get(keyAuthRecord); data != nil {
			// Битую запись перезаписываем свежей, сохранять нечего
			_ = json.Unmarshal(data, rec)
		}

		rec.AccessToken = pair.AccessToken
		rec.RefreshToken = pair.RefreshToken

		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal auth record: %w", err)
		}

		if err := bucket.Put(keyAuthRecord, data); err != nil {
			return fmt.Errorf("failed to save auth record: %w", err)
		}
		if err := bucket.Put(keyAccessToken, []byte(pair.AccessToken)); err != nil {
			return fmt.Errorf("failed to save access token: %w", err)
		}

		return nil
	})
}

// DeleteAuth removes the persisted record and tokens (logout).
// Идемпотентна: очистка пустого хранилища - не ошибка.
func (s *Storage) DeleteAuth(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		if err := bucket.Delete(keyAuthRecord); err != nil {
			return fmt.Errorf("failed to delete auth record: %w", err)
		}
		if err := bucket.Delete(keyAccessToken); err != nil {
			return fmt.Errorf("failed to delete access token: %w", err)
		}

		return nil
	})
}

// IsAuthenticated checks that a non-expired token pair is present
func (s *Storage) IsAuthenticated(ctx context.Context) (bool, error) {
	pair, err := s.GetTokens(ctx)
	if err != nil {
		if err == storage.ErrAuthNotFound {
			return false, nil
		}
		return false, err
	}

	// Проверяем, не истек ли access token (по claim exp, без проверки подписи)
	if token.Expired(pair.AccessToken, time.Now()) {
		return false, nil
	}

	return true, nil
}
