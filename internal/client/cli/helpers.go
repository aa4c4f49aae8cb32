package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/hospctl/internal/client/api"
)

var errNotAuthenticated = errors.New("not authenticated. Please run 'hospctl login' first")

// requireAuth восстанавливает сессию из хранилища и проверяет, что оператор
// вошёл в систему. Вызывается каждой командой, работающей с данными.
func (a *App) requireAuth(ctx context.Context) error {
	a.session.Bootstrap(ctx)
	if a.session.CurrentUser() == nil {
		return errNotAuthenticated
	}
	return nil
}

// humanize переводит ошибки транспортного уровня в сообщения для оператора.
// Истёкшая сессия - отдельный случай: она может случиться на любой команде
// и всегда означает повторный вход, а не ошибку конкретного запроса.
func humanize(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, api.ErrSessionExpired) {
		return errors.New("your session has expired, please run 'hospctl login' again")
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return errors.New(apiErr.UserMessage())
	}

	return err
}

// orDash подставляет прочерк вместо пустого значения в выводе таблиц
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func fmtCount(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
