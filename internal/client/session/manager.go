package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/iudanet/hospctl/internal/client/api"
	"github.com/iudanet/hospctl/internal/client/storage"
	pkgapi "github.com/iudanet/hospctl/pkg/api"
)

//go:generate moq -out api_mock.go . AuthAPI

// AuthAPI defines the API surface the session manager depends on
type AuthAPI interface {
	// Login аутентифицирует оператора по логину и паролю
	Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.LoginResponse, error)

	// Me возвращает профиль текущего оператора
	Me(ctx context.Context) (*pkgapi.User, error)
}

// State - состояние сессии
type State int

const (
	// StateBootstrapping - начальное состояние до восстановления из хранилища
	StateBootstrapping State = iota
	// StateUnauthenticated - активной сессии нет
	StateUnauthenticated
	// StateAuthenticating - логин в полёте
	StateAuthenticating
	// StateAuthenticated - оператор вошёл в систему
	StateAuthenticated
	// StateRefreshingProfile - фоновая проверка профиля
	// (подсостояние Authenticated, не блокирует работу)
	StateRefreshingProfile
)

func (s State) String() string {
	switch s {
	case StateBootstrapping:
		return "bootstrapping"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateRefreshingProfile:
		return "refreshing-profile"
	}
	return "unknown"
}

// Manager - единственный владелец состояния сессии. Все остальные компоненты
// считают его ответы истиной о том, кто сейчас вошёл в систему.
type Manager struct {
	apiClient AuthAPI
	store     storage.AuthStorage
	logger    *slog.Logger
	user      *pkgapi.User
	mu        sync.RWMutex
	state     State
	epoch     uint64
}

// NewManager creates a new session manager
func NewManager(apiClient AuthAPI, store storage.AuthStorage, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		apiClient: apiClient,
		store:     store,
		logger:    logger,
		state:     StateBootstrapping,
	}
}

// Bootstrap восстанавливает сессию из хранилища при старте процесса.
// Найденная запись принимается оптимистично: оператор считается вошедшим,
// после чего профиль best-effort сверяется через /auth/me/. Неудача сверки
// (сеть, 401, что угодно) сессию НЕ разлогинивает - её завершит только явный
// logout или проваленный refresh при последующем запросе.
// Повреждённая запись удаляется слоем хранения, bootstrap никогда не падает.
func (m *Manager) Bootstrap(ctx context.Context) {
	rec, err := m.store.GetAuth(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrAuthNotFound) {
			m.logger.Warn("failed to read persisted session", "error", err)
		}
		m.transition(StateUnauthenticated, nil)
		return
	}

	user := rec.User
	user.EnsureName()
	epoch := m.transition(StateAuthenticated, &user)

	m.verifyProfile(ctx, epoch)
}

// verifyProfile сверяет профиль с сервером. Результат применяется только если
// сессия всё ещё та же, что выдала запрос: поздний ответ, пришедший после
// logout, отбрасывается и не воскрешает сессию.
func (m *Manager) verifyProfile(ctx context.Context, epoch uint64) {
	if !m.enterProfileRefresh(epoch) {
		return
	}

	user, err := m.apiClient.Me(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.epoch != epoch {
		return
	}
	m.state = StateAuthenticated

	if err != nil {
		// Ошибки фоновой проверки глотаются и логируются, в UI не уходят
		m.logger.Debug("profile verification failed, keeping persisted user", "error", err)
		return
	}

	user.EnsureName()
	m.user = user
	m.persistUser(ctx, *user)
}

// Login выполняет вход. Токены из ответа нормализуются независимо от
// конвенции именования полей; ответ без пригодной пары - ErrMalformedAuthResponse.
// Ошибка логина уходит вызывающему без подмены, состояние откатывается.
func (m *Manager) Login(ctx context.Context, username, password string) (*pkgapi.User, error) {
	m.mu.Lock()
	m.state = StateAuthenticating
	m.mu.Unlock()

	resp, err := m.apiClient.Login(ctx, pkgapi.LoginRequest{Username: username, Password: password})
	if err != nil {
		m.transition(StateUnauthenticated, nil)
		return nil, err
	}

	access, refresh, ok := resp.Normalize()
	if !ok {
		m.transition(StateUnauthenticated, nil)
		return nil, api.ErrMalformedAuthResponse
	}

	user := resp.User
	user.EnsureName()

	// Запись должна оказаться на диске до того, как сессия станет активной
	rec := &storage.AuthRecord{User: user, AccessToken: access, RefreshToken: refresh}
	if err := m.store.SaveAuth(ctx, rec); err != nil {
		m.transition(StateUnauthenticated, nil)
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	m.transition(StateAuthenticated, &user)
	return &user, nil
}

// Logout завершает сессию. Всегда успешен и идемпотентен: хранилище
// очищается до смены состояния, чтобы IsAuthenticated не успел соврать.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.store.DeleteAuth(ctx); err != nil {
		m.logger.Warn("failed to clear auth storage on logout", "error", err)
	}
	m.transition(StateUnauthenticated, nil)
}

// UserPatch - частичное обновление профиля; nil-поля не трогаются
type UserPatch struct {
	Name        *string
	Email       *string
	Role        *string
	Department  *string
	Permissions []string
}

// UpdateUser поверхностно мержит патч в текущего пользователя и перезаписывает
// сохранённую запись. Токены не затрагиваются. No-op без активной сессии.
func (m *Manager) UpdateUser(ctx context.Context, patch UserPatch) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user == nil {
		return
	}

	u := *m.user
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.Department != nil {
		u.Department = *patch.Department
	}
	if patch.Permissions != nil {
		u.Permissions = patch.Permissions
	}
	u.EnsureName()

	m.user = &u
	m.persistUser(ctx, u)
}

// CurrentUser возвращает копию профиля текущего оператора или nil
func (m *Manager) CurrentUser() *pkgapi.User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// State возвращает текущее состояние сессии
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// IsLoading сообщает, что bootstrap или логин ещё в полёте
func (m *Manager) IsLoading() bool {
	s := m.State()
	return s == StateBootstrapping || s == StateAuthenticating
}

// IsAuthenticated истинно тогда и только тогда, когда есть текущий
// пользователь И в хранилище лежит неистёкшая пара токенов
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	m.mu.RLock()
	user := m.user
	m.mu.RUnlock()

	if user == nil {
		return false
	}

	ok, err := m.store.IsAuthenticated(ctx)
	if err != nil {
		m.logger.Warn("failed to check token storage", "error", err)
		return false
	}
	return ok
}

// transition переводит сессию в новое состояние и открывает новую эпоху.
// Подвисшие результаты старой эпохи после этого отбрасываются.
func (m *Manager) transition(state State, user *pkgapi.User) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = state
	m.user = user
	m.epoch++
	return m.epoch
}

// enterProfileRefresh помечает начало фоновой сверки профиля
func (m *Manager) enterProfileRefresh(epoch uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.epoch != epoch || m.state != StateAuthenticated {
		return false
	}
	m.state = StateRefreshingProfile
	return true
}

// persistUser перезаписывает профиль внутри сохранённой записи, не трогая
// токены. Вызывается с уже взятым m.mu.
func (m *Manager) persistUser(ctx context.Context, user pkgapi.User) {
	rec, err := m.store.GetAuth(ctx)
	if err != nil {
		m.logger.Warn("failed to load auth record for rewrite", "error", err)
		return
	}

	rec.User = user
	if err := m.store.SaveAuth(ctx, rec); err != nil {
		m.logger.Warn("failed to rewrite auth record", "error", err)
	}
}
