package api

// LoginRequest представляет запрос на аутентификацию оператора
type LoginRequest struct {
	Username string `json:"username"` // логин оператора
	Password string `json:"password"` // пароль (не сохраняется на клиенте)
}

// TokenEnvelope собирает все исторические варианты именования токенов,
// которые возвращал backend в разных версиях API. Какая именно пара полей
// заполнена - зависит от версии сервера, поэтому клиент обязан принять любую.
type TokenEnvelope struct {
	Access       string `json:"access,omitempty"`
	Refresh      string `json:"refresh,omitempty"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	Token        string `json:"token,omitempty"` // legacy: единственный токен без refresh
}

// Normalize приводит ответ сервера к единой паре (access, refresh).
// Конвенции проверяются в порядке: access/refresh, accessToken/refreshToken,
// затем одиночный token (используется в обеих ролях). Если ни одна конвенция
// не дала непустую пару, ok == false.
func (e TokenEnvelope) Normalize() (access, refresh string, ok bool) {
	switch {
	case e.Access != "" && e.Refresh != "":
		return e.Access, e.Refresh, true
	case e.AccessToken != "" && e.RefreshToken != "":
		return e.AccessToken, e.RefreshToken, true
	case e.Token != "":
		return e.Token, e.Token, true
	}
	return "", "", false
}

// AccessValue возвращает access token из любой конвенции именования
func (e TokenEnvelope) AccessValue() string {
	switch {
	case e.Access != "":
		return e.Access
	case e.AccessToken != "":
		return e.AccessToken
	}
	return e.Token
}

// RefreshValue возвращает refresh token из любой конвенции именования.
// Пустая строка допустима: refresh endpoint может не ротировать токен.
func (e TokenEnvelope) RefreshValue() string {
	if e.Refresh != "" {
		return e.Refresh
	}
	return e.RefreshToken
}

// User представляет профиль оператора системы
type User struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Name        string   `json:"name,omitempty"`
	Email       string   `json:"email,omitempty"`
	Role        string   `json:"role,omitempty"`
	Department  string   `json:"department,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// EnsureName заполняет Name из Username, если сервер его не прислал.
// Инвариант: у материализованного пользователя Name никогда не пустой.
func (u *User) EnsureName() {
	if u.Name == "" {
		u.Name = u.Username
	}
}

// LoginResponse представляет ответ на успешный логин
type LoginResponse struct {
	User User `json:"user"`
	TokenEnvelope
}

// RefreshRequest представляет запрос на обмен refresh token
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse представляет ответ refresh endpoint.
// User присылается не всеми версиями сервера.
type RefreshResponse struct {
	User *User `json:"user,omitempty"`
	TokenEnvelope
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Detail  string `json:"detail,omitempty"` // DRF-style
}

// Text возвращает первое непустое текстовое поле ошибки
func (e ErrorResponse) Text() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Detail != "":
		return e.Detail
	}
	return e.Error
}
