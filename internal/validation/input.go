package validation

import (
	"fmt"
	"regexp"
)

// UsernamePattern определяет допустимый формат логина оператора.
// Латинские буквы, цифры, точка, дефис, нижнее подчеркивание; 2-150 символов
// (150 - лимит логина на стороне сервера).
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{2,150}$`)

// ValidateUsername проверяет логин перед отправкой на сервер.
// Пустой логин не уходит в сеть: форма входа сама отвечает за непустые поля.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if !UsernamePattern.MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers, dots, dashes and underscores")
	}

	return nil
}

// ValidatePassword проверяет пароль перед отправкой.
// Требование одно - непустой: правила сложности принадлежат серверу.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	return nil
}
