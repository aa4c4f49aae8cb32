package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expiry извлекает время истечения access token из claim exp.
// Подпись не проверяется - клиент не владеет ключом сервера, ему нужен
// только срок действия. ok == false, если токен не JWT или exp отсутствует.
func Expiry(raw string) (time.Time, bool) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}

// Expired сообщает, истёк ли токен к моменту now.
// Непрозрачные (не-JWT) токены считаются неистекающими: решение о их
// валидности принимает сервер через 401.
func Expired(raw string, now time.Time) bool {
	exp, ok := Expiry(raw)
	if !ok {
		return false
	}
	return now.After(exp)
}
