// Пакет token — кодек session token панели администрирования.
// Один алгоритм (HS256), один источник секрета: токен подписывается
// симметричным ключом, любая модификация payload делает подпись
// недействительной.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Ошибки верификации. ErrExpired отделён от ErrInvalid только для
// логирования: вызывающей стороне оба означают отказ в доступе.
var (
	// ErrInvalid — токен отсутствует, повреждён или подпись не сходится.
	ErrInvalid = errors.New("недействительный токен")
	// ErrExpired — срок действия токена истёк.
	ErrExpired = errors.New("срок действия токена истёк")
)

// Claims — payload session token.
type Claims struct {
	// Email — email учётной записи.
	Email string `json:"email"`
	// Role — роль учётной записи (admin, superadmin).
	Role string `json:"role"`

	jwt.RegisteredClaims
}

// AccountID — идентификатор учётной записи (subject токена).
func (c *Claims) AccountID() string {
	return c.Subject
}

// Codec подписывает и верифицирует session tokens.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec создаёт кодек. Пустой секрет недопустим: конфигурация
// обязана отклонить его до создания кодека, здесь — последний рубеж.
func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("секрет подписи session token не задан")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("некорректное время жизни токена: %s", ttl)
	}
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
	}, nil
}

// TTL возвращает время жизни выпускаемых токенов.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Sign выпускает подписанный токен для учётной записи.
func (c *Codec) Sign(accountID, email, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			Issuer:    "admin-panel",
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}
	return signed, nil
}

// Verify проверяет подпись и срок действия токена.
// Возвращает ErrExpired для истёкших токенов, ErrInvalid — для всех
// остальных причин отказа (пустой, повреждённый, чужая подпись,
// неожиданный алгоритм).
func (c *Codec) Verify(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrInvalid
	}

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный алгоритм подписи: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	if !tok.Valid {
		return nil, ErrInvalid
	}

	return claims, nil
}
