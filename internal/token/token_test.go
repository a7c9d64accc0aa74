package token

import (
	"errors"
	"testing"
	"time"
)

func newTestCodec(t *testing.T, ttl time.Duration) *Codec {
	t.Helper()
	c, err := NewCodec("test-secret", ttl)
	if err != nil {
		t.Fatalf("NewCodec вернул ошибку: %v", err)
	}
	return c
}

func TestNewCodec_EmptySecret(t *testing.T) {
	if _, err := NewCodec("", time.Hour); err == nil {
		t.Fatal("NewCodec с пустым секретом должен возвращать ошибку")
	}
}

func TestNewCodec_InvalidTTL(t *testing.T) {
	if _, err := NewCodec("secret", 0); err == nil {
		t.Fatal("NewCodec с нулевым TTL должен возвращать ошибку")
	}
}

func TestSignVerify_RoundTrip(t *testing.T) {
	codec := newTestCodec(t, time.Hour)

	signed, err := codec.Sign("acc-1", "admin@example.com", "superadmin")
	if err != nil {
		t.Fatalf("Sign вернул ошибку: %v", err)
	}

	claims, err := codec.Verify(signed)
	if err != nil {
		t.Fatalf("Verify вернул ошибку: %v", err)
	}

	if claims.AccountID() != "acc-1" {
		t.Errorf("AccountID = %q, ожидается acc-1", claims.AccountID())
	}
	if claims.Email != "admin@example.com" {
		t.Errorf("Email = %q, ожидается admin@example.com", claims.Email)
	}
	if claims.Role != "superadmin" {
		t.Errorf("Role = %q, ожидается superadmin", claims.Role)
	}
}

func TestVerify_EmptyToken(t *testing.T) {
	codec := newTestCodec(t, time.Hour)

	if _, err := codec.Verify(""); !errors.Is(err, ErrInvalid) {
		t.Errorf("Verify(\"\") = %v, ожидается ErrInvalid", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	codec := newTestCodec(t, time.Hour)

	if _, err := codec.Verify("not-a-token"); !errors.Is(err, ErrInvalid) {
		t.Errorf("Verify повреждённого токена = %v, ожидается ErrInvalid", err)
	}
}

func TestVerify_Tampered(t *testing.T) {
	codec := newTestCodec(t, time.Hour)

	signed, err := codec.Sign("acc-1", "admin@example.com", "admin")
	if err != nil {
		t.Fatalf("Sign вернул ошибку: %v", err)
	}

	// Порча последнего символа подписи
	tampered := signed[:len(signed)-2] + "xx"
	if _, err := codec.Verify(tampered); !errors.Is(err, ErrInvalid) {
		t.Errorf("Verify изменённого токена = %v, ожидается ErrInvalid", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	codec := newTestCodec(t, time.Hour)
	other, err := NewCodec("other-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewCodec вернул ошибку: %v", err)
	}

	signed, err := other.Sign("acc-1", "admin@example.com", "admin")
	if err != nil {
		t.Fatalf("Sign вернул ошибку: %v", err)
	}

	if _, err := codec.Verify(signed); !errors.Is(err, ErrInvalid) {
		t.Errorf("Verify токена с чужим секретом = %v, ожидается ErrInvalid", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	codec := newTestCodec(t, time.Millisecond)

	signed, err := codec.Sign("acc-1", "admin@example.com", "admin")
	if err != nil {
		t.Fatalf("Sign вернул ошибку: %v", err)
	}

	// Ждём гарантированного истечения (jwt/v5 без leeway)
	time.Sleep(1100 * time.Millisecond)

	if _, err := codec.Verify(signed); !errors.Is(err, ErrExpired) {
		t.Errorf("Verify истёкшего токена = %v, ожидается ErrExpired", err)
	}
}
