package validate

import "testing"

func TestUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"валидное имя", "admin", false},
		{"минимальная длина", "abc", false},
		{"слишком короткое", "ab", true},
		{"пустое", "", true},
		{"только пробелы", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Username(tt.username)
			if (err != nil) != tt.wantErr {
				t.Errorf("Username(%q) err = %v, wantErr = %v", tt.username, err, tt.wantErr)
			}
		})
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"валидный email", "admin@example.com", false},
		{"с точкой в имени", "first.last@example.co", false},
		{"с дефисом в домене", "user@my-host.org", false},
		{"без @", "adminexample.com", true},
		{"без домена", "admin@", true},
		{"без TLD", "admin@example", true},
		{"пустой", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Email(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("Email(%q) err = %v, wantErr = %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestPassword(t *testing.T) {
	if err := Password("secret"); err != nil {
		t.Errorf("Password(\"secret\") вернул ошибку: %v", err)
	}
	if err := Password("12345"); err == nil {
		t.Error("пароль короче 6 символов должен отклоняться")
	}
	if err := Password(""); err == nil {
		t.Error("пустой пароль должен отклоняться")
	}
}

func TestRole(t *testing.T) {
	if err := Role("admin"); err != nil {
		t.Errorf("Role(\"admin\") вернул ошибку: %v", err)
	}
	if err := Role("superadmin"); err != nil {
		t.Errorf("Role(\"superadmin\") вернул ошибку: %v", err)
	}
	if err := Role("operator"); err == nil {
		t.Error("роль вне закрытого набора должна отклоняться")
	}
}
