package terminal

import "testing"

func TestFields(t *testing.T) {
	login := Fields(ModeLogin)
	if len(login) != 2 {
		t.Fatalf("login flow has %d fields, want 2", len(login))
	}
	if login[0].Key != KeyEmail || login[1].Key != KeyPassword {
		t.Errorf("login keys = %q, %q", login[0].Key, login[1].Key)
	}

	signup := Fields(ModeSignup)
	wantKeys := []string{KeyName, KeyEmail, KeyPassword, KeyConfirmPassword}
	if len(signup) != len(wantKeys) {
		t.Fatalf("signup flow has %d fields, want %d", len(signup), len(wantKeys))
	}
	for i, key := range wantKeys {
		if signup[i].Key != key {
			t.Errorf("signup[%d].Key = %q, want %q", i, signup[i].Key, key)
		}
	}
	if signup[3].Kind != KindSecret {
		t.Error("confirmation field should be secret")
	}

	if Fields(ModeWelcome) != nil {
		t.Error("welcome mode should have no fields")
	}
}

func TestMask(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"", ""},
		{"a", "*"},
		{"hunter2", "*******"},
		{"pässwörd", "********"},
		{"🔑🔑", "**"},
	}
	for _, tt := range tests {
		if got := Mask(tt.value); got != tt.want {
			t.Errorf("Mask(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFieldDisplay(t *testing.T) {
	plain := Field{Kind: KindText}
	email := Field{Kind: KindEmail}
	secret := Field{Kind: KindSecret}

	if got := plain.Display("Ada"); got != "Ada" {
		t.Errorf("text Display = %q", got)
	}
	if got := email.Display("ada@example.com"); got != "ada@example.com" {
		t.Errorf("email Display = %q", got)
	}
	if got := secret.Display("abc"); got != "***" {
		t.Errorf("secret Display = %q, want ***", got)
	}
}

func TestKindString(t *testing.T) {
	if KindText.String() != "text" || KindEmail.String() != "email" || KindSecret.String() != "password" {
		t.Errorf("unexpected kind names: %s %s %s", KindText, KindEmail, KindSecret)
	}
}
