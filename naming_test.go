package dossier

import "testing"

func TestToCamelCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"username", "username"},
		{"is_root", "isRoot"},
		{"email_address", "emailAddress"},
		{"a_b_c", "aBC"},
		{"user_id2", "userId2"},
		{"_private", "_private"},
		{"double__sep", "double_Sep"},
		{"Upper_case", "upperCase"},
	}
	for _, tt := range tests {
		if got := ToCamelCase(tt.in); got != tt.want {
			t.Errorf("ToCamelCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFromCamelCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"username", "username"},
		{"isRoot", "is_root"},
		{"emailAddress", "email_address"},
		{"getHTTPResponse", "get_http_response"},
		{"userID", "user_id"},
		{"version2Beta", "version2_beta"},
		{"HTTPServer", "http_server"},
		{"already_snake", "already_snake"},
	}
	for _, tt := range tests {
		if got := FromCamelCase(tt.in); got != tt.want {
			t.Errorf("FromCamelCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNamingInverse(t *testing.T) {
	names := []string{"username", "is_root", "email_address", "a1_b2", "created_at", "x"}
	for _, name := range names {
		if got := FromCamelCase(ToCamelCase(name)); got != name {
			t.Errorf("FromCamelCase(ToCamelCase(%q)) = %q", name, got)
		}
	}
}
