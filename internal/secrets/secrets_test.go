package secrets

import "testing"

func TestMint_GeneratesUniqueValues(t *testing.T) {
	m := NewMint(nil)
	result, err := m.Mint([]string{"db_password", "api_token"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 secrets, got %d", len(result))
	}
	if result["db_password"] == "" || result["api_token"] == "" {
		t.Error("secret values should not be empty")
	}
	if result["db_password"] == result["api_token"] {
		t.Error("secret values should differ")
	}
}

func TestMint_Empty(t *testing.T) {
	m := NewMint(nil)
	result, err := m.Mint(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("expected no secrets, got %d", len(result))
	}
}

func TestMint_DuplicateNameRejected(t *testing.T) {
	m := NewMint(nil)
	_, err := m.Mint([]string{"db_password", "db_password"})
	if err == nil {
		t.Fatal("expected error for duplicate secret name")
	}
	if err.Code != "MANIFEST_VALIDATION" {
		t.Errorf("expected MANIFEST_VALIDATION, got %s", err.Code)
	}
}

func TestGenerate_MinimumEntropy(t *testing.T) {
	value, err := generate(keyLength)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// base64 raw url encoding of n bytes yields ceil(n*8/6) characters.
	if len(value) < 16 {
		t.Errorf("expected encoded value of reasonable length, got %d chars", len(value))
	}
}
