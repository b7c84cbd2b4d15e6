package controller

import "testing"

func TestValidateConfig_Valid(t *testing.T) {
	env := newTestEnv(t, "1.0.0")

	_, _, err := env.ctrl.ValidateConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateConfig_MissingManifestChannel(t *testing.T) {
	env := newTestEnv(t, "1.0.0")
	env.manifest = `
versions:
  TESTING:
    package_version: "1.0.0"
    containers: []
`

	_, _, err := env.ctrl.ValidateConfig()
	if err == nil {
		t.Fatal("expected error for missing STABLE channel")
	}
}
