package controller

import "testing"

func TestIsNewerVersion(t *testing.T) {
	cases := []struct {
		current, next string
		want           bool
	}{
		{"1.0.0", "1.1.0", true},
		{"1.1.0", "1.0.0", false},
		{"1.0.0", "1.0.0", false},
		{"1.0.0-rc1", "1.0.0", true},
	}
	for _, tc := range cases {
		got, err := isNewerVersion(tc.current, tc.next)
		if err != nil {
			t.Fatalf("unexpected error for %s -> %s: %v", tc.current, tc.next, err)
		}
		if got != tc.want {
			t.Errorf("isNewerVersion(%s, %s) = %v, want %v", tc.current, tc.next, got, tc.want)
		}
	}
}

func TestUpdate_SkippedWhenNotNewer(t *testing.T) {
	env := newTestEnv(t, "1.0.0")
	if err := env.ctrl.Deploy(t.Context()); err != nil {
		t.Fatalf("deploy failed: %v", err)
	}
	env.runtime.created = nil

	// manifest still serves 1.0.0, same as installed.
	if err := env.ctrl.Update(t.Context(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env.runtime.created) != 0 {
		t.Error("expected update to skip, no containers recreated")
	}
}

func TestUpdate_AppliesNewerVersion(t *testing.T) {
	env := newTestEnv(t, "1.0.0")
	if err := env.ctrl.Deploy(t.Context()); err != nil {
		t.Fatalf("deploy failed: %v", err)
	}
	env.runtime.created = nil
	env.setManifestVersion("2.0.0")

	if err := env.ctrl.Update(t.Context(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env.runtime.created) != 1 {
		t.Errorf("expected container recreated, got %v", env.runtime.created)
	}

	status, err := env.ctrl.store.LoadStatus()
	if err != nil {
		t.Fatalf("unexpected status load error: %v", err)
	}
	if status.PackageVersion != "2.0.0" {
		t.Errorf("expected version 2.0.0, got %s", status.PackageVersion)
	}
}

func TestUpdate_ForceAppliesSameVersion(t *testing.T) {
	env := newTestEnv(t, "1.0.0")
	if err := env.ctrl.Deploy(t.Context()); err != nil {
		t.Fatalf("deploy failed: %v", err)
	}
	env.runtime.created = nil

	if err := env.ctrl.Update(t.Context(), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env.runtime.created) != 1 {
		t.Errorf("expected forced update to recreate container, got %v", env.runtime.created)
	}
}
