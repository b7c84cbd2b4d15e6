package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/noahnc/smartmonitoring-cli/internal/manifest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(t.TempDir(), "1.0.0")
	s.now = func() time.Time { return time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC) }
	return s
}

func TestIsDeployed_NoStack(t *testing.T) {
	s := newTestStore(t)
	if s.IsDeployed() {
		t.Error("expected not deployed before any stack is saved")
	}
}

func TestSaveAndLoadInstalledStack(t *testing.T) {
	s := newTestStore(t)
	stack := InstalledStack{
		Config: manifest.LocalConfig{UpdateChannel: manifest.ChannelStable},
		Manifest: manifest.UpdateManifest{
			PackageVersion: "1.2.3",
			Containers:     []manifest.ContainerSpec{{Name: "zabbix_proxy_container"}},
		},
	}
	if err := s.SaveInstalledStack(stack); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.IsDeployed() {
		t.Error("expected deployed after saving stack")
	}

	loaded, err := s.LoadInstalledStack()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Manifest.PackageVersion != "1.2.3" {
		t.Errorf("expected package version 1.2.3, got %s", loaded.Manifest.PackageVersion)
	}
}

func TestSaveStatus_FreshDeploying(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveStatus(StatusDeploying, "", "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	status, err := s.LoadStatus()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Status != StatusDeploying {
		t.Errorf("expected Deploying, got %s", status.Status)
	}
	if status.LastUpdate != unsetField {
		t.Errorf("expected last_update unset on fresh Deploying, got %s", status.LastUpdate)
	}
	if status.DeploymentStart == "" {
		t.Error("expected deployment_start to be stamped")
	}
	if status.UpdateChannel != unsetField || status.PackageVersion != unsetField {
		t.Error("expected channel/version defaults of '-' on fresh file")
	}
}

func TestSaveStatus_DeployedAfterDeploying(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveStatus(StatusDeploying, "", "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.SaveStatus(StatusDeployed, manifest.ChannelStable, "1.0.0", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	status, err := s.LoadStatus()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Status != StatusDeployed {
		t.Errorf("expected Deployed, got %s", status.Status)
	}
	if status.LastUpdate == "" || status.LastUpdate == unsetField {
		t.Error("expected last_update to be stamped on Deployed")
	}
	if status.DeploymentStart != "" {
		t.Errorf("expected deployment_start cleared on Deployed, got %s", status.DeploymentStart)
	}
	if status.UpdateChannel != manifest.ChannelStable || status.PackageVersion != "1.0.0" {
		t.Error("expected channel/version to be set from explicit args")
	}
}

func TestSaveStatus_PreservesLastUpdateAcrossError(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveStatus(StatusDeployed, manifest.ChannelStable, "1.0.0", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	firstStatus, _ := s.LoadStatus()
	firstLastUpdate := firstStatus.LastUpdate

	if err := s.SaveStatus(StatusDeploymentError, "", "", "pull failed"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	status, err := s.LoadStatus()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.LastUpdate != firstLastUpdate {
		t.Errorf("expected last_update preserved, got %s want %s", status.LastUpdate, firstLastUpdate)
	}
	if status.ErrorMsg != "pull failed" {
		t.Errorf("expected error message preserved, got %s", status.ErrorMsg)
	}
	if status.PackageVersion != "1.0.0" {
		t.Error("expected package_version carried forward from prior save")
	}
}

func TestSaveStatus_InvalidStatus(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveStatus("Bogus", "", "", ""); err == nil {
		t.Fatal("expected error for invalid status value")
	}
}

func TestRemoveVarData(t *testing.T) {
	s := newTestStore(t)
	stack := InstalledStack{Manifest: manifest.UpdateManifest{PackageVersion: "1.0.0"}}
	if err := s.SaveInstalledStack(stack); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveStatus(StatusDeployed, "", "", ""); err != nil {
		t.Fatal(err)
	}

	if err := s.RemoveVarData(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.IsDeployed() {
		t.Error("expected stack file removed")
	}
}

func TestWriteJSONAtomic_CreatesParentDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "file.json")
	if err := writeJSONAtomic(path, map[string]string{"a": "b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
