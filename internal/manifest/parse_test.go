package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleLocalConfig = `
SmartMonitoring_Proxy:
  update_channel: STABLE
  debug_logging: true
  log_file_size_mb: 100
  log_file_count: 5
  update_manifest_url: https://updates.example.com/manifest.yaml
  zabbix_proxy_container:
    proxy_name: host01
    psk_key_file: /etc/smartmonitoring/proxy.psk
`

func TestLoadLocalConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "smartmonitoring_config.yaml")
	if err := os.WriteFile(path, []byte(sampleLocalConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadLocalConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.UpdateChannel != ChannelStable {
		t.Errorf("expected channel STABLE, got %s", cfg.UpdateChannel)
	}
	if cfg.ZabbixProxyContainer.ProxyName != "host01" {
		t.Errorf("expected proxy_name host01, got %s", cfg.ZabbixProxyContainer.ProxyName)
	}
}

func TestLoadLocalConfig_AppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "smartmonitoring_config.yaml")
	minimal := `
SmartMonitoring_Proxy:
  update_manifest_url: https://updates.example.com/manifest.yaml
  zabbix_proxy_container:
    proxy_name: host01
    psk_key_file: /etc/smartmonitoring/proxy.psk
`
	if err := os.WriteFile(path, []byte(minimal), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadLocalConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.UpdateChannel != DefaultUpdateChannel {
		t.Errorf("expected default channel, got %s", cfg.UpdateChannel)
	}
	if cfg.LogFileSizeMB != DefaultLogFileSizeMB {
		t.Errorf("expected default log file size, got %d", cfg.LogFileSizeMB)
	}
	if cfg.LogFileCount != DefaultLogFileCount {
		t.Errorf("expected default log file count, got %d", cfg.LogFileCount)
	}
}

func TestLoadLocalConfig_NotFound(t *testing.T) {
	_, err := LoadLocalConfig("/nonexistent/path/smartmonitoring_config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if err.Code != "CONFIG_NOT_FOUND" {
		t.Errorf("expected CONFIG_NOT_FOUND, got %s", err.Code)
	}
}

func TestLoadLocalConfig_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "smartmonitoring_config.yaml")
	if err := os.WriteFile(path, []byte("not: valid: yaml: at: all:"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadLocalConfig(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
}

const sampleReleaseManifest = `
versions:
  STABLE:
    package_version: "1.0.0"
    containers:
      - name: zabbix-proxy
        hostname: zabbix-proxy
        image: zabbix/zabbix-proxy-mysql:latest
        privileged: false
        config:
          static:
            ZBX_PROXYMODE: "0"
  TESTING:
    package_version: "1.1.0-rc1"
    containers:
      - name: zabbix-proxy
        hostname: zabbix-proxy
        image: zabbix/zabbix-proxy-mysql:testing
        privileged: false
        config:
          static:
            ZBX_PROXYMODE: "0"
`

func TestParseReleaseManifest_SelectsChannel(t *testing.T) {
	m, err := parseReleaseManifest([]byte(sampleReleaseManifest), "https://updates.example.com/manifest.yaml", ChannelStable)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.PackageVersion != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %s", m.PackageVersion)
	}

	m, err = parseReleaseManifest([]byte(sampleReleaseManifest), "https://updates.example.com/manifest.yaml", ChannelTesting)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.PackageVersion != "1.1.0-rc1" {
		t.Errorf("expected version 1.1.0-rc1, got %s", m.PackageVersion)
	}
}

func TestParseReleaseManifest_UnknownChannel(t *testing.T) {
	_, err := parseReleaseManifest([]byte(sampleReleaseManifest), "https://updates.example.com/manifest.yaml", "NIGHTLY")
	if err == nil {
		t.Fatal("expected error for unknown channel")
	}
	if err.Code != "MANIFEST_CHANNEL" {
		t.Errorf("expected MANIFEST_CHANNEL, got %s", err.Code)
	}
}
