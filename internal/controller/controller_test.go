package controller

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const localConfigYAML = `
SmartMonitoring_Proxy:
  update_channel: STABLE
  update_manifest_url: %s
  zabbix_proxy_container:
    proxy_name: host01
    psk_key_file: /etc/smartmonitoring/proxy.psk
`

const releaseManifestYAML = `
versions:
  STABLE:
    package_version: %q
    containers:
      - name: zabbix_proxy_container
        hostname: zabbix-proxy
        image: zabbix/zabbix-proxy-mysql:latest
        privileged: false
        config:
          static:
            ZBX_PROXYMODE: "0"
`

// testEnv wires a Controller against a temp filesystem and a local HTTP
// server standing in for the update manifest URL.
type testEnv struct {
	t          *testing.T
	configFile string
	varDir     string
	server     *httptest.Server
	manifest   string // current response body served at /manifest.yaml
	runtime    *fakeRuntime
	ctrl       *Controller
}

func newTestEnv(t *testing.T, manifestVersion string) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		t:          t,
		configFile: filepath.Join(dir, "smartmonitoring_config.yaml"),
		varDir:     filepath.Join(dir, "var"),
		runtime:    newFakeRuntime(),
	}
	env.setManifestVersion(manifestVersion)
	env.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, env.manifest)
	}))

	configBody := fmt.Sprintf(localConfigYAML, env.server.URL+"/manifest.yaml")
	if err := os.WriteFile(env.configFile, []byte(configBody), 0o644); err != nil {
		t.Fatal(err)
	}

	origURLs := ConnectivityCheckURLs
	ConnectivityCheckURLs = []string{env.server.URL}
	t.Cleanup(func() {
		ConnectivityCheckURLs = origURLs
		env.server.Close()
	})

	env.ctrl = New(Paths{ConfigFile: env.configFile, VarDir: env.varDir}, "test-agent", env.runtime,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	return env
}

func (e *testEnv) setManifestVersion(version string) {
	e.manifest = fmt.Sprintf(releaseManifestYAML, version)
}
