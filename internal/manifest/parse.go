package manifest

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"gopkg.in/yaml.v3"

	smerrors "github.com/noahnc/smartmonitoring-cli/internal/errors"
)

// httpClient is shared across fetches; cleanhttp gives us a client with its
// own non-shared Transport rather than reusing http.DefaultTransport.
var httpClient = cleanhttp.DefaultClient()

// fetchTimeout bounds how long a manifest fetch is allowed to take.
const fetchTimeout = 15 * time.Second

// LoadLocalConfig reads and validates the local config file from path.
func LoadLocalConfig(path string) (*LocalConfig, *smerrors.SmartMonitoringError) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, smerrors.ConfigNotFound(path)
		}
		return nil, smerrors.ConfigParse(path, err)
	}

	var envelope localConfigEnvelope
	if err := yaml.Unmarshal(data, &envelope); err != nil {
		return nil, smerrors.ConfigParse(path, err)
	}
	cfg := envelope.SmartMonitoringProxy
	cfg.applyDefaults()

	if verr := ValidateLocalConfig(&cfg); verr != nil {
		return nil, verr
	}
	return &cfg, nil
}

// FetchUpdateManifest retrieves the release manifest from url and returns
// the UpdateManifest entry for config's update channel.
func FetchUpdateManifest(url string, channel string) (*UpdateManifest, *smerrors.SmartMonitoringError) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, smerrors.ManifestFetch(url, err)
	}

	client := &http.Client{Transport: httpClient.Transport, Timeout: fetchTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, smerrors.ManifestFetch(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, smerrors.ManifestFetch(url, fmt.Errorf("unexpected status code %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, smerrors.ManifestFetch(url, err)
	}

	return parseReleaseManifest(body, url, channel)
}

func parseReleaseManifest(body []byte, url, channel string) (*UpdateManifest, *smerrors.SmartMonitoringError) {
	var release releaseManifest
	if err := yaml.Unmarshal(body, &release); err != nil {
		return nil, smerrors.ManifestParse(url, err)
	}

	m, ok := release.Versions[channel]
	if !ok {
		return nil, smerrors.ManifestChannel(channel)
	}

	if verr := ValidateManifest(&m); verr != nil {
		return nil, verr
	}
	return &m, nil
}
