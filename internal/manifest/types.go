// Package manifest defines the local configuration and update manifest data
// model, and loads, validates and fetches both from disk and from the
// update server.
package manifest

// LocalConfig is the host-resident configuration file
// (smartmonitoring_config.yaml) that describes how this host wants its
// SmartMonitoring stack configured.
type LocalConfig struct {
	UpdateChannel       string                `yaml:"update_channel"`
	DebugLogging        bool                  `yaml:"debug_logging"`
	LogFileSizeMB       int                   `yaml:"log_file_size_mb"`
	LogFileCount        int                   `yaml:"log_file_count"`
	UpdateManifestURL   string                `yaml:"update_manifest_url"`
	ZabbixProxyContainer ZabbixProxyContainer  `yaml:"zabbix_proxy_container"`
	ZabbixMysqlContainer *ZabbixMysqlContainer `yaml:"zabbix_mysql_container,omitempty"`
	ZabbixAgentContainer *ZabbixAgentContainer `yaml:"zabbix_agent_container,omitempty"`
}

// localConfigEnvelope is the on-disk wire format of the local config file:
// a single config wrapped under the fixed top-level key
// SmartMonitoring_Proxy. The release manifest has no such wrapper.
type localConfigEnvelope struct {
	SmartMonitoringProxy LocalConfig `yaml:"SmartMonitoring_Proxy"`
}

// ZabbixProxyContainer carries per-host overrides required for the proxy
// container. Required in every local config.
type ZabbixProxyContainer struct {
	ProxyName      string                 `yaml:"proxy_name"`
	PSKKeyFile     string                 `yaml:"psk_key_file"`
	LocalSettings  map[string]interface{} `yaml:"local_settings,omitempty"`
}

// ZabbixMysqlContainer carries per-host overrides for the optional MySQL
// backing container.
type ZabbixMysqlContainer struct {
	LocalSettings map[string]interface{} `yaml:"local_settings,omitempty"`
}

// ZabbixAgentContainer carries per-host overrides for the optional local
// agent container that self-monitors this host.
type ZabbixAgentContainer struct {
	SmartMonitoringStatusFile string                 `yaml:"smartmonitoring_status_file"`
	LocalSettings             map[string]interface{} `yaml:"local_settings,omitempty"`
}

// UpdateManifest describes one version of the deployable SmartMonitoring
// stack: the set of containers to run and how to configure them.
type UpdateManifest struct {
	PackageVersion string          `yaml:"package_version"`
	DynamicSecrets []string        `yaml:"dynamic_secrets,omitempty"`
	Containers     []ContainerSpec `yaml:"containers"`
}

// ContainerSpec describes a single container the manifest wants deployed.
type ContainerSpec struct {
	Name       string       `yaml:"name"`
	Hostname   string       `yaml:"hostname"`
	Image      string       `yaml:"image"`
	Privileged bool         `yaml:"privileged"`
	Files      []MappedFile `yaml:"files,omitempty"`
	Ports      []Port       `yaml:"ports,omitempty"`
	Config     Config       `yaml:"config"`
}

// Config is the three-tier environment variable overlay a container is
// composed from. The resolver applies these, plus minted secrets, in the
// fixed order: static, local_settings, secrets, dynamic.
type Config struct {
	Static  map[string]interface{} `yaml:"static,omitempty"`
	Dynamic map[string]interface{} `yaml:"dynamic,omitempty"`
	Secrets map[string]interface{} `yaml:"secrets,omitempty"`
}

// MappedFile describes a bind mount between the host and a container.
type MappedFile struct {
	Name             string `yaml:"name"`
	HostPath         string `yaml:"host_path"`
	HostPathDynamic  bool   `yaml:"host_path_dynamic"`
	ContainerPath    string `yaml:"container_path"`
}

// Port describes a published port mapping for a container.
type Port struct {
	HostPort      int    `yaml:"host_port"`
	ContainerPort int    `yaml:"container_port"`
	Protocol      string `yaml:"protocol"`
}

// updateChannel values accepted by LocalConfig.UpdateChannel.
const (
	ChannelStable  = "STABLE"
	ChannelTesting = "TESTING"
)

// Default values applied to a local config that omits optional fields,
// grounded in the original's ConfigDefaults.
const (
	DefaultLogFileSizeMB = 50
	DefaultLogFileCount  = 3
	DefaultDebugLogging  = false
	DefaultUpdateChannel = ChannelStable
)

// applyDefaults fills in zero-valued optional fields of a freshly parsed
// LocalConfig with the package defaults.
func (c *LocalConfig) applyDefaults() {
	if c.UpdateChannel == "" {
		c.UpdateChannel = DefaultUpdateChannel
	}
	if c.LogFileSizeMB == 0 {
		c.LogFileSizeMB = DefaultLogFileSizeMB
	}
	if c.LogFileCount == 0 {
		c.LogFileCount = DefaultLogFileCount
	}
}

// releaseManifest is the wire format served by the update manifest URL: a
// per-channel map of UpdateManifest, with no enclosing wrapper key.
type releaseManifest struct {
	Versions map[string]UpdateManifest `yaml:"versions"`
}
