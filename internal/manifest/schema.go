package manifest

import (
	"fmt"

	smerrors "github.com/noahnc/smartmonitoring-cli/internal/errors"
)

// ValidateLocalConfig checks a parsed LocalConfig against the field
// constraints of the original Cerberus schema (update_channel, log file
// rotation limits, and the zabbix_*_container sub-documents).
func ValidateLocalConfig(c *LocalConfig) *smerrors.SmartMonitoringError {
	if c.UpdateChannel != ChannelStable && c.UpdateChannel != ChannelTesting {
		return smerrors.ConfigValidation(fmt.Sprintf(
			"update_channel must be one of [%s, %s], got %q", ChannelStable, ChannelTesting, c.UpdateChannel))
	}
	if c.LogFileSizeMB < 10 || c.LogFileSizeMB > 1000 {
		return smerrors.ConfigValidation(fmt.Sprintf(
			"log_file_size_mb must be between 10 and 1000, got %d", c.LogFileSizeMB))
	}
	if c.LogFileCount < 1 || c.LogFileCount > 10 {
		return smerrors.ConfigValidation(fmt.Sprintf(
			"log_file_count must be between 1 and 10, got %d", c.LogFileCount))
	}
	if c.UpdateManifestURL == "" {
		return smerrors.ConfigValidation("update_manifest_url is required")
	}
	if c.ZabbixProxyContainer.ProxyName == "" {
		return smerrors.ConfigValidation("zabbix_proxy_container.proxy_name is required")
	}
	if c.ZabbixProxyContainer.PSKKeyFile == "" {
		return smerrors.ConfigValidation("zabbix_proxy_container.psk_key_file is required")
	}
	if c.ZabbixAgentContainer != nil && c.ZabbixAgentContainer.SmartMonitoringStatusFile == "" {
		return smerrors.ConfigValidation("zabbix_agent_container.smartmonitoring_status_file is required")
	}
	return nil
}

// ValidateManifest checks a parsed UpdateManifest against the field
// constraints of the original Cerberus schema (package_version, per-container
// required fields, ports, and mapped files).
func ValidateManifest(m *UpdateManifest) *smerrors.SmartMonitoringError {
	if m.PackageVersion == "" {
		return smerrors.ManifestValidation("package_version is required")
	}
	if len(m.Containers) == 0 {
		return smerrors.ManifestValidation("containers list must not be empty")
	}

	seenSecrets := make(map[string]bool, len(m.DynamicSecrets))
	for _, s := range m.DynamicSecrets {
		if seenSecrets[s] {
			return smerrors.ManifestValidation(fmt.Sprintf("duplicate entry in dynamic_secrets: %q", s))
		}
		seenSecrets[s] = true
	}

	for _, c := range m.Containers {
		if err := validateContainerSpec(c); err != nil {
			return err
		}
	}
	return nil
}

func validateContainerSpec(c ContainerSpec) *smerrors.SmartMonitoringError {
	if c.Name == "" {
		return smerrors.ManifestValidation("container entry is missing required field \"name\"")
	}
	if c.Hostname == "" {
		return smerrors.ManifestValidation(fmt.Sprintf("container %q is missing required field \"hostname\"", c.Name))
	}
	if c.Image == "" {
		return smerrors.ManifestValidation(fmt.Sprintf("container %q is missing required field \"image\"", c.Name))
	}

	for _, f := range c.Files {
		if f.Name == "" || f.ContainerPath == "" {
			return smerrors.ManifestValidation(fmt.Sprintf(
				"container %q has a files entry missing required name/container_path", c.Name))
		}
		if !f.HostPathDynamic && f.HostPath == "" {
			return smerrors.ManifestValidation(fmt.Sprintf(
				"container %q has a non-dynamic files entry %q with no host_path", c.Name, f.Name))
		}
	}

	for _, p := range c.Ports {
		if p.HostPort < 1 || p.HostPort > 65535 {
			return smerrors.ManifestValidation(fmt.Sprintf(
				"container %q has a port entry with host_port %d out of range [1, 65535]", c.Name, p.HostPort))
		}
		if p.ContainerPort < 1 || p.ContainerPort > 65535 {
			return smerrors.ManifestValidation(fmt.Sprintf(
				"container %q has a port entry with container_port %d out of range [1, 65535]", c.Name, p.ContainerPort))
		}
		if p.Protocol != "tcp" && p.Protocol != "udp" {
			return smerrors.ManifestValidation(fmt.Sprintf(
				"container %q has a port entry with protocol %q, must be tcp or udp", c.Name, p.Protocol))
		}
	}
	return nil
}
