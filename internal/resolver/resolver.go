// Package resolver composes a container's final environment variables and
// bind mounts from the manifest's three-tier config and the host's local
// config, applying the fixed static < local_settings < secrets < dynamic
// overlay order.
package resolver

import (
	"fmt"

	smerrors "github.com/noahnc/smartmonitoring-cli/internal/errors"
	"github.com/noahnc/smartmonitoring-cli/internal/manifest"
	"github.com/noahnc/smartmonitoring-cli/internal/util"
)

// Resolved is the fully composed deployment input for a single container.
type Resolved struct {
	Env    map[string]string
	Mounts []manifest.MappedFile
}

// Resolve composes the env vars and bind mounts for container, given the
// host's local config and the previously minted dynamic secrets.
func Resolve(cfg *manifest.LocalConfig, container manifest.ContainerSpec, dynamicSecrets map[string]string) (*Resolved, *smerrors.SmartMonitoringError) {
	env, err := resolveEnv(cfg, container, dynamicSecrets)
	if err != nil {
		return nil, err
	}

	mounts, err := resolveMounts(cfg, container)
	if err != nil {
		return nil, err
	}

	return &Resolved{Env: env, Mounts: mounts}, nil
}

// ResolveEnvOnly composes a container's env vars without checking bind
// mount host paths, matching the original's validate_config_against_manifest
// call with check_files=False.
func ResolveEnvOnly(cfg *manifest.LocalConfig, container manifest.ContainerSpec, dynamicSecrets map[string]string) (map[string]string, *smerrors.SmartMonitoringError) {
	return resolveEnv(cfg, container, dynamicSecrets)
}

func resolveEnv(cfg *manifest.LocalConfig, container manifest.ContainerSpec, dynamicSecrets map[string]string) (map[string]string, *smerrors.SmartMonitoringError) {
	static := stringifyMap(container.Config.Static)

	localCfg, found := containerLocalConfig(cfg, container.Name)
	if !found && container.Config.Dynamic != nil {
		return nil, smerrors.ConfigValidation(
			fmt.Sprintf("container %q has dynamic config but no matching section in the local config", container.Name))
	}

	localSettings := map[string]string{}
	if found {
		if raw, ok := localCfg["local_settings"]; ok && raw != nil {
			if m, ok := raw.(map[string]interface{}); ok {
				localSettings = stringifyMap(m)
			}
		}
	}

	secretsEnv := map[string]string{}
	if container.Config.Secrets != nil {
		for envName, secretNameRaw := range container.Config.Secrets {
			secretName := fmt.Sprint(secretNameRaw)
			value, ok := dynamicSecrets[secretName]
			if !ok {
				return nil, smerrors.ManifestSecretNotMinted(container.Name, secretName)
			}
			if _, exists := secretsEnv[envName]; exists {
				return nil, smerrors.ManifestEnvConflict(container.Name, envName)
			}
			secretsEnv[envName] = value
		}
	}

	dynamicEnv := map[string]string{}
	if container.Config.Dynamic != nil {
		for envName, lookupKeyRaw := range container.Config.Dynamic {
			lookupKey := fmt.Sprint(lookupKeyRaw)
			value, ok := localCfg[lookupKey]
			if !ok || value == nil {
				return nil, smerrors.ConfigMissingValue(container.Name, lookupKey)
			}
			if _, exists := dynamicEnv[envName]; exists {
				return nil, smerrors.ManifestEnvConflict(container.Name, envName)
			}
			dynamicEnv[envName] = fmt.Sprint(value)
		}
	}

	return util.MergeEnv(static, localSettings, secretsEnv, dynamicEnv), nil
}

func resolveMounts(cfg *manifest.LocalConfig, container manifest.ContainerSpec) ([]manifest.MappedFile, *smerrors.SmartMonitoringError) {
	if len(container.Files) == 0 {
		return nil, nil
	}

	resolved := make([]manifest.MappedFile, 0, len(container.Files))
	for _, f := range container.Files {
		if !f.HostPathDynamic {
			if !util.Exists(f.HostPath) {
				return nil, smerrors.ManifestMountMissing(f.HostPath)
			}
			resolved = append(resolved, f)
			continue
		}

		localCfg, found := containerLocalConfig(cfg, container.Name)
		if !found {
			return nil, smerrors.ConfigMissingValue(container.Name, f.HostPath)
		}
		value, ok := localCfg[f.HostPath]
		if !ok || value == nil {
			return nil, smerrors.ConfigMissingValue(container.Name, f.HostPath)
		}
		hostPath := fmt.Sprint(value)
		if !util.Exists(hostPath) {
			return nil, smerrors.ConfigMissingMount(hostPath)
		}
		resolved = append(resolved, manifest.MappedFile{
			Name:            f.Name,
			HostPath:        hostPath,
			HostPathDynamic: true,
			ContainerPath:   f.ContainerPath,
		})
	}
	return resolved, nil
}

// containerLocalConfig returns the local config sub-document matching
// container's name, as a flat map mirroring the original's getattr+to_dict
// lookup. The manifest's container names are the fixed local-config section
// names (zabbix_proxy_container, zabbix_mysql_container,
// zabbix_agent_container).
func containerLocalConfig(cfg *manifest.LocalConfig, containerName string) (map[string]interface{}, bool) {
	switch containerName {
	case "zabbix_proxy_container":
		return map[string]interface{}{
			"proxy_name":     cfg.ZabbixProxyContainer.ProxyName,
			"psk_key_file":   cfg.ZabbixProxyContainer.PSKKeyFile,
			"local_settings": toInterfaceMap(cfg.ZabbixProxyContainer.LocalSettings),
		}, true
	case "zabbix_mysql_container":
		if cfg.ZabbixMysqlContainer == nil {
			return nil, false
		}
		return map[string]interface{}{
			"local_settings": toInterfaceMap(cfg.ZabbixMysqlContainer.LocalSettings),
		}, true
	case "zabbix_agent_container":
		if cfg.ZabbixAgentContainer == nil {
			return nil, false
		}
		return map[string]interface{}{
			"smartmonitoring_status_file": cfg.ZabbixAgentContainer.SmartMonitoringStatusFile,
			"local_settings":              toInterfaceMap(cfg.ZabbixAgentContainer.LocalSettings),
		}, true
	default:
		return nil, false
	}
}

func toInterfaceMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	return m
}

func stringifyMap(m map[string]interface{}) map[string]string {
	result := make(map[string]string, len(m))
	for k, v := range m {
		if v == nil {
			continue
		}
		result[k] = fmt.Sprint(v)
	}
	return result
}
