package state

import "github.com/noahnc/smartmonitoring-cli/internal/util"

// Label prefix and schema version for containers this agent manages.
// Containers are tagged with these labels at creation so the controller
// can reconcile the runtime's actual state against the installed stack
// before each operation.
const (
	LabelPrefix        = "io.smartmonitoring.agent"
	LabelSchemaVersion = "1"
)

// Labels applied to every container this agent creates.
const (
	// LabelSchema identifies the label schema version.
	LabelSchema = LabelPrefix + ".schema.version"

	// LabelManaged marks a container as managed by this agent.
	LabelManaged = LabelPrefix + ".managed"

	// LabelContainerName is the manifest's container name (e.g.
	// zabbix_proxy_container), distinct from the runtime-assigned name.
	LabelContainerName = LabelPrefix + ".container.name"

	// LabelPackageVersion is the package_version of the manifest this
	// container was deployed from.
	LabelPackageVersion = LabelPrefix + ".package.version"
)

// ManagedLabels returns the fixed label set stamped onto every container
// this agent creates, merged with the per-container identity labels.
func ManagedLabels(containerName, packageVersion string) map[string]string {
	return map[string]string{
		LabelSchema:         LabelSchemaVersion,
		LabelManaged:        util.BoolToString(true),
		LabelContainerName:  containerName,
		LabelPackageVersion: packageVersion,
	}
}
