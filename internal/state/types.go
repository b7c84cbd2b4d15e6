// Package state persists the deployment's status and installed stack to
// disk, and implements the deployment lock the controller uses to prevent
// concurrent transitions.
package state

import (
	"github.com/noahnc/smartmonitoring-cli/internal/manifest"
)

// Status is the persisted deployment status record.
type Status struct {
	Status                 string `json:"status"`
	ErrorMsg               string `json:"error_msg"`
	AgentVersion           string `json:"smartmonitoring_version"`
	UpdateChannel          string `json:"update_channel"`
	PackageVersion         string `json:"package_version"`
	LastUpdate             string `json:"last_update"`
	DeploymentStart        string `json:"deployment_start,omitempty"`
}

// Status values accepted by Store.SaveStatus, per the status file schema.
const (
	StatusDeployed        = "Deployed"
	StatusDeploying       = "Deploying"
	StatusDeploymentError = "DeploymentError"
)

// unsetField is the placeholder written for fields that have no value yet,
// matching the original's "-" sentinel.
const unsetField = "-"

// InstalledStack is the persisted snapshot of the config and manifest that
// are currently deployed, the combination replace() treats as the
// rollback target on failure.
type InstalledStack struct {
	Config   manifest.LocalConfig   `json:"config"`
	Manifest manifest.UpdateManifest `json:"manifest"`
}
