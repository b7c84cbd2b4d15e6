package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	smerrors "github.com/noahnc/smartmonitoring-cli/internal/errors"
)

// timeLayout matches the original's strftime format exactly, so existing
// status files written by a prior install remain readable.
const timeLayout = "2006-01-02 15:04:05"

// Store persists Status and InstalledStack to the var directory.
type Store struct {
	stackFile  string
	statusFile string
	lockFile   string

	// agentVersion is stamped into every status write.
	agentVersion string

	// now is overridable in tests.
	now func() time.Time
}

// NewStore creates a Store rooted at varDir, with stack/status files named
// per the original's const_settings file name scheme.
func NewStore(varDir, agentVersion string) *Store {
	return &Store{
		stackFile:    filepath.Join(varDir, "installed_stack.json"),
		statusFile:   filepath.Join(varDir, "status.json"),
		lockFile:     filepath.Join(varDir, "deployment.lock"),
		agentVersion: agentVersion,
		now:          time.Now,
	}
}

// IsDeployed reports whether an installed stack is currently on disk.
func (s *Store) IsDeployed() bool {
	_, err := os.Stat(s.stackFile)
	return err == nil
}

// SaveInstalledStack persists the config+manifest pair that is now deployed.
func (s *Store) SaveInstalledStack(stack InstalledStack) *smerrors.SmartMonitoringError {
	if err := writeJSONAtomic(s.stackFile, stack); err != nil {
		return smerrors.Internal("failed to save installed stack", err)
	}
	return nil
}

// LoadInstalledStack reads the persisted config+manifest pair. A missing
// or corrupt file is reported as StackCorrupt, since the caller has
// already checked IsDeployed.
func (s *Store) LoadInstalledStack() (*InstalledStack, *smerrors.SmartMonitoringError) {
	var stack InstalledStack
	if err := readJSON(s.stackFile, &stack); err != nil {
		return nil, smerrors.StackCorrupt(s.stackFile, err)
	}
	return &stack, nil
}

// RemoveVarData deletes the stack and status files, used by undeploy.
func (s *Store) RemoveVarData() *smerrors.SmartMonitoringError {
	if err := removeIfExists(s.stackFile); err != nil {
		return smerrors.Internal("failed to remove installed stack file", err)
	}
	if err := removeIfExists(s.statusFile); err != nil {
		return smerrors.Internal("failed to remove status file", err)
	}
	return nil
}

// SaveStatus writes the status file, following the original's exact
// merge semantics: a fresh write fills unset fields with "-"; an update
// over an existing file carries forward last_update/package_version/
// update_channel unless explicitly overridden, and only stamps
// deployment_start when transitioning into Deploying.
func (s *Store) SaveStatus(status string, updateChannel, packageVersion, errorMsg string) *smerrors.SmartMonitoringError {
	if status != StatusDeployed && status != StatusDeploying && status != StatusDeploymentError {
		return smerrors.Internal("invalid status value: "+status, nil)
	}
	if errorMsg == "" {
		errorMsg = unsetField
	}

	existing, loadErr := s.LoadStatus()

	data := Status{
		Status:       status,
		ErrorMsg:     errorMsg,
		AgentVersion: s.agentVersion,
	}

	if loadErr != nil {
		// No status file yet (or it's unreadable, treated as absent).
		data.UpdateChannel = orDefault(updateChannel, unsetField)
		data.PackageVersion = orDefault(packageVersion, unsetField)
		switch status {
		case StatusDeployed:
			data.LastUpdate = s.now().Format(timeLayout)
		case StatusDeploying:
			data.LastUpdate = unsetField
			data.DeploymentStart = s.now().Format(timeLayout)
		default:
			data.LastUpdate = unsetField
		}
	} else {
		data.UpdateChannel = orDefault(updateChannel, existing.UpdateChannel)
		data.PackageVersion = orDefault(packageVersion, existing.PackageVersion)
		switch status {
		case StatusDeployed:
			data.LastUpdate = s.now().Format(timeLayout)
			data.DeploymentStart = ""
		case StatusDeploying:
			data.LastUpdate = existing.LastUpdate
			data.DeploymentStart = s.now().Format(timeLayout)
		default:
			data.LastUpdate = existing.LastUpdate
			data.DeploymentStart = existing.DeploymentStart
		}
	}

	if err := writeJSONAtomic(s.statusFile, data); err != nil {
		return smerrors.Internal("failed to save status", err)
	}
	return nil
}

// LoadStatus reads the status file. Returns an error if it does not exist
// or cannot be parsed.
func (s *Store) LoadStatus() (*Status, *smerrors.SmartMonitoringError) {
	var status Status
	if err := readJSON(s.statusFile, &status); err != nil {
		return nil, smerrors.Internal("failed to read status file", err)
	}
	return &status, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func writeJSONAtomic(path string, data interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "    ")
	if err := enc.Encode(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, path)
}

func readJSON(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func removeIfExists(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
