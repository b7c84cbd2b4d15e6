package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestSmartMonitoringError_Error(t *testing.T) {
	err := ConfigNotFound("/etc/smartmonitoring/smartmonitoring_config.yaml")

	if !strings.Contains(err.Error(), "[config/CONFIG_NOT_FOUND]") {
		t.Errorf("unexpected error string: %q", err.Error())
	}
}

func TestSmartMonitoringError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := ManifestFetch("http://example/manifest.yaml", cause)

	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestSmartMonitoringError_Verbose(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := RuntimeUnavailable(cause)

	verbose := err.Verbose()
	if !strings.Contains(verbose, "cannot reach the container runtime") {
		t.Error("should contain message")
	}
	if !strings.Contains(verbose, "dial tcp: connection refused") {
		t.Error("should contain cause chain")
	}
}

func TestSmartMonitoringError_WithContext(t *testing.T) {
	err := ConfigValidation("bad channel").
		WithContext("key1", "value1").
		WithContext("key2", "value2")

	if err.Context["key1"] != "value1" || err.Context["key2"] != "value2" {
		t.Error("context not set")
	}
}

func TestIs(t *testing.T) {
	err := ConfigNotFound("/etc/smartmonitoring/smartmonitoring_config.yaml")

	if !Is(err, CodeConfigNotFound) {
		t.Error("should match code")
	}
	if Is(err, CodeManifestFetch) {
		t.Error("should not match a different code")
	}
	if Is(errors.New("other"), CodeConfigNotFound) {
		t.Error("should not match a plain error")
	}
}

func TestGetCategory(t *testing.T) {
	err := ManifestChannel("TESTING")

	if GetCategory(err) != CategoryManifest {
		t.Errorf("wrong category: %v", GetCategory(err))
	}
	if GetCategory(errors.New("other")) != "" {
		t.Error("should return empty for a plain error")
	}
}

func TestAs(t *testing.T) {
	smErr := ImagesUnavailable([]string{"zabbix/zabbix-proxy:latest"})

	result, ok := As(smErr)
	if !ok || result != smErr {
		t.Error("should extract the same error")
	}

	if _, ok := As(errors.New("other")); ok {
		t.Error("should return false for a plain error")
	}
}

func TestTaxonomyConstructors(t *testing.T) {
	t.Run("ConfigMissingValue", func(t *testing.T) {
		err := ConfigMissingValue("zabbix_proxy_container", "proxy_name")
		if err.Category != CategoryConfig {
			t.Errorf("wrong category: %v", err.Category)
		}
		if err.Context["key"] != "proxy_name" {
			t.Error("key context not set")
		}
	})

	t.Run("ManifestSecretNotMinted", func(t *testing.T) {
		err := ManifestSecretNotMinted("proxy", "db_password")
		if err.Code != CodeManifestSecret {
			t.Errorf("wrong code: %s", err.Code)
		}
	})

	t.Run("ManifestEnvConflict", func(t *testing.T) {
		err := ManifestEnvConflict("proxy", "DB_PASSWORD")
		if err.Context["env"] != "DB_PASSWORD" {
			t.Error("env context not set")
		}
	})

	t.Run("ImagesUnavailable", func(t *testing.T) {
		err := ImagesUnavailable([]string{"a:1", "b:2"})
		if !strings.Contains(err.Message, "a:1") || !strings.Contains(err.Message, "b:2") {
			t.Error("missing images not listed in message")
		}
	})

	t.Run("ContainerCreate", func(t *testing.T) {
		cause := errors.New("port already allocated")
		err := ContainerCreate("zabbix_proxy", cause)
		if err.Cause != cause {
			t.Error("cause not set")
		}
		if err.Context["container"] != "zabbix_proxy" {
			t.Error("container context not set")
		}
	})

	t.Run("DeploymentInProgress", func(t *testing.T) {
		err := DeploymentInProgress("2026-07-31 10:00:00")
		if err.Code != CodeDeploymentInFlight {
			t.Errorf("wrong code: %s", err.Code)
		}
	})

	t.Run("Internal", func(t *testing.T) {
		cause := errors.New("bug")
		err := Internal("unreachable state", cause)
		if err.Category != CategoryInternal {
			t.Error("wrong category")
		}
	})
}

func TestErrorsAsCompatibility(t *testing.T) {
	smErr := ConfigNotFound("/etc/smartmonitoring/smartmonitoring_config.yaml")
	wrapped := wrap(smErr, CategoryInternal, CodeInternal, "higher level error")

	var target *SmartMonitoringError
	if !errors.As(wrapped, &target) {
		t.Error("should extract SmartMonitoringError with errors.As")
	}
}
