// Package configurator deploys enterprise configuration alongside an
// install: tool settings, editor settings, TLS root certificates, and the
// environment variables that point tools at them. Certificates are copied
// only; the system trust store is never touched.
package configurator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"codeassist/internal/logger"
	"codeassist/internal/platform"
)

const (
	toolSettingsName   = "settings.json"
	editorSettingsName = "editor-settings.json"
	certsDirName       = "certs"

	// nodeCAVar points Node-based tools at the deployed enterprise root.
	nodeCAVar = "NODE_EXTRA_CA_CERTS"
)

// Deployer copies configuration from a source directory into the per-OS
// destinations resolved at startup.
type Deployer struct {
	// sourceDir holds settings.json, editor-settings.json, and certs/.
	sourceDir string

	paths     platform.Paths
	envWriter platform.EnvWriter
	log       logger.Logger
}

// NewDeployer constructs a Deployer reading from sourceDir.
func NewDeployer(sourceDir string, paths platform.Paths, envWriter platform.EnvWriter, log logger.Logger) *Deployer {
	return &Deployer{
		sourceDir: sourceDir,
		paths:     paths,
		envWriter: envWriter,
		log:       log,
	}
}

// DeployAll runs every deployment step in order. Missing source material is
// skipped, not an error; an enterprise bundle ships only what it needs.
func (d *Deployer) DeployAll() error {
	if err := d.DeployToolSettings(); err != nil {
		return err
	}
	if err := d.DeployEditorSettings(); err != nil {
		return err
	}
	if err := d.DeployCertificates(); err != nil {
		return err
	}
	return d.RegisterEnvironment()
}

// DeployToolSettings installs the tool settings file: copied when absent,
// shallow-merged with the deployed file winning when present.
func (d *Deployer) DeployToolSettings() error {
	return d.deploySettings(
		filepath.Join(d.sourceDir, toolSettingsName),
		filepath.Join(d.paths.ToolConfigDir, "settings.json"))
}

// DeployEditorSettings merges bundled editor settings into the user's editor
// settings file under the same rule.
func (d *Deployer) DeployEditorSettings() error {
	return d.deploySettings(
		filepath.Join(d.sourceDir, editorSettingsName),
		filepath.Join(d.paths.EditorSettingsDir, "settings.json"))
}

func (d *Deployer) deploySettings(src, dst string) error {
	data, err := os.ReadFile(src)
	if os.IsNotExist(err) {
		d.log.Debug("No settings bundle at %s, skipping", src)
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "failed to read settings: %s", src)
	}

	var source map[string]interface{}
	if err := json.Unmarshal(data, &source); err != nil {
		return errors.Wrapf(err, "failed to parse settings: %s", src)
	}

	merged := source
	if existing, err := os.ReadFile(dst); err == nil {
		var current map[string]interface{}
		if err := json.Unmarshal(existing, &current); err != nil {
			return errors.Wrapf(err, "failed to parse existing settings: %s", dst)
		}
		merged = mergeSettings(current, source)
	}

	out, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode merged settings")
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create settings directory: %s", filepath.Dir(dst))
	}
	if err := os.WriteFile(dst, append(out, '\n'), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write settings: %s", dst)
	}

	d.log.Debug("Deployed settings to %s", dst)
	return nil
}

// mergeSettings overlays source keys onto current. Top-level keys only; a
// key present in both takes the deployed value.
func mergeSettings(current, source map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(current)+len(source))
	for k, v := range current {
		merged[k] = v
	}
	for k, v := range source {
		merged[k] = v
	}
	return merged
}

// DeployCertificates copies bundled .crt files into the certificate
// directory. macOS resource-fork droppings ("._*") are skipped.
func (d *Deployer) DeployCertificates() error {
	srcDir := filepath.Join(d.sourceDir, certsDirName)
	entries, err := os.ReadDir(srcDir)
	if os.IsNotExist(err) {
		d.log.Debug("No certificate bundle at %s, skipping", srcDir)
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "failed to read certificate bundle: %s", srcDir)
	}

	if err := os.MkdirAll(d.paths.CertsDir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create certificate directory: %s", d.paths.CertsDir)
	}

	deployed := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "._") {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), ".crt") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(srcDir, name))
		if err != nil {
			return errors.Wrapf(err, "failed to read certificate: %s", name)
		}
		if err := os.WriteFile(filepath.Join(d.paths.CertsDir, name), data, 0o644); err != nil {
			return errors.Wrapf(err, "failed to write certificate: %s", name)
		}
		deployed++
	}

	d.log.Debug("Deployed %d certificate(s) to %s", deployed, d.paths.CertsDir)
	return nil
}

// RegisterEnvironment records environment state for installed tools: the
// managed bin directory on PATH and, when a root certificate is deployed,
// NODE_EXTRA_CA_CERTS pointing at it.
func (d *Deployer) RegisterEnvironment() error {
	snapshot := platform.EnvSnapshot{
		Vars:        map[string]string{},
		PathEntries: []string{d.paths.BinDir},
	}

	if cert := d.rootCertificate(); cert != "" {
		snapshot.Vars[nodeCAVar] = cert
	}

	result, err := d.envWriter.Apply(snapshot)
	if err != nil {
		return errors.Wrap(err, "failed to register environment variables")
	}

	for _, name := range result.Applied {
		d.log.Debug("Registered %s", name)
	}
	for name, reason := range result.Skipped {
		d.log.Info("Skipped %s: %s", name, reason)
	}

	return nil
}

// rootCertificate returns the deployed certificate NODE_EXTRA_CA_CERTS
// should reference: root.crt when present, otherwise the first certificate
// in name order.
func (d *Deployer) rootCertificate() string {
	entries, err := os.ReadDir(d.paths.CertsDir)
	if err != nil {
		return ""
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(name), ".crt") {
			continue
		}
		if name == "root.crt" {
			return filepath.Join(d.paths.CertsDir, name)
		}
		names = append(names, name)
	}

	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return filepath.Join(d.paths.CertsDir, names[0])
}
