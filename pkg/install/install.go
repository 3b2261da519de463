// Package install materializes the on-disk agent directory consumed by
// host-tool installer plugins: the config file, the private key file and the
// generated hook/guard scripts.
package install

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Elydora-Infrastructure/elydora-go/pkg/config"
	"github.com/Elydora-Infrastructure/elydora-go/pkg/crypto"
)

//go:embed templates/hook.js.tmpl templates/guard.js.tmpl
var templates embed.FS

// Fixed artifact names inside the agent directory.
const (
	KeyFileName   = "private.key"
	HookFileName  = "hook.js"
	GuardFileName = "guard.js"
)

// Artifacts lists the files written by Install. Installer plugins reference
// these paths when wiring third-party hook configurations.
type Artifacts struct {
	Dir        string
	ConfigPath string
	KeyPath    string
	HookPath   string
	GuardPath  string
	PublicKey  string
}

type scriptParams struct {
	AgentDir string
	AgentID  string
	BaseURL  string
}

// Install creates dir and writes the four agent artifacts. The seed is
// validated up front by deriving its public key; nothing is written if the
// seed is unusable. Config and key files are written 0600, scripts 0755.
func Install(dir string, cfg config.Config, seedB64 string) (*Artifacts, error) {
	pub, err := crypto.DerivePublicKey(seedB64)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create agent dir: %w", err)
	}

	a := &Artifacts{
		Dir:        dir,
		ConfigPath: filepath.Join(dir, config.FileName),
		KeyPath:    filepath.Join(dir, KeyFileName),
		HookPath:   filepath.Join(dir, HookFileName),
		GuardPath:  filepath.Join(dir, GuardFileName),
		PublicKey:  pub,
	}

	if err := cfg.Save(a.ConfigPath); err != nil {
		return nil, err
	}
	if err := os.WriteFile(a.KeyPath, []byte(seedB64), 0o600); err != nil {
		return nil, fmt.Errorf("write key file: %w", err)
	}

	params := scriptParams{AgentDir: dir, AgentID: cfg.AgentID, BaseURL: cfg.ResolveBaseURL()}
	if err := renderScript("templates/hook.js.tmpl", a.HookPath, params); err != nil {
		return nil, err
	}
	if err := renderScript("templates/guard.js.tmpl", a.GuardPath, params); err != nil {
		return nil, err
	}
	return a, nil
}

// ReadSeed loads the private key file back as the base64url seed string.
func ReadSeed(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, KeyFileName))
	if err != nil {
		return "", fmt.Errorf("read key file: %w", err)
	}
	return string(bytes.TrimSpace(data)), nil
}

// Uninstall removes the four artifacts and the directory if it is then empty.
func Uninstall(dir string) error {
	for _, name := range []string{config.FileName, KeyFileName, HookFileName, GuardFileName} {
		if err := os.Remove(filepath.Join(dir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", name, err)
		}
	}
	// Leave the directory in place if the operator parked other files there.
	if entries, err := os.ReadDir(dir); err == nil && len(entries) == 0 {
		return os.Remove(dir)
	}
	return nil
}

func renderScript(tmplName, dest string, params scriptParams) error {
	tmpl, err := template.ParseFS(templates, tmplName)
	if err != nil {
		return fmt.Errorf("parse %s: %w", tmplName, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params); err != nil {
		return fmt.Errorf("render %s: %w", tmplName, err)
	}
	if err := os.WriteFile(dest, buf.Bytes(), 0o755); err != nil { //nolint:gosec // scripts must be executable
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return nil
}
