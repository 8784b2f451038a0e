package sops

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/getsops/sops/v3/decrypt"
	"gopkg.in/yaml.v3"
)

// IsEncrypted checks if the provided YAML or JSON content carries a top-level `sops` metadata block
func IsEncrypted(data []byte) bool {
	var content map[string]any
	if err := yaml.Unmarshal(data, &content); err != nil {
		return false
	}
	_, hasSops := content["sops"]
	return hasSops
}

// FormatForFile maps a config file name onto a sops input format
func FormatForFile(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}

// DecryptConfig returns plain content unchanged, and decrypts sops-encrypted content
// using whatever key service (KMS, age, PGP) the file was encrypted for
func DecryptConfig(data []byte, format string) ([]byte, error) {
	if !IsEncrypted(data) {
		return data, nil
	}

	decrypted, err := decrypt.Data(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt SOPS-encrypted config: %w", err)
	}

	return decrypted, nil
}
