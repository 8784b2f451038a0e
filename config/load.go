package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/GlintPay/storefront/sops"
	"github.com/GlintPay/storefront/utils"
	"github.com/caarlos0/env/v6"
	"github.com/rs/zerolog/log"
	"sigs.k8s.io/yaml"
)

// Load reads the YAML application config (decrypting it first if it is sops-encrypted), overlays
// any environment variables, and applies defaults. A missing file is not an error.
func Load(envConfig Configuration) (ApplicationConfiguration, error) {
	appConfig := ApplicationConfiguration{}

	if err := readConfigFile(envConfig.ApplicationConfigFileYmlPath, &appConfig); err != nil {
		return appConfig, err
	}

	if err := env.Parse(&appConfig); err != nil {
		return appConfig, fmt.Errorf("environment overrides: %w", err)
	}

	appConfig.ApplyDefaults()

	switch appConfig.Persistence.WriteMode {
	case WriteModeFirst, WriteModeAll:
	default:
		return appConfig, fmt.Errorf("unknown persistence.writeMode %q", appConfig.Persistence.WriteMode)
	}

	return appConfig, nil
}

func readConfigFile(filePath string, config *ApplicationConfiguration) error {
	yamlFile, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info().Msgf("No config file found: %s", utils.FriendlyFileName(filePath))
		return nil
	} else if err != nil {
		return err
	}

	log.Debug().Msgf("Loading YAML config from %s", utils.FriendlyFileName(filePath))

	yamlFile, err = sops.DecryptConfig(yamlFile, sops.FormatForFile(filePath))
	if err != nil {
		return err
	}

	if err = yaml.Unmarshal(yamlFile, config); err != nil {
		return fmt.Errorf("unmarshal %s: %w", utils.FriendlyFileName(filePath), err)
	}
	return nil
}
