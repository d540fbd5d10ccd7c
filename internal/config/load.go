package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// DefaultEnvFile is picked up from the working directory when present.
const DefaultEnvFile = ".env"

// Load reads the installer configuration from the process environment,
// optionally overlaid from an env-format file. Real environment variables
// take precedence over file values. The returned Config is fully validated;
// nothing else should read the environment after this point.
//
// An explicitly named envFile must exist. The default .env file is optional.
func Load(envFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("env")

	explicit := envFile != ""
	if !explicit {
		envFile = DefaultEnvFile
	}

	v.SetConfigFile(envFile)
	if err := v.ReadInConfig(); err != nil {
		if explicit || !isNotFound(err) {
			return nil, fmt.Errorf("failed to read env file %s: %w", envFile, err)
		}
	}

	v.AutomaticEnv()
	for _, key := range allKeys() {
		// AutomaticEnv only resolves keys viper has seen; bind each one
		// so variables absent from the file are still picked up.
		_ = v.BindEnv(key)
	}

	v.SetDefault(EnvNamespace, DefaultNamespace)
	v.SetDefault(EnvNodeVMSize, DefaultNodeVMSize)
	v.SetDefault(EnvPlatformVersion, DefaultPlatformVersion)
	v.SetDefault(EnvChartRepo, DefaultChartRepo)

	cfg := &Config{
		SubscriptionID:      strings.TrimSpace(v.GetString(EnvSubscriptionID)),
		TenantID:            strings.TrimSpace(v.GetString(EnvTenantID)),
		ResourceGroup:       strings.TrimSpace(v.GetString(EnvResourceGroup)),
		ClusterName:         strings.TrimSpace(v.GetString(EnvClusterName)),
		Domain:              strings.TrimSpace(v.GetString(EnvDomain)),
		Location:            strings.TrimSpace(v.GetString(EnvLocation)),
		RegistryName:        strings.TrimSpace(v.GetString(EnvRegistryName)),
		SetupManagedDNS:     v.GetBool(EnvSetupManagedDNS),
		NodeVMSize:          v.GetString(EnvNodeVMSize),
		PlatformVersion:     v.GetString(EnvPlatformVersion),
		Namespace:           v.GetString(EnvNamespace),
		ImagePullSecretFile: v.GetString(EnvImagePullSecretFile),
		IssuerEmail:         strings.TrimSpace(v.GetString(EnvIssuerEmail)),
		ChartRepo:           v.GetString(EnvChartRepo),
	}

	if cfg.IssuerEmail == "" && cfg.Domain != "" {
		cfg.IssuerEmail = "certificates@" + cfg.Domain
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.Timeouts = LoadTimeouts()

	return cfg, nil
}

// allKeys returns every environment key Load recognizes.
func allKeys() []string {
	return []string{
		EnvSubscriptionID,
		EnvTenantID,
		EnvResourceGroup,
		EnvClusterName,
		EnvDomain,
		EnvLocation,
		EnvRegistryName,
		EnvSetupManagedDNS,
		EnvNodeVMSize,
		EnvPlatformVersion,
		EnvNamespace,
		EnvImagePullSecretFile,
		EnvIssuerEmail,
		EnvChartRepo,
	}
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	var pathErr *os.PathError
	return errors.As(err, &pathErr) && errors.Is(err, fs.ErrNotExist)
}
