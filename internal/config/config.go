// Package config defines the batch calculation file and includes functions
// for loading it and checking it for mistakes.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/toolhub/internal/cache"
	"github.com/iwvelando/toolhub/internal/logging"
	"github.com/iwvelando/toolhub/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds a batch of calculations and the settings to run them.
type Configuration struct {
	Logging   logging.Config `yaml:"logging,omitempty" mapstructure:"logging"`
	Output    OutputConfig   `yaml:"output,omitempty" mapstructure:"output"`
	Cache     cache.Config   `yaml:"cache,omitempty" mapstructure:"cache"`
	Loans     []Loan         `yaml:"loans,omitempty" mapstructure:"loans"`
	Mortgages []Mortgage     `yaml:"mortgages,omitempty" mapstructure:"mortgages"`
	Growth    []Growth       `yaml:"growth,omitempty" mapstructure:"growth"`
	Tips      []Tip          `yaml:"tips,omitempty" mapstructure:"tips"`
	Percents  []Percent      `yaml:"percentages,omitempty" mapstructure:"percentages"`
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format   string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv
	Schedule bool   `yaml:"schedule,omitempty" mapstructure:"schedule"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	// Environment overrides such as TOOLHUB_OUTPUT_FORMAT=csv only apply to
	// keys viper knows about, hence the defaults below.
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("output.schedule", false)
	v.SetDefault("cache.backend", constants.CacheBackendMemory)
	v.SetDefault("cache.ttl", constants.DefaultCacheTTL)
	v.SetDefault("cache.cleanupInterval", constants.DefaultCacheCleanupInterval)
	v.SetDefault("cache.redis.address", constants.DefaultRedisAddress)
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	configuration.assignNames()
	return &configuration, nil
}

// Count returns the number of calculations in the configuration.
func (conf *Configuration) Count() int {
	return len(conf.Loans) + len(conf.Mortgages) + len(conf.Growth) + len(conf.Tips) + len(conf.Percents)
}

// assignNames gives unnamed entries a positional name such as "loan 2".
func (conf *Configuration) assignNames() {
	for i := range conf.Loans {
		if strings.TrimSpace(conf.Loans[i].Name) == "" {
			conf.Loans[i].Name = fmt.Sprintf("loan %d", i+1)
		}
	}
	for i := range conf.Mortgages {
		if strings.TrimSpace(conf.Mortgages[i].Name) == "" {
			conf.Mortgages[i].Name = fmt.Sprintf("mortgage %d", i+1)
		}
	}
	for i := range conf.Growth {
		if strings.TrimSpace(conf.Growth[i].Name) == "" {
			conf.Growth[i].Name = fmt.Sprintf("growth %d", i+1)
		}
	}
	for i := range conf.Tips {
		if strings.TrimSpace(conf.Tips[i].Name) == "" {
			conf.Tips[i].Name = fmt.Sprintf("tip %d", i+1)
		}
	}
	for i := range conf.Percents {
		if strings.TrimSpace(conf.Percents[i].Name) == "" {
			conf.Percents[i].Name = fmt.Sprintf("percentage %d", i+1)
		}
	}
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Input errors of individual calculations, including an
// unknown compounding frequency, are reported once when they run.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if conf.Count() == 0 {
		warnings = append(warnings, "Configuration contains no calculations")
	}

	warnings = append(warnings, duplicateNames("loan", loanNames(conf.Loans))...)
	warnings = append(warnings, duplicateNames("mortgage", mortgageNames(conf.Mortgages))...)
	warnings = append(warnings, duplicateNames("growth projection", growthNames(conf.Growth))...)
	warnings = append(warnings, duplicateNames("tip", tipNames(conf.Tips))...)
	warnings = append(warnings, duplicateNames("percentage", percentNames(conf.Percents))...)

	return warnings
}

func duplicateNames(kind string, names []string) []string {
	var warnings []string
	seen := make(map[string]int)
	for _, name := range names {
		seen[name]++
		if seen[name] == 2 {
			warnings = append(warnings, fmt.Sprintf("Duplicate %s name '%s'", kind, name))
		}
	}
	return warnings
}
