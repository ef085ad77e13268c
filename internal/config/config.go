package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/spf13/viper"

	"github.com/banton/outrender/internal/output"
)

const (
	configDirName  = ".outrender"
	configFileName = "config"
	configFileType = "yaml"

	defaultOutputMode = "table"
	defaultDelimiter  = "\t"
)

// Config keys.
const (
	KeyOutputMode        = "output_mode"
	KeyDelimiter         = "delimiter"
	KeyHeaders           = "headers"
	KeyPrettyJSON        = "pretty_json"
	KeyColumns           = "columns"
	KeyDisableTruncation = "disable_truncation"
	KeyColumnWidth       = "column_width"
	KeySuppressWarnings  = "suppress_warnings"
)

// Keys lists every key accepted by SetValue.
var Keys = []string{
	KeyOutputMode,
	KeyDelimiter,
	KeyHeaders,
	KeyPrettyJSON,
	KeyColumns,
	KeyDisableTruncation,
	KeyColumnWidth,
	KeySuppressWarnings,
}

// GetConfigDir returns the path to the config directory (~/.outrender).
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", configDirName)
	}
	return filepath.Join(home, configDirName)
}

// GetConfigPath returns the path to the config file (~/.outrender/config.yaml).
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), configFileName+"."+configFileType)
}

// Load initializes Viper, sets defaults, and reads the config file if it exists.
func Load() error {
	viper.SetDefault(KeyOutputMode, defaultOutputMode)
	viper.SetDefault(KeyDelimiter, defaultDelimiter)
	viper.SetDefault(KeyHeaders, true)
	viper.SetDefault(KeyPrettyJSON, false)
	viper.SetDefault(KeyColumns, "")
	viper.SetDefault(KeyDisableTruncation, false)
	viper.SetDefault(KeyColumnWidth, 0)
	viper.SetDefault(KeySuppressWarnings, false)

	viper.SetConfigName(configFileName)
	viper.SetConfigType(configFileType)
	viper.AddConfigPath(GetConfigDir())

	viper.SetEnvPrefix("OUTRENDER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Save writes the current Viper config to the config file,
// creating the directory if needed.
func Save() error {
	dir := GetConfigDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	return viper.WriteConfigAs(GetConfigPath())
}

// SetValue validates and sets a config key, then saves.
func SetValue(key, value string) error {
	if !slices.Contains(Keys, key) {
		return fmt.Errorf("unknown config key %q", key)
	}

	var v any = value
	switch key {
	case KeyOutputMode:
		if _, err := output.ParseMode(value); err != nil {
			return err
		}
	case KeyHeaders, KeyPrettyJSON, KeyDisableTruncation, KeySuppressWarnings:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false: %w", key, err)
		}
		v = b
	case KeyColumnWidth:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be a non-negative integer, got %q", key, value)
		}
		v = n
	}

	viper.Set(key, v)
	return Save()
}

// GetValue returns the string value for a config key.
func GetValue(key string) string {
	return viper.GetString(key)
}

// GetAllSettings returns all config settings as a map.
func GetAllSettings() map[string]any {
	return viper.AllSettings()
}

// RenderConfig builds the render configuration from the loaded settings.
func RenderConfig() (output.Config, error) {
	mode, err := output.ParseMode(viper.GetString(KeyOutputMode))
	if err != nil {
		return output.Config{}, fmt.Errorf("config %s: %w", KeyOutputMode, err)
	}
	return output.Config{
		Mode:              mode,
		Delimiter:         viper.GetString(KeyDelimiter),
		Headers:           viper.GetBool(KeyHeaders),
		PrettyJSON:        viper.GetBool(KeyPrettyJSON),
		Columns:           viper.GetString(KeyColumns),
		DisableTruncation: viper.GetBool(KeyDisableTruncation),
		ColumnWidth:       viper.GetInt(KeyColumnWidth),
		SuppressWarnings:  viper.GetBool(KeySuppressWarnings),
	}, nil
}
