// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
)

// Config holds the full application configuration.
type Config struct {
	Standardizer StandardizerConfig `yaml:"standardizer" mapstructure:"standardizer"`
	DBCreds      DBCreds            `yaml:"db_creds" mapstructure:"db_creds"`
	Server       ServerConfig       `yaml:"server" mapstructure:"server"`
	Batch        BatchConfig        `yaml:"batch" mapstructure:"batch"`
	Log          LogConfig          `yaml:"log" mapstructure:"log"`
}

// StandardizerConfig configures the address pipeline.
type StandardizerConfig struct {
	DictionaryPath    string `yaml:"dictionary_path" mapstructure:"dictionary_path"` // empty = embedded reference dictionary
	MaxRangeExpansion int    `yaml:"max_range_expansion" mapstructure:"max_range_expansion"`
	StrictRanges      bool   `yaml:"strict_ranges" mapstructure:"strict_ranges"`
}

// DBCreds holds the Postgres connection settings and table names.
type DBCreds struct {
	Host        string `yaml:"host" mapstructure:"host"`
	Port        string `yaml:"port" mapstructure:"port"`
	Username    string `yaml:"username" mapstructure:"username"`
	Password    string `yaml:"password" mapstructure:"password"`
	Database    string `yaml:"database" mapstructure:"database"`
	SourceTable string `yaml:"source_table" mapstructure:"source_table"`
	KeysTable   string `yaml:"keys_table" mapstructure:"keys_table"`
	RunsTable   string `yaml:"runs_table" mapstructure:"runs_table"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// BatchConfig configures bulk key generation.
type BatchConfig struct {
	Workers   int `yaml:"workers" mapstructure:"workers"`
	BatchSize int `yaml:"batch_size" mapstructure:"batch_size"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// LoadConfig loads the configuration from a YAML file and ADDRESSKEY_* environment
// variables. With an empty path, config.yaml in the working directory is used
// if present.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("ADDRESSKEY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("standardizer.dictionary_path", "")
	v.SetDefault("standardizer.max_range_expansion", 1000)
	v.SetDefault("standardizer.strict_ranges", false)
	v.SetDefault("db_creds.host", "localhost")
	v.SetDefault("db_creds.port", "5432")
	v.SetDefault("db_creds.username", "postgres")
	v.SetDefault("db_creds.password", "")
	v.SetDefault("db_creds.database", "postgres")
	v.SetDefault("db_creds.source_table", "addresses")
	v.SetDefault("db_creds.keys_table", "address_keys")
	v.SetDefault("db_creds.runs_table", "runs")
	v.SetDefault("server.port", 8080)
	v.SetDefault("batch.workers", 10)
	v.SetDefault("batch.batch_size", 1000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configPath != "" {
			return nil, eris.Wrap(err, "config: unable to read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unable to unmarshal config file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Standardizer.MaxRangeExpansion < 1 {
		return eris.Errorf("config: standardizer.max_range_expansion must be positive (got %d)", c.Standardizer.MaxRangeExpansion)
	}
	if c.Batch.Workers < 1 {
		return eris.Errorf("config: batch.workers must be positive (got %d)", c.Batch.Workers)
	}
	if c.Batch.BatchSize < 1 {
		return eris.Errorf("config: batch.batch_size must be positive (got %d)", c.Batch.BatchSize)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return eris.Errorf("config: server.port out of range (got %d)", c.Server.Port)
	}
	return nil
}
