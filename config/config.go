/*
 *    Copyright 2023 iFood
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package config

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
	"net/url"
	"os"
	"strings"
)

const (
	defaultPort           = 3000
	defaultMaxRequestSize = 52428800
	defaultTimeout        = 30
	defaultReportURL      = "https://www.virustotal.com/vtapi/v2/file/report"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type AppConfig struct {
	VirusTotal VirusTotal
	HTTPServer HTTPServer
	Log        Log
	Datadog    Datadog
}

type VirusTotal struct {
	APIkey  string
	BaseURL string
	// Timeout of a single report request, in seconds.
	Timeout int
	Verbose bool
}

type HTTPServer struct {
	AuthorizationKeys []string
	Profiler          bool
	Swagger           bool
	Metrics           bool
	MaxRequestSize    int
	Port              int
}

type Log struct {
	Debug bool
}

type Datadog struct {
	Tracer   bool
	Profiler bool
}

func NewConfig() *AppConfig {
	return &AppConfig{
		VirusTotal: VirusTotal{
			BaseURL: defaultReportURL,
			Timeout: defaultTimeout,
		},
		HTTPServer: HTTPServer{
			Port:           defaultPort,
			MaxRequestSize: defaultMaxRequestSize,
		},
	}
}

func validateConfig(config AppConfig) error {
	if config.VirusTotal.APIkey == "" {
		return fmt.Errorf("%w: no VirusTotal API key specified, set VIRUSTOTAL_APIKEY", ErrInvalidConfig)
	}

	if config.VirusTotal.Timeout <= 0 {
		return fmt.Errorf("%w: VirusTotal timeout must be positive, got %d", ErrInvalidConfig, config.VirusTotal.Timeout)
	}

	if _, err := url.ParseRequestURI(config.VirusTotal.BaseURL); err != nil {
		return fmt.Errorf("%w: invalid VirusTotal base url. %w", ErrInvalidConfig, err)
	}

	return nil
}

// LoadConfig searches config.yaml in the usual locations. A missing file is
// not an error, every key can also be set through the environment.
func LoadConfig() (AppConfig, error) {
	return load("")
}

// LoadConfigFile reads the given file, which must exist.
func LoadConfigFile(file string) (AppConfig, error) {
	return load(file)
}

// see supershal approach https://github.com/spf13/viper/issues/188
func load(file string) (AppConfig, error) {
	const keyDelimiter = "/"
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))

	// set default values in viper.
	// Viper needs to know if a key exists in order to override it.
	// https://github.com/spf13/viper/issues/188
	b, err := yaml.Marshal(NewConfig())
	if err != nil {
		return AppConfig{}, err
	}

	defaultConfig := bytes.NewReader(b)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(os.Getenv("CONFIG_DIR"))
		v.AddConfigPath("../resources/")
		v.AddConfigPath(".")
		v.AddConfigPath("/app/config/")
		v.SetConfigName("config")
	}

	v.SetConfigType("yaml")

	if err := v.MergeConfig(defaultConfig); err != nil {
		return AppConfig{}, err
	}

	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return AppConfig{}, fmt.Errorf("failed to read configuration. %w", err)
		}
	}

	// tell viper to overwrite env variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(keyDelimiter, "_"))
	// refresh configuration with all merged values
	config := AppConfig{}
	err = v.Unmarshal(&config)

	if err != nil {
		return AppConfig{}, err
	}

	err = validateConfig(config)
	if err != nil {
		return AppConfig{}, err
	}

	return config, nil
}
