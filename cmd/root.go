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

package cmd

import (
	"context"
	"fmt"
	"github.com/spf13/cobra"
	"os"
	"os/signal"
	"syscall"
	"vtreport/config"
)

const (
	flagConfig  = "config"
	flagVerbose = "verbose"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vtreport",
		Short: "Look up VirusTotal file reports",
		Long: `vtreport fetches the VirusTotal file report of a hash, a scan id or a local file.

Files are only hashed locally, their content is never uploaded.
The API key is read from the configuration file or from VIRUSTOTAL_APIKEY.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP(flagConfig, "c", "", "Configuration file, config.yaml is searched in the default locations when empty")
	cmd.PersistentFlags().BoolP(flagVerbose, "v", false, "Trace the report requests and enable debug logs")

	cmd.AddCommand(NewLookupCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// loadConfig applies the persistent flags on top of the loaded configuration.
func loadConfig(cmd *cobra.Command) (config.AppConfig, error) {
	file, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return config.AppConfig{}, err
	}

	var appConfig config.AppConfig
	if file != "" {
		appConfig, err = config.LoadConfigFile(file)
	} else {
		appConfig, err = config.LoadConfig()
	}

	if err != nil {
		return config.AppConfig{}, err
	}

	verbose, err := cmd.Flags().GetBool(flagVerbose)
	if err != nil {
		return config.AppConfig{}, err
	}

	if verbose {
		appConfig.VirusTotal.Verbose = true
		appConfig.Log.Debug = true
	}

	return appConfig, nil
}
