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
	"github.com/spf13/cobra"
	"vtreport/app"
)

const flagPort = "port"

func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the report lookup api",
		Long: `Serve exposes GET /v1/reports/:resource and POST /v1/files.

Requests to /v1 require a bearer key when HTTPSERVER_AUTHORIZATIONKEYS is set.
Metrics are served on /metrics when HTTPSERVER_METRICS is true.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			appConfig, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed(flagPort) {
				if appConfig.HTTPServer.Port, err = cmd.Flags().GetInt(flagPort); err != nil {
					return err
				}
			}

			return app.Start(cmd.Context(), appConfig)
		},
	}

	cmd.Flags().IntP(flagPort, "p", 0, "Port to listen on, overrides the configuration")

	return cmd
}
