/**
 * Licensed to the Apache Software Foundation (ASF) under one
 * or more contributor license agreements.  See the NOTICE file
 * distributed with this work for additional information
 * regarding copyright ownership.  The ASF licenses this file
 * to you under the Apache License, Version 2.0 (the
 * "License"); you may not use this file except in compliance
 * with the License.  You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package cli

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/coffice12/hapble/hapact/hapxutil"
	"github.com/coffice12/hapble/hapctl/hcutil"
)

var HapctlLogLevel log.Level
var HapctlHelp bool

func Commands() *cobra.Command {
	logLevelStr := ""
	hcCmd := &cobra.Command{
		Use:   hcutil.ToolInfo.ExeName,
		Short: hcutil.ToolInfo.ShortName + " helps you work with accessories",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var err error
			HapctlLogLevel, err = log.ParseLevel(logLevelStr)
			if err != nil {
				hcUsage(nil, err)
			}

			hapxutil.SetLogLevel(HapctlLogLevel)

			// Set cbgo log level if we're using macOS.
			OSSpecificInit()
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	hcCmd.PersistentFlags().StringVarP(&hcutil.ConnProfile, "conn", "c", "",
		"connection profile to use")

	hcCmd.PersistentFlags().StringVarP(&logLevelStr, "loglevel", "l", "info",
		"log level to use")

	hcCmd.PersistentFlags().StringVar(&hcutil.DeviceName, "name",
		"", "name to advertise; overrides profile setting")

	hcCmd.PersistentFlags().StringVar(&hcutil.ConnType, "conntype", "",
		"Connection type to use instead of using the profile's type")

	hcCmd.PersistentFlags().StringVar(&hcutil.ConnString, "connstring", "",
		"Connection key-value pairs to use instead of using the profile's "+
			"connstring")

	versCmd := &cobra.Command{
		Use:     "version",
		Short:   "Display the " + hcutil.ToolInfo.ShortName + " version number",
		Example: "  " + hcutil.ToolInfo.ExeName + " version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s %s\n",
				hcutil.ToolInfo.LongName,
				hcutil.ToolInfo.VersionString)
		},
	}
	hcCmd.AddCommand(versCmd)

	hcCmd.AddCommand(decodeCmd())
	hcCmd.AddCommand(requestCmd())
	hcCmd.AddCommand(sigCmd())
	hcCmd.AddCommand(serveCmd())
	hcCmd.AddCommand(connProfileCmd())
	hcCmd.AddCommand(interactiveCmd())

	return hcCmd
}
