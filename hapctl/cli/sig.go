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
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/coffice12/hapble/hapact/svc"
)

func sigSvcRunCmd(cmd *cobra.Command, args []string) {
	fmt.Printf("%s\n", hex.EncodeToString(svc.SvcSignatureBody()))
}

func sigChrRunCmd(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		hcUsage(cmd, nil)
	}

	iid64, err := strconv.ParseUint(args[0], 0, 16)
	if err != nil {
		hcUsage(cmd, fmt.Errorf("invalid instance id \"%s\": %s",
			args[0], err.Error()))
	}

	acc := buildAccessory()
	s, c := acc.FindChr(uint16(iid64))
	if c == nil {
		hcExitError(fmt.Errorf("no characteristic with iid 0x%04x", iid64))
	}

	fmt.Printf("%s\n", c.String())
	fmt.Printf("%s\n", hex.EncodeToString(svc.ChrSignatureBody(s, c)))
}

func sigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sig",
		Short: "Print signature read response bodies",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	svcCmd := &cobra.Command{
		Use:     "svc",
		Short:   "Print the protocol service signature body",
		Example: "  hapctl sig svc",
		Run:     sigSvcRunCmd,
	}
	cmd.AddCommand(svcCmd)

	chrCmd := &cobra.Command{
		Use:     "chr <iid>",
		Short:   "Print a characteristic signature body",
		Example: "  hapctl sig chr 0x11",
		Run:     sigChrRunCmd,
	}
	cmd.AddCommand(chrCmd)

	return cmd
}
