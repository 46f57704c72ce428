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

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/coffice12/hapble/hapact/hap"
	"github.com/coffice12/hapble/hapact/hapxutil"
)

var requestTid int

func requestRunCmd(cmd *cobra.Command, args []string) {
	if len(args) < 2 {
		hcUsage(cmd, nil)
	}

	op, err := hap.OpCodeFromString(args[0])
	if err != nil {
		// Numeric opcodes are accepted too.
		v, cerr := cast.ToUint8E(args[0])
		if cerr != nil {
			hcUsage(cmd, err)
		}
		op, err = hap.OpCodeFromByte(v)
		if err != nil {
			hcUsage(cmd, err)
		}
	}

	iid64, err := strconv.ParseUint(args[1], 0, 16)
	if err != nil {
		hcUsage(cmd, fmt.Errorf("invalid instance id \"%s\": %s",
			args[1], err.Error()))
	}

	tid := hapxutil.NextTid()
	if requestTid >= 0 {
		tid, err = cast.ToUint8E(requestTid)
		if err != nil {
			hcUsage(cmd, err)
		}
	}

	req := &hap.Request{
		IidWidth:  hap.IID_WIDTH_16,
		Op:        op,
		Tid:       tid,
		TargetIid: uint16(iid64),
	}

	fmt.Printf("%s\n", req.String())
	fmt.Printf("%s\n", hex.EncodeToString(req.Bytes()))
}

func requestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request <op> <iid>",
		Short: "Build a request PDU and print it as hex",
		Example: "  " + "hapctl request svc-sig-read 0x10\n" +
			"  hapctl request chr-read 0x12",
		Run: requestRunCmd,
	}

	cmd.Flags().IntVarP(&requestTid, "tid", "t", -1,
		"Transaction id to use instead of a generated one")

	return cmd
}
