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
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/abiosoft/ishell.v2"

	"github.com/coffice12/hapble/hapact/hap"
	"github.com/coffice12/hapble/hapact/hapxutil"
	"github.com/coffice12/hapble/hapctl/hcutil"
)

func interactiveDecode(c *ishell.Context) {
	if len(c.Args) == 0 {
		c.Println("Usage: decode <hex-pdu>")
		return
	}

	data, err := hex.DecodeString(strings.Join(c.Args, ""))
	if err != nil {
		c.Println("Error:", err)
		return
	}

	req, err := hap.Parse(data)
	if err != nil {
		c.Println("Error:", err)
		return
	}

	c.Println(req.String())
}

func interactiveRequest(c *ishell.Context) {
	if len(c.Args) < 2 {
		c.Println("Usage: request <op> <iid>")
		return
	}

	op, err := hap.OpCodeFromString(c.Args[0])
	if err != nil {
		c.Println("Error:", err)
		return
	}

	iid64, err := strconv.ParseUint(c.Args[1], 0, 16)
	if err != nil {
		c.Println("Error:", err)
		return
	}

	req := &hap.Request{
		IidWidth:  hap.IID_WIDTH_16,
		Op:        op,
		Tid:       hapxutil.NextTid(),
		TargetIid: uint16(iid64),
	}

	c.Println(req.String())
	c.Println(hex.EncodeToString(req.Bytes()))
}

func interactiveOps(c *ishell.Context) {
	for v := uint8(1); ; v++ {
		op, err := hap.OpCodeFromByte(v)
		if err != nil {
			break
		}
		c.Println(fmt.Sprintf("%d: %s", v, op))
	}
}

func interactiveRunCmd(cmd *cobra.Command, args []string) {
	shell := ishell.New()

	shell.Println(hcutil.ToolInfo.LongName, "interactive mode")

	shell.AddCmd(&ishell.Cmd{
		Name: "decode",
		Help: "decode a request PDU expressed as hex",
		Func: interactiveDecode,
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "request",
		Help: "build a request PDU and print it as hex",
		Func: interactiveRequest,
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "ops",
		Help: "list known opcodes",
		Func: interactiveOps,
	})

	shell.Run()
}

func interactiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Short:   "Work with PDUs in an interactive shell",
		Example: "  hapctl interactive",
		Run:     interactiveRunCmd,
	}
}
