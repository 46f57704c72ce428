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
	"sort"
	"strings"

	"github.com/fatih/structs"
	"github.com/spf13/cobra"
	"github.com/ugorji/go/codec"

	"github.com/coffice12/hapble/hapact/hap"
)

var decodeJson bool

func decodeRunCmd(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		hcUsage(cmd, nil)
	}

	// Allow the PDU to be split across arguments and to contain
	// separators.
	hexStr := strings.Join(args, "")
	hexStr = strings.Map(func(r rune) rune {
		switch r {
		case ' ', ':', '-', ',':
			return -1
		}
		return r
	}, hexStr)

	data, err := hex.DecodeString(hexStr)
	if err != nil {
		hcUsage(cmd, fmt.Errorf("invalid hex string: %s", err.Error()))
	}

	req, err := hap.Parse(data)
	if err != nil {
		hcExitError(err)
	}

	if decodeJson {
		m := structs.Map(req)
		m["Op"] = req.Op.String()

		var j []byte
		enc := codec.NewEncoderBytes(&j, &codec.JsonHandle{})
		if err := enc.Encode(m); err != nil {
			hcExitError(err)
		}
		fmt.Printf("%s\n", j)
		return
	}

	fmt.Printf("%s\n", req.String())

	m := structs.Map(req)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Printf("    %-10s %v\n", k, m[k])
	}
}

func decodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <hex-pdu>",
		Short: "Decode a request PDU expressed as hex",
		Example: "  " + "hapctl decode 000601100000\n" +
			"  hapctl decode \"00 06 01 10 00\"",
		Run: decodeRunCmd,
	}

	cmd.Flags().BoolVarP(&decodeJson, "json", "j", false,
		"Dump results as JSON")

	return cmd
}
