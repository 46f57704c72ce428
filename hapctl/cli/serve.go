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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func serveRunCmd(cmd *cobra.Command, args []string) {
	acc := buildAccessory()

	acc.OnValueChanged(func(svcIid uint16, chrIid uint16, value []byte) {
		log.Infof("characteristic 0x%04x updated:\n%s", chrIid,
			hex.Dump(value))
	})

	if _, err := GetXport(acc); err != nil {
		hcExitError(err)
	}

	fmt.Printf("Serving accessory \"%s\"; press Ctrl-C to stop\n",
		acc.Info().Name)
	for _, s := range acc.Services() {
		log.Infof("service iid=0x%04x uuid=%s chrs=%d",
			s.Iid, s.Uuid.String(), len(s.Chrs))
	}

	select {}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run an accessory on the configured transport",
		Example: "  hapctl -c myserial serve\n" +
			"  hapctl --conntype serial --connstring dev=/dev/ttyUSB0 serve",
		Run: serveRunCmd,
	}

	return cmd
}
