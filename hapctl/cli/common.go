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
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/coffice12/hapble/hapact/bll"
	"github.com/coffice12/hapble/hapact/hapserial"
	"github.com/coffice12/hapble/hapact/svc"
	"github.com/coffice12/hapble/hapact/xport"
	"github.com/coffice12/hapble/hapctl/config"
	"github.com/coffice12/hapble/hapctl/hcutil"
)

var globalXport xport.Xport

// This keeps track of whether the global interface has been assigned.  It
// is necessary to accommodate golang's nil-interface semantics.
var globalXportSet bool

var onExit func()

func SetOnExit(cb func()) {
	onExit = cb
}

func hcExitError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
	if onExit != nil {
		onExit()
	}
	os.Exit(1)
}

func hcUsage(cmd *cobra.Command, err error) {
	if err != nil {
		sErr := err.Error()
		log.Debugf("%s", sErr)

		fmt.Fprintf(os.Stderr, "Error: %s\n", sErr)
	}

	if cmd != nil {
		fmt.Printf("\n")
		fmt.Printf("%s - ", cmd.Name())
		cmd.Help()
	}

	if onExit != nil {
		onExit()
	}
	os.Exit(1)
}

func getConnProfile() (*config.ConnProfile, error) {
	return config.GlobalConnProfileMgr().GetConnProfile(hcutil.ConnProfile)
}

func buildAccessory() *svc.Accessory {
	return svc.NewAccessory(svc.AccessoryInfo{
		Name:             hcutil.ToolInfo.ShortName,
		Manufacturer:     "hapble",
		Model:            "hapctl",
		SerialNumber:     "000001",
		FirmwareRevision: hcutil.ToolInfo.VersionString,
		HardwareRevision: "1",
	})
}

// GetXport constructs and starts the transport named by the connection
// profile, serving the specified accessory.
func GetXport(acc *svc.Accessory) (xport.Xport, error) {
	if globalXport != nil {
		return globalXport, nil
	}

	cp, err := getConnProfile()
	if err != nil {
		return nil, err
	}

	switch cp.Type {
	case config.CONN_TYPE_SERIAL:
		sc, err := config.ParseSerialConnString(cp.ConnString)
		if err != nil {
			return nil, err
		}

		cfg := hapserial.NewXportCfg()
		cfg.DevPath = sc.DevPath
		cfg.Baud = sc.Baud
		cfg.Mtu = sc.Mtu
		cfg.ReadTimeout = 10 * time.Second

		globalXport = hapserial.NewSerialXport(acc, cfg)

	case config.CONN_TYPE_BLL:
		bc, err := config.ParseBllConnString(cp.ConnString)
		if err != nil {
			return nil, err
		}

		cfg := bll.NewXportCfg()
		if bc.CtlrName != "" {
			cfg.CtlrName = bc.CtlrName
		}
		cfg.Name = bc.Name
		if hcutil.DeviceName != "" {
			cfg.Name = hcutil.DeviceName
		}
		if cfg.Name == "" {
			cfg.Name = hcutil.ToolInfo.ShortName
		}

		globalXport = bll.NewBllXport(acc, cfg)

	default:
		return nil, fmt.Errorf("unknown connection type: %s (%d)",
			config.ConnTypeToString(cp.Type), int(cp.Type))
	}

	if err := globalXport.Start(); err != nil {
		globalXport = nil
		return nil, err
	}

	globalXportSet = true
	return globalXport, nil
}

func GetXportIfOpen() (xport.Xport, error) {
	if !globalXportSet {
		return nil, fmt.Errorf("xport not initailized")
	}

	return globalXport, nil
}
