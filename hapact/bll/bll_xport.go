//go:build !windows
// +build !windows

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

// Package bll exposes an accessory as a BLE peripheral through the host
// OS's native Bluetooth stack.
package bll

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/JuulLabs-OSS/ble"
	"github.com/JuulLabs-OSS/ble/examples/lib/dev"
	log "github.com/sirupsen/logrus"

	"github.com/coffice12/hapble/hapact/adv"
	"github.com/coffice12/hapble/hapact/gatt"
	"github.com/coffice12/hapble/hapact/svc"
	"github.com/coffice12/hapble/hapact/task"
)

type XportCfg struct {
	CtlrName string

	// Advertised device name when no HAP advertising fields are
	// configured.
	Name string

	// Optional HAP advertising payload.  When set, the peripheral
	// advertises manufacturer data instead of name and services.
	Adv *adv.Fields
}

func NewXportCfg() XportCfg {
	return XportCfg{
		CtlrName: "default",
	}
}

type BllXport struct {
	cfg XportCfg
	acc *svc.Accessory
	dq  task.DispatchQueue

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewBllXport(acc *svc.Accessory, cfg XportCfg) *BllXport {
	return &BllXport{
		cfg: cfg,
		acc: acc,
		dq:  task.NewDispatchQueue("bll"),
	}
}

func bleUuid(u gatt.Uuid128) ble.UUID {
	return ble.UUID(u.WireBytes())
}

// buildBleSvc maps a service descriptor onto the host stack's GATT
// database.  Every characteristic gets an instance id descriptor, and each
// service carries the instance id characteristic that identifies it on the
// wire.
func (bx *BllXport) buildBleSvc(sd *gatt.SvcDesc) *ble.Service {
	s := ble.NewService(bleUuid(sd.Uuid))

	svcIidVal := make([]byte, 2)
	binary.LittleEndian.PutUint16(svcIidVal, sd.Iid)

	iidChr := ble.NewCharacteristic(bleUuid(gatt.UuidServiceInstanceIdChr))
	iidChr.SetValue(svcIidVal)
	s.AddCharacteristic(iidChr)

	for _, cd := range sd.Chrs {
		s.AddCharacteristic(bx.buildBleChr(sd, cd))
	}

	return s
}

func (bx *BllXport) buildBleChr(sd *gatt.SvcDesc,
	cd *gatt.ChrDesc) *ble.Characteristic {

	chrIid := cd.Iid

	c := ble.NewCharacteristic(bleUuid(cd.Uuid))

	if cd.Props&(gatt.PROP_READ|gatt.PROP_SECURE_READ) != 0 {
		c.HandleRead(ble.ReadHandlerFunc(
			func(req ble.Request, rsp ble.ResponseWriter) {
				bx.dq.Run(func() error {
					if val := bx.acc.ChrValue(chrIid); val != nil {
						rsp.Write(val)
					}
					return nil
				})
			}))
	}

	c.HandleWrite(ble.WriteHandlerFunc(
		func(req ble.Request, rsp ble.ResponseWriter) {
			data := append([]byte(nil), req.Data()...)
			bx.dq.Run(func() error {
				bx.acc.Rx(data)
				return nil
			})
		}))

	iidVal := make([]byte, 2)
	binary.LittleEndian.PutUint16(iidVal, chrIid)

	d := ble.NewDescriptor(bleUuid(gatt.UuidCharacteristicInstanceIdDsc))
	d.SetValue(iidVal)
	c.AddDescriptor(d)

	return c
}

func (bx *BllXport) Start() error {
	if err := bx.dq.Start(); err != nil {
		return err
	}

	d, err := dev.NewDevice(bx.cfg.CtlrName)
	if err != nil {
		bx.dq.Stop(task.InactiveError)
		return err
	}

	ble.SetDefaultDevice(d)

	for _, sd := range bx.acc.Services() {
		if err := ble.AddService(bx.buildBleSvc(sd)); err != nil {
			return fmt.Errorf("cannot register service %s: %v",
				sd.Uuid.String(), err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	bx.cancel = cancel

	bx.wg.Add(1)
	go func() {
		defer bx.wg.Done()

		var err error
		if bx.cfg.Adv != nil {
			log.Debugf("Advertising HAP fields: %s", bx.cfg.Adv.String())
			// Manufacturer-data advertising is only exposed on the device
			// handle, not as a package-level helper.
			err = d.AdvertiseMfgData(ctx, adv.APPLE_COMPANY_ID,
				bx.cfg.Adv.Payload())
		} else {
			err = ble.AdvertiseNameAndServices(ctx, bx.cfg.Name,
				bleUuid(gatt.UuidProtocolInformationSvc))
		}
		if err != nil && ctx.Err() == nil {
			log.Errorf("Advertising terminated: %v", err)
		}
	}()

	return nil
}

func (bx *BllXport) Stop() error {
	if bx.cancel != nil {
		bx.cancel()
	}
	bx.wg.Wait()

	if err := ble.Stop(); err != nil {
		return err
	}

	bx.dq.Stop(task.InactiveError)
	return nil
}
