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

// Package hapserial serves an accessory over a serial line, for bench
// work against boards that forward attribute writes out a UART instead of
// a radio.
package hapserial

import (
	"bufio"
	"encoding/hex"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tarm/serial"

	"github.com/coffice12/hapble/hapact/svc"
	"github.com/coffice12/hapble/hapact/task"
)

type XportCfg struct {
	DevPath     string
	Baud        int
	Mtu         int
	ReadTimeout time.Duration
}

func NewXportCfg() *XportCfg {
	return &XportCfg{
		ReadTimeout: 10 * time.Second,
		Mtu:         512,
	}
}

type SerialXport struct {
	cfg     *XportCfg
	acc     *svc.Accessory
	port    *serial.Port
	scanner *bufio.Scanner
	dec     FrameDecoder
	dq      task.DispatchQueue

	wg sync.WaitGroup
	sync.Mutex
	closing bool
}

func NewSerialXport(acc *svc.Accessory, cfg *XportCfg) *SerialXport {
	return &SerialXport{
		cfg: cfg,
		acc: acc,
		dq:  task.NewDispatchQueue("hapserial"),
	}
}

func (sx *SerialXport) Start() error {
	c := &serial.Config{
		Name:        sx.cfg.DevPath,
		Baud:        sx.cfg.Baud,
		ReadTimeout: sx.cfg.ReadTimeout,
	}

	var err error
	sx.port, err = serial.OpenPort(c)
	if err != nil {
		return err
	}

	err = sx.port.Flush()
	if err != nil {
		return err
	}

	if err := sx.dq.Start(); err != nil {
		sx.port.Close()
		return err
	}

	// Responses the dispatcher writes to the signature characteristic go
	// back out the serial line.
	sx.acc.OnValueChanged(func(svcIid uint16, chrIid uint16, value []byte) {
		if chrIid != svc.PROTO_SIG_IID {
			return
		}
		if err := sx.Tx(value); err != nil {
			log.Errorf("Serial tx failed: %v", err)
		}
	})

	sx.wg.Add(1)
	go func() {
		defer sx.wg.Done()

		// Most of the reading will be done line by line, use the
		// bufio.Scanner to do this
		sx.scanner = bufio.NewScanner(sx.port)

		for {
			msg, err := sx.rx()
			sx.Lock()
			if sx.closing {
				sx.Unlock()
				return
			}
			sx.Unlock()

			if err != nil {
				log.Debugf("Serial rx error: %v", err)
				continue
			}
			if msg == nil {
				continue
			}

			sx.dq.Run(func() error {
				sx.acc.Rx(msg)
				return nil
			})
		}
	}()
	return nil
}

func (sx *SerialXport) Stop() error {
	sx.Lock()
	sx.closing = true
	sx.Unlock()

	err := sx.port.Close()
	sx.wg.Wait()
	sx.dq.Stop(task.InactiveError)
	return err
}

func (sx *SerialXport) txRaw(bytes []byte) error {
	log.Debugf("Tx serial\n%s", hex.Dump(bytes))

	_, err := sx.port.Write(bytes)
	if err != nil {
		return err
	}

	return nil
}

func (sx *SerialXport) Tx(bytes []byte) error {
	log.Debugf("Base64 encoding response:\n%s", hex.Dump(bytes))

	base64Data := EncodePacket(bytes)

	written := 0
	totlen := len(base64Data)

	for written < totlen {
		/* write the packet start designators. They are
		 * different whether we are starting a new packet or continuing one */
		if written == 0 {
			sx.txRaw([]byte{6, 9})
		} else {
			/* slower platforms take some time to process each segment
			 * and have very small receive buffers.  Give them a bit of
			 * time here */
			time.Sleep(20 * time.Millisecond)
			sx.txRaw([]byte{4, 20})
		}

		/* ensure that the total frame fits into 128 bytes.
		 * base 64 is 3 ascii to 4 base 64 byte encoding.  so
		 * the number below should be a multiple of 4.  Also,
		 * we need to save room for the header (2 byte) and
		 * carriage return (and possibly LF 2 bytes), */

		/* all totaled, 124 bytes should work */
		writeLen := totlen - written
		if writeLen > 124 {
			writeLen = 124
		}

		writeBytes := base64Data[written : written+writeLen]
		sx.txRaw(writeBytes)
		sx.txRaw([]byte{'\n'})

		written += writeLen
	}

	return nil
}

// Blocking receive of one framed packet.
func (sx *SerialXport) rx() ([]byte, error) {
	for sx.scanner.Scan() {
		line := []byte(sx.scanner.Text())

		log.Debugf("Rx serial:\n%s", hex.Dump(line))

		b, err := sx.dec.Feed(line)
		if err != nil {
			return nil, err
		}
		if b != nil {
			return b, nil
		}
	}

	if err := sx.scanner.Err(); err != nil {
		return nil, err
	}

	// Scanner hit EOF, so we'll need to create a new one.  This only
	// happens on timeouts.
	sx.scanner = bufio.NewScanner(sx.port)
	return nil, nil
}
