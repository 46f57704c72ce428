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

package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/coffice12/hapble/hapctl/hcutil"
)

type ConnProfileMgr struct {
	profiles map[string]*ConnProfile
}

type ConnType int

type ConnProfile struct {
	Name       string   `json:"MyName"`
	Type       ConnType `json:"MyType"`
	ConnString string   `json:"MyConnString"`
}

func (p *ConnProfile) String() string {
	return fmt.Sprintf("name=%s type=%s connstring=%s",
		p.Name, ConnTypeToString(p.Type), p.ConnString)
}

const (
	CONN_TYPE_NONE ConnType = iota
	CONN_TYPE_SERIAL
	CONN_TYPE_BLL
)

var connTypeNameMap = map[ConnType]string{
	CONN_TYPE_SERIAL: "serial",
	CONN_TYPE_BLL:    "ble",
	CONN_TYPE_NONE:   "???",
}

func ConnTypeToString(ct ConnType) string {
	return connTypeNameMap[ct]
}

func ConnTypeFromString(s string) (ConnType, error) {
	for k, v := range connTypeNameMap {
		if s == v {
			return k, nil
		}
	}

	return ConnType(0), fmt.Errorf("invalid connection type: %s", s)
}

func (t *ConnType) MarshalJSON() ([]byte, error) {
	return json.Marshal(ConnTypeToString(*t))
}

func (ct *ConnType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	var err error
	*ct, err = ConnTypeFromString(s)
	if err != nil {
		*ct = CONN_TYPE_NONE
	}
	return nil
}

// SerialConnCfg is the parsed form of a serial profile's connstring
// ("dev=/dev/ttyUSB0,baud=115200,mtu=512").
type SerialConnCfg struct {
	DevPath string
	Baud    int
	Mtu     int
}

func ParseSerialConnString(cs string) (*SerialConnCfg, error) {
	sc := &SerialConnCfg{
		Baud: 115200,
		Mtu:  512,
	}

	if cs == "" {
		return nil, fmt.Errorf("invalid serial connstring; "+
			"must specify dev=<device-path>: %s", cs)
	}

	parts := strings.Split(cs, ",")
	for _, p := range parts {
		kv := strings.SplitN(p, "=", 2)
		// Handle old-style connstring (device path only).
		if len(kv) == 1 {
			kv = []string{"dev", kv[0]}
		}

		var err error
		switch kv[0] {
		case "dev":
			sc.DevPath = kv[1]
		case "baud":
			sc.Baud, err = strconv.Atoi(kv[1])
		case "mtu":
			sc.Mtu, err = strconv.Atoi(kv[1])
		default:
			return nil, fmt.Errorf("invalid serial connstring; "+
				"unknown key: %s", kv[0])
		}
		if err != nil {
			return nil, errors.Wrapf(err, "invalid serial connstring "+
				"value for %s", kv[0])
		}
	}

	return sc, nil
}

// BllConnCfg is the parsed form of a ble profile's connstring
// ("ctlr_name=default,name=MyAccessory").
type BllConnCfg struct {
	CtlrName string
	Name     string
}

func ParseBllConnString(cs string) (*BllConnCfg, error) {
	bc := &BllConnCfg{
		CtlrName: "default",
	}

	if cs == "" {
		return bc, nil
	}

	parts := strings.Split(cs, ",")
	for _, p := range parts {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid ble connstring; "+
				"expected key=value pair: %s", p)
		}

		switch kv[0] {
		case "ctlr_name":
			bc.CtlrName = kv[1]
		case "name":
			bc.Name = kv[1]
		default:
			return nil, fmt.Errorf("invalid ble connstring; "+
				"unknown key: %s", kv[0])
		}
	}

	return bc, nil
}

func NewConnProfileMgr() (*ConnProfileMgr, error) {
	cpm := &ConnProfileMgr{
		profiles: map[string]*ConnProfile{},
	}

	if err := cpm.Init(); err != nil {
		return nil, err
	}

	return cpm, nil
}

func connProfileCfgFilename() (string, error) {
	dir, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "cannot determine home directory")
	}

	return filepath.Join(dir, hcutil.ToolInfo.CfgFilename), nil
}

func (cpm *ConnProfileMgr) Init() error {
	filename, err := connProfileCfgFilename()
	if err != nil {
		return err
	}

	log.Debugf("Reading connection profiles from %s", filename)
	blob, err := ioutil.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		} else {
			return errors.Wrap(err, "cannot read connection profiles")
		}
	}

	var profiles []*ConnProfile
	if err := json.Unmarshal(blob, &profiles); err != nil {
		return fmt.Errorf("error reading connection profile "+
			"config (%s): %s", filename, err.Error())
	}

	for _, p := range profiles {
		cpm.profiles[p.Name] = p
	}

	return nil
}

type connProfSorter struct {
	cps []*ConnProfile
}

func (s connProfSorter) Len() int {
	return len(s.cps)
}
func (s connProfSorter) Swap(i, j int) {
	s.cps[i], s.cps[j] = s.cps[j], s.cps[i]
}
func (s connProfSorter) Less(i, j int) bool {
	return s.cps[i].Name < s.cps[j].Name
}

func SortConnProfs(cps []*ConnProfile) []*ConnProfile {
	sorter := connProfSorter{
		cps: make([]*ConnProfile, 0, len(cps)),
	}

	for _, p := range cps {
		sorter.cps = append(sorter.cps, p)
	}

	sort.Sort(sorter)
	return sorter.cps
}

func (cpm *ConnProfileMgr) GetConnProfileList() ([]*ConnProfile, error) {
	log.Debugf("Getting list of connection profiles")

	cpList := make([]*ConnProfile, 0, len(cpm.profiles))
	for _, p := range cpm.profiles {
		cpList = append(cpList, p)
	}

	return SortConnProfs(cpList), nil
}

func (cpm *ConnProfileMgr) save() error {
	list, _ := cpm.GetConnProfileList()
	b, err := json.MarshalIndent(list, "", "    ")
	if err != nil {
		return errors.Wrap(err, "cannot marshal connection profiles")
	}

	filename, err := connProfileCfgFilename()
	if err != nil {
		return err
	}

	err = ioutil.WriteFile(filename, b, 0644)
	if err != nil {
		return errors.Wrap(err, "cannot write connection profiles")
	}

	return nil
}

func (cpm *ConnProfileMgr) DeleteConnProfile(name string) error {
	if cpm.profiles[name] == nil {
		return fmt.Errorf("connection profile \"%s\" doesn't exist", name)
	}

	delete(cpm.profiles, name)

	err := cpm.save()
	if err != nil {
		return err
	}

	return nil
}

func (cpm *ConnProfileMgr) AddConnProfile(cp *ConnProfile) error {
	cpm.profiles[cp.Name] = cp

	err := cpm.save()
	if err != nil {
		return err
	}

	return nil
}

func (cpm *ConnProfileMgr) GetConnProfile(pName string) (*ConnProfile,
	error) {

	// Each profile setting can be overridden from the command line.

	p := cpm.profiles[pName]
	if p == nil {
		if pName != "" && hcutil.ConnType == "" {
			return nil, fmt.Errorf("connection profile \"%s\" doesn't "+
				"exist", pName)
		}
		p = NewConnProfile()
	}

	if hcutil.ConnType != "" {
		t, err := ConnTypeFromString(hcutil.ConnType)
		if err != nil {
			return nil, err
		}
		p.Type = t
	}

	if hcutil.ConnString != "" {
		p.ConnString = hcutil.ConnString
	}

	if p.Type == CONN_TYPE_NONE {
		return nil, fmt.Errorf("connection profile or --conntype required")
	}

	return p, nil
}

func NewConnProfile() *ConnProfile {
	return &ConnProfile{}
}

var globalConnProfileMgr *ConnProfileMgr

func GlobalConnProfileMgr() *ConnProfileMgr {
	if globalConnProfileMgr == nil {
		panic("connection profile manager not initialized")
	}
	return globalConnProfileMgr
}

func InitGlobalConnProfileMgr() error {
	if globalConnProfileMgr != nil {
		return fmt.Errorf("connection profile manager initialized twice")
	}

	var err error
	globalConnProfileMgr, err = NewConnProfileMgr()
	if err != nil {
		return err
	}

	return nil
}
