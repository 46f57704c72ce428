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

package hapxutil

import (
	"math/rand"
	"sync"

	log "github.com/sirupsen/logrus"
)

var nextTid uint8
var beenRead bool
var tidMutex sync.Mutex

// NextTid yields transaction ids for client-built requests.  The sequence
// starts at a random value so consecutive tool invocations don't reuse ids.
func NextTid() uint8 {
	tidMutex.Lock()
	defer tidMutex.Unlock()

	if !beenRead {
		nextTid = uint8(rand.Uint32())
		beenRead = true
	}

	val := nextTid
	nextTid++

	return val
}

func SetLogLevel(level log.Level) {
	log.SetLevel(level)
}
