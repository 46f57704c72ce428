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

package xport

// RxFn consumes the payload of a single incoming attribute write.
type RxFn func(data []byte)

// ValueSink is the output boundary of the protocol core: setting a
// characteristic's value, keyed by the owning service's and the
// characteristic's instance ids.  The collaborator behind it (BLE stack,
// serial bench link, in-memory store) handles delivery to the remote
// reader.
type ValueSink interface {
	SetChrValue(svcIid uint16, chrIid uint16, value []byte) error
}

// Xport is a transport that carries attribute writes to an accessory and
// characteristic values back out.
type Xport interface {
	Start() error
	Stop() error
}
