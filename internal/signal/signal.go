/*
 * © 2026 Beacon Limited
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package signal carries exception events from the host framework's
// failure surfaces to the registered capture handler.
package signal

import "net/http"

// ExceptionEvent is published whenever a host surface observes an
// unhandled error or recovered panic.
type ExceptionEvent struct {
	Err     error
	Request *http.Request
	Task    string
	Tags    map[string]string
}

var channel = make(chan ExceptionEvent, 100)
var stopChannel = make(chan bool, 1000)

func Emit(event ExceptionEvent) {
	channel <- event
}

func Receive() (event ExceptionEvent, stop bool) {
	select {
	case event = <-channel:
		return event, false
	case <-stopChannel:
		return event, true
	}
}

func CreateListener(callback func(event ExceptionEvent)) {
	// cleanup stopchannel before starting
	for {
		select {
		case <-stopChannel:
			continue
		default:
			break
		}
		break
	}
	go func() {
		for {
			event, stop := Receive()
			if stop {
				break
			}
			callback(event)
		}
	}()
}

func DisposeListener() {
	stopChannel <- true
}
