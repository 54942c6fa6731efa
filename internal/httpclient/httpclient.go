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

package httpclient

import (
	"crypto/tls"
	"net/http"
	"time"

	"github.com/beaconhq/beacon-go/application/config"
)

const defaultTimeout = 30 * time.Second

// NewHTTPClient returns the client used for reporter transport. It honors
// the configured timeout and the insecure flag.
func NewHTTPClient(c *config.Config) *http.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	method := "NewHTTPClient"
	if c.Insecure() {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // requested by the host via config
		c.Logger().Info().Str("method", method).Msg("Creating insecure http client")
	}
	timeout := c.Timeout()
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := &http.Client{Transport: tr, Timeout: timeout}
	return client
}
