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

package sentry

import (
	"fmt"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/host"

	"github.com/beaconhq/beacon-go/application/config"
	"github.com/beaconhq/beacon-go/domain/observability/error_reporting"
	"github.com/beaconhq/beacon-go/internal/concurrency"
	"github.com/beaconhq/beacon-go/internal/httpclient"
)

var (
	initialized = concurrency.AtomicBool{}
	initMutex   sync.Mutex
	lastOptions string
)

func init() {
	error_reporting.RegisterDefault("sentry", func(c *config.Config, o error_reporting.Options) (error_reporting.ErrorReporter, error) {
		return newErrorReporter(c, o), nil
	})
}

// initializeSentry runs sentry.Init once per option set. A reporter rebuilt
// after a settings change re-initializes the client with the new options.
func initializeSentry(c *config.Config, o error_reporting.Options) {
	initMutex.Lock()
	defer initMutex.Unlock()
	fingerprint := fmt.Sprintf("%+v", o)
	if initialized.Get() && fingerprint == lastOptions {
		return
	}
	err := sentry.Init(clientOptions(c, o))
	if err != nil {
		log.Error().Str("method", "initializeSentry").Msg(err.Error())
		return
	}
	initialized.Set(true)
	lastOptions = fingerprint
	log.Info().Msg("Error reporting initialized")
	configureScope(c, o)
}

// clientOptions forwards every reporter setting into the backend client.
func clientOptions(c *config.Config, o error_reporting.Options) sentry.ClientOptions {
	return sentry.ClientOptions{
		Dsn:              o.EffectiveDsn(),
		Environment:      o.Environment,
		Release:          o.Release,
		ServerName:       o.Name,
		Debug:            o.Debug,
		AttachStacktrace: o.AutoLogStacks,
		BeforeSend:       beforeSendFunc(c, o),
		HTTPClient:       httpclient.NewHTTPClient(c),
	}
}

// beforeSendFunc gates every event on the user preference and runs the
// configured processor chain.
func beforeSendFunc(c *config.Config, o error_reporting.Options) func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
	chain := processorChain(c, o)
	return func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
		if !c.IsErrorReportingEnabled() {
			return nil
		}
		for _, processor := range chain {
			event = processor(o, event)
			if event == nil {
				return nil
			}
		}
		return event
	}
}

func configureScope(c *config.Config, o error_reporting.Options) {
	sentry.ConfigureScope(func(scope *sentry.Scope) {
		if device := c.DeviceID(); device != "" {
			scope.SetUser(sentry.User{ID: device})
		}
		if o.Site != "" {
			scope.SetTag("site", o.Site)
		}
		if o.Project != "" {
			scope.SetTag("project", o.Project)
		}
		for k, v := range o.Context {
			scope.SetTag(k, v)
		}
		addHostContext(scope)
	})
}

func addHostContext(scope *sentry.Scope) {
	info, err := host.Info()
	if err != nil {
		log.Debug().Str("method", "addHostContext").Err(err).Msg("cannot determine host info")
		return
	}
	scope.SetContext("host", sentry.Context{
		"hostname":         info.Hostname,
		"os":               info.OS,
		"platform":         info.Platform,
		"platform_version": info.PlatformVersion,
		"kernel_version":   info.KernelVersion,
	})
}
