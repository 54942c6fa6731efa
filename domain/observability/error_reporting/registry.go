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

package error_reporting

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/beaconhq/beacon-go/application/config"
)

// Factory constructs a reporter for the given configuration. Backends
// register themselves by name, the same way database/sql drivers do.
type Factory func(c *config.Config, o Options) (ErrorReporter, error)

var (
	factories   = xsync.NewMapOf[string, Factory]()
	mu          sync.Mutex
	defaultName string
	cachedName  string
	cached      ErrorReporter
)

func Register(name string, factory Factory) {
	factories.Store(name, factory)
}

// RegisterDefault registers a factory and marks it as the fallback used
// when the configured reporter name cannot be resolved.
func RegisterDefault(name string, factory Factory) {
	factories.Store(name, factory)
	mu.Lock()
	defer mu.Unlock()
	defaultName = name
}

// Resolve returns the reporter for the configured reporter name. The
// instance is constructed lazily and cached; repeated calls with an
// unchanged name return the same instance. Changing the configured name
// flushes and replaces the cached instance.
func Resolve(c *config.Config) ErrorReporter {
	mu.Lock()
	defer mu.Unlock()
	name := c.ReporterName()
	if cached != nil && cachedName == name {
		return cached
	}
	reporter := build(name, c)
	if cached != nil {
		cached.FlushErrorReporting()
	}
	cachedName = name
	cached = reporter
	return reporter
}

// ResolveNamed builds a one-off reporter for the given name without
// touching the cached instance.
func ResolveNamed(name string, c *config.Config) (ErrorReporter, error) {
	factory, ok := factories.Load(name)
	if !ok {
		return nil, errors.Errorf("no reporter registered for %q", name)
	}
	return factory(c, OptionsFromConfig(c))
}

// build must be called with mu held.
func build(name string, c *config.Config) ErrorReporter {
	logger := c.Logger()
	o := OptionsFromConfig(c)
	if factory, ok := factories.Load(name); ok {
		reporter, err := factory(c, o)
		if err == nil {
			return reporter
		}
		logger.Err(err).Str("method", "error_reporting.Resolve").Msgf("failed to construct reporter %q", name)
	} else {
		logger.Error().Str("method", "error_reporting.Resolve").Msgf("no reporter registered for %q", name)
	}
	if defaultName != "" && defaultName != name {
		if factory, ok := factories.Load(defaultName); ok {
			reporter, err := factory(c, o)
			if err == nil {
				logger.Info().Str("method", "error_reporting.Resolve").Msgf("falling back to default reporter %q", defaultName)
				return reporter
			}
			logger.Err(err).Str("method", "error_reporting.Resolve").Msgf("failed to construct default reporter %q", defaultName)
		}
	}
	return NewTestErrorReporter()
}

// Reset drops the cached reporter and all registered factories. Test hook.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	factories.Clear()
	defaultName = ""
	cachedName = ""
	cached = nil
}
