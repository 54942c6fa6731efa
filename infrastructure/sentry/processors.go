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
	"strings"

	"github.com/getsentry/sentry-go"

	"github.com/beaconhq/beacon-go/application/config"
	"github.com/beaconhq/beacon-go/domain/observability/error_reporting"
)

// Processor transforms an event before it is sent. Returning nil drops the
// event.
type Processor func(o error_reporting.Options, event *sentry.Event) *sentry.Event

const maskedValue = "********"

var sensitiveKeyParts = []string{"password", "passwd", "secret", "api_key", "apikey", "token", "authorization", "cookie", "dsn"}

var processors = map[string]Processor{
	"sanitizekeys": sanitizeKeys,
	"truncate":     truncate,
	"inapp":        markInApp,
}

// processorChain resolves the configured processor names. Unknown names
// are logged and skipped.
func processorChain(c *config.Config, o error_reporting.Options) []Processor {
	var chain []Processor
	for _, name := range o.Processors {
		processor, ok := processors[strings.ToLower(name)]
		if !ok {
			c.Logger().Warn().Str("method", "processorChain").Msgf("unknown processor %q", name)
			continue
		}
		chain = append(chain, processor)
	}
	return chain
}

func sanitizeKeys(_ error_reporting.Options, event *sentry.Event) *sentry.Event {
	for key := range event.Extra {
		if isSensitiveKey(key) {
			event.Extra[key] = maskedValue
		}
	}
	for key := range event.Tags {
		if isSensitiveKey(key) {
			event.Tags[key] = maskedValue
		}
	}
	if event.Request != nil {
		for key := range event.Request.Headers {
			if isSensitiveKey(key) {
				event.Request.Headers[key] = maskedValue
			}
		}
		if event.Request.Cookies != "" {
			event.Request.Cookies = maskedValue
		}
	}
	return event
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, part := range sensitiveKeyParts {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}

func truncate(o error_reporting.Options, event *sentry.Event) *sentry.Event {
	if o.MaxLengthString > 0 {
		event.Message = truncateString(event.Message, o.MaxLengthString)
		for i := range event.Exception {
			event.Exception[i].Value = truncateString(event.Exception[i].Value, o.MaxLengthString)
		}
		for _, breadcrumb := range event.Breadcrumbs {
			breadcrumb.Message = truncateString(breadcrumb.Message, o.MaxLengthString)
		}
		for key, value := range event.Extra {
			if s, ok := value.(string); ok {
				event.Extra[key] = truncateString(s, o.MaxLengthString)
			}
		}
	}
	if o.MaxLengthList > 0 {
		if len(event.Breadcrumbs) > o.MaxLengthList {
			event.Breadcrumbs = event.Breadcrumbs[len(event.Breadcrumbs)-o.MaxLengthList:]
		}
		for key, value := range event.Extra {
			if list, ok := value.([]interface{}); ok && len(list) > o.MaxLengthList {
				event.Extra[key] = list[:o.MaxLengthList]
			}
		}
	}
	return event
}

// truncateString cuts on rune boundaries so multi-byte characters are
// never split.
func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	return string(runes[:maxLength])
}

// markInApp flags stack frames by module prefix. Exclusions win over
// inclusions.
func markInApp(o error_reporting.Options, event *sentry.Event) *sentry.Event {
	if len(o.IncludePaths) == 0 && len(o.ExcludePaths) == 0 {
		return event
	}
	for i := range event.Exception {
		stacktrace := event.Exception[i].Stacktrace
		if stacktrace == nil {
			continue
		}
		for j := range stacktrace.Frames {
			frame := &stacktrace.Frames[j]
			if len(o.IncludePaths) > 0 {
				frame.InApp = hasPrefixAny(frame.Module, o.IncludePaths)
			}
			if hasPrefixAny(frame.Module, o.ExcludePaths) {
				frame.InApp = false
			}
		}
	}
	return event
}

func hasPrefixAny(module string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(module, prefix) {
			return true
		}
	}
	return false
}
