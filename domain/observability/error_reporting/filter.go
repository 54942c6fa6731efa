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
	"reflect"
	"strings"
	"time"

	"github.com/erni27/imcache"
)

// ExclusionFilter decides whether an error may be forwarded to the
// reporter. Patterns match the reflected error type: the bare type name,
// the package-qualified name, or a prefix wildcard ending in "*".
type ExclusionFilter struct {
	patterns  []string
	decisions *imcache.Cache[string, bool]
}

func NewExclusionFilter(patterns []string) *ExclusionFilter {
	return &ExclusionFilter{
		patterns: patterns,
		decisions: imcache.New[string, bool](
			imcache.WithDefaultExpirationOption[string, bool](time.Hour),
		),
	}
}

func (f *ExclusionFilter) Ignored(err error) bool {
	if err == nil || len(f.patterns) == 0 {
		return false
	}
	qualifiedName := ErrorTypeName(err)
	if decision, present := f.decisions.Get(qualifiedName); present {
		return decision
	}
	decision := f.matches(qualifiedName)
	f.decisions.Set(qualifiedName, decision, imcache.WithDefaultExpiration())
	return decision
}

func (f *ExclusionFilter) matches(qualifiedName string) bool {
	bareName := qualifiedName
	if i := strings.LastIndex(qualifiedName, "."); i >= 0 {
		bareName = qualifiedName[i+1:]
	}
	for _, pattern := range f.patterns {
		if strings.HasSuffix(pattern, "*") {
			if strings.HasPrefix(qualifiedName, strings.TrimSuffix(pattern, "*")) {
				return true
			}
			continue
		}
		if pattern == qualifiedName || pattern == bareName {
			return true
		}
	}
	return false
}

// ErrorTypeName returns the package-qualified type name of err, e.g.
// "net/url.Error". Unnamed types fall back to their type string.
func ErrorTypeName(err error) string {
	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
