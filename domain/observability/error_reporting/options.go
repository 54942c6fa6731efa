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
	"net/url"
	"strings"
	"time"

	"github.com/beaconhq/beacon-go/application/config"
)

// Options carries every reporter-facing setting verbatim. Factories receive
// it together with the config handle and must not re-read the environment.
type Options struct {
	Dsn              string
	Servers          []string
	IncludePaths     []string
	ExcludePaths     []string
	Timeout          time.Duration
	Name             string
	AutoLogStacks    bool
	Key              string
	MaxLengthString  int
	MaxLengthList    int
	Site             string
	PublicKey        string
	SecretKey        string
	Project          string
	Processors       []string
	Context          map[string]string
	Release          string
	IgnoreExceptions []string
	Environment      string
	Debug            bool
	Insecure         bool
}

func OptionsFromConfig(c *config.Config) Options {
	return Options{
		Dsn:              c.Dsn(),
		Servers:          c.Servers(),
		IncludePaths:     c.IncludePaths(),
		ExcludePaths:     c.ExcludePaths(),
		Timeout:          c.Timeout(),
		Name:             c.ServerName(),
		AutoLogStacks:    c.AutoLogStacks(),
		Key:              c.Key(),
		MaxLengthString:  c.MaxLengthString(),
		MaxLengthList:    c.MaxLengthList(),
		Site:             c.Site(),
		PublicKey:        c.PublicKey(),
		SecretKey:        c.SecretKey(),
		Project:          c.Project(),
		Processors:       c.Processors(),
		Context:          c.ContextTags(),
		Release:          c.Release(),
		IgnoreExceptions: c.IgnoreExceptions(),
		Environment:      c.Environment(),
		Debug:            config.IsDevelopment(),
		Insecure:         c.Insecure(),
	}
}

// EffectiveDsn returns the configured DSN, or one composed from the legacy
// server/key/project settings when no DSN is set.
func (o Options) EffectiveDsn() string {
	if o.Dsn != "" {
		return o.Dsn
	}
	if len(o.Servers) == 0 || o.Project == "" {
		return ""
	}
	server, err := url.Parse(o.Servers[0])
	if err != nil || server.Host == "" {
		return ""
	}
	publicKey := o.PublicKey
	if publicKey == "" {
		publicKey = o.Key
	}
	if publicKey == "" {
		return ""
	}
	if o.SecretKey != "" {
		server.User = url.UserPassword(publicKey, o.SecretKey)
	} else {
		server.User = url.User(publicKey)
	}
	server.Path = strings.TrimRight(server.Path, "/") + "/" + o.Project
	return server.String()
}
