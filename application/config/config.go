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

// Package config implements the configuration functionality
package config

import (
	"crypto/md5"
	"encoding/hex"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/denisbrodbeck/machineid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	dsnKey              = "BEACON_DSN"
	serversKey          = "BEACON_SERVERS"
	includePathsKey     = "BEACON_INCLUDE_PATHS"
	excludePathsKey     = "BEACON_EXCLUDE_PATHS"
	timeoutKey          = "BEACON_TIMEOUT" // duration (number + unit), e.g. 30s
	serverNameKey       = "BEACON_NAME"
	autoLogStacksKey    = "BEACON_AUTO_LOG_STACKS"
	keyKey              = "BEACON_KEY"
	maxLengthStringKey  = "BEACON_MAX_LENGTH_STRING"
	maxLengthListKey    = "BEACON_MAX_LENGTH_LIST"
	siteKey             = "BEACON_SITE"
	publicKeyKey        = "BEACON_PUBLIC_KEY"
	secretKeyKey        = "BEACON_SECRET_KEY"
	projectKey          = "BEACON_PROJECT"
	processorsKey       = "BEACON_PROCESSORS"
	contextKey          = "BEACON_CONTEXT"
	releaseKey          = "BEACON_RELEASE"
	ignoreExceptionsKey = "BEACON_IGNORE_EXCEPTIONS"
	reporterKey         = "BEACON_REPORTER"
	environmentKey      = "BEACON_ENVIRONMENT"
	errorReportingKey   = "BEACON_ERROR_REPORTING"
	insecureKey         = "BEACON_INSECURE"
	logLevelKey         = "BEACON_LOG_LEVEL"
	logPathKey          = "BEACON_LOG_PATH"

	DefaultReporterName = "sentry"
)

var (
	Version       = "SNAPSHOT"
	Development   = "true"
	currentConfig *Config
	mutex         = &sync.Mutex{}
)

type Config struct {
	m                   sync.RWMutex
	logger              *zerolog.Logger
	logPath             string
	logFile             *os.File
	configFile          string
	reporterName        string
	environment         string
	errorReporting      bool
	dsn                 string
	servers             []string
	includePaths        []string
	excludePaths        []string
	applicationPackages []string
	timeout             time.Duration
	serverName          string
	autoLogStacks       bool
	key                 string
	maxLengthString     int
	maxLengthList       int
	site                string
	publicKey           string
	secretKey           string
	project             string
	processors          []string
	contextTags         map[string]string
	release             string
	ignoreExceptions    []string
	insecure            bool
	deviceId            string
}

func CurrentConfig() *Config {
	mutex.Lock()
	defer mutex.Unlock()
	if currentConfig == nil {
		currentConfig = New()
	}
	return currentConfig
}

func SetCurrentConfig(config *Config) {
	mutex.Lock()
	defer mutex.Unlock()
	currentConfig = config
}

func IsDevelopment() bool {
	parseBool, _ := strconv.ParseBool(Development)
	return parseBool
}

// New creates a configuration object with default values, overridden by the
// process environment.
func New() *Config {
	c := &Config{}
	c.logger = newLogger(c)
	c.reporterName = DefaultReporterName
	c.errorReporting = true
	c.autoLogStacks = true
	c.environment = defaultEnvironment()
	c.release = Version
	c.contextTags = map[string]string{}
	c.settingsFromEnv()
	if c.key == "" {
		c.key = deriveKey(c.secretKey)
	}
	c.deviceId = c.determineDeviceId()
	return c
}

func defaultEnvironment() string {
	if IsDevelopment() {
		return "development"
	}
	return "production"
}

func (c *Config) settingsFromEnv() {
	c.dsn = os.Getenv(dsnKey)
	c.servers = envList(serversKey)
	c.includePaths = envList(includePathsKey)
	c.excludePaths = envList(excludePathsKey)
	c.timeout = envDuration(timeoutKey, 0)
	if name := os.Getenv(serverNameKey); name != "" {
		c.serverName = name
	} else {
		c.serverName, _ = os.Hostname()
	}
	c.autoLogStacks = envBool(autoLogStacksKey, c.autoLogStacks)
	c.key = os.Getenv(keyKey)
	c.maxLengthString = envInt(maxLengthStringKey, 0)
	c.maxLengthList = envInt(maxLengthListKey, 0)
	c.site = os.Getenv(siteKey)
	c.publicKey = os.Getenv(publicKeyKey)
	c.secretKey = os.Getenv(secretKeyKey)
	c.project = os.Getenv(projectKey)
	c.processors = envList(processorsKey)
	c.contextTags = envTags(contextKey)
	if release := os.Getenv(releaseKey); release != "" {
		c.release = release
	}
	c.ignoreExceptions = envList(ignoreExceptionsKey)
	if reporter := os.Getenv(reporterKey); reporter != "" {
		c.reporterName = reporter
	}
	if env := os.Getenv(environmentKey); env != "" {
		c.environment = env
	}
	c.errorReporting = envBool(errorReportingKey, c.errorReporting)
	c.insecure = envBool(insecureKey, false)
	c.logPath = os.Getenv(logPathKey)
	if level := os.Getenv(logLevelKey); level != "" {
		c.SetLogLevel(level)
	}
}

// deriveKey falls back to the md5 hex digest of the secret key, so
// installations that only configure a secret key still get a stable
// client key.
func deriveKey(secretKey string) string {
	if secretKey == "" {
		return ""
	}
	sum := md5.Sum([]byte(secretKey))
	return hex.EncodeToString(sum[:])
}

func (c *Config) determineDeviceId() string {
	id, machineErr := machineid.ProtectedID("beacon-go")
	if machineErr != nil {
		c.Logger().Err(machineErr).Str("method", "config.New").Msg("cannot retrieve machine id")
		return uuid.NewString()
	}
	return id
}

func (c *Config) Logger() *zerolog.Logger {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.logger
}

func newLogger(_ *Config) *zerolog.Logger {
	logger := log.Logger.With().Str("separator", "-").Str("method", "").Logger()
	return &logger
}

func (c *Config) SetLogLevel(level string) {
	parsedLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		c.Logger().Warn().Str("method", "SetLogLevel").Msgf("can't set log level %s", level)
		return
	}
	c.m.Lock()
	defer c.m.Unlock()
	logger := c.logger.Level(parsedLevel)
	c.logger = &logger
}

// SetLogPath sends the log output to the given file. An empty path selects a
// default location under the xdg state directory.
func (c *Config) SetLogPath(path string) error {
	c.m.Lock()
	defer c.m.Unlock()
	if path == "" {
		path = filepath.Join(xdg.StateHome, "beacon-go", "beacon.log")
	}
	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return err
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if c.logFile != nil {
		_ = c.logFile.Close()
	}
	c.logPath = path
	c.logFile = file
	logger := c.logger.Output(file)
	c.logger = &logger
	return nil
}

func (c *Config) LogPath() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.logPath
}

func (c *Config) ReporterName() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.reporterName
}

func (c *Config) SetReporterName(name string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.reporterName = name
}

func (c *Config) IsErrorReportingEnabled() bool {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.errorReporting
}

func (c *Config) SetErrorReportingEnabled(enabled bool) {
	c.m.Lock()
	defer c.m.Unlock()
	c.errorReporting = enabled
}

func (c *Config) Environment() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.environment
}

func (c *Config) SetEnvironment(environment string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.environment = environment
}

func (c *Config) Dsn() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.dsn
}

func (c *Config) SetDsn(dsn string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.dsn = dsn
}

func (c *Config) Servers() []string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.servers
}

func (c *Config) SetServers(servers []string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.servers = servers
}

// IncludePaths is the union of the configured include paths and the
// application packages registered by the host.
func (c *Config) IncludePaths() []string {
	c.m.RLock()
	defer c.m.RUnlock()
	seen := map[string]bool{}
	var paths []string
	for _, p := range append(append([]string{}, c.includePaths...), c.applicationPackages...) {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		paths = append(paths, p)
	}
	return paths
}

func (c *Config) SetIncludePaths(paths []string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.includePaths = paths
}

// AddApplicationPackage registers a host package as in-app, the same way
// configured include paths are.
func (c *Config) AddApplicationPackage(importPath string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.applicationPackages = append(c.applicationPackages, importPath)
}

func (c *Config) ExcludePaths() []string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.excludePaths
}

func (c *Config) SetExcludePaths(paths []string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.excludePaths = paths
}

func (c *Config) Timeout() time.Duration {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.timeout
}

func (c *Config) SetTimeout(timeout time.Duration) {
	c.m.Lock()
	defer c.m.Unlock()
	c.timeout = timeout
}

func (c *Config) ServerName() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.serverName
}

func (c *Config) SetServerName(name string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.serverName = name
}

func (c *Config) AutoLogStacks() bool {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.autoLogStacks
}

func (c *Config) SetAutoLogStacks(enabled bool) {
	c.m.Lock()
	defer c.m.Unlock()
	c.autoLogStacks = enabled
}

func (c *Config) Key() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.key
}

func (c *Config) SetKey(key string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.key = key
}

func (c *Config) MaxLengthString() int {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.maxLengthString
}

func (c *Config) SetMaxLengthString(maxLength int) {
	c.m.Lock()
	defer c.m.Unlock()
	c.maxLengthString = maxLength
}

func (c *Config) MaxLengthList() int {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.maxLengthList
}

func (c *Config) SetMaxLengthList(maxLength int) {
	c.m.Lock()
	defer c.m.Unlock()
	c.maxLengthList = maxLength
}

func (c *Config) Site() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.site
}

func (c *Config) SetSite(site string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.site = site
}

func (c *Config) PublicKey() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.publicKey
}

func (c *Config) SetPublicKey(key string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.publicKey = key
}

func (c *Config) SecretKey() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.secretKey
}

func (c *Config) SetSecretKey(key string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.secretKey = key
	if c.key == "" {
		c.key = deriveKey(key)
	}
}

func (c *Config) Project() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.project
}

func (c *Config) SetProject(project string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.project = project
}

func (c *Config) Processors() []string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.processors
}

func (c *Config) SetProcessors(processors []string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.processors = processors
}

func (c *Config) ContextTags() map[string]string {
	c.m.RLock()
	defer c.m.RUnlock()
	tags := map[string]string{}
	for k, v := range c.contextTags {
		tags[k] = v
	}
	return tags
}

func (c *Config) SetContextTag(key string, value string) {
	c.m.Lock()
	defer c.m.Unlock()
	if c.contextTags == nil {
		c.contextTags = map[string]string{}
	}
	c.contextTags[key] = value
}

func (c *Config) Release() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.release
}

func (c *Config) SetRelease(release string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.release = release
}

func (c *Config) IgnoreExceptions() []string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.ignoreExceptions
}

func (c *Config) SetIgnoreExceptions(patterns []string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.ignoreExceptions = patterns
}

func (c *Config) Insecure() bool {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.insecure
}

func (c *Config) SetInsecure(insecure bool) {
	c.m.Lock()
	defer c.m.Unlock()
	c.insecure = insecure
}

func (c *Config) DeviceID() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.deviceId
}

func (c *Config) SetDeviceID(deviceId string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.deviceId = deviceId
}

func (c *Config) ConfigFile() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.configFile
}

func (c *Config) SetConfigFile(path string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.configFile = path
}

func envList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var entries []string
	for _, entry := range strings.Split(value, ",") {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

func envTags(key string) map[string]string {
	tags := map[string]string{}
	for _, entry := range envList(key) {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		tags[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return tags
}

func envBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
