package configs

import "time"

// Configuration of the tournament registry.
//
// to get `TournConfig` instance, use `TournConfigMarshall.TrySeal()` .
type TournConfig struct {
	port     int32
	database string
	cache    *CacheConfig
	auth     *AuthConfig
	audit    *AuditSinkConfig
	stats    *StatsConfig
}

func (t *TournConfig) Port() int32 {
	return t.port
}

// Connection string for database.
func (t *TournConfig) Database() string {
	return t.database
}

// Configuration for the redis cache. nil when caching is off.
func (t *TournConfig) Cache() *CacheConfig {
	return t.cache
}

func (t *TournConfig) Auth() *AuthConfig {
	return t.auth
}

// Configuration for the audit sink client. nil when auditing is off.
func (t *TournConfig) Audit() *AuditSinkConfig {
	return t.audit
}

func (t *TournConfig) Stats() *StatsConfig {
	return t.stats
}

// Configuration for the redis cache in front of read-heavy endpoints.
type CacheConfig struct {
	address   string
	password  string
	db        int
	keyPrefix string
}

func (c *CacheConfig) Address() string {
	return c.address
}

func (c *CacheConfig) Password() string {
	return c.password
}

func (c *CacheConfig) DB() int {
	return c.db
}

// Prefix of every cache key. default = "chess_"
func (c *CacheConfig) KeyPrefix() string {
	return c.keyPrefix
}

// Configuration for session token signing.
type AuthConfig struct {
	signKey  string
	tokenTTL time.Duration
}

// HS256 key signing session tokens.
func (a *AuthConfig) SignKey() string {
	return a.signKey
}

// How long an issued session token stays valid. default = 8h
func (a *AuthConfig) TokenTTL() time.Duration {
	return a.tokenTTL
}

// Configuration for shipping audit events.
type AuditSinkConfig struct {
	endpoint string
	source   string
	buffer   int
}

// URL of the audit sink, e.g. "http://auditd:8089/api/audit".
func (a *AuditSinkConfig) Endpoint() string {
	return a.endpoint
}

// Source tag stamped on every event. default = "tournd"
func (a *AuditSinkConfig) Source() string {
	return a.source
}

// Size of the in-memory event buffer. default = 256
func (a *AuditSinkConfig) Buffer() int {
	return a.buffer
}

// Configuration for the stats aggregation loop.
type StatsConfig struct {
	interval time.Duration
}

// Pause between aggregation runs. default = 5m
func (s *StatsConfig) Interval() time.Duration {
	return s.interval
}

// Configuration of the audit sink daemon.
type AuditdConfig struct {
	port     int32
	database string
	spool    string
}

func (a *AuditdConfig) Port() int32 {
	return a.port
}

// Connection string for database. Empty means spool-only operation.
func (a *AuditdConfig) Database() string {
	return a.database
}

// Directory where events are journaled as date-partitioned JSON Lines.
func (a *AuditdConfig) Spool() string {
	return a.spool
}
