package configs

import (
	"fmt"
	"time"
)

type Marshalled[S any] interface {
	trySeal(string) S
}

// seal marshalled object.
//
// this function CAN CAUSE PANIC if misconfiguration is found.
//
// All types named `pkg/configs.XxxMarshall` are `Marshalled[*Xxx]` .
func TrySeal[S any](conf Marshalled[S]) S {
	return conf.trySeal("(root)")
}

// Configuration of the tournament registry.
//
// This type is marshalling value and mutable.
// Consider to use immutable version, `TournConfig`.
// You can get `TournConfig` instance with `TournConfigMarshall.TrySeal()`
type TournConfigMarshall struct {
	Port     int32                     `yaml:"port"`
	Database string                    `yaml:"database"`
	Cache    *CacheConfigMarshall      `yaml:"cache,omitempty"`
	Auth     *AuthConfigMarshall       `yaml:"auth"`
	Audit    *AuditSinkConfigMarshall  `yaml:"audit,omitempty"`
	Stats    *StatsConfigMarshall      `yaml:"stats,omitempty"`
}

var _ Marshalled[*TournConfig] = &TournConfigMarshall{}

func (tm *TournConfigMarshall) TrySeal() *TournConfig {
	return tm.trySeal("(root)")
}

func (tm *TournConfigMarshall) trySeal(path string) *TournConfig {
	var cache *CacheConfig
	if tm.Cache != nil {
		cache = tm.Cache.trySeal(path + ".cache")
	}
	var audit *AuditSinkConfig
	if tm.Audit != nil {
		audit = tm.Audit.trySeal(path + ".audit")
	}
	stats := (&StatsConfigMarshall{}).trySeal(path + ".stats")
	if tm.Stats != nil {
		stats = tm.Stats.trySeal(path + ".stats")
	}
	return &TournConfig{
		port:     required(tm.Port, path+".port"),
		database: required(tm.Database, path+".database"),
		cache:    cache,
		auth:     nonnil(tm.Auth, path+".auth").trySeal(path + ".auth"),
		audit:    audit,
		stats:    stats,
	}
}

type CacheConfigMarshall struct {
	Address   string `yaml:"address"`
	Password  string `yaml:"password,omitempty"`
	DB        int    `yaml:"db,omitempty"`
	KeyPrefix string `yaml:"keyPrefix,omitempty"`
}

func (cm *CacheConfigMarshall) trySeal(path string) *CacheConfig {
	keyPrefix := cm.KeyPrefix
	if keyPrefix == "" {
		keyPrefix = "chess_"
	}
	return &CacheConfig{
		address:   required(cm.Address, path+".address"),
		password:  cm.Password,
		db:        cm.DB,
		keyPrefix: keyPrefix,
	}
}

type AuthConfigMarshall struct {
	SignKey  string `yaml:"signKey"`
	TokenTTL string `yaml:"tokenTTL,omitempty"`
}

func (am *AuthConfigMarshall) trySeal(path string) *AuthConfig {
	tokenTTL := 8 * time.Hour
	if am.TokenTTL != "" {
		d, err := time.ParseDuration(am.TokenTTL)
		if err != nil {
			panic(fmt.Errorf("%s.tokenTTL can not be parsed: %w", path, err))
		}
		tokenTTL = d
	}
	return &AuthConfig{
		signKey:  required(am.SignKey, path+".signKey"),
		tokenTTL: tokenTTL,
	}
}

type AuditSinkConfigMarshall struct {
	Endpoint string `yaml:"endpoint"`
	Source   string `yaml:"source,omitempty"`
	Buffer   int    `yaml:"buffer,omitempty"`
}

func (am *AuditSinkConfigMarshall) trySeal(path string) *AuditSinkConfig {
	source := am.Source
	if source == "" {
		source = "tournd"
	}
	buffer := am.Buffer
	if buffer <= 0 {
		buffer = 256
	}
	return &AuditSinkConfig{
		endpoint: required(am.Endpoint, path+".endpoint"),
		source:   source,
		buffer:   buffer,
	}
}

type StatsConfigMarshall struct {
	Interval string `yaml:"interval,omitempty"`
}

func (sm *StatsConfigMarshall) trySeal(path string) *StatsConfig {
	interval := 5 * time.Minute
	if sm.Interval != "" {
		d, err := time.ParseDuration(sm.Interval)
		if err != nil {
			panic(fmt.Errorf("%s.interval can not be parsed: %w", path, err))
		}
		interval = d
	}
	return &StatsConfig{interval: interval}
}

// Configuration of the audit sink daemon.
//
// This type is marshalling value and mutable.
// Consider to use immutable version, `AuditdConfig`.
type AuditdConfigMarshall struct {
	Port     int32  `yaml:"port"`
	Database string `yaml:"database,omitempty"`
	Spool    string `yaml:"spool"`
}

var _ Marshalled[*AuditdConfig] = &AuditdConfigMarshall{}

func (am *AuditdConfigMarshall) TrySeal() *AuditdConfig {
	return am.trySeal("(root)")
}

func (am *AuditdConfigMarshall) trySeal(path string) *AuditdConfig {
	return &AuditdConfig{
		port:     required(am.Port, path+".port"),
		database: am.Database,
		spool:    required(am.Spool, path+".spool"),
	}
}

func nonnil[T any](v *T, path string) *T {
	if v == nil {
		panic(path + " is required")
	}
	return v
}

func required[T comparable](v T, path string) T {
	if v == *new(T) {
		panic(path + " is required")
	}
	return v
}
