package configs_test

import (
	"testing"
	"time"

	kcfg "github.com/openchess/tournhall/pkg/configs"
)

func TestLoadTournConfig(t *testing.T) {

	t.Run("it can be created from a config file", func(t *testing.T) {
		result, err := kcfg.LoadTournConfig("./testdata/config.yaml")

		if err != nil {
			t.Fatalf("failed to parse config.: %v", err)
		}
		if result.Port() != 8080 {
			t.Errorf("unmatch port:%d, expected:%d", result.Port(), 8080)
		}
		expectedDB := "postgres://tournhall-pgdb-svc:5432/tournhall"
		if result.Database() != expectedDB {
			t.Errorf("unmatch database:%s, expected:%s", result.Database(), expectedDB)
		}

		cache := result.Cache()
		if cache == nil {
			t.Fatal("cache config is not read")
		}
		if cache.Address() != "tournhall-redis-svc:6379" ||
			cache.Password() != "cache-pass" ||
			cache.DB() != 2 ||
			cache.KeyPrefix() != "tourn_" {
			t.Errorf("unmatch cache config: %+v", cache)
		}

		auth := result.Auth()
		if auth.SignKey() != "test-sign-key" || auth.TokenTTL() != time.Hour {
			t.Errorf("unmatch auth config: %+v", auth)
		}

		audit := result.Audit()
		if audit == nil {
			t.Fatal("audit config is not read")
		}
		if audit.Endpoint() != "http://tournhall-auditd-svc:8089/api/audit" ||
			audit.Source() != "tournd-main" ||
			audit.Buffer() != 64 {
			t.Errorf("unmatch audit config: %+v", audit)
		}

		if result.Stats().Interval() != 90*time.Second {
			t.Errorf("unmatch stats interval: %s", result.Stats().Interval())
		}
	})

	t.Run("optional sections default or stay off", func(t *testing.T) {
		result, err := kcfg.LoadTournConfig("./testdata/minimal.yaml")

		if err != nil {
			t.Fatalf("failed to parse config.: %v", err)
		}
		if result.Cache() != nil {
			t.Errorf("cache should be off: %+v", result.Cache())
		}
		if result.Audit() != nil {
			t.Errorf("audit should be off: %+v", result.Audit())
		}
		if result.Auth().TokenTTL() != 8*time.Hour {
			t.Errorf("unmatch default token ttl: %s", result.Auth().TokenTTL())
		}
		if result.Stats().Interval() != 5*time.Minute {
			t.Errorf("unmatch default stats interval: %s", result.Stats().Interval())
		}
	})

	t.Run("it errors for a file not existing", func(t *testing.T) {
		if _, err := kcfg.LoadTournConfig("./testdata/no-such-file.yaml"); err == nil {
			t.Error("no error for a missing file")
		}
	})
}

func TestLoadAuditdConfig(t *testing.T) {
	result, err := kcfg.LoadAuditdConfig("./testdata/auditd.yaml")

	if err != nil {
		t.Fatalf("failed to parse config.: %v", err)
	}
	if result.Port() != 8089 {
		t.Errorf("unmatch port:%d, expected:%d", result.Port(), 8089)
	}
	if result.Database() != "postgres://tournhall-pgdb-svc:5432/tournhall" {
		t.Errorf("unmatch database:%s", result.Database())
	}
	if result.Spool() != "/var/spool/tournhall-audit" {
		t.Errorf("unmatch spool:%s", result.Spool())
	}
}

func TestTrySeal(t *testing.T) {
	for name, marshalled := range map[string]*kcfg.TournConfigMarshall{
		"without port": {
			Database: "postgres://somewhere/db",
			Auth:     &kcfg.AuthConfigMarshall{SignKey: "key"},
		},
		"without database": {
			Port: 8080,
			Auth: &kcfg.AuthConfigMarshall{SignKey: "key"},
		},
		"without auth": {
			Port:     8080,
			Database: "postgres://somewhere/db",
		},
		"without auth sign key": {
			Port:     8080,
			Database: "postgres://somewhere/db",
			Auth:     &kcfg.AuthConfigMarshall{},
		},
		"with a broken token ttl": {
			Port:     8080,
			Database: "postgres://somewhere/db",
			Auth:     &kcfg.AuthConfigMarshall{SignKey: "key", TokenTTL: "an hour"},
		},
	} {
		t.Run("it panics for a config "+name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("TrySeal does not panic")
				}
			}()
			kcfg.TrySeal[*kcfg.TournConfig](marshalled)
		})
	}
}
