package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testYAML = `
server:
  port: 3000
  read_timeout_seconds: 10

admin:
  port: 9091

mysql:
  host: db.internal
  port: 3306
  user: rinha
  password: secret
  database: rinhabank
  max_open_conns: 50
  max_idle_conns: 10

redis:
  enabled: true
  host: 127.0.0.1
  port: 6379

kafka:
  enabled: true
  brokers:
    - broker1:9092
    - broker2:9092
  topic:
    ledger_events: ledger.transactions

business:
  statement_size: 10
  max_retry_count: 5
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testYAML), 0o600); err != nil {
		t.Fatalf("写配置文件失败: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg := LoadConfig(writeTestConfig(t))

	if cfg.Server.Port != 3000 || cfg.Admin.Port != 9091 {
		t.Fatalf("server=%+v admin=%+v", cfg.Server, cfg.Admin)
	}
	if cfg.MySQL.Host != "db.internal" || cfg.MySQL.MaxOpenConns != 50 {
		t.Fatalf("mysql=%+v", cfg.MySQL)
	}
	if !cfg.Kafka.Enabled || len(cfg.Kafka.Brokers) != 2 {
		t.Fatalf("kafka=%+v", cfg.Kafka)
	}
	if cfg.Kafka.Topic.LedgerEvents != "ledger.transactions" {
		t.Fatalf("topic=%+v", cfg.Kafka.Topic)
	}
	if cfg.Business.StatementSize != 10 {
		t.Fatalf("business=%+v", cfg.Business)
	}
}

// 环境变量覆盖文件配置
func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("RINHA_MYSQL_HOST", "env.override")
	t.Setenv("RINHA_MYSQL_PASSWORD", "env-secret")

	cfg := LoadConfig(writeTestConfig(t))

	if cfg.MySQL.Host != "env.override" {
		t.Fatalf("host=%q", cfg.MySQL.Host)
	}
	if cfg.MySQL.Password != "env-secret" {
		t.Fatalf("password=%q", cfg.MySQL.Password)
	}
}
