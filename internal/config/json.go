package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// JSONConfig mirrors [Config] with json tags and a string-friendly Duration
// type, so configuration files can write intervals as "24h".
type JSONConfig struct {
	App struct {
		KeyAlias    string `json:"key_alias"`
		KeystoreDir string `json:"keystore_dir"`
		Version     string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Backups struct {
			Dir string `json:"dir"`
		} `json:"backups,omitempty"`
	} `json:"storage,omitempty"`

	Security struct {
		RequireAuthForExport bool   `json:"require_auth_for_export"`
		EncryptBackups       bool   `json:"encrypt_backups"`
		ExportFormat         string `json:"export_format"`
	} `json:"security,omitempty"`

	Crypto struct {
		ArgonTime      uint32 `json:"argon_time"`
		ArgonMemoryKiB uint32 `json:"argon_memory_kib"`
		ArgonThreads   uint8  `json:"argon_threads"`
	} `json:"crypto,omitempty"`

	Workers struct {
		AutoBackup     bool     `json:"auto_backup"`
		BackupInterval Duration `json:"backup_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*Config, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg JSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &Config{
		App: App{
			KeyAlias:    jsonCfg.App.KeyAlias,
			KeystoreDir: jsonCfg.App.KeystoreDir,
			Version:     jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Backups: Backups{
				Dir: jsonCfg.Storage.Backups.Dir,
			},
		},
		Security: Security{
			RequireAuthForExport: jsonCfg.Security.RequireAuthForExport,
			EncryptBackups:       jsonCfg.Security.EncryptBackups,
			ExportFormat:         jsonCfg.Security.ExportFormat,
		},
		Crypto: Crypto{
			ArgonTime:      jsonCfg.Crypto.ArgonTime,
			ArgonMemoryKiB: jsonCfg.Crypto.ArgonMemoryKiB,
			ArgonThreads:   jsonCfg.Crypto.ArgonThreads,
		},
		Workers: Workers{
			AutoBackup:     jsonCfg.Workers.AutoBackup,
			BackupInterval: time.Duration(jsonCfg.Workers.BackupInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
