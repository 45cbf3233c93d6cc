package config

import (
	"flag"
	"os"
	"time"
)

// ParseFlags parses all configuration flags from os.Args.
//
// Flags:
//
//	-d database DSN (sqlite file path)
//	-b backup output directory
//	-key-alias envelope key alias
//	-keystore-dir keystore directory
//	-c/-config json file path with configs
//	-export-format native backup format ("json" or "csv")
//	-encrypt-backups passphrase-encrypt backup payloads
//	-require-auth-for-export demand fresh device auth before export
//	-auto-backup enable the periodic backup job
//	-backup-interval period between automatic backups (e.g., "24h")
func ParseFlags() (*Config, error) {
	return parseFlags(os.Args[1:])
}

// parseFlags is ParseFlags on an explicit argument slice; split out so tests
// can drive it without touching the process arguments.
func parseFlags(args []string) (*Config, error) {
	var databaseDSN string
	var backupDir string
	var keyAlias string
	var keystoreDir string
	var jsonConfigPath string
	var exportFormat string
	var encryptBackups bool
	var requireAuthForExport bool
	var autoBackup bool
	var backupInterval time.Duration

	fs := flag.NewFlagSet("passvault", flag.ContinueOnError)
	fs.StringVar(&databaseDSN, "d", "", "Database DSN (sqlite file path)")
	fs.StringVar(&backupDir, "b", "", "Backup output directory")
	fs.StringVar(&keyAlias, "key-alias", "", "Envelope key alias")
	fs.StringVar(&keystoreDir, "keystore-dir", "", "Keystore directory")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&exportFormat, "export-format", "", "Native backup format: json or csv")
	fs.BoolVar(&encryptBackups, "encrypt-backups", false, "Passphrase-encrypt backup payloads")
	fs.BoolVar(&requireAuthForExport, "require-auth-for-export", false, "Demand fresh device auth before export")
	fs.BoolVar(&autoBackup, "auto-backup", false, "Enable the periodic backup job")
	fs.DurationVar(&backupInterval, "backup-interval", 0, "Period between automatic backups (e.g., 24h)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &Config{
		App: App{
			KeyAlias:    keyAlias,
			KeystoreDir: keystoreDir,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Backups: Backups{
				Dir: backupDir,
			},
		},
		Security: Security{
			RequireAuthForExport: requireAuthForExport,
			EncryptBackups:       encryptBackups,
			ExportFormat:         exportFormat,
		},
		Workers: Workers{
			AutoBackup:     autoBackup,
			BackupInterval: backupInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}
