package Models

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	sqlmysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the database named by databaseURL. The scheme picks the
// driver:
//
//	sqlite:mileage.db            (also a bare path or file: URI)
//	postgres://user:pw@host/db   (also postgresql://)
//	mysql://user:pw@tcp(host:3306)/db
//
// echo turns on SQL statement logging.
func Open(databaseURL string, echo bool) (*gorm.DB, error) {
	dialector, err := dialectorFor(databaseURL)
	if err != nil {
		return nil, err
	}

	level := logger.Warn
	if echo {
		level = logger.Info
	}
	connection, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return connection, nil
}

func dialectorFor(databaseURL string) (gorm.Dialector, error) {
	switch {
	case databaseURL == "":
		return nil, fmt.Errorf("database url is empty")
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return postgres.Open(databaseURL), nil
	case strings.HasPrefix(databaseURL, "mysql://"):
		dsn, err := mysqlDSN(strings.TrimPrefix(databaseURL, "mysql://"))
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	case strings.HasPrefix(databaseURL, "sqlite:"):
		return sqlite.Open(sqliteDSN(strings.TrimPrefix(databaseURL, "sqlite:"))), nil
	case strings.Contains(databaseURL, "://"):
		return nil, fmt.Errorf("unsupported database url scheme in %q", databaseURL)
	default:
		return sqlite.Open(sqliteDSN(databaseURL)), nil
	}
}

// sqliteDSN enables foreign keys, which sqlite leaves off per connection.
func sqliteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys=") || strings.Contains(path, "_fk=") {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}

// mysqlDSN makes DATE and DATETIME columns scan into UTC time.Time values.
func mysqlDSN(dsn string) (string, error) {
	cfg, err := sqlmysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), nil
}

// Migrate creates or updates the job_sites and drive_logs tables.
func Migrate(db *gorm.DB) error {
	// Job sites first: drive_logs holds the foreign key.
	if err := db.AutoMigrate(&JobSite{}, &DriveLog{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
