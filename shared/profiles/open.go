package profiles

import (
	"fmt"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Drivers lists the store backends accepted by Open.
var Drivers = []string{"sqlite", "postgres", "mysql", "sqlserver"}

// Open opens the profile database using the specified driver and DSN.
func Open(driver, dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "postgres", "pg", "postgresql":
		return gorm.Open(postgres.Open(dsn), cfg)
	case "mysql", "mariadb":
		return gorm.Open(mysql.Open(dsn), cfg)
	case "sqlite", "sqlite3", "":
		return gorm.Open(sqlite.Open(dsn), cfg)
	case "sqlserver", "mssql":
		return gorm.Open(sqlserver.Open(dsn), cfg)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}
}
