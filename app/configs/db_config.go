package configs

import (
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

func dialector(env ENV) (gorm.Dialector, string, error) {
	switch env.DBDriver {
	case DriverSQLite:
		return sqlite.Open(env.DBName), env.DBName, nil
	case DriverMySQL, "":
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			env.DBUser,
			env.DBPassword,
			env.DBHost,
			env.DBPort,
			env.DBName,
		)
		// the password never reaches the logs
		safe := fmt.Sprintf("%s:***@tcp(%s:%s)/%s", env.DBUser, env.DBHost, env.DBPort, env.DBName)
		return mysql.Open(dsn), safe, nil
	default:
		return nil, "", fmt.Errorf("unsupported DB_DRIVER %q", env.DBDriver)
	}
}

func OpenConnection(env ENV, log logrus.FieldLogger) (*gorm.DB, error) {
	dial, target, err := dialector(env)
	if err != nil {
		return nil, err
	}

	maxRetries := 10
	retryDelay := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		log.Infof("Attempting to connect to database (Attempt %d/%d) using %s", i+1, maxRetries, target)
		db, err := gorm.Open(dial, &gorm.Config{})
		if err == nil {

			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
				if pingErr == nil {
					log.Info("Database connection successful")
					return db, nil
				}
			}

			log.Warnf("Failed to ping database: %v. Retrying in %v...", pingErr, retryDelay)
		} else {
			log.Warnf("Failed to open GORM connection: %v. Retrying in %v...", err, retryDelay)
		}

		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("failed to connect to the database after %d retries (%s)", maxRetries, target)
}
