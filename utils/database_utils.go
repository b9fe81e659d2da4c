// database_utils should be the canonical place to put shared DB utils.
// It should not include:
// 1. Any util that doesn't manipulate DB
// 2. Any util that contains business logic
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/Luismorlan/blogmux/model"
	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	TestDBPrefix         = "testonlydb_"
	TestDBNameCharLength = 8
)

// GormTransaction is the callback function used during db.Transaction in Gorm.
type GormTransaction func(tx *gorm.DB) error

func randomTestDBName() string {
	return TestDBPrefix + RandomAlphabetString(TestDBNameCharLength)
}

// GetDBConnection get a connection to the database specified by env
func GetDBConnection() (*gorm.DB, error) {
	return GetCustomizedConnection(os.Getenv("DB_NAME"))
}

// GetCustomizedConnection connect to any postgres db on the configured host
func GetCustomizedConnection(dbName string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable", os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASS"), dbName, os.Getenv("DB_PORT"))
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

// Create a temp DB for testing, note that this function should only be called
// in a testing environment with test state manager testing.T
// The database is a SQLite file under t.TempDir() with foreign keys turned
// on, it is closed and removed after the test.
func CreateTempDB(t *testing.T) (*gorm.DB, string) {
	t.Helper()
	dbName := randomTestDBName()
	path := filepath.Join(t.TempDir(), dbName+".db")
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("fail to create temp DB %s: %s", dbName, err)
	}
	conn, err := db.DB()
	if err != nil {
		t.Fatalf("fail to get sql DB of %s: %s", dbName, err)
	}
	// SQLite allows a single writer, serialize through one connection.
	conn.SetMaxOpenConns(1)

	if err := DatabaseSetupAndMigration(db); err != nil {
		t.Fatalf("fail to migrate temp DB %s: %s", dbName, err)
	}
	t.Cleanup(func() {
		// Proactively close the connection instead of deferring to GC, the temp
		// dir can't be removed while the file is held open on some platforms.
		conn.Close()
	})

	return db, dbName
}

// DatabaseSetupAndMigration creates or updates every table of the data model.
// Order matters, referenced tables are created before the ones pointing to
// them.
func DatabaseSetupAndMigration(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Post{},
		&model.Comment{},
		&model.Follow{},
	)
	return errors.Wrap(err, "failed to migrate database")
}
