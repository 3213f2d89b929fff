package db

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	embeddedmigrations "github.com/terraincognita07/bodysignal/migrations"
	"gorm.io/gorm"
)

var (
	ErrEmptyMigration         = errors.New("migration has no SQL statements")
	ErrMigrationChecksum      = errors.New("applied migration was modified")
	migrationFilePattern      = regexp.MustCompile(`^(\d+)_[a-z0-9_]+\.sql$`)
	addColumnStatementPattern = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+(\S+)\s+ADD\s+COLUMN\s+(\S+)`)
)

type embeddedMigration struct {
	Version  string
	Order    int
	Name     string
	SQL      string
	Checksum string
}

// schemaMigration is one row of the bookkeeping table.
type schemaMigration struct {
	Version   string    `gorm:"column:version;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Checksum  string    `gorm:"column:checksum;not null;default:''"`
	AppliedAt time.Time `gorm:"column:applied_at;not null"`
}

func (schemaMigration) TableName() string {
	return "schema_migrations"
}

// applyEmbeddedMigrations brings the schema up to date with the SQL files
// compiled into the binary and returns the names it applied. A migration
// whose file changed after it was applied stops the boot.
func applyEmbeddedMigrations(database *gorm.DB) ([]string, error) {
	migrations, err := loadEmbeddedMigrations(embeddedmigrations.Files)
	if err != nil {
		return nil, err
	}
	if err := ensureSchemaMigrationsTable(database); err != nil {
		return nil, err
	}

	recorded, err := loadAppliedMigrations(database)
	if err != nil {
		return nil, err
	}

	applied := make([]string, 0)
	for _, migration := range migrations {
		if record, ok := recorded[migration.Version]; ok {
			if err := verifyChecksum(database, record, migration); err != nil {
				return applied, err
			}
			continue
		}
		if err := applyMigration(database, migration); err != nil {
			return applied, err
		}
		applied = append(applied, migration.Name)
	}
	return applied, nil
}

func ensureSchemaMigrationsTable(database *gorm.DB) error {
	if err := database.AutoMigrate(&schemaMigration{}); err != nil {
		return fmt.Errorf("prepare schema_migrations: %w", err)
	}
	return nil
}

// loadEmbeddedMigrations reads NNN_name.sql files from the root of files in
// numeric order. Other files are ignored; a repeated number is an error.
func loadEmbeddedMigrations(files fs.FS) ([]embeddedMigration, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}

	byVersion := make(map[string]string, len(entries))
	migrations := make([]embeddedMigration, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		matches := migrationFilePattern.FindStringSubmatch(name)
		if entry.IsDir() || matches == nil {
			continue
		}

		version := matches[1]
		if previous, exists := byVersion[version]; exists {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", version, previous, name)
		}
		byVersion[version] = name

		order, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("migration %s: %w", name, err)
		}
		raw, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}

		sum := sha256.Sum256(raw)
		migrations = append(migrations, embeddedMigration{
			Version:  version,
			Order:    order,
			Name:     name,
			SQL:      string(raw),
			Checksum: hex.EncodeToString(sum[:]),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Order < migrations[j].Order
	})
	return migrations, nil
}

func loadAppliedMigrations(database *gorm.DB) (map[string]schemaMigration, error) {
	var rows []schemaMigration
	if err := database.Order("version").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load applied migrations: %w", err)
	}

	recorded := make(map[string]schemaMigration, len(rows))
	for _, row := range rows {
		recorded[row.Version] = row
	}
	return recorded, nil
}

// verifyChecksum compares a recorded migration with the embedded file. Rows
// written before checksums were tracked are filled in instead.
func verifyChecksum(database *gorm.DB, record schemaMigration, migration embeddedMigration) error {
	if record.Checksum == "" {
		return database.Model(&schemaMigration{}).
			Where("version = ?", record.Version).
			Update("checksum", migration.Checksum).Error
	}
	if record.Checksum != migration.Checksum {
		return fmt.Errorf("%w: %s", ErrMigrationChecksum, migration.Name)
	}
	return nil
}

func applyMigration(database *gorm.DB, migration embeddedMigration) error {
	statements := splitSQLStatements(migration.SQL)
	if len(statements) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyMigration, migration.Name)
	}

	return database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range statements {
			if addedColumnExists(tx, statement) {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("migration %s: %w", migration.Name, err)
			}
		}

		record := schemaMigration{
			Version:   migration.Version,
			Name:      migration.Name,
			Checksum:  migration.Checksum,
			AppliedAt: time.Now().UTC(),
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", migration.Name, err)
		}
		return nil
	})
}

// addedColumnExists reports whether statement is an ADD COLUMN for a column
// the table already has. SQLite has no ADD COLUMN IF NOT EXISTS.
func addedColumnExists(tx *gorm.DB, statement string) bool {
	matches := addColumnStatementPattern.FindStringSubmatch(statement)
	if matches == nil {
		return false
	}
	table := unquoteIdentifier(matches[1])
	return tx.Migrator().HasTable(table) && tx.Migrator().HasColumn(table, unquoteIdentifier(matches[2]))
}

// splitSQLStatements cuts sqlText on semicolons outside single-quoted
// literals and drops "--" comments.
func splitSQLStatements(sqlText string) []string {
	var (
		statements []string
		current    strings.Builder
		inString   bool
	)
	flush := func() {
		if statement := strings.TrimSpace(current.String()); statement != "" {
			statements = append(statements, statement)
		}
		current.Reset()
	}

	for _, line := range strings.Split(sqlText, "\n") {
		if !inString && strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		for _, r := range line {
			switch {
			case r == '\'':
				inString = !inString
				current.WriteRune(r)
			case r == ';' && !inString:
				flush()
			default:
				current.WriteRune(r)
			}
		}
		current.WriteByte('\n')
	}
	flush()
	return statements
}

func unquoteIdentifier(identifier string) string {
	return strings.Trim(strings.TrimSpace(identifier), "\"`[]")
}
