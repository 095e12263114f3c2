package db

import (
	"context"
	"fmt"
	"math"
	"time"

	dbmodels "github.com/gartstein/layofflens/internal/layoffs/db/models"
	e "github.com/gartstein/layofflens/internal/layoffs/errors"
	"github.com/gartstein/layofflens/internal/layoffs/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Repository struct {
	db *gorm.DB
}

type Config struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	// Path is the database file for the sqlite driver.
	Path string
}

func (c *Config) dialector() (gorm.Dialector, error) {
	switch c.Driver {
	case "", DriverPostgres:
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
		return postgres.Open(dsn), nil
	case DriverSQLite:
		return sqlite.Open(c.Path), nil
	default:
		return nil, fmt.Errorf("%w: unknown driver %q", e.ErrInvalidInput, c.Driver)
	}
}

func NewRepository(cfg *Config) (*Repository, error) {
	dialector, err := cfg.dialector()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&dbmodels.Layoff{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{db: db}, nil
}

// QueryRecords returns one page of matching records, newest first, and the total match count.
func (r *Repository) QueryRecords(ctx context.Context, filter models.Filter, page, limit int) ([]models.LayoffRecord, int64, error) {
	if page < 1 || limit < 1 {
		return nil, 0, fmt.Errorf("%w: page and limit must be positive", e.ErrInvalidInput)
	}
	if page-1 > math.MaxInt32/limit {
		return nil, 0, fmt.Errorf("%w: page %d is out of range", e.ErrInvalidInput, page)
	}

	var total int64
	if err := applyFilter(r.db.WithContext(ctx).Model(&dbmodels.Layoff{}), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []dbmodels.Layoff
	result := applyFilter(r.db.WithContext(ctx), filter).
		Order("date DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return toDomain(rows), total, nil
}

// ListRecords returns every matching record, newest first.
func (r *Repository) ListRecords(ctx context.Context, filter models.Filter) ([]models.LayoffRecord, error) {
	var rows []dbmodels.Layoff
	result := applyFilter(r.db.WithContext(ctx), filter).Order("date DESC").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return toDomain(rows), nil
}

// InsertRecords inserts records as a single statement and returns them with their assigned IDs.
func (r *Repository) InsertRecords(ctx context.Context, records []models.LayoffRecord) ([]models.LayoffRecord, error) {
	if len(records) == 0 {
		return nil, nil
	}
	rows := fromDomain(records)
	if result := r.db.WithContext(ctx).Create(&rows); result.Error != nil {
		return nil, result.Error
	}
	return toDomain(rows), nil
}

func (r *Repository) InsertRecord(ctx context.Context, record *models.LayoffRecord) error {
	row := fromDomain([]models.LayoffRecord{*record})[0]
	if result := r.db.WithContext(ctx).Create(&row); result.Error != nil {
		return result.Error
	}
	record.ID = row.ID
	record.CreatedAt = row.CreatedAt
	return nil
}

// DeleteAllRecords wipes the table and reports how many rows were removed.
func (r *Repository) DeleteAllRecords(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&dbmodels.Layoff{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Distinct returns the sorted, non-empty values of the sector or location column.
func (r *Repository) Distinct(ctx context.Context, column string) ([]string, error) {
	switch column {
	case "sector", "location":
	default:
		return nil, fmt.Errorf("%w: column %q", e.ErrInvalidInput, column)
	}

	var values []string
	result := r.db.WithContext(ctx).Model(&dbmodels.Layoff{}).
		Where(column+" <> ?", "").
		Distinct().
		Order(column).
		Pluck(column, &values)
	if result.Error != nil {
		return nil, result.Error
	}
	return values, nil
}

func (r *Repository) WithTransaction(ctx context.Context, fn func(repo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

func applyFilter(q *gorm.DB, f models.Filter) *gorm.DB {
	if f.Sector != "" {
		q = q.Where("sector = ?", f.Sector)
	}
	if f.Location != "" {
		q = q.Where("location = ?", f.Location)
	}
	if f.StartDate != nil {
		q = q.Where("date >= ?", f.StartDate.UTC())
	}
	if f.EndDate != nil {
		q = q.Where("date <= ?", f.EndDate.UTC())
	}
	return q
}

func toDomain(rows []dbmodels.Layoff) []models.LayoffRecord {
	out := make([]models.LayoffRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.LayoffRecord{
			ID:        row.ID,
			Company:   row.Company,
			Date:      row.Date.UTC(),
			Count:     row.Count,
			Sector:    row.Sector,
			Location:  row.Location,
			SourceURL: row.SourceURL,
			CreatedAt: row.CreatedAt,
		})
	}
	return out
}

func fromDomain(records []models.LayoffRecord) []dbmodels.Layoff {
	out := make([]dbmodels.Layoff, 0, len(records))
	for _, rec := range records {
		date := rec.Date
		if date.IsZero() {
			date = time.Now()
		}
		out = append(out, dbmodels.Layoff{
			ID:        rec.ID,
			Company:   rec.Company,
			Date:      date.UTC(),
			Count:     rec.Count,
			Sector:    rec.Sector,
			Location:  rec.Location,
			SourceURL: rec.SourceURL,
		})
	}
	return out
}
