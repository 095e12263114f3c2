package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gartstein/layofflens/internal/layoffs/config"
	"github.com/gartstein/layofflens/internal/layoffs/db"
	"github.com/gartstein/layofflens/internal/layoffs/events"
	"github.com/gartstein/layofflens/internal/layoffs/loader"
	"github.com/gartstein/layofflens/internal/layoffs/models"
	"github.com/gartstein/layofflens/internal/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

const sampleCSV = "Company,Location HQ,# Laid Off,Date,Industry,Source\n" +
	"Acme Inc,Seattle,100,2024-01-15,Tech,https://a.example\n" +
	",Austin,5,2024-01-01,Retail,\n" +
	"Globex,London,\"1,500\",2024-02-01,Finance,\n"

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DBDriver = config.DriverSQLite
	cfg.DBPath = filepath.Join(t.TempDir(), "layofflens.sqlite")
	cfg.BatchDelayMS = 0
	return cfg
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func storedCompanies(t *testing.T, cfg *config.Config) []string {
	t.Helper()
	repo, err := db.NewRepository(dbConfig(cfg))
	require.NoError(t, err)
	defer repo.Close()

	records, err := repo.ListRecords(context.Background(), models.Filter{})
	require.NoError(t, err)
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Company)
	}
	return names
}

func TestDBConfig(t *testing.T) {
	cfg := config.Default()
	cfg.DBUser = "svc"
	cfg.DBPassword = "secret"
	cfg.DBName = "layoffs"

	got := dbConfig(cfg)

	assert.Equal(t, &db.Config{
		Driver:   config.DriverPostgres,
		Host:     "localhost",
		Port:     5432,
		User:     "svc",
		Password: "secret",
		DBName:   "layoffs",
		SSLMode:  "disable",
		Path:     "layofflens.sqlite",
	}, got)
}

func TestRunImport(t *testing.T) {
	for _, atomic := range []bool{false, true} {
		t.Run(map[bool]string{false: "batched", true: "atomic"}[atomic], func(t *testing.T) {
			cfg := sqliteConfig(t)
			opts := importOptions{csvPath: writeFile(t, "layoffs.csv", sampleCSV), atomic: atomic}

			report, err := runImport(context.Background(), cfg, opts, zaptest.NewLogger(t))
			require.NoError(t, err)

			assert.Equal(t, 3, report.RowsRead)
			assert.Equal(t, 2, report.RowsValidated)
			assert.Equal(t, 2, report.RowsInserted)
			assert.Equal(t, 1, report.ValidationFailed)
			assert.Equal(t, atomic, report.Atomic)
			assert.Equal(t, []string{"Row 2: missing company name"}, report.ValidationErrors)

			assert.Equal(t, []string{"Globex", "Acme Inc"}, storedCompanies(t, cfg))
		})
	}
}

func TestRunImport_ReplacesExisting(t *testing.T) {
	cfg := sqliteConfig(t)
	logger := zaptest.NewLogger(t)

	_, err := runImport(context.Background(), cfg, importOptions{csvPath: writeFile(t, "a.csv", sampleCSV)}, logger)
	require.NoError(t, err)

	second := "Company,Date\nInitech,2024-03-01\n"
	_, err = runImport(context.Background(), cfg, importOptions{csvPath: writeFile(t, "b.csv", second)}, logger)
	require.NoError(t, err)

	assert.Equal(t, []string{"Initech"}, storedCompanies(t, cfg))
}

func TestRunImport_MissingFile(t *testing.T) {
	_, err := runImport(context.Background(), sqliteConfig(t), importOptions{csvPath: "does-not-exist.csv"}, zaptest.NewLogger(t))
	assert.ErrorContains(t, err, "open csv")
}

func TestImportStore_AtomicallyRollsBack(t *testing.T) {
	cfg := sqliteConfig(t)
	repo, err := db.NewRepository(dbConfig(cfg))
	require.NoError(t, err)
	defer repo.Close()
	ctx := context.Background()

	_, err = repo.InsertRecords(ctx, []models.LayoffRecord{{Company: "Kept", Date: time.Now(), Sector: "Tech"}})
	require.NoError(t, err)

	var store loader.Transactor = importStore{repo}
	err = store.Atomically(ctx, func(tx loader.Store) error {
		if _, err := tx.DeleteAllRecords(ctx); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	records, err := repo.ListRecords(ctx, models.Filter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Kept", records[0].Company)
}

func TestImportCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cli.sqlite")
	cfgPath := writeFile(t, "config.yaml", "DB_DRIVER: sqlite\nDB_PATH: "+dbPath+"\nBATCH_DELAY_MS: 0\n")
	csvPath := writeFile(t, "layoffs.csv", sampleCSV)

	var out bytes.Buffer
	root := newRootCmd(zaptest.NewLogger(t))
	root.SetOut(&out)
	root.SetArgs([]string{"import", "--config", cfgPath, "--csv", csvPath})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "inserted:          2")
	assert.Contains(t, out.String(), "Row 2: missing company name")
}

func TestWatchCommand_RequiresKafka(t *testing.T) {
	cfgPath := writeFile(t, "config.yaml", "DB_DRIVER: sqlite\nTOPIC: \"\"\n")

	root := newRootCmd(zaptest.NewLogger(t))
	root.SetArgs([]string{"watch", "--config", cfgPath})

	assert.ErrorContains(t, root.Execute(), "KAFKA_BROKERS")
}

func TestPrintReport(t *testing.T) {
	var out bytes.Buffer
	cmd := newImportCmd(nil, zap.NewNop())
	cmd.SetOut(&out)

	printReport(cmd, &models.ImportReport{
		RowsRead:             15,
		ValidationErrors:     []string{"Row 1: missing company name"},
		MoreValidationErrors: 4,
		BatchErrors:          []models.BatchError{{Batch: 2, Size: 100, Message: "constraint violation"}},
	})

	assert.Contains(t, out.String(), "rows read:         15")
	assert.Contains(t, out.String(), "... and 4 more errors")
	assert.Contains(t, out.String(), "batch 2 (100 records): constraint violation")
}

func TestLogEvent(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handle := logEvent(zap.New(core))

	err := handle(context.Background(), events.Event{
		Type:   events.LayoffCreated,
		Layoff: &models.LayoffRecord{Company: "Acme", Count: utils.Ptr(42)},
	})
	require.NoError(t, err)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Event received", entry.Message)
	assert.Equal(t, string(events.LayoffCreated), entry.ContextMap()["type"])
	assert.Equal(t, "Acme", entry.ContextMap()["company"])
	assert.Equal(t, int64(42), entry.ContextMap()["count"])
}

func TestNewPublisher_Disabled(t *testing.T) {
	cfg := config.Default()
	cfg.KafkaBrokers = nil

	pub, closeFn, err := newPublisher(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.IsType(t, events.NopPublisher{}, pub)
	closeFn()
}
