package normalize

import (
	"errors"
	"strings"
	"testing"
	"time"

	e "github.com/gartstein/layofflens/internal/layoffs/errors"
	"github.com/gartstein/layofflens/internal/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

var importTime = time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

func newTestNormalizer(t *testing.T) *Normalizer {
	n := NewNormalizer(zaptest.NewLogger(t))
	n.now = func() time.Time { return importTime }
	return n
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *int
	}{
		{name: "thousands separator", input: "1,200", want: utils.Ptr(1200)},
		{name: "plain", input: "200", want: utils.Ptr(200)},
		{name: "surrounding noise", input: " ~300 people", want: utils.Ptr(300)},
		{name: "blank", input: "", want: nil},
		{name: "whitespace", input: "   ", want: nil},
		{name: "garbled", input: "unknown", want: nil},
		{name: "lone dot", input: ".", want: nil},
		{name: "minus is stripped", input: "-5", want: utils.Ptr(5)},
		{name: "decimal", input: "12.6", want: utils.Ptr(13)},
		{name: "second dot ends the number", input: "1.2.3", want: utils.Ptr(1)},
		{name: "leading dot", input: ".4", want: utils.Ptr(0)},
		{name: "largest storable", input: "2147483647", want: utils.Ptr(MaxCount)},
		{name: "above column range", input: "3,000,000,000", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCount(tt.input))
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{name: "iso date", input: "2024-01-15", want: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{name: "us date", input: "1/15/2024", want: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", input: "2024-01-15T10:00:00Z", want: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)},
		{name: "blank falls back to now", input: "", want: importTime},
		{name: "garbage falls back to now", input: "unknown", want: importTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.input, importTime)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestNormalizeRow(t *testing.T) {
	t.Run("scenario row", func(t *testing.T) {
		rec, err := NormalizeRow(map[string]string{
			ColCompany:  "Acme Inc",
			ColLaidOff:  "200",
			ColDate:     "2024-01-15",
			ColIndustry: "Tech",
		}, importTime)
		require.NoError(t, err)

		assert.Equal(t, "Acme Inc", rec.Company)
		assert.Equal(t, utils.Ptr(200), rec.Count)
		assert.Equal(t, "2024-01-15T00:00:00Z", rec.Date.Format(time.RFC3339))
		assert.Equal(t, "Tech", rec.Sector)
		assert.Equal(t, "", rec.Location)
		assert.Equal(t, "", rec.SourceURL)
	})

	t.Run("trims and defaults", func(t *testing.T) {
		rec, err := NormalizeRow(map[string]string{
			ColCompany:  "  Globex ",
			ColLocation: " Seattle ",
			ColIndustry: "   ",
			ColSource:   " https://example.com/a ",
		}, importTime)
		require.NoError(t, err)

		assert.Equal(t, "Globex", rec.Company)
		assert.Equal(t, "Seattle", rec.Location)
		assert.Equal(t, "Unknown", rec.Sector)
		assert.Equal(t, "https://example.com/a", rec.SourceURL)
		assert.Nil(t, rec.Count)
		assert.Equal(t, importTime, rec.Date)
	})

	t.Run("missing company", func(t *testing.T) {
		_, err := NormalizeRow(map[string]string{ColCompany: "  ", ColLaidOff: "10"}, importTime)
		assert.ErrorIs(t, err, e.ErrMissingCompany)
	})
}

func TestNormalizer_Parse(t *testing.T) {
	input := "\ufeffCompany,Location HQ,# Laid Off,Date,%,Industry,Source,Stage\n" +
		"Company,Location HQ,# Laid Off,Date,%,Industry,Source,Stage\n" +
		"Acme Inc,SF Bay Area,\"1,200\",2024-01-15,10%,Tech,https://a.example,Post-IPO\n" +
		",Seattle,50,2024-02-01,,Retail,,\n" +
		"Globex,,,TBD,,,,\n" +
		"Initech,Austin,75\n"

	res, err := newTestNormalizer(t).Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 5, res.RowsRead)
	require.Len(t, res.Records, 3)
	require.Len(t, res.Errors, 1)

	assert.Equal(t, 3, res.Errors[0].Row)
	assert.ErrorIs(t, res.Errors[0], e.ErrMissingCompany)
	assert.Equal(t, "Row 3: missing company name", res.Errors[0].Error())

	acme := res.Records[0]
	assert.Equal(t, "Acme Inc", acme.Company)
	assert.Equal(t, "SF Bay Area", acme.Location)
	assert.Equal(t, utils.Ptr(1200), acme.Count)
	assert.Equal(t, "Tech", acme.Sector)
	assert.Equal(t, "https://a.example", acme.SourceURL)

	globex := res.Records[1]
	assert.Equal(t, importTime, globex.Date)
	assert.Equal(t, "Unknown", globex.Sector)
	assert.Nil(t, globex.Count)

	initech := res.Records[2]
	assert.Equal(t, utils.Ptr(75), initech.Count, "short rows keep the columns they have")
	assert.Equal(t, "Unknown", initech.Sector)
}

func TestNormalizer_ParseWarnsOnCountOutOfRange(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	n := NewNormalizer(zap.New(core))
	n.now = func() time.Time { return importTime }

	input := "Company,# Laid Off,Date\n" +
		"Acme,3000000000,2024-01-15\n" +
		"Globex,unknown,2024-01-16\n" +
		"Initech,2147483647,2024-01-17\n"

	res, err := n.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, res.Records, 3)
	assert.Empty(t, res.Errors)

	assert.Nil(t, res.Records[0].Count)
	assert.Nil(t, res.Records[1].Count)
	assert.Equal(t, utils.Ptr(MaxCount), res.Records[2].Count)

	warns := logs.FilterMessage("Count out of range; storing as unknown").All()
	require.Len(t, warns, 1)
	fields := warns[0].ContextMap()
	assert.Equal(t, int64(1), fields["row"])
	assert.Equal(t, "3000000000", fields["value"])
}

func TestNormalizer_ParseHeaderOnlyCompanyNotSkippedLater(t *testing.T) {
	input := "Company,Date\nAcme,2024-01-01\nCompany,2024-01-02\n"

	res, err := newTestNormalizer(t).Parse(strings.NewReader(input))
	require.NoError(t, err)

	// Only the first data row is checked for a duplicated header.
	assert.Len(t, res.Records, 2)
	assert.Equal(t, "Company", res.Records[1].Company)
}

func TestNormalizer_ParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty file", input: ""},
		{name: "no company column", input: "Name,Date\nAcme,2024-01-01\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestNormalizer(t).Parse(strings.NewReader(tt.input))
			assert.True(t, errors.Is(err, e.ErrMissingColumn), "got %v", err)
		})
	}
}

func TestNormalizer_ParseUnterminatedQuote(t *testing.T) {
	input := "Company,# Laid Off\nAcme,10\n\"Broken,5\nGlobex,7\n"

	res, err := newTestNormalizer(t).Parse(strings.NewReader(input))
	require.NoError(t, err)

	// Lazy quoting swallows the rest of the file into one field instead of failing.
	assert.Equal(t, 2, res.RowsRead)
	require.Len(t, res.Records, 2)
	assert.Equal(t, "Acme", res.Records[0].Company)
	assert.True(t, strings.HasPrefix(res.Records[1].Company, "Broken,5"))
	assert.Nil(t, res.Records[1].Count)
}
