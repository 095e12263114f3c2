package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	e "github.com/gartstein/layofflens/internal/layoffs/errors"
	"github.com/gartstein/layofflens/internal/layoffs/labels"
	"github.com/gartstein/layofflens/internal/layoffs/models"
	"google.golang.org/protobuf/types/known/structpb"
)

const dateOnly = "2006-01-02"

// Query parameter names shared by the HTTP and gRPC surfaces.
const (
	paramSector    = "sector"
	paramLocation  = "location"
	paramStartDate = "startDate"
	paramEndDate   = "endDate"
	paramPage      = "page"
	paramLimit     = "limit"
	paramTop       = "top"
	paramMonths    = "months"
)

// params reads a named request parameter, returning "" when absent.
type params func(name string) string

func parseFilter(get params) (models.Filter, error) {
	f := models.Filter{
		Sector:   strings.TrimSpace(get(paramSector)),
		Location: strings.TrimSpace(get(paramLocation)),
	}
	var err error
	if f.StartDate, err = parseBound(paramStartDate, get(paramStartDate)); err != nil {
		return models.Filter{}, err
	}
	if f.EndDate, err = parseBound(paramEndDate, get(paramEndDate)); err != nil {
		return models.Filter{}, err
	}
	return f, nil
}

// parseBound accepts RFC 3339 timestamps and plain dates.
func parseBound(name, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, dateOnly} {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s must be RFC 3339 or YYYY-MM-DD", e.ErrInvalidInput, name)
}

// parseInt returns def when the parameter is absent and rejects values outside [1, upper].
func parseInt(get params, name string, def, upper int) (int, error) {
	raw := strings.TrimSpace(get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", e.ErrInvalidInput, name)
	}
	if n > upper {
		return 0, fmt.Errorf("%w: %s must be at most %d", e.ErrInvalidInput, name, upper)
	}
	return n, nil
}

// structParams reads string and number fields of a gRPC request struct.
func structParams(s *structpb.Struct) params {
	return func(name string) string {
		v, ok := s.GetFields()[name]
		if !ok {
			return ""
		}
		switch kind := v.GetKind().(type) {
		case *structpb.Value_StringValue:
			return kind.StringValue
		case *structpb.Value_NumberValue:
			return strconv.FormatFloat(kind.NumberValue, 'f', -1, 64)
		default:
			return ""
		}
	}
}

// toStruct converts a JSON-tagged domain value into a protobuf Struct.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

// createLayoffRequest is the POST /api/layoffs body.
type createLayoffRequest struct {
	Company   string `json:"company"`
	Date      string `json:"date"`
	Count     *int   `json:"count"`
	Sector    string `json:"sector"`
	Location  string `json:"location"`
	SourceURL string `json:"source_url"`
}

func (r createLayoffRequest) toModel() (*models.LayoffRecord, error) {
	rec := &models.LayoffRecord{
		Company:   r.Company,
		Count:     r.Count,
		Sector:    r.Sector,
		Location:  r.Location,
		SourceURL: r.SourceURL,
	}
	if strings.TrimSpace(r.Date) != "" {
		date, err := dateparse.ParseIn(strings.TrimSpace(r.Date), time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: unparseable date %q", e.ErrInvalidInput, r.Date)
		}
		rec.Date = date
	}
	return rec, nil
}

// layoffView is a record decorated with its display labels.
type layoffView struct {
	models.LayoffRecord
	DisplayCompany string `json:"displayCompany"`
	Initials       string `json:"initials"`
	Flag           string `json:"flag"`
	LocationName   string `json:"locationName"`
	IndustryIcon   string `json:"industryIcon"`
}

func decorate(l *labels.Labeler, records []models.LayoffRecord) []layoffView {
	views := make([]layoffView, 0, len(records))
	for _, r := range records {
		views = append(views, layoffView{
			LayoffRecord:   r,
			DisplayCompany: labels.CompanyName(r.Company),
			Initials:       labels.Initials(r.Company),
			Flag:           l.Flag(r.Location),
			LocationName:   l.DisplayName(r.Location),
			IndustryIcon:   l.IndustryIcon(r.Sector),
		})
	}
	return views
}

// dashboardView replaces the raw recent feed with decorated records.
type dashboardView struct {
	*models.Dashboard
	Recent []layoffView `json:"recent"`
}
