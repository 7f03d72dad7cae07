package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/melodig/trackmix/internal/adapters/catalog"
	"github.com/melodig/trackmix/internal/domain/model"
	"github.com/melodig/trackmix/internal/domain/types"
	"github.com/melodig/trackmix/pkg/logger"
	"github.com/melodig/trackmix/pkg/metrics"
)

// Dataset file names within the configured source.
const (
	FileOffline = "recommendations.csv"
	FileSimilar = "similar.csv"
	FilePopular = "top_popular.csv"
	FileItems   = "items.csv"
)

// Loader reads the four candidate datasets from a Source and builds the
// catalog tables. A dataset that is missing or corrupt degrades to an empty
// table; loading never fails as a whole.
type Loader struct {
	source Source
	logger logger.Logger
}

// LoaderOption applies a configuration option to the Loader.
type LoaderOption func(*Loader)

// WithLogger sets a custom logger for the loader.
func WithLogger(log logger.Logger) LoaderOption {
	return func(l *Loader) {
		if log != nil {
			l.logger = log
		}
	}
}

// NewLoader creates a Loader over the given source.
func NewLoader(source Source, opts ...LoaderOption) *Loader {
	l := &Loader{source: source}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load fetches and parses all datasets concurrently. Every failure is
// reported through logs and metrics, never as an error: the affected table
// comes back empty and the service runs degraded.
func (l *Loader) Load(ctx context.Context) catalog.Tables {
	if l.logger == nil {
		l.logger = logger.Get()
	}

	var tables catalog.Tables

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		tables.Offline = loadTable(gctx, l, FileOffline, parseOffline, func(t map[types.UserID][]types.RankedTrack) int {
			rows := 0
			for _, cands := range t {
				rows += len(cands)
			}
			return rows
		})
		return nil
	})
	g.Go(func() error {
		tables.Similar = loadTable(gctx, l, FileSimilar, parseSimilar, func(t map[types.TrackID][]model.SimilarTrack) int {
			rows := 0
			for _, rels := range t {
				rows += len(rels)
			}
			return rows
		})
		return nil
	})
	g.Go(func() error {
		tables.Popular = loadTable(gctx, l, FilePopular, parsePopular, func(t []types.RankedTrack) int { return len(t) })
		return nil
	})
	g.Go(func() error {
		tables.Items = loadTable(gctx, l, FileItems, parseItems, func(t map[types.TrackID]model.Track) int { return len(t) })
		return nil
	})

	// Goroutines never return errors; degradation is handled per dataset.
	_ = g.Wait()

	return tables
}

// loadTable reads and parses a single dataset, degrading to the zero value
// of T on any failure.
func loadTable[T any](ctx context.Context, l *Loader, name string, parse func([][]string) (T, error), countRows func(T) int) T {
	var empty T

	start := time.Now()

	rc, err := l.source.Open(ctx, name)
	if err != nil {
		l.degraded(ctx, name, err)
		return empty
	}
	defer rc.Close()

	records, err := csv.NewReader(rc).ReadAll()
	if err != nil {
		l.degraded(ctx, name, err)
		return empty
	}

	table, err := parse(records)
	if err != nil {
		l.degraded(ctx, name, err)
		return empty
	}

	rows := countRows(table)
	metrics.UpdateDatasetRows(strings.TrimSuffix(name, ".csv"), rows)
	metrics.RecordDatasetLoadDuration(float64(time.Since(start).Milliseconds()))
	l.logger.Info(ctx, "dataset loaded",
		logger.String("dataset", name),
		logger.String("source", l.source.Name()),
		logger.Int("rows", rows),
	)
	return table
}

func (l *Loader) degraded(ctx context.Context, name string, err error) {
	metrics.RecordDatasetDegraded()
	l.logger.Warn(ctx, "dataset degraded to empty",
		logger.String("dataset", name),
		logger.String("source", l.source.Name()),
		logger.Error(err),
	)
}

// columnIndex finds a required column in the header row, case-insensitive.
func columnIndex(header []string, name string) (int, error) {
	for i, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrMissingColumn, name)
}

// optionalColumnIndex is columnIndex for columns that may be absent.
func optionalColumnIndex(header []string, name string) (int, bool) {
	i, err := columnIndex(header, name)
	return i, err == nil
}

func parseInt(records [][]string, row int, col int) (int64, error) {
	fields := records[row]
	if col >= len(fields) {
		return 0, fmt.Errorf("%w: row %d has %d fields", ErrBadRow, row, len(fields))
	}
	v, err := strconv.ParseInt(strings.TrimSpace(fields[col]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: row %d: %v", ErrBadRow, row, err)
	}
	return v, nil
}

func parseFloat(records [][]string, row int, col int) (float64, error) {
	fields := records[row]
	if col >= len(fields) {
		return 0, fmt.Errorf("%w: row %d has %d fields", ErrBadRow, row, len(fields))
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(fields[col]), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: row %d: %v", ErrBadRow, row, err)
	}
	return v, nil
}

// parseOffline decodes user_id,track_id,rank rows.
func parseOffline(records [][]string) (map[types.UserID][]types.RankedTrack, error) {
	out := make(map[types.UserID][]types.RankedTrack)
	if len(records) == 0 {
		return out, nil
	}

	userCol, err := columnIndex(records[0], "user_id")
	if err != nil {
		return nil, err
	}
	trackCol, err := columnIndex(records[0], "track_id")
	if err != nil {
		return nil, err
	}
	rankCol, err := columnIndex(records[0], "rank")
	if err != nil {
		return nil, err
	}

	for row := 1; row < len(records); row++ {
		userID, err := parseInt(records, row, userCol)
		if err != nil {
			return nil, err
		}
		trackID, err := parseInt(records, row, trackCol)
		if err != nil {
			return nil, err
		}
		rank, err := parseInt(records, row, rankCol)
		if err != nil {
			return nil, err
		}
		out[userID] = append(out[userID], types.RankedTrack{TrackID: trackID, Rank: int(rank)})
	}
	return out, nil
}

// parseSimilar decodes track_id,similar_track_id,score rows.
func parseSimilar(records [][]string) (map[types.TrackID][]model.SimilarTrack, error) {
	out := make(map[types.TrackID][]model.SimilarTrack)
	if len(records) == 0 {
		return out, nil
	}

	seedCol, err := columnIndex(records[0], "track_id")
	if err != nil {
		return nil, err
	}
	relatedCol, err := columnIndex(records[0], "similar_track_id")
	if err != nil {
		return nil, err
	}
	scoreCol, err := columnIndex(records[0], "score")
	if err != nil {
		return nil, err
	}

	for row := 1; row < len(records); row++ {
		seed, err := parseInt(records, row, seedCol)
		if err != nil {
			return nil, err
		}
		related, err := parseInt(records, row, relatedCol)
		if err != nil {
			return nil, err
		}
		score, err := parseFloat(records, row, scoreCol)
		if err != nil {
			return nil, err
		}
		out[seed] = append(out[seed], model.SimilarTrack{TrackID: related, Score: score})
	}
	return out, nil
}

// parsePopular decodes track_id,rank rows.
func parsePopular(records [][]string) ([]types.RankedTrack, error) {
	if len(records) == 0 {
		return nil, nil
	}

	trackCol, err := columnIndex(records[0], "track_id")
	if err != nil {
		return nil, err
	}
	rankCol, err := columnIndex(records[0], "rank")
	if err != nil {
		return nil, err
	}

	out := make([]types.RankedTrack, 0, len(records)-1)
	for row := 1; row < len(records); row++ {
		trackID, err := parseInt(records, row, trackCol)
		if err != nil {
			return nil, err
		}
		rank, err := parseInt(records, row, rankCol)
		if err != nil {
			return nil, err
		}
		out = append(out, types.RankedTrack{TrackID: trackID, Rank: int(rank)})
	}
	return out, nil
}

// parseItems decodes track_id plus optional title/artist/album metadata.
func parseItems(records [][]string) (map[types.TrackID]model.Track, error) {
	out := make(map[types.TrackID]model.Track)
	if len(records) == 0 {
		return out, nil
	}

	trackCol, err := columnIndex(records[0], "track_id")
	if err != nil {
		return nil, err
	}
	titleCol, hasTitle := optionalColumnIndex(records[0], "title")
	artistCol, hasArtist := optionalColumnIndex(records[0], "artist")
	albumCol, hasAlbum := optionalColumnIndex(records[0], "album")

	field := func(row int, col int, present bool) string {
		if !present || col >= len(records[row]) {
			return ""
		}
		return strings.TrimSpace(records[row][col])
	}

	for row := 1; row < len(records); row++ {
		trackID, err := parseInt(records, row, trackCol)
		if err != nil {
			return nil, err
		}
		out[trackID] = model.Track{
			ID:     trackID,
			Title:  field(row, titleCol, hasTitle),
			Artist: field(row, artistCol, hasArtist),
			Album:  field(row, albumCol, hasAlbum),
		}
	}
	return out, nil
}
