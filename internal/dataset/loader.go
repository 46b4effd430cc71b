package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nikhilsana1004/devops-pipeline-chatbot/internal/athena"
	"github.com/nikhilsana1004/devops-pipeline-chatbot/internal/models"
)

// ErrNoData indicates the query succeeded but matched zero rows. Callers
// that only care about "nothing to summarize" may treat it like a query
// failure; the type keeps the two outcomes distinguishable.
var ErrNoData = errors.New("no pipeline data")

// Executor runs the dataset query.
type Executor interface {
	Execute(ctx context.Context, query string) ([]athena.Row, error)
}

// Dataset is the loaded record set plus its summary. Immutable once built.
type Dataset struct {
	Events  []models.Event
	Summary models.Summary
}

// Loader performs the one-time dataset load. The first Load pays the full
// query-and-normalize cost; its outcome, success or failure, is memoized
// until Reload.
type Loader struct {
	exec  Executor
	table string
	log   *slog.Logger

	mu     sync.Mutex
	loaded bool
	ds     *Dataset
	err    error
}

// NewLoader creates a Loader that queries the given table.
func NewLoader(exec Executor, table string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{exec: exec, table: table, log: logger}
}

// Load returns the memoized dataset, querying and normalizing on the
// first call.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.loaded {
		return l.ds, l.err
	}
	l.ds, l.err = l.load(ctx)
	l.loaded = true
	return l.ds, l.err
}

// Reload discards the memoized outcome; the next Load queries again.
func (l *Loader) Reload() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loaded = false
	l.ds = nil
	l.err = nil
}

func (l *Loader) load(ctx context.Context) (*Dataset, error) {
	l.log.Info("loading pipeline data", "table", l.table)

	rows, err := l.exec.Execute(ctx, fmt.Sprintf("SELECT * FROM %s", l.table))
	if err != nil {
		l.log.Error("failed to load pipeline data", "error", err)
		return nil, err
	}
	if len(rows) == 0 {
		l.log.Error("query returned no rows", "table", l.table)
		return nil, ErrNoData
	}

	events := Normalize(rows)
	summary := Summarize(events)
	l.log.Info("pipeline data loaded",
		"events", summary.TotalEvents,
		"pipelines", summary.UniquePipelines,
		"executions", summary.UniqueExecutions)

	return &Dataset{Events: events, Summary: summary}, nil
}
