// Package athena executes analytical queries against AWS Athena and
// materializes their results.
package athena

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsathena "github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/athena/types"
	"github.com/cenkalti/backoff/v4"
)

var (
	// ErrQueryFailed indicates the engine reported FAILED or CANCELLED,
	// or the transport itself errored.
	ErrQueryFailed = errors.New("athena query failed")

	// ErrWaitTimeout indicates the query did not reach a terminal state
	// within the poll deadline.
	ErrWaitTimeout = errors.New("timed out waiting for athena query")
)

// Row is one result row: column name to cell value. Unset cells are
// present with an empty string value, never absent.
type Row map[string]string

// Config holds the settings for an Executor.
type Config struct {
	Region         string
	Database       string
	OutputLocation string
	PollInterval   time.Duration
	PollTimeout    time.Duration
}

// api is the subset of the Athena client the executor needs. Kept small
// so tests can substitute a fake.
type api interface {
	StartQueryExecution(ctx context.Context, params *awsathena.StartQueryExecutionInput, optFns ...func(*awsathena.Options)) (*awsathena.StartQueryExecutionOutput, error)
	GetQueryExecution(ctx context.Context, params *awsathena.GetQueryExecutionInput, optFns ...func(*awsathena.Options)) (*awsathena.GetQueryExecutionOutput, error)
	GetQueryResults(ctx context.Context, params *awsathena.GetQueryResultsInput, optFns ...func(*awsathena.Options)) (*awsathena.GetQueryResultsOutput, error)
}

// Executor submits queries, polls them to completion, and fetches results.
type Executor struct {
	client       api
	database     string
	output       string
	pollInterval time.Duration
	pollTimeout  time.Duration
	log          *slog.Logger
}

// NewExecutor creates an Executor backed by a real Athena client using the
// default AWS credential chain.
func NewExecutor(ctx context.Context, cfg Config, logger *slog.Logger) (*Executor, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return newExecutor(awsathena.NewFromConfig(awsCfg), cfg, logger), nil
}

func newExecutor(client api, cfg Config, logger *slog.Logger) *Executor {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 5 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		client:       client,
		database:     cfg.Database,
		output:       cfg.OutputLocation,
		pollInterval: cfg.PollInterval,
		pollTimeout:  cfg.PollTimeout,
		log:          logger,
	}
}

// Execute runs query against the configured database and returns one Row
// per data row. The first result row is the header and is skipped.
func (e *Executor) Execute(ctx context.Context, query string) ([]Row, error) {
	start, err := e.client.StartQueryExecution(ctx, &awsathena.StartQueryExecutionInput{
		QueryString:           aws.String(query),
		QueryExecutionContext: &types.QueryExecutionContext{Database: aws.String(e.database)},
		ResultConfiguration:   &types.ResultConfiguration{OutputLocation: aws.String(e.output)},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: start query execution: %w", ErrQueryFailed, err)
	}
	id := aws.ToString(start.QueryExecutionId)

	status, err := e.waitForCompletion(ctx, id)
	if err != nil {
		return nil, err
	}

	if status.State != types.QueryExecutionStateSucceeded {
		reason := aws.ToString(status.StateChangeReason)
		e.log.Error("query did not succeed",
			"query_execution_id", id, "state", status.State, "reason", reason)
		return nil, fmt.Errorf("%w: state %s: %s", ErrQueryFailed, status.State, reason)
	}

	rows, err := e.fetchResults(ctx, id)
	if err != nil {
		return nil, err
	}
	e.log.Info("query succeeded", "query_execution_id", id, "rows", len(rows))
	return rows, nil
}

// waitForCompletion polls the query at a constant interval until it
// reaches a terminal state or the poll deadline passes.
func (e *Executor) waitForCompletion(ctx context.Context, id string) (*types.QueryExecutionStatus, error) {
	var status *types.QueryExecutionStatus

	poll := func() error {
		out, err := e.client.GetQueryExecution(ctx, &awsathena.GetQueryExecutionInput{
			QueryExecutionId: aws.String(id),
		})
		if err != nil {
			return backoff.Permanent(fmt.Errorf("%w: get query execution: %w", ErrQueryFailed, err))
		}
		status = out.QueryExecution.Status
		switch status.State {
		case types.QueryExecutionStateSucceeded,
			types.QueryExecutionStateFailed,
			types.QueryExecutionStateCancelled:
			return nil
		}
		return fmt.Errorf("query %s still %s", id, status.State)
	}

	retries := uint64(e.pollTimeout / e.pollInterval)
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(e.pollInterval), retries), ctx)

	if err := backoff.Retry(poll, policy); err != nil {
		if errors.Is(err, ErrQueryFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrWaitTimeout, err)
	}
	return status, nil
}

// fetchResults reads the full result set, following NextToken across
// pages. Athena repeats the column names as the first row of the first
// page only.
func (e *Executor) fetchResults(ctx context.Context, id string) ([]Row, error) {
	var (
		columns []string
		rows    []Row
		next    *string
		first   = true
	)
	for {
		out, err := e.client.GetQueryResults(ctx, &awsathena.GetQueryResultsInput{
			QueryExecutionId: aws.String(id),
			NextToken:        next,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: get query results: %w", ErrQueryFailed, err)
		}

		data := out.ResultSet.Rows
		if first {
			first = false
			columns = headerColumns(out.ResultSet)
			if len(data) > 0 {
				data = data[1:]
			}
		}
		for _, r := range data {
			rows = append(rows, mapRow(columns, r))
		}

		next = out.NextToken
		if next == nil {
			return rows, nil
		}
	}
}

func headerColumns(rs *types.ResultSet) []string {
	if rs.ResultSetMetadata == nil {
		return nil
	}
	columns := make([]string, 0, len(rs.ResultSetMetadata.ColumnInfo))
	for _, info := range rs.ResultSetMetadata.ColumnInfo {
		columns = append(columns, aws.ToString(info.Name))
	}
	return columns
}

func mapRow(columns []string, r types.Row) Row {
	row := make(Row, len(columns))
	for i, col := range columns {
		var val string
		if i < len(r.Data) {
			val = aws.ToString(r.Data[i].VarCharValue)
		}
		row[col] = val
	}
	return row
}
