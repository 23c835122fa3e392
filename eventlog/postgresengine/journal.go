package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/shelfwise/circulation-go/eventlog"
	"github.com/shelfwise/circulation-go/eventlog/postgresengine/internal/adapters"
)

const (
	defaultTableName = "lending_events"

	logMsgBuildSelectQueryFailed = "failed to build select query"
	logMsgDBQueryFailed          = "database query execution failed"
	logMsgCloseRowsFailed        = "failed to close database rows"
	logMsgScanRowFailed          = "failed to scan database row"
	logMsgBuildEntryFailed       = "failed to build journal entry from database row"
	logMsgBuildInsertQueryFailed = "failed to build insert query"
	logMsgDBExecFailed           = "database execution failed during append"
	logMsgRowsAffectedFailed     = "failed to get rows affected count"
	logMsgQueryCompleted         = "query completed"
	logMsgEntriesAppended        = "entries appended"
	logMsgConcurrencyConflict    = "concurrency conflict detected"
	logMsgSQLExecuted            = "executed sql for: "
	logMsgOperation              = "journal operation: "

	logAttrError            = "error"
	logAttrQuery            = "query"
	logAttrEventType        = "event_type"
	logAttrEntryCount       = "entry_count"
	logAttrDurationMS       = "duration_ms"
	logAttrExpectedEntries  = "expected_entries"
	logAttrRowsAffected     = "rows_affected"
	logAttrExpectedSequence = "expected_sequence"

	logActionQuery  = "query"
	logActionAppend = "append"

	colEventType      = "event_type"
	colOccurredAt     = "occurred_at"
	colPayload        = "payload"
	colMetadata       = "metadata"
	colSequenceNumber = "sequence_number"

	cteContext      = "context"
	cteVals         = "vals"
	dialectPostgres = "postgres"
	aliasMaxSeq     = "max_seq"
	castText        = "?::text"
	castTimestamp   = "?::timestamp with time zone"
	castJsonb       = "?::jsonb"

	spanStatusOK    = "ok"
	spanStatusError = "error"

	metricQueryDuration       = "journal_query_duration_seconds"
	metricAppendDuration      = "journal_append_duration_seconds"
	metricConcurrencyConflict = "journal_concurrency_conflicts_total"
)

// Journal is the Postgres-backed event log for the lending engine.
// It leverages a database adapter and supports customizable logging,
// metrics, tracing, and table configuration.
type Journal struct {
	db               adapters.DBAdapter
	tableName        string
	logger           eventlog.Logger
	contextualLogger eventlog.ContextualLogger
	metricsCollector eventlog.MetricsCollector
	tracingCollector eventlog.TracingCollector
}

// Option defines a functional option for configuring a Journal.
type Option func(*Journal) error

// WithTableName sets the table name for the Journal.
func WithTableName(tableName string) Option {
	return func(j *Journal) error {
		if tableName == "" {
			return eventlog.ErrEmptyTableName
		}

		j.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Journal.
//
// Debug level: SQL queries with execution timing (development use)
// Info level: entry counts, durations, concurrency conflicts
// Warn level: non-critical issues like cleanup failures
// Error level: failures that cause operation failures.
func WithLogger(logger eventlog.Logger) Option {
	return func(j *Journal) error {
		j.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger which receives the same
// messages as the plain logger plus automatic trace correlation.
func WithContextualLogger(logger eventlog.ContextualLogger) Option {
	return func(j *Journal) error {
		j.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Journal.
func WithMetrics(collector eventlog.MetricsCollector) Option {
	return func(j *Journal) error {
		j.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Journal.
func WithTracing(collector eventlog.TracingCollector) Option {
	return func(j *Journal) error {
		j.tracingCollector = collector
		return nil
	}
}

// NewJournalFromPGXPool creates a Journal using a pgx pool.
func NewJournalFromPGXPool(db *pgxpool.Pool, options ...Option) (Journal, error) {
	if db == nil {
		return Journal{}, eventlog.ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewPGXAdapter(db), options...)
}

// NewJournalFromPGXPoolWithReplica creates a Journal using a pgx pool plus a
// replica pool that serves eventually consistent reads.
func NewJournalFromPGXPoolWithReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (Journal, error) {
	if db == nil || replica == nil {
		return Journal{}, eventlog.ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewPGXAdapterWithReplica(db, replica), options...)
}

// NewJournalFromSQLDB creates a Journal using a database/sql connection.
func NewJournalFromSQLDB(db *sql.DB, options ...Option) (Journal, error) {
	if db == nil {
		return Journal{}, eventlog.ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewSQLAdapter(db), options...)
}

// NewJournalFromSQLX creates a Journal using a sqlx.DB.
func NewJournalFromSQLX(db *sqlx.DB, options ...Option) (Journal, error) {
	if db == nil {
		return Journal{}, eventlog.ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewSQLXAdapter(db), options...)
}

func newJournal(db adapters.DBAdapter, options ...Option) (Journal, error) {
	j := Journal{
		db:        db,
		tableName: defaultTableName,
	}

	for _, option := range options {
		if err := option(&j); err != nil {
			return Journal{}, err
		}
	}

	return j, nil
}

type queryResultRow struct {
	eventType         string
	payload           []byte
	metadata          []byte
	occurredAt        time.Time
	maxSequenceNumber eventlog.MaxSequence
}

// Query retrieves the entries of the filtered stream in sequence order,
// together with the stream's max sequence number at the time of the query.
func (j Journal) Query(ctx context.Context, filter eventlog.Filter) (
	eventlog.Entries,
	eventlog.MaxSequence,
	error,
) {

	var empty eventlog.Entries

	ctx, span := j.startSpan(ctx, "journal.query")

	sqlQuery, buildQueryErr := j.buildSelectQuery(filter)
	if buildQueryErr != nil {
		j.logError(ctx, logMsgBuildSelectQueryFailed, logAttrError, buildQueryErr.Error())
		j.finishSpan(span, spanStatusError)
		return empty, 0, buildQueryErr
	}

	rows, duration, queryErr := j.executeQuery(ctx, sqlQuery)
	if queryErr != nil {
		j.finishSpan(span, spanStatusError)
		return empty, 0, queryErr
	}
	defer j.closeRows(ctx, rows)

	entries, maxSequence, scanErr := j.processQueryResults(ctx, rows)
	if scanErr != nil {
		j.finishSpan(span, spanStatusError)
		return empty, 0, scanErr
	}

	j.finishSpan(span, spanStatusOK)
	j.recordDuration(ctx, metricQueryDuration, duration)
	j.logOperation(ctx,
		logMsgQueryCompleted,
		logAttrEntryCount, len(entries),
		logAttrDurationMS, j.durationToMilliseconds(duration))

	return entries, maxSequence, nil
}

// Append appends one or multiple entries to the filtered stream, conditional
// on expectedMaxSequence still being the stream's max sequence number.
//
// The filter must be the same one used for the Query that produced
// expectedMaxSequence, otherwise the concurrency guard protects the wrong
// stream. Multiple entries are inserted atomically: all of them or none.
func (j Journal) Append(
	ctx context.Context,
	filter eventlog.Filter,
	expectedMaxSequence eventlog.MaxSequence,
	entry eventlog.Entry,
	additionalEntries ...eventlog.Entry,
) error {

	allEntries := eventlog.Entries{entry}
	allEntries = append(allEntries, additionalEntries...)

	ctx, span := j.startSpan(ctx, "journal.append")

	sqlQuery, buildQueryErr := j.buildAppendQuery(allEntries, filter, expectedMaxSequence)
	if buildQueryErr != nil {
		j.finishSpan(span, spanStatusError)
		return buildQueryErr
	}

	rowsAffected, duration, execErr := j.executeAppendQuery(ctx, sqlQuery)
	if execErr != nil {
		j.finishSpan(span, spanStatusError)
		return execErr
	}

	if err := j.validateAppendResult(ctx, rowsAffected, len(allEntries), expectedMaxSequence); err != nil {
		j.finishSpan(span, spanStatusError)
		return err
	}

	j.finishSpan(span, spanStatusOK)

	j.recordDuration(ctx, metricAppendDuration, duration)
	j.logOperation(ctx,
		logMsgEntriesAppended,
		logAttrEntryCount, len(allEntries),
		logAttrDurationMS, j.durationToMilliseconds(duration))

	return nil
}

func (j Journal) executeQuery(ctx context.Context, sqlQuery string) (
	adapters.DBRows,
	time.Duration,
	error,
) {

	start := time.Now()
	rows, queryErr := j.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	j.logQueryWithDuration(ctx, sqlQuery, logActionQuery, duration)

	if queryErr != nil {
		j.logError(ctx, logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)

		return nil, duration, errors.Join(eventlog.ErrQueryingEntriesFailed, queryErr)
	}

	return rows, duration, nil
}

func (j Journal) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		j.logWarn(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

func (j Journal) processQueryResults(ctx context.Context, rows adapters.DBRows) (
	eventlog.Entries,
	eventlog.MaxSequence,
	error,
) {

	var empty eventlog.Entries
	result := queryResultRow{}
	entries := make(eventlog.Entries, 0)
	maxSequence := eventlog.MaxSequence(0)

	for rows.Next() {
		rowScanErr := rows.Scan(&result.eventType, &result.occurredAt, &result.payload, &result.metadata, &result.maxSequenceNumber)
		if rowScanErr != nil {
			j.logError(ctx, logMsgScanRowFailed, logAttrError, rowScanErr.Error())

			return empty, 0, errors.Join(eventlog.ErrScanningDBRowFailed, rowScanErr)
		}

		entry, buildEntryErr := eventlog.NewEntry(result.eventType, result.occurredAt, result.payload, result.metadata)
		if buildEntryErr != nil {
			j.logError(ctx, logMsgBuildEntryFailed, logAttrError, buildEntryErr.Error(), logAttrEventType, result.eventType)

			return empty, 0, errors.Join(eventlog.ErrBuildingEntryFailed, buildEntryErr)
		}

		entries = append(entries, entry)
		maxSequence = result.maxSequenceNumber
	}

	return entries, maxSequence, nil
}

func (j Journal) executeAppendQuery(ctx context.Context, sqlQuery string) (
	int64,
	time.Duration,
	error,
) {

	start := time.Now()
	tag, execErr := j.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	j.logQueryWithDuration(ctx, sqlQuery, logActionAppend, duration)

	if execErr != nil {
		j.logError(ctx, logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)

		return 0, duration, errors.Join(eventlog.ErrAppendingEntriesFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := tag.RowsAffected()
	if rowsAffectedErr != nil {
		j.logError(ctx, logMsgRowsAffectedFailed, logAttrError, rowsAffectedErr.Error())

		return 0, duration, errors.Join(eventlog.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, duration, nil
}

func (j Journal) validateAppendResult(
	ctx context.Context,
	rowsAffected int64,
	expectedEntryCount int,
	expectedMaxSequence eventlog.MaxSequence,
) error {

	if rowsAffected < int64(expectedEntryCount) {
		j.incrementCounter(ctx, metricConcurrencyConflict)
		j.logOperation(ctx,
			logMsgConcurrencyConflict,
			logAttrExpectedEntries, expectedEntryCount,
			logAttrRowsAffected, rowsAffected,
			logAttrExpectedSequence, expectedMaxSequence,
		)

		return eventlog.ErrConcurrencyConflict
	}

	return nil
}

func (j Journal) buildSelectQuery(filter eventlog.Filter) (string, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(j.tableName).
		Select(colEventType, colOccurredAt, colPayload, colMetadata, colSequenceNumber).
		Order(goqu.I(colSequenceNumber).Asc())

	selectStmt = j.addWhereClause(filter, selectStmt)

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventlog.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (j Journal) buildAppendQuery(
	allEntries eventlog.Entries,
	filter eventlog.Filter,
	expectedMaxSequence eventlog.MaxSequence,
) (string, error) {

	var sqlQuery string
	var buildQueryErr error

	switch len(allEntries) {
	case 1:
		sqlQuery, buildQueryErr = j.buildInsertQueryForSingleEntry(allEntries[0], filter, expectedMaxSequence)

	default:
		sqlQuery, buildQueryErr = j.buildInsertQueryForMultipleEntries(allEntries, filter, expectedMaxSequence)
	}

	if buildQueryErr != nil {
		j.logError(context.Background(), logMsgBuildInsertQueryFailed, logAttrError, buildQueryErr.Error(), logAttrEntryCount, len(allEntries))

		return "", buildQueryErr
	}

	return sqlQuery, nil
}

func (j Journal) buildInsertQueryForSingleEntry(
	entry eventlog.Entry,
	filter eventlog.Filter,
	expectedMaxSequence eventlog.MaxSequence,
) (string, error) {

	builder := goqu.Dialect(dialectPostgres)

	// CTE: the stream's current max sequence number under the same filter.
	cteStmt := builder.
		From(j.tableName).
		Select(goqu.MAX(colSequenceNumber).As(aliasMaxSeq))

	cteStmt = j.addWhereClause(filter, cteStmt)

	selectStmt := builder.
		From(cteContext).
		Select(goqu.V(entry.EventType), goqu.V(entry.OccurredAt), goqu.V(entry.PayloadJSON), goqu.V(entry.MetadataJSON)).
		Where(goqu.COALESCE(goqu.C(aliasMaxSeq), 0).Eq(goqu.V(expectedMaxSequence)))

	insertStmt := builder.
		Insert(j.tableName).
		Cols(colEventType, colOccurredAt, colPayload, colMetadata).
		FromQuery(selectStmt).
		With(cteContext, cteStmt)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventlog.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (j Journal) buildInsertQueryForMultipleEntries(
	entries eventlog.Entries,
	filter eventlog.Filter,
	expectedMaxSequence eventlog.MaxSequence,
) (string, error) {

	builder := goqu.Dialect(dialectPostgres)

	// CTE: the stream's current max sequence number under the same filter.
	cteStmt := builder.
		From(j.tableName).
		Select(goqu.MAX(colSequenceNumber).As(aliasMaxSeq))

	cteStmt = j.addWhereClause(filter, cteStmt)

	unionStatements := make([]*goqu.SelectDataset, len(entries))
	for i, entry := range entries {
		unionStatements[i] = builder.
			Select(
				goqu.L(castText, entry.EventType).As(colEventType),
				goqu.L(castTimestamp, entry.OccurredAt).As(colOccurredAt),
				goqu.L(castJsonb, entry.PayloadJSON).As(colPayload),
				goqu.L(castJsonb, entry.MetadataJSON).As(colMetadata),
			)
	}

	valuesStmt := unionStatements[0]
	for i := 1; i < len(unionStatements); i++ {
		valuesStmt = valuesStmt.UnionAll(unionStatements[i])
	}

	valsEventType := fmt.Sprintf("%s.%s", cteVals, colEventType)
	valsOccurredAt := fmt.Sprintf("%s.%s", cteVals, colOccurredAt)
	valsPayload := fmt.Sprintf("%s.%s", cteVals, colPayload)
	valsMetadata := fmt.Sprintf("%s.%s", cteVals, colMetadata)

	insertStmt := builder.
		Insert(j.tableName).
		Cols(colEventType, colOccurredAt, colPayload, colMetadata).
		With(cteContext, cteStmt).
		With(cteVals, valuesStmt).
		FromQuery(
			builder.From(cteContext, cteVals).
				Select(valsEventType, valsOccurredAt, valsPayload, valsMetadata).
				Where(goqu.COALESCE(goqu.C(aliasMaxSeq), 0).Eq(goqu.V(expectedMaxSequence))),
		)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventlog.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (j Journal) addWhereClause(filter eventlog.Filter, selectStmt *goqu.SelectDataset) *goqu.SelectDataset {
	if filter.IsEmpty() {
		return selectStmt
	}

	expressions := make([]goqu.Expression, 0)

	if eventTypes := filter.EventTypes(); len(eventTypes) > 0 {
		typeExpressions := make([]goqu.Expression, 0, len(eventTypes))
		for _, eventType := range eventTypes {
			typeExpressions = append(typeExpressions, goqu.Ex{colEventType: eventType})
		}

		// event types always combine with OR
		expressions = append(expressions, goqu.Or(typeExpressions...))
	}

	if predicates := filter.Predicates(); len(predicates) > 0 {
		predicateExpressions := make([]goqu.Expression, 0, len(predicates))
		for _, predicate := range predicates {
			predicateExpressions = append(
				predicateExpressions,
				goqu.L(fmt.Sprintf(`%s @> '{"%s": "%s"}'`, colPayload, predicate.Key(), predicate.Val())),
			)
		}

		if filter.AllPredicatesMustMatch() {
			expressions = append(expressions, goqu.And(predicateExpressions...))
		} else {
			expressions = append(expressions, goqu.Or(predicateExpressions...))
		}
	}

	return selectStmt.Where(goqu.And(expressions...))
}

func (j Journal) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	if j.contextualLogger != nil {
		j.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, logAttrDurationMS, j.durationToMilliseconds(duration), logAttrQuery, sqlQuery)
		return
	}

	if j.logger != nil {
		j.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, j.durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

func (j Journal) logOperation(ctx context.Context, action string, args ...any) {
	if j.contextualLogger != nil {
		j.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
		return
	}

	if j.logger != nil {
		j.logger.Info(logMsgOperation+action, args...)
	}
}

func (j Journal) logWarn(ctx context.Context, msg string, args ...any) {
	if j.contextualLogger != nil {
		j.contextualLogger.WarnContext(ctx, msg, args...)
		return
	}

	if j.logger != nil {
		j.logger.Warn(msg, args...)
	}
}

func (j Journal) logError(ctx context.Context, msg string, args ...any) {
	if j.contextualLogger != nil {
		j.contextualLogger.ErrorContext(ctx, msg, args...)
		return
	}

	if j.logger != nil {
		j.logger.Error(msg, args...)
	}
}

func (j Journal) recordDuration(ctx context.Context, metric string, duration time.Duration) {
	if j.metricsCollector == nil {
		return
	}

	labels := map[string]string{"table": j.tableName}

	if contextual, ok := j.metricsCollector.(eventlog.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	j.metricsCollector.RecordDuration(metric, duration, labels)
}

func (j Journal) incrementCounter(ctx context.Context, metric string) {
	if j.metricsCollector == nil {
		return
	}

	labels := map[string]string{"table": j.tableName}

	if contextual, ok := j.metricsCollector.(eventlog.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metric, labels)
		return
	}

	j.metricsCollector.IncrementCounter(metric, labels)
}

func (j Journal) startSpan(ctx context.Context, name string) (context.Context, eventlog.SpanContext) {
	if j.tracingCollector == nil {
		return ctx, nil
	}

	return j.tracingCollector.StartSpan(ctx, name, map[string]string{"table": j.tableName})
}

func (j Journal) finishSpan(span eventlog.SpanContext, status string) {
	if j.tracingCollector == nil || span == nil {
		return
	}

	j.tracingCollector.FinishSpan(span, status, nil)
}

func (j Journal) durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
