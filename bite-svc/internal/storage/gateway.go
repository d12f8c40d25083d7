package storage

import (
	"context"
	"encoding/json"
	"log"
	"reflect"
	"sort"
	"strings"
	"time"

	"scroll-and-bite/bite-svc/internal/domain"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
)

var QB = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// ChangePublisher receives one event per written row.
type ChangePublisher interface {
	PublishChange(ctx context.Context, event domain.ChangeEvent) error
}

// Filter is a single WHERE predicate. Filters of a query are ANDed.
type Filter struct {
	sqlizer squirrel.Sqlizer
}

func Eq(column string, value any) Filter {
	return Filter{sqlizer: squirrel.Eq{column: value}}
}

// In matches any of values. An empty slice matches nothing.
func In[V any](column string, values []V) Filter {
	return Filter{sqlizer: squirrel.Eq{column: values}}
}

func Expr(sql string, args ...any) Filter {
	return Filter{sqlizer: squirrel.Expr(sql, args...)}
}

type Order struct {
	Column string
	Desc   bool
}

func (o Order) clause() string {
	if o.Desc {
		return o.Column + " DESC"
	}
	return o.Column + " ASC"
}

// Query describes a select. Offset and Limit express a row range; a zero
// Limit means no limit.
type Query struct {
	Table     string
	Columns   []string
	Filters   []Filter
	OrderBy   []Order
	Offset    uint64
	Limit     uint64
	ForUpdate bool
}

// Gateway issues CRUD statements against the relational store and emits a
// change event for every written row.
type Gateway struct {
	db        *sqlx.DB
	ext       sqlx.ExtContext
	publisher ChangePublisher
	pending   *[]domain.ChangeEvent
}

func NewGateway(db *sqlx.DB, publisher ChangePublisher) *Gateway {
	return &Gateway{db: db, ext: db, publisher: publisher}
}

// WithTx runs fn inside a transaction. Change events are held back until
// the commit succeeds. Nested calls join the outer transaction.
func (g *Gateway) WithTx(ctx context.Context, fn func(tx *Gateway) error) error {
	if g.pending != nil {
		return fn(g)
	}

	sqlTx, err := g.db.BeginTxx(ctx, nil)
	if err != nil {
		return classify("begin", "", err)
	}

	var pending []domain.ChangeEvent
	txGateway := &Gateway{db: g.db, ext: sqlTx, publisher: g.publisher, pending: &pending}
	if err := fn(txGateway); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			log.Printf("Warning: rollback failed: %v", rbErr)
		}
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return classify("commit", "", err)
	}

	for _, event := range pending {
		g.publish(ctx, event)
	}
	return nil
}

func (g *Gateway) emit(ctx context.Context, eventType, table string, oldRow, newRow any) {
	event := domain.ChangeEvent{
		EventType:       eventType,
		Table:           table,
		CommitTimestamp: time.Now().UTC(),
	}
	if newRow != nil {
		event.New, _ = json.Marshal(newRow)
	}
	if oldRow != nil {
		event.Old, _ = json.Marshal(oldRow)
	}

	if g.pending != nil {
		*g.pending = append(*g.pending, event)
		return
	}
	g.publish(ctx, event)
}

func (g *Gateway) publish(ctx context.Context, event domain.ChangeEvent) {
	if g.publisher == nil {
		return
	}
	if err := g.publisher.PublishChange(ctx, event); err != nil {
		log.Printf("Warning: failed to publish %s on %s: %v", event.EventType, event.Table, err)
	}
}

// Columns lists the db-tagged fields of T in declaration order. It is the
// column set selected and returned for T.
func Columns[T any]() []string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	columns := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("db")
		if !field.IsExported() || tag == "" || tag == "-" {
			continue
		}
		columns = append(columns, tag)
	}
	return columns
}

func returning[T any]() string {
	return "RETURNING " + strings.Join(Columns[T](), ", ")
}

func Select[T any](ctx context.Context, g *Gateway, q Query) ([]T, error) {
	columns := q.Columns
	if len(columns) == 0 {
		columns = Columns[T]()
	}

	builder := QB.Select(columns...).From(q.Table)
	for _, f := range q.Filters {
		builder = builder.Where(f.sqlizer)
	}
	for _, o := range q.OrderBy {
		builder = builder.OrderBy(o.clause())
	}
	if q.Limit > 0 {
		builder = builder.Limit(q.Limit)
	}
	if q.Offset > 0 {
		builder = builder.Offset(q.Offset)
	}
	if q.ForUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, classify("select", q.Table, err)
	}

	rows := []T{}
	if err := sqlx.SelectContext(ctx, g.ext, &rows, query, args...); err != nil {
		return nil, classify("select", q.Table, err)
	}
	return rows, nil
}

// Single requires exactly one matching row.
func Single[T any](ctx context.Context, g *Gateway, q Query) (T, error) {
	var zero T
	q.Limit = 2
	q.Offset = 0
	rows, err := Select[T](ctx, g, q)
	if err != nil {
		return zero, err
	}
	switch len(rows) {
	case 0:
		return zero, kindError("single", q.Table, ErrNotFound)
	case 1:
		return rows[0], nil
	}
	return zero, kindError("single", q.Table, ErrMultipleRows)
}

func Insert[T any](ctx context.Context, g *Gateway, table string, values map[string]any) (T, error) {
	var row T
	query, args, err := QB.Insert(table).SetMap(values).Suffix(returning[T]()).ToSql()
	if err != nil {
		return row, classify("insert", table, err)
	}
	if err := sqlx.GetContext(ctx, g.ext, &row, query, args...); err != nil {
		return row, classify("insert", table, err)
	}
	g.emit(ctx, domain.EventInsert, table, nil, row)
	return row, nil
}

// Upsert inserts values or, on a conflict over conflictKeys, overwrites the
// remaining columns of the existing row. Upserts are reported as UPDATE
// events.
func Upsert[T any](ctx context.Context, g *Gateway, table string, values map[string]any, conflictKeys ...string) (T, error) {
	var row T
	if len(conflictKeys) == 0 {
		return row, kindError("upsert", table, ErrInvalid)
	}

	columns := lo.Keys(values)
	sort.Strings(columns)
	updates := lo.FilterMap(columns, func(column string, _ int) (string, bool) {
		return column + " = EXCLUDED." + column, !lo.Contains(conflictKeys, column)
	})
	if len(updates) == 0 {
		updates = []string{conflictKeys[0] + " = EXCLUDED." + conflictKeys[0]}
	}

	suffix := "ON CONFLICT (" + strings.Join(conflictKeys, ", ") + ") DO UPDATE SET " +
		strings.Join(updates, ", ") + " " + returning[T]()
	query, args, err := QB.Insert(table).SetMap(values).Suffix(suffix).ToSql()
	if err != nil {
		return row, classify("upsert", table, err)
	}
	if err := sqlx.GetContext(ctx, g.ext, &row, query, args...); err != nil {
		return row, classify("upsert", table, err)
	}
	g.emit(ctx, domain.EventUpdate, table, nil, row)
	return row, nil
}

// Update refuses to run without filters.
func Update[T any](ctx context.Context, g *Gateway, table string, values map[string]any, filters ...Filter) ([]T, error) {
	if len(filters) == 0 {
		return nil, kindError("update", table, ErrInvalid)
	}

	builder := QB.Update(table).SetMap(values)
	for _, f := range filters {
		builder = builder.Where(f.sqlizer)
	}
	query, args, err := builder.Suffix(returning[T]()).ToSql()
	if err != nil {
		return nil, classify("update", table, err)
	}

	rows := []T{}
	if err := sqlx.SelectContext(ctx, g.ext, &rows, query, args...); err != nil {
		return nil, classify("update", table, err)
	}
	for _, row := range rows {
		g.emit(ctx, domain.EventUpdate, table, nil, row)
	}
	return rows, nil
}

// Delete refuses to run without filters.
func Delete[T any](ctx context.Context, g *Gateway, table string, filters ...Filter) ([]T, error) {
	if len(filters) == 0 {
		return nil, kindError("delete", table, ErrInvalid)
	}

	builder := QB.Delete(table)
	for _, f := range filters {
		builder = builder.Where(f.sqlizer)
	}
	query, args, err := builder.Suffix(returning[T]()).ToSql()
	if err != nil {
		return nil, classify("delete", table, err)
	}

	rows := []T{}
	if err := sqlx.SelectContext(ctx, g.ext, &rows, query, args...); err != nil {
		return nil, classify("delete", table, err)
	}
	for _, row := range rows {
		g.emit(ctx, domain.EventDelete, table, row, nil)
	}
	return rows, nil
}
