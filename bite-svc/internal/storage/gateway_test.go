package storage_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"scroll-and-bite/bite-svc/internal/domain"
	"scroll-and-bite/bite-svc/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu        sync.Mutex
	events    []domain.ChangeEvent
	err       error
	onPublish func(domain.ChangeEvent)
}

func (p *recordingPublisher) PublishChange(_ context.Context, event domain.ChangeEvent) error {
	if p.onPublish != nil {
		p.onPublish(event)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Events() []domain.ChangeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.ChangeEvent(nil), p.events...)
}

func setupTestRepo(t *testing.T) (*storage.PostgresRepository, sqlmock.Sqlmock, *recordingPublisher) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })

	publisher := &recordingPublisher{}
	repo := storage.NewPostgresRepository(sqlx.NewDb(mockDB, "sqlmock"), publisher)
	return repo, mock, publisher
}

func cartLineRows() *sqlmock.Rows {
	return sqlmock.NewRows(storage.Columns[domain.CartLine]())
}

func TestColumns_SkipsUntaggedAndIgnored(t *testing.T) {
	assert.Equal(t,
		[]string{"product_id", "user_id", "restaurant_id", "quantity", "created_at"},
		storage.Columns[domain.CartLine]())
	assert.NotContains(t, storage.Columns[domain.Post](), "-")
	assert.Equal(t, []string{"id", "password_hash"}, storage.Columns[storage.Credentials]())
}

func TestSingle(t *testing.T) {
	key := domain.CartKey{ProductID: 1, UserID: "u1", RestaurantID: 7}
	now := time.Now()

	tests := []struct {
		name     string
		rows     *sqlmock.Rows
		queryErr error
		wantKind error
		wantLine bool
	}{
		{
			name:     "exactly one row",
			rows:     cartLineRows().AddRow(1, "u1", 7, 3, now),
			wantLine: true,
		},
		{
			name: "no rows",
			rows: cartLineRows(),
		},
		{
			name:     "two rows",
			rows:     cartLineRows().AddRow(1, "u1", 7, 3, now).AddRow(1, "u1", 7, 4, now),
			wantKind: storage.ErrMultipleRows,
		},
		{
			name:     "driver failure",
			queryErr: errors.New("connection reset"),
			wantKind: storage.ErrTransport,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo, mock, _ := setupTestRepo(t)

			expect := mock.ExpectQuery(`SELECT (.+) FROM cart_lines WHERE product_id = \$1 AND user_id = \$2 AND restaurant_id = \$3 LIMIT 2`).
				WithArgs(key.ProductID, key.UserID, key.RestaurantID)
			if testCase.queryErr != nil {
				expect.WillReturnError(testCase.queryErr)
			} else {
				expect.WillReturnRows(testCase.rows)
			}

			line, found, err := repo.GetCartLine(context.Background(), key)

			if testCase.wantKind != nil {
				assert.ErrorIs(t, err, testCase.wantKind)
			} else {
				require.NoError(t, err)
				assert.Equal(t, testCase.wantLine, found)
				if found {
					assert.Equal(t, 3, line.Quantity)
				}
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUpsert_UsesCompositeConflictTarget(t *testing.T) {
	repo, mock, publisher := setupTestRepo(t)
	key := domain.CartKey{ProductID: 1, UserID: "u1", RestaurantID: 7}

	mock.ExpectQuery(`INSERT INTO cart_lines \(product_id,quantity,restaurant_id,user_id\) VALUES \(\$1,\$2,\$3,\$4\) ON CONFLICT \(product_id, user_id, restaurant_id\) DO UPDATE SET quantity = EXCLUDED.quantity RETURNING`).
		WithArgs(key.ProductID, 2, key.RestaurantID, key.UserID).
		WillReturnRows(cartLineRows().AddRow(1, "u1", 7, 2, time.Now()))

	line, err := repo.UpsertCartLine(context.Background(), key, 2)

	require.NoError(t, err)
	assert.Equal(t, 2, line.Quantity)
	require.Len(t, publisher.Events(), 1)
	assert.Equal(t, domain.EventUpdate, publisher.Events()[0].EventType)
	assert.Equal(t, storage.TableCartLines, publisher.Events()[0].Table)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_ClassifiesUniqueViolation(t *testing.T) {
	repo, mock, publisher := setupTestRepo(t)

	mock.ExpectQuery(`INSERT INTO post_likes`).
		WithArgs(int64(5), "u1").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.InsertLike(context.Background(), 5, "u1")

	assert.ErrorIs(t, err, storage.ErrConflict)
	var gwErr *storage.GatewayError
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, "insert", gwErr.Op)
	assert.Equal(t, storage.TablePostLikes, gwErr.Table)
	assert.Empty(t, publisher.Events())
}

func TestUpdate_WithoutFiltersIsRejected(t *testing.T) {
	repo, mock, _ := setupTestRepo(t)

	_, err := storage.Update[domain.CartLine](context.Background(), repo.Gateway, storage.TableCartLines, map[string]any{"quantity": 1})

	assert.ErrorIs(t, err, storage.ErrInvalid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_EmitsOldRows(t *testing.T) {
	repo, mock, publisher := setupTestRepo(t)

	mock.ExpectQuery(`DELETE FROM cart_lines WHERE user_id = \$1 AND restaurant_id IN \(\$2,\$3\) RETURNING`).
		WithArgs("u1", int64(7), int64(8)).
		WillReturnRows(cartLineRows().
			AddRow(1, "u1", 7, 1, time.Now()).
			AddRow(2, "u1", 8, 4, time.Now()))

	removed, err := repo.DeleteCartLines(context.Background(), "u1", 7, 8)

	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	events := publisher.Events()
	require.Len(t, events, 2)
	for _, event := range events {
		assert.Equal(t, domain.EventDelete, event.EventType)
		assert.NotEmpty(t, event.Old)
		assert.Empty(t, event.New)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_PublishesOnlyAfterCommit(t *testing.T) {
	repo, mock, publisher := setupTestRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO posts`).
		WillReturnRows(sqlmock.NewRows(storage.Columns[domain.Post]()).AddRow(1, 7, "Lunch", time.Now()))
	mock.ExpectRollback()

	err := repo.InTx(context.Background(), func(tx *storage.PostgresRepository) error {
		if _, err := tx.InsertPost(context.Background(), 7, "Lunch"); err != nil {
			return err
		}
		return sql.ErrConnDone
	})

	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.Empty(t, publisher.Events())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_PublishFailureDoesNotFailWrite(t *testing.T) {
	repo, mock, publisher := setupTestRepo(t)
	publisher.err = errors.New("broker down")

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO posts`).
		WillReturnRows(sqlmock.NewRows(storage.Columns[domain.Post]()).AddRow(1, 7, "Lunch", time.Now()))
	mock.ExpectCommit()

	err := repo.InTx(context.Background(), func(tx *storage.PostgresRepository) error {
		_, err := tx.InsertPost(context.Background(), 7, "Lunch")
		return err
	})

	require.NoError(t, err)
	assert.Len(t, publisher.Events(), 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
