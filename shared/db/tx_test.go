package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// every pooled connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE cached_posts (id INTEGER PRIMARY KEY, title TEXT NOT NULL)`)
	if err != nil {
		t.Fatalf("Failed to create test table: %v", err)
	}

	return db
}

func countRows(t *testing.T, db *sql.DB) int {
	t.Helper()
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM cached_posts").Scan(&count); err != nil {
		t.Fatalf("Failed to query: %v", err)
	}
	return count
}

func TestRunInTransaction_NewTransaction(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	err := RunInTransaction(ctx, db, func(txCtx context.Context) error {
		if _, ok := GetTx(txCtx); !ok {
			t.Error("Expected transaction in context")
		}

		executor := GetExecutor(txCtx, db)
		_, err := executor.ExecContext(txCtx, "INSERT INTO cached_posts (id, title) VALUES (?, ?)", 1, "first")
		return err
	})

	if err != nil {
		t.Fatalf("RunInTransaction failed: %v", err)
	}

	if count := countRows(t, db); count != 1 {
		t.Errorf("Expected 1 row, got %d", count)
	}
}

func TestRunInTransaction_Rollback(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	err := RunInTransaction(ctx, db, func(txCtx context.Context) error {
		executor := GetExecutor(txCtx, db)
		_, err := executor.ExecContext(txCtx, "INSERT INTO cached_posts (id, title) VALUES (?, ?)", 1, "first")
		if err != nil {
			return err
		}
		return sql.ErrTxDone
	})

	if !errors.Is(err, sql.ErrTxDone) {
		t.Fatalf("RunInTransaction error = %v, want %v", err, sql.ErrTxDone)
	}

	if count := countRows(t, db); count != 0 {
		t.Errorf("Expected 0 rows (rollback), got %d", count)
	}
}

func TestRunInTransaction_ClearThenInsertIsAtomic(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	if _, err := db.Exec("INSERT INTO cached_posts (id, title) VALUES (1, 'old'), (2, 'old')"); err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}

	err := RunInTransaction(ctx, db, func(txCtx context.Context) error {
		executor := GetExecutor(txCtx, db)
		if _, err := executor.ExecContext(txCtx, "DELETE FROM cached_posts"); err != nil {
			return err
		}
		// the second insert violates NOT NULL and aborts the generation
		if _, err := executor.ExecContext(txCtx, "INSERT INTO cached_posts (id, title) VALUES (?, ?)", 3, "new"); err != nil {
			return err
		}
		_, err := executor.ExecContext(txCtx, "INSERT INTO cached_posts (id, title) VALUES (?, ?)", 4, nil)
		return err
	})

	if err == nil {
		t.Fatal("Expected error from RunInTransaction")
	}

	if count := countRows(t, db); count != 2 {
		t.Errorf("Expected previous generation of 2 rows, got %d", count)
	}
}

func TestRunInTransaction_PanicRollsBack(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	func() {
		defer func() {
			if recover() == nil {
				t.Error("Expected panic to propagate")
			}
		}()
		_ = RunInTransaction(ctx, db, func(txCtx context.Context) error {
			executor := GetExecutor(txCtx, db)
			if _, err := executor.ExecContext(txCtx, "INSERT INTO cached_posts (id, title) VALUES (?, ?)", 1, "first"); err != nil {
				return err
			}
			panic("boom")
		})
	}()

	if count := countRows(t, db); count != 0 {
		t.Errorf("Expected 0 rows after panic, got %d", count)
	}
}

func TestRunInTransaction_NestedTransaction(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	err := RunInTransaction(ctx, db, func(outerCtx context.Context) error {
		executor := GetExecutor(outerCtx, db)
		_, err := executor.ExecContext(outerCtx, "INSERT INTO cached_posts (id, title) VALUES (?, ?)", 1, "outer")
		if err != nil {
			return err
		}

		return RunInTransaction(outerCtx, db, func(innerCtx context.Context) error {
			outerTx, _ := GetTx(outerCtx)
			innerTx, _ := GetTx(innerCtx)

			if outerTx != innerTx {
				t.Error("Expected nested transaction to reuse outer transaction")
			}

			executor := GetExecutor(innerCtx, db)
			_, err := executor.ExecContext(innerCtx, "INSERT INTO cached_posts (id, title) VALUES (?, ?)", 2, "inner")
			return err
		})
	})

	if err != nil {
		t.Fatalf("RunInTransaction failed: %v", err)
	}

	if count := countRows(t, db); count != 2 {
		t.Errorf("Expected 2 rows, got %d", count)
	}
}

func TestRunInTransaction_NestedRollback(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	err := RunInTransaction(ctx, db, func(outerCtx context.Context) error {
		executor := GetExecutor(outerCtx, db)
		_, err := executor.ExecContext(outerCtx, "INSERT INTO cached_posts (id, title) VALUES (?, ?)", 1, "outer")
		if err != nil {
			return err
		}

		return RunInTransaction(outerCtx, db, func(innerCtx context.Context) error {
			executor := GetExecutor(innerCtx, db)
			_, err := executor.ExecContext(innerCtx, "INSERT INTO cached_posts (id, title) VALUES (?, ?)", 2, "inner")
			if err != nil {
				return err
			}
			return sql.ErrTxDone
		})
	})

	if err == nil {
		t.Fatal("Expected error from RunInTransaction")
	}

	if count := countRows(t, db); count != 0 {
		t.Errorf("Expected 0 rows (complete rollback), got %d", count)
	}
}

func TestGetExecutor_WithTransaction(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	txCtx := WithTx(ctx, tx)
	executor := GetExecutor(txCtx, db)

	if executor != tx {
		t.Error("Expected executor to be the transaction")
	}
}

func TestGetExecutor_WithoutTransaction(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	executor := GetExecutor(context.Background(), db)

	if executor != db {
		t.Error("Expected executor to be the database")
	}
}
