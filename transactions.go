package memberkit

import (
	"context"
	"fmt"

	"github.com/fernandezvara/dbkit"
)

// Transaction executes a function within a database transaction with automatic commit/rollback.
// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
//
// Example:
//
//	err := store.Transaction(ctx, func(ctx context.Context, tx *memberkit.Store) error {
//	    if _, err := tx.Upsert(ctx, "user1", "proj1", editor.ID); err != nil {
//	        return err // This will cause a rollback
//	    }
//	    if _, err := tx.Upsert(ctx, "user2", "proj1", viewer.ID); err != nil {
//	        return err // This will cause a rollback
//	    }
//	    return nil // This will cause a commit
//	})
func (s *Store) Transaction(ctx context.Context, fn func(ctx context.Context, tx *Store) error) error {
	// Already inside a transaction: nest via savepoint
	if tx, ok := s.db.(*dbkit.Tx); ok {
		return tx.Transaction(ctx, func(tx *dbkit.Tx) error {
			return fn(ctx, s.withDB(tx))
		})
	}

	if db, ok := s.db.(*dbkit.DBKit); ok {
		return db.Transaction(ctx, func(tx *dbkit.Tx) error {
			return fn(ctx, s.withDB(tx))
		})
	}

	return fmt.Errorf("transaction support requires a dbkit.DBKit or dbkit.Tx instance")
}

// TransactionWithOptions executes a function within a database transaction with custom options.
// Supports read-only transactions, isolation levels, and other transaction parameters.
func (s *Store) TransactionWithOptions(ctx context.Context, opts dbkit.TxOptions, fn func(ctx context.Context, tx *Store) error) error {
	if tx, ok := s.db.(*dbkit.Tx); ok {
		// Nested transactions use a savepoint; options do not apply
		return tx.Transaction(ctx, func(tx *dbkit.Tx) error {
			return fn(ctx, s.withDB(tx))
		})
	}

	if db, ok := s.db.(*dbkit.DBKit); ok {
		return db.TransactionWithOptions(ctx, opts, func(tx *dbkit.Tx) error {
			return fn(ctx, s.withDB(tx))
		})
	}

	return fmt.Errorf("transaction support requires a dbkit.DBKit or dbkit.Tx instance")
}

// ReadOnlyTransaction executes a function within a read-only database transaction.
// Useful for listings that want a consistent snapshot across several reads.
//
// Example:
//
//	err := store.ReadOnlyTransaction(ctx, func(ctx context.Context, tx *memberkit.Store) error {
//	    page, err := tx.List(ctx, projectID, "", 50)
//	    if err != nil {
//	        return err
//	    }
//	    total, err = tx.Count(ctx, projectID)
//	    return err
//	})
func (s *Store) ReadOnlyTransaction(ctx context.Context, fn func(ctx context.Context, tx *Store) error) error {
	return s.TransactionWithOptions(ctx, dbkit.ReadOnlyTxOptions(), fn)
}

// withDB returns a copy of the store bound to the given database handle.
func (s *Store) withDB(db Database) *Store {
	clone := *s
	clone.db = db
	if rs, ok := s.roles.(*RoleStore); ok && rs != nil {
		clone.roles = NewRoleStore(db)
	}
	return &clone
}
