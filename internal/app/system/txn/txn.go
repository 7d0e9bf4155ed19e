// Package txn wraps multi-document Mongo transactions so callers get
// all-or-nothing semantics without caring whether the deployment supports
// them. On standalone servers (no replica set) the callback runs without a
// transaction; review generation stays safe there because its writes are
// guarded by the unique (assignment_id, user_id, target_id) index.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run executes fn inside a Mongo transaction when the server supports one.
// If starting the session or transaction fails because the deployment does
// not support transactions, fn runs directly and that is logged once at
// debug level. Any error from fn aborts the transaction and is returned.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn func(ctx context.Context) error) error {
	client := db.Client()

	sess, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			if log != nil {
				log.Debug("mongo sessions unsupported, running without transaction", zap.Error(err))
			}
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		if log != nil {
			log.Debug("mongo transactions unsupported, running without transaction", zap.Error(err))
		}
		return fn(ctx)
	}
	return err
}

// IsNotSupported reports whether err indicates the deployment cannot run
// multi-document transactions (standalone server, old wire version, or a
// DocumentDB-style deployment).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		// 20: IllegalOperation (transaction numbers need a replica set)
		// 51: transactions not allowed on this node
		// 263: operation not permitted in a multi-document transaction
		switch ce.Code {
		case 20, 51, 263:
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "illegal operation") && strings.Contains(msg, "transaction") {
		return true
	}
	if strings.Contains(msg, "transaction") &&
		(strings.Contains(msg, "replica set") || strings.Contains(msg, "session")) {
		return true
	}
	if strings.Contains(msg, "session") && strings.Contains(msg, "not supported") {
		return true
	}
	return false
}
