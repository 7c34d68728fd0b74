package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xavierca1/fluent-crm/internal/usecase"
)

func TestTransactionCompensatesInReverseOrder(t *testing.T) {
	var trail []string
	record := func(s string) func(context.Context) error {
		return func(context.Context) error {
			trail = append(trail, s)
			return nil
		}
	}

	tx := usecase.NewTransaction(zaptest.NewLogger(t))
	tx.AddOperation("first", record("run first"), record("undo first"))
	tx.AddOperation("second", record("run second"), nil)
	tx.AddOperation("third", record("run third"), record("undo third"))
	tx.AddOperation("fourth", func(context.Context) error { return errors.New("boom") }, record("undo fourth"))

	err := tx.Execute(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "operation 'fourth' failed")
	assert.Equal(t, []string{"run first", "run second", "run third", "undo third", "undo first"}, trail)
}

func TestTransactionSurvivesFailingCompensation(t *testing.T) {
	undone := false
	tx := usecase.NewTransaction(nil)
	tx.AddOperation("a", func(context.Context) error { return nil }, func(context.Context) error {
		undone = true
		return nil
	})
	tx.AddOperation("b", func(context.Context) error { return nil }, func(context.Context) error {
		return errors.New("cannot undo")
	})
	tx.AddOperation("c", func(context.Context) error { return context.Canceled }, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := tx.Execute(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, undone)
}
