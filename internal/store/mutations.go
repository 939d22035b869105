package store

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"oak-ledger/internal/model"
	"oak-ledger/internal/notify"
	"oak-ledger/pkg/logger"
	"oak-ledger/prometheus"
)

func (s *Store) AddInventoryItem(ctx context.Context, item model.InventoryItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	return s.mutate(ctx, Inventory, "add inventory item", "Inventory item added", func(ctx context.Context) error {
		return s.remote.CreateInventoryItem(ctx, item)
	})
}

func (s *Store) UpdateInventoryItem(ctx context.Context, item model.InventoryItem) error {
	if err := requireID(item.ID); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return err
	}
	return s.mutate(ctx, Inventory, "update inventory item", "Inventory item updated", func(ctx context.Context) error {
		return s.remote.UpdateInventoryItem(ctx, item)
	})
}

func (s *Store) DeleteInventoryItem(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	return s.mutate(ctx, Inventory, "delete inventory item", "Inventory item deleted", func(ctx context.Context) error {
		return s.ignoreNotFound(ctx, s.remote.DeleteInventoryItem(ctx, id))
	})
}

// AddOrder prices a draft against the cached item and records it. Unknown
// items, quantities below one and sales above cached stock are rejected
// before anything is sent.
func (s *Store) AddOrder(ctx context.Context, draft model.OrderDraft) (model.Order, error) {
	item, ok := s.FindItem(draft.ItemID)
	if !ok {
		return model.Order{}, &model.ValidationError{Field: "itemId", Message: "Select an item"}
	}
	order, err := model.NewOrder(item, draft.Type, draft.Quantity, s.Today())
	if err != nil {
		return model.Order{}, err
	}

	err = s.mutate(ctx, Orders, "add order", "Order recorded", func(ctx context.Context) error {
		return s.remote.CreateOrder(ctx, order)
	})
	if err != nil {
		return model.Order{}, err
	}
	return order, nil
}

func (s *Store) AddLaborer(ctx context.Context, l model.Laborer) error {
	if err := l.Validate(); err != nil {
		return err
	}
	return s.mutate(ctx, Laborers, "add laborer", "Worker added", func(ctx context.Context) error {
		return s.remote.CreateLaborer(ctx, l)
	})
}

func (s *Store) UpdateLaborer(ctx context.Context, l model.Laborer) error {
	if err := requireID(l.ID); err != nil {
		return err
	}
	if err := l.Validate(); err != nil {
		return err
	}
	return s.mutate(ctx, Laborers, "update laborer", "Worker updated", func(ctx context.Context) error {
		return s.remote.UpdateLaborer(ctx, l)
	})
}

func (s *Store) DeleteLaborer(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	return s.mutate(ctx, Laborers, "delete laborer", "Worker removed", func(ctx context.Context) error {
		return s.ignoreNotFound(ctx, s.remote.DeleteLaborer(ctx, id))
	})
}

// AddExpense records an expense, dated today unless a date is given
func (s *Store) AddExpense(ctx context.Context, e model.Expense) error {
	if strings.TrimSpace(e.Date) == "" {
		e.Date = s.Today()
	}
	if err := e.Validate(); err != nil {
		return err
	}
	return s.mutate(ctx, Expenses, "add expense", "Expense recorded", func(ctx context.Context) error {
		return s.remote.CreateExpense(ctx, e)
	})
}

// mutate performs one remote write and then reloads the collections the
// policy names. A failed reload leaves the previous snapshot in place and
// does not fail the write.
func (s *Store) mutate(ctx context.Context, coll Collection, action, success string, write func(context.Context) error) error {
	log := logger.Ctx(ctx, s.log).With(zap.String("collection", string(coll)), zap.String("action", action))
	if s.session != nil && !s.session.Authenticated() {
		return ErrNotAuthenticated
	}

	if err := write(ctx); err != nil {
		werr := &RemoteWriteError{Collection: coll, Action: action, Err: err}
		prometheus.RecordWriteFailure(string(coll))
		log.Error("Remote write failed", zap.Error(err))
		s.notifier.Push(notify.LevelError, werr.Message())
		return werr
	}
	log.Info("Remote write succeeded")

	// the refetch outlives a cancelled request
	if err := s.reload(context.WithoutCancel(ctx), s.policy.Collections(coll)); err != nil {
		log.Warn("Reload after write failed", zap.Error(err))
		s.notifier.Push(notify.LevelWarning, success+", but the latest records could not be loaded")
		return nil
	}
	s.notifier.Push(notify.LevelSuccess, success)
	return nil
}

func (s *Store) ignoreNotFound(ctx context.Context, err error) error {
	if err != nil && notFound(err) {
		logger.Ctx(ctx, s.log).Info("Record already gone, treating delete as done", zap.Error(err))
		return nil
	}
	return err
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return &model.ValidationError{Field: "id", Message: "Record id is required"}
	}
	return nil
}
