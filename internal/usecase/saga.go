package usecase

import (
	"context"

	"go.uber.org/zap"
)

// saga collects undo actions for external resources created during a single
// request. When a later step fails, Rollback runs the undo actions in reverse
// order. Only resources created in the current request are ever rolled back;
// pre-existing resources never get an undo action recorded.
type saga struct {
	logger *zap.Logger
	undos  []func(context.Context) error
	names  []string
}

func newSaga(logger *zap.Logger) *saga {
	return &saga{logger: logger}
}

// Record registers the undo action for a step that just succeeded
func (s *saga) Record(name string, undo func(context.Context) error) {
	s.names = append(s.names, name)
	s.undos = append(s.undos, undo)
}

// Rollback runs recorded undo actions newest-first. Each undo is best-effort:
// a failing undo is logged and the remaining ones still run.
func (s *saga) Rollback(ctx context.Context) {
	for i := len(s.undos) - 1; i >= 0; i-- {
		if err := s.undos[i](ctx); err != nil {
			s.logger.Error("Compensating action failed",
				zap.String("step", s.names[i]),
				zap.Error(err))
		} else {
			s.logger.Info("Compensating action completed",
				zap.String("step", s.names[i]))
		}
	}
	s.undos = nil
	s.names = nil
}
