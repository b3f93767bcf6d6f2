package logging

import (
	"context"
	"errors"
	"log/slog"
	"slices"
)

// sinkHandler delivers each record to every output that accepts its level.
// Records are stamped with the run ID and with the correlation and directory
// fields carried by the logging context, unless a key was already bound
// through With or set on the record.
type sinkHandler struct {
	outputs []slog.Handler
	runID   string
	bound   []string
	grouped bool
}

func newSinkHandler(runID string, outputs ...slog.Handler) *sinkHandler {
	live := make([]slog.Handler, 0, len(outputs))
	for _, out := range outputs {
		if out != nil {
			live = append(live, out)
		}
	}
	return &sinkHandler{outputs: live, runID: runID}
}

func (h *sinkHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return slices.ContainsFunc(h.outputs, func(out slog.Handler) bool {
		return out.Enabled(ctx, level)
	})
}

func (h *sinkHandler) Handle(ctx context.Context, record slog.Record) error {
	if extra := h.stamps(ctx, record); len(extra) > 0 {
		record = record.Clone()
		record.AddAttrs(extra...)
	}
	var errs []error
	for i, out := range h.outputs {
		if !out.Enabled(ctx, record.Level) {
			continue
		}
		r := record
		if i < len(h.outputs)-1 {
			r = record.Clone()
		}
		if err := out.Handle(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *sinkHandler) stamps(ctx context.Context, record slog.Record) []slog.Attr {
	if h.grouped {
		return nil
	}
	candidates := ContextFields(ctx)
	if h.runID != "" {
		candidates = append(candidates, slog.String(FieldRunID, h.runID))
	}
	if len(candidates) == 0 {
		return nil
	}
	present := slices.Clone(h.bound)
	record.Attrs(func(a slog.Attr) bool {
		present = append(present, a.Key)
		return true
	})
	extra := candidates[:0]
	for _, c := range candidates {
		if !slices.Contains(present, c.Key) {
			extra = append(extra, c)
		}
	}
	return extra
}

func (h *sinkHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.derive(func(out slog.Handler) slog.Handler { return out.WithAttrs(attrs) })
	if !h.grouped {
		for _, a := range attrs {
			next.bound = append(next.bound, a.Key)
		}
	}
	return next
}

func (h *sinkHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.derive(func(out slog.Handler) slog.Handler { return out.WithGroup(name) })
	next.grouped = true
	return next
}

func (h *sinkHandler) derive(apply func(slog.Handler) slog.Handler) *sinkHandler {
	next := &sinkHandler{
		outputs: make([]slog.Handler, len(h.outputs)),
		runID:   h.runID,
		bound:   slices.Clone(h.bound),
		grouped: h.grouped,
	}
	for i, out := range h.outputs {
		next.outputs[i] = apply(out)
	}
	return next
}

// WithRunID returns a logger whose records all carry run_id. A nil logger
// stays nil.
func WithRunID(logger *slog.Logger, runID string) *slog.Logger {
	if logger == nil || runID == "" {
		return logger
	}
	if sink, ok := logger.Handler().(*sinkHandler); ok {
		next := sink.derive(func(out slog.Handler) slog.Handler { return out })
		next.runID = runID
		return slog.New(next)
	}
	return slog.New(newSinkHandler(runID, logger.Handler()))
}
