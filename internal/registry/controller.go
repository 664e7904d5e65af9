package registry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/roster/internal/log"
)

// Display is everything the controller needs from a front end.
type Display interface {
	// Render replaces the visible list with records. The renderer must ask
	// the user for confirmation before calling onDelete.
	Render(records []Record, onDelete func(email string))
	// SetCount shows the collection size.
	SetCount(n int)
	// ResetForm clears the entry form after a successful submission.
	ResetForm()
	// Alert shows a message the user has to acknowledge.
	Alert(message string)
}

// Recorder receives operation outcomes, typically for metrics.
type Recorder interface {
	ObserveSubmit(err error)
	ObserveRemove(removed int)
	SetRecords(n int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveSubmit(error) {}
func (nopRecorder) ObserveRemove(int) {}
func (nopRecorder) SetRecords(int) {}

// Controller drives a Display from a Manager: submissions, filter changes
// and deletions each end with the counter and the list brought up to date.
type Controller struct {
	manager  *Manager
	display  Display
	tracer   trace.Tracer
	recorder Recorder
	selected string
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithTracer wraps every operation in a span.
func WithTracer(t trace.Tracer) ControllerOption {
	return func(c *Controller) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithRecorder reports operation outcomes to r.
func WithRecorder(r Recorder) ControllerOption {
	return func(c *Controller) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithInitialFilter starts with role selected instead of AllRoles.
func WithInitialFilter(role string) ControllerOption {
	return func(c *Controller) {
		if role != "" {
			c.selected = role
		}
	}
}

// NewController binds manager to display.
func NewController(manager *Manager, display Display, opts ...ControllerOption) *Controller {
	c := &Controller{
		manager:  manager,
		display:  display,
		tracer:   noop.NewTracerProvider().Tracer("roster"),
		recorder: nopRecorder{},
		selected: AllRoles,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Manager returns the underlying registry.
func (c *Controller) Manager() *Manager {
	return c.manager
}

// Selected returns the active role filter.
func (c *Controller) Selected() string {
	return c.selected
}

// Submit registers a person from raw form input. Validation failures are
// alerted and returned; the form keeps its values.
func (c *Controller) Submit(ctx context.Context, fields Fields) error {
	_, span := c.tracer.Start(ctx, "registry.submit")
	defer span.End()

	rec, err := c.manager.Submit(fields)
	c.recorder.ObserveSubmit(err)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			span.SetAttributes(attribute.String("registry.rejection", verr.Err.Error()))
		}
		span.SetStatus(codes.Error, err.Error())
		c.display.Alert(AlertMessage(err))
		return err
	}

	span.SetAttributes(
		attribute.String("registry.record_id", rec.ID),
		attribute.String("registry.role", rec.Role),
	)
	c.Refresh()
	c.display.ResetForm()
	return nil
}

// Filter selects the role shown by the list and re-renders.
func (c *Controller) Filter(ctx context.Context, role string) {
	_, span := c.tracer.Start(ctx, "registry.filter",
		trace.WithAttributes(attribute.String("registry.role", role)))
	defer span.End()

	if role == "" {
		role = AllRoles
	}
	c.selected = role
	log.Debug(log.CatRegistry, "Filter changed", "role", role)
	c.render()
}

// Remove deletes records by email. The counter and list are refreshed even
// when nothing matched.
func (c *Controller) Remove(ctx context.Context, email string) {
	_, span := c.tracer.Start(ctx, "registry.remove")
	defer span.End()

	n := c.manager.Remove(email)
	span.SetAttributes(attribute.Int("registry.removed", n))
	c.recorder.ObserveRemove(n)
	c.Refresh()
}

// Refresh pushes the current count and filtered view to the display.
func (c *Controller) Refresh() {
	n := c.manager.Count()
	c.recorder.SetRecords(n)
	c.display.SetCount(n)
	c.render()
}

func (c *Controller) render() {
	c.display.Render(c.manager.FilteredView(c.selected), func(email string) {
		c.Remove(context.Background(), email)
	})
}
