package app

import "github.com/zjrosen/roster/internal/registry"

// display records what the controller asked for while one message was
// being handled. The model drains it into its sub-models afterwards, which
// keeps every state change inside Update.
type display struct {
	records  []registry.Record
	onDelete func(email string)
	rendered bool

	count   int
	counted bool

	reset  bool
	alerts []string
}

func (d *display) Render(records []registry.Record, onDelete func(email string)) {
	d.records = records
	d.onDelete = onDelete
	d.rendered = true
}

func (d *display) SetCount(n int) {
	d.count = n
	d.counted = true
}

func (d *display) ResetForm() {
	d.reset = true
}

func (d *display) Alert(message string) {
	d.alerts = append(d.alerts, message)
}

// drain returns the pending requests and clears them.
func (d *display) drain() display {
	out := *d
	*d = display{count: d.count, records: d.records, onDelete: d.onDelete}
	return out
}
