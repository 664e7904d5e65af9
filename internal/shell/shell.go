// Package shell is the line-oriented front end: commands are read from an
// input stream and the registry is printed after every change.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/roster/internal/log"
	"github.com/zjrosen/roster/internal/registry"
)

const (
	prompt = "roster> "
	// allFlag clears the filter, like filter with no argument or AllRoles.
	allFlag = "--all"
)

// Options configures a Session.
type Options struct {
	// Roles are the configured roles listed by the roles command.
	Roles    []string
	Filter   string
	Tracer   trace.Tracer
	Recorder registry.Recorder
	// HelpStyle is the glamour style for the help text. Default "notty".
	HelpStyle string
	Width     int
}

// Session runs one interactive shell. It is the registry.Display for its
// controller.
type Session struct {
	in      *bufio.Scanner
	lines   chan string
	readErr error
	ctx     context.Context
	out     io.Writer
	ctrl    *registry.Controller
	manager *registry.Manager
	roles   []string
	help    string

	draft    registry.Fields
	shown    []registry.Record
	onDelete func(email string)
}

// New builds a session reading commands from in and writing to out.
func New(manager *registry.Manager, in io.Reader, out io.Writer, opts Options) (*Session, error) {
	style := opts.HelpStyle
	if style == "" {
		style = "notty"
	}
	width := opts.Width
	if width <= 0 {
		width = 80
	}
	help, err := renderHelp(style, width)
	if err != nil {
		return nil, fmt.Errorf("rendering help: %w", err)
	}

	s := &Session{
		in:      bufio.NewScanner(in),
		ctx:     context.Background(),
		out:     out,
		manager: manager,
		roles:   opts.Roles,
		help:    help,
	}
	s.ctrl = registry.NewController(manager, s,
		registry.WithTracer(opts.Tracer),
		registry.WithRecorder(opts.Recorder),
		registry.WithInitialFilter(opts.Filter),
	)
	return s, nil
}

// Run paints the initial state and processes commands until quit, end of
// input or ctx cancellation.
func (s *Session) Run(ctx context.Context) error {
	s.ctx = ctx
	s.ctrl.Refresh()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.out, prompt)
		line, err := s.readLine(ctx)
		if err != nil {
			fmt.Fprintln(s.out)
			if errors.Is(err, io.EOF) {
				return s.readErr
			}
			return err
		}
		if quit := s.exec(ctx, line); quit {
			return nil
		}
	}
}

// readLine waits for the next input line or ctx cancellation, whichever
// comes first. End of input is io.EOF.
func (s *Session) readLine(ctx context.Context) (string, error) {
	if s.lines == nil {
		s.lines = make(chan string)
		go s.scan()
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-s.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}

// scan feeds input lines to readLine. It blocks in Read, so it outlives a
// cancelled session until the reader is closed.
func (s *Session) scan() {
	defer close(s.lines)
	for s.in.Scan() {
		s.lines <- s.in.Text()
	}
	s.readErr = s.in.Err()
}

// exec runs one command line and reports whether the session should end.
func (s *Session) exec(ctx context.Context, line string) bool {
	args, err := splitArgs(line)
	if err != nil {
		s.printf("error: %v\n", err)
		return false
	}
	if len(args) == 0 {
		return false
	}
	cmd, rest := strings.ToLower(args[0]), args[1:]
	log.Debug(log.CatShell, "Command", "name", cmd, "args", len(rest))

	switch cmd {
	case "add":
		draft, err := applyPairs(s.draft, rest)
		if err != nil {
			s.printf("error: %v\n", err)
			return false
		}
		s.draft = draft
		_ = s.ctrl.Submit(ctx, s.draft)
	case "set":
		draft, err := applyPairs(s.draft, rest)
		if err != nil {
			s.printf("error: %v\n", err)
			return false
		}
		s.draft = draft
		s.printDraft()
	case "form":
		s.printDraft()
	case "clear":
		s.ResetForm()
	case "filter":
		role := registry.AllRoles
		if len(rest) > 0 && rest[0] != allFlag {
			role = strings.Join(rest, " ")
		}
		s.ctrl.Filter(ctx, role)
	case "list", "ls":
		s.ctrl.Refresh()
	case "count":
		s.SetCount(s.manager.Count())
	case "roles":
		s.printRoles()
	case "rm", "del", "delete":
		if len(rest) != 1 {
			s.printf("usage: rm <email or #>\n")
			return false
		}
		s.remove(rest[0])
	case "help", "?":
		fmt.Fprint(s.out, s.help)
	case "quit", "exit", "q":
		return true
	default:
		s.printf("Unknown command %q. Type help for the list of commands.\n", cmd)
	}
	return false
}

// remove resolves target against the last rendered list and deletes after
// confirmation.
func (s *Session) remove(target string) {
	email := target
	if n, err := strconv.Atoi(target); err == nil {
		if n < 1 || n > len(s.shown) {
			s.printf("No item #%d in the current list.\n", n)
			return
		}
		email = s.shown[n-1].Email
	} else if !s.isShown(email) {
		s.printf("No registration with email %q in the current list.\n", email)
		return
	}

	if s.onDelete == nil || !s.Confirm(registry.MsgConfirmDelete) {
		return
	}
	s.onDelete(email)
}

func (s *Session) isShown(email string) bool {
	for _, r := range s.shown {
		if r.Email == email {
			return true
		}
	}
	return false
}

// Confirm asks a yes/no question on the session streams. Anything but y or
// yes, including end of input and cancellation, is a no.
func (s *Session) Confirm(message string) bool {
	s.printf("%s [y/N] ", message)
	line, err := s.readLine(s.ctx)
	if err != nil {
		fmt.Fprintln(s.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// Render prints the numbered list. The numbers are what rm accepts.
func (s *Session) Render(records []registry.Record, onDelete func(email string)) {
	s.shown = records
	s.onDelete = onDelete

	if len(records) == 0 {
		if sel := s.ctrl.Selected(); sel != registry.AllRoles {
			s.printf("  (no registrations with role %q)\n", sel)
		} else {
			s.printf("  (no registrations)\n")
		}
		return
	}

	nameWidth := 0
	for _, r := range records {
		nameWidth = max(nameWidth, uniseg.StringWidth(r.FullName()))
	}
	for i, r := range records {
		name := r.FullName()
		pad := strings.Repeat(" ", nameWidth-uniseg.StringWidth(name))
		s.printf("%3d. %s%s  <%s>  [%s]%s\n", i+1, name, pad, r.Email, r.Role, extras(r))
	}
}

func extras(r registry.Record) string {
	var parts []string
	for _, v := range []string{r.BirthDate, r.Contact, r.Phone} {
		if strings.TrimSpace(v) != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "  " + strings.Join(parts, " · ")
}

func (s *Session) SetCount(n int) {
	s.printf("Registered: %d\n", n)
}

// ResetForm empties the draft.
func (s *Session) ResetForm() {
	s.draft = registry.Fields{}
}

func (s *Session) Alert(message string) {
	s.printf("! %s\n", message)
}

// Draft returns the pending form values.
func (s *Session) Draft() registry.Fields {
	return s.draft
}

func (s *Session) printDraft() {
	d := s.draft
	rows := [][2]string{
		{"name", d.Name}, {"surname", d.Surname}, {"birth", d.BirthDate}, {"email", d.Email},
		{"contact", d.Contact}, {"phone", d.Phone}, {"role", d.Role},
	}
	for _, row := range rows {
		s.printf("  %-8s %s\n", row[0], row[1])
	}
}

func (s *Session) printRoles() {
	seen := map[string]bool{}
	s.printf("  %s (all)\n", registry.AllRoles)
	for _, list := range [][]string{s.roles, s.manager.Roles()} {
		for _, r := range list {
			if r == "" || seen[r] {
				continue
			}
			seen[r] = true
			s.printf("  %s\n", r)
		}
	}
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
