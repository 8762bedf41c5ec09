package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/digitalocean/go-libvirt"

	"github.com/jbweber/virtsh/internal/completion"
	virtshlibvirt "github.com/jbweber/virtsh/internal/libvirt"
	"github.com/jbweber/virtsh/internal/output"
	"github.com/jbweber/virtsh/internal/vm"
)

var (
	// ErrExit is returned by Dispatch for quit and exit.
	ErrExit = errors.New("exit")

	// ErrNotConnected is returned by commands that need a session when
	// there is none.
	ErrNotConnected = errors.New("not connected")
)

// Shell holds the state of one interactive session: the hypervisor
// connection and the completion tree built from it.
type Shell struct {
	out       io.Writer
	dial      Dialer
	session   Session
	uri       string
	completer *completion.Completer
	formatter output.Formatter
	archiver  Archiver

	historyFile  string
	historyLimit int

	// stdin and stdout replace the terminal when set.
	stdin  io.ReadCloser
	stdout io.Writer
}

// Option configures a Shell.
type Option func(*Shell)

// WithOutput sends command output to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Shell) { s.out = w }
}

// WithFormatter renders list and info output with f.
func WithFormatter(f output.Formatter) Option {
	return func(s *Shell) { s.formatter = f }
}

// WithArchiver handles export and import with a.
func WithArchiver(a Archiver) Option {
	return func(s *Shell) { s.archiver = a }
}

// WithInput reads lines from in instead of the terminal. Prompts and
// line editing are written to echo.
func WithInput(in io.ReadCloser, echo io.Writer) Option {
	return func(s *Shell) {
		s.stdin = in
		s.stdout = echo
	}
}

// historyDisabled is readline's HistoryLimit for keeping no history.
// readline reads a limit of 0 as its default of 500.
const historyDisabled = -1

// WithHistory persists line history to path, keeping at most limit lines.
// A limit of 0 or less keeps no history.
func WithHistory(path string, limit int) Option {
	return func(s *Shell) {
		s.historyFile = path
		s.historyLimit = limit
		if limit <= 0 {
			s.historyLimit = historyDisabled
		}
	}
}

// New creates a Shell that opens sessions with dial. It is not connected
// until Connect is called.
func New(dial Dialer, opts ...Option) *Shell {
	s := &Shell{
		out:       os.Stdout,
		dial:      dial,
		completer: completion.NewCompleter(completion.NewTree(nil)),
		formatter: &output.TableFormatter{},
		archiver:  unimplementedArchiver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Completer returns the shell's tab completer.
func (s *Shell) Completer() *completion.Completer {
	return s.completer
}

// URI returns the URI of the current session, or "" when disconnected.
func (s *Shell) URI() string {
	return s.uri
}

// Connect opens a session to uri, replacing the current one, and rebuilds
// the completion tree from the domains it holds. If dialing fails the
// current session is kept.
func (s *Shell) Connect(ctx context.Context, uri string) error {
	sess, err := s.dial(ctx, uri)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", uri, err)
	}

	if s.session != nil {
		if err := s.session.Close(); err != nil {
			log.Printf("Warning: failed to close connection to %s: %v", s.uri, err)
		}
	}

	s.session = sess
	s.uri = uri
	s.refreshCompletion()

	return nil
}

// Banner describes the current connection, including the daemon's libvirt
// version when it can be read.
func (s *Shell) Banner() string {
	if s.session == nil {
		return "Not connected"
	}
	v, err := s.session.ConnectGetLibVersion()
	if err != nil {
		log.Printf("Warning: failed to get libvirt version: %v", err)
		return fmt.Sprintf("Connected to %s", s.uri)
	}
	return fmt.Sprintf("Connected to %s (libvirt %s)", s.uri, virtshlibvirt.FormatVersion(v))
}

// refreshCompletion replaces the completion tree with one listing the
// session's current domains.
func (s *Shell) refreshCompletion() {
	names, err := vm.Names(s.session)
	if err != nil {
		log.Printf("Warning: failed to list domains for completion: %v", err)
		names = nil
	}
	s.completer.SetTree(completion.NewTree(names))
}

// Close disconnects the current session, if any.
func (s *Shell) Close() error {
	if s.session == nil {
		return nil
	}

	sess := s.session
	s.session = nil
	s.uri = ""
	if err := sess.Close(); err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}
	return nil
}

// Execute dispatches line and prints any error. It reports whether the
// shell should exit.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	err := s.Dispatch(ctx, line)
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrExit):
		return true
	default:
		_, _ = fmt.Fprintf(s.out, "error: %v\n", err)
		return false
	}
}

// Dispatch parses and runs one input line.
//
// Empty lines do nothing. Unknown commands print "<word>: command not
// found". Commands given the wrong number of arguments are ignored.
// quit and exit return ErrExit.
func (s *Shell) Dispatch(ctx context.Context, line string) error {
	cmd := Parse(line)

	switch cmd.Kind {
	case CmdNone:
		return nil
	case CmdUnknown:
		_, _ = fmt.Fprintf(s.out, "%s: command not found\n", cmd.Name)
		return nil
	case CmdQuit:
		return ErrExit
	}

	if !cmd.ArityOK() {
		return nil
	}

	if err := s.run(ctx, cmd); err != nil {
		return fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return nil
}

// run executes a command whose arguments have been checked.
func (s *Shell) run(ctx context.Context, cmd Command) error {
	if cmd.Kind == CmdConnect {
		if err := s.Connect(ctx, cmd.Args[0]); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(s.out, s.Banner())
		return nil
	}

	if s.session == nil {
		return ErrNotConnected
	}
	lv := s.session

	switch cmd.Kind {
	case CmdList:
		return s.list(lv)

	case CmdStart:
		return s.lifecycle(lv, cmd.Args[0], vm.LookupName, vm.Start, "started")

	case CmdShutdown:
		return s.lifecycle(lv, cmd.Args[0], vm.LookupName, vm.Shutdown, "is being shutdown")

	case CmdSuspend:
		return s.lifecycle(lv, cmd.Args[0], vm.Find, vm.Suspend, "suspended")

	case CmdResume:
		return s.lifecycle(lv, cmd.Args[0], vm.Find, vm.Resume, "resumed")

	case CmdInfo:
		return s.info(lv, cmd.Args[0])

	case CmdExport:
		dom, err := vm.Find(lv, cmd.Args[0])
		if err != nil {
			return err
		}
		return s.archiver.Export(ctx, lv, dom)

	case CmdImport:
		return s.archiver.Import(ctx, lv, cmd.Args[0])

	default:
		return fmt.Errorf("unhandled command %s", cmd.Kind)
	}
}

func (s *Shell) list(lv vm.LibvirtClient) error {
	entries, err := vm.ListAll(lv)
	if err != nil {
		return err
	}

	out, err := s.formatter.FormatEntries(entries)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(s.out, out)
	return nil
}

func (s *Shell) info(lv vm.LibvirtClient, token string) error {
	dom, err := vm.Resolve(lv, token)
	if err != nil {
		return err
	}

	info, err := vm.GetInfo(lv, dom)
	if err != nil {
		return err
	}

	out, err := s.formatter.FormatInfo(info)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(s.out, out)
	return nil
}

type (
	resolveFunc   func(vm.LibvirtClient, string) (libvirt.Domain, error)
	lifecycleFunc func(vm.LibvirtClient, libvirt.Domain) error
)

// lifecycle resolves token and applies op to the domain.
func (s *Shell) lifecycle(lv vm.LibvirtClient, token string, resolve resolveFunc, op lifecycleFunc, done string) error {
	dom, err := resolve(lv, token)
	if err != nil {
		return err
	}
	if err := op(lv, dom); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(s.out, "Domain %s %s\n", dom.Name, done)
	return nil
}
