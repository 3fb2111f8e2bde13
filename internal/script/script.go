// Package script runs Lua editing scripts against a session.
//
// Scripts run in a sandboxed gopher-lua state with only the base, table,
// string and math libraries. The session is exposed through globals:
//
//	text()            current plain text
//	length()          length in grapheme clusters
//	select(s, e)      set the selection to [s, e)
//	selection()       current selection as s, e
//	toggle(axis)      toggle "bold", "italic", "underline", ...
//	state(axis)       "on", "off" or "mixed" over the selection
//	replace(s)        replace the selected text
//	undo(), redo()    step through history; return false when empty
//	runs()            array of {start, stop, text, attrs}
//
// Execution is bounded by the context passed to Run.
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/richedit/internal/history"
	"github.com/dshills/richedit/internal/richtext"
	"github.com/dshills/richedit/internal/session"
	"github.com/dshills/richedit/internal/toggle"
)

const groupName = "script"

// DefaultTimeout bounds a script run when the context has no deadline.
const DefaultTimeout = 5 * time.Second

// Errors returned by Run.
var (
	ErrTimeout = errors.New("script timed out")
	ErrScript  = errors.New("script error")
)

// Runner executes scripts.
type Runner struct {
	timeout time.Duration
	output  io.Writer
	logger  *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout sets the default execution timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithOutput sets where print writes. Output is discarded by default.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.output = w
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		timeout: DefaultTimeout,
		output:  io.Discard,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes code against sess. All edits of one run form a single undo
// unit named "script". The edits stay applied when the script fails part
// way and remain undoable.
func (r *Runner) Run(ctx context.Context, sess *session.Session, code string) (err error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	L := newState()
	defer L.Close()
	L.SetContext(ctx)

	b := &binding{sess: sess, out: r.output}
	b.install(L)

	if h := sess.History(); !h.IsGrouping() {
		h.BeginGroup(groupName)
		defer h.EndGroup()
	}

	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: lua panic: %v", ErrScript, p)
		}
		r.logger.Debug("script finished", "elapsed", time.Since(start), "error", err)
	}()

	if runErr := L.DoString(code); runErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %v", ErrTimeout, ctxErr)
		}
		return fmt.Errorf("%w: %v", ErrScript, runErr)
	}
	return nil
}

func newState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

type binding struct {
	sess *session.Session
	out  io.Writer
}

func (b *binding) install(L *lua.LState) {
	funcs := map[string]lua.LGFunction{
		"text":      b.text,
		"length":    b.length,
		"select":    b.selectRange,
		"selection": b.selection,
		"toggle":    b.toggle,
		"state":     b.state,
		"replace":   b.replace,
		"undo":      b.undo,
		"redo":      b.redo,
		"runs":      b.runs,
		"print":     b.print,
	}
	for name, fn := range funcs {
		L.SetGlobal(name, L.NewFunction(fn))
	}
}

func (b *binding) text(L *lua.LState) int {
	L.Push(lua.LString(b.sess.Document().String()))
	return 1
}

func (b *binding) length(L *lua.LState) int {
	L.Push(lua.LNumber(b.sess.Document().Len()))
	return 1
}

func (b *binding) selectRange(L *lua.LState) int {
	r := richtext.NewRange(L.CheckInt(1), L.CheckInt(2))
	if err := b.sess.Select(r); err != nil {
		L.RaiseError("select: %v", err)
	}
	return 0
}

func (b *binding) selection(L *lua.LState) int {
	sel := b.sess.Selection()
	L.Push(lua.LNumber(sel.Start))
	L.Push(lua.LNumber(sel.End))
	return 2
}

func (b *binding) axis(L *lua.LState) toggle.Axis {
	axis, err := toggle.ParseAxis(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
	}
	return axis
}

func (b *binding) toggle(L *lua.LState) int {
	if _, err := b.sess.Toggle(b.axis(L)); err != nil {
		L.RaiseError("toggle: %v", err)
	}
	return 0
}

func (b *binding) state(L *lua.LState) int {
	st, err := b.sess.State(b.axis(L))
	if err != nil {
		L.RaiseError("state: %v", err)
	}
	L.Push(lua.LString(st.String()))
	return 1
}

func (b *binding) replace(L *lua.LState) int {
	if _, err := b.sess.Replace(L.CheckString(1)); err != nil {
		L.RaiseError("replace: %v", err)
	}
	return 0
}

func (b *binding) undo(L *lua.LState) int {
	_, err := b.sess.Undo()
	return b.historyResult(L, err, history.ErrNothingToUndo)
}

func (b *binding) redo(L *lua.LState) int {
	_, err := b.sess.Redo()
	return b.historyResult(L, err, history.ErrNothingToRedo)
}

func (b *binding) historyResult(L *lua.LState, err, empty error) int {
	switch {
	case err == nil:
		L.Push(lua.LTrue)
	case errors.Is(err, empty):
		L.Push(lua.LFalse)
	default:
		L.RaiseError("%v", err)
	}
	return 1
}

func (b *binding) runs(L *lua.LState) int {
	doc := b.sess.Document()
	tbl := L.NewTable()
	for _, run := range doc.Runs() {
		s, _ := doc.TextIn(run.Range)
		entry := L.NewTable()
		entry.RawSetString("start", lua.LNumber(run.Range.Start))
		entry.RawSetString("stop", lua.LNumber(run.Range.End))
		entry.RawSetString("text", lua.LString(s))
		entry.RawSetString("attrs", lua.LString(run.Attrs.String()))
		tbl.Append(entry)
	}
	L.Push(tbl)
	return 1
}

func (b *binding) print(L *lua.LState) int {
	parts := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	fmt.Fprintln(b.out, strings.Join(parts, "\t"))
	return 0
}
