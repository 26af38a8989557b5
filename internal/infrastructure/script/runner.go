// Package script runs JavaScript scenario files against the host emulator,
// standing in for the configuration page and the phone runtime.
package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grafana/sobek"

	"github.com/briwestervelt/formal/internal/domain/entity"
	"github.com/briwestervelt/formal/internal/logging"
)

// Emitter queues host events.
type Emitter interface {
	Emit(ctx context.Context, evt entity.Event) error
}

// Runner executes scenario scripts. Each run gets a fresh VM with these
// globals:
//
//	emit(name, event)        queue a host event; event.response is optional
//	closeConfiguration(obj)  emit webviewclosed with obj as the page result
//	console.log(...args)     write an info log line
type Runner struct {
	emitter Emitter
}

// NewRunner creates a runner that emits into emitter.
func NewRunner(emitter Emitter) *Runner {
	return &Runner{emitter: emitter}
}

// RunFile reads and runs the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return r.Run(ctx, filepath.Base(path), string(src))
}

// Run executes src. Cancelling ctx interrupts the script.
func (r *Runner) Run(ctx context.Context, name, src string) error {
	ctx = logging.WithComponent(ctx, "script")
	vm := sobek.New()

	if err := r.install(ctx, vm); err != nil {
		return err
	}

	stop := context.AfterFunc(ctx, func() { vm.Interrupt(ctx.Err()) })
	defer stop()

	_, err := vm.RunScript(name, src)
	if err == nil {
		return nil
	}

	var interrupted *sobek.InterruptedError
	if errors.As(err, &interrupted) {
		if cause, ok := interrupted.Value().(error); ok {
			return cause
		}
	}
	var exc *sobek.Exception
	if errors.As(err, &exc) {
		if cause := goErrorCause(exc); cause != nil {
			return fmt.Errorf("%s: %w", name, cause)
		}
		return fmt.Errorf("%s: %s", name, exc.Error())
	}
	return fmt.Errorf("%s: %w", name, err)
}

// goErrorCause returns the Go error carried by an exception raised with
// Runtime.NewGoError.
func goErrorCause(exc *sobek.Exception) error {
	obj, ok := exc.Value().(*sobek.Object)
	if !ok {
		return nil
	}
	v := obj.Get("value")
	if v == nil {
		return nil
	}
	cause, _ := v.Export().(error)
	return cause
}

func (r *Runner) install(ctx context.Context, vm *sobek.Runtime) error {
	log := logging.FromContext(ctx)

	emit := func(name string, response string) {
		evt := entity.Event{Name: entity.EventName(name), Response: response}
		if err := r.emitter.Emit(ctx, evt); err != nil {
			panic(vm.NewGoError(err))
		}
		log.Debug().Str("event", name).Msg("event emitted")
	}

	if err := vm.Set("emit", func(call sobek.FunctionCall) sobek.Value {
		arg := call.Argument(0)
		if sobek.IsUndefined(arg) || arg.String() == "" {
			panic(vm.NewTypeError("emit: event name required"))
		}
		emit(arg.String(), responseField(vm, call.Argument(1)))
		return sobek.Undefined()
	}); err != nil {
		return err
	}

	stringify, ok := sobek.AssertFunction(vm.Get("JSON").ToObject(vm).Get("stringify"))
	if !ok {
		return errors.New("script: JSON.stringify unavailable")
	}
	if err := vm.Set("closeConfiguration", func(call sobek.FunctionCall) sobek.Value {
		text, err := stringify(sobek.Undefined(), call.Argument(0))
		if err != nil {
			panic(err)
		}
		emit(string(entity.EventWebviewClosed), entity.EncodeResponse(text.String()))
		return sobek.Undefined()
	}); err != nil {
		return err
	}

	console := vm.NewObject()
	if err := console.Set("log", func(call sobek.FunctionCall) sobek.Value {
		parts := make([]string, 0, len(call.Arguments))
		for _, arg := range call.Arguments {
			parts = append(parts, arg.String())
		}
		log.Info().Msg(strings.Join(parts, " "))
		return sobek.Undefined()
	}); err != nil {
		return err
	}
	return vm.Set("console", console)
}

// responseField reads event.response, accepting a bare string as shorthand.
func responseField(vm *sobek.Runtime, v sobek.Value) string {
	if v == nil || sobek.IsUndefined(v) || sobek.IsNull(v) {
		return ""
	}
	if s, ok := v.Export().(string); ok {
		return s
	}
	resp := v.ToObject(vm).Get("response")
	if resp == nil || sobek.IsUndefined(resp) || sobek.IsNull(resp) {
		return ""
	}
	return resp.String()
}
