// Package pipeline implements the concurrent pipe execution engine spec
// §4.4 calls "the hard core": each stage of a pipe chain runs on its own
// goroutine, connected to its neighbors by bounded, FIFO channels of Row
// values, with the initial producer started before any stage so
// back-pressure is available immediately.
//
// This package has no dependency on internal/evaluator — the evaluator
// flattens a pipe chain's AST into a []Stage and hands this package a
// CallFunc closure to invoke stage functions, avoiding an import cycle
// (the evaluator needs the engine to run pipes; the engine needs the
// evaluator to call user functions).
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/AAUP4-Projekt/wrench/internal/types"
	"github.com/AAUP4-Projekt/wrench/internal/values"
	"golang.org/x/sync/errgroup"
)

// channelCapacity bounds each inter-stage channel, giving every pipe
// chain back-pressure without needing per-chain tuning (spec §5:
// "implementations may bound capacity to provide back-pressure").
const channelCapacity = 16

// CallFunc invokes a user-declared stage function with already-evaluated
// arguments (the piped row/table first, then the stage's own extra
// args), exactly as internal/evaluator's function-call semantics do.
type CallFunc func(closure *values.Closure, args []values.Value) (values.Value, error)

// StageKind classifies a pipe stage by its function's declared return
// type, per spec §4.4's classification table.
type StageKind int

const (
	StageMap StageKind = iota
	StageFilter
	StageReduce
	StagePrint
)

// Stage is one flattened, already-resolved pipe stage: its classification,
// the closure to call (nil for Print), and its own extra arguments
// (evaluated in the caller's environment before the chain starts, per
// spec §9).
type Stage struct {
	Kind    StageKind
	Name    string
	Closure *values.Closure
	Args    []values.Value
}

// OutputSchema returns the Table schema of the rows this stage emits,
// used to build the terminal collection table when the chain's last
// stage isn't Print.
func (s Stage) OutputSchema() types.Type {
	var rowSchema types.Type
	switch s.Kind {
	case StageReduce:
		return s.Closure.Decl.ReturnType.Resolve()
	case StageFilter:
		rowSchema = s.Closure.Decl.Params[0].Type.Resolve()
	default: // Map
		rowSchema = s.Closure.Decl.ReturnType.Resolve()
	}
	return types.TableOf(rowSchema.Columns...)
}

// AsyncImport describes a pipe chain's `async_import(path, schema)`
// initial expression: the CSV source read row-by-row as the producer,
// overlapping I/O with the first stage (spec §4.4/§9).
type AsyncImport struct {
	Path   string
	Schema types.Type
}

// CSVStreamer reads the CSV file at Path against Schema, calling emit
// once per parsed data row in file order. internal/csvsource implements
// this; it is injected here (rather than imported directly) so this
// package stays free of a concrete CSV dependency.
type CSVStreamer func(path string, schema types.Type, emit func(*values.Row) error) error

// Source is a pipe chain's initial expression: either an in-memory
// Table (the common case) or a CSV file to stream asynchronously.
// Exactly one field is set.
type Source struct {
	Table *values.TableRef
	Async *AsyncImport
}

// Run executes a flattened pipe chain: it spawns the initial producer
// and one worker per stage, wires them with bounded channels, and joins
// everything with errgroup so any stage's error cancels its siblings
// (spec §4.4 "any error inside a stage is fatal to the whole program").
// It returns the collected output Table, or Null if the chain's last
// stage is Print.
func Run(ctx context.Context, source Source, stages []Stage, call CallFunc, csvStream CSVStreamer, output io.Writer) (values.Value, error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("pipe chain has no stages")
	}

	g, ctx := errgroup.WithContext(ctx)

	chans := make([]chan *values.Row, len(stages)+1)
	for i := range chans {
		chans[i] = make(chan *values.Row, channelCapacity)
	}

	g.Go(func() error { return runProducer(ctx, source, chans[0], csvStream) })

	for i, stage := range stages {
		i, stage := i, stage
		in, out := chans[i], chans[i+1]
		g.Go(func() error { return runStage(ctx, stage, in, out, call, output) })
	}

	terminal := stages[len(stages)-1]
	var result *values.TableRef
	if terminal.Kind != StagePrint {
		result = values.NewTable(terminal.OutputSchema())
		finalCh := chans[len(stages)]
		g.Go(func() error {
			for row := range finalCh {
				result.AddRow(row)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if result == nil {
		return values.Null{}, nil
	}
	return result, nil
}

func runProducer(ctx context.Context, source Source, out chan<- *values.Row, csvStream CSVStreamer) error {
	defer close(out)
	if source.Table != nil {
		snapshot := source.Table.Snapshot()
		for _, row := range snapshot.Rows() {
			select {
			case out <- row:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	}
	return csvStream(source.Async.Path, source.Async.Schema, func(row *values.Row) error {
		select {
		case out <- row:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

func runStage(ctx context.Context, stage Stage, in <-chan *values.Row, out chan<- *values.Row, call CallFunc, output io.Writer) error {
	defer close(out)
	switch stage.Kind {
	case StageMap:
		return runMap(ctx, stage, in, out, call)
	case StageFilter:
		return runFilter(ctx, stage, in, out, call)
	case StageReduce:
		return runReduce(ctx, stage, in, out, call)
	case StagePrint:
		return runPrint(ctx, in, output)
	default:
		return fmt.Errorf("unknown pipe stage kind %d", stage.Kind)
	}
}

func runMap(ctx context.Context, stage Stage, in <-chan *values.Row, out chan<- *values.Row, call CallFunc) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case row, ok := <-in:
			if !ok {
				return nil
			}
			result, err := call(stage.Closure, withRow(row, stage.Args))
			if err != nil {
				return err
			}
			outRow, ok := result.(*values.Row)
			if !ok {
				return &values.RuntimeTypeError{Detail: fmt.Sprintf("map stage %q must return a Row, got %s", stage.Name, result.Type())}
			}
			select {
			case out <- outRow:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

func runFilter(ctx context.Context, stage Stage, in <-chan *values.Row, out chan<- *values.Row, call CallFunc) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case row, ok := <-in:
			if !ok {
				return nil
			}
			result, err := call(stage.Closure, withRow(row, stage.Args))
			if err != nil {
				return err
			}
			keep, ok := result.(values.Bool)
			if !ok {
				return &values.RuntimeTypeError{Detail: fmt.Sprintf("filter stage %q must return a Bool, got %s", stage.Name, result.Type())}
			}
			if !bool(keep) {
				continue
			}
			select {
			case out <- row:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

func runReduce(ctx context.Context, stage Stage, in <-chan *values.Row, out chan<- *values.Row, call CallFunc) error {
	inputSchema := stage.Closure.Decl.Params[0].Type.Resolve()
	buffer := values.NewTable(inputSchema)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case row, ok := <-in:
			if !ok {
				result, err := call(stage.Closure, withRow(buffer, stage.Args))
				if err != nil {
					return err
				}
				resultTable, ok := result.(*values.TableRef)
				if !ok {
					return &values.RuntimeTypeError{Detail: fmt.Sprintf("reduce stage %q must return a Table, got %s", stage.Name, result.Type())}
				}
				for _, r := range resultTable.Rows() {
					select {
					case out <- r:
					case <-ctx.Done():
						return ctx.Err()
					}
				}
				return nil
			}
			buffer.AddRow(row)
		}
	}
}

func runPrint(ctx context.Context, in <-chan *values.Row, output io.Writer) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case row, ok := <-in:
			if !ok {
				return nil
			}
			fmt.Fprintln(output, row.String())
		}
	}
}

func withRow(first values.Value, rest []values.Value) []values.Value {
	args := make([]values.Value, 0, len(rest)+1)
	args = append(args, first)
	args = append(args, rest...)
	return args
}
