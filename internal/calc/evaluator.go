package calc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/annel0/vector1/internal/logging"
	"github.com/annel0/vector1/internal/vec"
	"github.com/dgravesa/go-parallel/parallel"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/annel0/vector1/internal/calc"

// Request - вызов операции по имени
type Request struct {
	Op   string   `json:"op"`
	Args []Number `json:"args"`
}

// Result - результат вычисления
type Result struct {
	Op     string   `json:"op"`
	Kind   Kind     `json:"kind"`
	Values []Number `json:"values"`
	Text   string   `json:"text"`
}

// BatchItem - результат одного запроса из batch; ошибки не прерывают batch
type BatchItem struct {
	Index  int     `json:"index"`
	Result *Result `json:"result,omitempty"`
	Error  string  `json:"error,omitempty"`

	Err error `json:"-"`
}

// Evaluator выполняет операции из регистра
type Evaluator struct {
	tracer  trace.Tracer
	metrics *Metrics
	logger  *logging.Logger
}

// NewEvaluator создает вычислитель. metrics может быть nil; nil logger заменяется глобальным.
func NewEvaluator(metrics *Metrics, logger *logging.Logger) *Evaluator {
	if logger == nil {
		logger = logging.Default()
	}
	return &Evaluator{
		tracer:  otel.Tracer(tracerName),
		metrics: metrics,
		logger:  logger,
	}
}

// Evaluate выполняет одну операцию
func (e *Evaluator) Evaluate(ctx context.Context, req Request) (Result, error) {
	_, span := e.tracer.Start(ctx, "vec1.evaluate", trace.WithAttributes(
		attribute.String("vec1.op", req.Op),
		attribute.Int("vec1.args", len(req.Args)),
	))
	defer span.End()

	start := time.Now()
	op, exists := Get(req.Op)
	if !exists {
		err := fmt.Errorf("%w: %q", ErrUnknownOperation, req.Op)
		e.fail(span, "unknown", err, start)
		return Result{}, err
	}

	if len(req.Args) != op.Arity {
		err := fmt.Errorf("%w: %s expects %d, got %d", ErrArity, op.Name, op.Arity, len(req.Args))
		e.fail(span, op.Name, err, start)
		return Result{}, err
	}

	args := make([]float64, len(req.Args))
	for i, a := range req.Args {
		args[i] = float64(a)
	}

	out, err := op.Apply(args)
	if err != nil {
		err = fmt.Errorf("%s: %w", op.Name, err)
		e.fail(span, op.Name, err, start)
		return Result{}, err
	}

	e.metrics.observe(op.Name, "ok", time.Since(start))
	e.logger.Trace("vec1 %s%v = %s", op.Name, req.Args, out.Text)

	return Result{
		Op:     op.Name,
		Kind:   op.Kind,
		Values: out.Values,
		Text:   out.Text,
	}, nil
}

func (e *Evaluator) fail(span trace.Span, op string, err error, start time.Time) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	e.metrics.observe(op, Outcome(err), time.Since(start))
	e.logger.Debug("vec1 %s: %v", op, err)
}

// EvaluateBatch выполняет запросы параллельно, сохраняя порядок входа
func (e *Evaluator) EvaluateBatch(ctx context.Context, reqs []Request) []BatchItem {
	items := make([]BatchItem, len(reqs))
	if len(reqs) == 0 {
		return items
	}

	ctx, span := e.tracer.Start(ctx, "vec1.batch", trace.WithAttributes(
		attribute.Int("vec1.batch_size", len(reqs)),
	))
	defer span.End()
	e.metrics.observeBatch(len(reqs))

	parallel.For(len(reqs), func(i, _ int) {
		item := BatchItem{Index: i}
		res, err := e.Evaluate(ctx, reqs[i])
		if err != nil {
			item.Err = err
			item.Error = err.Error()
		} else {
			item.Result = &res
		}
		items[i] = item
	})

	return items
}

// Outcome классифицирует ошибку вычисления для метрик и HTTP-ответов
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnknownOperation):
		return "unknown_op"
	case errors.Is(err, ErrArity):
		return "bad_arity"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, vec.ErrDivisionByZero):
		return "division_by_zero"
	default:
		return "error"
	}
}
