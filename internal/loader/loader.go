// loader — единый механизм «одна независимая загрузка на представление».
//
// Каждое представление (секция главной или страница) запускает ровно одну
// загрузку и видит её в одном из состояний Loading -> Ready | Error.
// Повторных загрузок и ретраев нет. Незавершённая загрузка явно не отменяется:
// поздний результат просто никто не читает.
package loader

import (
	"context"
	"fmt"
	"log/slog"

	logctx "github.com/covspace/site/internal/pkg/log"
)

// State — состояние загрузки представления.
type State int

const (
	Loading State = iota
	Ready
	Error
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Mode определяет реакцию на ошибку загрузки.
type Mode int

const (
	// Section — ошибка логируется, представление получает Ready с пустыми данными.
	Section Mode = iota
	// Page — ошибка логируется и сохраняется, представление получает Error.
	Page
)

// Result — снимок загрузки.
type Result[T any] struct {
	State State
	Data  T
	Err   error
}

// Observer получает итоговое состояние каждой завершённой загрузки.
type Observer func(name string, state State)

// Spec описывает одну загрузку.
type Spec[T any] struct {
	// Name — имя представления для логов и метрик ("blog_teaser", "blogs", ...).
	Name string
	Mode Mode
	// Fetch выполняет запрос. Обязан уважать ctx.
	Fetch func(ctx context.Context) (T, error)
	// Transform применяется к успешному результату (например, усечение до N элементов).
	Transform func(T) T
	// Observe — необязательный наблюдатель итогового состояния.
	Observe Observer
}

// Pending — запущенная загрузка.
type Pending[T any] struct {
	done chan struct{}
	res  Result[T]
}

// Start запускает загрузку в отдельной горутине и сразу возвращает управление.
func Start[T any](ctx context.Context, s Spec[T]) *Pending[T] {
	p := &Pending[T]{done: make(chan struct{})}

	go func() {
		defer close(p.done)
		p.res = run(ctx, s)

		if s.Observe != nil {
			s.Observe(s.Name, p.res.State)
		}
	}()

	return p
}

// Done закрывается после завершения загрузки.
func (p *Pending[T]) Done() <-chan struct{} { return p.done }

// Wait ждёт завершения загрузки или окончания ctx.
// Если ctx закончился раньше — возвращает снимок в состоянии Loading.
func (p *Pending[T]) Wait(ctx context.Context) Result[T] {
	select {
	case <-p.done:
		return p.res
	case <-ctx.Done():
		select {
		case <-p.done:
			return p.res
		default:
			return Result[T]{State: Loading}
		}
	}
}

// Load запускает загрузку и дожидается её завершения.
func Load[T any](ctx context.Context, s Spec[T]) Result[T] {
	p := Start(ctx, s)
	<-p.done

	return p.res
}

func run[T any](ctx context.Context, s Spec[T]) (res Result[T]) {
	const op = "loader.run"

	lg := logctx.From(ctx)

	defer func() {
		if rec := recover(); rec != nil {
			res = settleErr[T](lg, op, s, fmt.Errorf("%s: panic: %v", op, rec))
		}
	}()

	data, err := s.Fetch(ctx)
	if err != nil {
		return settleErr[T](lg, op, s, err)
	}

	if s.Transform != nil {
		data = s.Transform(data)
	}

	return Result[T]{State: Ready, Data: data}
}

func settleErr[T any](lg *slog.Logger, op string, s Spec[T], err error) Result[T] {
	lg.Warn("view_load_failed",
		slog.String("op", op),
		slog.String("view", s.Name),
		slog.String("err", err.Error()),
	)

	if s.Mode == Page {
		return Result[T]{State: Error, Err: err}
	}

	return Result[T]{State: Ready}
}

// Truncate возвращает Transform, оставляющий первые n элементов. n <= 0 — без усечения.
func Truncate[E any](n int) func([]E) []E {
	return func(items []E) []E {
		if n <= 0 || len(items) <= n {
			return items
		}

		return items[:n]
	}
}
