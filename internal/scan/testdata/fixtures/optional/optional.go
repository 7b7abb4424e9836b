package optional

type Option[T any] struct {
	value T
	ok    bool
}

func Some[T any](v T) Option[T] { return Option[T]{value: v, ok: true} }

func None[T any]() Option[T] { return Option[T]{} }

func (o Option[T]) MustGet(op string) T {
	if !o.ok {
		panic(op)
	}
	return o.value
}
