package dbmetrics

import "context"

type ctxKey int

const executorKey ctxKey = iota

// WithExecutor кладет исполнителя транзакции в контекст
// Репозитории достают его через GetExecutor и выполняют запросы внутри транзакции
func WithExecutor(ctx context.Context, exec DBExecutor) context.Context {
	return context.WithValue(ctx, executorKey, exec)
}

// GetExecutor возвращает исполнителя из контекста, если там лежит активная
// транзакция, иначе переданный fallback
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if exec, ok := ctx.Value(executorKey).(DBExecutor); ok {
		return exec
	}
	return fallback
}

// IsInTransaction сообщает, выполняется ли запрос внутри транзакции
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(executorKey).(DBExecutor)
	return ok
}
