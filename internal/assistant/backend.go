package assistant

import "context"

// FailureKind классифицирует отказ языковой модели. Оркестратору
// сырые ошибки бекенда не видны: композитор преобразует каждый вид
// отказа в фиксированный безопасный для пользователя текст.
type FailureKind int

const (
	FailureOther FailureKind = iota
	FailureMissingKey
	FailureQuotaExceeded
	FailureOverloaded
	FailureUnauthenticated
)

type BackendError struct {
	Kind FailureKind
	Err  error
}

func (e *BackendError) Error() string {
	if e.Err == nil {
		return "ошибка бекенда языковой модели"
	}
	return e.Err.Error()
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// Backend - подключаемая языковая модель: по промпту возвращает
// сгенерированный текст либо типизированный отказ (*BackendError).
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
