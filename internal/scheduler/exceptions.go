package scheduler

import (
	"github.com/m04kA/SMC-DealSchedulerService/internal/domain"
)

// ResolveException возвращает значение персонального переопределения для
// пары (entityName, kind) или defaultValue, если переопределения нет
//
// Совпадение по имени мерчанта регистронезависимое и только полное:
// частичные совпадения и wildcard-записи не поддерживаются
func ResolveException(
	exceptions []domain.EntityException,
	entityName string,
	kind domain.ExceptionKind,
	defaultValue int,
) int {
	if entityName == "" {
		return defaultValue
	}

	for i := range exceptions {
		if exceptions[i].Matches(entityName, kind) {
			return exceptions[i].Value
		}
	}

	return defaultValue
}
