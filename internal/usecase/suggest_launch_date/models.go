package suggest_launch_date

import (
	"github.com/m04kA/SMC-DealSchedulerService/pkg/civilday"
)

// Request модель запроса на подбор даты запуска акции
type Request struct {
	CategorySegments     []string     // Упорядоченные сегменты пути категории (1-5 уровней)
	EntityName           *string      // Имя мерчанта (опционально)
	DurationDays         *int         // Явная длительность (опционально, иначе разрешается по цепочке дефолтов)
	SearchFrom           civilday.Day // Календарный день начала поиска (нулевой день = сегодня)
	ExcludeReservationID *int64       // Бронирование, исключаемое из проверок (при переносе дат)
}

// Response модель ответа с подобранной датой
type Response struct {
	Date         civilday.Day // Ближайшая валидная дата запуска
	LeadTimeDays int          // Дней от сегодня до даты запуска
	DurationDays int          // Эффективная длительность, с которой шёл поиск
	Attempts     int          // Сколько кандидатов просмотрено
	CategoryKey  string       // Канонический ключ категории
}
