package catalogservice

import "errors"

var (
	// ErrCategoryNotFound возвращается, когда категория не найдена в каталоге
	ErrCategoryNotFound = errors.New("category not found in catalog")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что CatalogService недоступен и следует использовать
	// глобальную дефолтную длительность
	ErrServiceDegraded = errors.New("catalogservice unavailable: graceful degradation applied")
)
