package catalogservice

// CategoryTreeNode узел дерева категорий из CatalogService
// Листовые узлы приходят без children
type CategoryTreeNode struct {
	Name     string             `json:"name"`
	Children []CategoryTreeNode `json:"children,omitempty"`
}

// CategoryDuration дефолтная длительность акции для категории
type CategoryDuration struct {
	CategoryKey  string `json:"category_key"`
	DurationDays int    `json:"duration_days"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
