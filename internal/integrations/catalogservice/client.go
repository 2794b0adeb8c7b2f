package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/SMC-DealSchedulerService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с CatalogService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CatalogService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetCategoryTree получает полное дерево категорий
// Ответ конвертируется в строго типизированное дерево domain.CategoryNode
// с валидацией при построении
func (c *Client) GetCategoryTree(ctx context.Context) (*domain.CategoryNode, error) {
	reqURL := fmt.Sprintf("%s/internal/categories/tree", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var root CategoryTreeNode
	if err := json.NewDecoder(resp.Body).Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	tree, err := toDomainTree(root)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed category tree: %v", ErrInvalidResponse, err)
	}

	return tree, nil
}

// GetDefaultDuration получает дефолтную длительность акции для категории
func (c *Client) GetDefaultDuration(ctx context.Context, categoryKey string) (int, error) {
	reqURL := fmt.Sprintf("%s/internal/categories/default-duration?key=%s", c.baseURL, url.QueryEscape(categoryKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return 0, fmt.Errorf("%w: invalid category key format", ErrInvalidResponse)
	case http.StatusNotFound:
		return 0, ErrCategoryNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var duration CategoryDuration
	if err := json.NewDecoder(resp.Body).Decode(&duration); err != nil {
		return 0, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if duration.DurationDays <= 0 {
		return 0, fmt.Errorf("%w: non-positive duration %d for category %s", ErrInvalidResponse, duration.DurationDays, categoryKey)
	}

	return duration.DurationDays, nil
}

// GetDefaultDurationWithGracefulDegradation получает длительность для категории
// с graceful degradation: при недоступности CatalogService возвращает
// ErrServiceDegraded, что позволяет использовать глобальный дефолт
func (c *Client) GetDefaultDurationWithGracefulDegradation(ctx context.Context, categoryKey string) (int, error) {
	c.log.Info("Fetching default duration for category=%s", categoryKey)

	duration, err := c.GetDefaultDuration(ctx, categoryKey)
	if err != nil {
		// Отсутствие категории в каталоге - ожидаемый бизнес-случай,
		// пробрасываем дальше
		if err == ErrCategoryNotFound {
			c.log.Info("No default duration configured for category=%s", categoryKey)
			return 0, err
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout, ошибки
		// парсинга и т.д.) применяем graceful degradation
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("CatalogService unavailable, applying graceful degradation for category=%s: %v", categoryKey, err)
		return 0, fmt.Errorf("%w: category=%s, error=%v", ErrServiceDegraded, categoryKey, err)
	}

	c.log.Info("Successfully fetched duration for category=%s, duration_days=%d", categoryKey, duration)
	return duration, nil
}

// toDomainTree рекурсивно конвертирует ответ сервиса в domain-дерево
func toDomainTree(node CategoryTreeNode) (*domain.CategoryNode, error) {
	if len(node.Children) == 0 {
		return domain.NewLeaf(), nil
	}

	children := make(map[string]*domain.CategoryNode, len(node.Children))
	for _, child := range node.Children {
		childNode, err := toDomainTree(child)
		if err != nil {
			return nil, err
		}
		if _, ok := children[child.Name]; ok {
			return nil, fmt.Errorf("duplicate category %q", child.Name)
		}
		children[child.Name] = childNode
	}

	return domain.NewBranch(children)
}
