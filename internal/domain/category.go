package domain

import (
	"fmt"
	"strings"
)

// CategoryKeyDelimiter разделитель сегментов в каноническом ключе категории
const CategoryKeyDelimiter = ":"

// legacyDelimiter разделитель, встречающийся в старых free-text категориях
const legacyDelimiter = " > "

// CategoryPath is an ordered category path of 1 to MaxCategoryDepth segments.
// Пути равны тогда и только тогда, когда равны их канонические ключи:
// сравнение по точной глубине, префикс родителя не равен потомку.
type CategoryPath []string

// NewCategoryPath строит путь категории из упорядоченных сегментов
// Сегменты обрезаются по пробелам, пустые хвостовые сегменты отбрасываются
// Возвращает ошибку, если путь пустой, глубже MaxCategoryDepth или содержит
// пустой сегмент в середине
func NewCategoryPath(segments ...string) (CategoryPath, error) {
	trimmed := make([]string, len(segments))
	for i, s := range segments {
		trimmed[i] = strings.TrimSpace(s)
	}

	// Отбрасываем пустые хвостовые сегменты (sub-уровни могут отсутствовать)
	for len(trimmed) > 0 && trimmed[len(trimmed)-1] == "" {
		trimmed = trimmed[:len(trimmed)-1]
	}

	if len(trimmed) == 0 {
		return nil, fmt.Errorf("category path must contain at least one segment")
	}
	if len(trimmed) > MaxCategoryDepth {
		return nil, fmt.Errorf("category path exceeds max depth %d", MaxCategoryDepth)
	}
	for i, s := range trimmed {
		if s == "" {
			return nil, fmt.Errorf("category path has empty segment at position %d", i)
		}
	}

	return CategoryPath(trimmed), nil
}

// Key returns the canonical exclusivity key for the path.
func (p CategoryPath) Key() string {
	return strings.Join(p, CategoryKeyDelimiter)
}

// Equal reports whether two paths resolve to the same canonical key.
func (p CategoryPath) Equal(other CategoryPath) bool {
	return p.Key() == other.Key()
}

// NormalizeLegacyCategoryKey приводит старый free-text ключ категории к
// каноническому виду: разделители " > " схлопываются в ":", пробелы вокруг
// разделителей убираются
//
// Это fallback для совместимости со старыми записями, не основной путь -
// новые бронирования всегда несут структурированный CategoryPath
func NormalizeLegacyCategoryKey(raw string) string {
	s := strings.ReplaceAll(raw, legacyDelimiter, CategoryKeyDelimiter)

	parts := strings.Split(s, CategoryKeyDelimiter)
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}

	return strings.Join(cleaned, CategoryKeyDelimiter)
}

// CategoryNode is a node of the category taxonomy tree.
// Лист - узел без потомков; ветка - узел с непустой map потомков
type CategoryNode struct {
	Children map[string]*CategoryNode
}

// IsLeaf reports whether the node has no children.
func (n *CategoryNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// NewLeaf создает листовой узел таксономии
func NewLeaf() *CategoryNode {
	return &CategoryNode{}
}

// NewBranch создает узел-ветку; потомки обязаны быть непустыми
func NewBranch(children map[string]*CategoryNode) (*CategoryNode, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("branch node must have at least one child")
	}
	for name, child := range children {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("branch node has child with empty name")
		}
		if child == nil {
			return nil, fmt.Errorf("branch node has nil child %q", name)
		}
	}
	return &CategoryNode{Children: children}, nil
}

// ContainsPath reports whether the path exists in the tree rooted at n.
// Путь может заканчиваться и на ветке: запрос "Electronics" валиден,
// даже если под ним есть подкатегории
func (n *CategoryNode) ContainsPath(path CategoryPath) bool {
	node := n
	for _, segment := range path {
		child, ok := node.Children[segment]
		if !ok {
			return false
		}
		node = child
	}
	return true
}
