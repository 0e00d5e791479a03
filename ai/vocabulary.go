package ai

import (
	"bufio"
	"fmt"
	"os"
	"slices"
	"strings"
)

// defaultTags is the tag list used when no vocabulary is configured.
var defaultTags = []string{
	"Искусственный интеллект", "Машинное обучение", "Глубокое обучение", "LLM", "NLP",
	"Компьютерное зрение", "Обработка изображений", "Анализ данных", "Визуализация данных",
	"Веб-разработка", "Мобильная разработка", "Игровая разработка", "Видеоигры",
	"Кибербезопасность", "Блокчейн", "Криптография", "Квантовые вычисления",
	"Медицина", "Биоинформатика", "Здоровье", "Финансы", "Банкинг", "Торговля",
	"Образование", "E-learning", "Социальные сети", "Коммуникации",
	"Интернет вещей", "IoT", "Робототехника", "Автоматизация",
	"Энергетика", "Экология", "Устойчивое развитие", "Климат",
	"Транспорт", "Логистика", "Геолокация", "Карты",
	"Музыка", "Аудио", "Видео", "Мультимедиа",
	"Психология", "Поведение", "UX/UI", "Дизайн",
	"Лингвистика", "Перевод", "Текст", "Документы",
	"Архитектура", "Инфраструктура", "Облачные вычисления", "DevOps",
}

// Vocabulary is an ordered set of allowed tags. Membership is exact:
// no case folding or trimming is applied on lookup.
// The zero value is an empty vocabulary.
type Vocabulary struct {
	tags  []string
	index map[string]struct{}
}

// NewVocabulary builds a vocabulary from tags, keeping first occurrences
// in order. Tags are trimmed and blank entries are dropped.
func NewVocabulary(tags ...string) Vocabulary {
	v := Vocabulary{
		tags:  make([]string, 0, len(tags)),
		index: make(map[string]struct{}, len(tags)),
	}
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := v.index[t]; dup {
			continue
		}
		v.index[t] = struct{}{}
		v.tags = append(v.tags, t)
	}
	return v
}

// DefaultVocabulary returns the built-in thematic tag list.
func DefaultVocabulary() Vocabulary {
	return NewVocabulary(defaultTags...)
}

// LoadVocabularyFile reads one tag per line. Blank lines and lines starting
// with '#' are ignored.
func LoadVocabularyFile(path string) (Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("open vocabulary: %w", err)
	}
	defer f.Close()

	var tags []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tags = append(tags, line)
	}
	if err := scanner.Err(); err != nil {
		return Vocabulary{}, fmt.Errorf("read vocabulary: %w", err)
	}
	return NewVocabulary(tags...), nil
}

// Len returns the number of tags.
func (v Vocabulary) Len() int {
	return len(v.tags)
}

// Contains reports whether tag is an exact member.
func (v Vocabulary) Contains(tag string) bool {
	_, ok := v.index[tag]
	return ok
}

// Strings returns a copy of the tags in order.
func (v Vocabulary) Strings() []string {
	return slices.Clone(v.tags)
}

// Join returns the tags joined by sep.
func (v Vocabulary) Join(sep string) string {
	return strings.Join(v.tags, sep)
}

// Filter keeps the candidates that are members, in candidate order, without
// duplicates, stopping after limit tags. A non-positive limit keeps all.
func (v Vocabulary) Filter(candidates []string, limit int) []string {
	out := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if limit > 0 && len(out) == limit {
			break
		}
		if !v.Contains(c) {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
