package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTags(t *testing.T) {
	vocab := NewVocabulary("Машинное обучение", "NLP", "Образование", "Медицина", "Финансы", "Дизайн")

	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{
			name:  "comma separated",
			text:  "Машинное обучение, NLP, Образование",
			limit: 5,
			want:  []string{"Машинное обучение", "NLP", "Образование"},
		},
		{
			name:  "newline separated with padding",
			text:  "  NLP\nМедицина \n",
			limit: 5,
			want:  []string{"NLP", "Медицина"},
		},
		{
			name:  "unknown tokens dropped",
			text:  "NLP, Квантовая магия, Финансы",
			limit: 5,
			want:  []string{"NLP", "Финансы"},
		},
		{
			name:  "no fuzzy matching",
			text:  "nlp, машинное обучение, Дизайн.",
			limit: 5,
			want:  []string{},
		},
		{
			name:  "limit applied after filtering",
			text:  "Мусор, NLP, Медицина, Финансы, Дизайн, Образование, Машинное обучение",
			limit: 5,
			want:  []string{"NLP", "Медицина", "Финансы", "Дизайн", "Образование"},
		},
		{
			name:  "empty completion",
			text:  "",
			limit: 5,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTags(tt.text, vocab, tt.limit))
		})
	}
}
