package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "\ufeffНаименование проекта на русском;Наименование проекта на английском;ФИО руководителя;Аннотация проекта;2 курс;3 Курс;Ссылка на видео-ролик проекта\n" +
	"Чат-бот для приёмной комиссии;Admissions chatbot;Иванов Иван;\"Бот отвечает на вопросы;\nработает круглосуточно\";да;нет;https://example.com/v\n" +
	";;Петров Пётр;Без названия;да;да;\n" +
	"Анализ данных о погоде;Weather analytics;;Прогнозы;Да;ДА\n"

func TestParse(t *testing.T) {
	records, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, "project_0", first.ID)
	assert.Equal(t, "Чат-бот для приёмной комиссии", first.TitleRU)
	assert.Equal(t, "Admissions chatbot", first.TitleEN)
	assert.Equal(t, "Иванов Иван", first.Supervisor)
	assert.Equal(t, "Бот отвечает на вопросы;\nработает круглосуточно", first.Annotation)
	assert.Equal(t, []string{"2 курс"}, first.Courses)
	assert.Equal(t, "https://example.com/v", first.VideoLink)
	assert.Equal(t, "", first.CoSupervisor, "missing columns are blank")

	second := records[1]
	assert.Equal(t, "project_1", second.ID)
	assert.Equal(t, "", second.TitleRU, "untitled rows keep their position")
	assert.Equal(t, []string{"2 курс", "3 Курс"}, second.Courses)

	third := records[2]
	assert.Equal(t, "project_2", third.ID)
	assert.Equal(t, "", third.Supervisor)
	assert.Equal(t, []string{"2 курс", "3 Курс"}, third.Courses, "course marks are case-insensitive")
	assert.Equal(t, "", third.VideoLink, "short rows are tolerated")
}

func TestParse_CustomDelimiter(t *testing.T) {
	input := "Наименование проекта на русском,ФИО руководителя\nПроект,Руководитель\n"

	records, err := Parse(strings.NewReader(input), WithDelimiter(','))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Проект", records[0].TitleRU)
	assert.Equal(t, "Руководитель", records[0].Supervisor)
	assert.Empty(t, records[0].Courses)
	assert.NotNil(t, records[0].Courses)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMissingHeader)

	_, err = Parse(strings.NewReader("Название;Руководитель\nA;B\n"))
	assert.ErrorIs(t, err, ErrMissingTitleColumn)
}

func TestParse_HeaderOnly(t *testing.T) {
	records, err := Parse(strings.NewReader(ColumnTitleRU + "\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	records, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestReadCSV_Missing(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
