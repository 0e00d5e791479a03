package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalTags(t *testing.T) {
	tags := []string{"Машинное обучение", "NLP", "UX/UI"}

	data := MarshalTags(tags)
	got, err := UnmarshalTags(data)
	require.NoError(t, err)
	assert.Equal(t, tags, got)
}

func TestMarshalTags_Empty(t *testing.T) {
	got, err := UnmarshalTags(MarshalTags(nil))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUnmarshalTags_Truncated(t *testing.T) {
	data := MarshalTags([]string{"Медицина", "Здоровье"})

	_, err := UnmarshalTags(data[:len(data)-3])
	assert.Error(t, err)

	_, err = UnmarshalTags(nil)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestUnmarshalTags_TrailingBytes(t *testing.T) {
	data := append(MarshalTags([]string{"IoT"}), 0x00)

	_, err := UnmarshalTags(data)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
