package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocKey(t *testing.T) {
	year := 2021

	t.Run("prefers provider paper id", func(t *testing.T) {
		p := &Paper{
			PaperId:     "649def34f8be52c8b66281af98ae884c09aef38b",
			ExternalIds: map[string]string{"DOI": "10.1000/xyz"},
			Title:       "Some title",
			Year:        &year,
		}
		assert.Equal(t, "s2:649def34f8be52c8b66281af98ae884c09aef38b", p.DocKey())
	})

	t.Run("falls back to lowercased DOI", func(t *testing.T) {
		p := &Paper{
			ExternalIds: map[string]string{"DOI": "10.1000/XYZ"},
			Title:       "Some title",
		}
		assert.Equal(t, "doi:10.1000/xyz", p.DocKey())
	})

	t.Run("falls back to title and year hash", func(t *testing.T) {
		p := &Paper{Title: "Some Title", Year: &year}
		key := p.DocKey()
		assert.Contains(t, key, "ty:")

		// Same content yields the same key regardless of case and spacing.
		q := &Paper{Title: "  some title ", Year: &year}
		assert.Equal(t, key, q.DocKey())
	})

	t.Run("different content yields different keys", func(t *testing.T) {
		p := &Paper{Title: "Alpha"}
		q := &Paper{Title: "Beta"}
		assert.NotEqual(t, p.DocKey(), q.DocKey())
	})
}

func TestEncodingText(t *testing.T) {
	p := &Paper{Title: "Title", Abstract: "Abstract body."}
	assert.Equal(t, "Title\n\nAbstract body.", p.EncodingText())

	q := &Paper{Title: "Title only"}
	assert.Equal(t, "Title only", q.EncodingText())
}

func TestHashContent(t *testing.T) {
	a := HashContent("hello")
	b := HashContent("hello")
	c := HashContent("world")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16) // 8 bytes hex-encoded
}
