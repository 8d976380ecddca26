package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAncestorPageResolver_ResolvePageNumber(t *testing.T) {
	r := NewAncestorPageResolver()
	root := newNode(nil, px(0, 0, 100, 100))

	tests := []struct {
		name     string
		marker   string
		wantPage int
	}{
		{"plain", "7", 7},
		{"padded", " 12 ", 12},
		{"zero", "0", 1},
		{"negative", "-4", 1},
		{"garbage", "seven", 1},
		{"empty", "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := newNode(root, px(0, 0, 100, 100), AttrPageNumber+"="+tt.marker)
			leaf := newNode(page, px(0, 0, 10, 10))

			got, node := r.ResolvePageNumber(leaf)
			assert.Equal(t, tt.wantPage, got)
			assert.Same(t, page, node)
		})
	}
}

func TestAncestorPageResolver_NearestMarkerWins(t *testing.T) {
	r := NewAncestorPageResolver()
	outer := newNode(nil, px(0, 0, 100, 100), AttrPageNumber+"=1")
	inner := newNode(outer, px(0, 0, 100, 100), AttrPageNumber+"=5")
	leaf := newNode(inner, px(0, 0, 10, 10))

	got, node := r.ResolvePageNumber(leaf)
	assert.Equal(t, 5, got)
	assert.Same(t, inner, node)
}

func TestAncestorPageResolver_NoMarker(t *testing.T) {
	r := NewAncestorPageResolver()
	leaf := newNode(newNode(nil, px(0, 0, 100, 100)), px(0, 0, 10, 10))

	got, node := r.ResolvePageNumber(leaf)
	assert.Equal(t, 1, got)
	assert.Nil(t, node)

	got, node = r.ResolvePageNumber(nil)
	assert.Equal(t, 1, got)
	assert.Nil(t, node)
}

func TestAncestorPageResolver_ResolveHostBounds(t *testing.T) {
	r := NewAncestorPageResolver()
	root := newNode(nil, px(0, 0, 1000, 9000))
	host := newNode(root, px(10, 20, 800, 1000), AttrPageHost+"=")
	page := newNode(host, px(12, 22, 790, 990), AttrPageNumber+"=1")
	leaf := newNode(page, px(50, 50, 10, 10))

	box, ok := r.ResolveHostBounds(page, leaf)
	assert.True(t, ok)
	assert.Equal(t, host.box, box)
}

func TestAncestorPageResolver_ResolveHostBounds_Fallbacks(t *testing.T) {
	r := NewAncestorPageResolver()
	root := newNode(nil, px(0, 0, 1000, 9000))
	page := newNode(root, px(12, 22, 790, 990), AttrPageNumber+"=1")
	leaf := newNode(page, px(50, 50, 10, 10))

	box, ok := r.ResolveHostBounds(page, leaf)
	assert.True(t, ok)
	assert.Equal(t, page.box, box)

	box, ok = r.ResolveHostBounds(nil, leaf)
	assert.True(t, ok)
	assert.Equal(t, root.box, box)

	_, ok = r.ResolveHostBounds(nil, nil)
	assert.False(t, ok)
}
