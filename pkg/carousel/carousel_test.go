package carousel

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/go-go-golems/gorgia-chat/pkg/chat"
	"github.com/stretchr/testify/require"
)

func products(n int) []chat.Product {
	out := make([]chat.Product, n)
	for i := range out {
		out[i] = chat.Product{
			Name:     fmt.Sprintf("P%d", i+1),
			ImageURL: fmt.Sprintf("https://img/%d.png", i+1),
		}
	}
	return out
}

func TestCarousel_StartsAtFirstItem(t *testing.T) {
	c := New(products(2))
	require.Equal(t, 0, c.Index())
	cur, ok := c.Current()
	require.True(t, ok)
	require.Equal(t, "P1", cur.Name)
}

func TestCarousel_NextWraps(t *testing.T) {
	c := New(products(3))
	c.Next()
	c.Next()
	require.Equal(t, 2, c.Index())
	c.Next()
	require.Equal(t, 0, c.Index())
}

func TestCarousel_PreviousFullCycle(t *testing.T) {
	c := New(products(3))
	var seen []int
	for i := 0; i < 3; i++ {
		c.Previous()
		seen = append(seen, c.Index())
	}
	require.Equal(t, []int{2, 1, 0}, seen)
}

func TestCarousel_IndexStaysInRange(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for n := 1; n <= 6; n++ {
		c := New(products(n))
		require.True(t, c.SelectIndex(r.Intn(n)))
		for step := 0; step < 200; step++ {
			if r.Intn(2) == 0 {
				c.Next()
			} else {
				c.Previous()
			}
			require.GreaterOrEqual(t, c.Index(), 0)
			require.Less(t, c.Index(), n)
		}
	}
}

func TestCarousel_SelectIndex(t *testing.T) {
	c := New(products(3))
	require.True(t, c.SelectIndex(2))
	require.Equal(t, 2, c.Index())
	require.False(t, c.SelectIndex(3))
	require.False(t, c.SelectIndex(-1))
	require.Equal(t, 2, c.Index())
}

func TestCarousel_Controls(t *testing.T) {
	empty := New(nil)
	require.False(t, empty.Visible())
	require.False(t, empty.HasControls())
	_, ok := empty.Current()
	require.False(t, ok)
	empty.Next()
	empty.Previous()
	require.Equal(t, 0, empty.Index())
	require.Equal(t, "", empty.ImageURL())

	single := New(products(1))
	require.True(t, single.Visible())
	require.False(t, single.HasControls())
	single.Next()
	require.Equal(t, 0, single.Index())

	require.True(t, New(products(2)).HasControls())
}

func TestCarousel_ImageFailure(t *testing.T) {
	c := New(products(2), WithPlaceholder("https://placeholder"))
	require.Equal(t, "https://img/1.png", c.ImageURL())

	c.MarkImageFailed()
	require.Equal(t, "https://placeholder", c.ImageURL())
	require.Equal(t, 0, c.Index())
	require.Len(t, c.Items(), 2)
	require.Equal(t, "https://img/1.png", c.Items()[0].ImageURL)

	c.Next()
	require.False(t, c.ImageFailed())
	require.Equal(t, "https://img/2.png", c.ImageURL())

	c.MarkImageFailed()
	require.True(t, c.SelectIndex(1))
	require.True(t, c.ImageFailed())
}

func TestCarousel_DefaultPlaceholder(t *testing.T) {
	c := New(products(1), WithPlaceholder(""))
	c.MarkImageFailed()
	require.Equal(t, DefaultPlaceholderImage, c.ImageURL())
}

func TestCarousel_CopiesItems(t *testing.T) {
	items := products(2)
	c := New(items)
	items[0].Name = "changed"
	cur, _ := c.Current()
	require.Equal(t, "P1", cur.Name)
}
