package theme

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/locale"
)

func TestParseMode(t *testing.T) {
	assert.Equal(t, Dark, ParseMode("DARK"))
	assert.Equal(t, Light, ParseMode(""))
	assert.Equal(t, Light, ParseMode("sepia"))
	assert.Equal(t, Light, Dark.Toggle())
}

func TestStyleCache_MirrorsForRTL(t *testing.T) {
	c := NewStyleCache()

	ltr, _ := c.Stylesheet(Light, locale.LTR)
	rtl, _ := c.Stylesheet(Light, locale.RTL)

	assert.Contains(t, string(ltr), "direction:ltr")
	assert.Contains(t, string(rtl), "direction:rtl")
	assert.Contains(t, string(ltr), ".toasts{position:fixed;top:1rem;right:1rem")
	assert.Contains(t, string(rtl), ".toasts{position:fixed;top:1rem;left:1rem")
	assert.True(t, strings.Contains(string(rtl), "flex-direction:row-reverse"))
}

func TestStyleCache_Memoizes(t *testing.T) {
	c := NewStyleCache()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			mode := Light
			if i%2 == 0 {
				mode = Dark
			}
			c.Stylesheet(mode, locale.RTL)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 2, c.Len())

	_, e1 := c.Stylesheet(Dark, locale.LTR)
	_, e2 := c.Stylesheet(Dark, locale.LTR)
	_, e3 := c.Stylesheet(Light, locale.LTR)
	assert.Equal(t, e1, e2)
	assert.NotEqual(t, e1, e3)
	assert.Equal(t, 4, c.Len())
}
