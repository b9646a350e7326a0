package visits

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounter_SequentialIncrements(t *testing.T) {
	c := NewCounter()
	for i := int64(1); i <= 5; i++ {
		assert.Equal(t, i, c.Increment())
	}
	assert.Equal(t, int64(5), c.Value())
}

func TestCounter_ConcurrentIncrementsAreNotLost(t *testing.T) {
	var c Counter
	const workers, per = 16, 500

	seen := make([]int64, 0, workers*per)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]int64, 0, per)
			for i := 0; i < per; i++ {
				local = append(local, c.Increment())
			}
			mu.Lock()
			seen = append(seen, local...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(workers*per), c.Value())
	unique := make(map[int64]struct{}, len(seen))
	for _, v := range seen {
		unique[v] = struct{}{}
	}
	assert.Len(t, unique, workers*per)
}

func TestCounter_Reset(t *testing.T) {
	c := NewCounter()
	c.Increment()
	c.Increment()
	c.Reset()
	assert.Equal(t, int64(0), c.Value())
	assert.Equal(t, int64(1), c.Increment())
}
