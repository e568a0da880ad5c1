package locker

import (
	"sync/atomic"
	"testing"

	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
)

func TestKeyedMutexSerialisesSameKey(t *testing.T) {
	k := New()
	var inside, maxInside int32
	counter := 0

	var wg conc.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Go(func() {
			unlock := k.Lock("cust_1")
			defer unlock()

			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			counter++
			atomic.AddInt32(&inside, -1)
		})
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Equal(t, int32(1), maxInside)
	assert.Equal(t, 0, k.Len())
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	k := New()
	unlockA := k.Lock("a")
	unlockB := k.Lock("b")
	assert.Equal(t, 2, k.Len())

	unlockA()
	unlockA()
	unlockB()
	assert.Equal(t, 0, k.Len())
}
