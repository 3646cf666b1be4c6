package idgen

import (
	"strings"
	"sync"
	"testing"
)

func TestNextIDUnique(t *testing.T) {
	const n = 5000
	seen := make(map[int64]bool, n)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < n/4; i++ {
				id := NextID()
				mu.Lock()
				if seen[id] {
					mu.Unlock()
					t.Errorf("重复ID: %d", id)
					return
				}
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
}

func TestNextIDMonotonic(t *testing.T) {
	prev := NextID()
	for i := 0; i < 1000; i++ {
		id := NextID()
		if id <= prev {
			t.Fatalf("ID 非递增: prev=%d id=%d", prev, id)
		}
		prev = id
	}
}

func TestGenerateEventNo(t *testing.T) {
	no := GenerateEventNo()
	if !strings.HasPrefix(no, "EVT") {
		t.Fatalf("no=%q", no)
	}
	if no == GenerateEventNo() {
		t.Fatal("事件号重复")
	}
}
