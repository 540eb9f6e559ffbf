package booking

import (
	"context"
	"fmt"
	"sync"
)

// refSequence allocates zero-padded ref numbers off the highest number
// already stored. The counter is global, not per artist, so allocation is
// its own serialization domain: the mutex must stay held until the row that
// claims the number is inserted, otherwise a concurrent caller reads the
// same max and allocates a duplicate.
type refSequence struct {
	mu   sync.Mutex
	next func(ctx context.Context) (int, error)
}

// Claim allocates the next number and runs insert with it while the
// sequence is still locked. On insert failure the number is not consumed.
func (r *refSequence) Claim(ctx context.Context, insert func(refNo string) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.next(ctx)
	if err != nil {
		return err
	}
	return insert(fmt.Sprintf("%06d", current+1))
}
