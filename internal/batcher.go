package internal

// Batcher groups edits into a single cycle.
// Each nested edit block increases the depth by 1; detection and dispatch
// wait until the outermost block completes.
type Batcher struct {
	depth int
}

func NewBatcher() *Batcher {
	return &Batcher{
		depth: 0,
	}
}

func (b *Batcher) IsBatching() bool {
	return b.depth > 0
}

func (b *Batcher) Batch(fn func(), onComplete func() error) (err error) {
	b.depth++
	defer func() {
		b.depth--
		if b.depth == 0 && onComplete != nil {
			err = onComplete()
		}
	}()

	fn()
	return nil
}
