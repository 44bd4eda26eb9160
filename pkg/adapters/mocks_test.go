package adapters

import (
	"net/http"
	"sync/atomic"
)

// errDoer は常に失敗する httpkit.Doer なのだ。
type errDoer struct {
	err error
}

func (d *errDoer) Do(req *http.Request) (*http.Response, error) {
	return nil, d.err
}

// hitCounter はハンドラが呼ばれた回数を数えるのだ。
type hitCounter struct {
	n atomic.Int32
}

func (h *hitCounter) wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.n.Add(1)
		next(w, r)
	}
}

func (h *hitCounter) count() int {
	return int(h.n.Load())
}
