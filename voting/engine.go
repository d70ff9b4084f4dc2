package voting

import (
	"github.com/sewaniwa/qr-vote-app/cliparse"
	"github.com/sewaniwa/qr-vote-app/store"
)

// Engine implements the token lifecycle and vote recording core:
// issuing token batches, redeeming a token exactly once for a signed
// session credential, and recording at most one vote per credential.
//
// Engine is stateless apart from its injected dependencies; any number
// of instances may run concurrently. The store's conditional writes
// are the only cross-request synchronization.
type Engine struct {
	store store.Store
	cfg   cliparse.Config
}

func NewEngine(st store.Store, cfg cliparse.Config) *Engine {
	return &Engine{store: st, cfg: cfg}
}
