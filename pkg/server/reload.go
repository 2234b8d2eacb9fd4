package server

import (
	"context"
	"os"
	"os/signal"

	"k8s.io/klog/v2"
)

// reloadRequests coalesces reload requests from signals and config watches.
// Requests arriving while a rebuild runs collapse into one more rebuild.
type reloadRequests chan struct{}

func newReloadRequests() reloadRequests {
	return make(reloadRequests, 1)
}

func (r reloadRequests) trigger() {
	select {
	case r <- struct{}{}:
	default:
	}
}

// forwardSignals turns the platform reload signals into requests until ctx
// is done. Notify is registered before it returns.
func (r reloadRequests) forwardSignals(ctx context.Context) {
	sigs := reloadSignals()
	if len(sigs) == 0 {
		return
	}
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)
	go func() {
		defer signal.Stop(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-ch:
				klog.V(1).InfoS("reload requested", "signal", sig.String())
				r.trigger()
			}
		}
	}()
}
