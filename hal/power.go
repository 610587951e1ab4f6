package hal

import "context"

type hostPower struct {
	log Logger
	ch  chan PowerEvent
}

func newHostPower(log Logger) *hostPower {
	return &hostPower{log: log, ch: make(chan PowerEvent, 1)}
}

func (p *hostPower) Restart(ctx context.Context)  { p.request(ctx, PowerRestart) }
func (p *hostPower) Shutdown(ctx context.Context) { p.request(ctx, PowerShutdown) }
func (p *hostPower) Events() <-chan PowerEvent    { return p.ch }

// request hands ev to the lifecycle owner and parks until the caller's boot
// has been torn down.
func (p *hostPower) request(ctx context.Context, ev PowerEvent) {
	p.log.WriteLineString("power: " + ev.String())
	select {
	case p.ch <- ev:
	case <-ctx.Done():
		return
	}
	<-ctx.Done()
}
