// Package pipeline wires the L0/L1/L2 detectors into the single online
// driver loop spec.md's system overview describes but leaves unnamed:
// "a driver loop feeds each bar through L0, forwards confirmed fractals
// to L1, forwards pen events to L2."
//
// The handler/Token subscription surface is adapted from the teacher's
// Aggregator, collapsed to the one logical stream this package handles —
// multi-symbol multiplexing is out of scope, so there is a single
// mutex-protected state value instead of a map keyed by symbol:interval.
package pipeline

import (
	"sync"

	"github.com/yitech/czsc/fractal"
	"github.com/yitech/czsc/model/bar"
	"github.com/yitech/czsc/model/event"
	"github.com/yitech/czsc/model/fx"
	"github.com/yitech/czsc/pen"
	"github.com/yitech/czsc/segment"
)

// FractalHandler, PenHandler and SegmentHandler receive events from
// their respective layers as the pipeline processes bars.
type FractalHandler func(fx.Fx)
type PenHandler func(event.PenEvent)
type SegmentHandler func(event.SegmentEvent)

// Token cancels a single handler registration.
type Token interface {
	Unsubscribe()
}

// Pipeline drives one bar stream through the fractal, pen and segment
// detectors in sequence and fans each layer's output out to its
// registered handlers. Safe for concurrent use: OnBar and the Subscribe
// methods may be called from different goroutines, though bars for a
// single stream must still be fed in order (spec.md §5's single-writer
// requirement — the mutex serializes callers, it does not reorder them).
type Pipeline struct {
	mu sync.Mutex

	fractalDet *fractal.Detector
	penDet     *pen.Detector
	segDet     *segment.Detector

	nextID          uint64
	fractalHandlers map[uint64]FractalHandler
	penHandlers     map[uint64]PenHandler
	segmentHandlers map[uint64]SegmentHandler
}

// New creates a Pipeline with empty detector state.
func New() *Pipeline {
	return &Pipeline{
		fractalDet:      fractal.New(),
		penDet:          pen.New(),
		segDet:          segment.New(),
		fractalHandlers: make(map[uint64]FractalHandler),
		penHandlers:     make(map[uint64]PenHandler),
		segmentHandlers: make(map[uint64]SegmentHandler),
	}
}

type token struct {
	id         uint64
	unregister func(uint64)
}

func (t *token) Unsubscribe() { t.unregister(t.id) }

// SubscribeFractal registers handler to receive every confirmed Fx.
func (p *Pipeline) SubscribeFractal(handler FractalHandler) Token {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.fractalHandlers[id] = handler
	return &token{id: id, unregister: p.unsubscribeFractal}
}

// SubscribePen registers handler to receive every PenEvent.
func (p *Pipeline) SubscribePen(handler PenHandler) Token {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.penHandlers[id] = handler
	return &token{id: id, unregister: p.unsubscribePen}
}

// SubscribeSegment registers handler to receive every SegmentEvent.
func (p *Pipeline) SubscribeSegment(handler SegmentHandler) Token {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.segmentHandlers[id] = handler
	return &token{id: id, unregister: p.unsubscribeSegment}
}

func (p *Pipeline) unsubscribeFractal(id uint64) {
	p.mu.Lock()
	delete(p.fractalHandlers, id)
	p.mu.Unlock()
}

func (p *Pipeline) unsubscribePen(id uint64) {
	p.mu.Lock()
	delete(p.penHandlers, id)
	p.mu.Unlock()
}

func (p *Pipeline) unsubscribeSegment(id uint64) {
	p.mu.Lock()
	delete(p.segmentHandlers, id)
	p.mu.Unlock()
}

// OnBar feeds one bar through L0, then cascades any resulting fractal
// through L1 and any resulting pen event through L2, notifying handlers
// at every layer that produced output.
func (p *Pipeline) OnBar(b bar.Bar) {
	p.mu.Lock()
	defer p.mu.Unlock()

	f, ok := p.fractalDet.OnNewBar(b)
	if !ok {
		return
	}
	p.notifyFractal(f)

	pe, ok := p.penDet.OnNewFractal(f)
	if !ok {
		return
	}
	p.notifyPen(pe)

	se, ok := p.segDet.OnPenEvent(pe)
	if !ok {
		return
	}
	p.notifySegment(se)
}

func (p *Pipeline) notifyFractal(f fx.Fx) {
	for _, h := range p.fractalHandlers {
		h(f)
	}
}

func (p *Pipeline) notifyPen(pe event.PenEvent) {
	for _, h := range p.penHandlers {
		h(pe)
	}
}

func (p *Pipeline) notifySegment(se event.SegmentEvent) {
	for _, h := range p.segmentHandlers {
		h(se)
	}
}
