package grammar

import (
	"braces.dev/errtrace"
	"github.com/qmuntal/stateless"
)

type codecState string

const (
	codecPending codecState = "pending"
	codecDone    codecState = "done"
)

const codecFinish = "finish"

// codecLifecycle is a one-way pending -> done machine shared by [Decoder] and [Encoder].
type codecLifecycle struct {
	sm *stateless.StateMachine
}

func newCodecLifecycle() codecLifecycle {
	sm := stateless.NewStateMachine(codecPending)
	sm.Configure(codecPending).Permit(codecFinish, codecDone)
	sm.Configure(codecDone)
	return codecLifecycle{sm}
}

func (l codecLifecycle) done() bool { return l.sm.MustState() == codecDone }

func (l codecLifecycle) finish() error { return errtrace.Wrap(l.sm.Fire(codecFinish)) }

// Decoder is a one-shot percent-decoder of a single input.
//
// After the first successful [Decoder.Decode] the decoder is finished and
// subsequent calls return the cached result. A failed pass leaves the decoder pending.
// Decoder is not safe for concurrent use.
type Decoder struct {
	in  string
	cls *Class
	out string
	lc  codecLifecycle
}

// NewDecoder returns a decoder of s that accepts unescaped members of cls.
func NewDecoder(s string, cls *Class) *Decoder {
	return &Decoder{in: s, cls: cls, lc: newCodecLifecycle()}
}

// Decode runs [Decode] over the decoder input once.
func (d *Decoder) Decode() (string, error) {
	if d.lc.done() {
		return d.out, nil
	}
	out, err := Decode(d.in, d.cls)
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	d.out = out
	if err := d.lc.finish(); err != nil {
		return "", errtrace.Wrap(err)
	}
	return d.out, nil
}

// Done reports whether the decoder has finished.
func (d *Decoder) Done() bool { return d.lc.done() }

// Encoder is a one-shot percent-encoder of a single input.
// It follows the same lifecycle as [Decoder].
type Encoder struct {
	in  string
	cls *Class
	out string
	lc  codecLifecycle
}

// NewEncoder returns an encoder of s that keeps members of cls unescaped.
func NewEncoder(s string, cls *Class) *Encoder {
	return &Encoder{in: s, cls: cls, lc: newCodecLifecycle()}
}

// Encode runs [Encode] over the encoder input once.
func (e *Encoder) Encode() (string, error) {
	if e.lc.done() {
		return e.out, nil
	}
	out, err := Encode(e.in, e.cls)
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	e.out = out
	if err := e.lc.finish(); err != nil {
		return "", errtrace.Wrap(err)
	}
	return e.out, nil
}

// Done reports whether the encoder has finished.
func (e *Encoder) Done() bool { return e.lc.done() }
