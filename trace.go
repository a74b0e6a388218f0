// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vsim

import (
	"bufio"
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Waveform is a TraceSink writing value-change-dump (VCD) files. Signals
// are declared with Register or RegisterStruct before the sink is opened;
// Dump then appends one sample per call, recording only the signals whose
// value changed since the previous sample.
//
type Waveform struct {
	depth  int
	sigs   []*signal
	f      *os.File
	w      *bufio.Writer
	opened bool
	closed bool
}

type signal struct {
	scope []string // enclosing scope path, possibly empty
	name  string   // leaf name
	bits  int
	id    string // VCD identifier code
	get   func() uint64
	last  uint64
}

// NewWaveform returns a Waveform recording signals down to the given
// hierarchy depth. A signal named "cpu.alu.flags" sits at depth 3; deeper
// registrations are silently dropped.
//
func NewWaveform(depth int) *Waveform {
	return &Waveform{depth: depth}
}

// MaxDepth returns the hierarchy depth bound set at construction.
//
func (w *Waveform) MaxDepth() int {
	return w.depth
}

// Register declares one signal of the given bit width. Dots in the name
// introduce VCD scopes. get is polled at every Dump and must stay valid for
// the lifetime of the sink. Registering after Open has no effect.
//
func (w *Waveform) Register(name string, bits int, get func() uint64) {
	if w.opened || bits < 1 {
		return
	}
	path := strings.Split(name, ".")
	if len(path) > w.depth {
		return
	}
	w.sigs = append(w.sigs, &signal{
		scope: path[:len(path)-1],
		name:  path[len(path)-1],
		bits:  bits,
		id:    idCode(len(w.sigs)),
		get:   get,
	})
}

// RegisterStruct declares a signal for each tagged field of the struct
// pointed to by v, under the given scope ("" for the trace root). The field
// tag must be `vsim:"name"` or `vsim:"name,bits"`; an empty name keeps the
// field name in lowercase. Untagged fields are skipped. Supported field
// types are bool (1 bit) and the unsigned integer types (natural width
// unless the tag narrows it).
//
func RegisterStruct(w *Waveform, scope string, v interface{}) {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	typ := val.Type()
	if k := typ.Kind(); k != reflect.Struct {
		panic(errors.Errorf("unsupported type %q for %q", k, typ.Name()))
	}
	for i, n := 0, typ.NumField(); i < n; i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("vsim")
		if !ok {
			continue
		}
		name := strings.ToLower(f.Name)
		bits := 0
		tv := strings.Split(tag, ",")
		if tv[0] != "" {
			name = tv[0]
		}
		if len(tv) > 1 {
			b, err := strconv.Atoi(tv[1])
			if err != nil || b < 1 {
				panic(errors.Errorf("bad bit width %q for field %q in %q", tv[1], f.Name, typ.Name()))
			}
			bits = b
		}
		if scope != "" {
			name = scope + "." + name
		}
		fv := val.Field(i)
		switch k := f.Type.Kind(); k {
		case reflect.Bool:
			w.Register(name, 1, func() uint64 {
				if fv.Bool() {
					return 1
				}
				return 0
			})
		case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
			if bits == 0 {
				bits = f.Type.Bits()
			}
			w.Register(name, bits, fv.Uint)
		default:
			panic(errors.Errorf("unsupported type %q for field %q in %q", k, f.Name, typ.Name()))
		}
	}
}

// Open creates or truncates the VCD file at path and writes the header,
// including an initial $dumpvars section with the current value of every
// registered signal.
//
func (w *Waveform) Open(path string) error {
	if w.opened {
		return errors.New("trace already open")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create waveform file")
	}
	w.f = f
	w.w = bufio.NewWriter(f)
	w.opened = true
	w.writeHeader()
	return nil
}

// Dump appends one sample at simulation time t. Timestamps must not
// decrease across the run; the sink does not verify this and a violation
// yields undefined trace content. Dump outside the open..close window is a
// no-op.
//
func (w *Waveform) Dump(t uint64) {
	if !w.opened || w.closed {
		return
	}
	marked := false
	for _, s := range w.sigs {
		v := s.get() & mask(s.bits)
		if v == s.last {
			continue
		}
		if !marked {
			w.w.WriteByte('#')
			w.w.WriteString(strconv.FormatUint(t, 10))
			w.w.WriteByte('\n')
			marked = true
		}
		w.writeValue(s, v)
		s.last = v
	}
}

// Close flushes and closes the VCD file. The first call does the work;
// later calls are no-ops.
//
func (w *Waveform) Close() error {
	if !w.opened || w.closed {
		return nil
	}
	w.closed = true
	if err := w.w.Flush(); err != nil {
		w.f.Close()
		return errors.Wrap(err, "flush waveform")
	}
	return errors.Wrap(w.f.Close(), "close waveform")
}

func (w *Waveform) writeHeader() {
	// group signals sharing a scope so that each scope is declared once
	sort.SliceStable(w.sigs, func(i, j int) bool {
		return strings.Join(w.sigs[i].scope, ".") < strings.Join(w.sigs[j].scope, ".")
	})
	b := w.w
	b.WriteString("$version vsim $end\n$timescale 1ns $end\n")
	var cur []string
	for _, s := range w.sigs {
		cur = w.switchScope(cur, s.scope)
		b.WriteString("$var wire ")
		b.WriteString(strconv.Itoa(s.bits))
		b.WriteByte(' ')
		b.WriteString(s.id)
		b.WriteByte(' ')
		b.WriteString(s.name)
		if s.bits > 1 {
			b.WriteString(" [" + strconv.Itoa(s.bits-1) + ":0]")
		}
		b.WriteString(" $end\n")
	}
	w.switchScope(cur, nil)
	b.WriteString("$enddefinitions $end\n$dumpvars\n")
	for _, s := range w.sigs {
		v := s.get() & mask(s.bits)
		w.writeValue(s, v)
		s.last = v
	}
	b.WriteString("$end\n")
}

// switchScope emits the $upscope/$scope transitions from scope path cur to
// next and returns next.
func (w *Waveform) switchScope(cur, next []string) []string {
	common := 0
	for common < len(cur) && common < len(next) && cur[common] == next[common] {
		common++
	}
	for i := len(cur); i > common; i-- {
		w.w.WriteString("$upscope $end\n")
	}
	for _, s := range next[common:] {
		w.w.WriteString("$scope module " + s + " $end\n")
	}
	return next
}

func (w *Waveform) writeValue(s *signal, v uint64) {
	if s.bits == 1 {
		if v != 0 {
			w.w.WriteByte('1')
		} else {
			w.w.WriteByte('0')
		}
		w.w.WriteString(s.id)
	} else {
		w.w.WriteByte('b')
		w.w.WriteString(strconv.FormatUint(v, 2))
		w.w.WriteByte(' ')
		w.w.WriteString(s.id)
	}
	w.w.WriteByte('\n')
}

// idCode maps a signal index to a VCD identifier code over the printable
// characters ! through ~.
func idCode(n int) string {
	const lo, hi = '!', '~'
	const base = hi - lo + 1
	var b [8]byte
	i := len(b)
	for {
		i--
		b[i] = byte(lo + n%base)
		n /= base
		if n == 0 {
			break
		}
		n--
	}
	return string(b[i:])
}

func mask(bits int) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return 1<<uint(bits) - 1
}
