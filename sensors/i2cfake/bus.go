// Package i2cfake provides an in-memory embd.I2CBus made of register maps, for
// exercising device drivers without hardware.
package i2cfake

import (
	"errors"
	"sync"

	"github.com/kidoman/embd"
)

// ErrNoDevice is returned for any transfer to an address marked as failing.
var ErrNoDevice = errors.New("i2cfake: no device acknowledged")

var _ embd.I2CBus = (*Bus)(nil)

// Write records a register write.
type Write struct {
	Addr, Reg byte
	Value     []byte
}

// Bus is a fake I2C bus. The zero value is not usable, call New.
type Bus struct {
	mu      sync.Mutex
	regs    map[byte]*[256]byte
	queued  map[uint16][][]byte
	failing map[byte]bool
	writes  []Write
	closed  bool
}

func New() *Bus {
	return &Bus{
		regs:    make(map[byte]*[256]byte),
		queued:  make(map[uint16][][]byte),
		failing: make(map[byte]bool),
	}
}

// Set stores value in consecutive registers of the device at addr.
func (b *Bus) Set(addr, reg byte, value ...byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	m := b.device(addr)
	for i, v := range value {
		m[int(reg)+i] = v
	}
}

// Get returns a register of the device at addr.
func (b *Bus) Get(addr, reg byte) byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.device(addr)[reg]
}

// Queue arranges for successive reads starting at reg to return frames in
// order. Once the queue is empty reads fall back to the register map.
func (b *Bus) Queue(addr, reg byte, frames ...[]byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	k := key(addr, reg)
	b.queued[k] = append(b.queued[k], frames...)
}

// Fail makes every transfer to addr fail until cleared.
func (b *Bus) Fail(addr byte, failing bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failing[addr] = failing
}

// Writes returns every register write seen so far.
func (b *Bus) Writes() []Write {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Write(nil), b.writes...)
}

// Closed reports whether Close was called.
func (b *Bus) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

func (b *Bus) ReadByte(addr byte) (byte, error) {
	return b.ReadByteFromReg(addr, 0)
}

func (b *Bus) ReadBytes(addr byte, num int) ([]byte, error) {
	value := make([]byte, num)
	err := b.ReadFromReg(addr, 0, value)
	return value, err
}

func (b *Bus) WriteByte(addr, value byte) error {
	return b.WriteToReg(addr, 0, []byte{value})
}

func (b *Bus) WriteBytes(addr byte, value []byte) error {
	return b.WriteToReg(addr, 0, value)
}

func (b *Bus) ReadFromReg(addr, reg byte, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failing[addr] {
		return ErrNoDevice
	}
	k := key(addr, reg)
	if q := b.queued[k]; len(q) > 0 {
		copy(value, q[0])
		b.queued[k] = q[1:]
		return nil
	}
	m := b.device(addr)
	for i := range value {
		value[i] = m[(int(reg)+i)&0xFF]
	}
	return nil
}

func (b *Bus) ReadByteFromReg(addr, reg byte) (byte, error) {
	value := make([]byte, 1)
	err := b.ReadFromReg(addr, reg, value)
	return value[0], err
}

func (b *Bus) ReadWordFromReg(addr, reg byte) (uint16, error) {
	value := make([]byte, 2)
	err := b.ReadFromReg(addr, reg, value)
	return uint16(value[0])<<8 | uint16(value[1]), err
}

func (b *Bus) WriteToReg(addr, reg byte, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failing[addr] {
		return ErrNoDevice
	}
	b.writes = append(b.writes, Write{Addr: addr, Reg: reg, Value: append([]byte(nil), value...)})
	m := b.device(addr)
	for i, v := range value {
		m[(int(reg)+i)&0xFF] = v
	}
	return nil
}

func (b *Bus) WriteByteToReg(addr, reg, value byte) error {
	return b.WriteToReg(addr, reg, []byte{value})
}

func (b *Bus) WriteWordToReg(addr, reg byte, value uint16) error {
	return b.WriteToReg(addr, reg, []byte{byte(value >> 8), byte(value)})
}

func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

func (b *Bus) device(addr byte) *[256]byte {
	m, ok := b.regs[addr]
	if !ok {
		m = new([256]byte)
		b.regs[addr] = m
	}
	return m
}

func key(addr, reg byte) uint16 {
	return uint16(addr)<<8 | uint16(reg)
}
