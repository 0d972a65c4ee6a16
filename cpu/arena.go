package cpu

const (
	ADDRESS_MIN  = 0x0000  // First addressable byte.
	ADDRESS_MAX  = 0xffff  // Last addressable byte.
	ADDRESS_SIZE = 0x10000 // Size of the address space.
)
