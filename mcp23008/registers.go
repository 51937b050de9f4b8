package mcp23008

// Register addresses (IOCON.BANK is irrelevant on the 8-bit part)
const (
	IODIR   = 0x00 // I/O direction, 1 = input
	IPOL    = 0x01 // input polarity, 1 = inverted
	GPINTEN = 0x02 // interrupt-on-change enable
	DEFVAL  = 0x03 // compare value for interrupt-on-change
	INTCON  = 0x04 // 1 = compare against DEFVAL, 0 = against previous value
	IOCON   = 0x05 // configuration
	GPPU    = 0x06 // pull-up enable
	INTF    = 0x07 // interrupt flags
	INTCAP  = 0x08 // port value captured at interrupt time
	GPIO    = 0x09 // port value
	OLAT    = 0x0A // output latch
)

// IOCON bits
const (
	IOCON_INTPOL = 1 << 1 // INT active-high (ignored when ODR is set)
	IOCON_ODR    = 1 << 2 // INT open-drain
	IOCON_DISSLW = 1 << 4 // SDA slew rate control disabled
	IOCON_SEQOP  = 1 << 5 // sequential operation disabled
)

// DefaultAddress is the address with A2..A0 tied low
const DefaultAddress = 0x20

// Panel wiring: buttons on the low nibble, lamps on the high nibble,
// each lamp four bits above its button.
const (
	ButtonBits = 0x0F
	LampBits   = 0xF0
	LampShift  = 4
)
