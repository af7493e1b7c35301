// Package ntp implements the minimal client side of an NTP exchange: one
// fixed 48-byte request and the transmit-timestamp seconds of the reply.
package ntp

import (
	"encoding/binary"
	"errors"
	"math"
)

const (
	PacketSize  = 48
	DefaultPort = 123

	// seconds from 1900-01-01 (NTP era 0) to 1970-01-01
	seventyYears = 2208988800

	transmitOffset = 40
)

var ErrShortPacket = errors.New("ntp: short packet")

// BuildRequest returns a client-mode request.
func BuildRequest() [PacketSize]byte {
	var b [PacketSize]byte
	b[0] = 0b11100011 // LI unknown, version 3, mode client
	b[1] = 0          // stratum
	b[2] = 6          // polling interval
	b[3] = 0xEC       // peer clock precision
	// 8 bytes of zero for root delay & root dispersion
	b[12] = 49
	b[13] = 0x4E
	b[14] = 49
	b[15] = 52
	return b
}

// ExtractTimestamp returns the reply's transmit time as local epoch seconds:
// the seconds field at byte 40, moved from the NTP to the Unix epoch, plus the
// UTC offset rounded to whole seconds.
func ExtractTimestamp(reply []byte, utcOffsetHours float64) (int64, error) {
	if len(reply) < PacketSize {
		return 0, ErrShortPacket
	}
	t := binary.BigEndian.Uint32(reply[transmitOffset:])
	return int64(t) - seventyYears + int64(math.Round(utcOffsetHours*3600)), nil
}
