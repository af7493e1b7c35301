//go:build nano_rp2040

package board

import "machine"

func Current() Board {
	return Board{
		I2C: machine.I2C0,
		I2CConfig: machine.I2CConfig{
			SCL:       machine.I2C0_SCL_PIN,
			SDA:       machine.I2C0_SDA_PIN,
			Frequency: 400 * machine.KHz,
		},
		DisplayAddr: 0x3C,
		EncoderA:    machine.D5,
		EncoderB:    machine.D6,
		Button:      machine.D7,
		LED:         machine.LED,
	}
}
