//go:build matrixportal_m4

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
		DisplayAddr: 0x3D,
		EncoderA:    machine.A1,
		EncoderB:    machine.A2,
		Button:      machine.A3,
		LED:         machine.LED,
	}
}
