package replay

// GameCube controller bit positions as recorded in the frame source.
const (
	bitDPadLeft        = 0x0001
	bitDPadRight       = 0x0002
	bitDPadDown        = 0x0004
	bitDPadUp          = 0x0008
	bitZ               = 0x0010
	bitRTriggerDigital = 0x0020
	bitLTriggerDigital = 0x0040
	bitA               = 0x0100
	bitB               = 0x0200
	bitX               = 0x0400
	bitY               = 0x0800
	bitStart           = 0x1000
)

// decodeButtons unpacks the button bitmask into named digital attributes.
// Unset bits yield false.
func decodeButtons(bitmask int) Buttons {
	return Buttons{
		DPadLeft:        bitmask&bitDPadLeft != 0,
		DPadRight:       bitmask&bitDPadRight != 0,
		DPadDown:        bitmask&bitDPadDown != 0,
		DPadUp:          bitmask&bitDPadUp != 0,
		Z:               bitmask&bitZ != 0,
		RTriggerDigital: bitmask&bitRTriggerDigital != 0,
		LTriggerDigital: bitmask&bitLTriggerDigital != 0,
		A:               bitmask&bitA != 0,
		B:               bitmask&bitB != 0,
		X:               bitmask&bitX != 0,
		Y:               bitmask&bitY != 0,
		Start:           bitmask&bitStart != 0,
	}
}

// decodeInputs builds both controller views from one frame record: the
// physical view carries raw trigger magnitudes, the processed view carries
// the stick axes and the combined trigger.
func decodeInputs(rec Record) PlayerInputs {
	buttons := decodeButtons(rec.Int("buttons"))
	lTrigger := rec.Float("trigger_l")
	rTrigger := rec.Float("trigger_r")

	anyTrigger := lTrigger
	if rTrigger > anyTrigger {
		anyTrigger = rTrigger
	}

	return PlayerInputs{
		Physical: PhysicalInputs{
			Buttons:  buttons,
			LTrigger: lTrigger,
			RTrigger: rTrigger,
		},
		Processed: ProcessedInputs{
			Buttons:    buttons,
			JoystickX:  rec.Float("joystick_x"),
			JoystickY:  rec.Float("joystick_y"),
			CStickX:    rec.Float("cstick_x"),
			CStickY:    rec.Float("cstick_y"),
			AnyTrigger: anyTrigger,
		},
	}
}
