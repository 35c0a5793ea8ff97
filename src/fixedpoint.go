package ancpipe

/*------------------------------------------------------------------
 *
 * Purpose:	Fixed-point <-> float helpers for the input side of the
 *		pipeline.
 *
 * Description:	The ADC delivers 24-bit samples top-justified in a 32-bit
 *		container; unpacking discards the low 8 bits and scales by
 *		NormalizeFactor. EncodeSample is the inverse, used by test
 *		signal generators and the bench harness (cmd/ancpipesim) to
 *		synthesize frames the real unpack step will recover from
 *		within one LSB.
 *
 *------------------------------------------------------------------*/

// EncodeSample converts a normalized float sample (roughly [-1, 1]) into
// the raw, 24-bit-in-32-bit-container representation the input bus would
// deliver. Values outside the signed 24-bit range are clamped to it.
func EncodeSample(x float32, normalizeFactor float32) int32 {
	v := int32(x / normalizeFactor)
	if v > 1<<23-1 {
		v = 1<<23 - 1
	} else if v < -(1 << 23) {
		v = -(1 << 23)
	}
	return v << 8
}

// DecodeSample is the exact inverse of the unpack step ProcessBlock applies
// to each raw sample, exposed for round-trip tests.
func DecodeSample(raw int32, normalizeFactor float32) float32 {
	return float32(raw>>8) * normalizeFactor
}
