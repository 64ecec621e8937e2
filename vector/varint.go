package vector

// Header values use a 2-bit size class in the top bits of the first byte
// followed by a big-endian payload:
//
//	00xxxxxx                            6 bits
//	01xxxxxx xxxxxxxx                  14 bits
//	10xxxxxx xxxxxxxx xxxxxxxx         22 bits
//	11xxxxxx xxxxxxxx xxxxxxxx xxxxxxxx 30 bits
const (
	// MaxValue is the largest offset delta or length a header can hold.
	MaxValue = 1<<30 - 1

	classShift = 6
)

func varintSize(v uint32) int {
	switch {
	case v < 1<<6:
		return 1
	case v < 1<<14:
		return 2
	case v < 1<<22:
		return 3
	default:
		return 4
	}
}

func appendVarint(dst []byte, v uint32) ([]byte, error) {
	if v > MaxValue {
		return dst, ErrValueTooLarge
	}
	n := varintSize(v)
	class := byte(n-1) << classShift
	switch n {
	case 1:
		return append(dst, class|byte(v)), nil
	case 2:
		return append(dst, class|byte(v>>8), byte(v)), nil
	case 3:
		return append(dst, class|byte(v>>16), byte(v>>8), byte(v)), nil
	default:
		return append(dst, class|byte(v>>24), byte(v>>16), byte(v>>8), byte(v)), nil
	}
}

// readVarint decodes a header value of any size class.
// It returns n == 0 when data is too short.
func readVarint(data []byte) (v uint32, n int) {
	if len(data) == 0 {
		return 0, 0
	}
	n = int(data[0]>>classShift) + 1
	if len(data) < n {
		return 0, 0
	}
	v = uint32(data[0] & (1<<classShift - 1))
	for _, c := range data[1:n] {
		v = v<<8 | uint32(c)
	}
	return v, n
}
