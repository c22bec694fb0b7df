package pose

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// The wire encoding is CBOR with string keys rather than positional offsets.
// Decoders ignore keys they do not know, so optional fields can be added on
// either side without breaking the other. The size cost is acceptable for a
// payload of tens of joints at ~30 bytes each.
//
// Encoding uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map
// keys, smallest-width integers, no indefinite-length items. The round-trip
// contract is semantic (decode then re-encode preserves every field value),
// not byte identity with foreign encoders.

var encMode cbor.EncMode
var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("pose: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("pose: CBOR decoder initialization failed: " + err.Error())
	}
}

// Encode serializes a frame to its CBOR wire form.
func Encode(f *Frame) ([]byte, error) {
	data, err := encMode.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	return data, nil
}

// Decode deserializes a CBOR wire payload into a frame. Unknown fields in
// the payload are ignored; missing optional fields decode to zero values.
func Decode(data []byte) (*Frame, error) {
	var f Frame
	if err := decMode.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	return &f, nil
}
