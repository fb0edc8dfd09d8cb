package wiretests

import "testing"

import "github.com/tcondon31/3700kvstore/pkg/wire"


func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := &wire.Envelope{
		Src:   "0000",
		Dst:   "0001",
		Type:  wire.Put,
		MID:   "abc123",
		Key:   "x",
		Value: "1",
	}

	encoded, encodeErr := wire.Encode(original)
	if encodeErr != nil {
		t.Fatalf("actual encode error: %s\n", encodeErr.Error())
	}

	decoded, decodeErr := wire.Decode(encoded)
	if decodeErr != nil {
		t.Fatalf("actual decode error: %s\n", decodeErr.Error())
	}

	t.Logf("actual key: %s, expected key: %s\n", decoded.Key, original.Key)
	if decoded.Key != original.Key {
		t.Errorf("actual key not equal to expected: actual(%s), expected(%s)\n", decoded.Key, original.Key)
	}

	t.Logf("actual type: %s, expected type: %s\n", decoded.Type, original.Type)
	if decoded.Type != original.Type {
		t.Errorf("actual type not equal to expected: actual(%s), expected(%s)\n", decoded.Type, original.Type)
	}
}

func TestDecodeRejectsUnknownKind(t *testing.T) {
	malformed := []byte(`{"src":"0000","dst":"0001","type":"explode"}`)

	_, decodeErr := wire.Decode(malformed)
	if decodeErr != wire.ErrBadMessage {
		t.Errorf("actual error not ErrBadMessage for an unknown kind: actual(%v)\n", decodeErr)
	}
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	_, decodeErr := wire.Decode([]byte(`{not json`))
	if decodeErr != wire.ErrBadMessage {
		t.Errorf("actual error not ErrBadMessage for malformed JSON: actual(%v)\n", decodeErr)
	}
}
