package wire

import "errors"

import "github.com/tcondon31/3700kvstore/pkg/utils"


//=========================================== Codec


/*
	ErrBadMessage:
		the BadMessage error from the taxonomy -- a packet that isn't valid JSON,
		or decodes into an envelope whose type isn't one of the known kinds. the
		caller drops the message and keeps running
*/

var ErrBadMessage = errors.New("wire: bad message")

var knownTypes = map[MessageType]bool{
	Get:          true,
	Put:          true,
	Redirect:     true,
	Ok:           true,
	RequestVote:  true,
	Vote:         true,
	AppendEntry:  true,
	Confirmation: true,
}

/*
	Decode:
		parse a single packet into an Envelope. returns ErrBadMessage for anything
		that isn't valid JSON or doesn't carry a recognized type discriminant --
		the caller drops these rather than propagating them
*/

func Decode(packet []byte) (*Envelope, error) {
	envelope, decErr := utils.DecodeBytesToStruct[Envelope](packet)
	if decErr != nil {
		return nil, ErrBadMessage
	}

	if !knownTypes[envelope.Type] {
		return nil, ErrBadMessage
	}

	return envelope, nil
}

/*
	Encode:
		serialize an Envelope back to a packet. the only failure mode is a struct
		that can't be marshaled to JSON, which for this fixed Envelope shape never
		happens in practice -- kept as an error return anyway since it crosses an
		I/O boundary
*/

func Encode(envelope *Envelope) ([]byte, error) {
	return utils.EncodeStructToBytes[*Envelope](envelope)
}
