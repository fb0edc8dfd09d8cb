package transport

import "net"
import "os"

import "github.com/tcondon31/3700kvstore/pkg/wire"


//=========================================== Transport


/*
	NewTransport:
		binds a unixpacket listener at a path equal to myID and starts accepting
		inbound connections into Inbox. removes any stale socket file left behind
		by a previous run at this path before binding
*/

func NewTransport(myID string, poolOpts PoolOpts) (*Transport, error) {
	os.Remove(myID)

	listener, listenErr := net.Listen(Network, myID)
	if listenErr != nil {
		return nil, listenErr
	}

	t := &Transport{
		MyID:     myID,
		listener: listener,
		pool:     NewConnectionPool(poolOpts),
		Inbox:    make(chan *wire.Envelope, 256),
	}

	go t.acceptLoop()

	return t, nil
}

func (t *Transport) acceptLoop() {
	for {
		conn, acceptErr := t.listener.Accept()
		if acceptErr != nil {
			Log.Info(t.MyID, "listener closed:", acceptErr)
			return
		}

		tuneBuffers(conn)
		go t.readLoop(conn)
	}
}

func (t *Transport) readLoop(conn net.Conn) {
	buf := make([]byte, 64*1024)

	for {
		n, readErr := conn.Read(buf)
		if readErr != nil {
			return
		}

		envelope, decodeErr := wire.Decode(buf[:n])
		if decodeErr != nil {
			Log.Warn(t.MyID, "dropping malformed message:", decodeErr)
			continue
		}

		t.Inbox <- envelope
	}
}

/*
	Send:
		encodes and writes a single envelope to its Dst over a pooled connection.
		a write failure evicts the connection so the next send dials fresh
*/

func (t *Transport) Send(envelope *wire.Envelope) error {
	conn, connErr := t.pool.GetConnection(envelope.Dst)
	if connErr != nil {
		return connErr
	}

	encoded, encodeErr := wire.Encode(envelope)
	if encodeErr != nil {
		return encodeErr
	}

	if _, writeErr := conn.Write(encoded); writeErr != nil {
		t.pool.connections.Delete(envelope.Dst)
		conn.Close()
		return writeErr
	}

	return nil
}

/*
	Dispatch:
		sends envelope as-is when it targets a single peer; when Dst is the
		broadcast sentinel, fans it out to every peer with Dst rewritten to that
		peer's id, since the wire has no real broadcast address, only individual
		unixpacket sockets
*/

func (t *Transport) Dispatch(envelope *wire.Envelope, peerIDs []string) {
	if envelope.Dst != wire.Broadcast {
		if sendErr := t.Send(envelope); sendErr != nil {
			Log.Warn(t.MyID, "send to", envelope.Dst, "failed:", sendErr)
		}
		return
	}

	for _, peer := range peerIDs {
		outbound := *envelope
		outbound.Dst = peer

		if sendErr := t.Send(&outbound); sendErr != nil {
			Log.Warn(t.MyID, "send to", peer, "failed:", sendErr)
		}
	}
}

func (t *Transport) Close() error {
	return t.listener.Close()
}
