package transport

import "net"
import "sync"

import clog "github.com/tcondon31/3700kvstore/pkg/logger"
import "github.com/tcondon31/3700kvstore/pkg/wire"


//=========================================== Transport Types


const NAME = "Transport"

var Log = clog.NewCustomLog(NAME)

/*
	Network:
		every replica binds one listening socket at a path equal to its own id
		and dials peers by their id the same way -- unixpacket preserves message
		boundaries the way SOCK_SEQPACKET does, so one conn.Write call carries
		exactly one envelope and one conn.Read call returns exactly one
*/

const Network = "unixpacket"

const sockBufBytes = 1 << 20

type PoolOpts struct {
	MaxConn int
}

/*
	ConnectionPool:
		reuses outbound connections per peer id instead of dialing fresh for
		every send
*/

type ConnectionPool struct {
	connections sync.Map
	maxConn     int
}

type Transport struct {
	MyID     string
	listener net.Listener
	pool     *ConnectionPool
	Inbox    chan *wire.Envelope
}
