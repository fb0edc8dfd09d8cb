package transport

import "errors"
import "net"


//=========================================== Connection Pool


/*
	NewConnectionPool:
		adapted from a grpc.ClientConn pool keyed by address into one keyed by
		peer id and holding unixpacket connections instead
*/

func NewConnectionPool(opts PoolOpts) *ConnectionPool {
	return &ConnectionPool{maxConn: opts.MaxConn}
}

/*
	GetConnection:
		1.) load connections for the given peer
		2.) if loaded and already at the cap, reject with max connections reached
		3.) if loaded, reuse the first live connection found
		4.) otherwise dial a fresh unixpacket connection, tune its socket buffers,
			and store it at the peer's key
*/

func (cp *ConnectionPool) GetConnection(peerID string) (net.Conn, error) {
	connections, loaded := cp.connections.Load(peerID)
	if loaded {
		conns := connections.([]net.Conn)
		if len(conns) >= cp.maxConn {
			return nil, errors.New("max connections reached")
		}

		for _, conn := range conns {
			if conn != nil {
				return conn, nil
			}
		}
	}

	newConn, dialErr := net.Dial(Network, peerID)
	if dialErr != nil {
		return nil, dialErr
	}

	tuneBuffers(newConn)

	emptyConns, loaded := cp.connections.LoadOrStore(peerID, []net.Conn{newConn})
	if loaded {
		conns := emptyConns.([]net.Conn)
		cp.connections.Store(peerID, append(conns, newConn))
	}

	return newConn, nil
}

/*
	PutConnection:
		returns a connection to the pool if it is still tracked there, otherwise
		closes it
*/

func (cp *ConnectionPool) PutConnection(peerID string, connection net.Conn) (bool, error) {
	connections, loaded := cp.connections.Load(peerID)
	if loaded {
		for _, conn := range connections.([]net.Conn) {
			if conn == connection {
				return true, nil
			}
		}
	}

	if closeErr := connection.Close(); closeErr != nil {
		return false, closeErr
	}

	return false, nil
}
