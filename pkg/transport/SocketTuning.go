package transport

import "net"

import "golang.org/x/sys/unix"


//=========================================== Socket Tuning


/*
	tuneBuffers:
		raises send/recv buffers past the OS default so a burst of batched
		appendEntry traffic doesn't stall on socket backpressure. a no-op for
		anything that isn't backed by a real unix fd
*/

func tuneBuffers(conn net.Conn) {
	unixConn, ok := conn.(*net.UnixConn)
	if !ok {
		return
	}

	raw, err := unixConn.SyscallConn()
	if err != nil {
		return
	}

	raw.Control(func(fd uintptr) {
		unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_SNDBUF, sockBufBytes)
		unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_RCVBUF, sockBufBytes)
	})
}
