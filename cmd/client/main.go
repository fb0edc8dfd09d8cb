package main

import "fmt"
import "os"
import "time"

import "github.com/google/uuid"

import clog "github.com/tcondon31/3700kvstore/pkg/logger"
import "github.com/tcondon31/3700kvstore/pkg/transport"
import "github.com/tcondon31/3700kvstore/pkg/wire"


const NAME = "Client"

var Log = clog.NewCustomLog(NAME)

const connPoolMaxConn = 4
const replyTimeout = 3 * time.Second
const maxRedirects = 5

/*
	usage:
		client <my_id> <replica_id> get <key>
		client <my_id> <replica_id> put <key> <value>

	sends one request, follows redirect replies until an ok arrives or
	maxRedirects is exhausted, and prints the result
*/

func main() {
	if len(os.Args) < 5 {
		Log.Fatal("usage: client <my_id> <replica_id> get|put <key> [value]")
	}

	myID := os.Args[1]
	target := os.Args[2]
	verb := os.Args[3]
	key := os.Args[4]

	var value string
	if verb == "put" {
		if len(os.Args) < 6 {
			Log.Fatal("usage: client <my_id> <replica_id> put <key> <value>")
		}
		value = os.Args[5]
	}

	t, transportErr := transport.NewTransport(myID, transport.PoolOpts{MaxConn: connPoolMaxConn})
	if transportErr != nil {
		Log.Fatal("unable to start transport for", myID, ":", transportErr)
	}
	defer t.Close()

	request := buildRequest(myID, verb, key, value)

	for attempt := 0; attempt < maxRedirects; attempt++ {
		if sendErr := t.Send(request); sendErr != nil {
			Log.Fatal("unable to reach", request.Dst, ":", sendErr)
		}

		select {
		case reply := <-t.Inbox:
			if reply.Type == wire.Redirect {
				Log.Info("redirected to", reply.Leader)
				request.Dst = reply.Leader
				continue
			}

			printResult(verb, reply)
			return

		case <-time.After(replyTimeout):
			Log.Warn("timed out waiting on", request.Dst, ", retrying against", target)
			request.Dst = target
		}
	}

	Log.Fatal("gave up after", maxRedirects, "redirects")
}

func buildRequest(myID string, verb string, key string, value string) *wire.Envelope {
	mid := uuid.NewString()

	if verb == "put" {
		return &wire.Envelope{
			Src:   myID,
			Dst:   os.Args[2],
			Type:  wire.Put,
			MID:   mid,
			Key:   key,
			Value: value,
		}
	}

	return &wire.Envelope{
		Src:  myID,
		Dst:  os.Args[2],
		Type: wire.Get,
		MID:  mid,
		Key:  key,
	}
}

func printResult(verb string, reply *wire.Envelope) {
	if verb == "get" {
		fmt.Printf("%s => %q\n", reply.MID, reply.Value)
		return
	}

	fmt.Printf("%s committed\n", reply.MID)
}
