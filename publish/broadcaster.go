// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"encoding/json"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/petd/messagebus"
	"github.com/bitmark-inc/petd/zmqutil"
)

const (
	broadcasterZapDomain = "publisher"
)

// Event - anything on the bus that can be published
type Event interface {
	Name() string
}

type broadcaster struct {
	log     *logger.L
	bus     *messagebus.Bus
	socket4 *zmq.Socket
	socket6 *zmq.Socket
	sent    uint64
}

// bind the sockets
func (brdc *broadcaster) initialise(log *logger.L, keys *zmqutil.Keys, broadcast []string, bus *messagebus.Bus) error {

	brdc.log = log
	brdc.bus = bus
	brdc.sent = 0

	log.Info("initialising…")

	socket4, socket6, err := zmqutil.NewBind(log, zmq.PUB, broadcasterZapDomain, keys, broadcast)
	if nil != err {
		log.Errorf("bind error: %s", err)
		return err
	}
	brdc.socket4 = socket4
	brdc.socket6 = socket6

	return nil
}

// Run - forward bus messages until shutdown
func (brdc *broadcaster) Run(args interface{}, shutdown <-chan struct{}) {

	log := brdc.log

	log.Info("starting…")

	queue := brdc.bus.Chan()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case item := <-queue:
			brdc.process(&item)
		}
	}

	if nil != brdc.socket4 {
		brdc.socket4.Close()
	}
	if nil != brdc.socket6 {
		brdc.socket6.Close()
	}
	log.Infof("stopped after sending: %d  dropped on bus: %d", brdc.sent, brdc.bus.Dropped())
}

// send one event as two frames: name and JSON body
func (brdc *broadcaster) process(item *messagebus.Message) {

	event, ok := item.Item.(Event)
	if !ok {
		brdc.log.Warnf("from: %s  unpublishable item: %T", item.From, item.Item)
		return
	}

	body, err := json.Marshal(event)
	if nil != err {
		brdc.log.Errorf("from: %s  event: %s  JSON error: %s", item.From, event.Name(), err)
		return
	}

	brdc.log.Debugf("sending: %s  data: %s", event.Name(), body)

	for _, socket := range []*zmq.Socket{brdc.socket4, brdc.socket6} {
		if nil == socket {
			continue
		}
		_, err := socket.SendMessageDontwait(event.Name(), body)
		if nil != err {
			brdc.log.Errorf("send: %s  error: %s", event.Name(), err)
		}
	}
	brdc.sent += 1
}
