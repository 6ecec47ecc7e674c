// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync/atomic"
)

// DefaultQueueSize - capacity used when none is given
const DefaultQueueSize = 1000

// Message - one queued item and the component that sent it
type Message struct {
	From string
	Item interface{}
}

// Bus - bounded queue of messages
//
// senders never block, a full queue drops the message
type Bus struct {
	queue   chan Message
	dropped uint64
}

// New - create a bus holding up to size messages
func New(size int) *Bus {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Bus{
		queue: make(chan Message, size),
	}
}

// Send - queue an item, false if it was dropped
func (b *Bus) Send(from string, item interface{}) bool {
	select {
	case b.queue <- Message{From: from, Item: item}:
		return true
	default:
		atomic.AddUint64(&b.dropped, 1)
		return false
	}
}

// Chan - channel to read from
func (b *Bus) Chan() <-chan Message {
	return b.queue
}

// Dropped - number of messages discarded because the queue was full
func (b *Bus) Dropped() uint64 {
	return atomic.LoadUint64(&b.dropped)
}
