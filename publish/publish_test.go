// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish_test

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"
	"time"

	zmq "github.com/pebbe/zmq4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/petd/digest"
	"github.com/bitmark-inc/petd/dispatch"
	"github.com/bitmark-inc/petd/fault"
	"github.com/bitmark-inc/petd/fixtures"
	"github.com/bitmark-inc/petd/messagebus"
	"github.com/bitmark-inc/petd/pet"
	"github.com/bitmark-inc/petd/publish"
)

func TestDisabled(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	bus := messagebus.New(4)

	err := publish.Initialise(&publish.Configuration{}, bus)
	require.Nil(t, err, "initialise")

	err = publish.Initialise(&publish.Configuration{}, bus)
	assert.Equal(t, fault.ErrAlreadyInitialised, err, "second initialise")

	err = publish.Finalise()
	assert.Nil(t, err, "finalise")

	err = publish.Finalise()
	assert.Equal(t, fault.ErrNotInitialised, err, "second finalise")
}

func TestOneSidedKeys(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	configuration := publish.Configuration{
		Broadcast:  []string{"127.0.0.1:2139"},
		PrivateKey: "publish.private",
	}
	err := publish.Initialise(&configuration, messagebus.New(4))
	assert.Equal(t, fault.ErrMissingParameters, err, "only private key")
}

func TestBadAddress(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	configuration := publish.Configuration{
		Broadcast: []string{"localhost:2139"},
	}
	err := publish.Initialise(&configuration, messagebus.New(4))
	assert.Equal(t, fault.ErrInvalidIpAddress, err, "host name")
}

func TestBroadcast(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	port := rand.Intn(30000) + 30000
	listen := fmt.Sprintf("127.0.0.1:%d", port)

	bus := messagebus.New(16)
	err := publish.Initialise(&publish.Configuration{Broadcast: []string{listen}}, bus)
	require.Nil(t, err, "initialise")
	defer publish.Finalise()

	subscriber, err := zmq.NewSocket(zmq.SUB)
	require.Nil(t, err, "socket")
	defer subscriber.Close()

	_ = subscriber.SetRcvtimeo(5 * time.Second)
	_ = subscriber.SetSubscribe("")
	err = subscriber.Connect("tcp://" + listen)
	require.Nil(t, err, "connect")

	// allow the subscription to reach the publisher
	time.Sleep(300 * time.Millisecond)

	event := dispatch.Created{
		Height: 7,
		Id:     digest.NewDigest([]byte("Tom")),
		Owner:  fixtures.Alice,
		Gender: pet.Female,
	}
	assert.True(t, bus.Send("test", "not an event"), "send junk")
	assert.True(t, bus.Send("test", event), "send event")

	frames, err := subscriber.RecvMessageBytes(0)
	require.Nil(t, err, "receive")
	require.Equal(t, 2, len(frames), "frame count")
	assert.Equal(t, "created", string(frames[0]), "event name")

	var received map[string]interface{}
	err = json.Unmarshal(frames[1], &received)
	require.Nil(t, err, "json")
	assert.Equal(t, float64(7), received["height"], "height")
	assert.Equal(t, event.Id.String(), received["id"], "id")
	assert.Equal(t, fixtures.Alice.String(), received["owner"], "owner")
	assert.Equal(t, "female", received["gender"], "gender")
}
