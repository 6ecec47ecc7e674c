// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil

import (
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/petd/fault"
	"github.com/bitmark-inc/petd/util"
)

const (
	heartbeatInterval = 15 * time.Second
	heartbeatTimeout  = 60 * time.Second
	heartbeatTTL      = 120 * time.Second
	lingerTime        = 250 * time.Millisecond
)

// Keys - optional CURVE keys for a server socket
//
// both nil means a plain socket
type Keys struct {
	Private []byte
	Public  []byte
}

// IsEncrypted - true when the keys request a CURVE server
func (k *Keys) IsEncrypted() bool {
	return nil != k && 0 != len(k.Private)
}

// NewBind - bind a list of addresses
//
// creates up to 2 sockets for separate IPv4 and IPv6 traffic
func NewBind(log *logger.L, socketType zmq.Type, zapDomain string, keys *Keys, listen []string) (*zmq.Socket, *zmq.Socket, error) {

	socket4 := (*zmq.Socket)(nil) // IPv4 traffic
	socket6 := (*zmq.Socket)(nil) // IPv6 traffic

	for i, address := range listen {
		canonical, v6, err := util.CanonicalIPandPort(address)
		if nil != err {
			log.Errorf("invalid bind[%d]: %q  error: %s", i, address, err)
			closeAll(socket4, socket6)
			return nil, nil, err
		}
		bindTo := "tcp://" + canonical

		if v6 {
			if nil == socket6 {
				socket6, err = NewServerSocket(socketType, zapDomain, keys, v6)
			}
		} else {
			if nil == socket4 {
				socket4, err = NewServerSocket(socketType, zapDomain, keys, v6)
			}
		}
		if nil != err {
			closeAll(socket4, socket6)
			return nil, nil, err
		}

		if v6 {
			err = socket6.Bind(bindTo)
		} else {
			err = socket4.Bind(bindTo)
		}
		if nil != err {
			log.Errorf("cannot bind[%d]: %q  error: %s", i, bindTo, err)
			closeAll(socket4, socket6)
			return nil, nil, err
		}
		log.Infof("bind[%d]: %q  IPv6: %v", i, bindTo, v6)
	}

	if nil == socket4 && nil == socket6 {
		return nil, nil, fault.ErrMissingParameters
	}
	return socket4, socket6, nil
}

// NewServerSocket - create a socket suitable for a server side connection
func NewServerSocket(socketType zmq.Type, zapDomain string, keys *Keys, v6 bool) (*zmq.Socket, error) {

	socket, err := zmq.NewSocket(socketType)
	if nil != err {
		return nil, err
	}

	if keys.IsEncrypted() {
		if 0 == len(zapDomain) {
			socket.Close()
			return nil, fault.ErrMissingParameters
		}

		// allow any client to connect
		zmq.AuthCurveAdd(zapDomain, zmq.CURVE_ALLOW_ANY)

		socket.SetCurveServer(1)
		socket.SetCurveSecretkey(string(keys.Private))
		socket.SetZapDomain(zapDomain)
		if 0 != len(keys.Public) {
			socket.SetIdentity(string(keys.Public))
		}
	}

	socket.SetIpv6(v6)
	socket.SetLinger(lingerTime)

	socket.SetHeartbeatIvl(heartbeatInterval)
	socket.SetHeartbeatTimeout(heartbeatTimeout)
	socket.SetHeartbeatTtl(heartbeatTTL)

	return socket, nil
}

func closeAll(sockets ...*zmq.Socket) {
	for _, s := range sockets {
		if nil != s {
			s.Close()
		}
	}
}
