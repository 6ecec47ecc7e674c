// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/petd/counter"
	"github.com/bitmark-inc/petd/digest"
	"github.com/bitmark-inc/petd/fault"
	"github.com/bitmark-inc/petd/rpc/ratelimit"
	"github.com/bitmark-inc/petd/storage"
)

//go:generate mockgen -source=node.go -destination=../mocks/status.go -package=mocks

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Status - store wide state reported by the node
type Status interface {
	Versions() []storage.Version
	Count(at *digest.Digest) (uint64, storage.Version, error)
	MaximumOwned() uint64
}

// Node - type for RPC calls
type Node struct {
	Log       *logger.L
	Limiter   *rate.Limiter
	Start     time.Time
	Version   string
	Status    Status
	ChainName func() string
	ModeName  func() string
	counter   *counter.Counter
}

// New - create the Node service
func New(log *logger.L, start time.Time, version string, status Status, chainName func() string, modeName func() string, counter *counter.Counter) *Node {
	return &Node{
		Log:       log,
		Limiter:   rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:     start,
		Version:   version,
		Status:    status,
		ChainName: chainName,
		ModeName:  modeName,
		counter:   counter,
	}
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Chain        string          `json:"chain"`
	Mode         string          `json:"mode"`
	Latest       storage.Version `json:"latest"`
	Count        uint64          `json:"count"`
	MaximumOwned uint64          `json:"maximumOwned"`
	RPCs         uint64          `json:"rpcs"`
	Version      string          `json:"version"`
	Uptime       string          `json:"uptime"`
}

// Info - return some information about this node
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	if nil == node.Status {
		return fault.ErrNotInitialised
	}

	count, latest, err := node.Status.Count(nil)
	if nil != err {
		return err
	}

	reply.Chain = node.ChainName()
	reply.Mode = node.ModeName()
	reply.Latest = latest
	reply.Count = count
	reply.MaximumOwned = node.Status.MaximumOwned()
	reply.RPCs = node.counter.Uint64()
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	return nil
}

// ---

// VersionsArguments - empty arguments for versions request
type VersionsArguments struct{}

// VersionsReply - versions that can be passed as "at" to queries
type VersionsReply struct {
	Versions []storage.Version `json:"versions"` // oldest first
}

// Versions - list the retained versions
func (node *Node) Versions(_ *VersionsArguments, reply *VersionsReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	if nil == node.Status {
		return fault.ErrNotInitialised
	}

	reply.Versions = node.Status.Versions()
	return nil
}
