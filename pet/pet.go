// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pet

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"unicode/utf8"

	"github.com/bitmark-inc/petd/account"
	"github.com/bitmark-inc/petd/digest"
	"github.com/bitmark-inc/petd/fault"
	"github.com/bitmark-inc/petd/util"
)

// Gender - fixed at creation
type Gender byte

// possible genders
const (
	Male   Gender = 0
	Female Gender = 1
)

// String - name of the gender
func (g Gender) String() string {
	switch g {
	case Male:
		return "male"
	case Female:
		return "female"
	default:
		return "invalid"
	}
}

// MarshalText - gender as its name
func (g Gender) MarshalText() ([]byte, error) {
	if g > Female {
		return nil, fault.ErrInvalidGender
	}
	return []byte(g.String()), nil
}

// UnmarshalText - gender from its name
func (g *Gender) UnmarshalText(s []byte) error {
	switch string(s) {
	case "male", "Male":
		*g = Male
	case "female", "Female":
		*g = Female
	default:
		return fault.ErrInvalidGender
	}
	return nil
}

// Pet - a uniquely identified collectible
type Pet struct {
	Id     digest.Digest
	Name   []byte
	Gender Gender
	Owner  *account.Account
	Price  *uint64
}

// MarshalJSON - name as hex, with a text copy when it is valid UTF-8;
// price omitted when not for sale
func (p Pet) MarshalJSON() ([]byte, error) {
	text := ""
	if utf8.Valid(p.Name) {
		text = string(p.Name)
	}
	return json.Marshal(struct {
		Id     digest.Digest    `json:"id"`
		Name   string           `json:"name"`
		Text   string           `json:"text,omitempty"`
		Gender Gender           `json:"gender"`
		Owner  *account.Account `json:"owner"`
		Price  *uint64          `json:"price,omitempty"`
	}{
		Id:     p.Id,
		Name:   hex.EncodeToString(p.Name),
		Text:   text,
		Gender: p.Gender,
		Owner:  p.Owner,
		Price:  p.Price,
	})
}

// UnmarshalJSON - inverse of MarshalJSON, the text copy is ignored
func (p *Pet) UnmarshalJSON(data []byte) error {
	var text struct {
		Id     digest.Digest    `json:"id"`
		Name   string           `json:"name"`
		Gender Gender           `json:"gender"`
		Owner  *account.Account `json:"owner"`
		Price  *uint64          `json:"price"`
	}
	if err := json.Unmarshal(data, &text); nil != err {
		return err
	}
	name, err := hex.DecodeString(text.Name)
	if nil != err {
		return fault.ErrDecode
	}
	*p = Pet{
		Id:     text.Id,
		Name:   name,
		Gender: text.Gender,
		Owner:  text.Owner,
		Price:  text.Price,
	}
	return nil
}

// ForSale - true if the pet has an asking price
func (p *Pet) ForSale() bool {
	return nil != p.Price
}

// record layout flags
const (
	noPrice  = 0x00
	hasPrice = 0x01
)

// Pack - convert the mutable and immutable fields into a database record
//
//   gender ⧺ price flag ⧺ [price] ⧺ varint owner length ⧺ owner ⧺ varint name length ⧺ name
//
// the id is the key so it is not stored
func (p *Pet) Pack() []byte {
	buffer := []byte{byte(p.Gender), noPrice}
	if nil != p.Price {
		buffer[1] = hasPrice
		price := make([]byte, 8)
		binary.BigEndian.PutUint64(price, *p.Price)
		buffer = append(buffer, price...)
	}
	buffer = util.AppendBytes(buffer, p.Owner.Bytes())
	buffer = util.AppendBytes(buffer, p.Name)
	return buffer
}

// Unpack - restore a pet from its key and database record
func Unpack(id digest.Digest, record []byte) (*Pet, error) {
	if len(record) < 2 {
		return nil, fault.ErrNotPetPack
	}

	p := &Pet{
		Id:     id,
		Gender: Gender(record[0]),
	}
	if p.Gender > Female {
		return nil, fault.ErrNotPetPack
	}

	rest := record[2:]
	switch record[1] {
	case noPrice:
	case hasPrice:
		if len(rest) < 8 {
			return nil, fault.ErrNotPetPack
		}
		price := binary.BigEndian.Uint64(rest[:8])
		p.Price = &price
		rest = rest[8:]
	default:
		return nil, fault.ErrNotPetPack
	}

	ownerBytes, rest, ok := util.ReadBytes(rest)
	if !ok {
		return nil, fault.ErrNotPetPack
	}
	owner, err := account.FromBytes(ownerBytes)
	if nil != err {
		return nil, fault.ErrNotPetPack
	}
	p.Owner = owner

	name, rest, ok := util.ReadBytes(rest)
	if !ok || 0 != len(rest) {
		return nil, fault.ErrNotPetPack
	}
	p.Name = append([]byte{}, name...)

	return p, nil
}
