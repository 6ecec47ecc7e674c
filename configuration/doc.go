// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - parse a Lua configuration file
//
// the file is executed and must return a table, which is mapped onto a
// struct using the "gluamapper" field tags. Most of base Lua is
// available, so a file can read other files or use os.getenv to pick
// up environment supplied items.
package configuration
