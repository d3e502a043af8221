// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state holds the records the program keeps in account buffers and
// the codec moving them in and out of those buffers.
//
// Every record is a fixed little-endian layout written to the leading bytes
// of the buffer:
//
//	LedgerConfig   100 bytes   legacy program state
//	TokenConfig    167 bytes   enhanced config
//	Blacklist      3205 bytes  u32 count, count keys, bump
//	StakeAccount   65 bytes    legacy stake
//	StakeEntry     81 bytes    enhanced stake
package state
