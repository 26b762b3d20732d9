package graph

import (
	"crypto/md5"
	"math/big"
)

// ShardOf computes the shard ownership rule: MD5(user_id), interpreted as
// a big-endian unsigned integer, mod numShards. md5.Sum's output is
// already big-endian, so big.Int.SetBytes needs no further massaging.
//
// This is deliberately not a third-party hash: the contract requires the
// exact same shard assignment across independent implementations and across
// process restarts, which rules out anything seeded or platform-dependent.
func ShardOf(userID string, numShards int) int {
	if numShards <= 0 {
		numShards = 1
	}
	sum := md5.Sum([]byte(userID))
	n := new(big.Int).SetBytes(sum[:])
	mod := new(big.Int).Mod(n, big.NewInt(int64(numShards)))
	return int(mod.Int64())
}
