/*
Package bookmark gives rooms short names.

Rooms in the default layout run to a million characters, far too long for a
URL or a command line. A bookmark names a room by the blake3 hash of its
canonical text, written "@" followed by 64 hex digits, and a Store remembers
which room each hash stands for.
*/
package bookmark

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/Redundancy/go-babel/address"
	"github.com/zeebo/blake3"
)

// Prefix marks a room field holding a bookmark hash instead of a room
const Prefix = "@"

var ErrNotFound = errors.New("bookmark not found")

type Bookmark struct {
	Hash string `json:"hash"`
	Room string `json:"room"`
}

// Store maps bookmark hashes to rooms. Put of an existing hash is a no-op.
type Store interface {
	Put(ctx context.Context, b Bookmark) error
	Get(ctx context.Context, hash string) (Bookmark, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

// Canonical strips leading zeros, so "007" and "7" share a bookmark
func Canonical(room string) string {
	trimmed := strings.TrimLeft(room, "0")
	if trimmed == "" && room != "" {
		return "0"
	}
	return trimmed
}

// Key is the bookmark hash for room
func Key(room string) string {
	sum := blake3.Sum256([]byte(Canonical(room)))
	return Prefix + hex.EncodeToString(sum[:])
}

// IsKey reports whether s is written as a bookmark rather than a room
func IsKey(s string) bool {
	return strings.HasPrefix(s, Prefix)
}

func validRoom(room string) error {
	if room == "" {
		return &address.MalformedError{Identifier: room, Reason: "room is empty"}
	}

	for i := 0; i < len(room); i++ {
		if address.RoomBase.Value(room[i]) < 0 {
			return &address.MalformedError{
				Identifier: room,
				Reason:     fmt.Sprintf("room: %q at offset %v is not a base 62 digit", room[i], i),
			}
		}
	}

	return nil
}

// Resolve looks up a bookmark hash, or bookmarks a room. Resolving the same
// room twice returns the same bookmark and stores it once.
func Resolve(ctx context.Context, store Store, roomOrHash string) (Bookmark, error) {
	if IsKey(roomOrHash) {
		b, err := store.Get(ctx, strings.ToLower(roomOrHash))
		if err != nil {
			return Bookmark{}, err
		}
		return b, nil
	}

	if err := validRoom(roomOrHash); err != nil {
		return Bookmark{}, err
	}

	b := Bookmark{
		Hash: Key(roomOrHash),
		Room: Canonical(roomOrHash),
	}

	if err := store.Put(ctx, b); err != nil {
		return Bookmark{}, fmt.Errorf("bookmark: storing %v: %w", b.Hash, err)
	}

	return b, nil
}

// Expand replaces a bookmarked room field in identifier with the room itself
func Expand(ctx context.Context, store Store, identifier string) (string, error) {
	if !IsKey(identifier) {
		return identifier, nil
	}

	hash, rest, _ := strings.Cut(identifier, address.Separator)

	b, err := store.Get(ctx, strings.ToLower(hash))
	if err != nil {
		return "", err
	}

	return b.Room + address.Separator + rest, nil
}

// Abbreviate replaces the room field of identifier with its bookmark, after
// storing it
func Abbreviate(ctx context.Context, store Store, identifier string) (string, error) {
	room, rest, found := strings.Cut(identifier, address.Separator)
	if !found || IsKey(room) {
		return identifier, nil
	}

	b, err := Resolve(ctx, store, room)
	if err != nil {
		return "", err
	}

	return b.Hash + address.Separator + rest, nil
}
