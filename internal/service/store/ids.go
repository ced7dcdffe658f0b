package store

import (
	nanoid "github.com/jaevor/go-nanoid"
)

const (
	userIDAlphabet  = "0123456789abcdefghijklmnopqrstuvwxyz"
	orderIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	orderIDPrefix   = "ORD-"
)

var (
	userIDGen  = mustGenerator(userIDAlphabet, 9)
	orderIDGen = mustGenerator(orderIDAlphabet, 6)
)

func mustGenerator(alphabet string, length int) func() string {
	gen, err := nanoid.CustomASCII(alphabet, length)
	if err != nil {
		panic(err)
	}
	return gen
}

// NewUserID returns a 9 character lowercase base-36 id.
func NewUserID() string {
	return userIDGen()
}

// NewOrderID returns a human-readable order token such as ORD-7QK2ZD.
func NewOrderID() string {
	return orderIDPrefix + orderIDGen()
}
