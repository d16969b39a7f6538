package reservation

import (
	"crypto/rand"
	"math/big"
)

const (
	CodeLength = 8

	// sem 0/O e 1/I para facilitar o ditado por telefone
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

var alphabetSize = big.NewInt(int64(len(codeAlphabet)))

// GenerateCode gera o código público da reserva. A unicidade é checada por quem grava.
func GenerateCode() (string, error) {
	buf := make([]byte, CodeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
