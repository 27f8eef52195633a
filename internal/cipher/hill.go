package cipher

import (
	"strings"

	"github.com/xkilldash9x/cryptograms/api/schemas"
)

// hillKeyLength is the size of a generated key: a 2x2 matrix.
const hillKeyLength = 4

// Hill encrypts with matrix multiplication mod 26. Spaces and symbols are ignored.
//
// The key, whose length must be a perfect square N*N, is laid out row-major into an NxN matrix.
// The plaintext is reduced to lowercase letters, padded with 'z' to a multiple of N and each block
// of N letters is multiplied by the matrix. Encrypting "abcd" with the key "abcd" gives the matrix
// [[0 1] [2 3]], the blocks [0 1] and [2 3] and the ciphertext "bddn".
//
// Without a key, four distinct random letters are used.
func Hill(s string, key *string, r Rand) (schemas.CipherResult, error) {
	var k []byte
	if key != nil {
		k = []byte(strings.ToLower(*key))
	} else {
		k = generateHillKey(r)
	}

	side, ok := perfectSquareRoot(len(k))
	if !ok {
		return schemas.CipherResult{}, ErrKeyNotSquare
	}
	for _, b := range k {
		if b < 'a' || b > 'z' {
			return schemas.CipherResult{}, ErrKeyNotLetters
		}
	}

	text := lettersOnly(s)
	if rem := len(text) % side; rem != 0 {
		text = append(text, strings.Repeat("z", side-rem)...)
	}

	matrix := make([][]int, side)
	for i := range matrix {
		matrix[i] = make([]int, side)
		for j := range matrix[i] {
			matrix[i][j] = int(k[i*side+j] - 'a')
		}
	}

	return schemas.CipherResult{
		Ciphertext: string(matmul(text, matrix)),
		Key:        schemas.StringPtr(string(k)),
	}, nil
}

// generateHillKey samples hillKeyLength distinct letters.
func generateHillKey(r Rand) []byte {
	letters := alphabet
	r.Shuffle(alphabetSize, func(i, j int) { letters[i], letters[j] = letters[j], letters[i] })
	key := make([]byte, hillKeyLength)
	copy(key, letters[:hillKeyLength])
	return key
}

// matmul multiplies every len(matrix)-sized block of text by matrix mod 26. Plaintexts are
// quotation sized so the naive product is fine.
func matmul(text []byte, matrix [][]int) []byte {
	n := len(matrix)
	out := make([]byte, 0, len(text))
	for i := 0; i+n <= len(text); i += n {
		for row := 0; row < n; row++ {
			sum := 0
			for col := 0; col < n; col++ {
				sum += matrix[row][col] * int(text[i+col]-'a')
			}
			out = append(out, alphabet[sum%alphabetSize])
		}
	}
	return out
}

// perfectSquareRoot returns the integer square root of n when n is a positive perfect square.
func perfectSquareRoot(n int) (int, bool) {
	for i := 1; i*i <= n; i++ {
		if i*i == n {
			return i, true
		}
	}
	return 0, false
}
