package cipher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortaTableau(t *testing.T) {
	for i, row := range portaTableau {
		var m mapping
		copy(m[:], row)
		require.True(t, m.isBijection(), "row %d", i)
		require.True(t, m.isDerangement(), "row %d", i)
		// Every row is reciprocal: applying it twice returns the letter.
		for j := 0; j < alphabetSize; j++ {
			assert.Equal(t, alphabet[j], m[m[j]-'a'], "row %d letter %c", i, alphabet[j])
		}
	}
}

func TestPorta(t *testing.T) {
	t.Run("known vector", func(t *testing.T) {
		key := "FORTIFICATION"
		res := Porta("Defend the east wall of the castle", &key, nil, newRand(0))
		assert.Equal(t, "synnjscvrnrlahutukucvryrlany", res.Ciphertext)
		require.NotNil(t, res.Key)
		assert.Equal(t, "fortification", *res.Key)
	})

	t.Run("reciprocal", func(t *testing.T) {
		key := "porta"
		enc := Porta("Meet me at noon", &key, nil, newRand(0))
		dec := Porta(enc.Ciphertext, &key, nil, newRand(0))
		assert.Equal(t, "meetmeatnoon", dec.Ciphertext)
	})

	t.Run("key letters pair up", func(t *testing.T) {
		a, b := "a", "b"
		assert.Equal(t,
			Porta("attack at dawn", &a, nil, newRand(0)).Ciphertext,
			Porta("attack at dawn", &b, nil, newRand(0)).Ciphertext)
		assert.Equal(t, "nggnpxngqnja", Porta("attack at dawn", &a, nil, newRand(0)).Ciphertext)
	})

	t.Run("non letters in the key are ignored", func(t *testing.T) {
		key := "fort-ification 1"
		res := Porta("Defend the east wall of the castle", &key, nil, newRand(0))
		assert.Equal(t, "synnjscvrnrlahutukucvryrlany", res.Ciphertext)
	})

	t.Run("missing key draws a word", func(t *testing.T) {
		res := Porta("Defend the east wall of the castle", nil, staticWords("fortification"), newRand(0))
		assert.Equal(t, "synnjscvrnrlahutukucvryrlany", res.Ciphertext)
	})

	t.Run("no key and no words", func(t *testing.T) {
		res := Porta("attack at dawn", nil, nil, newRand(0))
		assert.Equal(t, "nggnpxngqnja", res.Ciphertext)
		assert.Equal(t, "a", *res.Key)
	})

	t.Run("empty plaintext", func(t *testing.T) {
		key := "key"
		assert.Equal(t, "", Porta("123, !", &key, nil, newRand(0)).Ciphertext)
	})
}
