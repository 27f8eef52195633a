package schemas

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func TestParseCipherType(t *testing.T) {
	tests := []struct {
		in   string
		want CipherType
	}{
		{"rot13", CipherRot13},
		{"  Hill ", CipherHill},
		{"PATRISTOCRAT-K1", CipherPatristocratK1},
		{"patristocrat_k2", CipherPatristocratK2},
		{"cryptarithm", CipherCryptarithm},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCipherType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseCipherType("vigenere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown cipher type "vigenere"`)
}

func TestCipherTypesRoundTripThroughParse(t *testing.T) {
	assert.Len(t, CipherTypes, 12)
	for _, ct := range CipherTypes {
		got, err := ParseCipherType(string(ct))
		require.NoError(t, err)
		assert.Equal(t, ct, got)
	}
}

func TestLength(t *testing.T) {
	t.Run("Bounds", func(t *testing.T) {
		tests := map[Length][2]int{
			LengthShort:  {60, 90},
			LengthMedium: {90, 120},
			LengthLong:   {120, 150},
			Length(""):   {90, 120},
		}
		for l, want := range tests {
			lo, hi := l.Bounds()
			assert.Equal(t, want, [2]int{lo, hi}, "length %q", l)
		}
	})

	t.Run("Parse", func(t *testing.T) {
		got, err := ParseLength(" LONG")
		require.NoError(t, err)
		assert.Equal(t, LengthLong, got)

		_, err = ParseLength("huge")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected short, medium or long")
	})
}

func TestOptionalFieldsAreOmitted(t *testing.T) {
	b, err := json.Marshal(CipherResult{Ciphertext: "nggnpx"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ciphertext":"nggnpx"}`, string(b))

	b, err = json.Marshal(Cryptogram{Ciphertext: "x", Type: CipherRot13, Length: LengthShort, Token: "t"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "author")
	assert.NotContains(t, string(b), "plaintext")

	b, err = json.Marshal(CipherResult{Ciphertext: "x", Key: StringPtr("k")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ciphertext":"x","key":"k"}`, string(b))
}
