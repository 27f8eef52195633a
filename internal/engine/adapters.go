package engine

import (
	"context"

	"github.com/xkilldash9x/cryptograms/api/schemas"
	"github.com/xkilldash9x/cryptograms/internal/cipher"
	"github.com/xkilldash9x/cryptograms/internal/cipher/morse"
)

// DefaultCiphers builds the registry covering every schemas.CipherType.
func DefaultCiphers(words cipher.WordPicker, solver Solver) map[schemas.CipherType]Cipher {
	return map[schemas.CipherType]Cipher{
		schemas.CipherIdentity: plain{"identity", func(s string, _ *string, _ cipher.Rand) schemas.CipherResult {
			return cipher.Identity(s)
		}},
		schemas.CipherRot13: plain{"rot13", func(s string, _ *string, _ cipher.Rand) schemas.CipherResult {
			return cipher.Rot13(s)
		}},
		schemas.CipherCaesar: plain{"caesar", func(s string, _ *string, r cipher.Rand) schemas.CipherResult {
			return cipher.Caesar(s, r)
		}},
		schemas.CipherAristocrat: plain{"aristocrat", func(s string, _ *string, r cipher.Rand) schemas.CipherResult {
			return cipher.Aristocrat(s, r)
		}},
		schemas.CipherPatristocrat: plain{"patristocrat", func(s string, _ *string, r cipher.Rand) schemas.CipherResult {
			return cipher.Patristocrat(s, r)
		}},
		schemas.CipherPatristocratK1: plain{"patristocrat_k1", func(s string, k *string, r cipher.Rand) schemas.CipherResult {
			return cipher.PatristocratK1(s, k, words, r)
		}},
		schemas.CipherPatristocratK2: plain{"patristocrat_k2", func(s string, k *string, r cipher.Rand) schemas.CipherResult {
			return cipher.PatristocratK2(s, k, words, r)
		}},
		schemas.CipherHill:   hill{},
		schemas.CipherMorbit: plain{"morbit", morse.Morbit},
		schemas.CipherPollux: plain{"pollux", func(s string, _ *string, r cipher.Rand) schemas.CipherResult {
			return morse.Pollux(s, r)
		}},
		schemas.CipherPorta: plain{"porta", func(s string, k *string, r cipher.Rand) schemas.CipherResult {
			return cipher.Porta(s, k, words, r)
		}},
		schemas.CipherCryptarithm: cryptarithmAdapter{solver: solver},
	}
}

// plain adapts a cipher that cannot fail.
type plain struct {
	name string
	fn   func(plaintext string, key *string, r cipher.Rand) schemas.CipherResult
}

func (p plain) Name() string { return p.name }

func (p plain) Encrypt(_ context.Context, plaintext string, key *string, r cipher.Rand) (schemas.CipherResult, error) {
	return p.fn(plaintext, key, r), nil
}

type hill struct{}

func (hill) Name() string { return "hill" }

func (hill) Encrypt(_ context.Context, plaintext string, key *string, r cipher.Rand) (schemas.CipherResult, error) {
	return cipher.Hill(plaintext, key, r)
}

// cryptarithmAdapter ignores the plaintext and key. The puzzle is the ciphertext and its numeric
// solution is returned as the key.
type cryptarithmAdapter struct {
	solver Solver
}

func (cryptarithmAdapter) Name() string { return "cryptarithm" }

func (a cryptarithmAdapter) Encrypt(ctx context.Context, _ string, _ *string, r cipher.Rand) (schemas.CipherResult, error) {
	sol, _, err := a.solver.Solve(ctx, r)
	if err != nil {
		return schemas.CipherResult{}, err
	}
	return schemas.CipherResult{
		Ciphertext: sol.String(),
		Key:        schemas.StringPtr(sol.Answer()),
	}, nil
}
