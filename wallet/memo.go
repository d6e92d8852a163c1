package wallet

import (
	"strings"

	"github.com/gagliardetto/solana-go"
)

// memoBytesLimit caps the full memo, prefix included. The ledger's own
// memo limit is larger; the margin is reserved so the version/app-id tag
// always fits.
const memoBytesLimit = 21

// memoVersionPrefix tags which memo layout a transaction was built with.
const memoVersionPrefix = "1"

// memoProgramID is the on-ledger memo program.
var memoProgramID = solana.MustPublicKeyFromBase58("MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr")

// prefixMemo trims the caller's memo and prepends the version tag and
// app-id: "<version>-<appId>-<memo>". The prefixed result must fit the
// byte limit when UTF-8 encoded.
func prefixMemo(appID, memo string) (string, error) {
	full := memoVersionPrefix + "-" + appID + "-" + strings.TrimSpace(memo)
	if len(full) > memoBytesLimit {
		return "", &IllegalAmountError{
			reason: "memo cannot be longer than 21 bytes (UTF-8) including the app-id prefix",
		}
	}
	return full, nil
}

// memoInstruction attaches free text to a transaction via the memo
// program. The signer account proves the memo author also signed the
// transaction.
type memoInstruction struct {
	text   string
	signer solana.PublicKey
}

func (m *memoInstruction) ProgramID() solana.PublicKey {
	return memoProgramID
}

func (m *memoInstruction) Accounts() []*solana.AccountMeta {
	return []*solana.AccountMeta{
		solana.NewAccountMeta(m.signer, false, true),
	}
}

func (m *memoInstruction) Data() ([]byte, error) {
	return []byte(m.text), nil
}
