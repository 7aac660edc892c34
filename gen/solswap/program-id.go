package solswap

import solanago "github.com/gagliardetto/solana-go"

// ProgramID is the solswap program address.
var ProgramID = solanago.MustPublicKeyFromBase58("3KZKcYZ9zrgDkepQRNBAdKcKiAPuYiQTe8cwY9HjDTH2")
