package hostcall

import (
	"github.com/Emurgo/node-cardano-wallet/domain/entities"
)

// Operation names exported to host callers.
const (
	OpEncryptWithPassword         = "password_protect_encrypt_with_password"
	OpDecryptWithPassword         = "password_protect_decrypt_with_password"
	OpCheckerNew                  = "random_checker_new_checker"
	OpCheckerNewFromMnemonics     = "random_checker_new_checker_from_mnemonics"
	OpCheckerCheckAddresses       = "random_checker_check_addresses"
	OpHdWalletFromEnhancedEntropy = "hdwallet_from_enhanced_entropy"
	OpHdWalletFromSeed            = "hdwallet_from_seed"
	OpHdWalletToPublic            = "hdwallet_to_public"
	OpHdWalletDerivePrivate       = "hdwallet_derive_private"
	OpHdWalletDerivePublic        = "hdwallet_derive_public"
	OpHdWalletSign                = "hdwallet_sign"
	OpWalletFromMasterKey         = "wallet_from_master_key"
	OpWalletFromDaedalusMnemonic  = "wallet_from_daedalus_mnemonic"
	OpWalletNewAccount            = "wallet_new_account"
	OpWalletGenerateAddresses     = "wallet_generate_addresses"
	OpWalletCheckAddress          = "wallet_check_address"
	OpWalletSpend                 = "wallet_spend"
	OpWalletMove                  = "wallet_move"
)

// Engine entry point names.
const (
	EntryEncryptWithPassword       = "encrypt_with_password"
	EntryDecryptWithPassword       = "decrypt_with_password"
	EntryCheckerNew                = "random_address_checker_new"
	EntryCheckerFromMnemonics      = "random_address_checker_from_mnemonics"
	EntryCheckerCheck              = "random_address_check"
	EntryWalletFromEnhancedEntropy = "wallet_from_enhanced_entropy"
	EntryWalletFromSeed            = "wallet_from_seed"
	EntryWalletToPublic            = "wallet_to_public"
	EntryWalletDerivePrivate       = "wallet_derive_private"
	EntryWalletDerivePublic        = "wallet_derive_public"
	EntryWalletSign                = "wallet_sign"
	EntryXWalletFromMasterKey      = "xwallet_from_master_key"
	EntryXWalletDaedalusMnemonic   = "xwallet_create_daedalus_mnemonic"
	EntryXWalletAccount            = "xwallet_account"
	EntryXWalletAddresses          = "xwallet_addresses"
	EntryXWalletCheckAddress       = "xwallet_checkaddress"
	EntryXWalletSpend              = "xwallet_spend"
	EntryXWalletMove               = "xwallet_move"
)

// Count hint names.
const (
	HintAddresses = "addresses"
	HintInputs    = "inputs"
	HintOutputs   = "outputs"
)

var (
	inXPrv     = entities.InputSpec{Name: "XPrv", Exact: entities.XPrvSize}
	inXPub     = entities.InputSpec{Name: "XPub", Exact: entities.XPubSize}
	inParams   = entities.InputSpec{Name: "params", Kind: entities.InputText}
	textOutput = Fixed(entities.MaxOutputSize)
)

// Catalog returns the contracts of every exported operation.
// Each call returns fresh values.
func Catalog() []Operation {
	return []Operation{
		{
			OperationContract: entities.OperationContract{
				Name:  OpEncryptWithPassword,
				Entry: EntryEncryptWithPassword,
				Inputs: []entities.InputSpec{
					{Name: "password"},
					{Name: "salt", Exact: entities.SaltSize},
					{Name: "nonce", Exact: entities.NonceSize},
					{Name: "data"},
				},
				Output:      entities.OutputBytes,
				ExactOutput: true,
				Description: "Encrypt data with a password (salt ‖ nonce ‖ tag ‖ ciphertext)",
			},
			Policy: EncryptCapacity(3),
		},
		{
			OperationContract: entities.OperationContract{
				Name:  OpDecryptWithPassword,
				Entry: EntryDecryptWithPassword,
				Inputs: []entities.InputSpec{
					{Name: "password"},
					{Name: "data", AtLeast: entities.PasswordOverhead + 1},
				},
				Output:      entities.OutputBytes,
				ExactOutput: true,
				Description: "Decrypt a password envelope",
			},
			Policy: DecryptCapacity(1),
		},
		{
			OperationContract: entities.OperationContract{
				Name:        OpCheckerNew,
				Entry:       EntryCheckerNew,
				Inputs:      []entities.InputSpec{{Name: "xprv", Kind: entities.InputText}},
				Output:      entities.OutputText,
				Description: "Create a random address checker from a root key",
			},
			Policy: textOutput,
		},
		{
			OperationContract: entities.OperationContract{
				Name:        OpCheckerNewFromMnemonics,
				Entry:       EntryCheckerFromMnemonics,
				Inputs:      []entities.InputSpec{{Name: "mnemonics", Kind: entities.InputText}},
				Output:      entities.OutputText,
				Description: "Create a random address checker from mnemonics",
			},
			Policy: textOutput,
		},
		{
			OperationContract: entities.OperationContract{
				Name:        OpCheckerCheckAddresses,
				Entry:       EntryCheckerCheck,
				Inputs:      []entities.InputSpec{inParams},
				Hints:       []string{HintAddresses},
				Output:      entities.OutputText,
				Description: "Find the addresses that belong to the checker",
			},
			Policy: Linear{PerItem: entities.MaxOutputSize},
		},
		{
			OperationContract: entities.OperationContract{
				Name:  OpHdWalletFromEnhancedEntropy,
				Entry: EntryWalletFromEnhancedEntropy,
				Inputs: []entities.InputSpec{
					{Name: "entropy"},
					{Name: "password", Kind: entities.InputText},
				},
				Output:      entities.OutputBytes,
				ExactOutput: true,
				Description: "Derive a root XPrv from BIP39 entropy and a password",
			},
			Policy: Fixed(entities.XPrvSize),
		},
		{
			OperationContract: entities.OperationContract{
				Name:        OpHdWalletFromSeed,
				Entry:       EntryWalletFromSeed,
				Inputs:      []entities.InputSpec{{Name: "seed", Exact: entities.SeedSize}},
				Output:      entities.OutputBytes,
				ExactOutput: true,
				Description: "Derive a root XPrv from a legacy seed",
			},
			Policy: Fixed(entities.XPrvSize),
		},
		{
			OperationContract: entities.OperationContract{
				Name:        OpHdWalletToPublic,
				Entry:       EntryWalletToPublic,
				Inputs:      []entities.InputSpec{inXPrv},
				Output:      entities.OutputBytes,
				ExactOutput: true,
				Description: "Compute the XPub of an XPrv",
			},
			Policy: Fixed(entities.XPubSize),
		},
		{
			OperationContract: entities.OperationContract{
				Name:        OpHdWalletDerivePrivate,
				Entry:       EntryWalletDerivePrivate,
				Inputs:      []entities.InputSpec{inXPrv},
				Index:       entities.IndexAny,
				Output:      entities.OutputBytes,
				ExactOutput: true,
				Description: "Derive a child XPrv",
			},
			Policy: Fixed(entities.XPrvSize),
		},
		{
			OperationContract: entities.OperationContract{
				Name:        OpHdWalletDerivePublic,
				Entry:       EntryWalletDerivePublic,
				Inputs:      []entities.InputSpec{inXPub},
				Index:       entities.IndexSoftOnly,
				Output:      entities.OutputBytes,
				ExactOutput: true,
				Description: "Derive a child XPub (soft indices only)",
			},
			Policy: Fixed(entities.XPubSize),
		},
		{
			OperationContract: entities.OperationContract{
				Name:  OpHdWalletSign,
				Entry: EntryWalletSign,
				Inputs: []entities.InputSpec{
					inXPrv,
					{Name: "message"},
				},
				Output:      entities.OutputBytes,
				ExactOutput: true,
				Description: "Sign a message with an XPrv",
			},
			Policy: Fixed(entities.SignatureSize),
		},
		{
			OperationContract: entities.OperationContract{
				Name:        OpWalletFromMasterKey,
				Entry:       EntryXWalletFromMasterKey,
				Inputs:      []entities.InputSpec{inXPrv},
				Output:      entities.OutputText,
				Description: "Create a wallet from a root XPrv",
			},
			Policy: textOutput,
		},
		{
			OperationContract: entities.OperationContract{
				Name:        OpWalletFromDaedalusMnemonic,
				Entry:       EntryXWalletDaedalusMnemonic,
				Inputs:      []entities.InputSpec{{Name: "mnemonic", Kind: entities.InputText}},
				Output:      entities.OutputText,
				Description: "Create a Daedalus wallet from a mnemonic",
			},
			Policy: textOutput,
		},
		{
			OperationContract: entities.OperationContract{
				Name:        OpWalletNewAccount,
				Entry:       EntryXWalletAccount,
				Inputs:      []entities.InputSpec{inParams},
				Output:      entities.OutputText,
				Description: "Create an account of a wallet",
			},
			Policy: textOutput,
		},
		{
			OperationContract: entities.OperationContract{
				Name:        OpWalletGenerateAddresses,
				Entry:       EntryXWalletAddresses,
				Inputs:      []entities.InputSpec{inParams},
				Hints:       []string{HintAddresses},
				Output:      entities.OutputText,
				Description: "Generate account addresses for a list of indices",
			},
			Policy: Linear{PerItem: 131, Overhead: 2},
		},
		{
			OperationContract: entities.OperationContract{
				Name:        OpWalletCheckAddress,
				Entry:       EntryXWalletCheckAddress,
				Inputs:      []entities.InputSpec{{Name: "address", Kind: entities.InputText}},
				Output:      entities.OutputText,
				Description: "Check that an address is valid",
			},
			Policy: textOutput,
		},
		{
			OperationContract: entities.OperationContract{
				Name:        OpWalletSpend,
				Entry:       EntryXWalletSpend,
				Inputs:      []entities.InputSpec{inParams},
				Hints:       []string{HintInputs, HintOutputs},
				Output:      entities.OutputText,
				Description: "Build and sign a transaction spending inputs to outputs",
			},
			Policy: Linear{PerItem: 65536, Bias: 1, Overhead: 1024},
		},
		{
			OperationContract: entities.OperationContract{
				Name:        OpWalletMove,
				Entry:       EntryXWalletMove,
				Inputs:      []entities.InputSpec{inParams},
				Hints:       []string{HintInputs},
				Output:      entities.OutputText,
				Description: "Build and sign a transaction moving all inputs to one output",
			},
			Policy: Linear{PerItem: 65536, Bias: 1, Overhead: 1024},
		},
	}
}
