package solana

// Well-known program and sysvar addresses.
//
// https://explorer.solana.com/address/11111111111111111111111111111111
var (
	SystemProgramID = MustPublicKeyFromBase58("11111111111111111111111111111111")

	// Source: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/sysvar/rent.rs#L11
	SysvarRentID = MustPublicKeyFromBase58("SysvarRent111111111111111111111111111111111")

	// Source: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/sysvar/clock.rs#L10
	SysvarClockID = MustPublicKeyFromBase58("SysvarC1ock11111111111111111111111111111111")
)
