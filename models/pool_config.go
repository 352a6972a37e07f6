package models

// PoolConfig is the single process-wide configuration row, mutable only by
// the admin. PlatformFeeBps is the platform fee as basis points of the
// round's house remainder, keeping fee math in integers.
type PoolConfig struct {
	Admin          string `db:"admin"`
	Distributor    string `db:"distributor"`
	RoundDuration  int64  `db:"round_duration"` // seconds
	PlatformFeeBps int64  `db:"platform_fee_bps"`
}

// PlatformFee applies the configured fee fraction to a house remainder,
// truncating toward zero.
func (c *PoolConfig) PlatformFee(remainder int64) int64 {
	if remainder <= 0 {
		return 0
	}
	return remainder * c.PlatformFeeBps / 10000
}
