package indicators

// Momentum windows: a positive change counts +1, a drop below the floor counts -1.
const (
	MomentumM5Floor  = -2.0
	MomentumH1Floor  = -3.0
	MomentumH6Floor  = -5.0
	MomentumTallyMin = 2
)

// Volume ratio is the last hour against the 24h hourly average.
const (
	VolumeSurgeRatio    = 2.0
	VolumeElevatedRatio = 1.3
	VolumeDryRatio      = 0.5
)

// Buyer share of 1h transactions, in percent.
const (
	BuyersDefaultRatio = 50.0
	BuyersStrongRatio  = 65.0
	BuyersLeanRatio    = 55.0
	SellersStrongRatio = 35.0
	SellersLeanRatio   = 45.0
)

// Liquidity bands in USD.
const (
	LiquidityDeep    = 100_000.0
	LiquidityHealthy = 30_000.0
	LiquidityThin    = 10_000.0
)

// TrendOverextended is the 24h change above which a rally is treated as exhausted.
const TrendOverextended = 100.0

// Thresholds feeds the classification functions.
type Thresholds struct {
	MomentumM5Floor  float64
	MomentumH1Floor  float64
	MomentumH6Floor  float64
	MomentumTallyMin int

	VolumeSurgeRatio    float64
	VolumeElevatedRatio float64
	VolumeDryRatio      float64

	BuyersDefaultRatio float64
	BuyersStrongRatio  float64
	BuyersLeanRatio    float64
	SellersStrongRatio float64
	SellersLeanRatio   float64

	LiquidityDeep    float64
	LiquidityHealthy float64
	LiquidityThin    float64

	TrendOverextended float64
}

// DefaultThresholds returns the production table.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MomentumM5Floor:  MomentumM5Floor,
		MomentumH1Floor:  MomentumH1Floor,
		MomentumH6Floor:  MomentumH6Floor,
		MomentumTallyMin: MomentumTallyMin,

		VolumeSurgeRatio:    VolumeSurgeRatio,
		VolumeElevatedRatio: VolumeElevatedRatio,
		VolumeDryRatio:      VolumeDryRatio,

		BuyersDefaultRatio: BuyersDefaultRatio,
		BuyersStrongRatio:  BuyersStrongRatio,
		BuyersLeanRatio:    BuyersLeanRatio,
		SellersStrongRatio: SellersStrongRatio,
		SellersLeanRatio:   SellersLeanRatio,

		LiquidityDeep:    LiquidityDeep,
		LiquidityHealthy: LiquidityHealthy,
		LiquidityThin:    LiquidityThin,

		TrendOverextended: TrendOverextended,
	}
}
