package game

import "time"

// Battery is the shared energy pool that powers the spotlights.
type Battery struct {
	Current float64
	Max     float64
}

// NewBattery returns a fully charged battery.
func NewBattery() *Battery {
	return &Battery{Current: BatteryMax, Max: BatteryMax}
}

// DrainRate returns the total drain per second with activeCount lights on.
// With MultiSpotlightMultiplier above 1, k lights drain more than k single lights.
func DrainRate(activeCount int) float64 {
	if activeCount <= 0 {
		return 0
	}
	k := float64(activeCount)
	return SingleDrain * (1 + (k-1)*MultiSpotlightMultiplier)
}

// ChargeRate returns the charge per second with every light off.
func ChargeRate(deliveredCount int) float64 {
	return BaseChargeRate + float64(deliveredCount)*PerDeliveryBonus
}

// Update charges or drains the battery for one tick.
func (b *Battery) Update(activeCount, deliveredCount int, dt time.Duration) {
	secs := dt.Seconds()
	if activeCount == 0 {
		b.Current += ChargeRate(deliveredCount) * secs
		if b.Current > b.Max {
			b.Current = b.Max
		}
		return
	}
	b.Current -= DrainRate(activeCount) * secs
	if b.Current < 0 {
		b.Current = 0
	}
}

// IsDepleted reports whether the battery is empty.
func (b *Battery) IsDepleted() bool {
	return b.Current <= 0
}

// Percentage returns the charge level in [0, 1].
func (b *Battery) Percentage() float64 {
	if b.Max <= 0 {
		return 0
	}
	return b.Current / b.Max
}
