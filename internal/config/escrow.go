package config

import "time"

// Escrow — параметры эскроу-площадки. Кошелёк и процент комиссии
// фиксируются на уровне конфигурации и применяются ко всем новым сделкам.
type Escrow struct {
	Wallet            string        `env:"ESCROW_WALLET,notEmpty"`
	CommissionPercent float64       `env:"COMMISSION_PERCENT" envDefault:"1.5"`
	ReleaseSecret     string        `env:"RELEASE_SECRET,notEmpty" json:"-"`
	DealPendingTTL    time.Duration `env:"DEAL_PENDING_TTL" envDefault:"24h"`
}
