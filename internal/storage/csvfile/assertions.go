package csvfile

import "github.com/tinoosan/trialbalance/internal/service/balance"

var _ balance.Source = (*Source)(nil)
