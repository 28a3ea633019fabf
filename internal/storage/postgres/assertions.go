package postgres

import "github.com/tinoosan/trialbalance/internal/service/balance"

var _ balance.Source = (*Store)(nil)
