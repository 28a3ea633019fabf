package memory

import "github.com/tinoosan/trialbalance/internal/service/balance"

// Compile-time interface assertion documenting that Store is a report source.
var _ balance.Source = (*Store)(nil)
