package services

import (
	"github.com/tanelv/libris/internal/core/domain"
	"github.com/tanelv/libris/internal/core/ports/driven"
	"github.com/tanelv/libris/internal/logger"
)

// Configuration keys for the lending policy.
const (
	configKeyMaxLoans = "lending.max_loans"
	configKeyLoanDays = "lending.loan_days"
)

// PolicyFromConfig loads the lending policy from configuration, falling
// back to defaults for missing or out-of-range values.
func PolicyFromConfig(cfg driven.ConfigStore) domain.LendingPolicy {
	policy := domain.DefaultLendingPolicy()
	if cfg == nil {
		return policy
	}

	if maxLoans := cfg.GetInt(configKeyMaxLoans); maxLoans > 0 {
		policy.MaxLoans = maxLoans
	} else if _, ok := cfg.Get(configKeyMaxLoans); ok {
		logger.Warn("config: ignoring invalid %s, using default %d", configKeyMaxLoans, policy.MaxLoans)
	}

	if loanDays := cfg.GetInt(configKeyLoanDays); loanDays > 0 {
		policy.LoanDays = loanDays
	} else if _, ok := cfg.Get(configKeyLoanDays); ok {
		logger.Warn("config: ignoring invalid %s, using default %d", configKeyLoanDays, policy.LoanDays)
	}

	return policy
}
