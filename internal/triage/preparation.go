package triage

import "github.com/spec-kit/support-queue/internal/domain"

type preparation struct {
	checklist []string
	docs      []string
}

var (
	cardPreparation = preparation{
		checklist: []string{
			"Confirm last 3 transactions",
			"Check if card is still in your possession",
			"Verify mobile number for alerts",
		},
		docs: []string{
			"NRIC / passport copy",
			"Police report (if stolen)",
			"Recent bank statement (last month)",
		},
	}
	fundsPreparation = preparation{
		checklist: []string{
			"Identify suspicious transaction(s)",
			"Check if any OTP was received",
			"Confirm devices you used recently",
		},
		docs: []string{
			"Screenshot of transaction history",
			"Police report (if fraud suspected)",
			"Email or SMS evidence (if any)",
		},
	}
	lockedPreparation = preparation{
		checklist: []string{
			"Verify that bank app is updated",
			"Check if you recently changed devices",
			"Prepare last successful login time",
		},
		docs: []string{
			"NRIC / passport copy",
			"Screenshot of error message",
			"Registered phone with you during call",
		},
	}
	digitalPreparation = preparation{
		checklist: []string{
			"Check internet connection",
			"Check app / browser version",
			"Note down exact steps to reproduce",
		},
		docs: []string{
			"Screenshot of the issue",
			"Device model and OS version",
		},
	}
	genericPreparation = preparation{
		checklist: []string{
			"Write down your main problem in 1–2 lines",
			"List any attempts you already tried",
			"Prepare any related account or card numbers",
		},
		docs: []string{
			"Relevant screenshots or photos",
			"Any reference numbers from emails or SMS",
		},
	}
)

var preparations = map[domain.IssueType]preparation{
	domain.IssueTypeLostCard:       cardPreparation,
	domain.IssueTypeStolenCard:     cardPreparation,
	domain.IssueTypeMoneyMissing:   fundsPreparation,
	domain.IssueTypeFraud:          fundsPreparation,
	domain.IssueTypeAccountLocked:  lockedPreparation,
	domain.IssueTypeDigitalBanking: digitalPreparation,
}

func preparationFor(issueType domain.IssueType) preparation {
	if p, ok := preparations[issueType]; ok {
		return p
	}
	return genericPreparation
}
